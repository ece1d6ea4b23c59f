package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetupRouter builds the gin engine serving POST /ask.
func SetupRouter(h *Handler) *gin.Engine {
	useJSONFieldNames()

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(RequestID(), AccessLog(h.log), Metrics(), Recovery(h.log))

	r.POST("/ask", h.Ask)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not Found"})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"detail": "Method Not Allowed"})
	})
	return r
}
