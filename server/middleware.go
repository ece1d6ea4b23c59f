package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/abdusubhan/ask-agent/metrics"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// RequestID tags every request with an ID, reusing the caller's if present.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// AccessLog writes one line per request once the handler chain is done.
func AccessLog(log *logrus.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		entry := requestLog(c, log).WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
		})
		if c.Writer.Status() >= http.StatusInternalServerError {
			entry.Warn("request failed")
			return
		}
		entry.Info("request handled")
	}
}

// Metrics records request count and latency.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		metrics.ObserveRequest(c.Writer.Status(), time.Since(start))
	}
}

// Recovery turns a panic anywhere below it into the 500 error envelope.
func Recovery(log *logrus.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			if r == http.ErrAbortHandler {
				panic(r)
			}
			metrics.IncAgentError()
			requestLog(c, log).WithField("panic", r).Error("agent error: handler panicked")
			c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: fmt.Sprint(r)})
		}()
		c.Next()
	}
}

func requestLog(c *gin.Context, log *logrus.Entry) *logrus.Entry {
	if id := c.GetString(requestIDKey); id != "" {
		return log.WithField(requestIDKey, id)
	}
	return log
}
