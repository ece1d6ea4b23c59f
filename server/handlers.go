package server

import (
	"context"
	"net/http"
	"time"

	"github.com/abdusubhan/ask-agent/metrics"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Invoker runs one prompt through the agent.
type Invoker interface {
	Invoke(ctx context.Context, prompt string) (string, error)
}

// AskRequest is the body of POST /ask. Prompt is a pointer so that a missing
// field and an empty string can be told apart.
type AskRequest struct {
	Prompt *string `json:"prompt" binding:"required"`
}

type AskResponse struct {
	Response string `json:"response"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// Handler serves the agent endpoints.
type Handler struct {
	invoker Invoker
	log     *logrus.Entry
	timeout time.Duration
}

type HandlerOption func(*Handler)

// WithTimeout bounds each agent invocation. Zero disables the bound.
func WithTimeout(d time.Duration) HandlerOption {
	return func(h *Handler) {
		h.timeout = d
	}
}

func WithLogger(log *logrus.Entry) HandlerOption {
	return func(h *Handler) {
		if log != nil {
			h.log = log
		}
	}
}

func NewHandler(invoker Invoker, opts ...HandlerOption) *Handler {
	h := &Handler{
		invoker: invoker,
		log:     logrus.WithField("component", "server"),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Ask handles POST /ask.
func (h *Handler) Ask(c *gin.Context) {
	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		requestLog(c, h.log).WithError(err).Debug("invalid ask request")
		c.JSON(http.StatusUnprocessableEntity, NewValidationError(err))
		return
	}

	ctx := c.Request.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	reply, err := h.invoker.Invoke(ctx, *req.Prompt)
	if err != nil {
		metrics.IncAgentError()
		requestLog(c, h.log).WithError(err).Error("agent error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, AskResponse{Response: reply})
}
