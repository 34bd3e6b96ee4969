package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/promptforge/prompt-service/internal/models"
	"github.com/promptforge/prompt-service/internal/utils"
)

// Response aliases so handlers read without the models qualifier.
type (
	ErrorResponse   = models.ErrorResponse
	MessageResponse = models.MessageResponse
)

// BaseHandler carries the shared handler utilities.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// LogRequest logs the start of request handling with the request-scoped
// logger.
func (h *BaseHandler) LogRequest(c *gin.Context, msg string) {
	utils.LoggerFromContext(c, h.logger).Debug(msg,
		"method", c.Request.Method,
		"path", c.Request.URL.Path)
}

// LogError logs an unexpected error during request handling.
func (h *BaseHandler) LogError(c *gin.Context, err error, msg string) {
	utils.LoggerFromContext(c, h.logger).Error(msg,
		"error", err,
		"method", c.Request.Method,
		"path", c.Request.URL.Path)
}
