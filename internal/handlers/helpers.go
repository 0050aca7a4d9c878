package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"resetd/internal/logging"
)

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, messageResponse{Message: message})
}

// serverError reports an unexpected failure with the raw error text in the body.
func serverError(c *gin.Context, where string, err error) {
	logging.From(c.Request.Context()).Error(where+" failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, errorResponse{Message: "Server error", Error: err.Error()})
}
