package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"resetd/internal/logging"
	"resetd/internal/utils"
)

const RequestIDHeader = "X-Request-Id"

// RequestID propagates or assigns a request id and binds it to the request logger.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader(RequestIDHeader)
		if reqID == "" {
			reqID, _ = utils.NewToken(16)
		}
		c.Writer.Header().Set(RequestIDHeader, reqID)
		c.Set("request_id", reqID)
		ctx := logging.WithFields(c.Request.Context(), zap.String("request_id", reqID))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
