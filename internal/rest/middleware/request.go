package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/inkmatch/inkmatch/internal/types"
)

// RequestIDMiddleware tags every request with an ID, honoring one the
// caller already set.
func RequestIDMiddleware(c *gin.Context) {
	ctx := c.Request.Context()

	requestID := c.GetHeader(types.HeaderRequestID)
	if requestID == "" {
		requestID = types.GenerateUUID()
	}

	ctx = context.WithValue(ctx, types.CtxRequestID, requestID)
	c.Request = c.Request.WithContext(ctx)

	c.Header(types.HeaderRequestID, requestID)

	c.Next()
}
