package response

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextKeyRequestID is the Gin context key for the request ID.
const ContextKeyRequestID = "request_id"

// maxInboundIDLen caps client-supplied request IDs so an oversized header
// cannot bloat log lines.
const maxInboundIDLen = 64

// RequestIDMiddleware tags every request with an ID, echoed back in the
// X-Request-ID header and in the response metadata. An inbound X-Request-ID
// from a proxy is kept when it is reasonably sized; otherwise a fresh UUID
// is minted.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" || len(id) > maxInboundIDLen {
			id = uuid.New().String()
		}
		c.Set(ContextKeyRequestID, id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}
