package routes

import (
	"ordenes_servicio/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const HeaderRequestID = "X-Request-ID"

// requestIDMiddleware reuses the caller's X-Request-ID when it is a valid
// UUID and generates one otherwise. The id is echoed in the response.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(handlers.RequestIDKey, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}
