package handlers

import "github.com/gin-gonic/gin"

// RequestIDKey is the gin context key under which the request-id middleware
// stores the id of the current request.
const RequestIDKey = "request_id"

func requestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}
