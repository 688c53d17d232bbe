package middleware

import "github.com/gin-gonic/gin"

// JSONCharset forces an explicit UTF-8 charset on API responses so clients
// never misinterpret localized feedback text.
func JSONCharset() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json; charset=utf-8")
		c.Next()
	}
}
