package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

const AdminKeyHeader = "X-Admin-Key"

// AdminKey rejects requests whose X-Admin-Key does not match the bcrypt hash.
// With an empty hash every request is rejected.
func AdminKey(hash string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if hash == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin routes are disabled"})
			return
		}

		key := c.GetHeader(AdminKeyHeader)
		if key == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Admin key required"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)); err != nil {
			log.Printf("Rejected admin request to %s from %s", c.Request.URL.Path, c.ClientIP())
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid admin key"})
			return
		}

		c.Next()
	}
}
