package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mailtriage/pkg/util"
)

func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := util.ExtractToken(c.Request)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			c.Abort()
			return
		}

		reviewerID, email, err := util.ParseJWT(token, jwtSecret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		// store reviewer identity so handlers can attribute actions
		c.Set("reviewer_id", reviewerID)
		c.Set("actor_email", email)

		c.Next()
	}
}
