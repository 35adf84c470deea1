// internal/middleware/cors.go
package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func CORS() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Accept", "Authorization", "Accept-Language",
		},
		ExposeHeaders: []string{
			"X-Total-Count", "X-Page", "X-Per-Page", "X-Total-Pages",
		},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
