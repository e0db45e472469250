package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func ConfigCORS(allowedDomains []string) gin.HandlerFunc {
	conf := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	for _, domain := range allowedDomains {
		if domain == "*" {
			conf.AllowAllOrigins = true
			conf.AllowCredentials = false
			break
		}
	}
	if !conf.AllowAllOrigins {
		conf.AllowOrigins = allowedDomains
	}

	return cors.New(conf)
}
