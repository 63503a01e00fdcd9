package middleware

import (
	"time"

	"matchmakr-backend/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORSMiddleware allows the configured frontend origin. Outside release mode the usual
// local dev servers are allowed too.
func CORSMiddleware(cfg *config.Config) gin.HandlerFunc {
	origins := []string{cfg.FrontendURL}
	if !cfg.IsProduction() {
		origins = append(origins,
			"http://localhost:3000",
			"http://127.0.0.1:3000",
			"http://localhost:5173",
		)
	}

	corsConfig := cors.Config{
		AllowOrigins:     dedupe(origins),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Disposition", "X-Request-ID", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}
	return cors.New(corsConfig)
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
