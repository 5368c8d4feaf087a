package main

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	limiter "github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// per-IP budget for the LLM-backed chat endpoints
const chatRateLimit = "20-M"

// configures CORS for the mobile app dev server origins
func CORSMiddleware() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:8081",
			"http://127.0.0.1:8081",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-ADMIN-TOKEN"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

// limits request rate per client IP using an in-memory store
func RateLimitMiddleware() gin.HandlerFunc {
	rate, err := limiter.NewRateFromFormatted(chatRateLimit)
	if err != nil {
		panic(err)
	}

	store := memory.NewStore()

	return mgin.NewMiddleware(limiter.New(store, rate))
}
