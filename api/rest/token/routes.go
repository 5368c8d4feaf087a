package token

import (
	"time"

	"github.com/aibutsu/server/aibutsu/tokens"
	"github.com/aibutsu/server/internal/auth"
	"github.com/gin-gonic/gin"
)

// registers quota status, ad reward, and admin reset routes
func RegisterRoutes(router *gin.RouterGroup, ledger Ledger, adjustor *tokens.RewardAdjustor, freeDailyLimit int, loc *time.Location, adminToken string) {
	router.GET("/token_status", StatusHandler(ledger, freeDailyLimit))
	router.GET("/admob/reward", RewardHandler(adjustor))
	router.POST("/admin/reset_all_tokens", auth.AdminMiddleware(adminToken), AdminResetHandler(ledger, loc))
}
