package token

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/aibutsu/server/aibutsu/tokens"
	"github.com/aibutsu/server/internal/errors"
	"github.com/aibutsu/server/internal/logger"
	"github.com/gin-gonic/gin"
)

// the ledger operations the token routes need
type Ledger interface {
	Status(ctx context.Context, userID string) (*tokens.Account, error)
	BulkReset(ctx context.Context, today time.Time) error
}

// creates the handler for GET /token_status
func StatusHandler(ledger Ledger, freeDailyLimit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Query("user_id")

		if !errors.IsValidUUID(userID) {
			errors.BadRequest(c, "invalid user_id", nil)
			return
		}

		acct, err := ledger.Status(c.Request.Context(), userID)
		if err != nil {
			errors.InternalError(c, "failed to load token status", err)
			return
		}

		c.JSON(http.StatusOK, StatusResponse{
			Remaining:     acct.TokensRemaining,
			Used:          acct.DailyUsed,
			AdRewardCount: acct.DailyRewarded,
			Plan:          acct.Plan,
			Limit:         freeDailyLimit,
			LastResetDate: acct.LastResetDate.Format("2006-01-02"),
		})
	}
}

// creates the handler for GET /admob/reward, the server-side
// verification callback from the ad network. Delivery is not
// deduplicated here; the callback's transaction id is logged so a
// dedupe layer can be added in front later.
func RewardHandler(adjustor *tokens.RewardAdjustor) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Query("user_id")
		rewardAmount, _ := strconv.Atoi(c.Query("reward_amount")) //nolint:errcheck

		logger.Info("ad reward callback",
			"user_id", userID,
			"reward_amount", rewardAmount,
			"transaction_id", c.Query("transaction_id"),
		)

		if !errors.IsValidUUID(userID) || rewardAmount <= 0 {
			errors.BadRequest(c, "invalid reward", nil)
			return
		}

		granted, err := adjustor.Apply(c.Request.Context(), userID, rewardAmount)
		if err != nil {
			errors.InternalError(c, "failed to credit reward", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"granted": granted,
		})
	}
}

// creates the handler for POST /admin/reset_all_tokens
func AdminResetHandler(ledger Ledger, loc *time.Location) gin.HandlerFunc {
	return func(c *gin.Context) {
		today := time.Now().In(loc)

		if err := ledger.BulkReset(c.Request.Context(), today); err != nil {
			errors.InternalError(c, "failed to reset token accounts", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"date":   today.Format("2006-01-02"),
		})
	}
}
