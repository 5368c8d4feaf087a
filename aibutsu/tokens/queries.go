package tokens

const (
	// FOR UPDATE serializes concurrent check-and-deduct calls on one user
	queryLockAccount = `
		SELECT user_id, tokens_remaining, daily_used, daily_rewarded,
		       total_used, total_rewarded, plan, last_reset_date
		FROM user_tokens
		WHERE user_id = $1
		FOR UPDATE
	`

	// ON CONFLICT absorbs a concurrent first-contact insert; the caller
	// re-runs the locking select either way
	queryInsertAccount = `
		INSERT INTO user_tokens
			(user_id, tokens_remaining, daily_used, daily_rewarded,
			 total_used, total_rewarded, plan, last_reset_date)
		VALUES ($1, $2, 0, 0, 0, 0, 'free', $3)
		ON CONFLICT (user_id) DO NOTHING
	`

	queryResetDaily = `
		UPDATE user_tokens
		SET tokens_remaining = $2,
		    daily_used       = 0,
		    daily_rewarded   = 0,
		    last_reset_date  = $3
		WHERE user_id = $1
	`

	// uncapped plans keep their balance when the day rolls over
	queryResetDailyUncapped = `
		UPDATE user_tokens
		SET daily_used      = 0,
		    daily_rewarded  = 0,
		    last_reset_date = $2
		WHERE user_id = $1
	`

	queryConsume = `
		UPDATE user_tokens
		SET tokens_remaining = tokens_remaining - $2,
		    daily_used       = daily_used + $2,
		    total_used       = total_used + $2
		WHERE user_id = $1
	`

	queryReward = `
		UPDATE user_tokens
		SET tokens_remaining = tokens_remaining + $2,
		    daily_rewarded   = daily_rewarded + $2,
		    total_rewarded   = total_rewarded + $2
		WHERE user_id = $1
	`

	// undoes a consumption without touching reward counters; the used
	// counters floor at zero
	queryRefund = `
		UPDATE user_tokens
		SET tokens_remaining = tokens_remaining + $2,
		    daily_used       = GREATEST(daily_used - $2, 0),
		    total_used       = GREATEST(total_used - $2, 0)
		WHERE user_id = $1
	`

	queryBulkResetByPlan = `
		UPDATE user_tokens
		SET tokens_remaining = $2,
		    daily_used       = 0,
		    daily_rewarded   = 0,
		    last_reset_date  = $3
		WHERE plan = $1
	`
)
