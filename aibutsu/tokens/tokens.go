package tokens

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const dateLayout = "2006-01-02"

// DB is the pool surface the ledger uses; satisfied by *pgxpool.Pool
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Repository is the quota ledger. All balance mutations run inside a
// transaction holding a row lock on the user's account, so two
// concurrent deductions for the same user cannot both pass the balance
// check.
type Repository struct {
	db     DB
	config Config

	// reference timezone for the "today" used in daily resets
	loc *time.Location

	// injectable clock for tests
	now func() time.Time
}

// creates a new quota ledger repository
func NewRepository(db DB, config Config, loc *time.Location) *Repository {
	return &Repository{
		db:     db,
		config: config,
		loc:    loc,
		now:    time.Now,
	}
}

// returns today's calendar date in the ledger's reference timezone
func (r *Repository) today() string {
	return r.now().In(r.loc).Format(dateLayout)
}

// loads the user's account under a row lock, creating it on first
// contact and rolling the daily counters over when the stored reset
// date is not today. Absence of a row is not an error, and neither is
// losing a first-contact race to a concurrent transaction.
func (r *Repository) ensureAndMaybeReset(ctx context.Context, tx pgx.Tx, userID, today string) (*Account, error) {
	acct, err := scanAccount(tx.QueryRow(ctx, queryLockAccount, userID))

	if errors.Is(err, pgx.ErrNoRows) {
		// first contact: FOR UPDATE locks nothing for an absent row, so
		// a concurrent transaction may provision the same user first.
		// The conflict-tolerant insert makes that a no-op, and the
		// re-run select takes the lock on whichever row won. The winning
		// row then goes through the rollover check like any other.
		if _, err := tx.Exec(ctx, queryInsertAccount, userID, r.config.FreeDailyLimit, today); err != nil {
			return nil, fmt.Errorf("failed to provision token account: %w", err)
		}

		acct, err = scanAccount(tx.QueryRow(ctx, queryLockAccount, userID))
		if err != nil {
			return nil, fmt.Errorf("failed to lock provisioned token account: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to lock token account: %w", err)
	}

	if acct.LastResetDate.Format(dateLayout) == today {
		return acct, nil
	}

	// date rollover: zero the daily counters and restore the plan's full
	// allowance (uncapped plans keep their balance)
	limit := r.config.dailyLimitFor(acct.Plan)

	if limit == nil {
		if _, err := tx.Exec(ctx, queryResetDailyUncapped, userID, today); err != nil {
			return nil, fmt.Errorf("failed to reset token account: %w", err)
		}
	} else {
		if _, err := tx.Exec(ctx, queryResetDaily, userID, *limit, today); err != nil {
			return nil, fmt.Errorf("failed to reset token account: %w", err)
		}

		acct.TokensRemaining = *limit
	}

	acct.DailyUsed = 0
	acct.DailyRewarded = 0
	acct.LastResetDate, _ = time.Parse(dateLayout, today)

	return acct, nil
}

// TryConsume answers "may this user spend amount tokens right now" and
// records the spend when the answer is yes. Returns false without
// mutating the balance when the remaining budget does not cover amount.
func (r *Repository) TryConsume(ctx context.Context, userID string, amount int) (bool, error) {
	if amount < 0 {
		return false, fmt.Errorf("consume amount must be non-negative, got %d", amount)
	}

	allowed := false

	err := r.withAccount(ctx, userID, func(tx pgx.Tx, acct *Account) error {
		if acct.TokensRemaining < amount {
			return nil
		}

		if _, err := tx.Exec(ctx, queryConsume, userID, amount); err != nil {
			return fmt.Errorf("failed to deduct tokens: %w", err)
		}

		allowed = true

		return nil
	})

	if err != nil {
		return false, err
	}

	return allowed, nil
}

// GrantReward credits bonus tokens. No upper clamp is applied: ad
// rewards may push the balance past the nominal daily cap.
func (r *Repository) GrantReward(ctx context.Context, userID string, amount int) error {
	if amount <= 0 {
		return fmt.Errorf("reward amount must be positive, got %d", amount)
	}

	return r.withAccount(ctx, userID, func(tx pgx.Tx, _ *Account) error {
		if _, err := tx.Exec(ctx, queryReward, userID, amount); err != nil {
			return fmt.Errorf("failed to grant reward: %w", err)
		}

		return nil
	})
}

// Refund returns a previously consumed amount to the balance, flooring
// the used counters at zero. Used when a charged generation never
// produced an answer.
func (r *Repository) Refund(ctx context.Context, userID string, amount int) error {
	if amount <= 0 {
		return nil
	}

	return r.withAccount(ctx, userID, func(tx pgx.Tx, _ *Account) error {
		if _, err := tx.Exec(ctx, queryRefund, userID, amount); err != nil {
			return fmt.Errorf("failed to refund tokens: %w", err)
		}

		return nil
	})
}

// Status returns the account after running the daily reset if needed.
func (r *Repository) Status(ctx context.Context, userID string) (*Account, error) {
	var acct *Account

	err := r.withAccount(ctx, userID, func(_ pgx.Tx, locked *Account) error {
		acct = locked

		return nil
	})

	if err != nil {
		return nil, err
	}

	return acct, nil
}

// BulkReset restores every free account to the full daily allowance and
// zeroes the daily counters, stamping the given date. Premium accounts
// are swept only when a premium cap is configured.
func (r *Repository) BulkReset(ctx context.Context, today time.Time) error {
	day := today.In(r.loc).Format(dateLayout)

	if _, err := r.db.Exec(ctx, queryBulkResetByPlan, PlanFree, r.config.FreeDailyLimit, day); err != nil {
		return fmt.Errorf("failed to reset free accounts: %w", err)
	}

	if r.config.PremiumDailyLimit != nil {
		if _, err := r.db.Exec(ctx, queryBulkResetByPlan, PlanPremium, *r.config.PremiumDailyLimit, day); err != nil {
			return fmt.Errorf("failed to reset premium accounts: %w", err)
		}
	}

	return nil
}

// runs fn inside a transaction with the user's account locked and
// daily-reset applied
func (r *Repository) withAccount(ctx context.Context, userID string, fn func(tx pgx.Tx, acct *Account) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	acct, err := r.ensureAndMaybeReset(ctx, tx, userID, r.today())
	if err != nil {
		return err
	}

	if err := fn(tx, acct); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func scanAccount(row pgx.Row) (*Account, error) {
	var acct Account

	err := row.Scan(
		&acct.UserID,
		&acct.TokensRemaining,
		&acct.DailyUsed,
		&acct.DailyRewarded,
		&acct.TotalUsed,
		&acct.TotalRewarded,
		&acct.Plan,
		&acct.LastResetDate,
	)

	if err != nil {
		return nil, err
	}

	return &acct, nil
}
