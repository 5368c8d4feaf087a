package tokens

import (
	"context"
	"time"

	"github.com/aibutsu/server/internal/logger"
)

// the sweep the nightly service performs
type BulkResetter interface {
	BulkReset(ctx context.Context, today time.Time) error
}

// ResetService restores every account's daily budget at midnight in the
// configured reference timezone.
type ResetService struct {
	ledger BulkResetter
	loc    *time.Location
	now    func() time.Time
}

// creates a new nightly reset service
func NewResetService(ledger BulkResetter, loc *time.Location) *ResetService {
	return &ResetService{
		ledger: ledger,
		loc:    loc,
		now:    time.Now,
	}
}

// begins the reset loop; blocks until ctx is cancelled
func (s *ResetService) Start(ctx context.Context) {
	logger.Info("starting nightly token reset service", "timezone", s.loc.String())

	for {
		wait := s.untilNextMidnight()

		select {
		case <-ctx.Done():
			logger.Info("nightly token reset service stopped")
			return
		case <-time.After(wait):
			s.runReset(ctx)
		}
	}
}

// duration until the next midnight in the reference timezone
func (s *ResetService) untilNextMidnight() time.Duration {
	now := s.now().In(s.loc)
	next := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc).AddDate(0, 0, 1)

	return next.Sub(now)
}

func (s *ResetService) runReset(ctx context.Context) {
	resetCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	today := s.now().In(s.loc)

	if err := s.ledger.BulkReset(resetCtx, today); err != nil {
		logger.ErrorErr(err, "nightly token reset failed")
		return
	}

	logger.Info("nightly token reset complete", "date", today.Format(dateLayout))
}
