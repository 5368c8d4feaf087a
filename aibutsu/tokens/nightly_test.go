package tokens

import (
	"testing"
	"time"
)

func TestUntilNextMidnight(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Fatalf("failed to load timezone: %v", err)
	}

	svc := NewResetService(nil, loc)

	tests := []struct {
		name string
		now  time.Time
		want time.Duration
	}{
		{
			name: "one hour before midnight",
			now:  time.Date(2025, 6, 1, 23, 0, 0, 0, loc),
			want: time.Hour,
		},
		{
			name: "just after midnight waits a full day",
			now:  time.Date(2025, 6, 1, 0, 0, 1, 0, loc),
			want: 24*time.Hour - time.Second,
		},
		{
			name: "midday",
			now:  time.Date(2025, 6, 1, 12, 0, 0, 0, loc),
			want: 12 * time.Hour,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc.now = func() time.Time { return tt.now }

			if got := svc.untilNextMidnight(); got != tt.want {
				t.Errorf("untilNextMidnight() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUntilNextMidnight_ConvertsForeignClock(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Fatalf("failed to load timezone: %v", err)
	}

	svc := NewResetService(nil, loc)

	// 15:00 UTC is already midnight in Tokyo
	svc.now = func() time.Time {
		return time.Date(2025, 6, 1, 15, 0, 0, 0, time.UTC)
	}

	if got := svc.untilNextMidnight(); got != 24*time.Hour {
		t.Errorf("untilNextMidnight() = %v, want 24h", got)
	}
}
