package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var plannerCfg = PlannerConfig{
	Epoch:  time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
	Cutoff: 17 * time.Hour,
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPlanFetchWindow_Backfill(t *testing.T) {
	// 2024-01-10 is a Wednesday.
	now := time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC)

	plan := PlanFetchWindow(nil, now, plannerCfg)

	assert.True(t, plan.Fetch)
	assert.Equal(t, date(2020, 1, 1), plan.From, "backfill starts at the epoch")
	assert.Equal(t, date(2024, 1, 10), plan.To)
}

func TestPlanFetchWindow_Gating(t *testing.T) {
	wednesday := date(2024, 1, 10)
	tuesday := date(2024, 1, 9)

	tests := []struct {
		name       string
		watermark  time.Time
		now        time.Time
		wantFetch  bool
		wantFrom   time.Time
		wantReason SkipReason
	}{
		{
			name:       "yesterday synced, before cutoff",
			watermark:  tuesday,
			now:        wednesday.Add(9 * time.Hour),
			wantReason: SkipNotYetPublished,
		},
		{
			name:      "yesterday synced, at cutoff",
			watermark: tuesday,
			now:       wednesday.Add(17 * time.Hour),
			wantFetch: true,
			wantFrom:  wednesday,
		},
		{
			name:      "yesterday synced, after cutoff",
			watermark: tuesday,
			now:       wednesday.Add(20 * time.Hour),
			wantFetch: true,
			wantFrom:  wednesday,
		},
		{
			name:       "watermark is today",
			watermark:  wednesday,
			now:        wednesday.Add(18 * time.Hour),
			wantReason: SkipUpToDate,
		},
		{
			name:       "stale watermark beyond today never inverts the window",
			watermark:  date(2024, 1, 12),
			now:        wednesday.Add(18 * time.Hour),
			wantReason: SkipUpToDate,
		},
		{
			name:      "several days behind fetches from watermark+1 regardless of cutoff",
			watermark: date(2024, 1, 5),
			now:       wednesday.Add(9 * time.Hour),
			wantFetch: true,
			wantFrom:  date(2024, 1, 6),
		},
		{
			name:       "friday synced, saturday run has nothing to wait for",
			watermark:  date(2024, 1, 12),
			now:        date(2024, 1, 13).Add(10 * time.Hour), // Saturday
			wantReason: SkipUpToDate,
		},
		{
			name:       "friday synced, sunday run has nothing to wait for",
			watermark:  date(2024, 1, 12),
			now:        date(2024, 1, 14).Add(19 * time.Hour), // Sunday, even after cutoff
			wantReason: SkipUpToDate,
		},
		{
			name:       "friday synced, monday before cutoff waits for monday's data",
			watermark:  date(2024, 1, 12),
			now:        date(2024, 1, 15).Add(9 * time.Hour), // Monday
			wantReason: SkipNotYetPublished,
		},
		{
			name:      "friday synced, monday after cutoff fetches monday only",
			watermark: date(2024, 1, 12),
			now:       date(2024, 1, 15).Add(18 * time.Hour),
			wantFetch: true,
			wantFrom:  date(2024, 1, 15),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wm := tt.watermark
			plan := PlanFetchWindow(&wm, tt.now, plannerCfg)

			assert.Equal(t, tt.wantFetch, plan.Fetch)
			if tt.wantFetch {
				assert.Equal(t, tt.wantFrom, plan.From)
				assert.Equal(t, truncateDay(tt.now), plan.To)
			} else {
				assert.Equal(t, tt.wantReason, plan.Reason)
			}
		})
	}
}

func TestPlanFetchWindow_CutoffUsesLocalClock(t *testing.T) {
	karachi := time.FixedZone("PKT", 5*60*60)
	tuesday := date(2024, 1, 9)

	// 18:00 in Karachi is 13:00 UTC; the gate must read the local clock.
	now := time.Date(2024, 1, 10, 18, 0, 0, 0, karachi)

	wm := tuesday
	plan := PlanFetchWindow(&wm, now, plannerCfg)
	assert.True(t, plan.Fetch, "18:00 local is past the 17:00 cutoff")
}
