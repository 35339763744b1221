package usecase

import "time"

// PlannerConfig holds the constants the fetch planner needs. Both values
// are injected from configuration; the planner itself never reads the
// environment or the system clock.
type PlannerConfig struct {
	// Epoch is the start of the historical backfill window for a symbol
	// that has never been synchronized.
	Epoch time.Time

	// Cutoff is the offset from local midnight after which the exchange
	// publishes the current trading day's data.
	Cutoff time.Duration
}

// SkipReason explains why the planner decided not to fetch. The two
// reasons are user-visible and deliberately distinct: "up to date" means
// there is nothing left to fetch, "not yet published" means today's data
// does not exist upstream yet.
type SkipReason string

const (
	SkipUpToDate        SkipReason = "already up to date"
	SkipNotYetPublished SkipReason = "today's data not yet published"
)

// Plan is the planner's decision for one symbol: either a fetch window
// [From, To] (inclusive calendar days) or a skip with a reason.
type Plan struct {
	Fetch  bool
	From   time.Time
	To     time.Time
	Reason SkipReason
}

// PlanFetchWindow computes the fetch window for a symbol given its
// watermark (the most recent stored date, nil when the symbol has never
// been synced) and the current wall-clock time. Pure function: now is
// explicit so the gating logic is unit-testable.
//
// The window never inverts: a watermark at or beyond today yields a skip,
// even under clock skew. Weekends are not trading days, so when the most
// recent weekday before today is already stored there is nothing to wait
// for except today itself, which is gated by the publication cutoff.
func PlanFetchWindow(watermark *time.Time, now time.Time, cfg PlannerConfig) Plan {
	today := truncateDay(now)

	if watermark == nil {
		return Plan{Fetch: true, From: truncateDay(cfg.Epoch), To: today}
	}

	wm := truncateDay(*watermark)
	if !wm.Before(today) {
		return Plan{Reason: SkipUpToDate}
	}

	// prev is the most recent weekday strictly before today. A watermark
	// covering prev means only today's row can be missing.
	prev := lastWeekday(today.AddDate(0, 0, -1))
	if !wm.Before(prev) {
		if isWeekend(today) {
			return Plan{Reason: SkipUpToDate}
		}
		if clockTime(now) < cfg.Cutoff {
			return Plan{Reason: SkipNotYetPublished}
		}
		return Plan{Fetch: true, From: today, To: today}
	}

	return Plan{Fetch: true, From: wm.AddDate(0, 0, 1), To: today}
}

// clockTime is the wall-clock offset from midnight in now's own location,
// so cutoff gating works regardless of the timestamp's zone.
func clockTime(now time.Time) time.Duration {
	return time.Duration(now.Hour())*time.Hour +
		time.Duration(now.Minute())*time.Minute +
		time.Duration(now.Second())*time.Second
}

// truncateDay normalizes a timestamp to midnight UTC of its calendar day.
func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// lastWeekday walks backwards from d to the nearest Monday-to-Friday day.
func lastWeekday(d time.Time) time.Time {
	for isWeekend(d) {
		d = d.AddDate(0, 0, -1)
	}
	return d
}

func isWeekend(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
