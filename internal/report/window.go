// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report filters annotation records by deadline window and composes
// the notification message.
package report

import (
	"math"
	"time"

	"github.com/pdiddy/deadliner/pkg/types"
)

// DayDiff returns the whole-day distance from ref to the deadline. Both
// dates are normalized to local calendar midnight before subtracting, and
// the quotient is floored, so the result is negative for past deadlines,
// zero for today, and positive for future ones.
func DayDiff(d types.Deadline, ref time.Time) int {
	refMidnight := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.Local)
	return int(math.Floor(d.Date().Sub(refMidnight).Hours() / 24))
}

// IsNotifiable reports whether the record's deadline falls inside the
// notification window: due today through WindowDays days ahead, or any
// past deadline when PastDeadlines is set.
func IsNotifiable(rec types.AnnotationRecord, ref time.Time, cfg types.NotifyConfig) bool {
	diff := DayDiff(rec.Deadline, ref)
	if diff < 0 {
		return cfg.PastDeadlines
	}
	return diff <= cfg.WindowDays
}

// Filter returns the records whose deadlines are notifiable at ref.
func Filter(records []types.AnnotationRecord, ref time.Time, cfg types.NotifyConfig) []types.AnnotationRecord {
	var out []types.AnnotationRecord
	for _, rec := range records {
		if IsNotifiable(rec, ref, cfg) {
			out = append(out, rec)
		}
	}
	return out
}
