package report

import (
	"testing"
	"time"

	"github.com/pdiddy/deadliner/pkg/types"
)

// ref is a fixed reference date; the time of day must not matter.
var ref = time.Date(2024, 6, 15, 17, 30, 45, 0, time.Local)

func recordDue(year, month, day int) types.AnnotationRecord {
	return types.AnnotationRecord{Deadline: types.Deadline{Year: year, Month: month, Day: day}}
}

func TestDayDiff(t *testing.T) {
	tests := []struct {
		name     string
		deadline types.Deadline
		want     int
	}{
		{"same day", types.Deadline{Year: 2024, Month: 6, Day: 15}, 0},
		{"tomorrow", types.Deadline{Year: 2024, Month: 6, Day: 16}, 1},
		{"yesterday", types.Deadline{Year: 2024, Month: 6, Day: 14}, -1},
		{"next month", types.Deadline{Year: 2024, Month: 7, Day: 15}, 30},
		{"a month ago", types.Deadline{Year: 2024, Month: 5, Day: 16}, -30},
		{"across year boundary", types.Deadline{Year: 2025, Month: 1, Day: 1}, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DayDiff(tt.deadline, ref); got != tt.want {
				t.Errorf("DayDiff(%v) = %d, want %d", tt.deadline, got, tt.want)
			}
		})
	}
}

func TestDayDiffIgnoresTimeOfDay(t *testing.T) {
	deadline := types.Deadline{Year: 2024, Month: 6, Day: 16}
	early := time.Date(2024, 6, 15, 0, 0, 1, 0, time.Local)
	late := time.Date(2024, 6, 15, 23, 59, 59, 0, time.Local)
	if DayDiff(deadline, early) != DayDiff(deadline, late) {
		t.Error("day difference must depend only on calendar dates")
	}
}

func TestIsNotifiable(t *testing.T) {
	tests := []struct {
		name     string
		deadline types.Deadline
		cfg      types.NotifyConfig
		want     bool
	}{
		{
			name:     "due today with zero window",
			deadline: types.Deadline{Year: 2024, Month: 6, Day: 15},
			cfg:      types.NotifyConfig{WindowDays: 0},
			want:     true,
		},
		{
			name:     "tomorrow excluded by zero window",
			deadline: types.Deadline{Year: 2024, Month: 6, Day: 16},
			cfg:      types.NotifyConfig{WindowDays: 0},
			want:     false,
		},
		{
			name:     "yesterday excluded without past flag",
			deadline: types.Deadline{Year: 2024, Month: 6, Day: 14},
			cfg:      types.NotifyConfig{WindowDays: 0},
			want:     false,
		},
		{
			name:     "thirty days overdue included with past flag",
			deadline: types.Deadline{Year: 2024, Month: 5, Day: 16},
			cfg:      types.NotifyConfig{WindowDays: 0, PastDeadlines: true},
			want:     true,
		},
		{
			name:     "window edge inclusive",
			deadline: types.Deadline{Year: 2024, Month: 6, Day: 22},
			cfg:      types.NotifyConfig{WindowDays: 7},
			want:     true,
		},
		{
			name:     "beyond window excluded",
			deadline: types.Deadline{Year: 2024, Month: 6, Day: 23},
			cfg:      types.NotifyConfig{WindowDays: 7},
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNotifiable(recordDue(tt.deadline.Year, tt.deadline.Month, tt.deadline.Day), ref, tt.cfg); got != tt.want {
				t.Errorf("IsNotifiable = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilter(t *testing.T) {
	records := []types.AnnotationRecord{
		recordDue(2024, 6, 14), // overdue
		recordDue(2024, 6, 15), // today
		recordDue(2024, 6, 18), // inside window
		recordDue(2024, 12, 1), // far future
	}

	got := Filter(records, ref, types.NotifyConfig{WindowDays: 7})
	if len(got) != 2 {
		t.Fatalf("filtered %d records, want 2", len(got))
	}

	got = Filter(records, ref, types.NotifyConfig{WindowDays: 7, PastDeadlines: true})
	if len(got) != 3 {
		t.Fatalf("filtered %d records with past flag, want 3", len(got))
	}
}
