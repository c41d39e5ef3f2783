package stats

import (
	"testing"

	"oncall-report/internal/pagerduty"
)

func bucketsFor(t *testing.T, createdAt ...string) []DayBucket {
	t.Helper()
	incidents := make([]pagerduty.Incident, 0, len(createdAt))
	for i, c := range createdAt {
		incidents = append(incidents, pagerduty.Incident{ID: string(rune('A' + i)), Urgency: "high", CreatedAt: c})
	}
	buckets, err := GroupByDate(incidents, mondayWindow())
	if err != nil {
		t.Fatalf("GroupByDate() error = %v", err)
	}
	return buckets
}

func TestComputeStatistics_Scenarios(t *testing.T) {
	tests := []struct {
		name      string
		createdAt []string
		total     int
		day       int
		night     int
		affected  int
	}{
		{"Afternoon page", []string{"2024-01-03T14:30:00Z"}, 1, 1, 0, 1},
		{"Night page", []string{"2024-01-01T02:00:00Z"}, 1, 0, 1, 1},
		{"No pages", nil, 0, 0, 0, 0},
		{"Boundaries", []string{"2024-01-02T06:59:59Z", "2024-01-02T07:00:00Z", "2024-01-02T22:59:59Z", "2024-01-02T23:00:00Z"}, 4, 2, 2, 4},
		{"Same hour twice", []string{"2024-01-04T11:05:00Z", "2024-01-05T11:55:00Z"}, 2, 2, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := ComputeStatistics(bucketsFor(t, tt.createdAt...))

			if s.Total != tt.total {
				t.Errorf("Total = %d, want %d", s.Total, tt.total)
			}
			if s.DayTimePages != tt.day {
				t.Errorf("DayTimePages = %d, want %d", s.DayTimePages, tt.day)
			}
			if s.NightTimePages != tt.night {
				t.Errorf("NightTimePages = %d, want %d", s.NightTimePages, tt.night)
			}
			if s.AffectedHours != tt.affected {
				t.Errorf("AffectedHours = %d, want %d", s.AffectedHours, tt.affected)
			}
			if s.DayTimePages+s.NightTimePages != s.Total {
				t.Errorf("day + night = %d, total = %d", s.DayTimePages+s.NightTimePages, s.Total)
			}
			if got := sum(s.HourlyHistogram[:]); got != s.Total {
				t.Errorf("sum(histogram) = %d, total = %d", got, s.Total)
			}
		})
	}
}

func TestHourlyHistogram(t *testing.T) {
	h := HourlyHistogram(bucketsFor(t, "2024-01-03T14:30:00Z", "2024-01-04T14:01:00Z", "2024-01-05T00:00:00Z"))

	if h[14] != 2 || h[0] != 1 {
		t.Errorf("histogram = %v", h)
	}
	if got := sum(h[:]); got != 3 {
		t.Errorf("sum = %d, want 3", got)
	}
}

func TestDayNightSplit(t *testing.T) {
	var h [HoursPerDay]int
	for i := range h {
		h[i] = 1
	}

	if got := DayTimePages(h); got != 16 {
		t.Errorf("DayTimePages(all ones) = %d, want 16", got)
	}
	if got := NightTimePages(h); got != 8 {
		t.Errorf("NightTimePages(all ones) = %d, want 8", got)
	}
	if got := AffectedHours(h); got != 24 {
		t.Errorf("AffectedHours(all ones) = %d, want 24", got)
	}
}
