package stats

import (
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

func TestResolveCurrent(t *testing.T) {
	tests := []struct {
		name      string
		now       time.Time
		cutover   Cutover
		wantSince time.Time
	}{
		{
			name:      "Wednesday with default cutover lands on the preceding Sunday",
			now:       time.Date(2024, 1, 3, 10, 0, 0, 0, time.UTC),
			cutover:   DefaultCutover(),
			wantSince: time.Date(2023, 12, 31, 9, 0, 0, 0, time.UTC),
		},
		{
			name:      "Cutover weekday 1 moves to Monday",
			now:       time.Date(2024, 1, 3, 10, 0, 0, 0, time.UTC),
			cutover:   Cutover{Weekday: 1, Time: "09:00:00"},
			wantSince: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		},
		{
			name:      "Monday goes back one day",
			now:       time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC),
			cutover:   Cutover{Weekday: 0, Time: "17:30:15"},
			wantSince: time.Date(2023, 12, 31, 17, 30, 15, 0, time.UTC),
		},
		{
			name:      "Sunday goes back a full week",
			now:       time.Date(2024, 1, 7, 12, 0, 0, 0, time.UTC),
			cutover:   DefaultCutover(),
			wantSince: time.Date(2023, 12, 31, 9, 0, 0, 0, time.UTC),
		},
		{
			name:      "Out of range weekday is not corrected",
			now:       time.Date(2024, 1, 3, 10, 0, 0, 0, time.UTC),
			cutover:   Cutover{Weekday: 9, Time: "09:00:00"},
			wantSince: time.Date(2024, 1, 9, 9, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := ResolveCurrent(tt.now, tt.cutover)
			if err != nil {
				t.Fatalf("ResolveCurrent() error = %v", err)
			}
			if !w.Since.Equal(tt.wantSince) {
				t.Errorf("ResolveCurrent().Since = %v, want %v", w.Since, tt.wantSince)
			}
			if got := w.Until.Sub(w.Since); got != 7*24*time.Hour {
				t.Errorf("window width = %v, want 168h", got)
			}
		})
	}
}

func TestResolveCurrent_KeepsLocation(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	now := time.Date(2024, 1, 3, 22, 0, 0, 0, loc)

	w, err := ResolveCurrent(now, DefaultCutover())
	if err != nil {
		t.Fatalf("ResolveCurrent() error = %v", err)
	}
	if w.Location() != loc {
		t.Errorf("Location() = %v, want %v", w.Location(), loc)
	}
	if w.Since.Hour() != 9 || w.Since.Day() != 31 {
		t.Errorf("Since = %v, want 2023-12-31 09:00 in UTC-5", w.Since)
	}
}

func TestResolveCurrent_BadCutoverTime(t *testing.T) {
	for _, bad := range []string{"9am", "25:00:00", "09:00", ""} {
		_, err := ResolveCurrent(time.Now(), Cutover{Time: bad})
		if err == nil {
			t.Errorf("ResolveCurrent(%q) expected error", bad)
			continue
		}
		if !goerr.HasTag(err, ErrTagParse) {
			t.Errorf("ResolveCurrent(%q) error not tagged as parse: %v", bad, err)
		}
	}
}

func TestResolvePrevious(t *testing.T) {
	now := time.Date(2024, 1, 10, 15, 0, 0, 0, time.UTC)
	cutover := Cutover{Weekday: 1, Time: "09:00:00"}

	current, err := ResolveCurrent(now, cutover)
	if err != nil {
		t.Fatal(err)
	}
	previous, err := ResolvePrevious(now, cutover)
	if err != nil {
		t.Fatal(err)
	}

	if !previous.Since.Equal(current.Since.AddDate(0, 0, -7)) {
		t.Errorf("previous.Since = %v, want %v", previous.Since, current.Since.AddDate(0, 0, -7))
	}
	if !previous.Until.Equal(current.Until.AddDate(0, 0, -7)) {
		t.Errorf("previous.Until = %v, want %v", previous.Until, current.Until.AddDate(0, 0, -7))
	}
	if !previous.Until.Equal(current.Since) {
		t.Errorf("previous window should end where the current one starts")
	}
	if got := previous.Until.Sub(previous.Since); got != 7*24*time.Hour {
		t.Errorf("previous width = %v, want 168h", got)
	}
}

func TestResolveSpan(t *testing.T) {
	loc := time.FixedZone("CET", 3600)

	tests := []struct {
		name      string
		since     string
		until     string
		wantSince time.Time
		wantUntil time.Time
	}{
		{
			name:      "Dates only",
			since:     "2024-01-01",
			until:     "2024-01-08",
			wantSince: time.Date(2024, 1, 1, 0, 0, 0, 0, loc),
			wantUntil: time.Date(2024, 1, 8, 0, 0, 0, 0, loc),
		},
		{
			name:      "Naive date-times",
			since:     "2024-01-01T09:00:00",
			until:     "2024-01-02 17:30",
			wantSince: time.Date(2024, 1, 1, 9, 0, 0, 0, loc),
			wantUntil: time.Date(2024, 1, 2, 17, 30, 0, 0, loc),
		},
		{
			name:      "Offsets are honoured",
			since:     "2024-01-01T08:00:00Z",
			until:     "2024-01-01T12:00:00.250+02:00",
			wantSince: time.Date(2024, 1, 1, 9, 0, 0, 0, loc),
			wantUntil: time.Date(2024, 1, 1, 11, 0, 0, 250000000, loc),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := ResolveSpan(tt.since, tt.until, loc)
			if err != nil {
				t.Fatalf("ResolveSpan() error = %v", err)
			}
			if !w.Since.Equal(tt.wantSince) || !w.Until.Equal(tt.wantUntil) {
				t.Errorf("ResolveSpan() = [%v, %v), want [%v, %v)", w.Since, w.Until, tt.wantSince, tt.wantUntil)
			}
			if w.Location() != loc {
				t.Errorf("Location() = %v, want %v", w.Location(), loc)
			}
		})
	}
}

func TestResolveSpan_Errors(t *testing.T) {
	tests := []struct {
		name  string
		since string
		until string
		tag   func(error) bool
	}{
		{"Malformed since", "yesterday", "2024-01-08", isParse},
		{"Malformed until", "2024-01-01", "2024-13-45", isParse},
		{"Empty", "", "2024-01-08", isParse},
		{"Reversed", "2024-01-08", "2024-01-01", isInvalidWindow},
		{"Empty window", "2024-01-01T09:00:00", "2024-01-01T09:00:00", isInvalidWindow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveSpan(tt.since, tt.until, time.UTC)
			if err == nil {
				t.Fatal("ResolveSpan() expected error")
			}
			if !tt.tag(err) {
				t.Errorf("ResolveSpan() error has wrong tag: %v", err)
			}
		})
	}
}

func isParse(err error) bool         { return goerr.HasTag(err, ErrTagParse) }
func isInvalidWindow(err error) bool { return goerr.HasTag(err, ErrTagInvalidWindow) }

func TestStartOfWeek(t *testing.T) {
	sunday := time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)
	for day := 1; day <= 7; day++ {
		d := time.Date(2024, 1, day, 13, 0, 0, 0, time.UTC)
		if got := StartOfWeek(d); !got.Equal(sunday) {
			t.Errorf("StartOfWeek(%s) = %v, want %v", d.Weekday(), got, sunday)
		}
	}
}

func TestMondayIndex(t *testing.T) {
	want := []int{0, 1, 2, 3, 4, 5, 6}
	for i, w := range want {
		d := time.Date(2024, 1, 1+i, 0, 0, 0, 0, time.UTC)
		if got := MondayIndex(d); got != w {
			t.Errorf("MondayIndex(%s) = %d, want %d", d.Weekday(), got, w)
		}
	}
}
