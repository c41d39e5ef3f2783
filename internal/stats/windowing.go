package stats

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/rs/zerolog/log"
)

const (
	// DaysPerWeek is the width of the current and previous windows.
	DaysPerWeek = 7

	DefaultCutoverTime = "09:00:00"
	clockLayout        = "15:04:05"
	dateLayout         = "2006-01-02"
)

// Window is the half-open [Since, Until) interval a report covers.
type Window struct {
	Since time.Time `json:"since"`
	Until time.Time `json:"until"`
}

// Location returns the location both ends of the window are expressed in.
func (w Window) Location() *time.Location {
	return w.Since.Location()
}

// Cutover describes where a reporting week begins.
type Cutover struct {
	Weekday int    // 0 = Monday ... 6 = Sunday
	Time    string // HH:MM:SS
}

// DefaultCutover returns Monday-indexed weekday 0 at 09:00:00.
func DefaultCutover() Cutover {
	return Cutover{Weekday: 0, Time: DefaultCutoverTime}
}

// ResolveCurrent returns the week containing now: the preceding Sunday shifted
// by the cutover weekday, at the cutover time, plus seven days.
func ResolveCurrent(now time.Time, cutover Cutover) (Window, error) {
	clock, err := time.Parse(clockLayout, cutover.Time)
	if err != nil {
		return Window{}, goerr.Wrap(err, "invalid cutover time",
			goerr.T(ErrTagParse), goerr.V("cutover_time", cutover.Time))
	}

	if cutover.Weekday < 0 || cutover.Weekday >= DaysPerWeek {
		log.Warn().Int("cutover_weekday", cutover.Weekday).Msg("Cutover weekday outside 0-6, window will leave the intended week")
	}

	start := StartOfWeek(now)
	since := time.Date(start.Year(), start.Month(), start.Day()+cutover.Weekday,
		clock.Hour(), clock.Minute(), clock.Second(), 0, now.Location())

	return Window{
		Since: since,
		Until: since.AddDate(0, 0, DaysPerWeek),
	}, nil
}

// ResolvePrevious returns the current window shifted back one week at both ends.
func ResolvePrevious(now time.Time, cutover Cutover) (Window, error) {
	current, err := ResolveCurrent(now, cutover)
	if err != nil {
		return Window{}, err
	}
	return Window{
		Since: current.Since.AddDate(0, 0, -DaysPerWeek),
		Until: current.Until.AddDate(0, 0, -DaysPerWeek),
	}, nil
}

// ResolveSpan parses explicit bounds. Literals without an offset are read in loc;
// all results are expressed in loc.
func ResolveSpan(since, until string, loc *time.Location) (Window, error) {
	s, err := ParseTimestamp(since, loc)
	if err != nil {
		return Window{}, goerr.Wrap(err, "invalid since timestamp", goerr.T(ErrTagParse), goerr.V("since", since))
	}
	u, err := ParseTimestamp(until, loc)
	if err != nil {
		return Window{}, goerr.Wrap(err, "invalid until timestamp", goerr.T(ErrTagParse), goerr.V("until", until))
	}

	if !s.Before(u) {
		return Window{}, goerr.New("since must be before until",
			goerr.T(ErrTagInvalidWindow), goerr.V("since", since), goerr.V("until", until))
	}

	return Window{Since: s.In(loc), Until: u.In(loc)}, nil
}

// StartOfWeek returns midnight of the Sunday before day. A Sunday maps to the
// Sunday one week earlier.
func StartOfWeek(day time.Time) time.Time {
	offset := MondayIndex(day) + 1
	return time.Date(day.Year(), day.Month(), day.Day()-offset, 0, 0, 0, 0, day.Location())
}

// MondayIndex converts Go's Sunday-first weekday to Monday = 0 ... Sunday = 6.
func MondayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

var offsetLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02T15:04Z07:00",
	"2006-01-02 15:04Z07:00",
}

var naiveLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02T15",
	dateLayout,
}

// ParseTimestamp accepts ISO-8601 date and date-time literals. A trailing Z
// means UTC; literals without any offset are read in loc.
func ParseTimestamp(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range offsetLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, goerr.New("malformed ISO-8601 timestamp",
		goerr.T(ErrTagParse), goerr.V("value", s))
}

// DateOf truncates t to midnight of its calendar date in its own location.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DateLabel formats the calendar date of t as YYYY-MM-DD.
func DateLabel(t time.Time) string {
	return t.Format(dateLayout)
}
