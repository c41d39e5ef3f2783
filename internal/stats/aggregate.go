package stats

import (
	"time"

	"oncall-report/internal/pagerduty"

	"github.com/m-mizutani/goerr/v2"
)

// UnknownUrgency is the code for any urgency outside the known set.
const UnknownUrgency = "Unknown"

var urgencyCodes = map[string]string{
	"low":  "L",
	"high": "H",
}

// UrgencyCode maps a PagerDuty urgency to its one-letter report code.
func UrgencyCode(urgency string) string {
	if code, ok := urgencyCodes[urgency]; ok {
		return code
	}
	return UnknownUrgency
}

// Created is an incident's creation instant split for reporting.
type Created struct {
	At   time.Time `json:"at"`
	Date string    `json:"date"` // YYYY-MM-DD
	Time string    `json:"time"` // HH:MM:SS
}

// Hour returns the hour of day the incident was created.
func (c Created) Hour() int {
	return c.At.Hour()
}

// NormalizedIncident is a raw incident plus the fields derived for the report.
type NormalizedIncident struct {
	pagerduty.Incident
	UrgencyCode string  `json:"urgencyCode"`
	Created     Created `json:"created"`
}

// DayBucket holds the incidents created on one calendar date.
type DayBucket struct {
	Date      time.Time            `json:"date"`
	Weekday   string               `json:"weekday"`
	Incidents []NormalizedIncident `json:"incidents"`
}

// NormalizeIncident derives the urgency code and the date/time split, with
// created_at expressed in loc.
func NormalizeIncident(inc pagerduty.Incident, loc *time.Location) (NormalizedIncident, error) {
	at, err := ParseTimestamp(inc.CreatedAt, time.UTC)
	if err != nil {
		return NormalizedIncident{}, goerr.Wrap(err, "invalid incident created_at",
			goerr.T(ErrTagParse), goerr.V("incident_id", inc.ID))
	}
	if loc != nil {
		at = at.In(loc)
	}

	return NormalizedIncident{
		Incident:    inc,
		UrgencyCode: UrgencyCode(inc.Urgency),
		Created: Created{
			At:   at,
			Date: at.Format(dateLayout),
			Time: at.Format(clockLayout),
		},
	}, nil
}

// NewDayBuckets returns one empty bucket per calendar date from since through
// until inclusive, in ascending order.
func NewDayBuckets(w Window) []DayBucket {
	loc := w.Location()
	first := DateOf(w.Since)
	last := DateOf(w.Until.In(loc))

	var buckets []DayBucket
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		buckets = append(buckets, DayBucket{
			Date:      day,
			Weekday:   day.Weekday().String(),
			Incidents: []NormalizedIncident{},
		})
	}
	return buckets
}

// GroupByDate normalizes every incident and files it under its creation date.
// An incident dated outside the window is a consistency error between the
// fetch window and the report window.
func GroupByDate(incidents []pagerduty.Incident, w Window) ([]DayBucket, error) {
	buckets := NewDayBuckets(w)

	index := make(map[string]int, len(buckets))
	for i, b := range buckets {
		index[DateLabel(b.Date)] = i
	}

	for _, inc := range incidents {
		normalized, err := NormalizeIncident(inc, w.Location())
		if err != nil {
			return nil, err
		}

		idx, ok := index[normalized.Created.Date]
		if !ok {
			return nil, goerr.New("incident created outside the report window",
				goerr.T(ErrTagOutOfWindow),
				goerr.V("incident_id", inc.ID),
				goerr.V("created_date", normalized.Created.Date),
				goerr.V("since", w.Since),
				goerr.V("until", w.Until))
		}
		buckets[idx].Incidents = append(buckets[idx].Incidents, normalized)
	}

	return buckets, nil
}
