// Package report assembles, renders and delivers the weekly on-call report.
package report

import (
	"time"

	"oncall-report/internal/pagerduty"
	"oncall-report/internal/stats"
	"oncall-report/internal/visuals"

	"github.com/rs/zerolog/log"
)

const timespanLayout = "2006-01-02T15:04:05"

// Data is everything a report template can reference.
type Data struct {
	Timespan   stats.Window
	Incidents  *pagerduty.IncidentList
	ByDate     []stats.DayBucket
	Statistics stats.Statistics
}

// Build merges the outputs of the pipeline into one report.
func Build(window stats.Window, list *pagerduty.IncidentList, buckets []stats.DayBucket, statistics stats.Statistics) Data {
	if list == nil {
		list = &pagerduty.IncidentList{}
	}
	return Data{
		Timespan:   window,
		Incidents:  list,
		ByDate:     buckets,
		Statistics: statistics,
	}
}

// Generate fetches the incidents of window and runs them through the
// aggregation pipeline.
func Generate(client pagerduty.Client, window stats.Window, serviceIDs []string) (Data, error) {
	log.Info().
		Time("since", window.Since).
		Time("until", window.Until).
		Strs("services", serviceIDs).
		Msg("Generating report")

	list, err := client.ListIncidents(window.Since, window.Until, serviceIDs)
	if err != nil {
		return Data{}, err
	}

	buckets, err := stats.GroupByDate(list.Incidents, window)
	if err != nil {
		return Data{}, err
	}

	statistics := stats.ComputeStatistics(buckets)
	log.Debug().
		Int("total", statistics.Total).
		Int("affectedHours", statistics.AffectedHours).
		Int("dayTimePages", statistics.DayTimePages).
		Int("nightTimePages", statistics.NightTimePages).
		Msg("Computed statistics")

	return Build(window, list, buckets, statistics), nil
}

// Context is the template-facing view of the report. Keys follow the
// camelCase names the report templates have always used.
func (d Data) Context() map[string]any {
	byDate := make([]map[string]any, 0, len(d.ByDate))
	for _, bucket := range d.ByDate {
		incidents := make([]map[string]any, 0, len(bucket.Incidents))
		for _, inc := range bucket.Incidents {
			incidents = append(incidents, incidentContext(inc))
		}
		byDate = append(byDate, map[string]any{
			"date":      stats.DateLabel(bucket.Date),
			"weekday":   bucket.Weekday,
			"incidents": incidents,
		})
	}

	return map[string]any{
		"timespan": map[string]any{
			"since":    formatTimespan(d.Timespan.Since),
			"until":    formatTimespan(d.Timespan.Until),
			"timezone": d.Timespan.Location().String(),
		},
		"incidents": d.Incidents.Map(),
		"byDate":    byDate,
		"statistics": map[string]any{
			"total":           d.Statistics.Total,
			"hourlyHistogram": d.Statistics.HourlyHistogram[:],
			"affectedHours":   d.Statistics.AffectedHours,
			"dayTimePages":    d.Statistics.DayTimePages,
			"nightTimePages":  d.Statistics.NightTimePages,
		},
		"charts": map[string]any{
			"hourly": visuals.HourlyChart(d.Statistics),
			"daily":  visuals.DailyChart(d.ByDate),
		},
	}
}

func incidentContext(inc stats.NormalizedIncident) map[string]any {
	m := inc.Map()
	m["urgencyCode"] = inc.UrgencyCode
	m["created"] = map[string]any{
		"date": inc.Created.Date,
		"time": inc.Created.Time,
	}
	return m
}

func formatTimespan(t time.Time) string {
	return t.Format(timespanLayout)
}
