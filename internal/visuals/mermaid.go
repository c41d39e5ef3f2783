// Package visuals renders report statistics as Mermaid charts that can be
// embedded in a markdown report.
package visuals

import (
	"fmt"
	"math"
	"strings"

	"oncall-report/internal/stats"
)

// HourlyChart creates a Mermaid bar chart of pages per hour of day.
func HourlyChart(statistics stats.Statistics) string {
	if statistics.Total == 0 {
		return ""
	}

	labels := make([]string, 0, stats.HoursPerDay)
	values := make([]int, 0, stats.HoursPerDay)
	for hour, count := range statistics.HourlyHistogram {
		labels = append(labels, fmt.Sprintf("\"%02d\"", hour))
		values = append(values, count)
	}

	return barChart("Pages by Hour of Day", "Pages", labels, values)
}

// DailyChart creates a Mermaid bar chart of pages per report day.
func DailyChart(buckets []stats.DayBucket) string {
	if len(buckets) == 0 {
		return ""
	}

	var labels []string
	var values []int
	for _, b := range buckets {
		weekday := b.Weekday
		if len(weekday) > 3 {
			weekday = weekday[:3]
		}
		labels = append(labels, fmt.Sprintf("\"%s %s\"", weekday, b.Date.Format("01-02")))
		values = append(values, len(b.Incidents))
	}

	return barChart("Pages per Day", "Pages", labels, values)
}

func barChart(title, yAxis string, labels []string, values []int) string {
	maxVal := 0
	counts := make([]string, 0, len(values))
	for _, v := range values {
		counts = append(counts, fmt.Sprintf("%d", v))
		if v > maxVal {
			maxVal = v
		}
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString(fmt.Sprintf("    title \"%s\"\n", title))
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"%s\" 0 --> %d\n", yAxis, maxVal+int(math.Max(1, float64(maxVal)*0.2))))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(counts, ", ")))
	sb.WriteString("```")
	return sb.String()
}
