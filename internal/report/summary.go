package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"oncall-report/internal/stats"

	"github.com/olekukonko/tablewriter"
)

// WriteSummary prints a per-day table and the headline statistics.
func WriteSummary(w io.Writer, data Data) {
	table := tablewriter.NewWriter(w)

	table.SetHeader([]string{"DATE", "WEEKDAY", "PAGES", "HIGH", "LOW", "OTHER"})
	table.SetBorders(tablewriter.Border{Left: true, Top: true, Right: true, Bottom: true})
	table.SetCenterSeparator("|")
	table.SetColumnSeparator("|")
	table.SetRowSeparator("-")
	table.SetAlignment(tablewriter.ALIGN_CENTER)
	table.SetHeaderAlignment(tablewriter.ALIGN_CENTER)

	for _, bucket := range data.ByDate {
		counts := map[string]int{}
		for _, inc := range bucket.Incidents {
			counts[inc.UrgencyCode]++
		}
		table.Append([]string{
			stats.DateLabel(bucket.Date),
			bucket.Weekday,
			strconv.Itoa(len(bucket.Incidents)),
			strconv.Itoa(counts["H"]),
			strconv.Itoa(counts["L"]),
			strconv.Itoa(counts[stats.UnknownUrgency]),
		})
	}
	table.SetFooter([]string{"", "TOTAL", strconv.Itoa(data.Statistics.Total), "", "", ""})

	table.Render()

	s := data.Statistics
	fmt.Fprintf(w, "Affected hours: %d  Day-time pages: %d  Night-time pages: %d\n",
		s.AffectedHours, s.DayTimePages, s.NightTimePages)
	fmt.Fprintf(w, "Hourly: %s\n", formatHistogram(s.HourlyHistogram))
}

func formatHistogram(histogram [stats.HoursPerDay]int) string {
	parts := make([]string, 0, len(histogram))
	for hour, count := range histogram {
		parts = append(parts, fmt.Sprintf("%02d:%d", hour, count))
	}
	return strings.Join(parts, " ")
}
