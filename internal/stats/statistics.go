package stats

// Hour boundaries for the day/night split. Day time is [DayStartHour, NightStartHour).
const (
	HoursPerDay    = 24
	DayStartHour   = 7
	NightStartHour = 23
)

// Statistics summarises the bucketed incidents of one report.
type Statistics struct {
	Total           int              `json:"total"`
	HourlyHistogram [HoursPerDay]int `json:"hourlyHistogram"`
	AffectedHours   int              `json:"affectedHours"`
	DayTimePages    int              `json:"dayTimePages"`
	NightTimePages  int              `json:"nightTimePages"`
}

// ComputeStatistics derives every statistic from the buckets.
func ComputeStatistics(buckets []DayBucket) Statistics {
	histogram := HourlyHistogram(buckets)
	return Statistics{
		Total:           TotalIncidents(buckets),
		HourlyHistogram: histogram,
		AffectedHours:   AffectedHours(histogram),
		DayTimePages:    DayTimePages(histogram),
		NightTimePages:  NightTimePages(histogram),
	}
}

// TotalIncidents counts incidents across all buckets.
func TotalIncidents(buckets []DayBucket) int {
	total := 0
	for _, b := range buckets {
		total += len(b.Incidents)
	}
	return total
}

// HourlyHistogram counts incidents by hour of creation.
func HourlyHistogram(buckets []DayBucket) [HoursPerDay]int {
	var hours [HoursPerDay]int
	for _, b := range buckets {
		for _, inc := range b.Incidents {
			hours[inc.Created.Hour()]++
		}
	}
	return hours
}

// AffectedHours counts the hours with at least one incident.
func AffectedHours(histogram [HoursPerDay]int) int {
	n := 0
	for _, count := range histogram {
		if count > 0 {
			n++
		}
	}
	return n
}

// DayTimePages counts incidents created in [DayStartHour, NightStartHour).
func DayTimePages(histogram [HoursPerDay]int) int {
	return sum(histogram[DayStartHour:NightStartHour])
}

// NightTimePages counts incidents created outside the day-time band.
func NightTimePages(histogram [HoursPerDay]int) int {
	return sum(histogram[:DayStartHour]) + sum(histogram[NightStartHour:])
}

func sum(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}
