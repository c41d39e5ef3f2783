package engine

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"oncall-report/internal/pagerduty"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"
)

type GeneratorConfig struct {
	Scenario string // "mild", "noisy" or "nightly"
	Days     int
	Count    int
	Seed     int64
	Now      time.Time
}

var services = []pagerduty.Reference{
	{ID: "PSTORE1", Type: "service_reference", Summary: "storage"},
	{ID: "PAPI001", Type: "service_reference", Summary: "public-api"},
	{ID: "PBATCH1", Type: "service_reference", Summary: "batch"},
}

var titles = []string{
	"Disk usage above 90%",
	"Error rate above threshold",
	"Queue backlog growing",
	"Certificate expires in 7 days",
	"Latency p99 above SLO",
}

// Generate returns incidents sorted by creation time, all created before cfg.Now.
func Generate(cfg GeneratorConfig) []pagerduty.Incident {
	if cfg.Now.IsZero() {
		cfg.Now = time.Now()
	}
	if cfg.Days <= 0 {
		cfg.Days = 14
	}
	rng := rand.New(rand.NewSource(cfg.Seed))

	start := cfg.Now.AddDate(0, 0, -cfg.Days)
	span := cfg.Now.Sub(start)

	incidents := make([]pagerduty.Incident, 0, cfg.Count)
	for i := 0; i < cfg.Count; i++ {
		created := start.Add(time.Duration(rng.Int63n(int64(span))))

		urgency := "low"
		switch cfg.Scenario {
		case "noisy":
			if rng.Float64() < 0.7 {
				urgency = "high"
			}
		case "nightly":
			// Pin most pages into the 23:00-07:00 band.
			if rng.Float64() < 0.8 {
				day := time.Date(created.Year(), created.Month(), created.Day(), 23, 0, 0, 0, created.Location())
				created = day.Add(time.Duration(rng.Int63n(int64(8 * time.Hour))))
				if !created.Before(cfg.Now) {
					created = created.AddDate(0, 0, -1)
				}
			}
			urgency = "high"
		default:
			if rng.Float64() < 0.3 {
				urgency = "high"
			}
		}

		service := services[rng.Intn(len(services))]
		incidents = append(incidents, pagerduty.Incident{
			ID:             fmt.Sprintf("PMOCK%04d", i+1),
			IncidentNumber: i + 1,
			Title:          titles[rng.Intn(len(titles))],
			Status:         "resolved",
			Urgency:        urgency,
			CreatedAt:      created.UTC().Format(time.RFC3339),
			HTMLURL:        fmt.Sprintf("https://example.pagerduty.com/incidents/PMOCK%04d", i+1),
			Service:        service,
		})
	}

	sort.Slice(incidents, func(a, b int) bool {
		return incidents[a].CreatedAt < incidents[b].CreatedAt
	})
	return incidents
}

func Save(path string, incidents []pagerduty.Incident) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	list := pagerduty.IncidentList{
		Incidents: incidents,
		Limit:     len(incidents),
		Total:     len(incidents),
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(list.Map())
}

// Handler serves GET /incidents the way the PagerDuty REST API does for the
// parameters oncall-report sends: since/until filter, service_ids[] and
// offset/limit pagination.
func Handler(incidents []pagerduty.Incident) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/incidents", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		since, err := time.Parse(time.RFC3339, q.Get("since"))
		if err != nil {
			http.Error(w, "invalid since", http.StatusBadRequest)
			return
		}
		until, err := time.Parse(time.RFC3339, q.Get("until"))
		if err != nil {
			http.Error(w, "invalid until", http.StatusBadRequest)
			return
		}

		allowed := map[string]bool{}
		for _, id := range q["service_ids[]"] {
			allowed[id] = true
		}

		var matched []pagerduty.Incident
		for _, inc := range incidents {
			created, err := time.Parse(time.RFC3339, inc.CreatedAt)
			if err != nil || created.Before(since) || !created.Before(until) {
				continue
			}
			if len(allowed) > 0 && !allowed[inc.Service.ID] {
				continue
			}
			matched = append(matched, inc)
		}

		offset := 0
		if raw := q.Get("offset"); raw != "" {
			offset, err = strconv.Atoi(raw)
			if err != nil || offset < 0 {
				http.Error(w, "invalid offset", http.StatusBadRequest)
				return
			}
		}
		limit, _ := strconv.Atoi(q.Get("limit"))
		if limit <= 0 {
			limit = 25
		}
		if offset > len(matched) {
			offset = len(matched)
		}
		end := offset + limit
		if end > len(matched) {
			end = len(matched)
		}

		page := pagerduty.IncidentList{
			Incidents: matched[offset:end],
			Limit:     limit,
			Offset:    offset,
			Total:     len(matched),
			More:      end < len(matched),
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(page.Map())
	})
	return mux
}
