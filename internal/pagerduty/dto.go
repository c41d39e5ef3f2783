package pagerduty

import (
	"encoding/json"
	"maps"
)

// IncidentList is the merged result of one or more /incidents pages.
type IncidentList struct {
	Incidents []Incident `json:"incidents"`
	Limit     int        `json:"limit"`
	Offset    int        `json:"offset"`
	Total     int        `json:"total"`
	More      bool       `json:"more"`
}

// Incident is a single PagerDuty incident. The fields the report relies on
// are decoded explicitly; the complete JSON object is kept in Fields so that
// templates can reach anything else the API returned.
type Incident struct {
	ID             string    `json:"id"`
	IncidentNumber int       `json:"incident_number"`
	Title          string    `json:"title"`
	Status         string    `json:"status"`
	Urgency        string    `json:"urgency"`
	CreatedAt      string    `json:"created_at"`
	HTMLURL        string    `json:"html_url"`
	Service        Reference `json:"service"`

	Fields map[string]any `json:"-"`
}

// Reference is PagerDuty's compact pointer to another resource.
type Reference struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Summary string `json:"summary"`
	HTMLURL string `json:"html_url,omitempty"`
}

// UnmarshalJSON decodes the known fields and preserves the raw object.
func (i *Incident) UnmarshalJSON(data []byte) error {
	type plain Incident
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*i = Incident(p)
	i.Fields = fields
	return nil
}

// Map returns a fresh copy of the incident's fields. Incidents built in code
// rather than decoded from the API fall back to their known fields.
func (i Incident) Map() map[string]any {
	if i.Fields != nil {
		return maps.Clone(i.Fields)
	}

	m := map[string]any{
		"id":              i.ID,
		"incident_number": i.IncidentNumber,
		"title":           i.Title,
		"status":          i.Status,
		"created_at":      i.CreatedAt,
		"html_url":        i.HTMLURL,
		"service": map[string]any{
			"id":      i.Service.ID,
			"type":    i.Service.Type,
			"summary": i.Service.Summary,
		},
	}
	if i.Urgency != "" {
		m["urgency"] = i.Urgency
	}
	return m
}

// Map returns the list in the shape of a single /incidents response. A nil
// list maps to an empty response.
func (l *IncidentList) Map() map[string]any {
	if l == nil {
		l = &IncidentList{}
	}
	incidents := make([]map[string]any, 0, len(l.Incidents))
	for _, inc := range l.Incidents {
		incidents = append(incidents, inc.Map())
	}
	return map[string]any{
		"incidents": incidents,
		"limit":     l.Limit,
		"offset":    l.Offset,
		"total":     l.Total,
		"more":      l.More,
	}
}
