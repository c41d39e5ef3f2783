package pagerduty

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// DefaultBaseURL is the public PagerDuty REST API endpoint.
const DefaultBaseURL = "https://api.pagerduty.com"

var (
	ErrTagAuth      = goerr.NewTag("pagerduty_auth")
	ErrTagRateLimit = goerr.NewTag("pagerduty_rate_limit")
	ErrTagStatus    = goerr.NewTag("pagerduty_status")
)

// Client is the interface for reading incidents from PagerDuty.
type Client interface {
	// ListIncidents returns every incident created in [since, until) for the
	// given services. An empty serviceIDs slice means all services.
	ListIncidents(since, until time.Time, serviceIDs []string) (*IncidentList, error)
}

// Config holds the authentication and connection settings for PagerDuty.
type Config struct {
	BaseURL string
	Token   string

	// Performance Settings
	PageSize int
	Timeout  time.Duration
}

// NewClient creates a new PagerDuty client based on the provided configuration.
func NewClient(cfg Config) Client {
	return NewRESTClient(cfg)
}
