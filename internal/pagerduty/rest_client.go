package pagerduty

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/rs/zerolog/log"
)

type restClient struct {
	cfg        Config
	httpClient *http.Client
}

// NewRESTClient returns a Client for the PagerDuty REST API v2, filling in
// defaults for the base URL, page size and timeout.
func NewRESTClient(cfg Config) Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.PageSize <= 0 {
		cfg.PageSize = 100
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 90 * time.Second
	}
	return &restClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

func (c *restClient) authenticateRequest(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/vnd.pagerduty+json;version=2")
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Token token=%s", c.cfg.Token))
	}
}

func (c *restClient) ListIncidents(since, until time.Time, serviceIDs []string) (*IncidentList, error) {
	merged := &IncidentList{Limit: c.cfg.PageSize}
	offset := 0

	for {
		page, err := c.listIncidentsPage(since, until, serviceIDs, offset)
		if err != nil {
			return nil, err
		}

		merged.Incidents = append(merged.Incidents, page.Incidents...)
		merged.Total = page.Total

		if !page.More || len(page.Incidents) == 0 {
			break
		}
		offset += len(page.Incidents)
	}

	// total is only populated by the API when asked for; never report fewer than we hold.
	if merged.Total < len(merged.Incidents) {
		merged.Total = len(merged.Incidents)
	}

	log.Info().
		Int("count", len(merged.Incidents)).
		Time("since", since).
		Time("until", until).
		Msg("Fetched incidents from PagerDuty")

	return merged, nil
}

func (c *restClient) listIncidentsPage(since, until time.Time, serviceIDs []string, offset int) (*IncidentList, error) {
	params := url.Values{}
	params.Set("since", since.Format(time.RFC3339))
	params.Set("until", until.Format(time.RFC3339))
	for _, id := range serviceIDs {
		params.Add("service_ids[]", id)
	}
	params.Set("offset", strconv.Itoa(offset))
	params.Set("limit", strconv.Itoa(c.cfg.PageSize))
	params.Set("total", "true")

	searchURL := fmt.Sprintf("%s/incidents?%s", c.cfg.BaseURL, params.Encode())
	log.Debug().Str("url", searchURL).Int("offset", offset).Msg("Requesting incidents page")

	req, err := http.NewRequest(http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build incidents request")
	}

	c.authenticateRequest(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to request incidents", goerr.V("url", c.cfg.BaseURL))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		switch resp.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return nil, goerr.New("PagerDuty authentication failed (401/403), check the API token",
				goerr.T(ErrTagAuth), goerr.V("status", resp.StatusCode))
		case http.StatusTooManyRequests:
			retryAfter := resp.Header.Get("Retry-After")
			if retryAfter != "" {
				return nil, goerr.New(fmt.Sprintf("PagerDuty rate limit exceeded (429), retry after %s seconds", retryAfter),
					goerr.T(ErrTagRateLimit), goerr.V("retry_after", retryAfter))
			}
			return nil, goerr.New("PagerDuty rate limit exceeded (429)", goerr.T(ErrTagRateLimit))
		default:
			return nil, goerr.New(fmt.Sprintf("PagerDuty API returned status %d", resp.StatusCode),
				goerr.T(ErrTagStatus), goerr.V("status", resp.StatusCode))
		}
	}

	var page IncidentList
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, goerr.Wrap(err, "failed to decode incidents response")
	}

	return &page, nil
}
