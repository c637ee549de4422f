package doctor

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// ServiceCheck verifies the analysis service answers HTTP requests. Any
// response counts as reachable; the service exposes no health route.
type ServiceCheck struct {
	baseURL string
	client  *http.Client
}

// NewServiceCheck creates a check against baseURL. A nil client uses a
// client with a short timeout.
func NewServiceCheck(baseURL string, client *http.Client) *ServiceCheck {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	return &ServiceCheck{baseURL: baseURL, client: client}
}

func (c *ServiceCheck) Name() string {
	return "Analysis Service"
}

func (c *ServiceCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		result.Items = append(result.Items, fail(c.baseURL, fmt.Sprintf("invalid url: %v", err)))
		return result
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		result.Items = append(result.Items, fail(c.baseURL, "unreachable"))
		return result
	}
	_ = resp.Body.Close()

	result.Items = append(result.Items, pass(c.baseURL, fmt.Sprintf("HTTP %d in %s", resp.StatusCode, time.Since(start).Round(time.Millisecond))))
	return result
}
