package tvheadend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"tvhshrink/internal/config"
	"tvhshrink/internal/services"
)

const defaultTimeout = 30 * time.Second

// HTTPDoer describes the HTTP client used by the registry client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Record is a raw registry node: its class plus the parameter list flattened
// into a string map. Non-scalar parameter values are skipped.
type Record struct {
	Class  string
	Params map[string]string
}

// Param returns the named parameter value, or "" when absent.
func (r Record) Param(id string) string {
	return r.Params[id]
}

// Client talks to the TVHeadend HTTP API.
type Client struct {
	baseURL  string
	username string
	password string
	client   HTTPDoer
}

// New constructs a registry client from the configured connection settings.
func New(cfg config.Registry) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:  strings.TrimRight(strings.TrimSpace(cfg.URL), "/"),
		username: strings.TrimSpace(cfg.Username),
		password: cfg.Password,
		client:   &http.Client{Timeout: timeout},
	}
}

// NewWithDoer constructs a client with an injected HTTP doer (primarily for tests).
func NewWithDoer(baseURL, username, password string, doer HTTPDoer) *Client {
	return &Client{
		baseURL:  strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		username: strings.TrimSpace(username),
		password: password,
		client:   doer,
	}
}

type loadResponse struct {
	Entries []struct {
		Class  string `json:"class"`
		Params []struct {
			ID    string `json:"id"`
			Value any    `json:"value"`
		} `json:"params"`
	} `json:"entries"`
}

// Lookup fetches the registry node with the given identifier via
// api/idnode/load and flattens its parameters.
func (c *Client) Lookup(ctx context.Context, id string) (Record, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Record{}, services.Wrap(services.ErrValidation, "registry", "lookup", "node id required", nil)
	}

	endpoint := fmt.Sprintf("%s/api/idnode/load?%s", c.baseURL, url.Values{"uuid": {id}}.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Record{}, services.Wrap(services.ErrRegistryUnavailable, "registry", "lookup", "build request", err)
	}
	c.decorate(ctx, req)

	resp, err := c.client.Do(req)
	if err != nil {
		return Record{}, services.Wrap(services.ErrRegistryUnavailable, "registry", "lookup", id, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Record{}, services.Wrap(services.ErrRegistryUnavailable, "registry", "lookup", fmt.Sprintf("%s returned %d", id, resp.StatusCode), nil)
	}

	var payload loadResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Record{}, services.Wrap(services.ErrRegistryUnavailable, "registry", "lookup", "decode response", err)
	}
	if len(payload.Entries) == 0 {
		return Record{}, services.Wrap(services.ErrRegistryUnavailable, "registry", "lookup", fmt.Sprintf("no node for %s", id), nil)
	}

	entry := payload.Entries[0]
	record := Record{Class: entry.Class, Params: make(map[string]string, len(entry.Params))}
	for _, param := range entry.Params {
		if param.ID == "" {
			continue
		}
		if value, ok := renderScalar(param.Value); ok {
			record.Params[param.ID] = value
		}
	}
	return record, nil
}

// NotifyMoved tells the registry that a recording file moved from src to dst
// via api/dvr/entry/filemoved. A non-2xx response is an error; callers must
// not delete the source when it fails.
func (c *Client) NotifyMoved(ctx context.Context, src, dst string) error {
	form := url.Values{"src": {src}, "dst": {dst}}
	endpoint := c.baseURL + "/api/dvr/entry/filemoved"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return services.Wrap(services.ErrRegistryUnavailable, "notify", "filemoved", "build request", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	c.decorate(ctx, req)

	resp, err := c.client.Do(req)
	if err != nil {
		return services.Wrap(services.ErrRegistryUnavailable, "notify", "filemoved", "request failed", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return services.Wrap(services.ErrRegistryUnavailable, "notify", "filemoved", fmt.Sprintf("registry returned %d", resp.StatusCode), nil)
	}
	return nil
}

func (c *Client) decorate(ctx context.Context, req *http.Request) {
	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}
	if runID, ok := services.RunIDFromContext(ctx); ok {
		req.Header.Set("X-Request-ID", runID)
	}
}

// renderScalar converts a decoded JSON parameter value to its string form.
// Lists and objects are not scalars and report false.
func renderScalar(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10), true
		}
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(v), true
	case nil:
		return "", false
	default:
		return "", false
	}
}
