package csuite

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/AMCF-2026/jidhr/internal/pkg/apierr"
	"github.com/AMCF-2026/jidhr/internal/pkg/logger"
)

// HTTPDoer is the interface for executing HTTP requests.
// *http.Client satisfies it; tests inject fakes.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config holds CSuite API client settings.
type Config struct {
	APIKey    string
	APISecret string
	BaseURL   string
	Env       string
	Timeout   time.Duration
}

// Client is the CSuite fund-accounting API client. Every request is a POST
// whose JSON body is signed with HMAC-SHA256 over the API secret.
type Client struct {
	apiKey     string
	apiSecret  string
	baseURL    string
	env        string
	httpClient HTTPDoer
	now        func() time.Time
}

// NewClient creates a new CSuite API client
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	env := cfg.Env
	if env == "" {
		env = "live"
	}
	return &Client{
		apiKey:    cfg.APIKey,
		apiSecret: cfg.APISecret,
		baseURL:   cfg.BaseURL,
		env:       env,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		now: time.Now,
	}
}

// SetHTTPClient sets a custom HTTP client (useful for testing)
func (c *Client) SetHTTPClient(client HTTPDoer) {
	c.httpClient = client
}

// sign returns the Base64 HMAC-SHA256 signature of the request body.
func (c *Client) sign(body []byte) string {
	mac := hmac.New(sha256.New, []byte(c.apiSecret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// doRequest performs a signed POST to the CSuite API and normalizes the
// response envelope.
func (c *Client) doRequest(ctx context.Context, endpoint string, data map[string]interface{}) (*page, error) {
	op := "csuite." + endpoint

	if c.apiKey == "" || c.apiSecret == "" {
		return nil, apierr.New(apierr.Config, op, "CSuite API credentials not configured")
	}

	// Every payload carries the environment and a request epoch.
	payload := map[string]interface{}{
		"env":   c.env,
		"epoch": c.now().Unix(),
	}
	for k, v := range data {
		payload[k] = v
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, apierr.Wrap(apierr.Transport, op, fmt.Errorf("failed to marshal request body: %w", err))
	}

	reqURL := fmt.Sprintf("%s/%s", c.baseURL, endpoint)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return nil, apierr.Wrap(apierr.Transport, op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("SIGNER", c.apiKey)
	req.Header.Set("SIGNATURE", c.sign(body))

	logger.Debug("csuite request", "endpoint", endpoint)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apierr.Wrap(apierr.Transport, op, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apierr.Wrap(apierr.Transport, op, fmt.Errorf("failed to read response body: %w", err))
	}

	pg, err := unwrapPage(respBody)
	if err != nil {
		return nil, apierr.Wrap(apierr.Transport, op, err)
	}
	if !pg.OK {
		return nil, apierr.New(apierr.Domain, op, "API error: %s", pg.ErrMsg)
	}
	return pg, nil
}

// doList performs a signed list request and decodes each record into T.
func doList[T any](ctx context.Context, c *Client, endpoint string, data map[string]interface{}) ([]T, error) {
	pg, err := c.doRequest(ctx, endpoint, data)
	if err != nil {
		return nil, err
	}

	records := make([]T, 0, len(pg.Records))
	for _, raw := range pg.Records {
		var rec T
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, apierr.Wrap(apierr.Malformed, "csuite."+endpoint, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// ListProfiles retrieves one page of donor profiles.
func (c *Client) ListProfiles(ctx context.Context, limit, offset int) ([]Profile, error) {
	return doList[Profile](ctx, c, "profile/list", map[string]interface{}{
		"view_limit":  limit,
		"view_offset": offset,
	})
}

// ListDonations retrieves one page of donation records.
func (c *Client) ListDonations(ctx context.Context, limit, offset int) ([]Donation, error) {
	return doList[Donation](ctx, c, "donation/list", map[string]interface{}{
		"view_limit":  limit,
		"view_offset": offset,
	})
}

// ListEventDates retrieves one page of event date records.
func (c *Client) ListEventDates(ctx context.Context, limit, offset int) ([]EventDate, error) {
	return doList[EventDate](ctx, c, "event/list/dates", map[string]interface{}{
		"view_limit":  limit,
		"view_offset": offset,
	})
}
