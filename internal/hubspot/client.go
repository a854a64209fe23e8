package hubspot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/AMCF-2026/jidhr/internal/pkg/apierr"
	"github.com/AMCF-2026/jidhr/internal/pkg/logger"
)

// HTTPDoer is the interface for executing HTTP requests.
// *http.Client satisfies it; tests inject fakes.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config holds HubSpot API client settings.
type Config struct {
	AccessToken string
	BaseURL     string
	Timeout     time.Duration
}

// Client is the HubSpot CRM/marketing API client.
type Client struct {
	accessToken string
	baseURL     string
	httpClient  HTTPDoer
}

// NewClient creates a new HubSpot API client
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		accessToken: cfg.AccessToken,
		baseURL:     cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// SetHTTPClient sets a custom HTTP client (useful for testing)
func (c *Client) SetHTTPClient(client HTTPDoer) {
	c.httpClient = client
}

// doRequest performs an authenticated request and returns the raw body.
// A 204 returns an empty body with no error. Non-2xx responses become
// Domain errors, 404s carrying the not_found code.
func (c *Client) doRequest(ctx context.Context, method, endpoint string, body interface{}) ([]byte, error) {
	op := "hubspot." + endpoint

	if c.accessToken == "" {
		return nil, apierr.New(apierr.Config, op, "HubSpot access token not configured")
	}

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, apierr.Wrap(apierr.Transport, op, fmt.Errorf("failed to marshal request body: %w", err))
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	reqURL := fmt.Sprintf("%s/%s", c.baseURL, endpoint)
	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return nil, apierr.Wrap(apierr.Transport, op, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/json")

	logger.Debug("hubspot request", "method", method, "endpoint", endpoint)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apierr.Wrap(apierr.Transport, op, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apierr.Wrap(apierr.Transport, op, fmt.Errorf("failed to read response body: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := parseAPIError(respBody)
		if resp.StatusCode == http.StatusNotFound || notFoundMessage(msg) {
			return nil, apierr.NotFound(op, "not found: %s", msg)
		}
		return nil, apierr.New(apierr.Domain, op, "API error (status %d): %s", resp.StatusCode, msg)
	}

	return respBody, nil
}

func parseAPIError(body []byte) string {
	var e apiError
	if err := json.Unmarshal(body, &e); err == nil && e.Message != "" {
		return e.Message
	}
	return string(body)
}

// notFoundMessage matches the message conventions HubSpot uses for missing
// records across its APIs.
func notFoundMessage(msg string) bool {
	m := strings.ToLower(msg)
	return strings.Contains(m, "not found") || strings.Contains(m, "does not exist")
}

// ========== Contacts ==========

// SearchContactByEmail finds the single contact with an exact email match.
// Zero matches is a not_found Domain error.
func (c *Client) SearchContactByEmail(ctx context.Context, email string) (*Contact, error) {
	respBody, err := c.doRequest(ctx, http.MethodPost, "crm/v3/objects/contacts/search", contactSearchRequest{
		FilterGroups: []filterGroup{{
			Filters: []filter{{
				PropertyName: "email",
				Operator:     "EQ",
				Value:        email,
			}},
		}},
		Limit: 1,
	})
	if err != nil {
		return nil, err
	}

	var result contactSearchResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, apierr.Wrap(apierr.Malformed, "hubspot.SearchContactByEmail", err)
	}
	if len(result.Results) == 0 {
		return nil, apierr.NotFound("hubspot.SearchContactByEmail", "contact not found: %s", email)
	}
	return &result.Results[0], nil
}

// UpdateContact patches the named properties on a contact. Properties not
// listed are left untouched.
func (c *Client) UpdateContact(ctx context.Context, contactID string, properties map[string]string) error {
	endpoint := fmt.Sprintf("crm/v3/objects/contacts/%s", contactID)
	_, err := c.doRequest(ctx, http.MethodPatch, endpoint, map[string]interface{}{
		"properties": properties,
	})
	return err
}

// UpdateContactByEmail resolves a contact by email and patches its
// properties: one search call, one patch call, never batched.
func (c *Client) UpdateContactByEmail(ctx context.Context, email string, properties map[string]string) error {
	contact, err := c.SearchContactByEmail(ctx, email)
	if err != nil {
		return err
	}
	return c.UpdateContact(ctx, contact.ID, properties)
}

// ========== Marketing Events ==========

// GetMarketingEventByExternalID looks up a marketing event by the external
// id assigned at import time. A missing event is a not_found Domain error.
func (c *Client) GetMarketingEventByExternalID(ctx context.Context, externalID string) (*MarketingEvent, error) {
	endpoint := fmt.Sprintf("marketing/v3/marketing-events/external/%s", url.PathEscape(externalID))
	respBody, err := c.doRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var event MarketingEvent
	if err := json.Unmarshal(respBody, &event); err != nil {
		return nil, apierr.Wrap(apierr.Malformed, "hubspot.GetMarketingEventByExternalID", err)
	}
	return &event, nil
}

// CreateMarketingEvent creates a marketing event. The sync subsystem only
// ever creates events; it never updates or deletes them.
func (c *Client) CreateMarketingEvent(ctx context.Context, event MarketingEvent) error {
	_, err := c.doRequest(ctx, http.MethodPost, "marketing/v3/marketing-events", event)
	return err
}

// ========== Subscriptions ==========

// GetSubscriptionStatus returns the email subscription states for a contact.
func (c *Client) GetSubscriptionStatus(ctx context.Context, email string) (*SubscriptionStatuses, error) {
	endpoint := fmt.Sprintf("communication-preferences/v3/status/email/%s", url.PathEscape(email))
	respBody, err := c.doRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var status SubscriptionStatuses
	if err := json.Unmarshal(respBody, &status); err != nil {
		return nil, apierr.Wrap(apierr.Malformed, "hubspot.GetSubscriptionStatus", err)
	}
	return &status, nil
}

// SubscribeContact opts a contact into a subscription type.
func (c *Client) SubscribeContact(ctx context.Context, email, subscriptionID string) error {
	_, err := c.doRequest(ctx, http.MethodPost, "communication-preferences/v3/subscribe", map[string]string{
		"emailAddress":          email,
		"subscriptionId":        subscriptionID,
		"legalBasis":            "LEGITIMATE_INTEREST_CLIENT",
		"legalBasisExplanation": "Opted in via CSuite donor portal",
	})
	return err
}

// UnsubscribeContact opts a contact out of a subscription type.
func (c *Client) UnsubscribeContact(ctx context.Context, email, subscriptionID string) error {
	_, err := c.doRequest(ctx, http.MethodPost, "communication-preferences/v3/unsubscribe", map[string]string{
		"emailAddress":   email,
		"subscriptionId": subscriptionID,
	})
	return err
}
