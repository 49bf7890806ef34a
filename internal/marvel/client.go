package marvel

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/herodex/internal/domain"
)

const (
	// DefaultBaseURL is the public Marvel API root
	DefaultBaseURL = "https://gateway.marvel.com/v1/public"

	defaultTimeout = 30 * time.Second
	userAgent      = "Herodex/1.0"
)

// Client implements domain.CatalogClient against the Marvel API
type Client struct {
	baseURL    string
	signer     *Signer
	httpClient *http.Client
	logger     *slog.Logger
}

var _ domain.CatalogClient = (*Client)(nil)

// NewClient creates a new Marvel API client
func NewClient(baseURL, publicKey, privateKey string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		signer:  NewSigner(publicKey, privateKey),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// SetTimeout overrides the HTTP client timeout
func (c *Client) SetTimeout(d time.Duration) {
	if d > 0 {
		c.httpClient.Timeout = d
	}
}

// SetClock replaces the clock used for request timestamps
func (c *Client) SetClock(now func() time.Time) {
	c.signer.now = now
}

// doRequest performs a signed GET request and returns the body of a 200 response
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if query == nil {
		query = url.Values{}
	}
	for k, v := range c.signer.Sign() {
		query[k] = v
	}
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("marvel request", "path", path, "query", redact(query))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("marvel request failed", "path", path, "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrServerOffline, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return body, nil
	case http.StatusUnauthorized:
		return nil, domain.ErrAuthFailed
	case http.StatusNotFound:
		return nil, domain.ErrHeroNotFound
	default:
		c.logger.Error("marvel request error", "status", resp.StatusCode, "body", apiMessage(body))
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
}

// parseResponse decodes the response envelope
func (c *Client) parseResponse(body []byte) (*APIResponse, error) {
	var resp APIResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &resp, nil
}

// Search returns one page of characters, filtered by name prefix when given
func (c *Client) Search(ctx context.Context, limit, offset int, namePrefix string) (*domain.Page, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", strconv.Itoa(offset))
	if namePrefix != "" {
		query.Set("nameStartsWith", namePrefix)
	}

	body, err := c.doRequest(ctx, "/characters", query)
	if err != nil {
		return nil, err
	}

	resp, err := c.parseResponse(body)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("marvel search", "offset", offset, "total", resp.Data.Total, "count", len(resp.Data.Results))
	return MapPage(resp.Data), nil
}

// GetHero looks up a single character by id
func (c *Client) GetHero(ctx context.Context, id int) (*domain.Hero, error) {
	body, err := c.doRequest(ctx, fmt.Sprintf("/characters/%d", id), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.parseResponse(body)
	if err != nil {
		return nil, err
	}

	if len(resp.Data.Results) == 0 {
		return nil, domain.ErrHeroNotFound
	}

	hero := MapHero(resp.Data.Results[0])
	return &hero, nil
}

// redact strips the signature from logged query strings
func redact(q url.Values) string {
	safe := url.Values{}
	for k, v := range q {
		if k == "hash" {
			continue
		}
		safe[k] = v
	}
	return safe.Encode()
}

// apiMessage extracts the error message from an error body, if any
func apiMessage(body []byte) string {
	var e ErrorResponse
	if err := json.Unmarshal(body, &e); err != nil {
		return string(body)
	}
	if e.Message != "" {
		return e.Message
	}
	return e.Status
}
