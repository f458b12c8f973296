// Package contentful is a small client for the Contentful Content Delivery API.
// It covers the entries endpoint with field filters and linked-asset includes.
package contentful

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"
)

const (
	// DeliveryURL is the published-content API.
	DeliveryURL = "https://cdn.contentful.com"
	// PreviewURL serves drafts and requires a preview token.
	PreviewURL = "https://preview.contentful.com"

	maxBodySize = 8 << 20 // 8MB
	userAgent   = "articlepage/1.0"
)

// Config configures a Client.
type Config struct {
	SpaceID     string // Required
	AccessToken string // Required: delivery or preview token
	Environment string // default "master"
	BaseURL     string // default DeliveryURL

	Timeout    time.Duration // per request (default 10s)
	HTTPClient *http.Client
	Breaker    BreakerConfig
}

func (c *Config) setDefaults() {
	if c.Environment == "" {
		c.Environment = "master"
	}
	if c.BaseURL == "" {
		c.BaseURL = DeliveryURL
	}
	if c.Timeout == 0 {
		c.Timeout = 10 * time.Second
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{}
	}
	if c.Breaker.Name == "" {
		c.Breaker = DefaultBreakerConfig()
	}
}

// Client issues queries against one space and environment.
type Client struct {
	cfg     Config
	base    *url.URL
	breaker *gobreaker.CircuitBreaker
}

// New validates cfg and returns a Client.
func New(cfg Config) (*Client, error) {
	if cfg.SpaceID == "" {
		return nil, errors.New("contentful: SpaceID is required")
	}
	if cfg.AccessToken == "" {
		return nil, errors.New("contentful: AccessToken is required")
	}
	cfg.setDefaults()
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("contentful: parse base url: %w", err)
	}
	return &Client{
		cfg:     cfg,
		base:    base,
		breaker: newBreaker(cfg.Breaker),
	}, nil
}

// Params filters an entries query.
type Params struct {
	ContentType string
	Limit       int
	Skip        int
	Include     int               // link resolution depth, 0 means the API default
	Fields      map[string]string // fields.<name>=<value> equality filters
	Locale      string
}

// Values encodes p as CDA query parameters.
func (p Params) Values() url.Values {
	v := url.Values{}
	if p.ContentType != "" {
		v.Set("content_type", p.ContentType)
	}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Skip > 0 {
		v.Set("skip", strconv.Itoa(p.Skip))
	}
	if p.Include > 0 {
		v.Set("include", strconv.Itoa(p.Include))
	}
	if p.Locale != "" {
		v.Set("locale", p.Locale)
	}
	names := make([]string, 0, len(p.Fields))
	for name := range p.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		v.Set("fields."+name, p.Fields[name])
	}
	return v
}

// Entries runs an entries query. API failures are returned as *APIError;
// while the breaker is open every call fails fast with ErrUnavailable.
func (c *Client) Entries(ctx context.Context, p Params) (*Collection, error) {
	res, err := c.breaker.Execute(func() (interface{}, error) {
		return c.entries(ctx, p)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return nil, err
	}
	return res.(*Collection), nil
}

func (c *Client) entriesURL(p Params) string {
	u := *c.base
	u.Path = u.Path + "/spaces/" + url.PathEscape(c.cfg.SpaceID) +
		"/environments/" + url.PathEscape(c.cfg.Environment) + "/entries"
	u.RawQuery = p.Values().Encode()
	return u.String()
}

func (c *Client) entries(ctx context.Context, p Params) (*Collection, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.entriesURL(p), nil)
	if err != nil {
		return nil, fmt.Errorf("contentful: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.AccessToken)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("contentful: get entries: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("contentful: read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, decodeAPIError(resp, body)
	}

	var col Collection
	if err := json.Unmarshal(body, &col); err != nil {
		return nil, fmt.Errorf("contentful: decode entries: %w", err)
	}
	return &col, nil
}

func decodeAPIError(resp *http.Response, body []byte) error {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		RequestID:  resp.Header.Get("X-Contentful-Request-Id"),
	}
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		apiErr.ID = eb.Sys.ID
		apiErr.Message = eb.Message
		if eb.RequestID != "" {
			apiErr.RequestID = eb.RequestID
		}
	}
	return apiErr
}
