package sensortower

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"sensortower-scraper/config"
	"sensortower-scraper/models"
)

const (
	rankingsPath = "/api/ios/rankings/get_category_rankings"
	userAgent    = "sensortower-scraper/1.0"
)

// ErrUnexpectedStatus marks a non-200 response from the rankings API.
var ErrUnexpectedStatus = errors.New("unexpected status")

// StatusError carries the status of a failed rankings request.
type StatusError struct {
	StatusCode int
	Status     string
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("sensortower: %s returned %s", e.URL, e.Status)
}

func (e *StatusError) Unwrap() error {
	return ErrUnexpectedStatus
}

// Query is the fixed part of every category rankings request.
type Query struct {
	Country string
	Date    string
	Device  string
	Limit   int
	Offset  int
}

// Client fetches category rankings from the Sensor Tower API.
type Client struct {
	baseURL    string
	query      Query
	httpClient *http.Client
}

// NewClient creates a client for baseURL with a per-request timeout.
func NewClient(baseURL string, query Query, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		query:      query,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// NewClientFromConfig wires a Client from application config.
func NewClientFromConfig(cfg *config.Config) *Client {
	return NewClient(cfg.BaseURL, Query{
		Country: cfg.Country,
		Date:    cfg.SnapshotDate,
		Device:  cfg.Device,
		Limit:   cfg.Limit,
		Offset:  cfg.Offset,
	}, cfg.HTTPTimeout)
}

// CategoryURL returns the rankings URL for one category.
func (c *Client) CategoryURL(categoryID int) string {
	v := url.Values{}
	v.Set("category", strconv.Itoa(categoryID))
	v.Set("country", c.query.Country)
	v.Set("date", c.query.Date)
	v.Set("device", c.query.Device)
	v.Set("limit", strconv.Itoa(c.query.Limit))
	v.Set("offset", strconv.Itoa(c.query.Offset))
	return c.baseURL + rankingsPath + "?" + v.Encode()
}

// FetchCategory downloads and decodes the ranking payload for categoryID.
func (c *Client) FetchCategory(ctx context.Context, categoryID int) (models.RankingPayload, error) {
	target := c.CategoryURL(categoryID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("sensortower: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sensortower: fetch category %d: %w", categoryID, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil, &StatusError{StatusCode: res.StatusCode, Status: res.Status, URL: target}
	}

	var payload models.RankingPayload
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("sensortower: decode category %d: %w", categoryID, err)
	}
	return payload, nil
}
