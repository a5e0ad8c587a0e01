// Package postgrest is the gateway to the external Supabase datastore. Every
// table the backend touches goes through this client; it speaks the PostgREST
// REST dialect (equality filters, ordering, limits) and nothing more.
package postgrest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mohanbhogavarapu07/vsm-backend/internal"
)

const uniqueViolationCode = "23505"

type Config struct {
	URL     string
	APIKey  string
	Timeout time.Duration
}

// Client is a process-lifetime handle to the datastore, constructed once at
// startup and injected into the repositories.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.URL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Select returns the raw JSON array of matching rows.
func (c *Client) Select(ctx context.Context, table string, q Query) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, table, q.values(), nil)
}

// Insert writes one row and returns the JSON array holding the inserted row.
func (c *Client) Insert(ctx context.Context, table string, payload any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, table, nil, payload)
}

// Update patches all rows matching the filters and returns the affected rows.
// An empty result array means nothing matched.
func (c *Client) Update(ctx context.Context, table string, payload any, filters ...Filter) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPatch, table, filterValues(filters), payload)
}

// Delete removes all rows matching the filters and returns the deleted rows.
func (c *Client) Delete(ctx context.Context, table string, filters ...Filter) (json.RawMessage, error) {
	return c.do(ctx, http.MethodDelete, table, filterValues(filters), nil)
}

// Exists reports whether at least one row matches column=value. Datastore
// errors read as absence; access checks built on this never leak upstream
// failures to the caller.
func (c *Client) Exists(ctx context.Context, table, column string, value any) bool {
	raw, err := c.Select(ctx, table, Query{
		Columns: column,
		Filters: []Filter{Eq(column, value)},
		Limit:   1,
	})
	if err != nil {
		c.logger.Warn("existence check failed", "table", table, "column", column, "error", err)
		return false
	}
	var rows []json.RawMessage
	if err := json.Unmarshal(raw, &rows); err != nil {
		return false
	}
	return len(rows) > 0
}

// Ping checks that the datastore answers at all. Used by the health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/rest/v1/", nil)
	if err != nil {
		return err
	}
	c.setHeaders(req)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("datastore returned status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, table string, params url.Values, payload any) (json.RawMessage, error) {
	endpoint := c.baseURL + "/rest/v1/" + table
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, internal.NewInternalError("failed to encode datastore payload", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, internal.NewInternalError("failed to build datastore request", err)
	}
	c.setHeaders(req)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method != http.MethodGet {
		req.Header.Set("Prefer", "return=representation")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("datastore request failed", "method", method, "table", table, "error", err)
		return nil, internal.NewExternalError("Datastore request failed", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, internal.NewExternalError("Datastore response could not be read", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, c.asError(resp.StatusCode, data, table)
	}
	return data, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
}

// asError translates a PostgREST error response into the typed taxonomy.
// Unique violations become conflicts; everything else is an upstream failure.
func (c *Client) asError(status int, body []byte, table string) error {
	var pgErr struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	_ = json.Unmarshal(body, &pgErr)

	c.logger.Error("datastore error response",
		"table", table,
		"status", status,
		"code", pgErr.Code,
		"message", pgErr.Message)

	if status == http.StatusConflict || pgErr.Code == uniqueViolationCode {
		return internal.NewConflictError("Duplicate value violates a uniqueness constraint", internal.ErrCodeDatastore)
	}
	return internal.NewExternalError(
		fmt.Sprintf("Datastore returned status %d", status),
		fmt.Errorf("table %s: %s", table, pgErr.Message),
	)
}

// DecodeRows unmarshals a JSON array response into typed rows.
func DecodeRows[T any](raw json.RawMessage) ([]T, error) {
	var rows []T
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, internal.NewExternalError("Datastore returned an unexpected payload", err)
	}
	return rows, nil
}

// DecodeOne returns the first row of a JSON array response, or a NOT_FOUND
// error named after the resource when the array is empty.
func DecodeOne[T any](raw json.RawMessage, name string, code internal.ErrorCode) (*T, error) {
	rows, err := DecodeRows[T](raw)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, internal.NewNotFoundError(name+" not found", code)
	}
	return &rows[0], nil
}
