// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package client talks to the folio JSON API. It is the remote source behind
// a record store and the backend behind an engagement counter. Responses are
// normalized to one envelope here so nothing downstream sees the difference
// between the enveloped and bare-array shapes older endpoints returned.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"folio/internal/apperr"
	"folio/internal/listing"
	"folio/internal/models"
)

// DefaultTimeout bounds every API call.
const DefaultTimeout = 10 * time.Second

// Envelope is the response shape of every API route.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
	Meta    *Meta           `json:"meta,omitempty"`
}

// Meta carries pagination metadata for listing responses.
type Meta struct {
	TotalCount  int `json:"total_count"`
	TotalPages  int `json:"total_pages"`
	CurrentPage int `json:"current_page"`
	PageSize    int `json:"page_size"`
}

// Client is an API client bound to one base URL.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the API at baseURL (e.g. http://localhost:8080).
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// Fetch lists every record of a resource ("blog", "portfolio", "reviews",
// "services"). Failures are *apperr.FetchError.
func Fetch[T any](ctx context.Context, c *Client, resource string) ([]T, error) {
	env, status, err := c.do(ctx, http.MethodGet, "/api/"+resource, nil)
	if err != nil {
		return nil, &apperr.FetchError{Resource: resource, Err: err}
	}
	if status < 200 || status >= 300 || !env.Success {
		return nil, &apperr.FetchError{Resource: resource, Status: status, Err: envError(env)}
	}
	var out []T
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &out); err != nil {
			return nil, &apperr.FetchError{Resource: resource, Status: status, Err: fmt.Errorf("decode data: %w", err)}
		}
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// Source adapts Fetch to the record store's Source interface.
type Source[T listing.Record] struct {
	Client   *Client
	Resource string
}

func (s Source[T]) Fetch(ctx context.Context) ([]T, error) {
	return Fetch[T](ctx, s.Client, s.Resource)
}

// Create posts a new record and decodes the created record into out.
func (c *Client) Create(ctx context.Context, resource string, body, out any) error {
	return c.write(ctx, "create", resource, http.MethodPost, "/api/"+resource, body, out)
}

// Update replaces fields of record id and decodes the result into out.
func (c *Client) Update(ctx context.Context, resource, id string, body, out any) error {
	return c.write(ctx, "update", resource, http.MethodPut, "/api/"+resource+"/"+id, body, out)
}

// Delete removes record id.
func (c *Client) Delete(ctx context.Context, resource, id string) error {
	return c.write(ctx, "delete", resource, http.MethodDelete, "/api/"+resource+"/"+id, nil, nil)
}

// DeleteReview removes a review; the server checks token against its
// configured admin token.
func (c *Client) DeleteReview(ctx context.Context, id, token string) error {
	body := map[string]any{"id": jsonID(id), "token": token}
	return c.write(ctx, "delete", "reviews", http.MethodDelete, "/api/reviews", body, nil)
}

// Increment records one vote for a record. resource is the engagement
// resource: "blog", "portfolio" or "review".
func (c *Client) Increment(ctx context.Context, resource, id string) error {
	body := map[string]any{resource + "_id": jsonID(id)}
	return c.write(ctx, "vote", resource, http.MethodPost, "/api/"+resource+"-likes", body, nil)
}

// Counts returns the authoritative like totals of every record of resource.
func (c *Client) Counts(ctx context.Context, resource string) (map[string]int, error) {
	rows, err := Fetch[models.LikeCount](ctx, c, resource+"-likes")
	if err != nil {
		return nil, err
	}
	out := make(map[string]int, len(rows))
	for _, r := range rows {
		out[strconv.FormatInt(r.ID, 10)] = r.Count
	}
	return out, nil
}

func (c *Client) write(ctx context.Context, op, resource, method, path string, body, out any) error {
	env, status, err := c.do(ctx, method, path, body)
	if err != nil {
		return &apperr.WriteError{Op: op, Resource: resource, Err: err}
	}
	if status < 200 || status >= 300 || !env.Success {
		if status == http.StatusUnauthorized {
			return &apperr.WriteError{Op: op, Resource: resource, Status: status, Err: apperr.ErrUnauthorized}
		}
		return &apperr.WriteError{Op: op, Resource: resource, Status: status, Err: envError(env)}
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return &apperr.WriteError{Op: op, Resource: resource, Status: status, Err: fmt.Errorf("decode data: %w", err)}
		}
	}
	return nil
}

// do performs one request and normalizes the response body into an Envelope.
// A bare JSON array is wrapped as successful data.
func (c *Client) do(ctx context.Context, method, path string, body any) (*Envelope, int, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, 0, fmt.Errorf("encode body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read body: %w", err)
	}
	env, err := decodeEnvelope(raw)
	if err != nil {
		return &Envelope{}, resp.StatusCode, nil
	}
	return env, resp.StatusCode, nil
}

// decodeEnvelope accepts either the envelope or a bare array.
func decodeEnvelope(raw []byte) (*Envelope, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return &Envelope{Success: true, Data: json.RawMessage(trimmed)}, nil
	}
	var env Envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

func envError(env *Envelope) error {
	if env != nil && env.Error != "" {
		return errors.New(env.Error)
	}
	return errors.New("request unsuccessful")
}

// jsonID sends numeric ids as numbers and anything else verbatim.
func jsonID(id string) any {
	if n, err := strconv.ParseInt(id, 10, 64); err == nil {
		return n
	}
	return id
}
