// Package api is the REST client for the Sonic Task Hub backend. Every
// response is wrapped in the backend's envelope; the client unwraps it and
// normalizes failures into *APIError values. Failures are terminal for the
// triggering action: the client never retries.
package api

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

	"github.com/google/uuid"
)

// Client is a thin HTTP client for the Sonic Task Hub REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the given API base URL, e.g.
// http://localhost:8080/api.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Get performs a GET request and unmarshals the envelope data into result.
func (c *Client) Get(
	ctx context.Context,
	path string,
	query url.Values,
	result interface{},
) error {
	return c.do(ctx, http.MethodGet, path, query, nil, result)
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(
	ctx context.Context,
	path string,
	body interface{},
	result interface{},
) error {
	return c.do(ctx, http.MethodPost, path, nil, body, result)
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(
	ctx context.Context,
	path string,
	body interface{},
	result interface{},
) error {
	return c.do(ctx, http.MethodPut, path, nil, body, result)
}

// Delete performs a DELETE request, optionally with a JSON body
// (bulk delete sends its item IDs that way).
func (c *Client) Delete(
	ctx context.Context,
	path string,
	body interface{},
	result interface{},
) error {
	return c.do(ctx, http.MethodDelete, path, nil, body, result)
}

// do builds the request, sends it, and decodes the response envelope.
// url.Values encodes keys in sorted order, so identical filters always
// produce the identical query string.
func (c *Client) do(
	ctx context.Context,
	method string,
	path string,
	query url.Values,
	body interface{},
	result interface{},
) error {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &APIError{Message: err.Error(), transport: true}
	}

	respBody, readErr := io.ReadAll(resp.Body)
	resp.Body.Close()
	if readErr != nil {
		return fmt.Errorf("reading response body: %w", readErr)
	}

	var envelope Envelope
	decodeErr := json.Unmarshal(respBody, &envelope)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if decodeErr == nil && envelope.Message != "" {
			apiErr.Message = envelope.Message
			apiErr.Code = envelope.ErrorCode
		} else {
			apiErr.Message = fmt.Sprintf(
				"unexpected status %d on %s %s", resp.StatusCode, method, path,
			)
		}
		return apiErr
	}

	if decodeErr != nil {
		return fmt.Errorf(
			"unmarshaling response from %s %s: %w", method, path, decodeErr,
		)
	}

	if !envelope.Success {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    envelope.Message,
			Code:       envelope.ErrorCode,
		}
	}

	if result == nil || len(envelope.Data) == 0 {
		return nil
	}

	if err := json.Unmarshal(envelope.Data, result); err != nil {
		return fmt.Errorf(
			"unmarshaling envelope data from %s %s: %w", method, path, err,
		)
	}

	return nil
}
