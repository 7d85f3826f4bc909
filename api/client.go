package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/inference-sim/ossim/sim"
	"github.com/inference-sim/ossim/sim/deadlock"
	"github.com/inference-sim/ossim/sim/memory"
)

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Kind    string
	Message string
}

func (e *APIError) Error() string {
	if e.Kind != "" {
		return fmt.Sprintf("server returned %d (%s): %s", e.Status, e.Kind, e.Message)
	}
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

// Client calls a remote simulation server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the server at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Schedule runs a scheduling request remotely.
func (c *Client) Schedule(ctx context.Context, req sim.ScheduleRequest) (*sim.Result, error) {
	var res sim.Result
	if err := c.post(ctx, "/cpu", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Allocate runs a memory allocation request remotely.
func (c *Client) Allocate(ctx context.Context, req memory.Request) (*memory.Result, error) {
	var res memory.Result
	if err := c.post(ctx, "/memory", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// DetectCycle runs resource-allocation-graph cycle detection remotely.
func (c *Client) DetectCycle(ctx context.Context, req deadlock.Request) (*deadlock.CycleResult, error) {
	var res deadlock.CycleResult
	if err := c.post(ctx, "/rag", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// CheckSafety runs the Banker's safety check remotely.
func (c *Client) CheckSafety(ctx context.Context, req deadlock.Request) (*deadlock.SafetyResult, error) {
	var res deadlock.SafetyResult
	if err := c.post(ctx, "/banker", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("POST %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{Status: resp.StatusCode, Message: strings.TrimSpace(string(data))}
		var er ErrorResponse
		if json.Unmarshal(data, &er) == nil && er.Error != "" {
			apiErr.Kind = er.Kind
			apiErr.Message = er.Error
		}
		return apiErr
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
