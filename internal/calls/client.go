// Package calls places test reminder calls through the external call API.
package calls

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/onespecapp/nemo-b2b-web-sub000/internal/validation"
	"github.com/onespecapp/nemo-b2b-web-sub000/pkg/logging"
)

const defaultCallTimeout = 15 * time.Second

var callTracer = otel.Tracer("nemo.internal.calls")

// ErrNotConfigured is returned when no call API base URL or key is set.
var ErrNotConfigured = errors.New("calls: call API not configured")

// UpstreamError reports a non-2xx answer from the call API.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("calls: API returned %d: %s", e.StatusCode, e.Body)
}

// Client posts test call requests.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *logging.Logger
}

// ClientConfig configures the call API client.
type ClientConfig struct {
	// BaseURL of the call API, e.g. https://calls.example.com.
	BaseURL string
	// APIKey is sent as a Bearer token.
	APIKey  string
	Timeout time.Duration
	// HTTPClient overrides the default HTTP client.
	HTTPClient *http.Client
	Logger     *logging.Logger
}

// NewClient returns ErrNotConfigured when BaseURL or APIKey is blank.
func NewClient(cfg ClientConfig) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" || strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrNotConfigured
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultCallTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// TestCallRequest is the payload for POST /calls/test.
type TestCallRequest struct {
	// To is the recipient in E.164 form.
	To           string   `json:"to"`
	CustomerName string   `json:"customer_name,omitempty"`
	BusinessName string   `json:"business_name,omitempty"`
	Script       string   `json:"script"`
	Turns        []string `json:"turns,omitempty"`
}

// TestCallResponse is the call API's answer.
type TestCallResponse struct {
	CallID string `json:"call_id"`
	Status string `json:"status"`
}

// PlaceTestCall asks the call API to dial req.To and read the script.
func (c *Client) PlaceTestCall(ctx context.Context, req TestCallRequest) (*TestCallResponse, error) {
	if c == nil {
		return nil, ErrNotConfigured
	}
	if req.To == "" {
		return nil, fmt.Errorf("calls: recipient phone required")
	}
	if strings.TrimSpace(req.Script) == "" {
		return nil, fmt.Errorf("calls: script required")
	}

	ctx, span := callTracer.Start(ctx, "calls.test.place", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(attribute.String("nemo.call.to", validation.MaskPhone(req.To)))

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("calls: marshal request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/calls/test", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("calls: create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	c.logger.Info("calls: placing test call", "to", validation.MaskPhone(req.To))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return nil, fmt.Errorf("calls: http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("calls: read response: %w", err)
	}
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		upstream := &UpstreamError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(respBody))}
		span.RecordError(upstream)
		span.SetStatus(codes.Error, "upstream error")
		c.logger.Error("calls: API error", "status", resp.StatusCode, "body", upstream.Body)
		return nil, upstream
	}

	var out TestCallResponse
	if len(respBody) > 0 {
		if err := json.Unmarshal(respBody, &out); err != nil {
			return nil, fmt.Errorf("calls: decode response: %w", err)
		}
	}
	if out.Status == "" {
		out.Status = "queued"
	}

	c.logger.Info("calls: test call accepted", "call_id", out.CallID, "to", validation.MaskPhone(req.To))
	return &out, nil
}
