package saberclient

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
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// Client is the authenticated request gateway for the Conecta Saber
// backend. Every call samples the token from the TokenSource at request
// time, so a logout between two calls never leaks a stale credential.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a gateway against baseURL. tokens is consulted per
// request; requests with no active session go out unauthenticated so that
// login and register still work.
func NewClient(baseURL string, tokens oauth2.TokenSource, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &authTransport{
				tokens: tokens,
				base:   http.DefaultTransport,
				logger: logger,
			},
		},
		logger: logger,
	}
}

// authTransport injects the Authorization header from the token source on
// each round trip.
type authTransport struct {
	tokens oauth2.TokenSource
	base   http.RoundTripper
	logger *zap.Logger
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	tok, err := t.tokens.Token()
	if err != nil {
		// A broken session store must not kill the request outright;
		// the call proceeds unauthenticated and the backend decides.
		t.logger.Warn("failed to read session token, sending request unauthenticated", zap.Error(err))
		return t.base.RoundTrip(req)
	}

	if tok.AccessToken == "" {
		return t.base.RoundTrip(req)
	}

	// RoundTrippers must not mutate the caller's request.
	authed := req.Clone(req.Context())
	tok.SetAuthHeader(authed)
	return t.base.RoundTrip(authed)
}

// APIError is a non-success response from the backend, carrying the
// human-readable message from its "erro" field when present.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// errorBody is the backend's error envelope.
type errorBody struct {
	Erro string `json:"erro"`
}

// do issues one request and decodes the response into out (when non-nil).
// Non-2xx responses become an *APIError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.New().String()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	c.logger.Debug("Sending request",
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestID))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.decodeError(resp, method, path, requestID)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response from %s: %w", path, err)
		}
	}

	return nil
}

func (c *Client) decodeError(resp *http.Response, method, path, requestID string) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	data, err := io.ReadAll(resp.Body)
	if err == nil {
		var body errorBody
		if jsonErr := json.Unmarshal(data, &body); jsonErr == nil {
			apiErr.Message = body.Erro
		}
	}

	if apiErr.Message == "" {
		apiErr.Message = fmt.Sprintf("request failed with status %d", resp.StatusCode)
	}

	c.logger.Debug("Request rejected",
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
		zap.String("message", apiErr.Message))

	return apiErr
}
