package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/admin-console/internal/config"
)

// Credentials supplies the bearer token for outbound requests and absorbs
// invalidation signals observed on responses. The session layer implements
// it; the gateway stays ignorant of how tokens are stored or validated.
type Credentials interface {
	// BearerToken returns a currently usable token. ok is false when the
	// request must go out unauthenticated; any lazy cleanup of a stale
	// credential happens inside the call.
	BearerToken() (token string, ok bool)
	// Invalidate drops the stored session after the server rejected it.
	Invalidate()
}

// AnonymousCredentials never attaches a token. For clients that only hit
// public endpoints.
type AnonymousCredentials struct{}

// BearerToken reports no token available.
func (AnonymousCredentials) BearerToken() (string, bool) { return "", false }

// Invalidate is a no-op.
func (AnonymousCredentials) Invalidate() {}

// Client is the single gateway for outbound API traffic. Every request gets
// exactly one pre-send credential pass and one post-receive inspection, in
// that order, and the client never retries on its own; retries belong to
// callers. Navigation after a 401 is likewise not its business: it clears
// the session and surfaces the error, the shell reacts.
type Client struct {
	baseURL string
	http    *http.Client
	creds   Credentials
	logger  *zap.Logger
}

// NewClient builds a gateway for the configured backend.
func NewClient(cfg config.APIConfig, creds Credentials, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.RequestTimeout()},
		creds:   creds,
		logger:  logger,
	}
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, http.MethodGet, path, query, nil, out)
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, nil, body, out)
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, nil, body, out)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// Do performs one request against the backend. The response body, when 2xx
// and non-empty, is decoded into out.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return &APIError{Kind: KindAPI, Message: "could not encode request body", Err: err}
		}
		reader = bytes.NewReader(raw)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return &APIError{Kind: KindAPI, Message: "could not build request", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, ok := c.creds.BearerToken(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("no response from server",
			zap.String("method", method), zap.String("path", path), zap.Error(err))
		return &APIError{Kind: KindNoResponse, Message: "server did not respond", Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		// the server did answer; a body cut short is not "no response"
		return &APIError{Kind: KindAPI, Status: resp.StatusCode, Message: "response cut short", Err: err}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return c.failure(method, path, resp.StatusCode, raw)
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return &APIError{Kind: KindAPI, Status: resp.StatusCode, Message: "could not decode response", Err: err}
		}
	}
	return nil
}

func (c *Client) failure(method, path string, status int, raw []byte) error {
	msg := serverMessage(raw)
	c.logger.Debug("request failed",
		zap.String("method", method), zap.String("path", path), zap.Int("status", status))

	switch status {
	case http.StatusUnauthorized:
		c.creds.Invalidate()
		if msg == "" {
			msg = "session expired"
		}
		return &APIError{Kind: KindUnauthorized, Status: status, Message: msg}
	case http.StatusForbidden:
		if msg == "" {
			msg = "permission denied"
		}
		return &APIError{Kind: KindForbidden, Status: status, Message: msg}
	default:
		if msg == "" {
			msg = http.StatusText(status)
		}
		return &APIError{Kind: KindAPI, Status: status, Message: msg}
	}
}

// serverMessage pulls the human-readable message out of an error payload,
// tolerating both the flat {message} shape and the nested {error:{message}}
// envelope.
func serverMessage(raw []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error.Message
}
