package api

// Package api implements the backend REST collaborator behind the ports
// interfaces. All business rules (pricing, stock authority, order state)
// live on the other side of this client.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/online-shop/shopfront/internal/errors"
	"github.com/online-shop/shopfront/internal/ports"
)

// Config captures how to reach the backend.
type Config struct {
	// BaseURL is the backend root, e.g. "http://localhost:8080/api".
	BaseURL string

	// Credentials supplies the bearer token. Optional; when nil or empty
	// the Authorization header is omitted.
	Credentials ports.CredentialStore

	Timeout time.Duration
	Client  *http.Client
	Logger  *slog.Logger
}

// Client issues authenticated JSON requests against the backend.
// It is safe for concurrent use.
type Client struct {
	baseURL string
	creds   ports.CredentialStore
	client  *http.Client
	logger  *slog.Logger
}

// NewClient builds a backend client. Callers should pass a validated config.
func NewClient(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("backend base url is required")
	}
	if u, err := url.Parse(baseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid backend base url %q", cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	hc := cfg.Client
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL: baseURL,
		creds:   cfg.Credentials,
		client:  hc,
		logger:  logger,
	}, nil
}

// errorBody is the backend's error envelope. Failures carry an "error"
// field; some endpoints use "message" instead.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// do issues one request and decodes a 2xx JSON response into out (skipped
// when out is nil). Non-2xx responses become structured AppErrors.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return apperrors.Wrapf(err, apperrors.ErrCodeInternal, "encode %s %s body", method, path)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return apperrors.Wrapf(err, apperrors.ErrCodeInternal, "create %s %s request", method, path)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.authorize(ctx, req)

	resp, err := c.client.Do(req)
	if err != nil {
		return apperrors.Wrapf(err, apperrors.ErrCodeTransport, "%s %s", method, path)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.handleErrorResponse(method, path, resp)
	}

	return decodeSuccess(resp, out)
}

// authorize attaches the bearer token when one is present in persisted
// storage. A store read failure degrades to an unauthenticated request; the
// backend will reject it if the call needed auth.
func (c *Client) authorize(ctx context.Context, req *http.Request) {
	if c.creds == nil {
		return
	}
	id, err := c.creds.Load(ctx)
	if err != nil {
		if !errors.Is(err, ports.ErrNoIdentity) {
			c.logger.WarnContext(ctx, "load credentials for request", "error", err)
		}
		return
	}
	if id.Token != "" {
		req.Header.Set("Authorization", "Bearer "+id.Token)
	}
}

func decodeSuccess(resp *http.Response, out any) error {
	if out == nil {
		if _, err := io.Copy(io.Discard, resp.Body); err != nil {
			closeErr := resp.Body.Close()
			if closeErr != nil {
				return errors.Join(
					fmt.Errorf("drain response body: %w", err),
					fmt.Errorf("close response body: %w", closeErr),
				)
			}
			return fmt.Errorf("drain response body: %w", err)
		}
		return resp.Body.Close()
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		closeErr := resp.Body.Close()
		if closeErr != nil {
			return errors.Join(
				fmt.Errorf("read response body: %w", err),
				fmt.Errorf("close response body: %w", closeErr),
			)
		}
		return fmt.Errorf("read response body: %w", err)
	}
	if err := resp.Body.Close(); err != nil {
		return fmt.Errorf("close response body: %w", err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "decode response body")
	}
	return nil
}

func (c *Client) handleErrorResponse(method, path string, resp *http.Response) error {
	data, readErr := io.ReadAll(resp.Body)
	closeErr := resp.Body.Close()
	if readErr != nil {
		return apperrors.Wrapf(errors.Join(readErr, closeErr), apperrors.ErrCodeInternal,
			"read error response for %s %s", method, path)
	}
	if closeErr != nil {
		return fmt.Errorf("close response body: %w", closeErr)
	}

	message := resp.Status
	var eb errorBody
	if json.Unmarshal(data, &eb) == nil {
		switch {
		case eb.Error != "":
			message = eb.Error
		case eb.Message != "":
			message = eb.Message
		}
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return apperrors.Unauthorized(message)
	case http.StatusNotFound:
		return apperrors.NotFound(message)
	default:
		return apperrors.API(message)
	}
}
