package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"TeleAdmin/models"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrUnauthorized is returned when the upstream rejects the session token.
// The forced-logout side effect has already run by the time callers see it,
// so they must treat it as "aborted, already handled".
var ErrUnauthorized = errors.New("upstream rejected the session token")

// Client issues authenticated requests against the upstream telemedicine
// REST API. Every request carries the bearer token and JSON headers; a 401
// response triggers the onUnauthorized hook and aborts the call. There is
// no retry.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	token          func() string
	onUnauthorized func()
}

// NewClient creates a client for the given base URL (including the /api
// prefix). token supplies the current bearer token; onUnauthorized runs on
// every 401 response.
func NewClient(baseURL string, token func() string, onUnauthorized func()) *Client {
	return &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		httpClient:     &http.Client{Timeout: 30 * time.Second},
		token:          token,
		onUnauthorized: onUnauthorized,
	}
}

// Get issues a GET request and decodes the envelope's data into out.
func (c *Client) Get(ctx context.Context, path string, out interface{}) error {
	return c.request(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST request with a JSON body and decodes the envelope's
// data into out. out may be nil when the caller only cares about success.
func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.request(ctx, http.MethodPost, path, body, out)
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out interface{}) error {
	return c.request(ctx, http.MethodPut, path, body, out)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.request(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) request(ctx context.Context, method, path string, body, out interface{}) error {
	resp, err := c.do(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrapf(err, "read response for %s %s", method, path)
	}

	// Some upstream endpoints (deletes, account mutations) answer with an
	// empty body on success.
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}

	var env models.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return errors.Wrapf(err, "decode envelope for %s %s", method, path)
	}
	if !env.Success && env.Message != "" {
		return errors.Errorf("upstream error for %s %s: %s", method, path, env.Message)
	}
	if out == nil || env.Data == nil {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return errors.Wrapf(err, "decode data for %s %s", method, path)
	}
	return nil
}

// Download issues a GET request for a binary payload (file export) and
// returns the body stream with its content type. The caller closes the body.
func (c *Client) Download(ctx context.Context, path string) (io.ReadCloser, string, error) {
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, "", err
	}
	return resp.Body, resp.Header.Get("Content-Type"), nil
}

// do performs the HTTP exchange and handles the 401 forced-logout effect.
// On success the response body is still open.
func (c *Client) do(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrapf(err, "marshal body for %s %s", method, path)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, errors.Wrapf(err, "build request for %s %s", method, path)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s failed", method, path)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return nil, ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := readErrorMessage(resp.Body)
		resp.Body.Close()
		if message == "" {
			message = resp.Status
		}
		return nil, errors.Errorf("%s %s: %s", method, path, message)
	}
	return resp, nil
}

// readErrorMessage pulls a human-readable message out of an error body.
func readErrorMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil {
		return ""
	}
	var env models.Envelope
	if json.Unmarshal(raw, &env) == nil && env.Message != "" {
		return env.Message
	}
	var generic struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(raw, &generic) == nil && generic.Error != "" {
		return generic.Error
	}
	return strings.TrimSpace(string(raw))
}
