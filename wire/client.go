// Package wire implements the generic wire-protocol client that driver
// backends delegate their commands to. It knows HTTP verbs and the response
// envelope, nothing about individual commands.
package wire

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/browserkit/webdriver/common"
	"github.com/browserkit/webdriver/log"
	"github.com/browserkit/webdriver/trace"
)

// Response is the envelope every driver endpoint answers with.
type Response struct {
	SessionID string          `json:"sessionId"`
	Status    int             `json:"status"`
	Value     json.RawMessage `json:"value"`
}

// DecodeValue unmarshals the response value into v.
func (r *Response) DecodeValue(v any) error {
	if len(r.Value) == 0 {
		return errors.New("response has no value")
	}
	return errors.Wrap(json.Unmarshal(r.Value, v), "decoding response value")
}

// Client issues wire-protocol requests against absolute URLs. Backends key
// their command URLs off the supervisor's base URL and the session URL.
type Client interface {
	Get(ctx context.Context, url string) (*Response, error)
	Post(ctx context.Context, url string, body any) (*Response, error)
	Delete(ctx context.Context, url string) (*Response, error)
}

// DefaultRequestTimeout bounds a single command round-trip.
const DefaultRequestTimeout = 60 * time.Second

// HTTPClient is the standard Client implementation.
type HTTPClient struct {
	client *http.Client
	logger *log.Logger
}

// NewHTTPClient creates a wire client with the given round-trip timeout.
// A zero timeout means DefaultRequestTimeout.
func NewHTTPClient(timeout time.Duration, logger *log.Logger) *HTTPClient {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return &HTTPClient{
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Get issues a GET command.
func (c *HTTPClient) Get(ctx context.Context, url string) (*Response, error) {
	return c.do(ctx, http.MethodGet, url, nil)
}

// Post issues a POST command with a JSON body.
func (c *HTTPClient) Post(ctx context.Context, url string, body any) (*Response, error) {
	return c.do(ctx, http.MethodPost, url, body)
}

// Delete issues a DELETE command.
func (c *HTTPClient) Delete(ctx context.Context, url string) (*Response, error) {
	return c.do(ctx, http.MethodDelete, url, nil)
}

func (c *HTTPClient) do(ctx context.Context, method, url string, body any) (_ *Response, rerr error) {
	ctx, span := trace.Command(ctx, method, url)
	defer func() { trace.EndWithError(span, rerr) }()

	var payload io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "encoding request body")
		}
		payload = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, payload)
	if err != nil {
		return nil, errors.Wrapf(err, "building %s %s", method, url)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
	}

	if sid := common.GetSessionID(ctx); sid != "" {
		c.logger.Debugf("wire:do", "%s %s (session %s)", method, url, sid)
	} else {
		c.logger.Debugf("wire:do", "%s %s", method, url)
	}

	res, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s", method, url)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s %s response", method, url)
	}

	var resp Response
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &resp); err != nil {
			return nil, errors.Wrapf(err, "decoding %s %s response", method, url)
		}
	}

	// Legacy wire servers report command failures through the envelope
	// status, not the HTTP status code.
	if resp.Status != 0 {
		return nil, &Error{
			URL:     url,
			Status:  resp.Status,
			Message: errorMessage(resp.Value),
		}
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &Error{
			URL:     url,
			Status:  res.StatusCode,
			Message: http.StatusText(res.StatusCode),
		}
	}

	return &resp, nil
}

func errorMessage(value json.RawMessage) string {
	var v struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(value, &v); err != nil || v.Message == "" {
		return string(value)
	}
	return v.Message
}
