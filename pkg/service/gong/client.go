package gong

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/callcoach/callcoach/pkg/model"
	"github.com/callcoach/callcoach/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// Gong is the interface for the call recording service client
type Gong interface {
	// GetTranscript fetches the ordered utterances of a call. A call
	// without a transcript yields an empty slice, not an error.
	GetTranscript(ctx context.Context, callID model.CallID) ([]model.Utterance, error)

	// GetParties fetches the speaker-ID-to-display-name map of a call.
	GetParties(ctx context.Context, callID model.CallID) (model.PartyMap, error)
}

// Client implements Gong against the HTTP API
type Client struct {
	baseURL    string
	accessKey  string
	secretKey  string
	httpClient *http.Client
	now        func() time.Time
}

// Option is a functional option for Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithInsecureTLS disables TLS certificate verification for the call
// recording service. Verification is on by default; disabling it is an
// explicit opt-in and is logged.
func WithInsecureTLS() Option {
	return func(c *Client) {
		c.httpClient.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
		logging.Default().Warn("TLS certificate verification is disabled for the call recording service")
	}
}

// WithClock replaces the timestamp source, used by tests to fix the
// signed timestamp and request ID.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// New creates a new call recording service client
func New(baseURL, accessKey, secretKey string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, goerr.New("base URL is required")
	}
	if accessKey == "" || secretKey == "" {
		return nil, goerr.New("access key and secret key are required")
	}

	c := &Client{
		baseURL:   baseURL,
		accessKey: accessKey,
		secretKey: secretKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		now: time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// post signs and sends one request, returning the raw response body.
// Credentials and signature material are derived fresh per request.
func (c *Client) post(ctx context.Context, path string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal request payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create request", goerr.V("path", path))
	}
	setAuthHeaders(req, c.accessKey, c.secretKey, body, c.now())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to send request to call recording service", goerr.V("path", path))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read response body", goerr.V("path", path))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, goerr.Wrap(model.ErrRemoteService, "request rejected",
			goerr.V("path", path),
			goerr.V("status", resp.StatusCode),
			goerr.V("body", string(respBody)))
	}

	return respBody, nil
}

type callFilter struct {
	CallIDs []model.CallID `json:"callIds"`
}
