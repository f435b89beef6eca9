package modeapi

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"modesdk/internal/httpx"
)

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=modeapi_test -destination=mock_http_client_test.go -source=client.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

const (
	defaultBaseURL = "http://localhost:8080"
	defaultTimeout = 15 * time.Second

	// defaultExpirySkew refreshes the token this long before its exp claim
	// so in-flight requests don't race the expiry.
	defaultExpirySkew = 30 * time.Second
)

// Client is a client for the Mode Trading API. It authenticates lazily on
// the first request, attaches the bearer token to every call, and refreshes
// it before the token's exp claim passes.
type Client struct {
	// baseURL is the base URL for the API, without trailing slash.
	baseURL string
	// email and password are the login credentials.
	email    string
	password string
	// httpClient is the HTTP client used to perform requests.
	httpClient HTTPClient
	logger     zerolog.Logger
	expirySkew time.Duration

	mu       sync.RWMutex
	token    string
	tokenExp time.Time // zero when the token carries no usable exp claim

	// login coalesces concurrent token refreshes into one upstream call.
	login singleflight.Group
}

// ClientOption is a configuration option for the Mode API client.
type ClientOption func(*Client)

// WithBaseURL sets the base URL for the API.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient sets the HTTP client for the API.
func WithHTTPClient(httpClient HTTPClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTimeout sets the request timeout of the default HTTP client. It has
// no effect when WithHTTPClient is also given.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		if hc, ok := c.httpClient.(*httpx.Client); ok {
			hc.HTTP.Timeout = timeout
		}
	}
}

// New creates a new Mode API client. Credentials fall back to the
// MODE_API_EMAIL and MODE_API_PASSWORD environment variables, and the base
// URL to MODE_API_BASE_URL. No network call happens here; the login runs on
// the first request.
func New(email, password string, options ...ClientOption) (*Client, error) {
	if email == "" {
		email = os.Getenv("MODE_API_EMAIL")
	}
	if password == "" {
		password = os.Getenv("MODE_API_PASSWORD")
	}
	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	baseURL := defaultBaseURL
	if v := os.Getenv("MODE_API_BASE_URL"); v != "" {
		baseURL = v
	}

	hc := httpx.New(defaultTimeout)
	hc.UserAgent = "mode-sdk/1.0"

	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		email:      email,
		password:   password,
		httpClient: hc,
		logger:     zerolog.Nop(),
		expirySkew: defaultExpirySkew,
	}
	for _, option := range options {
		option(client)
	}
	if hc, ok := client.httpClient.(*httpx.Client); ok {
		hc.Logger = client.logger
	}
	return client, nil
}

// get issues a prepared request and maps non-2xx statuses and network
// failures to *APIError. The caller owns the body on success.
func (c *Client) get(req *http.Request) (*http.Response, error) {
	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &APIError{Message: fmt.Sprintf("performing request: %v", err)}
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		defer res.Body.Close()
		b, _ := io.ReadAll(io.LimitReader(res.Body, 2<<10))
		return nil, &APIError{StatusCode: res.StatusCode, Message: strings.TrimSpace(string(b))}
	}
	return res, nil
}
