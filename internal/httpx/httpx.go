package httpx

import (
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Client is a small wrapper around http.Client with sane defaults. Every
// outgoing request gets an X-Request-ID and a debug log line.
type Client struct {
	HTTP      *http.Client
	UserAgent string
	Headers   map[string]string
	Logger    zerolog.Logger
}

func New(timeout time.Duration) *Client {
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: 3 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
		MaxIdleConns:          200,
		MaxIdleConnsPerHost:   100,
		MaxConnsPerHost:       100,
		ForceAttemptHTTP2:     true,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   3 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: 5 * time.Second,
	}
	return &Client{
		HTTP:      &http.Client{Timeout: timeout, Transport: transport},
		UserAgent: "mode-sdk/1.0",
		Logger:    zerolog.Nop(),
	}
}

func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if c.UserAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	for k, v := range c.Headers {
		if req.Header.Get(k) == "" {
			req.Header.Set(k, v)
		}
	}
	reqID := req.Header.Get("X-Request-ID")
	if reqID == "" {
		reqID = uuid.NewString()
		req.Header.Set("X-Request-ID", reqID)
	}

	start := time.Now()
	res, err := c.HTTP.Do(req)

	ev := c.Logger.Debug().
		Str("request_id", reqID).
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Dur("duration", time.Since(start))
	if err != nil {
		ev.Err(err).Msg("http request failed")
		return nil, err
	}
	ev.Int("status", res.StatusCode).Msg("http request")
	return res, nil
}
