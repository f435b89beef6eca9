package modeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"accessToken"`
}

// bearer returns a token valid past the expiry skew window, logging in
// first if needed. Concurrent callers with a stale token share one login.
func (c *Client) bearer(ctx context.Context) (string, error) {
	c.mu.RLock()
	token, exp := c.token, c.tokenExp
	c.mu.RUnlock()
	if token != "" && (exp.IsZero() || time.Now().Before(exp.Add(-c.expirySkew))) {
		return token, nil
	}

	v, err, _ := c.login.Do("login", func() (any, error) {
		return c.authenticate(ctx)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// authenticate performs the login handshake and stores the bearer token.
func (c *Client) authenticate(ctx context.Context) (string, error) {
	body, err := json.Marshal(loginRequest{Email: c.email, Password: c.password})
	if err != nil {
		return "", &AuthError{Err: err}
	}

	url := c.baseURL + "/api/v1/auth/login"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", &AuthError{Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return "", &AuthError{Err: fmt.Errorf("performing request: %w", err)}
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusUnauthorized:
		return "", &AuthError{Err: ErrInvalidCredentials}

	case res.StatusCode < 200 || res.StatusCode >= 300:
		b, _ := io.ReadAll(io.LimitReader(res.Body, 2<<10))
		return "", &AuthError{Err: &APIError{StatusCode: res.StatusCode, Message: string(b)}}
	}

	var lr loginResponse
	if err := json.NewDecoder(res.Body).Decode(&lr); err != nil {
		return "", &AuthError{Err: fmt.Errorf("decoding login response: %w", err)}
	}
	if lr.AccessToken == "" {
		return "", &AuthError{Err: fmt.Errorf("accessToken not found in response")}
	}

	exp := tokenExpiry(lr.AccessToken)

	c.mu.Lock()
	c.token = lr.AccessToken
	c.tokenExp = exp
	c.mu.Unlock()

	c.logger.Debug().Time("expires", exp).Msg("authenticated")
	return lr.AccessToken, nil
}

// tokenExpiry reads the exp claim without verifying the signature; the
// client only needs it to schedule refreshes, not to trust the token. An
// opaque or claimless token yields zero, which disables proactive refresh.
func tokenExpiry(token string) time.Time {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}
	}
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}

// newRequest builds an authenticated GET request for an API path.
func (c *Client) newRequest(ctx context.Context, path string) (*http.Request, error) {
	token, err := c.bearer(ctx)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return req, nil
}
