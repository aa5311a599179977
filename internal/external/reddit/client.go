// Package reddit adapts the Reddit OAuth API to the post source and
// reputation interfaces.
package reddit

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/wonny/vulture/pkg/config"
	"github.com/wonny/vulture/pkg/httputil"
	"github.com/wonny/vulture/pkg/logger"
)

// Client handles communication with the Reddit API (application-only OAuth)
// ⭐ SSOT: Reddit API 호출은 이 클라이언트에서만
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	cfg        config.RedditConfig
	now        func() time.Time

	// Token management
	accessToken string
	tokenExpiry time.Time
	tokenMu     sync.RWMutex
}

// NewClient creates a new Reddit API client
func NewClient(cfg config.RedditConfig, httpClient *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log.Component("reddit"),
		cfg:        cfg,
		now:        time.Now,
	}
}

// TokenResponse represents the OAuth token response
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	Error       string `json:"error,omitempty"`
}

// getToken gets a valid access token, refreshing if necessary
func (c *Client) getToken(ctx context.Context) (string, error) {
	c.tokenMu.RLock()
	if c.accessToken != "" && c.now().Before(c.tokenExpiry) {
		token := c.accessToken
		c.tokenMu.RUnlock()
		return token, nil
	}
	c.tokenMu.RUnlock()

	c.tokenMu.Lock()
	defer c.tokenMu.Unlock()

	// Double-check after acquiring write lock
	if c.accessToken != "" && c.now().Before(c.tokenExpiry) {
		return c.accessToken, nil
	}

	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := httputil.NewFormRequest(ctx, c.cfg.AuthURL, form)
	if err != nil {
		return "", fmt.Errorf("create token request: %w", err)
	}
	req.SetBasicAuth(c.cfg.ClientID, c.cfg.ClientSecret)
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	var tokenResp TokenResponse
	if err := c.httpClient.DoJSON(req, &tokenResp); err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	if tokenResp.AccessToken == "" {
		return "", fmt.Errorf("token request rejected: %s", tokenResp.Error)
	}

	// 1분 여유
	lifetime := time.Duration(tokenResp.ExpiresIn) * time.Second
	if lifetime > 2*time.Minute {
		lifetime -= time.Minute
	}

	c.accessToken = tokenResp.AccessToken
	c.tokenExpiry = c.now().Add(lifetime)

	c.logger.WithFields(map[string]interface{}{
		"expires_in": tokenResp.ExpiresIn,
	}).Info("Reddit access token refreshed")

	return c.accessToken, nil
}

// invalidateToken forces the next request to fetch a new token
func (c *Client) invalidateToken() {
	c.tokenMu.Lock()
	c.accessToken = ""
	c.tokenMu.Unlock()
}

// getJSON makes an authenticated GET to the API and decodes the response.
// A 401 refreshes the token and retries once.
func (c *Client) getJSON(ctx context.Context, path string, params url.Values, dest interface{}) error {
	for attempt := 0; ; attempt++ {
		token, err := c.getToken(ctx)
		if err != nil {
			return fmt.Errorf("get token: %w", err)
		}

		req, err := httputil.NewGetRequest(ctx, strings.TrimRight(c.cfg.APIURL, "/")+path, params)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("User-Agent", c.cfg.UserAgent)

		err = c.httpClient.DoJSON(req, dest)

		var statusErr *httputil.StatusError
		if attempt == 0 && errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusUnauthorized {
			c.logger.Warn("Reddit token rejected, refreshing")
			c.invalidateToken()
			continue
		}
		return err
	}
}
