// Package spotifyauth exchanges and refreshes Spotify access tokens. A fresh
// token is fed back into the platform service via its credential reload, so
// the service instance never has to be rebuilt mid-flight.
package spotifyauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTokenURL = "https://accounts.spotify.com/api/token"

type Client struct {
	tokenURL     string
	clientID     string
	clientSecret string
	http         *http.Client
}

func NewClient(tokenURL string, clientID string, clientSecret string) *Client {
	tokenURL = strings.TrimSpace(tokenURL)
	if tokenURL == "" {
		tokenURL = defaultTokenURL
	}

	return &Client{
		tokenURL:     tokenURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type Token struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
}

// ClientCredentials obtains an app-level token. Sufficient for the public
// track and playlist reads the metrics service performs.
func (c *Client) ClientCredentials(ctx context.Context) (*Token, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	return c.exchange(ctx, form)
}

// Refresh trades a refresh token for a new access token after a user-level
// OAuth flow completes. Spotify may rotate the refresh token; when it does,
// the returned Token carries the replacement.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*Token, error) {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return nil, fmt.Errorf("refresh token is required")
	}

	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)
	return c.exchange(ctx, form)
}

func (c *Client) exchange(ctx context.Context, form url.Values) (*Token, error) {
	if c.clientID == "" || c.clientSecret == "" {
		return nil, fmt.Errorf("spotify client credentials not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.clientID, c.clientSecret)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("spotify token exchange failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 16*1024))
		return nil, fmt.Errorf("spotify token endpoint: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var token Token
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return nil, fmt.Errorf("spotify token response: %w", err)
	}
	if token.AccessToken == "" {
		return nil, fmt.Errorf("spotify token response missing access_token")
	}

	return &token, nil
}
