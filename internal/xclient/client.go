// Package xclient talks to the Twitter/X HTTP API. The rest of the program
// only sees the Provider interface; the wire details stay here.
package xclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"tweetdig/internal/model"
)

// Provider is the search/authentication boundary the pipeline consumes.
type Provider interface {
	Authenticate(ctx context.Context) error
	Search(ctx context.Context, query string, count int) ([]model.Post, error)
}

// HTTPClient implements Provider against api.twitter.com using app-only
// (OAuth2 bearer) authentication. Failed calls are not retried.
type HTTPClient struct {
	baseURL     string
	apiKey      string
	apiSecret   string
	bearerToken string
	httpClient  *http.Client
	limiter     *rate.Limiter
}

func NewHTTPClient(apiKey, apiSecret, bearerToken string) *HTTPClient {
	return &HTTPClient{
		baseURL:     "https://api.twitter.com",
		apiKey:      apiKey,
		apiSecret:   apiSecret,
		bearerToken: bearerToken,
		httpClient:  &http.Client{Timeout: 15 * time.Second},
		limiter:     newDefaultLimiter(),
	}
}

// Authenticate exchanges the consumer key and secret for an app-only bearer
// token. A pre-supplied bearer token is kept as-is and no request is made.
func (c *HTTPClient) Authenticate(ctx context.Context) error {
	if c.bearerToken != "" {
		return nil
	}
	if c.apiKey == "" || c.apiSecret == "" {
		return fmt.Errorf("%w: missing api key or secret", model.ErrProvider)
	}
	form := url.Values{"grant_type": {"client_credentials"}}
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/oauth2/token", strings.NewReader(form.Encode()))
	req.SetBasicAuth(url.QueryEscape(c.apiKey), url.QueryEscape(c.apiSecret))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded;charset=UTF-8")
	req.Header.Set("Accept", "application/json")
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", model.ErrProvider, err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: obtain token: %v", model.ErrProvider, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("%w: token endpoint status %d", model.ErrProvider, resp.StatusCode)
	}
	var raw struct {
		TokenType   string `json:"token_type"`
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return fmt.Errorf("%w: decode token: %v", model.ErrProvider, err)
	}
	if raw.AccessToken == "" {
		return fmt.Errorf("%w: empty access token", model.ErrProvider)
	}
	c.bearerToken = raw.AccessToken
	return nil
}

// Search runs a v1.1 standard search and maps the statuses to posts.
func (c *HTTPClient) Search(ctx context.Context, query string, count int) ([]model.Post, error) {
	u := fmt.Sprintf("%s/1.1/search/tweets.json?q=%s&count=%d",
		c.baseURL, url.QueryEscape(query), clamp(count, 1, 100))
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	c.auth(req)
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrProvider, err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: search: %v", model.ErrProvider, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: search status %d", model.ErrProvider, resp.StatusCode)
	}
	var raw struct {
		Statuses []struct {
			ID        int64  `json:"id"`
			CreatedAt string `json:"created_at"`
			Text      string `json:"text"`
			Favorited *bool  `json:"favorited"`
			Retweeted *bool  `json:"retweeted"`
			User      struct {
				ScreenName string `json:"screen_name"`
			} `json:"user"`
		} `json:"statuses"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: decode search: %v", model.ErrProvider, err)
	}
	out := make([]model.Post, 0, len(raw.Statuses))
	for _, s := range raw.Statuses {
		out = append(out, model.Post{
			ID:         s.ID,
			ScreenName: s.User.ScreenName,
			CreatedAt:  s.CreatedAt,
			Text:       s.Text,
			Favorited:  s.Favorited,
			Retweeted:  s.Retweeted,
		})
	}
	return out, nil
}

func (c *HTTPClient) auth(req *http.Request) {
	if c.bearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.bearerToken)
	}
	req.Header.Set("Accept", "application/json")
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
