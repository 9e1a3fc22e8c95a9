// Package reddit provides a read-only client for the Reddit API,
// authenticated as a script app via the OAuth2 password grant.
package reddit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"

	"threadstats/internal/config"
	"threadstats/internal/models"
)

// Client errors.
var (
	ErrSubmissionNotFound   = errors.New("no submission found for URL")
	ErrUnexpectedStatusCode = errors.New("unexpected status code")
)

const (
	defaultBaseURL  = "https://oauth.reddit.com"
	defaultTokenURL = "https://www.reddit.com/api/v1/access_token"

	requestTimeout = 30 * time.Second

	// Response bodies are tiny listings; cap reads defensively.
	maxBodyBytes = 1 << 20
)

// Client queries the Reddit API for submission metadata. One client is
// constructed per run and reused for every query.
type Client struct {
	http    *http.Client
	baseURL string
}

// NewClient creates a client against the public Reddit endpoints.
// Construction never touches the network: the OAuth2 token is fetched
// on the first API call, so bad or missing credentials surface there.
func NewClient(cfg config.RedditConfig) *Client {
	return NewClientWithBaseURL(cfg, defaultBaseURL, defaultTokenURL)
}

// NewClientWithBaseURL creates a client with custom API and token
// endpoints (useful for testing).
func NewClientWithBaseURL(cfg config.RedditConfig, baseURL, tokenURL string) *Client {
	oauthCfg := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint: oauth2.Endpoint{
			TokenURL:  tokenURL,
			AuthStyle: oauth2.AuthStyleInHeader,
		},
	}

	// Reddit rejects requests carrying the default Go user agent, so
	// the token request needs the configured one too.
	tokenClient := &http.Client{
		Timeout:   requestTimeout,
		Transport: &userAgentTransport{agent: cfg.UserAgent, base: http.DefaultTransport},
	}
	tokenCtx := context.WithValue(context.Background(), oauth2.HTTPClient, tokenClient)

	// ReuseTokenSource around the password grant keeps authentication
	// lazy: the first API call fetches the token, later calls reuse it
	// until it expires.
	source := oauth2.ReuseTokenSource(nil, &passwordTokenSource{
		ctx:      tokenCtx,
		conf:     oauthCfg,
		username: cfg.Username,
		password: cfg.Password,
	})

	httpClient := &http.Client{
		Timeout: requestTimeout,
		Transport: &userAgentTransport{
			agent: cfg.UserAgent,
			base:  &oauth2.Transport{Source: source, Base: http.DefaultTransport},
		},
	}

	return &Client{
		http:    httpClient,
		baseURL: baseURL,
	}
}

// SubmissionByURL fetches the submission identified by postURL and
// returns its lock state, archive state, and comment count. A URL that
// resolves to no submission yields ErrSubmissionNotFound.
func (c *Client) SubmissionByURL(ctx context.Context, postURL string) (models.Post, error) {
	endpoint := fmt.Sprintf("%s/api/info.json?url=%s", c.baseURL, url.QueryEscape(postURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return models.Post{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return models.Post{}, fmt.Errorf("request failed: %w", err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return models.Post{}, fmt.Errorf("%w: %d", ErrUnexpectedStatusCode, resp.StatusCode)
	}

	var listing infoListing
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&listing); err != nil {
		return models.Post{}, fmt.Errorf("failed to decode response: %w", err)
	}

	for _, child := range listing.Data.Children {
		// Submissions are kind t3; /api/info can also return comments
		// and subreddits for other query forms.
		if child.Kind == "t3" {
			return child.Data, nil
		}
	}

	return models.Post{}, fmt.Errorf("%w: %s", ErrSubmissionNotFound, postURL)
}

// infoListing mirrors the subset of the /api/info response we consume.
type infoListing struct {
	Data struct {
		Children []struct {
			Kind string      `json:"kind"`
			Data models.Post `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// passwordTokenSource defers the OAuth2 password grant until a token
// is first requested.
type passwordTokenSource struct {
	ctx      context.Context
	conf     *oauth2.Config
	username string
	password string
}

// Token exchanges the username and password for an access token.
func (s *passwordTokenSource) Token() (*oauth2.Token, error) {
	token, err := s.conf.PasswordCredentialsToken(s.ctx, s.username, s.password)
	if err != nil {
		return nil, fmt.Errorf("reddit authentication failed: %w", err)
	}

	return token, nil
}

// userAgentTransport sets the configured User-Agent on every request.
type userAgentTransport struct {
	agent string
	base  http.RoundTripper
}

// RoundTrip implements http.RoundTripper.
func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.Header.Set("User-Agent", t.agent)

	return t.base.RoundTrip(clone)
}
