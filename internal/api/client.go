// Package api implements the HTTP client for the Aegis education backend.
package api

import (
	"fmt"
	"sync"

	http "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
	"github.com/sirupsen/logrus"

	"github.com/aegislabs/aegis/internal/config"
)

// Endpoint paths on the backend.
const (
	PathChatNew             = "/chat/new"
	PathAnalyzeNew          = "/analyze/new"
	PathQuizGenerate        = "/quiz/generate"
	PathFileScan            = "/file/files/scan"
	PathConversations       = "/conversations/get"
	PathConversationHistory = "/conversations/get/history/%s"
	PathConversationRename  = "/conversations/put/%s"
	PathUsers               = "/users"
	PathUsersLogin          = "/users/login"
	PathUsersMe             = "/users/me"
)

// httpDoer is the slice of tls_client.HttpClient the Client actually uses.
// Tests substitute a stub implementation.
type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the Aegis backend. All request methods attach the bearer
// token when one is set.
type Client struct {
	httpClient httpDoer
	baseURL    string
	token      *config.Token
	log        *logrus.Logger
	mu         sync.RWMutex
	closed     bool
}

// ClientOption is a function that configures the client
type ClientOption func(*Client)

// WithToken sets the bearer token used for authenticated calls.
func WithToken(token *config.Token) ClientOption {
	return func(c *Client) {
		c.token = token
	}
}

// WithLogger replaces the default logger.
func WithLogger(log *logrus.Logger) ClientOption {
	return func(c *Client) {
		c.log = log
	}
}

// WithVerbose raises the log level to debug.
func WithVerbose(verbose bool) ClientOption {
	return func(c *Client) {
		if verbose {
			c.log.SetLevel(logrus.DebugLevel)
		}
	}
}

// withDoer substitutes the HTTP transport. Test hook.
func withDoer(doer httpDoer) ClientOption {
	return func(c *Client) {
		c.httpClient = doer
	}
}

// NewClient creates a new backend client for baseURL.
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	if baseURL == "" {
		baseURL = config.DefaultBaseURL
	}

	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)

	client := &Client{
		baseURL: baseURL,
		token:   &config.Token{},
		log:     log,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.httpClient == nil {
		// Streaming responses can stay open for minutes; the timeout only
		// bounds the dial and header phases via the transport.
		options := []tls_client.HttpClientOption{
			tls_client.WithTimeoutSeconds(300),
			tls_client.WithClientProfile(profiles.Chrome_120),
			tls_client.WithNotFollowRedirects(),
		}

		httpClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP client: %w", err)
		}
		client.httpClient = httpClient
	}

	return client, nil
}

// Close shuts down the client.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

// IsClosed returns whether the client is closed
func (c *Client) IsClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

// SetToken replaces the bearer token used for subsequent calls.
func (c *Client) SetToken(token *config.Token) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Token returns the current bearer token holder.
func (c *Client) Token() *config.Token {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// BaseURL returns the configured backend address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// endpoint joins the base URL with a path.
func (c *Client) endpoint(path string) string {
	return c.baseURL + path
}

// authorize attaches the bearer token and common headers to a request.
func (c *Client) authorize(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "aegis-cli")
	if tok := c.Token(); tok != nil && !tok.Empty() {
		req.Header.Set("Authorization", "Bearer "+tok.Get())
	}
}
