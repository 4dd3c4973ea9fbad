// Package genai is a stateless adapter to the hosted generation service.
// It converts an internal message history plus one optional inline image
// into the service's request shape and extracts plain text from the
// response.
package genai

import (
	"fmt"

	http "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"

	"github.com/qyf6zs2vmg-hue/CeloraAI/internal/models"
)

// DefaultBaseURL is the hosted generation endpoint.
const DefaultBaseURL = "https://generativelanguage.googleapis.com"

// httpDoer is the slice of the transport the client actually uses.
// Satisfied by tls_client.HttpClient and by test fakes.
type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the generation service. It holds no conversation state;
// callers pass the full history on every call.
type Client struct {
	httpClient  httpDoer
	apiKey      string
	baseURL     string
	model       string
	temperature float64
}

// Option configures the client.
type Option func(*Client)

// WithModel sets the generation model.
func WithModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithBaseURL overrides the service endpoint, used by tests and proxies.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		if base != "" {
			c.baseURL = base
		}
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) Option {
	return func(c *Client) {
		c.temperature = t
	}
}

// WithHTTPClient injects a transport, used by tests.
func WithHTTPClient(hc httpDoer) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a generation client.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	client := &Client{
		apiKey:      apiKey,
		baseURL:     DefaultBaseURL,
		model:       models.DefaultModel,
		temperature: models.DefaultTemperature,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.httpClient == nil {
		options := []tls_client.HttpClientOption{
			tls_client.WithTimeoutSeconds(300),
			tls_client.WithClientProfile(profiles.Chrome_120),
		}
		httpClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP client: %w", err)
		}
		client.httpClient = httpClient
	}

	return client, nil
}

// Model returns the model name the client sends with each request.
func (c *Client) Model() string {
	return c.model
}

func (c *Client) endpoint() string {
	return fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
}
