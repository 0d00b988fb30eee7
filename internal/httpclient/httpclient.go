// Package httpclient provides the pooled outbound HTTP client used for
// domain security probes.
package httpclient

import (
	"net/http"
	"time"
)

// Config holds outbound connection pool settings.
type Config struct {
	MaxConnections     int
	MaxIdleConnections int
	IdleTimeout        time.Duration
}

// Client wraps http.Client with a tuned connection pool. TLS verification
// stays enabled: the security check relies on verification failures to
// classify certificate problems. Redirects are followed so the downgrade
// check can observe the full redirect chain.
type Client struct {
	client *http.Client
}

// New creates a pooled HTTP client with the given configuration. Per-request
// timeouts come from the request context, not the client.
func New(cfg Config) *Client {
	transport := &http.Transport{
		MaxConnsPerHost:     cfg.MaxConnections,
		MaxIdleConns:        cfg.MaxConnections,
		MaxIdleConnsPerHost: cfg.MaxIdleConnections,
		IdleConnTimeout:     cfg.IdleTimeout,
	}

	return &Client{
		client: &http.Client{Transport: transport},
	}
}

// Do executes an HTTP request using the pooled client.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	return c.client.Do(req)
}

// Close releases idle pooled connections.
func (c *Client) Close() {
	c.client.CloseIdleConnections()
}
