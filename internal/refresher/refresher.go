// Package refresher implements the background worker that keeps a shared
// token file fresh. It periodically requests a new token from the
// verification service and atomically replaces the file contents, so readers
// always see either the previous token or the new one, never a partial write.
package refresher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// Doer abstracts the HTTP client used to reach the verification service.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config holds refresher settings.
type Config struct {
	// BaseURL is the verification service base URL.
	BaseURL string
	// Domain is the domain tokens are requested for.
	Domain string
	// OutputPath is the token file to keep fresh.
	OutputPath string
	// Interval is the fixed delay between refresh attempts. Failures do not
	// change the cadence; the worker just retries on the next tick.
	Interval time.Duration
	// RequestTimeout bounds each token request.
	RequestTimeout time.Duration
}

// Refresher periodically mints a token and writes it to a file.
type Refresher struct {
	config Config
	doer   Doer
	logger *slog.Logger
}

// New creates a refresher.
func New(config Config, doer Doer, logger *slog.Logger) *Refresher {
	if config.RequestTimeout <= 0 {
		config.RequestTimeout = 10 * time.Second
	}
	return &Refresher{
		config: config,
		doer:   doer,
		logger: logger,
	}
}

// Run refreshes the token file on a fixed interval until the context is
// cancelled. The first refresh happens immediately. An in-flight refresh is
// allowed to finish before Run returns.
func (r *Refresher) Run(ctx context.Context) error {
	r.logger.Info("starting token refresher",
		slog.String("domain", r.config.Domain),
		slog.String("output_path", r.config.OutputPath),
		slog.Duration("interval", r.config.Interval),
	)

	r.refreshOnce(ctx)

	ticker := time.NewTicker(r.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("stopping token refresher")
			return ctx.Err()
		case <-ticker.C:
			r.refreshOnce(ctx)
		}
	}
}

// refreshOnce performs one refresh attempt, logging failures instead of
// propagating them.
func (r *Refresher) refreshOnce(ctx context.Context) {
	token, err := r.requestToken(ctx)
	if err != nil {
		r.logger.Error("token refresh failed", slog.Any("error", err))
		return
	}

	if err := writeFileAtomic(r.config.OutputPath, []byte(token)); err != nil {
		r.logger.Error("token file write failed",
			slog.String("output_path", r.config.OutputPath),
			slog.Any("error", err),
		)
		return
	}

	r.logger.Info("token refreshed", slog.String("domain", r.config.Domain))
}

type generateTokenRequest struct {
	Domain string `json:"domain"`
}

type generateTokenResponse struct {
	Token string `json:"token"`
}

// requestToken asks the verification service for a fresh token.
func (r *Refresher) requestToken(ctx context.Context) (string, error) {
	reqCtx, cancel := context.WithTimeout(ctx, r.config.RequestTimeout)
	defer cancel()

	body, err := json.Marshal(generateTokenRequest{Domain: r.config.Domain})
	if err != nil {
		return "", fmt.Errorf("failed to encode token request: %w", err)
	}

	url := r.config.BaseURL + "/v1/generate-token"
	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.doer.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("token request returned status %d: %s", resp.StatusCode, respBody)
	}

	var tokenResp generateTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}
	if tokenResp.Token == "" {
		return "", fmt.Errorf("token response contained an empty token")
	}

	return tokenResp.Token, nil
}

// writeFileAtomic writes data to a temp file in the target directory and
// renames it over the destination.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace token file: %w", err)
	}

	return nil
}
