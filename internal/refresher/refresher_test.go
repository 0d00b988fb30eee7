package refresher

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func tokenServer(t *testing.T, hits *atomic.Int64, token string) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)

		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/generate-token", r.URL.Path)

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "bank.gov.pl", req["domain"])

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{"token": token})
	}))
}

func TestRefresherWritesTokenFile(t *testing.T) {
	var hits atomic.Int64
	server := tokenServer(t, &hits, "fresh-token")
	defer server.Close()

	outputPath := filepath.Join(t.TempDir(), "secret.txt")
	refresher := New(Config{
		BaseURL:    server.URL,
		Domain:     "bank.gov.pl",
		OutputPath: outputPath,
		Interval:   time.Hour,
	}, server.Client(), newTestLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- refresher.Run(ctx) }()

	require.Eventually(t, func() bool {
		data, err := os.ReadFile(outputPath)
		return err == nil && string(data) == "fresh-token"
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
	assert.Equal(t, int64(1), hits.Load())
}

func TestRefresherRetriesAfterFailure(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := hits.Add(1)
		if n == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{"token": "second-try"})
	}))
	defer server.Close()

	outputPath := filepath.Join(t.TempDir(), "secret.txt")
	refresher := New(Config{
		BaseURL:    server.URL,
		Domain:     "bank.gov.pl",
		OutputPath: outputPath,
		Interval:   20 * time.Millisecond,
	}, server.Client(), newTestLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- refresher.Run(ctx) }()

	// First attempt fails; the next tick succeeds without backoff growth.
	require.Eventually(t, func() bool {
		data, err := os.ReadFile(outputPath)
		return err == nil && string(data) == "second-try"
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	<-done
	assert.GreaterOrEqual(t, hits.Load(), int64(2))
}

func TestRefresherReplacesPreviousToken(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := hits.Add(1)
		w.WriteHeader(http.StatusCreated)
		token := "token-1"
		if n > 1 {
			token = "token-2"
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"token": token})
	}))
	defer server.Close()

	outputPath := filepath.Join(t.TempDir(), "secret.txt")
	refresher := New(Config{
		BaseURL:    server.URL,
		Domain:     "bank.gov.pl",
		OutputPath: outputPath,
		Interval:   20 * time.Millisecond,
	}, server.Client(), newTestLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- refresher.Run(ctx) }()

	require.Eventually(t, func() bool {
		data, err := os.ReadFile(outputPath)
		return err == nil && string(data) == "token-2"
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	<-done
}

func TestWriteFileAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secret.txt")

	require.NoError(t, writeFileAtomic(path, []byte("first")))
	require.NoError(t, writeFileAtomic(path, []byte("second")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
