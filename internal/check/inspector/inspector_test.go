package inspector

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func hostPort(t *testing.T, rawURL string) (string, int) {
	t.Helper()

	u, err := url.Parse(rawURL)
	require.NoError(t, err)
	port, err := strconv.Atoi(u.Port())
	require.NoError(t, err)
	return u.Hostname(), port
}

func TestFetchChain(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	host, port := hostPort(t, server.URL)
	insp := New(nil)

	chain, err := insp.FetchChain(context.Background(), host, port, 5*time.Second)
	require.NoError(t, err)
	require.NotEmpty(t, chain)
	assert.NotEmpty(t, chain[0].Raw)
}

func TestFetchChainTransportFailure(t *testing.T) {
	// Grab a port that is guaranteed to be closed.
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	host, portStr, err := net.SplitHostPort(addr)
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	insp := New(nil)

	_, err = insp.FetchChain(context.Background(), host, port, 5*time.Second)
	require.Error(t, err)

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, StageTransport, fetchErr.Stage)
	assert.Equal(t, host, fetchErr.Domain)
}

func TestFetchChainHandshakeFailure(t *testing.T) {
	// A plain HTTP server answers the ClientHello with an HTTP response.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	host, port := hostPort(t, server.URL)
	insp := New(nil)

	_, err := insp.FetchChain(context.Background(), host, port, 5*time.Second)
	require.Error(t, err)

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, StageHandshake, fetchErr.Stage)
}

func TestFetchChainTimeout(t *testing.T) {
	// Accept the connection and never speak TLS, stalling the handshake.
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		conn, err := listener.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		buf := make([]byte, 1024)
		for {
			if _, err := conn.Read(buf); err != nil {
				return
			}
		}
	}()

	host, portStr, err := net.SplitHostPort(listener.Addr().String())
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	insp := New(nil)

	_, err = insp.FetchChain(context.Background(), host, port, 100*time.Millisecond)
	require.Error(t, err)

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, StageTimeout, fetchErr.Stage)

	require.NoError(t, listener.Close())
	<-done
}
