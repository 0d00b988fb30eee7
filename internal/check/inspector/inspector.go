// Package inspector retrieves raw TLS certificate chains for observation.
//
// The handshake deliberately accepts any peer certificate: the goal is to
// observe the chain and negotiated parameters, not to let crypto/tls's own
// validation short-circuit the caller's classification. Error taxonomy
// (expired vs hostname-mismatch vs self-signed) requires the raw chain.
package inspector

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"time"

	apperrors "github.com/allisson/domainguard/internal/errors"
)

// Stage identifies where a chain fetch failed, so callers can distinguish
// transport problems (DNS, refused, reset) from TLS handshake problems and
// from timeouts.
type Stage string

const (
	StageTransport Stage = "transport"
	StageHandshake Stage = "handshake"
	StageTimeout   Stage = "timeout"
)

// ErrEmptyChain indicates the peer completed the handshake without sending
// any certificates.
var ErrEmptyChain = apperrors.New("no certificate chain returned")

// FetchError describes a failed chain fetch with the stage it failed in.
type FetchError struct {
	Stage  Stage
	Domain string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("certificate chain fetch failed for %s (%s): %v", e.Domain, e.Stage, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Inspector fetches certificate chains over raw TLS handshakes.
type Inspector struct {
	dialer *net.Dialer
	logger *slog.Logger
}

// New creates a chain inspector.
func New(logger *slog.Logger) *Inspector {
	return &Inspector{
		dialer: &net.Dialer{},
		logger: logger,
	}
}

// FetchChain connects to domain:port, performs a TLS client handshake with
// SNI set to domain, and returns the chain exactly as sent by the peer, leaf
// first. Servers frequently omit the root CA from the wire chain, so the
// chain may terminate at an intermediate.
//
// The timeout covers the whole connect+handshake sequence. On any failure the
// connection is closed before returning.
func (i *Inspector) FetchChain(
	ctx context.Context,
	domain string,
	port int,
	timeout time.Duration,
) ([]*x509.Certificate, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	addr := net.JoinHostPort(domain, strconv.Itoa(port))

	rawConn, err := i.dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, &FetchError{Stage: failStage(err, StageTransport), Domain: domain, Err: err}
	}

	tlsConn := tls.Client(rawConn, &tls.Config{
		ServerName: domain,
		// Accept any certificate at the transport layer; classification of the
		// observed chain is the caller's job.
		InsecureSkipVerify: true, //nolint:gosec // observation-only handshake
	})

	if err := tlsConn.HandshakeContext(ctx); err != nil {
		_ = rawConn.Close()
		return nil, &FetchError{Stage: failStage(err, StageHandshake), Domain: domain, Err: err}
	}

	chain := tlsConn.ConnectionState().PeerCertificates
	if err := tlsConn.Close(); err != nil && i.logger != nil {
		i.logger.Debug("chain inspector close failed",
			slog.String("domain", domain),
			slog.Any("error", err),
		)
	}

	if len(chain) == 0 {
		return nil, &FetchError{Stage: StageHandshake, Domain: domain, Err: ErrEmptyChain}
	}

	return chain, nil
}

// failStage promotes transport and handshake failures to the timeout stage
// when the deadline was the actual cause.
func failStage(err error, fallback Stage) Stage {
	if apperrors.Is(err, context.DeadlineExceeded) {
		return StageTimeout
	}
	var netErr net.Error
	if apperrors.As(err, &netErr) && netErr.Timeout() {
		return StageTimeout
	}
	return fallback
}
