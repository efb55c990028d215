package probe

import (
	"context"
	"crypto/tls"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Prober performs single-URL availability checks. It is safe for use
// from concurrent goroutines; the underlying connection pool is capped
// at the configured concurrency.
type Prober struct {
	client  *http.Client
	timeout time.Duration
	log     *zap.Logger
}

// NewProber builds a prober with the given per-request timeout and
// connection cap. Redirects are never followed, so 3xx responses are
// reported with their own status and size.
func NewProber(timeout time.Duration, concurrency int, log *zap.Logger) *Prober {
	if log == nil {
		log = zap.NewNop()
	}
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		DialContext: (&net.Dialer{
			Timeout: timeout,
		}).DialContext,
		MaxConnsPerHost:     concurrency,
		MaxIdleConns:        concurrency,
		MaxIdleConnsPerHost: concurrency,
	}
	client := &http.Client{
		Transport: transport,
		Timeout:   timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return &Prober{client: client, timeout: timeout, log: log}
}

// Check probes one URL and always returns an outcome: every failure
// path ends in a Failure, nothing is retried beyond the single GET
// fallback.
//
// The protocol: issue a HEAD first. Servers answering 405 or 501 get
// re-asked with GET and the GET response wins. A transport-level HEAD
// failure (other than a timeout) also falls back to GET, since some
// servers drop HEAD connections outright.
func (p *Prober) Check(ctx context.Context, url string) Outcome {
	p.log.Debug("checking", zap.String("url", url))

	resp, err := p.do(ctx, http.MethodHead, url)
	if err != nil {
		if isTimeout(err) {
			return Fail(url, Timeout, err)
		}
		resp, err = p.do(ctx, http.MethodGet, url)
		if err != nil {
			return classify(url, err)
		}
		return response(url, resp)
	}

	if resp.StatusCode == http.StatusMethodNotAllowed || resp.StatusCode == http.StatusNotImplemented {
		resp, err = p.do(ctx, http.MethodGet, url)
		if err != nil {
			return classify(url, err)
		}
	}
	return response(url, resp)
}

func (p *Prober) do(ctx context.Context, method, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	// Only the status and Content-Length matter; drain a little for
	// connection reuse and drop the rest.
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	resp.Body.Close()
	return resp, nil
}

func response(url string, resp *http.Response) Outcome {
	size := resp.ContentLength
	if size < 0 {
		size = 0
	}
	return Outcome{URL: url, StatusCode: resp.StatusCode, SizeBytes: size}
}

// classify maps transport errors to the failure taxonomy, most specific
// first: timeouts, then resolution/connection failures, then the
// catch-all.
func classify(url string, err error) Outcome {
	switch {
	case isTimeout(err):
		return Fail(url, Timeout, err)
	case isConnectionError(err):
		return Fail(url, ConnectionError, err)
	default:
		return Fail(url, OtherError, err)
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func isConnectionError(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr)
}
