package probe

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestProber(timeout time.Duration) *Prober {
	return NewProber(timeout, 5, nil)
}

func TestCheckUsesHEADResponse(t *testing.T) {
	var sawGet bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			sawGet = true
		}
		w.Header().Set("Content-Length", "120")
		w.WriteHeader(200)
	}))
	defer srv.Close()

	oc := newTestProber(5 * time.Second).Check(context.Background(), srv.URL)
	if oc.Failed() {
		t.Fatalf("unexpected failure: %v", oc.Err)
	}
	if oc.StatusCode != 200 {
		t.Errorf("status = %d, want 200", oc.StatusCode)
	}
	if oc.SizeBytes != 120 {
		t.Errorf("size = %d, want 120", oc.SizeBytes)
	}
	if sawGet {
		t.Error("GET issued although HEAD succeeded with a usable status")
	}
}

func TestCheckFallsBackToGETOn405(t *testing.T) {
	const body = "get response body"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		fmt.Fprint(w, body)
	}))
	defer srv.Close()

	oc := newTestProber(5 * time.Second).Check(context.Background(), srv.URL)
	if oc.Failed() {
		t.Fatalf("unexpected failure: %v", oc.Err)
	}
	if oc.StatusCode != 200 {
		t.Errorf("status = %d, want 200 from GET fallback", oc.StatusCode)
	}
	if oc.SizeBytes != int64(len(body)) {
		t.Errorf("size = %d, want %d from GET Content-Length", oc.SizeBytes, len(body))
	}
}

func TestCheckFallsBackToGETOn501(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusNotImplemented)
			return
		}
		fmt.Fprint(w, "ok")
	}))
	defer srv.Close()

	oc := newTestProber(5 * time.Second).Check(context.Background(), srv.URL)
	if oc.Failed() {
		t.Fatalf("unexpected failure: %v", oc.Err)
	}
	if oc.StatusCode != 200 {
		t.Errorf("status = %d, want 200 from GET fallback", oc.StatusCode)
	}
}

func TestCheckFallsBackToGETOnTransportError(t *testing.T) {
	// HEAD connections are killed mid-flight; GET is served normally.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			conn, _, err := w.(http.Hijacker).Hijack()
			if err != nil {
				t.Fatalf("hijack: %v", err)
			}
			conn.Close()
			return
		}
		fmt.Fprint(w, "served by GET")
	}))
	defer srv.Close()

	oc := newTestProber(5 * time.Second).Check(context.Background(), srv.URL)
	if oc.Failed() {
		t.Fatalf("unexpected failure: %v", oc.Err)
	}
	if oc.StatusCode != 200 {
		t.Errorf("status = %d, want 200 from GET fallback", oc.StatusCode)
	}
}

func TestCheckDoesNotFollowRedirects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/target" {
			t.Error("redirect was followed")
		}
		w.Header().Set("Location", "/target")
		w.WriteHeader(http.StatusMovedPermanently)
	}))
	defer srv.Close()

	oc := newTestProber(5 * time.Second).Check(context.Background(), srv.URL)
	if oc.Failed() {
		t.Fatalf("unexpected failure: %v", oc.Err)
	}
	if oc.StatusCode != http.StatusMovedPermanently {
		t.Errorf("status = %d, want 301", oc.StatusCode)
	}
}

func TestCheckMissingContentLength(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		// Flushing before the body forces chunked encoding, so the
		// response carries no Content-Length.
		w.WriteHeader(200)
		w.(http.Flusher).Flush()
		fmt.Fprint(w, "chunked body")
	}))
	defer srv.Close()

	oc := newTestProber(5 * time.Second).Check(context.Background(), srv.URL)
	if oc.Failed() {
		t.Fatalf("unexpected failure: %v", oc.Err)
	}
	if oc.SizeBytes != 0 {
		t.Errorf("size = %d, want 0 for unknown Content-Length", oc.SizeBytes)
	}
}

func TestCheckTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer srv.Close()

	oc := newTestProber(50 * time.Millisecond).Check(context.Background(), srv.URL)
	if !oc.Failed() {
		t.Fatal("expected a failure outcome")
	}
	if oc.Err.Kind != Timeout {
		t.Errorf("kind = %v, want Timeout", oc.Err.Kind)
	}
}

func TestCheckConnectionRefused(t *testing.T) {
	// Grab a port that is guaranteed to be closed.
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := l.Addr().String()
	l.Close()

	oc := newTestProber(2 * time.Second).Check(context.Background(), "http://"+addr)
	if !oc.Failed() {
		t.Fatal("expected a failure outcome")
	}
	if oc.Err.Kind != ConnectionError {
		t.Errorf("kind = %v, want ConnectionError (detail: %s)", oc.Err.Kind, oc.Err.Detail)
	}
}

func TestCheckUnresolvableHost(t *testing.T) {
	oc := newTestProber(5 * time.Second).Check(context.Background(), "http://does-not-resolve.invalid/")
	if !oc.Failed() {
		t.Fatal("expected a failure outcome")
	}
	if oc.Err.Kind != ConnectionError {
		t.Errorf("kind = %v, want ConnectionError (detail: %s)", oc.Err.Kind, oc.Err.Detail)
	}
}

func TestFailureDetailTruncated(t *testing.T) {
	longHost := strings.Repeat("a", 200) + ".invalid"
	oc := newTestProber(5 * time.Second).Check(context.Background(), "http://"+longHost+"/")
	if !oc.Failed() {
		t.Fatal("expected a failure outcome")
	}
	if len(oc.Err.Detail) > 100 {
		t.Errorf("detail length = %d, want <= 100", len(oc.Err.Detail))
	}
}

func TestFailureKindStrings(t *testing.T) {
	tests := []struct {
		kind FailureKind
		want string
	}{
		{Timeout, "Timeout"},
		{ConnectionError, "DNS/Connection"},
		{OtherError, "Error"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
