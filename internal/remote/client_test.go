package remote_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/blackwell-systems/winefonts/internal/remote"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/index.json", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "winefonts-test" {
			http.Error(w, "bad agent", http.StatusBadRequest)
			return
		}
		_, _ = io.WriteString(w, `{"version":"1.0.0"}`)
	})
	mux.HandleFunc("/old.json", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/index.json", http.StatusFound)
	})
	mux.HandleFunc("/private", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	mux.HandleFunc("/broken", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetch_OK(t *testing.T) {
	srv := newServer(t)
	c := remote.New(5*time.Second, "winefonts-test", nil)
	data, err := c.Fetch(context.Background(), srv.URL+"/index.json")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if string(data) != `{"version":"1.0.0"}` {
		t.Errorf("body = %q", data)
	}
}

func TestFetch_FollowsRedirect(t *testing.T) {
	srv := newServer(t)
	c := remote.New(5*time.Second, "winefonts-test", nil)
	if _, err := c.Fetch(context.Background(), srv.URL+"/old.json"); err != nil {
		t.Fatalf("Fetch via redirect: %v", err)
	}
}

func TestFetch_StatusErrors(t *testing.T) {
	srv := newServer(t)
	c := remote.New(5*time.Second, "winefonts-test", nil)

	if _, err := c.Fetch(context.Background(), srv.URL+"/missing"); !errors.Is(err, remote.ErrNotFound) {
		t.Errorf("missing: %v", err)
	}
	if _, err := c.Fetch(context.Background(), srv.URL+"/private"); !errors.Is(err, remote.ErrForbidden) {
		t.Errorf("private: %v", err)
	}
	_, err := c.Fetch(context.Background(), srv.URL+"/broken")
	var se *remote.StatusError
	if !errors.As(err, &se) || se.Status != http.StatusInternalServerError || se.Body != "boom" {
		t.Errorf("broken: %v", err)
	}
}

func TestOpen_ContentLength(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "5")
		_, _ = io.WriteString(w, "hello")
	}))
	defer srv.Close()

	rc, n, err := remote.New(0, "", nil).Open(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()
	if n != 5 {
		t.Errorf("content length = %d, want 5", n)
	}
}

func TestOpen_UnsupportedScheme(t *testing.T) {
	_, _, err := remote.New(0, "", nil).Open(context.Background(), "ftp://example.com/a.cab")
	if !errors.Is(err, remote.ErrUnsupportedScheme) {
		t.Errorf("err = %v, want ErrUnsupportedScheme", err)
	}
}

func TestOpen_ContextCancelled(t *testing.T) {
	srv := newServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := remote.New(0, "", nil).Open(ctx, srv.URL+"/index.json"); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
