package sheet

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestFetchCSV(t *testing.T) {
	const doc = "Full Name,Phone\nAsha,987\n"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("gid"); got != "42" {
			t.Errorf("gid = %q, want 42", got)
		}
		w.Write([]byte(doc))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/export?format=csv", 5*time.Second, 1<<20)
	got, err := c.FetchCSV(context.Background(), "42")
	if err != nil {
		t.Fatalf("FetchCSV() error = %v", err)
	}
	if got != doc {
		t.Errorf("FetchCSV() = %q, want %q", got, doc)
	}
}

func TestFetchCSV_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/export?format=csv", 5*time.Second, 1<<20)
	_, err := c.FetchCSV(context.Background(), "0")
	if err == nil {
		t.Fatal("FetchCSV() succeeded on HTTP 404")
	}
	if !strings.Contains(err.Error(), "HTTP 404") {
		t.Errorf("error %q does not carry the status code", err)
	}
}

func TestFetchCSV_BodyLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(strings.Repeat("x", 100)))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/export?format=csv", 5*time.Second, 10)
	got, err := c.FetchCSV(context.Background(), "0")
	if err != nil {
		t.Fatalf("FetchCSV() error = %v", err)
	}
	if len(got) != 10 {
		t.Errorf("body length = %d, want capped at 10", len(got))
	}
}

func TestFetchCSV_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(srv.URL+"/export?format=csv", 5*time.Second, 1<<20)
	if _, err := c.FetchCSV(ctx, "0"); err == nil {
		t.Fatal("FetchCSV() succeeded with cancelled context")
	}
}
