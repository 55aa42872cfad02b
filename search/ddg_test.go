package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/prospectkit/prospect/config"
)

const resultsFixture = `<html><body>
<div class="result">
	<a class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Facme.com%2F&amp;rut=abc">Acme Corp</a>
</div>
<div class="result">
	<a class="result__a" href="https://example.org/direct">Direct link</a>
</div>
<div class="result">
	<a class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fthird.example%2Fpage">Third</a>
</div>
</body></html>`

func newTestDDG(t *testing.T, handler http.HandlerFunc) *DDG {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return NewDDG(config.SearchConfig{Endpoint: ts.URL, Timeout: 5 * time.Second})
}

func TestDDG_Search(t *testing.T) {
	var gotQuery string
	d := newTestDDG(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Write([]byte(resultsFixture))
	})

	urls, err := d.Search(context.Background(), "acme corp official site", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if gotQuery != "acme corp official site" {
		t.Errorf("query = %q", gotQuery)
	}

	want := []string{
		"https://acme.com/",
		"https://example.org/direct",
		"https://third.example/page",
	}
	if !reflect.DeepEqual(urls, want) {
		t.Errorf("results = %v, want %v", urls, want)
	}
}

func TestDDG_SearchMaxCapsResults(t *testing.T) {
	d := newTestDDG(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(resultsFixture))
	})

	urls, err := d.Search(context.Background(), "acme", 2)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(urls) != 2 {
		t.Errorf("got %d results, want 2", len(urls))
	}
}

func TestDDG_SearchEmptyPage(t *testing.T) {
	d := newTestDDG(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>no results</body></html>"))
	})

	urls, err := d.Search(context.Background(), "gibberish", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(urls) != 0 {
		t.Errorf("expected no results, got %v", urls)
	}
}

func TestDDG_SearchServerError(t *testing.T) {
	d := newTestDDG(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "blocked", http.StatusForbidden)
	})

	if _, err := d.Search(context.Background(), "acme", 5); err == nil {
		t.Error("expected error for HTTP 403")
	}
}

func TestDecodeRedirect(t *testing.T) {
	tests := []struct {
		name string
		href string
		want string
	}{
		{
			"uddg wrapper",
			"//duckduckgo.com/l/?uddg=https%3A%2F%2Facme.com%2Fabout",
			"https://acme.com/about",
		},
		{
			"plain url untouched",
			"https://acme.com/about",
			"https://acme.com/about",
		},
		{
			"empty uddg falls through",
			"//duckduckgo.com/l/?uddg=",
			"//duckduckgo.com/l/?uddg=",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := decodeRedirect(tt.href); got != tt.want {
				t.Errorf("decodeRedirect(%q) = %q, want %q", tt.href, got, tt.want)
			}
		})
	}
}

func TestFirst(t *testing.T) {
	d := newTestDDG(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(resultsFixture))
	})

	got, err := First(context.Background(), d, "acme")
	if err != nil {
		t.Fatalf("First: %v", err)
	}
	if got != "https://acme.com/" {
		t.Errorf("First = %q", got)
	}
}

func TestFirst_NoResult(t *testing.T) {
	d := newTestDDG(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body></body></html>"))
	})

	_, err := First(context.Background(), d, "nothing")
	if err != ErrNoResult {
		t.Errorf("err = %v, want ErrNoResult", err)
	}
}
