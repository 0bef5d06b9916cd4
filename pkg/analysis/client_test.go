package analysis

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matzehuels/wordsphere/pkg/cache"
	"github.com/matzehuels/wordsphere/pkg/errors"
)

func newTestClient(t *testing.T, h http.HandlerFunc, opts ...Option) (*Client, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		h(w, r)
	}))
	t.Cleanup(srv.Close)
	opts = append([]Option{WithRetry(3, time.Millisecond)}, opts...)
	return NewClient(srv.URL, opts...), &calls
}

func TestAnalyze(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/analyze" {
			t.Errorf("path = %s, want /analyze", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		var req analyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.URL != "https://example.com/article" {
			t.Errorf("url = %q", req.URL)
		}
		w.Write([]byte(`{"words":[{"word":"golang","weight":0.9},{"word":"sphere","weight":0.4}]}`))
	})

	words, err := c.Analyze(context.Background(), " https://example.com/article ", false)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(words) != 2 || words[0].Word != "golang" || words[1].Weight != 0.4 {
		t.Errorf("words = %+v", words)
	}
}

func TestAnalyzeMissingWords(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	words, err := c.Analyze(context.Background(), "https://example.com", false)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if words == nil || len(words) != 0 {
		t.Errorf("missing words field should give an empty non-nil slice, got %#v", words)
	}
}

func TestAnalyzeInvalidURL(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})

	for _, u := range []string{"", "   ", "not a url", "ftp://x"} {
		_, err := c.Analyze(context.Background(), u, false)
		if !errors.Is(err, errors.ErrCodeInvalidURL) {
			t.Errorf("Analyze(%q) err = %v, want INVALID_URL", u, err)
		}
	}
	if *calls != 0 {
		t.Errorf("invalid URLs should not reach the service, got %d calls", *calls)
	}
}

func TestAnalyzeStatusMapping(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantCode  errors.Code
		wantCalls int32
	}{
		{"not found", http.StatusNotFound, errors.ErrCodeNotFound, 1},
		{"rate limited", http.StatusTooManyRequests, errors.ErrCodeRateLimited, 1},
		{"bad request", http.StatusBadRequest, errors.ErrCodeInvalidURL, 1},
		{"server error retried", http.StatusBadGateway, errors.ErrCodeNetwork, 3},
		{"teapot", http.StatusTeapot, errors.ErrCodeNetwork, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Retry-After", "7")
				w.WriteHeader(tt.status)
			})
			_, err := c.Analyze(context.Background(), "https://example.com", false)
			if got := errors.GetCode(err); got != tt.wantCode {
				t.Errorf("code = %q, want %q (err %v)", got, tt.wantCode, err)
			}
			if *calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", *calls, tt.wantCalls)
			}
		})
	}
}

func TestAnalyzeRetriesThenSucceeds(t *testing.T) {
	var n int32
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&n, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"words":[{"word":"ok","weight":1}]}`))
	})

	words, err := c.Analyze(context.Background(), "https://example.com", false)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(words) != 1 || *calls != 2 {
		t.Errorf("words = %v, calls = %d", words, *calls)
	}
}

func TestAnalyzeMalformedBody(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"words": "nope"}`))
	})
	_, err := c.Analyze(context.Background(), "https://example.com", false)
	if !errors.Is(err, errors.ErrCodeInvalidWords) {
		t.Errorf("err = %v, want INVALID_WORDS", err)
	}
}

func TestAnalyzeRejectsBadWords(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty word", `{"words":[{"word":"","weight":1}]}`},
		{"blank word", `{"words":[{"word":"ok","weight":1},{"word":"   ","weight":1}]}`},
		{"terminal escape", `{"words":[{"word":"\u001b]0;title\u0007x","weight":-3}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			})
			words, err := c.Analyze(context.Background(), "https://example.com", false)
			if !errors.Is(err, errors.ErrCodeInvalidWords) {
				t.Errorf("Analyze() = %+v, %v; want INVALID_WORDS", words, err)
			}
			if *calls != 1 {
				t.Errorf("invalid words should not be retried, calls = %d", *calls)
			}
		})
	}
}

func TestAnalyzeNormalizesWords(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"words":[{"word":"cafe\u0301","weight":1}]}`))
	})
	words, err := c.Analyze(context.Background(), "https://example.com", false)
	if err != nil {
		t.Fatal(err)
	}
	if len(words) != 1 || words[0].Word != "caf\u00e9" {
		t.Errorf("words = %+v, want composed caf\u00e9", words)
	}
}

func TestAnalyzeIgnoresInvalidCacheEntry(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	keyer := cache.NewDefaultKeyer()
	ctx := context.Background()
	bad := []byte(`[{"word":"\u0007","weight":1}]`)
	if err := fc.Set(ctx, keyer.AnalysisKey("https://example.com"), bad, time.Hour); err != nil {
		t.Fatal(err)
	}

	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"words":[{"word":"fresh","weight":1}]}`))
	}, WithCache(fc, keyer, time.Hour))

	words, err := c.Analyze(ctx, "https://example.com", false)
	if err != nil || len(words) != 1 || words[0].Word != "fresh" {
		t.Fatalf("Analyze = %v, %v", words, err)
	}
	if *calls != 1 {
		t.Errorf("invalid cache entry should fall through to the service, calls = %d", *calls)
	}
}

func TestAnalyzeCache(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"words":[{"word":"cached","weight":1}]}`))
	}, WithCache(fc, cache.NewDefaultKeyer(), time.Hour))

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		words, err := c.Analyze(ctx, "https://example.com", false)
		if err != nil || len(words) != 1 || words[0].Word != "cached" {
			t.Fatalf("Analyze #%d = %v, %v", i, words, err)
		}
	}
	if *calls != 1 {
		t.Errorf("cached lookups should hit the service once, got %d", *calls)
	}

	if _, err := c.Analyze(ctx, "https://example.com", true); err != nil {
		t.Fatal(err)
	}
	if *calls != 2 {
		t.Errorf("refresh should bypass the cache, calls = %d", *calls)
	}
}

func TestAnalyzeContextCanceled(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(50 * time.Millisecond)
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.Analyze(ctx, "https://example.com", false); err == nil {
		t.Error("canceled context should fail")
	}
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient("")
	if c.BaseURL() != DefaultBaseURL {
		t.Errorf("BaseURL = %q, want %q", c.BaseURL(), DefaultBaseURL)
	}
	c = NewClient("http://svc:9000/", WithTimeout(time.Second))
	if c.BaseURL() != "http://svc:9000" {
		t.Errorf("trailing slash should be trimmed, got %q", c.BaseURL())
	}
	if c.http.Timeout != time.Second {
		t.Errorf("timeout = %v", c.http.Timeout)
	}
}
