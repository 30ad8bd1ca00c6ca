package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

// newTestService points an OllamaService at an httptest server.
func newTestService(t *testing.T, handler http.HandlerFunc, timeout time.Duration) (*OllamaService, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	host := strings.TrimPrefix(srv.URL, "http://")
	return NewOllamaService(host, "gemma2", 150, 0.7, timeout, testLogger()), srv
}

func TestOllamaService_Generate(t *testing.T) {
	var gotBody map[string]interface{}
	svc, srv := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"response": "  The troll stumbles back.  "})
	}, 5*time.Second)
	defer srv.Close()

	text, err := svc.Generate(context.Background(), "fight the troll")
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if text != "The troll stumbles back." {
		t.Errorf("Generate() = %q, want trimmed narration", text)
	}

	if gotBody["model"] != "gemma2" {
		t.Errorf("request model = %v", gotBody["model"])
	}
	if gotBody["prompt"] != "fight the troll" {
		t.Errorf("request prompt = %v", gotBody["prompt"])
	}
	if gotBody["stream"] != false {
		t.Errorf("request stream = %v, want false", gotBody["stream"])
	}
	opts, ok := gotBody["options"].(map[string]interface{})
	if !ok {
		t.Fatalf("request options missing: %v", gotBody)
	}
	if opts["num_predict"] != float64(150) || opts["temperature"] != 0.7 {
		t.Errorf("request options = %v", opts)
	}
}

func TestOllamaService_Generate_NonSuccessStatus(t *testing.T) {
	svc, srv := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}, 5*time.Second)
	defer srv.Close()

	_, err := svc.Generate(context.Background(), "prompt")
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("Generate() error = %v, want ErrUnavailable", err)
	}
}

func TestOllamaService_Generate_Timeout(t *testing.T) {
	svc, srv := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_ = json.NewEncoder(w).Encode(map[string]string{"response": "too late"})
	}, 20*time.Millisecond)
	defer srv.Close()

	_, err := svc.Generate(context.Background(), "prompt")
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("Generate() error = %v, want ErrUnavailable", err)
	}
}

func TestOllamaService_Generate_Unreachable(t *testing.T) {
	// A server that is already closed refuses connections.
	svc, srv := newTestService(t, func(w http.ResponseWriter, r *http.Request) {}, time.Second)
	srv.Close()

	_, err := svc.Generate(context.Background(), "prompt")
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("Generate() error = %v, want ErrUnavailable", err)
	}
}

func TestOllamaService_Ping(t *testing.T) {
	svc, srv := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"models":[]}`))
	}, time.Second)
	defer srv.Close()

	if err := svc.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error: %v", err)
	}

	srv.Close()
	if err := svc.Ping(context.Background()); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Ping() after close = %v, want ErrUnavailable", err)
	}
}
