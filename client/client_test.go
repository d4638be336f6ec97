package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"threatscope/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *int32) {
	t.Helper()

	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	c := New(&Options{
		URL:       srv.URL + models.AnalyzePath,
		Timeout:   2 * time.Second,
		UserAgent: "threatscope-test",
	})
	return c, &calls
}

func jsonHandler(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}
}

func TestAnalyzeSendsRequest(t *testing.T) {
	var got map[string]string
	var contentType, method, path string

	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		path = r.URL.Path
		contentType = r.Header.Get("Content-Type")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		jsonHandler(http.StatusOK, `{"security_score":85,"threat_level":"Low","is_malicious":false}`)(w, r)
	})

	res, err := c.Analyze(context.Background(), models.AnalysisRequest{
		InputText: "  http://paypa1-secure.example.test/login  ",
		InputType: models.ModeURL,
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if method != http.MethodPost || path != "/analyze" {
		t.Errorf("request = %s %s, want POST /analyze", method, path)
	}
	if contentType != "application/json" {
		t.Errorf("content type = %q", contentType)
	}
	if got["input_text"] != "http://paypa1-secure.example.test/login" {
		t.Errorf("input_text = %q, want trimmed URL", got["input_text"])
	}
	if got["input_type"] != "url" {
		t.Errorf("input_type = %q", got["input_type"])
	}

	if res.SecurityScore != 85 || res.ThreatLevel != "Low" || res.IsMalicious {
		t.Errorf("unexpected result %+v", res)
	}
	if c.Busy() {
		t.Error("client should not be busy after Analyze returns")
	}
}

func TestAnalyzeEmptyInputSkipsNetwork(t *testing.T) {
	c, calls := newTestClient(t, jsonHandler(http.StatusOK, `{}`))

	for _, input := range []string{"", "   ", "\n\t "} {
		_, err := c.Analyze(context.Background(), models.AnalysisRequest{InputText: input, InputType: models.ModeEmail})
		if !errors.Is(err, ErrEmptyInput) {
			t.Errorf("Analyze(%q) error = %v, want ErrEmptyInput", input, err)
		}
		if UserMessage(err) != EmptyInputMessage {
			t.Errorf("message = %q", UserMessage(err))
		}
	}

	if n := atomic.LoadInt32(calls); n != 0 {
		t.Errorf("server saw %d requests, want 0", n)
	}
}

func TestAnalyzeServerError(t *testing.T) {
	c, _ := newTestClient(t, jsonHandler(http.StatusOK,
		`{"error":"model not trained","security_score":0,"threat_level":"Unknown","is_malicious":false}`))

	_, err := c.Analyze(context.Background(), models.NewAnalysisRequest("hello", models.ModeEmail))

	var serverErr *ServerError
	if !errors.As(err, &serverErr) {
		t.Fatalf("error = %v, want *ServerError", err)
	}
	if UserMessage(err) != "model not trained" {
		t.Errorf("message = %q, want verbatim server text", UserMessage(err))
	}
}

func TestAnalyzeTransportFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"http 500", jsonHandler(http.StatusInternalServerError, `{"error":"boom"}`)},
		{"http 400 with error body", jsonHandler(http.StatusBadRequest, `{"error":"No input provided"}`)},
		{"not json", jsonHandler(http.StatusOK, `<html>oops</html>`)},
		{"missing score", jsonHandler(http.StatusOK, `{"threat_level":"Low","is_malicious":false}`)},
		{"string score", jsonHandler(http.StatusOK, `{"security_score":"85","threat_level":"Low"}`)},
		{"array body", jsonHandler(http.StatusOK, `[1,2,3]`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, tt.handler)
			_, err := c.Analyze(context.Background(), models.NewAnalysisRequest("x", models.ModeEmail))
			if err == nil {
				t.Fatal("expected error")
			}
			if UserMessage(err) != FailureMessage {
				t.Errorf("message = %q, want generic failure", UserMessage(err))
			}
		})
	}
}

func TestAnalyzeConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL + models.AnalyzePath
	srv.Close()

	c := New(&Options{URL: url, Timeout: time.Second})
	_, err := c.Analyze(context.Background(), models.NewAnalysisRequest("x", models.ModeURL))

	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("error = %v, want *TransportError", err)
	}
	if UserMessage(err) != FailureMessage {
		t.Errorf("message = %q", UserMessage(err))
	}
}

func TestAnalyzeClampsOutOfRangeScore(t *testing.T) {
	c, _ := newTestClient(t, jsonHandler(http.StatusOK, `{"security_score":130.5,"threat_level":"Very Low","is_malicious":false}`))

	res, err := c.Analyze(context.Background(), models.NewAnalysisRequest("x", models.ModeEmail))
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if res.SecurityScore != 100 {
		t.Errorf("score = %v, want clamped 100", res.SecurityScore)
	}
}

func TestAnalyzeHonoursContextDeadline(t *testing.T) {
	release := make(chan struct{})
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-time.After(3 * time.Second):
		}
		jsonHandler(http.StatusOK, `{"security_score":1}`)(w, r)
	})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := c.Analyze(ctx, models.NewAnalysisRequest("slow", models.ModeEmail))
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("Analyze took %v, deadline not honoured", elapsed)
	}
	if UserMessage(err) != FailureMessage {
		t.Errorf("message = %q", UserMessage(err))
	}
	if c.Busy() {
		t.Error("busy flag should be cleared after a timeout")
	}
}

func TestAnalyzeRejectsConcurrentCall(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		<-release
		jsonHandler(http.StatusOK, `{"security_score":90,"threat_level":"Very Low","is_malicious":false}`)(w, r)
	})

	errc := make(chan error, 1)
	go func() {
		_, err := c.Analyze(context.Background(), models.NewAnalysisRequest("first", models.ModeEmail))
		errc <- err
	}()

	<-entered
	_, err := c.Analyze(context.Background(), models.NewAnalysisRequest("second", models.ModeEmail))
	if !errors.Is(err, ErrBusy) {
		t.Errorf("second call error = %v, want ErrBusy", err)
	}

	close(release)
	if err := <-errc; err != nil {
		t.Errorf("first call: %v", err)
	}
}
