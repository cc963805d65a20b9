package judge

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"

	"github.com/Harsh-BH/gauntlet/internal/domain"
)

type judgeStub struct {
	calls    atomic.Int32
	bodies   [][]byte
	handlers []http.HandlerFunc
}

func (s *judgeStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	n := int(s.calls.Add(1)) - 1
	body, _ := io.ReadAll(r.Body)
	s.bodies = append(s.bodies, body)
	if n >= len(s.handlers) {
		n = len(s.handlers) - 1
	}
	s.handlers[n](w, r)
}

func respondJSON(status int, v any) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}
}

func respondStatus(status int) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte("upstream unavailable"))
	}
}

func newTestClient(t *testing.T, stub *judgeStub, cfg Config) *Client {
	t.Helper()
	srv := httptest.NewServer(stub)
	t.Cleanup(srv.Close)
	cfg.BaseURL = srv.URL
	return NewClient(cfg, srv.Client(), zap.NewNop())
}

var acceptedResult = domain.ExecutionResult{
	Stdout: "ok\n",
	Time:   "0.012",
	Memory: 3412,
	Status: domain.JudgeStatus{ID: 3, Description: "Accepted"},
}

func TestSubmit_FirstAttemptSucceeds(t *testing.T) {
	stub := &judgeStub{handlers: []http.HandlerFunc{respondJSON(http.StatusCreated, acceptedResult)}}
	client := newTestClient(t, stub, Config{})

	result, err := client.Submit(context.Background(), "print(1)", domain.LangPython)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if calls := stub.calls.Load(); calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
	if result.Stdout != "ok\n" || result.Memory != 3412 {
		t.Errorf("unexpected result: %+v", result)
	}

	var sent domain.ExecutionRequest
	if err := json.Unmarshal(stub.bodies[0], &sent); err != nil {
		t.Fatalf("decode request: %v", err)
	}
	want := domain.ExecutionRequest{SourceCode: "print(1)", LanguageID: 71}
	if diff := cmp.Diff(want, sent); diff != "" {
		t.Errorf("request mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmit_RequestShape(t *testing.T) {
	var got *http.Request
	stub := &judgeStub{handlers: []http.HandlerFunc{func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		respondJSON(http.StatusOK, acceptedResult)(w, r)
	}}}
	client := newTestClient(t, stub, Config{APIKey: "secret", APIHost: "judge.example.com"})

	if _, err := client.Submit(context.Background(), "int main(){}", domain.LangCpp); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if got == nil {
		t.Fatal("judge never received a request")
	}

	checks := map[string][2]string{
		"method":          {http.MethodPost, got.Method},
		"path":            {"/submissions", got.URL.Path},
		"base64_encoded":  {"false", got.URL.Query().Get("base64_encoded")},
		"wait":            {"true", got.URL.Query().Get("wait")},
		"content type":    {"application/json", got.Header.Get("Content-Type")},
		"X-RapidAPI-Key":  {"secret", got.Header.Get("X-RapidAPI-Key")},
		"X-RapidAPI-Host": {"judge.example.com", got.Header.Get("X-RapidAPI-Host")},
	}
	for name, c := range checks {
		if c[0] != c[1] {
			t.Errorf("%s: expected %q, got %q", name, c[0], c[1])
		}
	}
}

func TestSubmit_NoKeyNoHeaders(t *testing.T) {
	var got http.Header
	stub := &judgeStub{handlers: []http.HandlerFunc{func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		respondJSON(http.StatusOK, acceptedResult)(w, r)
	}}}
	client := newTestClient(t, stub, Config{})

	if _, err := client.Submit(context.Background(), "x", domain.LangJava); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if got.Get("X-RapidAPI-Key") != "" || got.Get("X-RapidAPI-Host") != "" {
		t.Errorf("expected no RapidAPI headers, got %v", got)
	}
}

func TestSubmit_RetrySucceeds(t *testing.T) {
	stub := &judgeStub{handlers: []http.HandlerFunc{
		respondStatus(http.StatusBadGateway),
		respondJSON(http.StatusOK, acceptedResult),
	}}
	client := newTestClient(t, stub, Config{})

	result, err := client.Submit(context.Background(), "print(1)", domain.LangPython)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if calls := stub.calls.Load(); calls != 2 {
		t.Errorf("expected 2 calls, got %d", calls)
	}
	if result.Status.ID != 3 {
		t.Errorf("expected status 3, got %d", result.Status.ID)
	}
	if !bytes.Equal(stub.bodies[0], stub.bodies[1]) {
		t.Error("retry must resend the identical request")
	}
}

func TestSubmit_TwoFailuresIsServerBusy(t *testing.T) {
	stub := &judgeStub{handlers: []http.HandlerFunc{respondStatus(http.StatusServiceUnavailable)}}
	client := newTestClient(t, stub, Config{})

	result, err := client.Submit(context.Background(), "print(1)", domain.LangPython)
	if err == nil {
		t.Fatal("expected an error")
	}
	if result != nil {
		t.Errorf("expected no result, got %+v", result)
	}
	if calls := stub.calls.Load(); calls != 2 {
		t.Errorf("expected exactly one retry, got %d calls", calls)
	}
	if !errors.Is(err, domain.ErrServerBusy) || !errors.Is(err, domain.ErrSubmissionFailed) {
		t.Errorf("expected busy and submission-failed, got %v", err)
	}
	if !domain.IsJudgeFailure(err) {
		t.Errorf("expected a judge failure, got %v", err)
	}
}

func TestSubmit_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewClient(Config{BaseURL: url}, nil, zap.NewNop())
	_, err := client.Submit(context.Background(), "print(1)", domain.LangPython)
	if !errors.Is(err, domain.ErrServerBusy) || !errors.Is(err, domain.ErrSubmissionFailed) {
		t.Errorf("expected busy and submission-failed, got %v", err)
	}
}

func TestSubmit_CallerCancelIsNotRetried(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stub := &judgeStub{handlers: []http.HandlerFunc{func(_ http.ResponseWriter, r *http.Request) {
		cancel()
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}}}
	client := newTestClient(t, stub, Config{})

	_, err := client.Submit(ctx, "print(1)", domain.LangPython)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if errors.Is(err, domain.ErrServerBusy) || domain.IsJudgeFailure(err) {
		t.Errorf("a cancelled caller must not look like a busy judge: %v", err)
	}
	if calls := stub.calls.Load(); calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestSubmit_TransportErrorKeepsCause(t *testing.T) {
	client := NewClient(Config{BaseURL: "http://judge.invalid"}, &http.Client{
		Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
			return nil, context.DeadlineExceeded
		}),
	}, zap.NewNop())

	_, err := client.Submit(context.Background(), "print(1)", domain.LangPython)
	if !errors.Is(err, domain.ErrServerBusy) {
		t.Errorf("expected busy, got %v", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected the transport cause to stay wrapped, got %v", err)
	}
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestSubmit_MalformedBodyNotRetried(t *testing.T) {
	stub := &judgeStub{handlers: []http.HandlerFunc{func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("<html>gateway</html>"))
	}}}
	client := newTestClient(t, stub, Config{})

	_, err := client.Submit(context.Background(), "print(1)", domain.LangPython)
	if err == nil {
		t.Fatal("expected an error")
	}
	if calls := stub.calls.Load(); calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
	if !errors.Is(err, domain.ErrMalformedResponse) || !errors.Is(err, domain.ErrSubmissionFailed) {
		t.Errorf("expected malformed response, got %v", err)
	}
	if errors.Is(err, domain.ErrServerBusy) {
		t.Errorf("malformed body must not be reported as busy: %v", err)
	}
}

func TestSubmit_UnsupportedLanguage(t *testing.T) {
	stub := &judgeStub{handlers: []http.HandlerFunc{respondJSON(http.StatusOK, acceptedResult)}}
	client := newTestClient(t, stub, Config{})

	_, err := client.Submit(context.Background(), "val x = 1", domain.LangSML)
	if !errors.Is(err, domain.ErrUnsupportedLanguage) {
		t.Errorf("expected ErrUnsupportedLanguage, got %v", err)
	}
	if calls := stub.calls.Load(); calls != 0 {
		t.Errorf("expected no calls, got %d", calls)
	}
}

func TestLanguageID(t *testing.T) {
	tests := map[domain.Language]int{
		domain.LangPython: 71,
		domain.LangJava:   62,
		domain.LangC:      50,
		domain.LangCpp:    54,
	}
	for lang, want := range tests {
		got, ok := LanguageID(lang)
		if !ok || got != want {
			t.Errorf("%s: expected (%d, true), got (%d, %v)", lang, want, got, ok)
		}
	}

	if _, ok := LanguageID(domain.LangSML); ok {
		t.Error("expected no judge id for sml")
	}
}
