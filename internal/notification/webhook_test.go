package notification

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWebhookNotifier_Send(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %s", ct)
		}
		json.NewDecoder(r.Body).Decode(&got)
	}))
	defer srv.Close()

	n := NewWebhookNotifier(srv.URL)
	if err := n.Send(context.Background(), "hello"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if got["text"] != "hello" {
		t.Errorf("text = %v", got["text"])
	}
	if got["ts"] == nil {
		t.Error("missing ts field")
	}
}

func TestWebhookNotifier_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	n := NewWebhookNotifier(srv.URL)
	if err := n.Send(context.Background(), "hello"); err == nil {
		t.Fatal("expected error for 502 response")
	}
}

type stubNotifier struct {
	calls int
	err   error
}

func (s *stubNotifier) Send(ctx context.Context, text string) error {
	s.calls++
	return s.err
}

func TestMulti_AttemptsAllBackends(t *testing.T) {
	a := &stubNotifier{err: errors.New("boom")}
	b := &stubNotifier{}

	err := Multi{a, b}.Send(context.Background(), "x")
	if err == nil {
		t.Fatal("expected combined error")
	}
	if a.calls != 1 || b.calls != 1 {
		t.Errorf("calls = %d, %d; want 1, 1", a.calls, b.calls)
	}
}

func TestMulti_AllHealthy(t *testing.T) {
	a := &stubNotifier{}
	b := &stubNotifier{}
	if err := (Multi{a, b}).Send(context.Background(), "x"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
