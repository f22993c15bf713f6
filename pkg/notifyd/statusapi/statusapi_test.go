package statusapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type fakeProvider struct {
	jobs []JobStatus
}

func (f fakeProvider) Status() []JobStatus {
	return f.jobs
}

func TestHealthNeverRequiresAuth(t *testing.T) {
	s := New(Config{Enabled: true, AuthToken: "secret"}, fakeProvider{}, nil)
	w := httptest.NewRecorder()
	s.handleHealth(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("got status %d", w.Code)
	}
}

func TestStatusRejectsMissingToken(t *testing.T) {
	s := New(Config{Enabled: true, AuthToken: "secret"}, fakeProvider{}, nil)
	handler := s.authMiddleware(http.HandlerFunc(s.handleStatus))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/status", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("got status %d", w.Code)
	}
}

func TestStatusRejectsWrongToken(t *testing.T) {
	s := New(Config{Enabled: true, AuthToken: "secret"}, fakeProvider{}, nil)
	handler := s.authMiddleware(http.HandlerFunc(s.handleStatus))
	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("got status %d", w.Code)
	}
}

func TestStatusAcceptsCorrectToken(t *testing.T) {
	jobs := []JobStatus{{JobID: "check-devices", NextRun: 100, Running: 1}}
	s := New(Config{Enabled: true, AuthToken: "secret"}, fakeProvider{jobs: jobs}, nil)
	handler := s.authMiddleware(http.HandlerFunc(s.handleStatus))
	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	req.Header.Set("Authorization", "Bearer secret")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, body %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "check-devices") {
		t.Fatalf("expected job id in body, got %s", w.Body.String())
	}
}

func TestStatusOpenWithNoTokenConfigured(t *testing.T) {
	s := New(Config{Enabled: true}, fakeProvider{}, nil)
	handler := s.authMiddleware(http.HandlerFunc(s.handleStatus))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/status", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("got status %d", w.Code)
	}
}
