package suggest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func respond(t *testing.T, w http.ResponseWriter, text string) {
	t.Helper()
	resp := map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]any{{"text": text}}}},
		},
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		t.Fatalf("encode response: %v", err)
	}
}

func TestSuggestSendsPersonaAndKeyword(t *testing.T) {
	var captured generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("method = %s, want POST", r.Method)
		}
		if !strings.Contains(r.URL.Path, "models/test-model:generateContent") {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "secret" {
			t.Fatalf("missing api key in query")
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		respond(t, w, "푸리의 미션")
	}))
	defer srv.Close()

	c := New(srv.URL, "test-model", "secret")
	got, err := c.Suggest(context.Background(), "하늘")
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if got != "푸리의 미션" {
		t.Fatalf("Suggest = %q", got)
	}
	if captured.SystemInstruction == nil || !strings.Contains(captured.SystemInstruction.Parts[0].Text, "Puri") {
		t.Fatalf("persona instruction missing from request")
	}
	if want := "Keyword: 하늘"; captured.Contents[0].Parts[0].Text != want {
		t.Fatalf("user query = %q, want %q", captured.Contents[0].Parts[0].Text, want)
	}
}

func TestSuggestStripsQuotes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond(t, w, "\"따옴표\" 없는 “미션”")
	}))
	defer srv.Close()

	c := New(srv.URL, "m", "k")
	got, err := c.Suggest(context.Background(), "kw")
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if got != "따옴표 없는 미션" {
		t.Fatalf("Suggest = %q, quotes not stripped", got)
	}
}

func TestSuggestEmptyKeywordSkipsNetwork(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("empty keyword must not reach the service")
	}))
	defer srv.Close()

	c := New(srv.URL, "m", "k")
	for _, kw := range []string{"", "   "} {
		if _, err := c.Suggest(context.Background(), kw); !errors.Is(err, ErrEmptyKeyword) {
			t.Fatalf("Suggest(%q) = %v, want ErrEmptyKeyword", kw, err)
		}
	}
}

func TestSuggestNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := New(srv.URL, "m", "k")
	_, err := c.Suggest(context.Background(), "kw")
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("Suggest = %v, want *GenerationError", err)
	}
	if genErr.Status != http.StatusTooManyRequests {
		t.Fatalf("Status = %d, want 429", genErr.Status)
	}
}

func TestSuggestMissingTextField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte(`{"candidates":[]}`)); err != nil {
			t.Fatalf("write: %v", err)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, "m", "k")
	_, err := c.Suggest(context.Background(), "kw")
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("Suggest = %v, want *GenerationError", err)
	}
}

func TestSuggestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	c := New(srv.URL, "m", "k")
	_, err := c.Suggest(context.Background(), "kw")
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("Suggest = %v, want *GenerationError", err)
	}
	if genErr.Status != 0 {
		t.Fatalf("transport failure must carry no status, got %d", genErr.Status)
	}
}
