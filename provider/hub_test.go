package provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/forumkit/linguahub"
	"github.com/forumkit/linguahub/cache"
)

// hubServer is a fake vendor API for exercising the client.
type hubServer struct {
	*httptest.Server

	tokenCalls     int
	translateCalls int
	detectCalls    int

	token           string
	tokenStatus     int
	omitTokenHeader bool

	translateStatus int
	translateBody   string

	detectedLang string

	lastAuthHeader  string
	lastContentType string
	lastTranslate   translateRequest
	lastDetect      detectRequest
}

func newHubServer(t *testing.T) *hubServer {
	t.Helper()
	s := &hubServer{
		token:           "tok-123",
		tokenStatus:     http.StatusCreated,
		translateStatus: http.StatusOK,
		detectedLang:    "en",
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/v2/projects/forum/auth/tokens", func(w http.ResponseWriter, r *http.Request) {
		s.tokenCalls++
		if !s.omitTokenHeader {
			w.Header().Set("X-Auth-Token", s.token)
		}
		w.WriteHeader(s.tokenStatus)
	})
	mux.HandleFunc("/v2/projects/forum/translate", func(w http.ResponseWriter, r *http.Request) {
		s.translateCalls++
		s.lastAuthHeader = r.Header.Get("X-Auth-Token")
		s.lastContentType = r.Header.Get("Content-Type")
		json.NewDecoder(r.Body).Decode(&s.lastTranslate)

		w.WriteHeader(s.translateStatus)
		if s.translateBody != "" {
			w.Write([]byte(s.translateBody))
			return
		}
		json.NewEncoder(w).Encode(translateResponse{
			TranslatedText: strings.ReplaceAll(s.lastTranslate.Text, "Hello", "Hola"),
		})
	})
	mux.HandleFunc("/v2/projects/forum/detect", func(w http.ResponseWriter, r *http.Request) {
		s.detectCalls++
		s.lastAuthHeader = r.Header.Get("X-Auth-Token")
		json.NewDecoder(r.Body).Decode(&s.lastDetect)
		json.NewEncoder(w).Encode(detectResponse{DetectedLanguage: s.detectedLang})
	})

	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

func newTestHub(s *hubServer) *Hub {
	return NewHub(HubConfig{
		Tenant:  "acme",
		Project: "forum",
		BaseURL: s.URL,
	}, cache.NewMemory(), nil)
}

func TestHub_TranslateBatch(t *testing.T) {
	s := newHubServer(t)
	h := newTestHub(s)

	res := h.TranslateBatch(context.Background(), "<p>Hello </p>\n", "en", "es")
	if res.Kind != linguahub.ResultOK {
		t.Fatalf("Kind = %v, err = %v", res.Kind, res.Err)
	}
	if res.Text != "<p>Hola </p>\n" {
		t.Errorf("Text = %q", res.Text)
	}

	if s.lastAuthHeader != "tok-123" {
		t.Errorf("auth header = %q, want issued token", s.lastAuthHeader)
	}
	if s.lastContentType != "application/json;charset=utf8" {
		t.Errorf("content type = %q", s.lastContentType)
	}
	if s.lastTranslate.From != "en" || s.lastTranslate.To != "es" {
		t.Errorf("request = %+v", s.lastTranslate)
	}
}

func TestHub_TokenCachedAcrossCalls(t *testing.T) {
	s := newHubServer(t)
	h := newTestHub(s)

	for i := 0; i < 3; i++ {
		if res := h.TranslateBatch(context.Background(), "<p>Hello </p>\n", "en", "es"); res.Kind != linguahub.ResultOK {
			t.Fatalf("call %d: Kind = %v, err = %v", i, res.Kind, res.Err)
		}
	}

	if s.tokenCalls != 1 {
		t.Errorf("token endpoint hit %d times, want 1", s.tokenCalls)
	}
	if s.translateCalls != 3 {
		t.Errorf("translate endpoint hit %d times, want 3", s.translateCalls)
	}
}

func TestHub_TokenWrongStatus(t *testing.T) {
	s := newHubServer(t)
	s.tokenStatus = http.StatusOK // token issuance must answer 201
	h := newTestHub(s)

	res := h.TranslateBatch(context.Background(), "<p>Hello </p>\n", "en", "es")
	if res.Kind != linguahub.ResultAPIError {
		t.Fatalf("Kind = %v, want ResultAPIError", res.Kind)
	}

	var tokenErr *linguahub.TokenError
	if !errors.As(res.Err, &tokenErr) {
		t.Fatalf("Err = %v, want TokenError", res.Err)
	}
	if s.translateCalls != 0 {
		t.Error("translate endpoint hit after token failure")
	}
}

func TestHub_TokenMissingHeader(t *testing.T) {
	s := newHubServer(t)
	s.omitTokenHeader = true
	h := newTestHub(s)

	res := h.TranslateBatch(context.Background(), "<p>Hello </p>\n", "en", "es")
	var tokenErr *linguahub.TokenError
	if !errors.As(res.Err, &tokenErr) {
		t.Fatalf("Err = %v, want TokenError", res.Err)
	}
}

func TestHub_UnsupportedLanguagePair(t *testing.T) {
	s := newHubServer(t)
	s.translateStatus = http.StatusBadRequest
	s.translateBody = `{"message": "The language pair is not supported for translation."}`
	h := newTestHub(s)

	res := h.TranslateBatch(context.Background(), "<p>Hello </p>\n", "en", "tlh")
	if res.Kind != linguahub.ResultUnsupportedLanguage {
		t.Fatalf("Kind = %v, want ResultUnsupportedLanguage", res.Kind)
	}
}

func TestHub_TranslateServerError(t *testing.T) {
	s := newHubServer(t)
	s.translateStatus = http.StatusInternalServerError
	s.translateBody = `{"message": "internal error"}`
	h := newTestHub(s)

	res := h.TranslateBatch(context.Background(), "<p>Hello </p>\n", "en", "es")
	if res.Kind != linguahub.ResultAPIError {
		t.Fatalf("Kind = %v, want ResultAPIError", res.Kind)
	}

	var provErr *linguahub.ProviderError
	if !errors.As(res.Err, &provErr) {
		t.Fatalf("Err = %v, want ProviderError", res.Err)
	}
}

func TestHub_MalformedTranslateResponse(t *testing.T) {
	s := newHubServer(t)
	s.translateBody = "not json"
	h := newTestHub(s)

	res := h.TranslateBatch(context.Background(), "<p>Hello </p>\n", "en", "es")
	if res.Kind != linguahub.ResultAPIError {
		t.Fatalf("Kind = %v, want ResultAPIError", res.Kind)
	}
}

func TestHub_Detect(t *testing.T) {
	s := newHubServer(t)
	s.detectedLang = "fr"
	h := newTestHub(s)

	lang, err := h.Detect(context.Background(), "Bonjour tout le monde")
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if lang != "fr" {
		t.Errorf("lang = %q, want fr", lang)
	}
	if s.lastDetect.Text != "Bonjour tout le monde" {
		t.Errorf("detect request text = %q", s.lastDetect.Text)
	}
}

func TestHub_DetectTruncatesInput(t *testing.T) {
	s := newHubServer(t)
	h := newTestHub(s)

	long := strings.Repeat("palabra ", 1000) // well past the limit
	if _, err := h.Detect(context.Background(), long); err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if len(s.lastDetect.Text) > detectLimit {
		t.Errorf("detect request length = %d, want at most %d", len(s.lastDetect.Text), detectLimit)
	}
}

func TestHub_EndpointTemplating(t *testing.T) {
	h := NewHub(HubConfig{Tenant: "acme", Project: "forum"}, nil, nil)

	got := h.endpoint("/translate")
	want := "https://acme.api.linguahub.io/v2/projects/forum/translate"
	if got != want {
		t.Errorf("endpoint = %q, want %q", got, want)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		s     string
		limit int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello", 3, "hel"},
		{"héllo", 2, "h"}, // never splits a rune
		{"日本語", 4, "日"},
	}

	for _, tt := range tests {
		if got := truncate(tt.s, tt.limit); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.s, tt.limit, got, tt.want)
		}
	}
}
