package suggest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"tableflip.dev/nova/pkg/errs"
)

func geminiServer(t *testing.T, status int, answer string) (*httptest.Server, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		if r.Header.Get("x-goog-api-key") != "k" {
			t.Errorf("missing api key header")
		}
		if !strings.HasSuffix(r.URL.Path, "/models/gemini-test:generateContent") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		var req request
		if err := json.Unmarshal(body, &req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		if len(req.Contents) != 1 || !strings.Contains(req.Contents[0].Parts[0].Text, "Milk") {
			t.Errorf("prompt does not carry the note body: %s", body)
		}
		if req.GenerationConfig.ResponseMimeType != "application/json" {
			t.Errorf("expected json response type")
		}
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(answer))
			return
		}
		_ = json.NewEncoder(w).Encode(response{Candidates: []candidate{{
			Content: &content{Parts: []part{{Text: answer}}, Role: "model"},
		}}})
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestSuggest(t *testing.T) {
	srv, _ := geminiServer(t, http.StatusOK, "```json\n{\"category\":\"Shopping\",\"tags\":[\"Food\",\"Weekly\",\"Errand\"],\"prioritySuggestion\":\"Low\"}\n```")
	c := New(Config{Endpoint: srv.URL, Model: "gemini-test", APIKey: "k"}, nil)

	s, err := c.Suggest(context.Background(), "Milk, Eggs, Avocado")
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if s.Category != "Shopping" || len(s.Tags) != 3 || s.PrioritySuggestion != "Low" {
		t.Fatalf("unexpected suggestion %+v", s)
	}
}

func TestSuggestSkipsWithoutKeyOrContent(t *testing.T) {
	srv, calls := geminiServer(t, http.StatusOK, "{}")

	s, err := New(Config{Endpoint: srv.URL, Model: "gemini-test"}, nil).Suggest(context.Background(), "Milk")
	if s != nil || err != nil {
		t.Fatalf("expected no suggestion without a key, got %v %v", s, err)
	}
	s, err = New(Config{Endpoint: srv.URL, Model: "gemini-test", APIKey: "k"}, nil).Suggest(context.Background(), "   ")
	if s != nil || err != nil {
		t.Fatalf("expected no suggestion for blank content, got %v %v", s, err)
	}
	if atomic.LoadInt32(calls) != 0 {
		t.Fatalf("no request should be made")
	}
}

func TestSuggestFailuresAreExternal(t *testing.T) {
	for name, tc := range map[string]struct {
		status int
		answer string
	}{
		"status":    {status: http.StatusTooManyRequests, answer: "quota"},
		"malformed": {status: http.StatusOK, answer: "not json"},
	} {
		t.Run(name, func(t *testing.T) {
			srv, _ := geminiServer(t, tc.status, tc.answer)
			s, err := New(Config{Endpoint: srv.URL, Model: "gemini-test", APIKey: "k"}, nil).Suggest(context.Background(), "Milk")
			if s != nil || !errs.IsExternal(err) {
				t.Fatalf("expected external error, got %v %v", s, err)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	s, err := Decode(`{"category":"Design","tags":["UI"],"prioritySuggestion":"high"}`)
	if err != nil || s.Category != "Design" || s.Tags[0] != "UI" {
		t.Fatalf("unexpected decode %+v %v", s, err)
	}
	if _, err := Decode("``` ```"); err == nil {
		t.Fatalf("expected error for empty fence")
	}
}
