package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kanishka132/StudyBuddy-AI/internal/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

func newTestGenerationClient(t *testing.T, baseURL string) GenerationClient {
	t.Helper()
	t.Setenv("GENERATION_BASE_URL", baseURL)
	client, err := NewGenerationClient(testLogger(t))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func TestGenerationClient_SuccessAppliesDefaults(t *testing.T) {
	var got GenerationRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/generate-learning-content" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(GenerationResponse{
			Success: true,
			Results: &GenerationResults{Summary: "A summary."},
		})
	}))
	defer srv.Close()

	client := newTestGenerationClient(t, srv.URL)
	results, err := client.Generate(context.Background(), GenerationRequest{
		FilePaths:   []string{"materials/u/m/doc.pdf"},
		Actions:     []string{"summary"},
		ProjectName: "Biology",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if results.Summary != "A summary." {
		t.Fatalf("unexpected summary: %q", results.Summary)
	}
	if got.QuestionCount != DefaultQuestionCount {
		t.Fatalf("expected default question count %d, got %d", DefaultQuestionCount, got.QuestionCount)
	}
	if got.Difficulty != DefaultDifficulty {
		t.Fatalf("expected default difficulty %q, got %q", DefaultDifficulty, got.Difficulty)
	}
}

func TestGenerationClient_KeepsExplicitQuizSettings(t *testing.T) {
	var got GenerationRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		json.NewEncoder(w).Encode(GenerationResponse{
			Success: true,
			Results: &GenerationResults{Quiz: json.RawMessage(`[]`)},
		})
	}))
	defer srv.Close()

	client := newTestGenerationClient(t, srv.URL)
	_, err := client.Generate(context.Background(), GenerationRequest{
		FilePaths:     []string{"p"},
		Actions:       []string{"quiz"},
		ProjectName:   "P",
		QuestionCount: 10,
		Difficulty:    "hard",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got.QuestionCount != 10 || got.Difficulty != "hard" {
		t.Fatalf("expected explicit settings kept, got count=%d difficulty=%q", got.QuestionCount, got.Difficulty)
	}
}

func TestGenerationClient_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "backend exploded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := newTestGenerationClient(t, srv.URL)
	_, err := client.Generate(context.Background(), GenerationRequest{ProjectName: "P"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "500") {
		t.Fatalf("expected status in error, got %v", err)
	}
}

func TestGenerationClient_BackendReportedFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(GenerationResponse{Success: false, Error: "model unavailable"})
	}))
	defer srv.Close()

	client := newTestGenerationClient(t, srv.URL)
	_, err := client.Generate(context.Background(), GenerationRequest{ProjectName: "P"})
	if err == nil || !strings.Contains(err.Error(), "model unavailable") {
		t.Fatalf("expected backend error message, got %v", err)
	}
}

func TestGenerationClient_InvalidJSONResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	client := newTestGenerationClient(t, srv.URL)
	if _, err := client.Generate(context.Background(), GenerationRequest{ProjectName: "P"}); err == nil {
		t.Fatalf("expected error for invalid JSON")
	}
}

func TestGenerationClient_SuccessWithoutResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(GenerationResponse{Success: true})
	}))
	defer srv.Close()

	client := newTestGenerationClient(t, srv.URL)
	if _, err := client.Generate(context.Background(), GenerationRequest{ProjectName: "P"}); err == nil {
		t.Fatalf("expected error for missing results")
	}
}

func TestNewGenerationClient_RequiresBaseURL(t *testing.T) {
	t.Setenv("GENERATION_BASE_URL", "")
	if _, err := NewGenerationClient(testLogger(t)); err == nil {
		t.Fatalf("expected error without base URL")
	}
}
