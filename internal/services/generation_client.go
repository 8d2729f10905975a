package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/kanishka132/StudyBuddy-AI/internal/apierr"
	"github.com/kanishka132/StudyBuddy-AI/internal/logger"
)

const (
	DefaultQuestionCount = 5
	DefaultDifficulty    = "medium"
)

// GenerationRequest is the payload sent to the study generation backend.
type GenerationRequest struct {
	FilePaths     []string `json:"file_paths"`
	Actions       []string `json:"actions"`
	ProjectName   string   `json:"project_name"`
	QuestionCount int      `json:"question_count"`
	Difficulty    string   `json:"difficulty"`
}

// GenerationResults holds the per-action payloads. Each field may be a JSON
// array or a string with an embedded array, depending on the backend run.
type GenerationResults struct {
	Summary    string          `json:"summary,omitempty"`
	Quiz       json.RawMessage `json:"quiz,omitempty"`
	Flashcards json.RawMessage `json:"flashcards,omitempty"`
}

type GenerationResponse struct {
	Success bool               `json:"success"`
	Results *GenerationResults `json:"results,omitempty"`
	Error   string             `json:"error,omitempty"`
}

// GenerationClient calls the remote study generation backend. Requests are
// sent once; generation runs are expensive and not safe to repeat blindly.
type GenerationClient interface {
	Generate(ctx context.Context, req GenerationRequest) (*GenerationResults, error)
}

type generationClient struct {
	log        *logger.Logger
	baseURL    string
	httpClient *http.Client
}

func NewGenerationClient(log *logger.Logger) (GenerationClient, error) {
	baseURL := os.Getenv("GENERATION_BASE_URL")
	if baseURL == "" {
		return nil, fmt.Errorf("missing GENERATION_BASE_URL")
	}

	timeoutSec := 180
	if v := os.Getenv("GENERATION_TIMEOUT_SECONDS"); v != "" {
		if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && parsed > 0 {
			timeoutSec = parsed
		}
	}

	return &generationClient{
		log:        log.With("service", "GenerationClient"),
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
	}, nil
}

func (gc *generationClient) Generate(ctx context.Context, req GenerationRequest) (*GenerationResults, error) {
	if req.QuestionCount <= 0 {
		req.QuestionCount = DefaultQuestionCount
	}
	if req.Difficulty == "" {
		req.Difficulty = DefaultDifficulty
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal generation request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, gc.baseURL+"/generate-learning-content", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build generation request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	gc.log.Info("Calling generation backend", "project", req.ProjectName, "actions", req.Actions)
	resp, err := gc.httpClient.Do(httpReq)
	if err != nil {
		return nil, apierr.Service(fmt.Errorf("generation request failed: %w", err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apierr.Service(fmt.Errorf("read generation response: %w", err))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apierr.Service(fmt.Errorf("generation backend http %d: %s", resp.StatusCode, truncateBody(respBody)))
	}

	var parsed GenerationResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, apierr.Parse("generation response is not valid JSON: %v", err)
	}
	if !parsed.Success {
		msg := parsed.Error
		if msg == "" {
			msg = "generation backend reported failure"
		}
		return nil, apierr.Service(fmt.Errorf("%s", msg))
	}
	if parsed.Results == nil {
		return nil, apierr.Parse("generation response has no results")
	}
	return parsed.Results, nil
}

func truncateBody(b []byte) string {
	const max = 512
	if len(b) > max {
		return string(b[:max]) + "..."
	}
	return string(b)
}
