package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/kanishka132/StudyBuddy-AI/internal/apierr"
	"github.com/kanishka132/StudyBuddy-AI/internal/content"
	"github.com/kanishka132/StudyBuddy-AI/internal/logger"
	"github.com/kanishka132/StudyBuddy-AI/internal/repos"
	"github.com/kanishka132/StudyBuddy-AI/internal/types"
)

const (
	ActionSummary    = "summary"
	ActionQuiz       = "quiz"
	ActionFlashcards = "flashcards"
)

// GenerateInput is the workspace form: a project name, the selected
// materials and the artifacts to produce.
type GenerateInput struct {
	Name          string
	Subject       string
	MaterialIDs   []uuid.UUID
	Actions       []string
	QuestionCount int
	Difficulty    string
}

// GenerateOutput reports the created project. Attachment steps that failed
// after generation succeeded are surfaced as warnings rather than errors;
// the project exists either way.
type GenerateOutput struct {
	Project  *types.Project `json:"project"`
	Warnings []string       `json:"warnings,omitempty"`
}

// SummaryView is the rendered summary panel.
type SummaryView struct {
	Raw       string `json:"raw"`
	HTML      string `json:"html"`
	WordCount int    `json:"word_count"`
}

type ProjectService interface {
	Generate(ctx context.Context, userID uuid.UUID, input GenerateInput) (*GenerateOutput, error)
	Get(ctx context.Context, userID, projectID uuid.UUID) (*types.Project, error)
	Materials(ctx context.Context, userID, projectID uuid.UUID) ([]*types.Material, error)
	List(ctx context.Context, userID uuid.UUID, subject string) ([]*types.Project, error)
	Delete(ctx context.Context, userID, projectID uuid.UUID) error
	Summary(ctx context.Context, userID, projectID uuid.UUID) (*SummaryView, error)
	FlashcardDeck(ctx context.Context, userID, projectID uuid.UUID) ([]content.Flashcard, error)
	QuizQuestions(ctx context.Context, userID, projectID uuid.UUID) (*types.Quiz, []content.QuizQuestion, error)
}

type projectService struct {
	db               *gorm.DB
	log              *logger.Logger
	projectRepo      repos.ProjectRepo
	quizRepo         repos.QuizRepo
	materialRepo     repos.MaterialRepo
	generationClient GenerationClient
}

func NewProjectService(
	db *gorm.DB,
	log *logger.Logger,
	projectRepo repos.ProjectRepo,
	quizRepo repos.QuizRepo,
	materialRepo repos.MaterialRepo,
	generationClient GenerationClient,
) ProjectService {
	serviceLog := log.With("service", "ProjectService")
	return &projectService{
		db:               db,
		log:              serviceLog,
		projectRepo:      projectRepo,
		quizRepo:         quizRepo,
		materialRepo:     materialRepo,
		generationClient: generationClient,
	}
}

func validActions(actions []string) bool {
	if len(actions) == 0 {
		return false
	}
	for _, a := range actions {
		switch a {
		case ActionSummary, ActionQuiz, ActionFlashcards:
		default:
			return false
		}
	}
	return true
}

func containsAction(actions []string, action string) bool {
	for _, a := range actions {
		if a == action {
			return true
		}
	}
	return false
}

func (ps *projectService) Generate(ctx context.Context, userID uuid.UUID, input GenerateInput) (*GenerateOutput, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, apierr.Validation("project name is required")
	}
	if len(input.MaterialIDs) == 0 {
		return nil, apierr.Validation("select at least one material")
	}
	if !validActions(input.Actions) {
		return nil, apierr.Validation("select at least one valid action")
	}

	materials, err := ps.materialRepo.GetByIDs(ctx, nil, input.MaterialIDs)
	if err != nil {
		return nil, fmt.Errorf("Failed to load selected materials: %w", err)
	}
	filePaths := make([]string, 0, len(materials))
	for _, m := range materials {
		if m.UserID != userID {
			return nil, apierr.NotFound("material not found")
		}
		if m.FilePath != "" {
			filePaths = append(filePaths, m.FilePath)
		}
	}
	if len(filePaths) == 0 {
		return nil, apierr.Validation("selected materials do not have stored files")
	}

	wantQuiz := containsAction(input.Actions, ActionQuiz)
	questionCount := DefaultQuestionCount
	difficulty := DefaultDifficulty
	if wantQuiz {
		if input.QuestionCount > 0 {
			questionCount = input.QuestionCount
		}
		if input.Difficulty != "" {
			difficulty = input.Difficulty
		}
	}

	results, err := ps.generationClient.Generate(ctx, GenerationRequest{
		FilePaths:     filePaths,
		Actions:       input.Actions,
		ProjectName:   input.Name,
		QuestionCount: questionCount,
		Difficulty:    difficulty,
	})
	if err != nil {
		return nil, err
	}

	materialIDsJSON, err := json.Marshal(input.MaterialIDs)
	if err != nil {
		return nil, fmt.Errorf("marshal material ids: %w", err)
	}
	actionsJSON, err := json.Marshal(input.Actions)
	if err != nil {
		return nil, fmt.Errorf("marshal actions: %w", err)
	}

	project := &types.Project{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        input.Name,
		Subject:     input.Subject,
		MaterialIDs: datatypes.JSON(materialIDsJSON),
		Actions:     datatypes.JSON(actionsJSON),
	}
	if wantQuiz {
		project.QuizQuestionCount = &questionCount
		project.QuizDifficulty = &difficulty
	}
	if _, err := ps.projectRepo.Create(ctx, nil, project); err != nil {
		return nil, fmt.Errorf("Failed to save project: %w", err)
	}

	// Generation succeeded, so the project survives even when individual
	// attachment steps fail; those failures become warnings.
	var warnings []string

	if results.Summary != "" && containsAction(input.Actions, ActionSummary) {
		if err := ps.projectRepo.AttachSummary(ctx, nil, project.ID, results.Summary); err != nil {
			ps.log.Warn("Failed to save summary", "project_id", project.ID, "error", err)
			warnings = append(warnings, "failed to save summary")
		} else {
			summary := results.Summary
			project.SummaryContent = &summary
		}
	}

	if len(results.Quiz) > 0 && wantQuiz {
		quiz := &types.Quiz{
			ID:            uuid.New(),
			UserID:        userID,
			Title:         input.Name,
			Description:   fmt.Sprintf("Quiz for %s", input.Name),
			Questions:     datatypes.JSON(results.Quiz),
			QuestionCount: questionCount,
			Difficulty:    difficulty,
		}
		if _, err := ps.quizRepo.Create(ctx, nil, quiz); err != nil {
			ps.log.Warn("Failed to save quiz", "project_id", project.ID, "error", err)
			warnings = append(warnings, "failed to save quiz")
		} else if err := ps.projectRepo.AttachQuiz(ctx, nil, project.ID, quiz.ID, questionCount, difficulty); err != nil {
			ps.log.Warn("Failed to link quiz to project", "project_id", project.ID, "quiz_id", quiz.ID, "error", err)
			warnings = append(warnings, "failed to link quiz to project")
		} else {
			quizID := quiz.ID
			project.QuizID = &quizID
		}
	}

	if len(results.Flashcards) > 0 && containsAction(input.Actions, ActionFlashcards) {
		if err := ps.projectRepo.AttachFlashcards(ctx, nil, project.ID, datatypes.JSON(results.Flashcards)); err != nil {
			ps.log.Warn("Failed to save flashcards", "project_id", project.ID, "error", err)
			warnings = append(warnings, "failed to save flashcards")
		} else {
			project.FlashcardsContent = datatypes.JSON(results.Flashcards)
		}
	}

	return &GenerateOutput{Project: project, Warnings: warnings}, nil
}

func (ps *projectService) Get(ctx context.Context, userID, projectID uuid.UUID) (*types.Project, error) {
	project, err := ps.projectRepo.GetByID(ctx, nil, projectID)
	if err != nil {
		return nil, apierr.NotFound("project not found")
	}
	if project.UserID != userID {
		return nil, apierr.NotFound("project not found")
	}
	return project, nil
}

func (ps *projectService) Materials(ctx context.Context, userID, projectID uuid.UUID) ([]*types.Material, error) {
	project, err := ps.Get(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}
	var ids []uuid.UUID
	if len(project.MaterialIDs) > 0 {
		if err := json.Unmarshal(project.MaterialIDs, &ids); err != nil {
			return nil, apierr.Parse("failed to parse project material ids: %v", err)
		}
	}
	if len(ids) == 0 {
		return []*types.Material{}, nil
	}
	materials, err := ps.materialRepo.GetByIDs(ctx, nil, ids)
	if err != nil {
		return nil, fmt.Errorf("Failed to load project materials: %w", err)
	}
	// Rows that changed hands or were deleted since generation drop out.
	owned := make([]*types.Material, 0, len(materials))
	for _, m := range materials {
		if m.UserID == userID {
			owned = append(owned, m)
		}
	}
	return owned, nil
}

func (ps *projectService) List(ctx context.Context, userID uuid.UUID, subject string) ([]*types.Project, error) {
	projects, err := ps.projectRepo.ListByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("Failed to list projects: %w", err)
	}
	if subject == "" {
		return projects, nil
	}
	filtered := make([]*types.Project, 0, len(projects))
	for _, p := range projects {
		if p.Subject == subject {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

func (ps *projectService) Delete(ctx context.Context, userID, projectID uuid.UUID) error {
	project, err := ps.Get(ctx, userID, projectID)
	if err != nil {
		return err
	}
	if err := ps.projectRepo.Delete(ctx, nil, projectID); err != nil {
		return fmt.Errorf("Failed to delete project: %w", err)
	}
	if project.QuizID != nil {
		if err := ps.quizRepo.Delete(ctx, nil, *project.QuizID); err != nil {
			ps.log.Warn("Failed to delete linked quiz (ignored)", "quiz_id", *project.QuizID, "error", err)
		}
	}
	return nil
}

func (ps *projectService) Summary(ctx context.Context, userID, projectID uuid.UUID) (*SummaryView, error) {
	project, err := ps.Get(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}
	if project.SummaryContent == nil || *project.SummaryContent == "" {
		return nil, apierr.NotFound("summary not available for this project")
	}
	raw := *project.SummaryContent
	return &SummaryView{
		Raw:       raw,
		HTML:      content.FormatSummaryText(raw),
		WordCount: content.WordCount(raw),
	}, nil
}

func (ps *projectService) FlashcardDeck(ctx context.Context, userID, projectID uuid.UUID) ([]content.Flashcard, error) {
	project, err := ps.Get(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}
	if len(project.FlashcardsContent) == 0 {
		return nil, apierr.NotFound("flashcards not available for this project")
	}
	cards, err := content.DecodeFlashcards(json.RawMessage(project.FlashcardsContent))
	if err != nil {
		return nil, apierr.Parse("failed to parse flashcards: %v", err)
	}
	if len(cards) == 0 {
		return nil, apierr.NotFound("flashcards not available for this project")
	}
	return cards, nil
}

func (ps *projectService) QuizQuestions(ctx context.Context, userID, projectID uuid.UUID) (*types.Quiz, []content.QuizQuestion, error) {
	project, err := ps.Get(ctx, userID, projectID)
	if err != nil {
		return nil, nil, err
	}
	if project.QuizID == nil {
		return nil, nil, apierr.NotFound("quiz not found for this project")
	}
	quiz, err := ps.quizRepo.GetByID(ctx, nil, *project.QuizID)
	if err != nil {
		return nil, nil, apierr.NotFound("quiz not found for this project")
	}
	questions, err := content.DecodeQuizQuestions(json.RawMessage(quiz.Questions))
	if err != nil {
		return nil, nil, apierr.Parse("failed to parse quiz questions: %v", err)
	}
	if len(questions) == 0 {
		return nil, nil, apierr.Parse("quiz has no questions")
	}
	return quiz, questions, nil
}
