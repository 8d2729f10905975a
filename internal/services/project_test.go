package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/kanishka132/StudyBuddy-AI/internal/apierr"
	"github.com/kanishka132/StudyBuddy-AI/internal/types"
)

type fakeGenerationClient struct {
	results *GenerationResults
	err     error
	lastReq GenerationRequest
	calls   int
}

func (f *fakeGenerationClient) Generate(ctx context.Context, req GenerationRequest) (*GenerationResults, error) {
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

type fakeMaterialRepo struct {
	materials map[uuid.UUID]*types.Material
}

func newFakeMaterialRepo() *fakeMaterialRepo {
	return &fakeMaterialRepo{materials: map[uuid.UUID]*types.Material{}}
}

func (f *fakeMaterialRepo) Create(ctx context.Context, tx *gorm.DB, material *types.Material) (*types.Material, error) {
	if material.ID == uuid.Nil {
		material.ID = uuid.New()
	}
	f.materials[material.ID] = material
	return material, nil
}

func (f *fakeMaterialRepo) GetByID(ctx context.Context, tx *gorm.DB, materialID uuid.UUID) (*types.Material, error) {
	m, ok := f.materials[materialID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}

func (f *fakeMaterialRepo) GetByIDs(ctx context.Context, tx *gorm.DB, materialIDs []uuid.UUID) ([]*types.Material, error) {
	out := make([]*types.Material, 0, len(materialIDs))
	for _, id := range materialIDs {
		if m, ok := f.materials[id]; ok {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMaterialRepo) ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Material, error) {
	var out []*types.Material
	for _, m := range f.materials {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMaterialRepo) UpdateName(ctx context.Context, tx *gorm.DB, materialID uuid.UUID, name string) error {
	m, ok := f.materials[materialID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	m.Name = name
	return nil
}

func (f *fakeMaterialRepo) UpdateSubject(ctx context.Context, tx *gorm.DB, materialID uuid.UUID, subject string) error {
	m, ok := f.materials[materialID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	m.Subject = subject
	return nil
}

func (f *fakeMaterialRepo) Delete(ctx context.Context, tx *gorm.DB, materialID uuid.UUID) error {
	delete(f.materials, materialID)
	return nil
}

type fakeProjectRepo struct {
	projects map[uuid.UUID]*types.Project
	order    []uuid.UUID
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: map[uuid.UUID]*types.Project{}}
}

func (f *fakeProjectRepo) Create(ctx context.Context, tx *gorm.DB, project *types.Project) (*types.Project, error) {
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}
	stored := *project
	f.projects[project.ID] = &stored
	f.order = append(f.order, project.ID)
	return project, nil
}

func (f *fakeProjectRepo) GetByID(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) (*types.Project, error) {
	p, ok := f.projects[projectID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *p
	return &copied, nil
}

func (f *fakeProjectRepo) ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Project, error) {
	var out []*types.Project
	for _, id := range f.order {
		p, ok := f.projects[id]
		if ok && p.UserID == userID {
			copied := *p
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeProjectRepo) AttachQuiz(ctx context.Context, tx *gorm.DB, projectID, quizID uuid.UUID, questionCount int, difficulty string) error {
	p, ok := f.projects[projectID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.QuizID = &quizID
	p.QuizQuestionCount = &questionCount
	p.QuizDifficulty = &difficulty
	return nil
}

func (f *fakeProjectRepo) AttachSummary(ctx context.Context, tx *gorm.DB, projectID uuid.UUID, content string) error {
	p, ok := f.projects[projectID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.SummaryContent = &content
	return nil
}

func (f *fakeProjectRepo) AttachFlashcards(ctx context.Context, tx *gorm.DB, projectID uuid.UUID, content datatypes.JSON) error {
	p, ok := f.projects[projectID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.FlashcardsContent = content
	return nil
}

func (f *fakeProjectRepo) Delete(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) error {
	delete(f.projects, projectID)
	return nil
}

type fakeQuizRepo struct {
	quizzes   map[uuid.UUID]*types.Quiz
	createErr error
}

func newFakeQuizRepo() *fakeQuizRepo {
	return &fakeQuizRepo{quizzes: map[uuid.UUID]*types.Quiz{}}
}

func (f *fakeQuizRepo) Create(ctx context.Context, tx *gorm.DB, quiz *types.Quiz) (*types.Quiz, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if quiz.ID == uuid.Nil {
		quiz.ID = uuid.New()
	}
	f.quizzes[quiz.ID] = quiz
	return quiz, nil
}

func (f *fakeQuizRepo) GetByID(ctx context.Context, tx *gorm.DB, quizID uuid.UUID) (*types.Quiz, error) {
	q, ok := f.quizzes[quizID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return q, nil
}

func (f *fakeQuizRepo) Delete(ctx context.Context, tx *gorm.DB, quizID uuid.UUID) error {
	delete(f.quizzes, quizID)
	return nil
}

type projectTestEnv struct {
	materialRepo *fakeMaterialRepo
	projectRepo  *fakeProjectRepo
	quizRepo     *fakeQuizRepo
	client       *fakeGenerationClient
	service      ProjectService
	userID       uuid.UUID
}

func newProjectTestEnv(t *testing.T, client *fakeGenerationClient) *projectTestEnv {
	t.Helper()
	materialRepo := newFakeMaterialRepo()
	projectRepo := newFakeProjectRepo()
	quizRepo := newFakeQuizRepo()
	return &projectTestEnv{
		materialRepo: materialRepo,
		projectRepo:  projectRepo,
		quizRepo:     quizRepo,
		client:       client,
		service:      NewProjectService(nil, testLogger(t), projectRepo, quizRepo, materialRepo, client),
		userID:       uuid.New(),
	}
}

func (env *projectTestEnv) addMaterial(t *testing.T, name, filePath string) *types.Material {
	t.Helper()
	material, err := env.materialRepo.Create(context.Background(), nil, &types.Material{
		UserID:   env.userID,
		Name:     name,
		MimeType: "application/pdf",
		Subject:  "math",
		FilePath: filePath,
	})
	if err != nil {
		t.Fatalf("create material: %v", err)
	}
	return material
}

func notFoundStatus(t *testing.T, err error) {
	t.Helper()
	status, _ := apierr.StatusOf(err)
	if status != 404 {
		t.Fatalf("expected 404, got %d (%v)", status, err)
	}
}

func TestProjectGenerate_CreatesProjectWithAllArtifacts(t *testing.T) {
	quizJSON := `[{"question":"Q?","options":["a","b"],"correct_answer":0}]`
	cardsJSON := `[{"front":"F","back":"B"}]`
	client := &fakeGenerationClient{results: &GenerationResults{
		Summary:    "# Heading\n\nBody.",
		Quiz:       json.RawMessage(quizJSON),
		Flashcards: json.RawMessage(cardsJSON),
	}}
	env := newProjectTestEnv(t, client)
	material := env.addMaterial(t, "notes.pdf", "materials/x/y/notes.pdf")

	out, err := env.service.Generate(context.Background(), env.userID, GenerateInput{
		Name:        "Algebra Review",
		Subject:     "math",
		MaterialIDs: []uuid.UUID{material.ID},
		Actions:     []string{ActionSummary, ActionQuiz, ActionFlashcards},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(out.Warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", out.Warnings)
	}
	if client.calls != 1 {
		t.Fatalf("expected one backend call, got %d", client.calls)
	}
	if len(client.lastReq.FilePaths) != 1 || client.lastReq.FilePaths[0] != material.FilePath {
		t.Fatalf("unexpected file paths: %v", client.lastReq.FilePaths)
	}

	stored, err := env.service.Get(context.Background(), env.userID, out.Project.ID)
	if err != nil {
		t.Fatalf("get project: %v", err)
	}
	if stored.SummaryContent == nil || *stored.SummaryContent != "# Heading\n\nBody." {
		t.Fatalf("summary not attached: %+v", stored.SummaryContent)
	}
	if stored.QuizID == nil {
		t.Fatalf("quiz not linked")
	}
	if len(stored.FlashcardsContent) == 0 {
		t.Fatalf("flashcards not attached")
	}

	quiz, questions, err := env.service.QuizQuestions(context.Background(), env.userID, out.Project.ID)
	if err != nil {
		t.Fatalf("quiz questions: %v", err)
	}
	if quiz.Title != "Algebra Review" || quiz.Description != "Quiz for Algebra Review" {
		t.Fatalf("unexpected quiz metadata: title=%q description=%q", quiz.Title, quiz.Description)
	}
	if len(questions) != 1 || questions[0].CorrectAnswer != 0 {
		t.Fatalf("unexpected questions: %+v", questions)
	}
}

func TestProjectGenerate_ClientFailureLeavesNoProject(t *testing.T) {
	client := &fakeGenerationClient{err: errors.New("backend down")}
	env := newProjectTestEnv(t, client)
	material := env.addMaterial(t, "notes.pdf", "materials/x/y/notes.pdf")

	_, err := env.service.Generate(context.Background(), env.userID, GenerateInput{
		Name:        "Doomed",
		MaterialIDs: []uuid.UUID{material.ID},
		Actions:     []string{ActionSummary},
	})
	if err == nil {
		t.Fatalf("expected error")
	}
	if len(env.projectRepo.projects) != 0 {
		t.Fatalf("expected no project rows, got %d", len(env.projectRepo.projects))
	}
}

func TestProjectGenerate_QuizSaveFailureBecomesWarning(t *testing.T) {
	client := &fakeGenerationClient{results: &GenerationResults{
		Quiz: json.RawMessage(`[{"question":"Q?","options":["a"],"correct_answer":0}]`),
	}}
	env := newProjectTestEnv(t, client)
	env.quizRepo.createErr = errors.New("quiz insert failed")
	material := env.addMaterial(t, "notes.pdf", "materials/x/y/notes.pdf")

	out, err := env.service.Generate(context.Background(), env.userID, GenerateInput{
		Name:        "Partial",
		MaterialIDs: []uuid.UUID{material.ID},
		Actions:     []string{ActionQuiz},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(out.Warnings) != 1 || out.Warnings[0] != "failed to save quiz" {
		t.Fatalf("expected quiz warning, got %v", out.Warnings)
	}
	if out.Project.QuizID != nil {
		t.Fatalf("expected no quiz link")
	}
	if _, err := env.service.Get(context.Background(), env.userID, out.Project.ID); err != nil {
		t.Fatalf("project should still exist: %v", err)
	}
}

func TestProjectGenerate_ValidatesInput(t *testing.T) {
	client := &fakeGenerationClient{results: &GenerationResults{Summary: "s"}}
	env := newProjectTestEnv(t, client)
	material := env.addMaterial(t, "notes.pdf", "materials/x/y/notes.pdf")

	cases := []struct {
		name  string
		input GenerateInput
	}{
		{"empty name", GenerateInput{MaterialIDs: []uuid.UUID{material.ID}, Actions: []string{ActionSummary}}},
		{"no materials", GenerateInput{Name: "P", Actions: []string{ActionSummary}}},
		{"no actions", GenerateInput{Name: "P", MaterialIDs: []uuid.UUID{material.ID}}},
		{"bad action", GenerateInput{Name: "P", MaterialIDs: []uuid.UUID{material.ID}, Actions: []string{"podcast"}}},
	}
	for _, tc := range cases {
		if _, err := env.service.Generate(context.Background(), env.userID, tc.input); err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
	}
	if client.calls != 0 {
		t.Fatalf("expected no backend calls, got %d", client.calls)
	}
}

func TestProjectGenerate_RejectsOtherUsersMaterials(t *testing.T) {
	client := &fakeGenerationClient{results: &GenerationResults{Summary: "s"}}
	env := newProjectTestEnv(t, client)
	material := env.addMaterial(t, "notes.pdf", "materials/x/y/notes.pdf")

	otherUser := uuid.New()
	_, err := env.service.Generate(context.Background(), otherUser, GenerateInput{
		Name:        "P",
		MaterialIDs: []uuid.UUID{material.ID},
		Actions:     []string{ActionSummary},
	})
	notFoundStatus(t, err)
}

func TestProjectGenerate_SkipsMaterialsWithoutStoredFiles(t *testing.T) {
	client := &fakeGenerationClient{results: &GenerationResults{Summary: "s"}}
	env := newProjectTestEnv(t, client)
	withFile := env.addMaterial(t, "good.pdf", "materials/x/y/good.pdf")
	withoutFile := env.addMaterial(t, "bad.pdf", "")

	_, err := env.service.Generate(context.Background(), env.userID, GenerateInput{
		Name:        "P",
		MaterialIDs: []uuid.UUID{withFile.ID, withoutFile.ID},
		Actions:     []string{ActionSummary},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(client.lastReq.FilePaths) != 1 || client.lastReq.FilePaths[0] != withFile.FilePath {
		t.Fatalf("expected only stored file paths, got %v", client.lastReq.FilePaths)
	}

	_, err = env.service.Generate(context.Background(), env.userID, GenerateInput{
		Name:        "P2",
		MaterialIDs: []uuid.UUID{withoutFile.ID},
		Actions:     []string{ActionSummary},
	})
	if err == nil {
		t.Fatalf("expected error when no material has a stored file")
	}
}

func TestProjectGenerate_QuizSettingsOnlyWithQuizAction(t *testing.T) {
	client := &fakeGenerationClient{results: &GenerationResults{Summary: "s"}}
	env := newProjectTestEnv(t, client)
	material := env.addMaterial(t, "notes.pdf", "materials/x/y/notes.pdf")

	out, err := env.service.Generate(context.Background(), env.userID, GenerateInput{
		Name:          "Summary Only",
		MaterialIDs:   []uuid.UUID{material.ID},
		Actions:       []string{ActionSummary},
		QuestionCount: 15,
		Difficulty:    "hard",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if client.lastReq.QuestionCount != DefaultQuestionCount || client.lastReq.Difficulty != DefaultDifficulty {
		t.Fatalf("expected defaults without quiz action, got count=%d difficulty=%q",
			client.lastReq.QuestionCount, client.lastReq.Difficulty)
	}
	if out.Project.QuizQuestionCount != nil || out.Project.QuizDifficulty != nil {
		t.Fatalf("expected no quiz settings on project")
	}
}

func TestProjectSummary_NotAvailable(t *testing.T) {
	client := &fakeGenerationClient{results: &GenerationResults{
		Flashcards: json.RawMessage(`[{"front":"F","back":"B"}]`),
	}}
	env := newProjectTestEnv(t, client)
	material := env.addMaterial(t, "notes.pdf", "materials/x/y/notes.pdf")

	out, err := env.service.Generate(context.Background(), env.userID, GenerateInput{
		Name:        "Cards Only",
		MaterialIDs: []uuid.UUID{material.ID},
		Actions:     []string{ActionFlashcards},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	_, err = env.service.Summary(context.Background(), env.userID, out.Project.ID)
	notFoundStatus(t, err)

	cards, err := env.service.FlashcardDeck(context.Background(), env.userID, out.Project.ID)
	if err != nil {
		t.Fatalf("flashcard deck: %v", err)
	}
	if len(cards) != 1 || cards[0].Front != "F" {
		t.Fatalf("unexpected cards: %+v", cards)
	}
}

func TestProjectSummary_RendersHTML(t *testing.T) {
	client := &fakeGenerationClient{results: &GenerationResults{
		Summary: "# Title\n\nOne two three.",
	}}
	env := newProjectTestEnv(t, client)
	material := env.addMaterial(t, "notes.pdf", "materials/x/y/notes.pdf")

	out, err := env.service.Generate(context.Background(), env.userID, GenerateInput{
		Name:        "P",
		MaterialIDs: []uuid.UUID{material.ID},
		Actions:     []string{ActionSummary},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	view, err := env.service.Summary(context.Background(), env.userID, out.Project.ID)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if view.HTML != "<h1>Title</h1><p>One two three.</p>" {
		t.Fatalf("unexpected html: %q", view.HTML)
	}
	if view.WordCount != 5 {
		t.Fatalf("expected 5 words, got %d", view.WordCount)
	}
}

func TestProjectDelete_RemovesProjectAndQuiz(t *testing.T) {
	client := &fakeGenerationClient{results: &GenerationResults{
		Quiz: json.RawMessage(`[{"question":"Q?","options":["a"],"correct_answer":0}]`),
	}}
	env := newProjectTestEnv(t, client)
	material := env.addMaterial(t, "notes.pdf", "materials/x/y/notes.pdf")

	out, err := env.service.Generate(context.Background(), env.userID, GenerateInput{
		Name:        "Quiz Project",
		MaterialIDs: []uuid.UUID{material.ID},
		Actions:     []string{ActionQuiz},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if out.Project.QuizID == nil {
		t.Fatalf("expected quiz link")
	}

	if err := env.service.Delete(context.Background(), env.userID, out.Project.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	_, err = env.service.Get(context.Background(), env.userID, out.Project.ID)
	notFoundStatus(t, err)
	if len(env.quizRepo.quizzes) != 0 {
		t.Fatalf("expected linked quiz removed")
	}
}

func TestProjectMaterials_ResolvesOwnedRows(t *testing.T) {
	client := &fakeGenerationClient{results: &GenerationResults{Summary: "s"}}
	env := newProjectTestEnv(t, client)
	first := env.addMaterial(t, "a.pdf", "materials/x/y/a.pdf")
	second := env.addMaterial(t, "b.pdf", "materials/x/y/b.pdf")

	out, err := env.service.Generate(context.Background(), env.userID, GenerateInput{
		Name:        "Two Sources",
		MaterialIDs: []uuid.UUID{first.ID, second.ID},
		Actions:     []string{ActionSummary},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	materials, err := env.service.Materials(context.Background(), env.userID, out.Project.ID)
	if err != nil {
		t.Fatalf("materials: %v", err)
	}
	if len(materials) != 2 || materials[0].Name != "a.pdf" || materials[1].Name != "b.pdf" {
		t.Fatalf("unexpected materials: %+v", materials)
	}

	_, err = env.service.Materials(context.Background(), uuid.New(), out.Project.ID)
	notFoundStatus(t, err)
}

func TestProjectMaterials_DropsDeletedAndForeignRows(t *testing.T) {
	client := &fakeGenerationClient{results: &GenerationResults{Summary: "s"}}
	env := newProjectTestEnv(t, client)
	kept := env.addMaterial(t, "kept.pdf", "materials/x/y/kept.pdf")
	removed := env.addMaterial(t, "removed.pdf", "materials/x/y/removed.pdf")

	out, err := env.service.Generate(context.Background(), env.userID, GenerateInput{
		Name:        "Shrinking",
		MaterialIDs: []uuid.UUID{kept.ID, removed.ID},
		Actions:     []string{ActionSummary},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	// The project keeps the id, but the row itself is gone.
	delete(env.materialRepo.materials, removed.ID)

	materials, err := env.service.Materials(context.Background(), env.userID, out.Project.ID)
	if err != nil {
		t.Fatalf("materials: %v", err)
	}
	if len(materials) != 1 || materials[0].ID != kept.ID {
		t.Fatalf("expected only the surviving material, got %+v", materials)
	}

	env.materialRepo.materials[kept.ID].UserID = uuid.New()
	materials, err = env.service.Materials(context.Background(), env.userID, out.Project.ID)
	if err != nil {
		t.Fatalf("materials: %v", err)
	}
	if len(materials) != 0 {
		t.Fatalf("expected foreign rows filtered out, got %+v", materials)
	}
}

func TestProjectList_FiltersBySubject(t *testing.T) {
	client := &fakeGenerationClient{results: &GenerationResults{Summary: "s"}}
	env := newProjectTestEnv(t, client)
	material := env.addMaterial(t, "notes.pdf", "materials/x/y/notes.pdf")

	for _, subject := range []string{"math", "science", "math"} {
		if _, err := env.service.Generate(context.Background(), env.userID, GenerateInput{
			Name:        "P " + subject,
			Subject:     subject,
			MaterialIDs: []uuid.UUID{material.ID},
			Actions:     []string{ActionSummary},
		}); err != nil {
			t.Fatalf("generate: %v", err)
		}
	}

	mathOnly, err := env.service.List(context.Background(), env.userID, "math")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(mathOnly) != 2 {
		t.Fatalf("expected 2 math projects, got %d", len(mathOnly))
	}
	all, err := env.service.List(context.Background(), env.userID, "")
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 projects, got %d", len(all))
	}
}
