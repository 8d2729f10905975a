package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kanishka132/StudyBuddy-AI/internal/types"
)

type fakeCalendarEventRepo struct {
	events map[uuid.UUID]*types.CalendarEvent
}

func newFakeCalendarEventRepo() *fakeCalendarEventRepo {
	return &fakeCalendarEventRepo{events: map[uuid.UUID]*types.CalendarEvent{}}
}

func (f *fakeCalendarEventRepo) Create(ctx context.Context, tx *gorm.DB, event *types.CalendarEvent) (*types.CalendarEvent, error) {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	f.events[event.ID] = event
	return event, nil
}

func (f *fakeCalendarEventRepo) GetByID(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) (*types.CalendarEvent, error) {
	e, ok := f.events[eventID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return e, nil
}

func (f *fakeCalendarEventRepo) ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.CalendarEvent, error) {
	var out []*types.CalendarEvent
	for _, e := range f.events {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeCalendarEventRepo) ListByUserAndDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, eventDate string) ([]*types.CalendarEvent, error) {
	var out []*types.CalendarEvent
	for _, e := range f.events {
		if e.UserID == userID && e.EventDate == eventDate {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeCalendarEventRepo) Update(ctx context.Context, tx *gorm.DB, event *types.CalendarEvent) error {
	if _, ok := f.events[event.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.events[event.ID] = event
	return nil
}

func (f *fakeCalendarEventRepo) Delete(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) error {
	delete(f.events, eventID)
	return nil
}

type fakeTodoRepo struct {
	todos map[uuid.UUID]*types.Todo
}

func newFakeTodoRepo() *fakeTodoRepo {
	return &fakeTodoRepo{todos: map[uuid.UUID]*types.Todo{}}
}

func (f *fakeTodoRepo) Create(ctx context.Context, tx *gorm.DB, todo *types.Todo) (*types.Todo, error) {
	if todo.ID == uuid.Nil {
		todo.ID = uuid.New()
	}
	f.todos[todo.ID] = todo
	return todo, nil
}

func (f *fakeTodoRepo) GetByID(ctx context.Context, tx *gorm.DB, todoID uuid.UUID) (*types.Todo, error) {
	td, ok := f.todos[todoID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return td, nil
}

func (f *fakeTodoRepo) ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Todo, error) {
	var out []*types.Todo
	for _, td := range f.todos {
		if td.UserID == userID {
			out = append(out, td)
		}
	}
	return out, nil
}

func (f *fakeTodoRepo) Update(ctx context.Context, tx *gorm.DB, todoID uuid.UUID, task, priority string) error {
	td, ok := f.todos[todoID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	td.Task = task
	td.Priority = priority
	return nil
}

func (f *fakeTodoRepo) SetCompleted(ctx context.Context, tx *gorm.DB, todoID uuid.UUID, completed bool) error {
	td, ok := f.todos[todoID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	td.Completed = completed
	return nil
}

func (f *fakeTodoRepo) Delete(ctx context.Context, tx *gorm.DB, todoID uuid.UUID) error {
	delete(f.todos, todoID)
	return nil
}

type plannerTestEnv struct {
	eventRepo *fakeCalendarEventRepo
	todoRepo  *fakeTodoRepo
	service   PlannerService
	userID    uuid.UUID
}

func newPlannerTestEnv(t *testing.T) *plannerTestEnv {
	t.Helper()
	eventRepo := newFakeCalendarEventRepo()
	todoRepo := newFakeTodoRepo()
	return &plannerTestEnv{
		eventRepo: eventRepo,
		todoRepo:  todoRepo,
		service:   NewPlannerService(nil, testLogger(t), eventRepo, todoRepo),
		userID:    uuid.New(),
	}
}

func TestPlannerCreateEvent_DefaultsDuration(t *testing.T) {
	env := newPlannerTestEnv(t)
	event, err := env.service.CreateEvent(context.Background(), env.userID, EventInput{
		Title:     "Study session",
		EventDate: "2026-09-01",
		EventTime: "14:30",
	})
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	if event.DurationMinutes != 60 {
		t.Fatalf("expected default duration 60, got %d", event.DurationMinutes)
	}
}

func TestPlannerCreateEvent_Validation(t *testing.T) {
	env := newPlannerTestEnv(t)
	cases := []struct {
		name  string
		input EventInput
	}{
		{"missing title", EventInput{EventDate: "2026-09-01"}},
		{"blank title", EventInput{Title: "   ", EventDate: "2026-09-01"}},
		{"bad date", EventInput{Title: "T", EventDate: "09/01/2026"}},
		{"bad time", EventInput{Title: "T", EventDate: "2026-09-01", EventTime: "2pm"}},
		{"negative duration", EventInput{Title: "T", EventDate: "2026-09-01", DurationMinutes: -5}},
	}
	for _, tc := range cases {
		if _, err := env.service.CreateEvent(context.Background(), env.userID, tc.input); err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
	}
}

func TestPlannerUpdateEvent_OwnershipCheck(t *testing.T) {
	env := newPlannerTestEnv(t)
	event, err := env.service.CreateEvent(context.Background(), env.userID, EventInput{
		Title:     "Mine",
		EventDate: "2026-09-01",
	})
	if err != nil {
		t.Fatalf("create event: %v", err)
	}

	otherUser := uuid.New()
	_, err = env.service.UpdateEvent(context.Background(), otherUser, event.ID, EventInput{
		Title:     "Stolen",
		EventDate: "2026-09-01",
	})
	notFoundStatus(t, err)

	updated, err := env.service.UpdateEvent(context.Background(), env.userID, event.ID, EventInput{
		Title:     "Renamed",
		EventDate: "2026-09-02",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "Renamed" || updated.EventDate != "2026-09-02" {
		t.Fatalf("unexpected event: %+v", updated)
	}
}

func TestPlannerTodo_PriorityDefaultsAndValidation(t *testing.T) {
	env := newPlannerTestEnv(t)
	todo, err := env.service.CreateTodo(context.Background(), env.userID, TodoInput{Task: "Review notes"})
	if err != nil {
		t.Fatalf("create todo: %v", err)
	}
	if todo.Priority != types.PriorityMedium {
		t.Fatalf("expected medium default, got %q", todo.Priority)
	}

	if _, err := env.service.CreateTodo(context.Background(), env.userID, TodoInput{Task: ""}); err == nil {
		t.Fatalf("expected error for empty task")
	}
	if _, err := env.service.CreateTodo(context.Background(), env.userID, TodoInput{Task: "T", Priority: "urgent"}); err == nil {
		t.Fatalf("expected error for unknown priority")
	}
}

func TestPlannerTodo_CompleteAndDelete(t *testing.T) {
	env := newPlannerTestEnv(t)
	todo, err := env.service.CreateTodo(context.Background(), env.userID, TodoInput{Task: "Finish quiz", Priority: types.PriorityHigh})
	if err != nil {
		t.Fatalf("create todo: %v", err)
	}

	if err := env.service.SetTodoCompleted(context.Background(), env.userID, todo.ID, true); err != nil {
		t.Fatalf("set completed: %v", err)
	}
	if !env.todoRepo.todos[todo.ID].Completed {
		t.Fatalf("expected completed")
	}

	err = env.service.SetTodoCompleted(context.Background(), uuid.New(), todo.ID, false)
	notFoundStatus(t, err)

	if err := env.service.DeleteTodo(context.Background(), env.userID, todo.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(env.todoRepo.todos) != 0 {
		t.Fatalf("expected todo removed")
	}
}

func TestPlannerOverview_LoadsDayEventsAndTodos(t *testing.T) {
	env := newPlannerTestEnv(t)
	if _, err := env.service.CreateEvent(context.Background(), env.userID, EventInput{
		Title:     "On the day",
		EventDate: "2026-09-01",
	}); err != nil {
		t.Fatalf("create event: %v", err)
	}
	if _, err := env.service.CreateEvent(context.Background(), env.userID, EventInput{
		Title:     "Other day",
		EventDate: "2026-09-02",
	}); err != nil {
		t.Fatalf("create event: %v", err)
	}
	if _, err := env.service.CreateTodo(context.Background(), env.userID, TodoInput{Task: "Anything"}); err != nil {
		t.Fatalf("create todo: %v", err)
	}

	overview, err := env.service.Overview(context.Background(), env.userID, "2026-09-01")
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if overview.Date != "2026-09-01" {
		t.Fatalf("unexpected date %q", overview.Date)
	}
	if len(overview.Events) != 1 || overview.Events[0].Title != "On the day" {
		t.Fatalf("unexpected events: %+v", overview.Events)
	}
	if len(overview.Todos) != 1 {
		t.Fatalf("expected 1 todo, got %d", len(overview.Todos))
	}
}

func TestPlannerOverview_RejectsBadDate(t *testing.T) {
	env := newPlannerTestEnv(t)
	if _, err := env.service.Overview(context.Background(), env.userID, "September 1st"); err == nil {
		t.Fatalf("expected validation error")
	}
}
