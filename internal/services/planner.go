package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/kanishka132/StudyBuddy-AI/internal/apierr"
	"github.com/kanishka132/StudyBuddy-AI/internal/logger"
	"github.com/kanishka132/StudyBuddy-AI/internal/repos"
	"github.com/kanishka132/StudyBuddy-AI/internal/types"
)

const eventDateLayout = "2006-01-02"

// EventInput is a calendar event create or update.
type EventInput struct {
	Title           string
	Description     string
	EventDate       string
	EventTime       string
	DurationMinutes int
}

// TodoInput is a todo create or update.
type TodoInput struct {
	Task     string
	Priority string
}

// PlannerOverview is the planner landing view: the day's events next to
// the full todo list.
type PlannerOverview struct {
	Date   string                 `json:"date"`
	Events []*types.CalendarEvent `json:"events"`
	Todos  []*types.Todo          `json:"todos"`
}

type PlannerService interface {
	CreateEvent(ctx context.Context, userID uuid.UUID, input EventInput) (*types.CalendarEvent, error)
	UpdateEvent(ctx context.Context, userID, eventID uuid.UUID, input EventInput) (*types.CalendarEvent, error)
	ListEvents(ctx context.Context, userID uuid.UUID) ([]*types.CalendarEvent, error)
	EventsForDate(ctx context.Context, userID uuid.UUID, date string) ([]*types.CalendarEvent, error)
	DeleteEvent(ctx context.Context, userID, eventID uuid.UUID) error

	CreateTodo(ctx context.Context, userID uuid.UUID, input TodoInput) (*types.Todo, error)
	UpdateTodo(ctx context.Context, userID, todoID uuid.UUID, input TodoInput) (*types.Todo, error)
	SetTodoCompleted(ctx context.Context, userID, todoID uuid.UUID, completed bool) error
	ListTodos(ctx context.Context, userID uuid.UUID) ([]*types.Todo, error)
	DeleteTodo(ctx context.Context, userID, todoID uuid.UUID) error

	Overview(ctx context.Context, userID uuid.UUID, date string) (*PlannerOverview, error)
}

type plannerService struct {
	db                *gorm.DB
	log               *logger.Logger
	calendarEventRepo repos.CalendarEventRepo
	todoRepo          repos.TodoRepo
}

func NewPlannerService(
	db *gorm.DB,
	log *logger.Logger,
	calendarEventRepo repos.CalendarEventRepo,
	todoRepo repos.TodoRepo,
) PlannerService {
	serviceLog := log.With("service", "PlannerService")
	return &plannerService{
		db:                db,
		log:               serviceLog,
		calendarEventRepo: calendarEventRepo,
		todoRepo:          todoRepo,
	}
}

func validateEventInput(input *EventInput) error {
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return apierr.Validation("event title is required")
	}
	if _, err := time.Parse(eventDateLayout, input.EventDate); err != nil {
		return apierr.Validation("event date must be YYYY-MM-DD")
	}
	if input.EventTime != "" {
		if _, err := time.Parse("15:04", input.EventTime); err != nil {
			return apierr.Validation("event time must be HH:MM")
		}
	}
	if input.DurationMinutes < 0 {
		return apierr.Validation("event duration cannot be negative")
	}
	if input.DurationMinutes == 0 {
		input.DurationMinutes = 60
	}
	return nil
}

func (ps *plannerService) CreateEvent(ctx context.Context, userID uuid.UUID, input EventInput) (*types.CalendarEvent, error) {
	if err := validateEventInput(&input); err != nil {
		return nil, err
	}
	event := &types.CalendarEvent{
		ID:              uuid.New(),
		UserID:          userID,
		Title:           input.Title,
		Description:     input.Description,
		EventDate:       input.EventDate,
		EventTime:       input.EventTime,
		DurationMinutes: input.DurationMinutes,
	}
	created, err := ps.calendarEventRepo.Create(ctx, nil, event)
	if err != nil {
		return nil, fmt.Errorf("Failed to create calendar event: %w", err)
	}
	return created, nil
}

func (ps *plannerService) UpdateEvent(ctx context.Context, userID, eventID uuid.UUID, input EventInput) (*types.CalendarEvent, error) {
	if err := validateEventInput(&input); err != nil {
		return nil, err
	}
	event, err := ps.getEvent(ctx, userID, eventID)
	if err != nil {
		return nil, err
	}
	event.Title = input.Title
	event.Description = input.Description
	event.EventDate = input.EventDate
	event.EventTime = input.EventTime
	event.DurationMinutes = input.DurationMinutes
	if err := ps.calendarEventRepo.Update(ctx, nil, event); err != nil {
		return nil, fmt.Errorf("Failed to update calendar event: %w", err)
	}
	return event, nil
}

func (ps *plannerService) ListEvents(ctx context.Context, userID uuid.UUID) ([]*types.CalendarEvent, error) {
	return ps.calendarEventRepo.ListByUserID(ctx, nil, userID)
}

func (ps *plannerService) EventsForDate(ctx context.Context, userID uuid.UUID, date string) ([]*types.CalendarEvent, error) {
	if _, err := time.Parse(eventDateLayout, date); err != nil {
		return nil, apierr.Validation("date must be YYYY-MM-DD")
	}
	return ps.calendarEventRepo.ListByUserAndDate(ctx, nil, userID, date)
}

func (ps *plannerService) DeleteEvent(ctx context.Context, userID, eventID uuid.UUID) error {
	if _, err := ps.getEvent(ctx, userID, eventID); err != nil {
		return err
	}
	return ps.calendarEventRepo.Delete(ctx, nil, eventID)
}

func (ps *plannerService) getEvent(ctx context.Context, userID, eventID uuid.UUID) (*types.CalendarEvent, error) {
	event, err := ps.calendarEventRepo.GetByID(ctx, nil, eventID)
	if err != nil || event.UserID != userID {
		return nil, apierr.NotFound("event not found")
	}
	return event, nil
}

func validateTodoInput(input *TodoInput) error {
	input.Task = strings.TrimSpace(input.Task)
	if input.Task == "" {
		return apierr.Validation("todo task is required")
	}
	switch input.Priority {
	case "":
		input.Priority = types.PriorityMedium
	case types.PriorityHigh, types.PriorityMedium, types.PriorityLow:
	default:
		return apierr.Validation("todo priority must be high, medium or low")
	}
	return nil
}

func (ps *plannerService) CreateTodo(ctx context.Context, userID uuid.UUID, input TodoInput) (*types.Todo, error) {
	if err := validateTodoInput(&input); err != nil {
		return nil, err
	}
	todo := &types.Todo{
		ID:       uuid.New(),
		UserID:   userID,
		Task:     input.Task,
		Priority: input.Priority,
	}
	created, err := ps.todoRepo.Create(ctx, nil, todo)
	if err != nil {
		return nil, fmt.Errorf("Failed to create todo: %w", err)
	}
	return created, nil
}

func (ps *plannerService) UpdateTodo(ctx context.Context, userID, todoID uuid.UUID, input TodoInput) (*types.Todo, error) {
	if err := validateTodoInput(&input); err != nil {
		return nil, err
	}
	todo, err := ps.getTodo(ctx, userID, todoID)
	if err != nil {
		return nil, err
	}
	if err := ps.todoRepo.Update(ctx, nil, todoID, input.Task, input.Priority); err != nil {
		return nil, fmt.Errorf("Failed to update todo: %w", err)
	}
	todo.Task = input.Task
	todo.Priority = input.Priority
	return todo, nil
}

func (ps *plannerService) SetTodoCompleted(ctx context.Context, userID, todoID uuid.UUID, completed bool) error {
	if _, err := ps.getTodo(ctx, userID, todoID); err != nil {
		return err
	}
	return ps.todoRepo.SetCompleted(ctx, nil, todoID, completed)
}

func (ps *plannerService) ListTodos(ctx context.Context, userID uuid.UUID) ([]*types.Todo, error) {
	return ps.todoRepo.ListByUserID(ctx, nil, userID)
}

func (ps *plannerService) DeleteTodo(ctx context.Context, userID, todoID uuid.UUID) error {
	if _, err := ps.getTodo(ctx, userID, todoID); err != nil {
		return err
	}
	return ps.todoRepo.Delete(ctx, nil, todoID)
}

func (ps *plannerService) getTodo(ctx context.Context, userID, todoID uuid.UUID) (*types.Todo, error) {
	todo, err := ps.todoRepo.GetByID(ctx, nil, todoID)
	if err != nil || todo.UserID != userID {
		return nil, apierr.NotFound("todo not found")
	}
	return todo, nil
}

// Overview loads the day's events and the todo list in parallel.
func (ps *plannerService) Overview(ctx context.Context, userID uuid.UUID, date string) (*PlannerOverview, error) {
	if date == "" {
		date = time.Now().Format(eventDateLayout)
	}
	if _, err := time.Parse(eventDateLayout, date); err != nil {
		return nil, apierr.Validation("date must be YYYY-MM-DD")
	}

	overview := &PlannerOverview{Date: date}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		events, err := ps.calendarEventRepo.ListByUserAndDate(gctx, nil, userID, date)
		if err != nil {
			return fmt.Errorf("Failed to load events: %w", err)
		}
		overview.Events = events
		return nil
	})
	g.Go(func() error {
		todos, err := ps.todoRepo.ListByUserID(gctx, nil, userID)
		if err != nil {
			return fmt.Errorf("Failed to load todos: %w", err)
		}
		overview.Todos = todos
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return overview, nil
}
