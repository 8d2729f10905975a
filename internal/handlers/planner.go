package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kanishka132/StudyBuddy-AI/internal/requestdata"
	"github.com/kanishka132/StudyBuddy-AI/internal/services"
)

type PlannerHandler struct {
	plannerService services.PlannerService
}

func NewPlannerHandler(plannerService services.PlannerService) *PlannerHandler {
	return &PlannerHandler{plannerService: plannerService}
}

type eventRequest struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	EventDate       string `json:"event_date"`
	EventTime       string `json:"event_time"`
	DurationMinutes int    `json:"duration"`
}

func (pr eventRequest) toInput() services.EventInput {
	return services.EventInput{
		Title:           pr.Title,
		Description:     pr.Description,
		EventDate:       pr.EventDate,
		EventTime:       pr.EventTime,
		DurationMinutes: pr.DurationMinutes,
	}
}

func (ph *PlannerHandler) CreateEvent(c *gin.Context) {
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	userID := requestdata.UserID(c.Request.Context())
	event, err := ph.plannerService.CreateEvent(c.Request.Context(), userID, req.toInput())
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, event)
}

func (ph *PlannerHandler) UpdateEvent(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	userID := requestdata.UserID(c.Request.Context())
	event, err := ph.plannerService.UpdateEvent(c.Request.Context(), userID, eventID, req.toInput())
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, event)
}

func (ph *PlannerHandler) ListEvents(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())
	if date := c.Query("date"); date != "" {
		events, err := ph.plannerService.EventsForDate(c.Request.Context(), userID, date)
		if err != nil {
			RespondError(c, err)
			return
		}
		RespondOK(c, gin.H{"events": events})
		return
	}
	events, err := ph.plannerService.ListEvents(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"events": events})
}

func (ph *PlannerHandler) DeleteEvent(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}
	userID := requestdata.UserID(c.Request.Context())
	if err := ph.plannerService.DeleteEvent(c.Request.Context(), userID, eventID); err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (ph *PlannerHandler) CreateTodo(c *gin.Context) {
	var req struct {
		Task     string `json:"task"`
		Priority string `json:"priority"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	userID := requestdata.UserID(c.Request.Context())
	todo, err := ph.plannerService.CreateTodo(c.Request.Context(), userID, services.TodoInput{
		Task:     req.Task,
		Priority: req.Priority,
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, todo)
}

func (ph *PlannerHandler) UpdateTodo(c *gin.Context) {
	todoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid todo id"})
		return
	}
	var req struct {
		Task     string `json:"task"`
		Priority string `json:"priority"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	userID := requestdata.UserID(c.Request.Context())
	todo, err := ph.plannerService.UpdateTodo(c.Request.Context(), userID, todoID, services.TodoInput{
		Task:     req.Task,
		Priority: req.Priority,
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, todo)
}

func (ph *PlannerHandler) SetTodoCompleted(c *gin.Context) {
	todoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid todo id"})
		return
	}
	var req struct {
		Completed bool `json:"completed"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	userID := requestdata.UserID(c.Request.Context())
	if err := ph.plannerService.SetTodoCompleted(c.Request.Context(), userID, todoID, req.Completed); err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (ph *PlannerHandler) ListTodos(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())
	todos, err := ph.plannerService.ListTodos(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"todos": todos})
}

func (ph *PlannerHandler) DeleteTodo(c *gin.Context) {
	todoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid todo id"})
		return
	}
	userID := requestdata.UserID(c.Request.Context())
	if err := ph.plannerService.DeleteTodo(c.Request.Context(), userID, todoID); err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (ph *PlannerHandler) Overview(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())
	overview, err := ph.plannerService.Overview(c.Request.Context(), userID, c.Query("date"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, overview)
}
