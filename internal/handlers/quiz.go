package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kanishka132/StudyBuddy-AI/internal/requestdata"
	"github.com/kanishka132/StudyBuddy-AI/internal/services"
)

type QuizHandler struct {
	quizSessionService services.QuizSessionService
}

func NewQuizHandler(quizSessionService services.QuizSessionService) *QuizHandler {
	return &QuizHandler{quizSessionService: quizSessionService}
}

func (qh *QuizHandler) Start(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}
	userID := requestdata.UserID(c.Request.Context())
	state, err := qh.quizSessionService.Start(c.Request.Context(), userID, projectID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, state)
}

func (qh *QuizHandler) Select(c *gin.Context) {
	var req struct {
		Option int `json:"option"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	userID := requestdata.UserID(c.Request.Context())
	state, err := qh.quizSessionService.Select(c.Request.Context(), userID, req.Option)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, state)
}

func (qh *QuizHandler) Submit(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())
	state, err := qh.quizSessionService.Submit(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, state)
}

func (qh *QuizHandler) Previous(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())
	state, err := qh.quizSessionService.Previous(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, state)
}

func (qh *QuizHandler) Restart(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())
	state, err := qh.quizSessionService.Restart(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, state)
}

func (qh *QuizHandler) Close(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())
	if err := qh.quizSessionService.Close(c.Request.Context(), userID); err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (qh *QuizHandler) State(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())
	state, err := qh.quizSessionService.State(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, state)
}
