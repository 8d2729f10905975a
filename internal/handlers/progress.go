package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kanishka132/StudyBuddy-AI/internal/playback"
	"github.com/kanishka132/StudyBuddy-AI/internal/requestdata"
	"github.com/kanishka132/StudyBuddy-AI/internal/services"
)

type ProgressHandler struct {
	progressService services.ProgressService
}

func NewProgressHandler(progressService services.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

func (ph *ProgressHandler) StartAttempt(c *gin.Context) {
	var req struct {
		ProjectID      string `json:"project_id"`
		QuizID         string `json:"quiz_id"`
		TotalQuestions int    `json:"total_questions"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}
	quizID, err := uuid.Parse(req.QuizID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quiz id"})
		return
	}
	userID := requestdata.UserID(c.Request.Context())
	attempt, err := ph.progressService.StartAttempt(c.Request.Context(), userID, projectID, quizID, req.TotalQuestions)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, attempt)
}

func (ph *ProgressHandler) CompleteAttempt(c *gin.Context) {
	attemptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid attempt id"})
		return
	}
	var req struct {
		Answers []*playback.QuizAnswer `json:"answers"`
		Score   int                    `json:"score"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	userID := requestdata.UserID(c.Request.Context())
	if err := ph.progressService.CompleteAttempt(c.Request.Context(), userID, attemptID, req.Answers, req.Score); err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (ph *ProgressHandler) ListAttempts(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())
	if rawQuizID := c.Query("quiz_id"); rawQuizID != "" {
		quizID, err := uuid.Parse(rawQuizID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quiz id"})
			return
		}
		attempts, err := ph.progressService.ListAttemptsForQuiz(c.Request.Context(), userID, quizID)
		if err != nil {
			RespondError(c, err)
			return
		}
		RespondOK(c, gin.H{"attempts": attempts})
		return
	}
	attempts, err := ph.progressService.ListAttempts(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"attempts": attempts})
}
