package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kanishka132/StudyBuddy-AI/internal/requestdata"
	"github.com/kanishka132/StudyBuddy-AI/internal/services"
)

type FlashcardHandler struct {
	flashcardSessionService services.FlashcardSessionService
}

func NewFlashcardHandler(flashcardSessionService services.FlashcardSessionService) *FlashcardHandler {
	return &FlashcardHandler{flashcardSessionService: flashcardSessionService}
}

func (fh *FlashcardHandler) Start(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}
	userID := requestdata.UserID(c.Request.Context())
	state, err := fh.flashcardSessionService.Start(c.Request.Context(), userID, projectID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, state)
}

func (fh *FlashcardHandler) Flip(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())
	state, err := fh.flashcardSessionService.Flip(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, state)
}

func (fh *FlashcardHandler) Next(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())
	state, err := fh.flashcardSessionService.Next(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, state)
}

func (fh *FlashcardHandler) Previous(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())
	state, err := fh.flashcardSessionService.Previous(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, state)
}

func (fh *FlashcardHandler) Close(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())
	if err := fh.flashcardSessionService.Close(c.Request.Context(), userID); err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (fh *FlashcardHandler) State(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())
	state, err := fh.flashcardSessionService.State(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, state)
}
