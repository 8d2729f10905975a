package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kanishka132/StudyBuddy-AI/internal/requestdata"
	"github.com/kanishka132/StudyBuddy-AI/internal/services"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (uh *UserHandler) GetMe(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())
	me, err := uh.userService.GetMe(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, me)
}

func (uh *UserHandler) SaveProfile(c *gin.Context) {
	var req struct {
		DisplayName string   `json:"display_name"`
		Avatar      string   `json:"avatar"`
		Education   string   `json:"education"`
		Goals       []string `json:"goals"`
		CustomGoal  string   `json:"custom_goal"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	userID := requestdata.UserID(c.Request.Context())
	profile, err := uh.userService.SaveProfile(c.Request.Context(), userID, services.ProfileInput{
		DisplayName: req.DisplayName,
		Avatar:      req.Avatar,
		Education:   req.Education,
		Goals:       req.Goals,
		CustomGoal:  req.CustomGoal,
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, profile)
}
