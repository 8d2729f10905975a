package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kanishka132/StudyBuddy-AI/internal/requestdata"
	"github.com/kanishka132/StudyBuddy-AI/internal/services"
)

type ProjectHandler struct {
	projectService services.ProjectService
}

func NewProjectHandler(projectService services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

func (ph *ProjectHandler) Generate(c *gin.Context) {
	var req struct {
		Name          string   `json:"name"`
		Subject       string   `json:"subject"`
		MaterialIDs   []string `json:"material_ids"`
		Actions       []string `json:"actions"`
		QuestionCount int      `json:"question_count"`
		Difficulty    string   `json:"difficulty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	materialIDs := make([]uuid.UUID, 0, len(req.MaterialIDs))
	for _, raw := range req.MaterialIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid material id"})
			return
		}
		materialIDs = append(materialIDs, id)
	}

	userID := requestdata.UserID(c.Request.Context())
	out, err := ph.projectService.Generate(c.Request.Context(), userID, services.GenerateInput{
		Name:          req.Name,
		Subject:       req.Subject,
		MaterialIDs:   materialIDs,
		Actions:       req.Actions,
		QuestionCount: req.QuestionCount,
		Difficulty:    req.Difficulty,
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, out)
}

func (ph *ProjectHandler) List(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())
	projects, err := ph.projectService.List(c.Request.Context(), userID, c.Query("subject"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"projects": projects})
}

func (ph *ProjectHandler) Get(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}
	userID := requestdata.UserID(c.Request.Context())
	project, err := ph.projectService.Get(c.Request.Context(), userID, projectID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, project)
}

func (ph *ProjectHandler) Materials(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}
	userID := requestdata.UserID(c.Request.Context())
	materials, err := ph.projectService.Materials(c.Request.Context(), userID, projectID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"materials": materials})
}

func (ph *ProjectHandler) Delete(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}
	userID := requestdata.UserID(c.Request.Context())
	if err := ph.projectService.Delete(c.Request.Context(), userID, projectID); err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (ph *ProjectHandler) Summary(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}
	userID := requestdata.UserID(c.Request.Context())
	summary, err := ph.projectService.Summary(c.Request.Context(), userID, projectID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, summary)
}
