package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kanishka132/StudyBuddy-AI/internal/requestdata"
	"github.com/kanishka132/StudyBuddy-AI/internal/services"
	"github.com/kanishka132/StudyBuddy-AI/internal/types"
)

type MaterialHandler struct {
	materialService services.MaterialService
}

func NewMaterialHandler(materialService services.MaterialService) *MaterialHandler {
	return &MaterialHandler{materialService: materialService}
}

func (mh *MaterialHandler) Upload(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	fileHeaders := form.File["files"]
	if len(fileHeaders) == 0 {
		fileHeaders = form.File["file"]
	}
	if len(fileHeaders) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	// Failed files are skipped; the response reports how many made it.
	uploaded := make([]*types.Material, 0, len(fileHeaders))
	for _, fileHeader := range fileHeaders {
		f, err := fileHeader.Open()
		if err != nil {
			continue
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			continue
		}
		material, err := mh.materialService.Upload(c.Request.Context(), userID, fileHeader.Filename, fileHeader.Header.Get("Content-Type"), data)
		if err != nil {
			continue
		}
		uploaded = append(uploaded, material)
	}

	RespondOK(c, gin.H{
		"materials":      uploaded,
		"uploaded_count": len(uploaded),
		"total_count":    len(fileHeaders),
	})
}

func (mh *MaterialHandler) List(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())
	query := services.MaterialListQuery{
		Subject: c.Query("subject"),
		Date:    services.DateRange(c.Query("date")),
		Sort:    services.MaterialSort(c.Query("sort")),
	}
	list, err := mh.materialService.List(c.Request.Context(), userID, query)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, list)
}

func (mh *MaterialHandler) Rename(c *gin.Context) {
	materialID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid material id"})
		return
	}
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	userID := requestdata.UserID(c.Request.Context())
	if err := mh.materialService.Rename(c.Request.Context(), userID, materialID, req.Name); err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (mh *MaterialHandler) Tag(c *gin.Context) {
	materialID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid material id"})
		return
	}
	var req struct {
		Subject string `json:"subject"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	userID := requestdata.UserID(c.Request.Context())
	if err := mh.materialService.Tag(c.Request.Context(), userID, materialID, req.Subject); err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (mh *MaterialHandler) Delete(c *gin.Context) {
	materialID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid material id"})
		return
	}
	userID := requestdata.UserID(c.Request.Context())
	if err := mh.materialService.Delete(c.Request.Context(), userID, materialID); err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (mh *MaterialHandler) Download(c *gin.Context) {
	materialID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid material id"})
		return
	}
	userID := requestdata.UserID(c.Request.Context())
	material, data, err := mh.materialService.Download(c.Request.Context(), userID, materialID)
	if err != nil {
		RespondError(c, err)
		return
	}
	mimeType := material.MimeType
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	c.Header("Content-Disposition", `attachment; filename="`+material.Name+`"`)
	c.Data(http.StatusOK, mimeType, data)
}
