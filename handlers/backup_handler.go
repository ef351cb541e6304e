package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"techkwiz/services"
)

type BackupHandler struct {
	backupService *services.BackupService
}

func NewBackupHandler(backupService *services.BackupService) *BackupHandler {
	return &BackupHandler{
		backupService: backupService,
	}
}

func (h *BackupHandler) Export(c *gin.Context) {
	export, err := h.backupService.Export()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, export)
}

func (h *BackupHandler) Import(c *gin.Context) {
	var req services.QuizDataImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	categories, questions, err := h.backupService.Import(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":             "Quiz data imported successfully",
		"categories_imported": categories,
		"questions_imported":  questions,
	})
}
