package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"techkwiz/services"
)

// ContentHandler serves the admin script-injection and ad-slot registries.
type ContentHandler struct {
	contentService *services.ContentService
}

func NewContentHandler(contentService *services.ContentService) *ContentHandler {
	return &ContentHandler{
		contentService: contentService,
	}
}

func (h *ContentHandler) ListScripts(c *gin.Context) {
	scripts, err := h.contentService.ListScripts()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, scripts)
}

func (h *ContentHandler) CreateScript(c *gin.Context) {
	var req services.ScriptCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	script, err := h.contentService.CreateScript(&req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, script)
}

func (h *ContentHandler) UpdateScript(c *gin.Context) {
	var req services.ScriptUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	script, err := h.contentService.UpdateScript(c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, script)
}

func (h *ContentHandler) DeleteScript(c *gin.Context) {
	if err := h.contentService.DeleteScript(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Script deleted successfully"})
}

func (h *ContentHandler) ListAdSlots(c *gin.Context) {
	slots, err := h.contentService.ListAdSlots()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, slots)
}

func (h *ContentHandler) CreateAdSlot(c *gin.Context) {
	var req services.AdSlotCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	slot, err := h.contentService.CreateAdSlot(&req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, slot)
}

func (h *ContentHandler) UpdateAdSlot(c *gin.Context) {
	var req services.AdSlotUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	slot, err := h.contentService.UpdateAdSlot(c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, slot)
}

func (h *ContentHandler) DeleteAdSlot(c *gin.Context) {
	if err := h.contentService.DeleteAdSlot(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Ad slot deleted successfully"})
}
