package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"techkwiz/services"
)

type SiteConfigHandler struct {
	siteConfigService *services.SiteConfigService
}

func NewSiteConfigHandler(siteConfigService *services.SiteConfigService) *SiteConfigHandler {
	return &SiteConfigHandler{
		siteConfigService: siteConfigService,
	}
}

func (h *SiteConfigHandler) Get(c *gin.Context) {
	config, err := h.siteConfigService.Resolve()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, config)
}

func (h *SiteConfigHandler) Put(c *gin.Context) {
	var req services.SiteConfigUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	config, err := h.siteConfigService.Update(&req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, config)
}

// AdsTxt serves the configured ads.txt body as plain text.
func (h *SiteConfigHandler) AdsTxt(c *gin.Context) {
	content, err := h.siteConfigService.AdsTxt()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.String(http.StatusOK, content)
}

// RobotsTxt serves the configured robots.txt body as plain text.
func (h *SiteConfigHandler) RobotsTxt(c *gin.Context) {
	content, err := h.siteConfigService.RobotsTxt()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.String(http.StatusOK, content)
}
