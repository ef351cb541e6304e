package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"techkwiz/services"
)

// RewardedConfigHandler exposes the admin view of the rewarded popup
// configuration. The admin scope path segment is either the literal
// "homepage" or a category id.
type RewardedConfigHandler struct {
	rewardedService *services.RewardedConfigService
}

func NewRewardedConfigHandler(rewardedService *services.RewardedConfigService) *RewardedConfigHandler {
	return &RewardedConfigHandler{
		rewardedService: rewardedService,
	}
}

func (h *RewardedConfigHandler) List(c *gin.Context) {
	configs, err := h.rewardedService.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, configs)
}

func (h *RewardedConfigHandler) Get(c *gin.Context) {
	config, err := h.rewardedService.Resolve(scopeParam(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, config)
}

func (h *RewardedConfigHandler) Put(c *gin.Context) {
	var req services.RewardedConfigUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	config, err := h.rewardedService.Update(scopeParam(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, config)
}

func scopeParam(c *gin.Context) string {
	scope := c.Param("scope")
	if scope == "homepage" {
		return services.HomepageScope
	}
	return scope
}
