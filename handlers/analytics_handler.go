package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"techkwiz/services"
)

type AnalyticsHandler struct {
	analyticsService *services.AnalyticsService
}

func NewAnalyticsHandler(analyticsService *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
	}
}

// RecordEvent is the public write endpoint for rewarded-ad lifecycle events.
func (h *AnalyticsHandler) RecordEvent(c *gin.Context) {
	var req services.AdEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := h.analyticsService.Record(&req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "id": event.ID})
}

func (h *AnalyticsHandler) Summary(c *gin.Context) {
	filter, err := h.parseFilter(c)
	if err != nil {
		respondError(c, err)
		return
	}

	summary, err := h.analyticsService.Summary(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *AnalyticsHandler) ExportCSV(c *gin.Context) {
	filter, err := h.parseFilter(c)
	if err != nil {
		respondError(c, err)
		return
	}

	data, err := h.analyticsService.ExportCSV(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=ad_analytics.csv")
	c.Data(http.StatusOK, "text/csv", data)
}

func (h *AnalyticsHandler) parseFilter(c *gin.Context) (*services.AnalyticsFilter, error) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	return services.ParseAnalyticsFilter(
		c.Query("from_ts"),
		c.Query("to_ts"),
		c.Query("placement"),
		c.Query("category_id"),
		limit,
	)
}
