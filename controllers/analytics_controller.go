// controllers/analytics_controller.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"backend/services"
	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	Svc *services.AnalyticsService
}

func NewAnalyticsController(svc *services.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{Svc: svc}
}

func (h *AnalyticsController) GetTrends(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok { c.JSON(http.StatusUnauthorized, gin.H{"error":"unauthorized"}); return }
	pid, pok := patientIDParam(c)
	if !pok { return }

	now := time.Now()
	first := now.AddDate(0, -6, 0)

	fromStr := c.DefaultQuery("from", first.Format("2006-01-02"))
	toStr   := c.DefaultQuery("to",   now.Format("2006-01-02"))

	from, err := time.ParseInLocation("2006-01-02", fromStr, now.Location()); if err != nil { c.JSON(400, gin.H{"error":"invalid from date"}); return }
	to,   err := time.ParseInLocation("2006-01-02", toStr,   now.Location()); if err != nil { c.JSON(400, gin.H{"error":"invalid to date"});   return }
	if to.Before(from) { c.JSON(400, gin.H{"error":"`to` must be on/after `from`"}); return }

	out, err := h.Svc.Trends(c.Request.Context(), userID, pid, from, to)
	if err != nil {
		if errors.Is(err, services.ErrPatientNotFound) { c.JSON(404, gin.H{"error": err.Error()}); return }
		c.JSON(500, gin.H{"error": err.Error()}); return
	}
	c.JSON(200, out)
}

func (h *AnalyticsController) GetSummary(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok { c.JSON(http.StatusUnauthorized, gin.H{"error":"unauthorized"}); return }
	pid, pok := patientIDParam(c)
	if !pok { return }

	out, err := h.Svc.Summary(c.Request.Context(), userID, pid)
	if err != nil {
		if errors.Is(err, services.ErrPatientNotFound) { c.JSON(404, gin.H{"error": err.Error()}); return }
		c.JSON(500, gin.H{"error": err.Error()}); return
	}
	c.JSON(200, out)
}

// --- helpers ---

func userIDFromCtx(c *gin.Context) (uint, bool) {
	v, ok := c.Get("userID") // adjust if your middleware uses another key
	if !ok {
		return 0, false
	}
	switch id := v.(type) {
	case uint:
		return id, true
	case int:
		return uint(id), true
	case int64:
		return uint(id), true
	default:
		return 0, false
	}
}
