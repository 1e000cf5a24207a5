package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/dynamic-forms/internal/application"
)

type AnalyticsHandler struct {
	svc *application.AnalyticsService
}

func NewAnalyticsHandler(svc *application.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc}
}

// GetFormAnalytics godoc
// @Summary Submission counts and field fill rates for a form
// @Tags analytics
// @Security BearerAuth
// @Produce json
// @Param formId path string true "Form ID"
// @Success 200 {object} application.FormAnalytics
// @Router /forms/{formId}/analytics [get]
func (h *AnalyticsHandler) GetFormAnalytics(c *gin.Context) {
	stats, err := h.svc.Form(c.Request.Context(), c.Param("formId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
