package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/dynamic-forms/internal/application"
	"github.com/linskybing/dynamic-forms/internal/domain/submission"
	"github.com/linskybing/dynamic-forms/pkg/response"
)

type SubmissionHandler struct {
	svc *application.SubmissionService
}

func NewSubmissionHandler(svc *application.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{svc: svc}
}

// SaveDraft godoc
// @Summary Autosave the caller's draft of a form
// @Tags drafts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param formId path string true "Form ID"
// @Param input body submission.SaveDraftDTO true "Draft edit"
// @Success 200 {object} submission.DraftRecord
// @Failure 409 {object} response.ErrorResponse
// @Router /forms/{formId}/draft [put]
func (h *SubmissionHandler) SaveDraft(c *gin.Context) {
	var input submission.SaveDraftDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}
	user, ok := currentUser(c)
	if !ok {
		return
	}

	draft, err := h.svc.SaveDraft(c.Request.Context(), application.SaveDraftInput{
		Owner:           user,
		FormID:          c.Param("formId"),
		SchemaVersion:   input.SchemaVersion,
		Payload:         input.Payload,
		ClientTimestamp: input.ClientTimestamp,
		Source:          input.Source,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

func (h *SubmissionHandler) GetDraft(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	draft, err := h.svc.GetDraft(c.Request.Context(), user, c.Param("formId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

// Submit godoc
// @Summary Submit the caller's draft
// @Tags submissions
// @Security BearerAuth
// @Produce json
// @Param formId path string true "Form ID"
// @Success 201 {object} submission.Submission
// @Failure 422 {object} response.ValidationErrorResponse
// @Router /forms/{formId}/submit [post]
func (h *SubmissionHandler) Submit(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	sub, res, err := h.svc.Submit(c.Request.Context(), user, c.Param("formId"))
	if err != nil {
		respondError(c, err)
		return
	}
	if sub == nil {
		c.JSON(http.StatusUnprocessableEntity, response.ValidationErrorResponse{Error: "payload failed validation", Result: res})
		return
	}
	c.JSON(http.StatusCreated, sub)
}

func (h *SubmissionHandler) ListMine(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	subs, err := h.svc.ListMine(c.Request.Context(), user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, subs)
}

func (h *SubmissionHandler) ListByForm(c *gin.Context) {
	subs, err := h.svc.ListByForm(c.Request.Context(), c.Param("formId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, subs)
}

// GetByID godoc
// @Summary Get a submission
// @Tags submissions
// @Security BearerAuth
// @Produce json
// @Param id path string true "Submission ID"
// @Success 200 {object} submission.Submission
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /submissions/{id} [get]
func (h *SubmissionHandler) GetByID(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	sub, err := h.svc.Get(c.Request.Context(), c.Param("id"), user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

// UpdateStatus godoc
// @Summary Move a submission to another state
// @Tags submissions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Submission ID"
// @Param input body submission.UpdateStatusDTO true "Target state"
// @Success 200 {object} submission.Submission
// @Failure 409 {object} response.ErrorResponse
// @Failure 422 {object} response.ValidationErrorResponse
// @Router /submissions/{id}/status [put]
func (h *SubmissionHandler) UpdateStatus(c *gin.Context) {
	var input submission.UpdateStatusDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}
	if !input.State.Valid() {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Unknown state " + string(input.State)})
		return
	}
	user, ok := currentUser(c)
	if !ok {
		return
	}

	sub, err := h.svc.TransitionByID(c.Request.Context(), c.Param("id"), input.Revision, input.State, user, input.Notes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

func (h *SubmissionHandler) UpdatePayload(c *gin.Context) {
	var input submission.UpdatePayloadDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}
	user, ok := currentUser(c)
	if !ok {
		return
	}

	sub, err := h.svc.UpdatePayload(c.Request.Context(), c.Param("id"), input.Revision, input.Payload, user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}
