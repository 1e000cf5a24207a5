package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/dynamic-forms/internal/application"
	"github.com/linskybing/dynamic-forms/internal/domain/form"
	"github.com/linskybing/dynamic-forms/pkg/response"
)

type SchemaHandler struct {
	svc        *application.SchemaService
	submission *application.SubmissionService
}

func NewSchemaHandler(svc *application.SchemaService, submission *application.SubmissionService) *SchemaHandler {
	return &SchemaHandler{svc: svc, submission: submission}
}

// Publish godoc
// @Summary Publish a new version of a form schema
// @Tags forms
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param input body form.PublishSchemaDTO true "Schema document"
// @Success 201 {object} form.FormSchema
// @Failure 400 {object} response.ErrorResponse
// @Router /forms [post]
func (h *SchemaHandler) Publish(c *gin.Context) {
	var input form.PublishSchemaDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}
	user, ok := currentUser(c)
	if !ok {
		return
	}

	format := input.Format
	if format == "" {
		format = form.FormatJSON
	}
	raw := []byte(input.Schema)
	if format == form.FormatYAML {
		// YAML documents travel as a JSON string.
		var doc string
		if err := json.Unmarshal(input.Schema, &doc); err != nil {
			c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "yaml schema must be sent as a string"})
			return
		}
		raw = []byte(doc)
	}

	schema, err := h.svc.Publish(c.Request.Context(), raw, format, user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, schema)
}

// PublishBundle godoc
// @Summary Publish every form in a multi-document YAML file
// @Tags forms
// @Security BearerAuth
// @Accept plain
// @Produce json
// @Success 201 {array} form.FormSchema
// @Router /forms/bundle [post]
func (h *SchemaHandler) PublishBundle(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	published, err := h.svc.PublishBundle(c.Request.Context(), string(body), user.ID)
	if err != nil {
		// earlier documents stay published
		c.JSON(statusOf(err), gin.H{"error": err.Error(), "published": published})
		return
	}
	c.JSON(http.StatusCreated, published)
}

// List godoc
// @Summary List the latest version of every form
// @Tags forms
// @Security BearerAuth
// @Produce json
// @Success 200 {array} form.FormSchema
// @Router /forms [get]
func (h *SchemaHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	schemas, err := h.svc.List(c.Request.Context(), user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, schemas)
}

// GetLatest godoc
// @Summary Get the latest version of a form
// @Tags forms
// @Security BearerAuth
// @Produce json
// @Param formId path string true "Form ID"
// @Success 200 {object} form.FormSchema
// @Failure 404 {object} response.ErrorResponse
// @Router /forms/{formId} [get]
func (h *SchemaHandler) GetLatest(c *gin.Context) {
	schema, err := h.svc.Latest(c.Request.Context(), c.Param("formId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, schema)
}

func (h *SchemaHandler) ListVersions(c *gin.Context) {
	versions, err := h.svc.Versions(c.Request.Context(), c.Param("formId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, versions)
}

// GetVersion godoc
// @Summary Get one published version of a form
// @Tags forms
// @Security BearerAuth
// @Produce json
// @Param formId path string true "Form ID"
// @Param version path int true "Version"
// @Success 200 {object} form.FormSchema
// @Failure 404 {object} response.ErrorResponse
// @Router /forms/{formId}/versions/{version} [get]
func (h *SchemaHandler) GetVersion(c *gin.Context) {
	version, err := strconv.Atoi(c.Param("version"))
	if err != nil || version < 1 {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid version"})
		return
	}
	schema, err := h.svc.Resolve(c.Request.Context(), c.Param("formId"), version)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, schema)
}

// Diff godoc
// @Summary Compare two versions of a form
// @Tags forms
// @Security BearerAuth
// @Produce json
// @Param formId path string true "Form ID"
// @Param from query int true "Older version"
// @Param to query int true "Newer version"
// @Success 200 {object} form.SchemaDiff
// @Router /forms/{formId}/diff [get]
func (h *SchemaHandler) Diff(c *gin.Context) {
	from, err1 := strconv.Atoi(c.Query("from"))
	to, err2 := strconv.Atoi(c.Query("to"))
	if err1 != nil || err2 != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "from and to must be version numbers"})
		return
	}
	diff, err := h.svc.Diff(c.Request.Context(), c.Param("formId"), from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, diff)
}

// Validate godoc
// @Summary Validate a payload without saving it
// @Tags forms
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param formId path string true "Form ID"
// @Param input body form.ValidatePayloadDTO true "Payload"
// @Success 200 {object} validation.Result
// @Router /forms/{formId}/validate [post]
func (h *SchemaHandler) Validate(c *gin.Context) {
	var input form.ValidatePayloadDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}
	res, err := h.submission.Validate(c.Request.Context(), c.Param("formId"), input.Version, input.Payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
