package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/dynamic-forms/internal/domain/errs"
	"github.com/linskybing/dynamic-forms/internal/domain/submission"
	"github.com/linskybing/dynamic-forms/pkg/response"
	"github.com/linskybing/dynamic-forms/pkg/utils"
)

// statusOf maps an engine error kind to its HTTP status.
func statusOf(err error) int {
	switch errs.KindOf(err) {
	case errs.KindValidationFailed:
		return http.StatusUnprocessableEntity
	case errs.KindSchemaNotFound, errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindSchemaInvariantViolation:
		return http.StatusBadRequest
	case errs.KindIllegalTransition, errs.KindConcurrentModification:
		return http.StatusConflict
	case errs.KindForbidden:
		return http.StatusForbidden
	case errs.KindStorageUnavailable:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func respondError(c *gin.Context, err error) {
	var e *errs.Error
	if errors.As(err, &e) && e.Kind == errs.KindValidationFailed && e.Detail != nil {
		c.JSON(http.StatusUnprocessableEntity, response.ValidationErrorResponse{Error: err.Error(), Result: e.Detail})
		return
	}
	c.JSON(statusOf(err), response.ErrorResponse{Error: err.Error()})
}

// currentUser turns the JWT claims into the identity the engine works with.
func currentUser(c *gin.Context) (submission.UserRef, bool) {
	claims, err := utils.GetClaimsFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return submission.UserRef{}, false
	}
	role := submission.RoleUser
	if claims.IsAdmin() {
		role = submission.RoleAdmin
	}
	return submission.UserRef{ID: claims.UserID, Role: role}, true
}
