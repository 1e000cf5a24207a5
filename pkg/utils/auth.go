package utils

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/dynamic-forms/pkg/types"
)

// GetClaimsFromContext returns the claims the JWT middleware stored.
var GetClaimsFromContext = func(c *gin.Context) (*types.Claims, error) {
	claimsVal, exists := c.Get("claims")
	if !exists {
		return nil, errors.New("user claims not found in context")
	}

	claims, ok := claimsVal.(*types.Claims)
	if !ok {
		return nil, errors.New("invalid user claims type")
	}

	return claims, nil
}
