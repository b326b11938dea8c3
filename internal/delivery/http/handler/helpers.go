package handler

import (
	"sankofa/internal/middleware"
	appErrors "sankofa/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var (
	errInvalidBody  = appErrors.NewAppError("INVALID_BODY", "Invalid request body", nil)
	errInvalidQuery = appErrors.NewAppError("INVALID_QUERY", "Invalid query parameters", nil)
)

// fail hands err to the error middleware, which renders the response.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
}

func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		fail(c, errInvalidBody.WithErr(err))
		return false
	}
	return true
}

func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		fail(c, errInvalidQuery.WithErr(err))
		return false
	}
	return true
}

func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		fail(c, appErrors.NewAppError("INVALID_ID", "Invalid "+name, err))
		return uuid.Nil, false
	}
	return id, true
}

func callerID(c *gin.Context) (uuid.UUID, bool) {
	id, err := middleware.CurrentUserID(c)
	if err != nil {
		fail(c, err)
		return uuid.Nil, false
	}
	return id, true
}

func roleOf(c *gin.Context) string {
	return middleware.CurrentRole(c)
}
