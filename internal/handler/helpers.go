package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"ourhour/weddinghub/internal/handler/middleware"
	"ourhour/weddinghub/internal/repository"
	jwtpkg "ourhour/weddinghub/pkg/jwt"
	"ourhour/weddinghub/pkg/response"
)

var ErrNoClaims = errors.New("claims not found in context")

func getUserIDFromContext(c *gin.Context) (uuid.UUID, error) {
	claimsVal, exists := c.Get(middleware.ContextKeyUserClaims)
	if !exists {
		return uuid.Nil, ErrNoClaims
	}
	claims, ok := claimsVal.(*jwtpkg.Claims)
	if !ok {
		return uuid.Nil, ErrNoClaims
	}
	return uuid.Parse(claims.Subject)
}

// mustUserID writes a 401 and returns false when the request has no usable
// user claims.
func mustUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return uuid.Nil, false
	}
	return userID, true
}

// uuidParam parses a path id. Malformed ids are answered with 404 like any
// other unknown resource.
func uuidParam(c *gin.Context, name, notFound string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.NotFound(c, notFound)
		return uuid.Nil, false
	}
	return id, true
}

func pageFromQuery(c *gin.Context) repository.Pagination {
	page, _ := strconv.Atoi(c.Query("page"))
	size, _ := strconv.Atoi(c.Query("page_size"))
	return repository.Pagination{Page: page, PageSize: size}.Normalize()
}

func pageOf(p repository.Pagination, total int64, results interface{}) response.Page {
	return response.Page{Count: total, Page: p.Page, PageSize: p.PageSize, Results: results}
}

// internalError logs an unexpected error and answers with a generic 500.
func internalError(c *gin.Context, logger *zap.Logger, msg string, err error) {
	logger.Error(msg,
		zap.Error(err),
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
	)
	response.InternalError(c, "internal server error")
}
