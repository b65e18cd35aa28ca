package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ourhour/weddinghub/internal/model"
	"ourhour/weddinghub/internal/repository"
	"ourhour/weddinghub/internal/service"
	"ourhour/weddinghub/pkg/response"
)

type TemplateHandler struct {
	templateService service.TemplateService
	logger          *zap.Logger
}

func NewTemplateHandler(templateService service.TemplateService, logger *zap.Logger) *TemplateHandler {
	return &TemplateHandler{templateService: templateService, logger: logger}
}

// List returns the active catalog in short form.
func (h *TemplateHandler) List(c *gin.Context) {
	filter := repository.TemplateFilter{
		Search:   c.Query("search"),
		Ordering: c.Query("ordering"),
	}
	if raw := c.Query("category"); raw != "" {
		category := model.TemplateCategory(raw)
		filter.Category = &category
	}
	if raw := c.Query("is_premium"); raw != "" {
		premium, err := strconv.ParseBool(raw)
		if err != nil {
			response.ValidationError(c, map[string]string{"is_premium": "must be true or false"})
			return
		}
		filter.IsPremium = &premium
	}
	page := pageFromQuery(c)

	templates, total, err := h.templateService.List(c.Request.Context(), filter, page)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCategory) {
			fieldError(c, "category", err)
			return
		}
		internalError(c, h.logger, "list templates failed", err)
		return
	}

	items := make([]*model.TemplateSummary, 0, len(templates))
	for i := range templates {
		items = append(items, templates[i].Summary())
	}
	response.Success(c, pageOf(page, total, items))
}

func (h *TemplateHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id", "template not found")
	if !ok {
		return
	}

	tpl, err := h.templateService.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrTemplateNotFound) {
			response.NotFound(c, "template not found")
			return
		}
		internalError(c, h.logger, "get template failed", err)
		return
	}

	response.Success(c, tpl)
}
