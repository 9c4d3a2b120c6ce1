package http

import (
	"github.com/folioworks/folio/pkg/app/search"
	"github.com/folioworks/folio/pkg/handlers/http/response"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type reindexHandler struct {
	logger *logrus.Logger
	search search.Service
}

func NewReindexHandler(logger *logrus.Logger, searchService search.Service) Handler {
	return &reindexHandler{logger: logger, search: searchService}
}

// Handle @Summary Rebuild the search index
// @Tags Search
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} response.ReindexResponse
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/search/reindex [post]
func (h *reindexHandler) Handle(c *fiber.Ctx) error {
	n, err := h.search.Rebuild(c.UserContext())
	if err != nil {
		h.logger.WithError(err).Error("failed to rebuild search index")
		return errorResponse(c, fiber.StatusInternalServerError, "failed to rebuild search index")
	}
	return c.JSON(response.ReindexResponse{Items: n})
}
