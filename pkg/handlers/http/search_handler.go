package http

import (
	"github.com/folioworks/folio/pkg/app/search"
	"github.com/folioworks/folio/pkg/handlers/http/request"
	"github.com/folioworks/folio/pkg/handlers/http/response"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const (
	groupByType     = "type"
	groupByCategory = "category"
)

type searchHandler struct {
	logger *logrus.Logger
	search search.Service
}

func NewSearchHandler(logger *logrus.Logger, searchService search.Service) Handler {
	return &searchHandler{logger: logger, search: searchService}
}

// Handle @Summary Search site content
// @Description Typo tolerant search over titles, tags, descriptions, content and categories
// @Tags Search
// @Produce json
// @Param q query string true "Query text"
// @Param limit query int false "Maximum results"
// @Param group query string false "Group results by type or category"
// @Success 200 {object} response.SearchResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 429 {object} map[string]interface{}
// @Router /api/v1/search [get]
func (h *searchHandler) Handle(c *fiber.Ctx) error {
	req := request.SearchRequest{Q: c.Query("q"), Group: c.Query("group")}
	if err := req.Validate(); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	results := h.search.Search(c.UserContext(), req.Q, c.QueryInt("limit", 0))
	resp := response.SearchResponse{
		Query:   req.Q,
		Total:   len(results),
		Results: results,
	}
	switch req.Group {
	case groupByType:
		resp.Groups = search.GroupByType(results)
	case groupByCategory:
		resp.Groups = search.GroupByCategory(results)
	}
	return c.JSON(resp)
}
