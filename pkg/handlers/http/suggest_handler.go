package http

import (
	"github.com/folioworks/folio/pkg/app/search"
	"github.com/folioworks/folio/pkg/handlers/http/request"
	"github.com/folioworks/folio/pkg/handlers/http/response"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type suggestHandler struct {
	logger *logrus.Logger
	search search.Service
}

func NewSuggestHandler(logger *logrus.Logger, searchService search.Service) Handler {
	return &suggestHandler{logger: logger, search: searchService}
}

// Handle @Summary Suggest titles
// @Tags Search
// @Produce json
// @Param q query string true "Title prefix"
// @Param limit query int false "Maximum suggestions"
// @Success 200 {object} response.SuggestResponse
// @Failure 400 {object} map[string]interface{}
// @Router /api/v1/search/suggest [get]
func (h *suggestHandler) Handle(c *fiber.Ctx) error {
	req := request.SearchRequest{Q: c.Query("q")}
	if err := req.Validate(); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error())
	}
	query := req.Q
	suggestions := h.search.Suggest(c.UserContext(), query, c.QueryInt("limit", 0))
	if suggestions == nil {
		suggestions = []search.Suggestion{}
	}
	return c.JSON(response.SuggestResponse{Query: query, Suggestions: suggestions})
}
