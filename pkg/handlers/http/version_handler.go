package http

import (
	"github.com/folioworks/folio/pkg/version"
	"github.com/gofiber/fiber/v2"
)

type versionHandler struct{}

func NewVersionHandler() Handler {
	return &versionHandler{}
}

// Handle @Summary Build information
// @Tags System
// @Produce json
// @Success 200 {object} version.Info
// @Router /version [get]
func (h *versionHandler) Handle(c *fiber.Ctx) error {
	return c.JSON(version.GetInfo())
}
