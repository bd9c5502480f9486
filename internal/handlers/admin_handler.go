package handlers

import (
	"github.com/ahmetcoskunkizilkaya/edujiin-api/internal/models"
	"github.com/ahmetcoskunkizilkaya/edujiin-api/internal/services"
	"github.com/gofiber/fiber/v2"
)

// AdminHandler creates catalog entries.
type AdminHandler struct {
	catalog *services.CatalogService
}

func NewAdminHandler(catalog *services.CatalogService) *AdminHandler {
	return &AdminHandler{catalog: catalog}
}

func (h *AdminHandler) CreateUniversity(c *fiber.Ctx) error {
	var university models.University
	if err := c.BodyParser(&university); err != nil {
		return badBody(c)
	}

	if err := h.catalog.CreateUniversity(c.UserContext(), &university); err != nil {
		if ok, werr := validationFailed(c, err); ok {
			return werr
		}
		return serverError(c, "failed to create university", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "university": university})
}

func (h *AdminHandler) CreateScholarship(c *fiber.Ctx) error {
	var scholarship models.Scholarship
	if err := c.BodyParser(&scholarship); err != nil {
		return badBody(c)
	}

	if err := h.catalog.CreateScholarship(c.UserContext(), &scholarship); err != nil {
		if ok, werr := validationFailed(c, err); ok {
			return werr
		}
		return serverError(c, "failed to create scholarship", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "scholarship": scholarship})
}
