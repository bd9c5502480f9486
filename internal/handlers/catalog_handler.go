package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/ahmetcoskunkizilkaya/edujiin-api/internal/dto"
	"github.com/ahmetcoskunkizilkaya/edujiin-api/internal/repository"
	"github.com/ahmetcoskunkizilkaya/edujiin-api/internal/services"
	"github.com/gofiber/fiber/v2"
)

type CatalogHandler struct {
	catalog *services.CatalogService
}

func NewCatalogHandler(catalog *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

func (h *CatalogHandler) ListUniversities(c *fiber.Ctx) error {
	resp, err := h.catalog.ListUniversities(c.UserContext(), c.QueryInt("page", services.DefaultPage), c.QueryInt("limit", services.DefaultLimit))
	if err != nil {
		return serverError(c, "failed to list universities", err)
	}
	return c.JSON(resp)
}

func (h *CatalogHandler) SearchUniversities(c *fiber.Ctx) error {
	q := queryReader{c: c}
	filter := repository.UniversityFilter{
		Name:         strings.TrimSpace(c.Query("name")),
		Country:      strings.TrimSpace(c.Query("country")),
		ProgramLevel: strings.TrimSpace(c.Query("programLevel")),
		Department:   strings.TrimSpace(c.Query("department")),
		MinRanking:   q.intPtr("minRanking"),
		MaxRanking:   q.intPtr("maxRanking"),
		MinTuition:   q.floatPtr("minTuition"),
		MaxTuition:   q.floatPtr("maxTuition"),
	}
	if q.bad != "" {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid query parameter: "+q.bad)
	}

	resp, err := h.catalog.SearchUniversities(c.UserContext(), filter, c.QueryInt("page", services.DefaultPage), c.QueryInt("limit", services.DefaultLimit))
	if err != nil {
		return serverError(c, "failed to search universities", err)
	}
	return c.JSON(resp)
}

func (h *CatalogHandler) GetUniversity(c *fiber.Ctx) error {
	university, err := h.catalog.GetUniversity(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "University not found")
		}
		return serverError(c, "failed to load university", err)
	}
	return c.JSON(fiber.Map{"success": true, "university": university})
}

func (h *CatalogHandler) GetUniversityPrograms(c *fiber.Ctx) error {
	programs, err := h.catalog.GetUniversityPrograms(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "University not found")
		}
		return serverError(c, "failed to load programs", err)
	}
	return c.JSON(fiber.Map{"success": true, "programs": programs})
}

func (h *CatalogHandler) ListScholarships(c *fiber.Ctx) error {
	resp, err := h.catalog.ListScholarships(c.UserContext(), c.QueryInt("page", services.DefaultPage), c.QueryInt("limit", services.DefaultLimit))
	if err != nil {
		return serverError(c, "failed to list scholarships", err)
	}
	return c.JSON(resp)
}

func (h *CatalogHandler) SearchScholarships(c *fiber.Ctx) error {
	q := queryReader{c: c}
	filter := repository.ScholarshipFilter{
		Name:          strings.TrimSpace(c.Query("name")),
		Provider:      strings.TrimSpace(c.Query("provider")),
		Type:          strings.TrimSpace(c.Query("type")),
		Currency:      strings.TrimSpace(c.Query("currency")),
		Nationality:   strings.TrimSpace(c.Query("nationality")),
		AcademicLevel: strings.TrimSpace(c.Query("academicLevel")),
		Field:         strings.TrimSpace(c.Query("field")),
		MinAmount:     q.floatPtr("minAmount"),
		MaxAmount:     q.floatPtr("maxAmount"),
	}
	if q.bad != "" {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid query parameter: "+q.bad)
	}

	resp, err := h.catalog.SearchScholarships(c.UserContext(), filter, c.QueryInt("page", services.DefaultPage), c.QueryInt("limit", services.DefaultLimit))
	if err != nil {
		return serverError(c, "failed to search scholarships", err)
	}
	return c.JSON(resp)
}

func (h *CatalogHandler) GetScholarship(c *fiber.Ctx) error {
	scholarship, err := h.catalog.GetScholarship(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "Scholarship not found")
		}
		return serverError(c, "failed to load scholarship", err)
	}
	return c.JSON(fiber.Map{"success": true, "scholarship": scholarship})
}

func (h *CatalogHandler) EligibleScholarships(c *fiber.Ctx) error {
	var req dto.EligibilityRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badBody(c)
		}
	}

	scholarships, err := h.catalog.EligibleScholarships(c.UserContext(), &req)
	if err != nil {
		return serverError(c, "failed to find eligible scholarships", err)
	}
	return c.JSON(dto.ScholarshipListResponse{Success: true, Scholarships: scholarships})
}

// queryReader parses optional numeric query parameters and remembers the
// first one that failed to parse.
type queryReader struct {
	c   *fiber.Ctx
	bad string
}

func (q *queryReader) intPtr(key string) *int {
	raw := strings.TrimSpace(q.c.Query(key))
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		q.fail(key)
		return nil
	}
	return &v
}

func (q *queryReader) floatPtr(key string) *float64 {
	raw := strings.TrimSpace(q.c.Query(key))
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		q.fail(key)
		return nil
	}
	return &v
}

func (q *queryReader) fail(key string) {
	if q.bad == "" {
		q.bad = key
	}
}
