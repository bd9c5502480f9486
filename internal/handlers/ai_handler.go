package handlers

import (
	"encoding/json"

	"github.com/ahmetcoskunkizilkaya/edujiin-api/internal/dto"
	"github.com/ahmetcoskunkizilkaya/edujiin-api/internal/services"
	"github.com/gofiber/fiber/v2"
)

// AIHandler exposes the advisory operations. Upstream model failures are
// answered with a canned reply, so every parsed request gets a 200.
type AIHandler struct {
	advisor *services.AdvisorService
}

func NewAIHandler(advisor *services.AdvisorService) *AIHandler {
	return &AIHandler{advisor: advisor}
}

// rawBody returns a copy of the request body when it is valid JSON.
func rawBody(c *fiber.Ctx) (json.RawMessage, bool) {
	body := c.Body()
	if len(body) == 0 {
		return nil, true
	}
	if !json.Valid(body) {
		return nil, false
	}
	return append(json.RawMessage(nil), body...), true
}

func (h *AIHandler) AnalyzeProfile(c *fiber.Ctx) error {
	profile, ok := rawBody(c)
	if !ok {
		return badBody(c)
	}
	return c.JSON(fiber.Map{"success": true, "analysis": h.advisor.AnalyzeProfile(c.UserContext(), profile)})
}

func (h *AIHandler) MatchUniversities(c *fiber.Ctx) error {
	var req dto.MatchUniversitiesRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	return c.JSON(fiber.Map{"success": true, "matches": h.advisor.MatchUniversities(c.UserContext(), req.ProfileData, req.UniversityData)})
}

func (h *AIHandler) MatchScholarships(c *fiber.Ctx) error {
	var req dto.MatchScholarshipsRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	return c.JSON(fiber.Map{"success": true, "matches": h.advisor.MatchScholarships(c.UserContext(), req.ProfileData, req.ScholarshipData)})
}

func (h *AIHandler) GenerateTimeline(c *fiber.Ctx) error {
	var req dto.TimelineRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	return c.JSON(fiber.Map{"success": true, "timeline": h.advisor.GenerateTimeline(c.UserContext(), req.ProfileData, req.Deadlines)})
}

func (h *AIHandler) EnhanceDocument(c *fiber.Ctx) error {
	var req dto.EnhanceDocumentRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	enhanced := h.advisor.EnhanceDocument(c.UserContext(), req.DocumentText, req.DocumentType, req.ProgramInfo)
	return c.JSON(fiber.Map{"success": true, "enhancedDocument": enhanced})
}

func (h *AIHandler) VisaGuidance(c *fiber.Ctx) error {
	studentInfo, ok := rawBody(c)
	if !ok {
		return badBody(c)
	}
	return c.JSON(fiber.Map{"success": true, "visaGuidance": h.advisor.GenerateVisaGuidance(c.UserContext(), studentInfo)})
}

func (h *AIHandler) CulturalGuidance(c *fiber.Ctx) error {
	var req dto.CulturalGuidanceRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	guidance := h.advisor.GenerateCulturalGuidance(c.UserContext(), req.OriginCountry, req.DestinationCountry, req.Interests)
	return c.JSON(fiber.Map{"success": true, "culturalGuidance": guidance})
}

func (h *AIHandler) MatchCareers(c *fiber.Ctx) error {
	var req dto.MatchCareersRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	return c.JSON(fiber.Map{"success": true, "matches": h.advisor.MatchCareers(c.UserContext(), req.StudentInfo, req.JobOpportunities)})
}

func (h *AIHandler) Chat(c *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	return c.JSON(fiber.Map{"success": true, "response": h.advisor.Chat(c.UserContext(), req.Query, req.ContextData)})
}
