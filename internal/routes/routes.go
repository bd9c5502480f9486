package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/edujiin-api/internal/config"
	"github.com/ahmetcoskunkizilkaya/edujiin-api/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/edujiin-api/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

type Handlers struct {
	Health   *handlers.HealthHandler
	Users    *handlers.UserHandler
	Catalog  *handlers.CatalogHandler
	Document *handlers.DocumentHandler
	AI       *handlers.AIHandler
	Admin    *handlers.AdminHandler
}

func Setup(app *fiber.App, cfg *config.Config, h Handlers, admins middleware.EmailLookup) {
	api := app.Group("/api")

	// General API rate limiter: 120 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               120,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", h.Health.Check)

	protected := middleware.JWTProtected(cfg)

	// Accounts. Register/login get a stricter limit.
	users := api.Group("/users")
	credentialLimit := limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})
	users.Post("/register", credentialLimit, h.Users.Register)
	users.Post("/login", credentialLimit, h.Users.Login)
	users.Get("/profile", protected, h.Users.GetProfile)
	users.Put("/profile", protected, h.Users.UpdateProfile)
	users.Put("/password", protected, credentialLimit, h.Users.UpdatePassword)

	// Catalog (public). Search is registered before /:id.
	universities := api.Group("/universities")
	universities.Get("/", h.Catalog.ListUniversities)
	universities.Get("/search", h.Catalog.SearchUniversities)
	universities.Get("/:id", h.Catalog.GetUniversity)
	universities.Get("/:id/programs", h.Catalog.GetUniversityPrograms)

	scholarships := api.Group("/scholarships")
	scholarships.Get("/", h.Catalog.ListScholarships)
	scholarships.Get("/search", h.Catalog.SearchScholarships)
	scholarships.Post("/eligible", h.Catalog.EligibleScholarships)
	scholarships.Get("/:id", h.Catalog.GetScholarship)

	// Documents, scoped to the token's account.
	documents := api.Group("/documents", protected)
	documents.Post("/upload", h.Document.Upload)
	documents.Get("/:documentId", h.Document.Get)
	documents.Delete("/:documentId", h.Document.Delete)

	// Advisory gateway. Each call costs an upstream completion.
	ai := api.Group("/ai", protected, limiter.New(limiter.Config{
		Max:               20,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	ai.Post("/analyze-profile", h.AI.AnalyzeProfile)
	ai.Post("/match-universities", h.AI.MatchUniversities)
	ai.Post("/match-scholarships", h.AI.MatchScholarships)
	ai.Post("/generate-timeline", h.AI.GenerateTimeline)
	ai.Post("/enhance-document", h.AI.EnhanceDocument)
	ai.Post("/visa-guidance", h.AI.VisaGuidance)
	ai.Post("/cultural-guidance", h.AI.CulturalGuidance)
	ai.Post("/match-careers", h.AI.MatchCareers)
	ai.Post("/chat", h.AI.Chat)

	// Catalog administration: X-Admin-Token or an admin account's bearer token.
	admin := api.Group("/admin", middleware.JWTOptional(cfg), middleware.AdminRequired(cfg, admins))
	admin.Post("/universities", h.Admin.CreateUniversity)
	admin.Post("/scholarships", h.Admin.CreateScholarship)
}
