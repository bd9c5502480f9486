package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/ahmetcoskunkizilkaya/edujiin-api/internal/cache"
	"github.com/ahmetcoskunkizilkaya/edujiin-api/internal/config"
	"github.com/ahmetcoskunkizilkaya/edujiin-api/internal/database"
	"github.com/ahmetcoskunkizilkaya/edujiin-api/internal/logging"
	"github.com/ahmetcoskunkizilkaya/edujiin-api/internal/models"
	"github.com/ahmetcoskunkizilkaya/edujiin-api/internal/repository"
	"github.com/ahmetcoskunkizilkaya/edujiin-api/internal/services"
)

// catalogFile is the on-disk seed format.
type catalogFile struct {
	Universities []models.University  `json:"universities"`
	Scholarships []models.Scholarship `json:"scholarships"`
}

type catalogWriter interface {
	CreateUniversity(ctx context.Context, u *models.University) error
	CreateScholarship(ctx context.Context, sc *models.Scholarship) error
}

func main() {
	file := flag.String("file", "seed/catalog.json", "path to the catalog seed file")
	flag.Parse()

	logging.Setup()
	cfg := config.Load()

	data, err := loadCatalog(*file)
	if err != nil {
		slog.Error("failed to read seed file", "file", *file, "error", err)
		os.Exit(1)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// Cached list pages are dropped after seeding so the API sees new rows.
	var catalogCache cache.Cache = cache.Noop{}
	if cfg.RedisURL != "" {
		if rc, err := cache.NewRedis(context.Background(), cfg.RedisURL); err == nil {
			catalogCache = rc
			defer rc.Close()
		}
	}

	catalog := services.NewCatalogService(
		repository.NewUniversityRepository(db),
		repository.NewScholarshipRepository(db),
		catalogCache,
		cfg.CacheTTL,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	universities, scholarships, err := seedCatalog(ctx, catalog, data)
	if err != nil {
		slog.Error("seeding failed", "error", err, "universities", universities, "scholarships", scholarships)
		os.Exit(1)
	}
	slog.Info("catalog seeded", "universities", universities, "scholarships", scholarships)
}

func loadCatalog(path string) (*catalogFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var data catalogFile
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("invalid seed JSON: %w", err)
	}
	return &data, nil
}

// seedCatalog inserts every entry through the catalog service so the same
// validation applies as for the admin API. It stops at the first failure.
func seedCatalog(ctx context.Context, w catalogWriter, data *catalogFile) (int, int, error) {
	var universities, scholarships int
	for i := range data.Universities {
		if err := w.CreateUniversity(ctx, &data.Universities[i]); err != nil {
			return universities, scholarships, fmt.Errorf("university %d (%s): %w", i, data.Universities[i].Name, err)
		}
		universities++
	}
	for i := range data.Scholarships {
		if err := w.CreateScholarship(ctx, &data.Scholarships[i]); err != nil {
			return universities, scholarships, fmt.Errorf("scholarship %d (%s): %w", i, data.Scholarships[i].Name, err)
		}
		scholarships++
	}
	return universities, scholarships, nil
}
