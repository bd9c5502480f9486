package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/ahmetcoskunkizilkaya/edujiin-api/internal/cache"
	"github.com/ahmetcoskunkizilkaya/edujiin-api/internal/dto"
	"github.com/ahmetcoskunkizilkaya/edujiin-api/internal/models"
	"github.com/ahmetcoskunkizilkaya/edujiin-api/internal/repository"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

var ErrNotFound = errors.New("not found")

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
	// MaxPage keeps (page-1)*limit well inside the int32 range.
	MaxPage      = math.MaxInt32 / MaxLimit

	universityCachePrefix  = "catalog:universities:"
	scholarshipCachePrefix = "catalog:scholarships:"
)

// CatalogService serves the read-mostly university and scholarship catalogs.
// Get-by-id and unfiltered list pages are cached read-through.
type CatalogService struct {
	universities repository.UniversityRepository
	scholarships repository.ScholarshipRepository
	cache        cache.Cache
	ttl          time.Duration
}

func NewCatalogService(
	universities repository.UniversityRepository,
	scholarships repository.ScholarshipRepository,
	c cache.Cache,
	ttl time.Duration,
) *CatalogService {
	if c == nil {
		c = cache.Noop{}
	}
	return &CatalogService{universities: universities, scholarships: scholarships, cache: c, ttl: ttl}
}

// NormalizePage applies the paging defaults and bounds. Pages past MaxPage
// are clamped so the offset never overflows.
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if page > MaxPage {
		page = MaxPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

func paginate(total int64, page, limit int) dto.Pagination {
	return dto.Pagination{
		Total: total,
		Page:  page,
		Limit: limit,
		Pages: int((total + int64(limit) - 1) / int64(limit)),
	}
}

func (s *CatalogService) ListUniversities(ctx context.Context, page, limit int) (*dto.UniversityListResponse, error) {
	page, limit = NormalizePage(page, limit)
	key := fmt.Sprintf("%slist:%d:%d", universityCachePrefix, page, limit)

	var cached dto.UniversityListResponse
	if s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	resp, err := s.searchUniversities(ctx, repository.UniversityFilter{}, page, limit)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, key, resp)
	return resp, nil
}

func (s *CatalogService) SearchUniversities(ctx context.Context, filter repository.UniversityFilter, page, limit int) (*dto.UniversityListResponse, error) {
	page, limit = NormalizePage(page, limit)
	return s.searchUniversities(ctx, filter, page, limit)
}

func (s *CatalogService) searchUniversities(ctx context.Context, filter repository.UniversityFilter, page, limit int) (*dto.UniversityListResponse, error) {
	universities, total, err := s.universities.List(ctx, filter, (page-1)*limit, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list universities: %w", err)
	}
	return &dto.UniversityListResponse{
		Success:      true,
		Universities: universities,
		Pagination:   paginate(total, page, limit),
	}, nil
}

// GetUniversity returns ErrNotFound for unknown ids and for ids that are not UUIDs.
func (s *CatalogService) GetUniversity(ctx context.Context, rawID string) (*models.University, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, ErrNotFound
	}

	key := universityCachePrefix + "id:" + id.String()
	var cached models.University
	if s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	university, err := s.universities.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load university: %w", err)
	}
	s.cacheSet(ctx, key, university)
	return university, nil
}

func (s *CatalogService) GetUniversityPrograms(ctx context.Context, rawID string) ([]models.Program, error) {
	university, err := s.GetUniversity(ctx, rawID)
	if err != nil {
		return nil, err
	}
	return nonNil([]models.Program(university.Programs)), nil
}

func (s *CatalogService) CreateUniversity(ctx context.Context, u *models.University) error {
	if err := validateStruct(u); err != nil {
		return err
	}
	u.ID = uuid.New()
	u.Programs = nonNil(u.Programs)
	for i := range u.Programs {
		u.Programs[i].FacultyInfo = nonNil(u.Programs[i].FacultyInfo)
		u.Programs[i].CareerOutcomes = nonNil(u.Programs[i].CareerOutcomes)
	}

	if err := s.universities.Create(ctx, u); err != nil {
		return fmt.Errorf("failed to create university: %w", err)
	}
	s.invalidate(ctx, universityCachePrefix)
	return nil
}

func (s *CatalogService) ListScholarships(ctx context.Context, page, limit int) (*dto.ScholarshipListResponse, error) {
	page, limit = NormalizePage(page, limit)
	key := fmt.Sprintf("%slist:%d:%d", scholarshipCachePrefix, page, limit)

	var cached dto.ScholarshipListResponse
	if s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	resp, err := s.searchScholarships(ctx, repository.ScholarshipFilter{}, page, limit)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, key, resp)
	return resp, nil
}

func (s *CatalogService) SearchScholarships(ctx context.Context, filter repository.ScholarshipFilter, page, limit int) (*dto.ScholarshipListResponse, error) {
	page, limit = NormalizePage(page, limit)
	return s.searchScholarships(ctx, filter, page, limit)
}

func (s *CatalogService) searchScholarships(ctx context.Context, filter repository.ScholarshipFilter, page, limit int) (*dto.ScholarshipListResponse, error) {
	scholarships, total, err := s.scholarships.List(ctx, filter, (page-1)*limit, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list scholarships: %w", err)
	}
	pagination := paginate(total, page, limit)
	return &dto.ScholarshipListResponse{
		Success:      true,
		Scholarships: scholarships,
		Pagination:   &pagination,
	}, nil
}

func (s *CatalogService) GetScholarship(ctx context.Context, rawID string) (*models.Scholarship, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, ErrNotFound
	}

	key := scholarshipCachePrefix + "id:" + id.String()
	var cached models.Scholarship
	if s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	scholarship, err := s.scholarships.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load scholarship: %w", err)
	}
	s.cacheSet(ctx, key, scholarship)
	return scholarship, nil
}

// EligibleScholarships returns every scholarship the described student
// qualifies for, largest amount first.
func (s *CatalogService) EligibleScholarships(ctx context.Context, req *dto.EligibilityRequest) ([]models.Scholarship, error) {
	scholarships, err := s.scholarships.FindEligible(ctx, repository.EligibilityCriteria{
		Nationality:   req.Nationality,
		AcademicLevel: req.AcademicLevel,
		Fields:        req.Fields,
		GPA:           req.GPA,
		TOEFLScore:    req.TOEFLScore,
		IELTSScore:    req.IELTSScore,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find eligible scholarships: %w", err)
	}
	return scholarships, nil
}

func (s *CatalogService) CreateScholarship(ctx context.Context, sc *models.Scholarship) error {
	if sc.Currency == "" {
		sc.Currency = "USD"
	}
	if err := validateStruct(sc); err != nil {
		return err
	}
	sc.ID = uuid.New()

	el := sc.Eligibility.Data()
	el.Nationalities = nonNil(el.Nationalities)
	el.AcademicLevels = nonNil(el.AcademicLevels)
	el.Fields = nonNil(el.Fields)
	el.OtherCriteria = nonNil(el.OtherCriteria)
	sc.Eligibility = datatypes.NewJSONType(el)

	if err := s.scholarships.Create(ctx, sc); err != nil {
		return fmt.Errorf("failed to create scholarship: %w", err)
	}
	s.invalidate(ctx, scholarshipCachePrefix)
	return nil
}

func (s *CatalogService) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	found, err := s.cache.GetJSON(ctx, key, dest)
	if err != nil {
		slog.Warn("catalog cache read failed", "key", key, "error", err)
		return false
	}
	return found
}

func (s *CatalogService) cacheSet(ctx context.Context, key string, value interface{}) {
	if err := s.cache.SetJSON(ctx, key, value, s.ttl); err != nil {
		slog.Warn("catalog cache write failed", "key", key, "error", err)
	}
}

func (s *CatalogService) invalidate(ctx context.Context, prefix string) {
	if err := s.cache.DeletePrefix(ctx, prefix); err != nil {
		slog.Warn("catalog cache invalidation failed", "prefix", prefix, "error", err)
	}
}
