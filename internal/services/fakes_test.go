package services

import (
	"context"
	"sync"

	"github.com/ahmetcoskunkizilkaya/edujiin-api/internal/models"
	"github.com/ahmetcoskunkizilkaya/edujiin-api/internal/repository"
	"github.com/google/uuid"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]models.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	r.users[u.ID] = *u
	return nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.users[u.ID]
	if !ok {
		return repository.ErrNotFound
	}
	updated := *u
	updated.Email = stored.Email
	updated.Password = stored.Password
	r.users[u.ID] = updated
	return nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, id uuid.UUID, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Password = hash
	r.users[id] = u
	return nil
}

func (r *fakeUserRepo) stored(id uuid.UUID) models.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.users[id]
}

// fakeUniversityRepo pages over an in-memory slice and ignores filters.
type fakeUniversityRepo struct {
	mu           sync.Mutex
	universities []models.University
	listCalls    int
	findCalls    int
	lastFilter   repository.UniversityFilter
	lastOffset   int
}

func (r *fakeUniversityRepo) List(_ context.Context, filter repository.UniversityFilter, offset, limit int) ([]models.University, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listCalls++
	r.lastFilter = filter
	r.lastOffset = offset
	total := int64(len(r.universities))
	if offset >= len(r.universities) {
		return []models.University{}, total, nil
	}
	end := offset + limit
	if end > len(r.universities) {
		end = len(r.universities)
	}
	return append([]models.University(nil), r.universities[offset:end]...), total, nil
}

func (r *fakeUniversityRepo) FindByID(_ context.Context, id uuid.UUID) (*models.University, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.findCalls++
	for _, u := range r.universities {
		if u.ID == id {
			cp := u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUniversityRepo) Create(_ context.Context, u *models.University) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.universities = append(r.universities, *u)
	return nil
}

type fakeScholarshipRepo struct {
	mu           sync.Mutex
	scholarships []models.Scholarship
	lastCriteria repository.EligibilityCriteria
}

func (r *fakeScholarshipRepo) List(_ context.Context, _ repository.ScholarshipFilter, offset, limit int) ([]models.Scholarship, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := int64(len(r.scholarships))
	if offset >= len(r.scholarships) {
		return []models.Scholarship{}, total, nil
	}
	end := offset + limit
	if end > len(r.scholarships) {
		end = len(r.scholarships)
	}
	return append([]models.Scholarship(nil), r.scholarships[offset:end]...), total, nil
}

func (r *fakeScholarshipRepo) FindEligible(_ context.Context, c repository.EligibilityCriteria) ([]models.Scholarship, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastCriteria = c
	return append([]models.Scholarship(nil), r.scholarships...), nil
}

func (r *fakeScholarshipRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Scholarship, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.scholarships {
		if s.ID == id {
			cp := s
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeScholarshipRepo) Create(_ context.Context, s *models.Scholarship) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scholarships = append(r.scholarships, *s)
	return nil
}
