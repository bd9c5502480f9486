package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ahmetcoskunkizilkaya/edujiin-api/internal/dto"
	"github.com/ahmetcoskunkizilkaya/edujiin-api/internal/models"
	"github.com/ahmetcoskunkizilkaya/edujiin-api/internal/repository"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ProfileService struct {
	users repository.UserRepository
}

func NewProfileService(users repository.UserRepository) *ProfileService {
	return &ProfileService{users: users}
}

func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return user, nil
}

// UpdateProfile replaces every section present in req and leaves the rest as
// stored. Once the merged profile is complete the completion flag is set and
// never cleared by later updates. Concurrent updates are last-write-wins.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.ProfileUpdateRequest) (*models.User, error) {
	if err := validateProfileUpdate(req); err != nil {
		return nil, err
	}

	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	applyProfileUpdate(user, req)
	if user.HasCompleteProfile() {
		user.ProfileCompleted = true
	}

	if err := s.users.UpdateProfile(ctx, user); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}

func validateProfileUpdate(req *dto.ProfileUpdateRequest) error {
	fields := map[string]string{}
	if req.FirstName != nil && strings.TrimSpace(*req.FirstName) == "" {
		fields["firstName"] = "is required"
	}
	if req.LastName != nil && strings.TrimSpace(*req.LastName) == "" {
		fields["lastName"] = "is required"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func applyProfileUpdate(u *models.User, req *dto.ProfileUpdateRequest) {
	if req.FirstName != nil {
		u.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		u.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.AcademicRecords != nil {
		u.AcademicRecords = datatypes.NewJSONType(*req.AcademicRecords)
	}
	if req.Extracurricular != nil {
		u.Extracurricular = datatypes.NewJSONType(*req.Extracurricular)
	}
	if req.ResearchInterests != nil {
		u.ResearchInterests = nonNil(*req.ResearchInterests)
	}
	if req.Publications != nil {
		u.Publications = nonNil(*req.Publications)
	}
	if req.WorkExperience != nil {
		u.WorkExperience = nonNil(*req.WorkExperience)
	}
	if req.Skills != nil {
		u.Skills = nonNil(*req.Skills)
	}
	if req.Preferences != nil {
		u.Preferences = datatypes.NewJSONType(*req.Preferences)
	}
	if req.FamilyDetails != nil {
		fd := datatypes.NewJSONType(*req.FamilyDetails)
		u.FamilyDetails = &fd
	}
	if req.Documents != nil {
		docs := nonNil(*req.Documents)
		for i := range docs {
			if docs[i].Version < 1 {
				docs[i].Version = 1
			}
		}
		u.Documents = docs
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
