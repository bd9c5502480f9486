package dto

import (
	"github.com/ahmetcoskunkizilkaya/edujiin-api/internal/models"
	"github.com/google/uuid"
)

type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type PasswordUpdateRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
}

type AuthResponse struct {
	Success bool         `json:"success"`
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
}

// UserResponse is the public view of an account returned by register and login.
type UserResponse struct {
	ID               uuid.UUID `json:"id"`
	Email            string    `json:"email"`
	FirstName        string    `json:"firstName"`
	LastName         string    `json:"lastName"`
	ProfileCompleted bool      `json:"profileCompleted"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:               u.ID,
		Email:            u.Email,
		FirstName:        u.FirstName,
		LastName:         u.LastName,
		ProfileCompleted: u.ProfileCompleted,
	}
}

// ProfileUpdateRequest carries the sections a client wants to replace. A nil
// field leaves the stored section untouched. Email and password keys in the
// body have no field here and are dropped by the decoder.
type ProfileUpdateRequest struct {
	FirstName         *string                  `json:"firstName"`
	LastName          *string                  `json:"lastName"`
	AcademicRecords   *models.AcademicRecords  `json:"academicRecords"`
	Extracurricular   *models.Extracurricular  `json:"extracurricular"`
	ResearchInterests *[]string                `json:"researchInterests"`
	Publications      *[]string                `json:"publications"`
	WorkExperience    *[]models.WorkExperience `json:"workExperience"`
	Skills            *[]string                `json:"skills"`
	Preferences       *models.Preferences      `json:"preferences"`
	FamilyDetails     *models.FamilyDetails    `json:"familyDetails"`
	Documents         *[]models.DocumentRecord `json:"documents"`
}

type UserEnvelope struct {
	Success bool         `json:"success"`
	User    *models.User `json:"user"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

type HealthResponse struct {
	Success   bool   `json:"success"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
	Cache     string `json:"cache"`
}
