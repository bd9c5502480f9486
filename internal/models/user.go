package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// User is a student account. Nested profile sections are stored as JSONB.
type User struct {
	ID               uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email            string    `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Password         string    `gorm:"not null" json:"-"`
	FirstName        string    `gorm:"size:100;not null" json:"firstName"`
	LastName         string    `gorm:"size:100;not null" json:"lastName"`
	ProfileCompleted bool      `gorm:"default:false" json:"profileCompleted"`

	AcademicRecords   datatypes.JSONType[AcademicRecords]  `gorm:"type:jsonb" json:"academicRecords"`
	Extracurricular   datatypes.JSONType[Extracurricular]  `gorm:"type:jsonb" json:"extracurricular"`
	ResearchInterests datatypes.JSONSlice[string]          `gorm:"type:jsonb" json:"researchInterests"`
	Publications      datatypes.JSONSlice[string]          `gorm:"type:jsonb" json:"publications"`
	WorkExperience    datatypes.JSONSlice[WorkExperience]  `gorm:"type:jsonb" json:"workExperience"`
	Skills            datatypes.JSONSlice[string]          `gorm:"type:jsonb" json:"skills"`
	Preferences       datatypes.JSONType[Preferences]      `gorm:"type:jsonb" json:"preferences"`
	FamilyDetails     *datatypes.JSONType[FamilyDetails]   `gorm:"type:jsonb" json:"familyDetails,omitempty"`
	Documents         datatypes.JSONSlice[DocumentRecord]  `gorm:"type:jsonb" json:"documents"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type AcademicRecords struct {
	GPA         *float64 `json:"gpa,omitempty"`
	TOEFLScore  *float64 `json:"toeflScore,omitempty"`
	IELTSScore  *float64 `json:"ieltsScore,omitempty"`
	GREScore    *float64 `json:"greScore,omitempty"`
	SATScore    *float64 `json:"satScore,omitempty"`
	Transcripts []string `json:"transcripts"`
}

type Extracurricular struct {
	Activities   []string `json:"activities"`
	Achievements []string `json:"achievements"`
	Awards       []string `json:"awards"`
}

type WorkExperience struct {
	Position    string     `json:"position"`
	Company     string     `json:"company"`
	StartDate   time.Time  `json:"startDate"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	Description string     `json:"description"`
}

type Preferences struct {
	Budget       *float64 `json:"budget,omitempty"`
	Countries    []string `json:"countries"`
	ProgramTypes []string `json:"programTypes"`
	CareerGoals  []string `json:"careerGoals"`
}

type FamilyDetails struct {
	SpouseEmployment  string `json:"spouseEmployment,omitempty"`
	ChildrenSchooling string `json:"childrenSchooling,omitempty"`
}

// DocumentRecord is the metadata a user keeps about an uploaded document.
type DocumentRecord struct {
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	Path       string    `json:"path"`
	UploadDate time.Time `json:"uploadDate"`
	Version    int       `json:"version"`
}

// HasCompleteProfile reports whether the profile carries a GPA, at least one
// preferred country and at least one program type.
func (u *User) HasCompleteProfile() bool {
	prefs := u.Preferences.Data()
	return u.AcademicRecords.Data().GPA != nil &&
		len(prefs.Countries) > 0 &&
		len(prefs.ProgramTypes) > 0
}
