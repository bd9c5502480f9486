package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

var ValidScholarshipTypes = map[string]bool{
	"university": true, "government": true, "private": true, "foundation": true, "corporate": true,
}

type Scholarship struct {
	ID                 uuid.UUID                              `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name               string                                 `gorm:"not null;size:255;index" json:"name" validate:"required"`
	Provider           string                                 `gorm:"not null;size:255" json:"provider" validate:"required"`
	Type               string                                 `gorm:"not null;size:20;index" json:"type" validate:"required,oneof=university government private foundation corporate"`
	Amount             float64                                `gorm:"not null;index" json:"amount" validate:"gte=0"`
	Currency           string                                 `gorm:"not null;size:10;default:'USD'" json:"currency"`
	Description        string                                 `gorm:"type:text;not null" json:"description" validate:"required"`
	Eligibility        datatypes.JSONType[Eligibility]        `gorm:"type:jsonb" json:"eligibility"`
	ApplicationProcess datatypes.JSONType[ApplicationProcess] `gorm:"type:jsonb" json:"applicationProcess"`
	RenewalCriteria    *string                                `gorm:"type:text" json:"renewalCriteria,omitempty"`
	SuccessRate        *float64                               `json:"successRate,omitempty"`
	CreatedAt          time.Time                              `json:"createdAt"`
	UpdatedAt          time.Time                              `json:"updatedAt"`
}

type Eligibility struct {
	Nationalities        []string              `json:"nationalities"`
	AcademicLevels       []string              `json:"academicLevels"`
	Fields               []string              `json:"fields"`
	MinimumGPA           *float64              `json:"minimumGPA,omitempty"`
	LanguageRequirements *LanguageRequirements `json:"languageRequirements,omitempty"`
	OtherCriteria        []string              `json:"otherCriteria"`
}

type LanguageRequirements struct {
	TOEFL *float64 `json:"toefl,omitempty"`
	IELTS *float64 `json:"ielts,omitempty"`
}

type ApplicationProcess struct {
	Deadline          time.Time `json:"deadline"`
	RequiredDocuments []string  `json:"requiredDocuments"`
	ApplicationURL    string    `json:"applicationUrl"`
	ApplicationFee    *float64  `json:"applicationFee,omitempty"`
}
