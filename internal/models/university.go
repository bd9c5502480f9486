package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Program levels shared by universities and scholarship eligibility.
const (
	LevelUndergraduate = "Undergraduate"
	LevelMasters       = "Masters"
	LevelPhD           = "PhD"
	LevelProfessional  = "Professional"
)

var ValidProgramLevels = map[string]bool{
	LevelUndergraduate: true, LevelMasters: true, LevelPhD: true, LevelProfessional: true,
}

type University struct {
	ID                uuid.UUID                             `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name              string                                `gorm:"not null;size:255;index" json:"name" validate:"required"`
	Country           string                                `gorm:"not null;size:100;index" json:"country" validate:"required"`
	City              string                                `gorm:"not null;size:100" json:"city" validate:"required"`
	Ranking           int                                   `gorm:"index" json:"ranking" validate:"gte=0"`
	Programs          datatypes.JSONSlice[Program]          `gorm:"type:jsonb" json:"programs" validate:"dive"`
	AdmissionCriteria datatypes.JSONType[AdmissionCriteria] `gorm:"type:jsonb" json:"admissionCriteria"`
	FinancialInfo     datatypes.JSONType[FinancialInfo]     `gorm:"type:jsonb" json:"financialInfo"`
	Location          datatypes.JSONType[Location]          `gorm:"type:jsonb" json:"location"`
	CreatedAt         time.Time                             `json:"createdAt"`
	UpdatedAt         time.Time                             `json:"updatedAt"`
}

type Program struct {
	Name                  string   `json:"name" validate:"required"`
	Level                 string   `json:"level" validate:"required,oneof=Undergraduate Masters PhD Professional"`
	Department            string   `json:"department" validate:"required"`
	Duration              float64  `json:"duration" validate:"gt=0"`
	Tuition               float64  `json:"tuition" validate:"gte=0"`
	GPARequirement        *float64 `json:"gpaRequirement,omitempty"`
	TOEFLRequirement      *float64 `json:"toeflRequirement,omitempty"`
	IELTSRequirement      *float64 `json:"ieltsRequirement,omitempty"`
	GRERequirement        *float64 `json:"greRequirement,omitempty"`
	SATRequirement        *float64 `json:"satRequirement,omitempty"`
	ResearchOpportunities bool     `json:"researchOpportunities"`
	FacultyInfo           []string `json:"facultyInfo"`
	CareerOutcomes        []string `json:"careerOutcomes"`
}

type AdmissionCriteria struct {
	AverageGPA        float64  `json:"averageGPA"`
	AcceptanceRate    float64  `json:"acceptanceRate"`
	ApplicationFee    float64  `json:"applicationFee"`
	RequiredDocuments []string `json:"requiredDocuments"`
}

type FinancialInfo struct {
	AverageCostOfLiving   float64 `json:"averageCostOfLiving"`
	ScholarshipsAvailable bool    `json:"scholarshipsAvailable"`
	WorkStudyOptions      bool    `json:"workStudyOptions"`
}

// Location holds [longitude, latitude] plus address details.
type Location struct {
	Coordinates [2]float64 `json:"coordinates"`
	Address     string     `json:"address"`
	CampusSize  string     `json:"campusSize"`
}
