package dto

import "github.com/ahmetcoskunkizilkaya/edujiin-api/internal/models"

type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int   `json:"pages"`
}

type UniversityListResponse struct {
	Success      bool                `json:"success"`
	Universities []models.University `json:"universities"`
	Pagination   Pagination          `json:"pagination"`
}

type ScholarshipListResponse struct {
	Success      bool                 `json:"success"`
	Scholarships []models.Scholarship `json:"scholarships"`
	Pagination   *Pagination          `json:"pagination,omitempty"`
}

// EligibilityRequest is the body of POST /api/scholarships/eligible.
type EligibilityRequest struct {
	Nationality   string   `json:"nationality"`
	AcademicLevel string   `json:"academicLevel"`
	Fields        []string `json:"fields"`
	GPA           *float64 `json:"gpa"`
	TOEFLScore    *float64 `json:"toeflScore"`
	IELTSScore    *float64 `json:"ieltsScore"`
}
