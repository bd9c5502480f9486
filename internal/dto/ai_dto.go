package dto

import "encoding/json"

// Advisory request bodies. Structured payloads are kept as raw JSON and passed
// through to the prompt templates unchanged.

type MatchUniversitiesRequest struct {
	ProfileData    json.RawMessage `json:"profileData"`
	UniversityData json.RawMessage `json:"universityData"`
}

type MatchScholarshipsRequest struct {
	ProfileData     json.RawMessage `json:"profileData"`
	ScholarshipData json.RawMessage `json:"scholarshipData"`
}

type TimelineRequest struct {
	ProfileData json.RawMessage `json:"profileData"`
	Deadlines   json.RawMessage `json:"deadlines"`
}

type EnhanceDocumentRequest struct {
	DocumentText string          `json:"documentText"`
	DocumentType string          `json:"documentType"`
	ProgramInfo  json.RawMessage `json:"programInfo"`
}

type CulturalGuidanceRequest struct {
	OriginCountry      string   `json:"originCountry"`
	DestinationCountry string   `json:"destinationCountry"`
	Interests          []string `json:"interests"`
}

type MatchCareersRequest struct {
	StudentInfo      json.RawMessage `json:"studentInfo"`
	JobOpportunities json.RawMessage `json:"jobOpportunities"`
}

type ChatRequest struct {
	Query       string          `json:"query"`
	ContextData json.RawMessage `json:"contextData"`
}
