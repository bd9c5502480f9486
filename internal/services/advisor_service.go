package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Category selects the canned reply used when the completion endpoint fails.
type Category int

const (
	CategoryGeneral Category = iota
	CategoryProfile
	CategoryUniversity
	CategoryScholarship
)

const advisorSystemPrompt = "You are an AI assistant for international students, providing accurate, helpful, and concise guidance."

var fallbackReplies = map[Category]string{
	CategoryProfile:     "Based on your profile, your academic achievements are strong. Consider enhancing your extracurricular activities, gaining relevant work experience, and improving your standardized test scores if applicable.",
	CategoryUniversity:  "Based on your profile, consider universities that match your academic strengths and career goals. Top universities typically require strong academic records and relevant extracurricular activities.",
	CategoryScholarship: "Look for scholarships that match your nationality, field of study, and academic achievements. Many scholarships also value leadership experience and community involvement.",
	CategoryGeneral:     "I apologize, but I cannot provide a detailed response at this moment. Please try again later or contact support for assistance.",
}

// FallbackReply returns the canned text for category.
func FallbackReply(category Category) string {
	if reply, ok := fallbackReplies[category]; ok {
		return reply
	}
	return fallbackReplies[CategoryGeneral]
}

type AdvisorConfig struct {
	APIURL  string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// AdvisorService builds advising prompts and sends them to an OpenAI-compatible
// chat completions endpoint. It never returns an error to callers: every
// upstream failure is replaced by a canned reply.
type AdvisorService struct {
	cfg    AdvisorConfig
	client *http.Client
}

func NewAdvisorService(cfg AdvisorConfig) *AdvisorService {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &AdvisorService{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

type llmRequest struct {
	Model    string       `json:"model"`
	Messages []llmMessage `json:"messages"`
}

type llmMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type llmResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends prompt as the user message and returns the first choice's
// content verbatim, or the fallback for category on any failure.
func (s *AdvisorService) Complete(ctx context.Context, category Category, prompt string) string {
	content, err := s.callProvider(ctx, prompt)
	if err != nil {
		slog.Warn("advisor completion failed, using fallback", "error", err, "category", int(category))
		return FallbackReply(category)
	}
	return content
}

func (s *AdvisorService) callProvider(ctx context.Context, prompt string) (string, error) {
	reqBody, err := json.Marshal(llmRequest{
		Model: s.cfg.Model,
		Messages: []llmMessage{
			{Role: "system", Content: advisorSystemPrompt},
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.APIURL, bytes.NewReader(reqBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API returned %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	var llmResp llmResponse
	if err := json.Unmarshal(body, &llmResp); err != nil {
		return "", err
	}
	if len(llmResp.Choices) == 0 {
		return "", fmt.Errorf("empty response from API")
	}
	return llmResp.Choices[0].Message.Content, nil
}

func (s *AdvisorService) AnalyzeProfile(ctx context.Context, profile json.RawMessage) string {
	prompt := fmt.Sprintf("Given this student profile %s, analyze academic and extracurricular strengths/weaknesses, and provide three actionable recommendations to improve university application competitiveness.",
		jsonText(profile))
	return s.Complete(ctx, CategoryProfile, prompt)
}

func (s *AdvisorService) MatchUniversities(ctx context.Context, profile, universities json.RawMessage) string {
	prompt := fmt.Sprintf("Search this university database %s for programs matching this student profile %s. Return top 10 programs with match scores (0-100) and admission probabilities based on historical patterns.",
		jsonText(universities), jsonText(profile))
	return s.Complete(ctx, CategoryUniversity, prompt)
}

func (s *AdvisorService) MatchScholarships(ctx context.Context, profile, scholarships json.RawMessage) string {
	prompt := fmt.Sprintf("Match this student profile %s with this scholarship database %s. Return top 5 scholarships with eligibility scores (0-100) and predicted success likelihood.",
		jsonText(profile), jsonText(scholarships))
	return s.Complete(ctx, CategoryScholarship, prompt)
}

func (s *AdvisorService) GenerateTimeline(ctx context.Context, profile, deadlines json.RawMessage) string {
	prompt := fmt.Sprintf("Given this student profile %s and deadlines %s, generate a prioritized application timeline with task recommendations.",
		jsonText(profile), jsonText(deadlines))
	return s.Complete(ctx, CategoryGeneral, prompt)
}

func (s *AdvisorService) EnhanceDocument(ctx context.Context, text, documentType string, programInfo json.RawMessage) string {
	var info struct {
		Program string `json:"program"`
	}
	_ = json.Unmarshal(programInfo, &info)
	prompt := fmt.Sprintf("Analyze this %s draft %q for a %s application. Suggest improvements for structure, clarity, and impact, and rephrase key sections to align with program requirements %s.",
		documentType, text, info.Program, jsonText(programInfo))
	return s.Complete(ctx, CategoryUniversity, prompt)
}

func (s *AdvisorService) GenerateVisaGuidance(ctx context.Context, studentInfo json.RawMessage) string {
	prompt := fmt.Sprintf("Generate a visa document checklist and 10 interview questions for a student %s applying for an F-1 visa, with feedback on sample responses.",
		jsonText(studentInfo))
	return s.Complete(ctx, CategoryGeneral, prompt)
}

func (s *AdvisorService) GenerateCulturalGuidance(ctx context.Context, origin, destination string, interests []string) string {
	if interests == nil {
		interests = []string{}
	}
	prompt := fmt.Sprintf("Provide cultural adaptation guidance for a student from %s studying in %s, including academic/social norms and three community recommendations based on interests %s.",
		origin, destination, mustJSON(map[string][]string{"interests": interests}))
	return s.Complete(ctx, CategoryGeneral, prompt)
}

func (s *AdvisorService) MatchCareers(ctx context.Context, studentInfo, jobs json.RawMessage) string {
	var info struct {
		Industry string `json:"industry"`
	}
	_ = json.Unmarshal(studentInfo, &info)
	industry := info.Industry
	if industry == "" {
		industry = "their industry"
	}
	prompt := fmt.Sprintf("Match this student %s with job opportunities %s and generate 10 interview questions with feedback for %s.",
		jsonText(studentInfo), jsonText(jobs), industry)
	return s.Complete(ctx, CategoryGeneral, prompt)
}

func (s *AdvisorService) Chat(ctx context.Context, query string, contextData json.RawMessage) string {
	prompt := fmt.Sprintf("Respond to this user query %q with accurate information based on platform data %s, maintaining a natural, concise tone.",
		query, jsonText(contextData))
	return s.Complete(ctx, CategoryGeneral, prompt)
}

// jsonText compacts raw JSON for embedding in a prompt. Missing values render
// as null.
func jsonText(raw json.RawMessage) string {
	if len(bytes.TrimSpace(raw)) == 0 {
		return "null"
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

func mustJSON(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(b)
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
