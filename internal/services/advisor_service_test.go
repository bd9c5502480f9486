package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCompletionServer(t *testing.T, status int, body string, seen *llmRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		if seen != nil {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(seen))
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestAdvisor(url string) *AdvisorService {
	return NewAdvisorService(AdvisorConfig{APIURL: url, APIKey: "test-key", Model: "test-model"})
}

func TestAdvisor_ChatReturnsCompletionVerbatim(t *testing.T) {
	var seen llmRequest
	srv := newCompletionServer(t, http.StatusOK, `{"choices":[{"message":{"content":"  Apply early.\n"}}]}`, &seen)

	got := newTestAdvisor(srv.URL).Chat(context.Background(), "When should I apply?", json.RawMessage(`{"page": "home"}`))
	assert.Equal(t, "  Apply early.\n", got)

	assert.Equal(t, "test-model", seen.Model)
	require.Len(t, seen.Messages, 2)
	assert.Equal(t, "system", seen.Messages[0].Role)
	assert.Equal(t, advisorSystemPrompt, seen.Messages[0].Content)
	assert.Equal(t, "user", seen.Messages[1].Role)
	assert.Contains(t, seen.Messages[1].Content, `"When should I apply?"`)
	assert.Contains(t, seen.Messages[1].Content, `{"page":"home"}`)
}

func TestAdvisor_FallbacksByCategory(t *testing.T) {
	srv := newCompletionServer(t, http.StatusInternalServerError, `{"error":"down"}`, nil)
	advisor := newTestAdvisor(srv.URL)
	ctx := context.Background()
	profile := json.RawMessage(`{"gpa":3.5}`)

	assert.Equal(t, FallbackReply(CategoryGeneral), advisor.Chat(ctx, "hi", nil))
	assert.Equal(t, FallbackReply(CategoryProfile), advisor.AnalyzeProfile(ctx, profile))
	assert.Equal(t, FallbackReply(CategoryUniversity), advisor.MatchUniversities(ctx, profile, json.RawMessage(`[]`)))
	assert.Equal(t, FallbackReply(CategoryScholarship), advisor.MatchScholarships(ctx, profile, json.RawMessage(`[]`)))
	assert.Equal(t, FallbackReply(CategoryGeneral), advisor.GenerateTimeline(ctx, profile, nil))
	assert.Equal(t, FallbackReply(CategoryGeneral), advisor.GenerateVisaGuidance(ctx, profile))
	assert.Equal(t, FallbackReply(CategoryUniversity), advisor.EnhanceDocument(ctx, "draft", "SOP", json.RawMessage(`{"program":"MSc AI"}`)))
	assert.Equal(t, FallbackReply(CategoryGeneral), advisor.GenerateCulturalGuidance(ctx, "Kenya", "Canada", nil))
	assert.Equal(t, FallbackReply(CategoryGeneral), advisor.MatchCareers(ctx, profile, nil))
}

func TestAdvisor_MalformedResponsesFallBack(t *testing.T) {
	for name, body := range map[string]string{
		"empty choices": `{"choices":[]}`,
		"not json":      `<html>oops</html>`,
	} {
		t.Run(name, func(t *testing.T) {
			srv := newCompletionServer(t, http.StatusOK, body, nil)
			assert.Equal(t, FallbackReply(CategoryGeneral), newTestAdvisor(srv.URL).Chat(context.Background(), "hi", nil))
		})
	}
}

func TestAdvisor_UnreachableEndpointFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	assert.Equal(t, FallbackReply(CategoryGeneral), newTestAdvisor(url).Chat(context.Background(), "hi", nil))
}

func TestAdvisor_TemplatesEmbedInputs(t *testing.T) {
	var seen llmRequest
	srv := newCompletionServer(t, http.StatusOK, `{"choices":[{"message":{"content":"ok"}}]}`, &seen)
	advisor := newTestAdvisor(srv.URL)
	ctx := context.Background()

	advisor.GenerateCulturalGuidance(ctx, "Kenya", "Germany", []string{"football"})
	assert.Contains(t, seen.Messages[1].Content, "a student from Kenya studying in Germany")
	assert.Contains(t, seen.Messages[1].Content, `{"interests":["football"]}`)

	advisor.MatchCareers(ctx, json.RawMessage(`{"industry":"fintech"}`), json.RawMessage(`[]`))
	assert.Contains(t, seen.Messages[1].Content, "with feedback for fintech.")

	advisor.MatchCareers(ctx, json.RawMessage(`{}`), nil)
	assert.Contains(t, seen.Messages[1].Content, "with feedback for their industry.")

	advisor.EnhanceDocument(ctx, "I love CS", "Statement of Purpose", json.RawMessage(`{"program":"MSc AI"}`))
	assert.Contains(t, seen.Messages[1].Content, `Analyze this Statement of Purpose draft "I love CS" for a MSc AI application.`)
}

func TestFallbackReplyUnknownCategory(t *testing.T) {
	assert.Equal(t, FallbackReply(CategoryGeneral), FallbackReply(Category(42)))
}
