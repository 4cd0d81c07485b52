package llm

import (
	"context"
	"strings"
)

// MockClient returns canned responses so the service can run without a
// model account (LLM_PROVIDER=mock).
type MockClient struct{}

func NewMockClient() *MockClient { return &MockClient{} }

func (MockClient) Generate(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if strings.Contains(prompt, "comma-separated") {
		return "communication, problem solving, teamwork, system design, ownership", nil
	}
	return "```json\n" + mockAnalysis + "\n```", nil
}

const mockAnalysis = `{
  "overall_summary": "The candidate answered clearly and stayed engaged, with room to tighten longer answers.",
  "participants": {
    "speaker_1": {
      "name": "Interviewer",
      "sentiment": "Neutral",
      "tone": "Professional",
      "confidence_score": 0.8,
      "clarity_score": 0.85,
      "empathy_score": 0.7,
      "engagement_score": 0.75,
      "key_points": ["Asked about recent projects"],
      "strengths": ["Clear questions"],
      "improvements": ["Follow up on vague answers"],
      "speaking_pace": "Moderate",
      "communication_quality": "Good"
    },
    "speaker_2": {
      "name": "Candidate",
      "sentiment": "Positive",
      "tone": "Enthusiastic",
      "confidence_score": 0.7,
      "clarity_score": 0.65,
      "empathy_score": 0.6,
      "engagement_score": 0.8,
      "key_points": ["Led a migration project", "Enjoys mentoring"],
      "strengths": ["Concrete examples"],
      "improvements": ["Reduce filler words", "Structure answers with STAR"],
      "speaking_pace": "Moderate",
      "communication_quality": "Good"
    }
  },
  "sentiment_trend": [
    {"segment": "First 25%", "sentiment": "Neutral", "confidence": 0.6},
    {"segment": "Second 25%", "sentiment": "Positive", "confidence": 0.7},
    {"segment": "Third 25%", "sentiment": "Positive", "confidence": 0.75},
    {"segment": "Final 25%", "sentiment": "Positive", "confidence": 0.8}
  ],
  "topics_discussed": ["Background", "Projects", "Teamwork"],
  "keywords": ["migration", "mentoring", "ownership"],
  "overall_assessment": {
    "communication_quality": "Good",
    "strengths": ["Relevant experience"],
    "critical_improvements": ["Answer structure"],
    "recommendation": "Proceed to the next round"
  },
  "detailed_feedback": {
    "structure": "Answers had a clear beginning but drifted at the end.",
    "conciseness": "Some answers ran long.",
    "technical_depth": "Adequate for the role.",
    "interpersonal_skills": "Warm and engaged."
  }
}`
