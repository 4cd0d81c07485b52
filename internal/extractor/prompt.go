package extractor

import (
	"fmt"
	"strings"

	"interview-insights-go/internal/types"
)

var toneInstructions = map[types.FeedbackTone]string{
	types.ToneProfessional: "Provide professional, objective feedback with constructive suggestions.",
	types.ToneEncouraging:  "Provide warm, encouraging feedback that highlights strengths while gently suggesting improvements.",
	types.ToneCritical:     "Provide detailed, critical analysis focusing on areas that need significant improvement.",
}

// ToneInstruction returns the phrasing for tone, falling back to Professional.
func ToneInstruction(tone types.FeedbackTone) string {
	if s, ok := toneInstructions[tone]; ok {
		return s
	}
	return toneInstructions[types.ToneProfessional]
}

// BuildAnalysisPrompt renders the instruction for the analysis call. It is
// pure; callers reject empty transcripts before calling it.
func BuildAnalysisPrompt(transcript string, cfg types.AnalysisConfig) string {
	cfg = cfg.WithDefaults()

	return fmt.Sprintf(`You are an expert interview analyst and communication coach.
Read the conversation transcript below and evaluate every speaker.

CONTEXT
- Domain: %s
- Round type: %s
- Feedback tone: %s

TRANSCRIPT
"""
%s
"""

Return ONLY a JSON object (no prose before or after) with exactly this structure:

%s

RULES
- Add one entry under "participants" per distinct speaker, keyed speaker_1, speaker_2, ... in order of first appearance.
- Every score is a number between 0.0 and 1.0.
- "sentiment" is one of Positive, Neutral, Negative.
- "speaking_pace" is one of Fast, Moderate, Slow.
- "sentiment_trend" has four entries covering the conversation in order: First 25%%, Second 25%%, Third 25%%, Final 25%%.
- Fill every key of "detailed_feedback"; use an empty string when there is nothing to say.
- Base every statement on the transcript. Do not invent facts.
`, cfg.Domain, cfg.RoundType, ToneInstruction(cfg.FeedbackTone), transcript, schemaTemplate)
}

// schemaTemplate is the output contract. Keys here match the json tags the
// parser reads.
var schemaTemplate = strings.TrimSpace(`
{
  "overall_summary": "2-3 sentence summary of the conversation",
  "participants": {
    "speaker_1": {
      "name": "speaker name or role",
      "sentiment": "Positive | Neutral | Negative",
      "tone": "e.g. Confident, Nervous, Friendly",
      "confidence_score": 0.0,
      "clarity_score": 0.0,
      "empathy_score": 0.0,
      "engagement_score": 0.0,
      "key_points": ["main point"],
      "strengths": ["strength"],
      "improvements": ["area to improve"],
      "filler_words_count": 0,
      "speaking_pace": "Fast | Moderate | Slow",
      "communication_quality": "Excellent | Good | Average | Poor"
    }
  },
  "sentiment_trend": [
    {"segment": "First 25%", "sentiment": "Neutral", "confidence": 0.0}
  ],
  "topics_discussed": ["topic"],
  "keywords": ["keyword"],
  "overall_assessment": {
    "communication_quality": "Excellent | Good | Average | Poor",
    "strengths": ["overall strength"],
    "critical_improvements": ["most important improvement"],
    "recommendation": "hiring or next-step recommendation"
  },
  "detailed_feedback": {
    "structure": "",
    "conciseness": "",
    "technical_depth": "",
    "interpersonal_skills": ""
  }
}`)
