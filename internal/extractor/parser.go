package extractor

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"interview-insights-go/internal/types"
)

type OutcomeKind int

const (
	Parsed OutcomeKind = iota
	FallbackUsed
)

func (k OutcomeKind) String() string {
	if k == Parsed {
		return "parsed"
	}
	return "fallback_used"
}

// Outcome is the result of parsing a model response. Both kinds carry a
// complete Analysis; FallbackUsed means quality is degraded and Cause says why.
type Outcome struct {
	Kind     OutcomeKind
	Analysis *types.Analysis
	Cause    error
}

func (o Outcome) Degraded() bool { return o.Kind == FallbackUsed }

var (
	errEmptyResponse = errors.New("model response is empty")
	errNotAnObject   = errors.New("model response JSON is not an object")
)

// ParseResponse isolates the JSON object in raw and decodes it field by
// field. Anything that cannot be parsed goes through Fallback; this function
// never fails.
func ParseResponse(raw, transcript string) Outcome {
	obj, err := isolateObject(raw)
	if err != nil {
		return Outcome{Kind: FallbackUsed, Analysis: Fallback(raw, transcript), Cause: err}
	}
	return Outcome{Kind: Parsed, Analysis: decodeAnalysis(obj, transcript)}
}

func isolateObject(raw string) (map[string]json.RawMessage, error) {
	text := strings.TrimSpace(strings.ReplaceAll(raw, "\r\n", "\n"))
	if text == "" {
		return nil, errEmptyResponse
	}

	body := stripFence(text)
	obj, err := decodeObject(body)
	if err == nil {
		return obj, nil
	}
	var arr []json.RawMessage
	if json.Unmarshal([]byte(body), &arr) == nil {
		return nil, errNotAnObject
	}

	// Prose around an unfenced object, or trailing text after it.
	for _, candidate := range []string{firstBalancedObject(body), firstBalancedObject(text)} {
		if candidate == "" || candidate == body {
			continue
		}
		if obj, candErr := decodeObject(candidate); candErr == nil {
			return obj, nil
		}
	}
	return nil, fmt.Errorf("decode model JSON: %w", err)
}

// stripFence removes one level of markdown code fencing, tagged (```json)
// or untagged. Text without a fence is returned unchanged. An unterminated
// fence keeps everything after the opener.
func stripFence(text string) string {
	open := strings.Index(text, "```")
	if open < 0 {
		return text
	}
	rest := text[open+3:]

	if nl := strings.IndexByte(rest, '\n'); nl >= 0 && isFenceTag(rest[:nl]) {
		rest = rest[nl+1:]
	}
	if end := strings.LastIndex(rest, "```"); end >= 0 {
		rest = rest[:end]
	}
	return strings.TrimSpace(rest)
}

func isFenceTag(s string) bool {
	s = strings.TrimSpace(s)
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-' || r == '_' || r == '+') {
			return false
		}
	}
	return true
}

func decodeObject(s string) (map[string]json.RawMessage, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(s), &obj); err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, errNotAnObject
	}
	return obj, nil
}

// firstBalancedObject returns the first {...} span whose braces balance,
// ignoring braces inside JSON strings. Returns "" when none closes.
func firstBalancedObject(s string) string {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return ""
	}

	depth := 0
	inString, escaped := false, false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

func decodeAnalysis(obj map[string]json.RawMessage, transcript string) *types.Analysis {
	a := types.NewAnalysis(transcript)

	a.Summary = firstString(obj, "overall_summary", "summary")
	a.Participants = decodeParticipants(obj["participants"])
	a.SentimentTrend = decodeTrend(obj["sentiment_trend"])
	a.Topics = stringList(firstPresent(obj, "topics_discussed", "topics"))
	a.Keywords = stringList(obj["keywords"])

	if assessment, ok := objectValue(firstPresent(obj, "overall_assessment", "assessment")); ok {
		a.Assessment = types.Assessment{
			CommunicationQuality: stringValue(assessment["communication_quality"]),
			Strengths:            stringList(assessment["strengths"]),
			CriticalImprovements: stringList(assessment["critical_improvements"]),
			Recommendation:       stringValue(assessment["recommendation"]),
		}
	}

	if feedback, ok := objectValue(obj["detailed_feedback"]); ok {
		for key, raw := range feedback {
			a.DetailedFeedback[key] = stringValue(raw)
		}
	}
	return a
}

// decodeParticipants accepts the documented id->object mapping and, since
// models sometimes emit it, a list of objects (ids become speaker_N).
func decodeParticipants(raw json.RawMessage) map[string]*types.Participant {
	out := map[string]*types.Participant{}

	if byID, ok := objectValue(raw); ok {
		for id, entry := range byID {
			if p, ok := decodeParticipant(id, entry); ok {
				out[id] = p
			}
		}
		return out
	}

	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err == nil {
		for i, entry := range list {
			id := fmt.Sprintf("speaker_%d", i+1)
			if p, ok := decodeParticipant(id, entry); ok {
				out[id] = p
			}
		}
	}
	return out
}

func decodeParticipant(id string, raw json.RawMessage) (*types.Participant, bool) {
	fields, ok := objectValue(raw)
	if !ok {
		return nil, false
	}
	return &types.Participant{
		ID:                   id,
		Name:                 stringValue(fields["name"]),
		Sentiment:            normalizeSentiment(stringValue(fields["sentiment"])),
		Tone:                 stringValue(fields["tone"]),
		ConfidenceScore:      scoreValue(fields["confidence_score"]),
		ClarityScore:         scoreValue(fields["clarity_score"]),
		EmpathyScore:         scoreValue(fields["empathy_score"]),
		EngagementScore:      scoreValue(fields["engagement_score"]),
		KeyPoints:            stringList(fields["key_points"]),
		Strengths:            stringList(fields["strengths"]),
		Improvements:         stringList(fields["improvements"]),
		FillerWordsCount:     countValue(fields["filler_words_count"]),
		SpeakingPace:         normalizePace(stringValue(fields["speaking_pace"])),
		CommunicationQuality: stringValue(fields["communication_quality"]),
	}, true
}

func decodeTrend(raw json.RawMessage) []types.SentimentTrendPoint {
	out := []types.SentimentTrendPoint{}
	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err != nil {
		return out
	}
	for _, entry := range list {
		fields, ok := objectValue(entry)
		if !ok {
			continue
		}
		out = append(out, types.SentimentTrendPoint{
			Segment:    stringValue(fields["segment"]),
			Sentiment:  normalizeSentiment(stringValue(fields["sentiment"])),
			Confidence: scoreValue(fields["confidence"]),
		})
	}
	return out
}
