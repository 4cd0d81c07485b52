package extractor

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"interview-insights-go/internal/types"
)

// Lenient readers for model-produced JSON values. Each returns the field's
// documented default when the value is missing or has the wrong shape.

func objectValue(raw json.RawMessage) (map[string]json.RawMessage, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return nil, false
	}
	return obj, true
}

func stringValue(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return strconv.FormatBool(b)
	}
	return ""
}

func floatValue(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, !math.IsNaN(f) && !math.IsInf(f, 0)
	}
	s := strings.TrimSpace(strings.TrimSuffix(stringValue(raw), "%"))
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// scoreValue reads a score clamped to [0, 1]; missing means 0.
func scoreValue(raw json.RawMessage) float64 {
	f, ok := floatValue(raw)
	if !ok {
		return 0
	}
	return ClampScore(f)
}

// ClampScore bounds a score to [0, 1].
func ClampScore(f float64) float64 {
	switch {
	case math.IsNaN(f), f < 0:
		return 0
	case f > 1:
		return 1
	default:
		return f
	}
}

func countValue(raw json.RawMessage) int {
	f, ok := floatValue(raw)
	if !ok || f < 0 {
		return 0
	}
	return int(f)
}

// stringList reads a list of strings. A bare string becomes a one-element
// list; non-string scalars are formatted; empty entries are dropped.
func stringList(raw json.RawMessage) []string {
	out := []string{}
	if len(raw) == 0 {
		return out
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		if s := stringValue(raw); s != "" {
			out = append(out, s)
		}
		return out
	}
	for _, item := range items {
		if s := stringValue(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func firstPresent(obj map[string]json.RawMessage, keys ...string) json.RawMessage {
	for _, k := range keys {
		if raw, ok := obj[k]; ok && len(raw) > 0 && string(raw) != "null" {
			return raw
		}
	}
	return nil
}

func firstString(obj map[string]json.RawMessage, keys ...string) string {
	for _, k := range keys {
		if s := stringValue(obj[k]); s != "" {
			return s
		}
	}
	return ""
}

// normalizeSentiment canonicalises the three polarity labels and keeps any
// other label (e.g. "Confident") as given.
func normalizeSentiment(s string) types.Sentiment {
	for _, known := range []types.Sentiment{types.SentimentPositive, types.SentimentNeutral, types.SentimentNegative} {
		if strings.EqualFold(s, string(known)) {
			return known
		}
	}
	return types.Sentiment(s)
}

// normalizePace returns "" for anything outside Fast/Moderate/Slow so the
// enricher can supply a local estimate.
func normalizePace(s string) types.SpeakingPace {
	for _, known := range []types.SpeakingPace{types.PaceFast, types.PaceModerate, types.PaceSlow} {
		if strings.EqualFold(s, string(known)) {
			return known
		}
	}
	return ""
}
