package metrics

import (
	"regexp"
	"strconv"
	"strings"
)

// Turn is one speaker's contiguous block of transcript text.
type Turn struct {
	Speaker string
	// Start is in seconds, or -1 when the line carries no timestamp.
	Start float64
	Text  string
}

var (
	// [00:12 Alice]: text
	timedLabel = regexp.MustCompile(`^\s*\[(\d{1,2}(?::\d{2}){1,2})\s+([^\]]{1,40})\]\s*:?\s*(.*)$`)
	// [00:12] Alice: text  or  00:12 Alice: text
	stampedLine = regexp.MustCompile(`^\s*\[?(\d{1,2}(?::\d{2}){1,2})\]?\s+([^:\[\]]{1,40}):\s*(.*)$`)
	// Alice: text
	plainLine = regexp.MustCompile(`^\s*([A-Za-z][\w .'\-]{0,39}):\s*(.*)$`)
)

// ParseTurns splits a transcript into speaker turns. Lines without a
// speaker prefix continue the previous turn; text before the first prefix
// is dropped.
func ParseTurns(transcript string) []Turn {
	var turns []Turn
	for _, line := range strings.Split(strings.ReplaceAll(transcript, "\r\n", "\n"), "\n") {
		if t, ok := parseTurnLine(line); ok {
			turns = append(turns, t)
			continue
		}
		if len(turns) > 0 && strings.TrimSpace(line) != "" {
			last := &turns[len(turns)-1]
			last.Text = strings.TrimSpace(last.Text + " " + strings.TrimSpace(line))
		}
	}
	return turns
}

func parseTurnLine(line string) (Turn, bool) {
	if m := timedLabel.FindStringSubmatch(line); m != nil {
		return Turn{Speaker: strings.TrimSpace(m[2]), Start: parseClock(m[1]), Text: strings.TrimSpace(m[3])}, true
	}
	if m := stampedLine.FindStringSubmatch(line); m != nil {
		return Turn{Speaker: strings.TrimSpace(m[2]), Start: parseClock(m[1]), Text: strings.TrimSpace(m[3])}, true
	}
	if m := plainLine.FindStringSubmatch(line); m != nil && !strings.HasPrefix(m[2], "//") {
		return Turn{Speaker: strings.TrimSpace(m[1]), Start: -1, Text: strings.TrimSpace(m[2])}, true
	}
	return Turn{}, false
}

// parseClock reads mm:ss or hh:mm:ss.
func parseClock(s string) float64 {
	total := 0.0
	for _, part := range strings.Split(s, ":") {
		n, err := strconv.Atoi(part)
		if err != nil {
			return -1
		}
		total = total*60 + float64(n)
	}
	return total
}

// SpeakerKey normalises a speaker label or participant id for matching:
// "speaker_1", "Speaker 1" and " SPEAKER 1 " share a key.
func SpeakerKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "_", " ")
	return strings.Join(strings.Fields(s), " ")
}

// TextFor joins the turns spoken by any of the given names.
func TextFor(turns []Turn, names ...string) string {
	keys := matchKeys(names)
	var parts []string
	for _, t := range turns {
		if keys[SpeakerKey(t.Speaker)] && t.Text != "" {
			parts = append(parts, t.Text)
		}
	}
	return strings.Join(parts, " ")
}

// Durations estimates seconds spoken per speaker key from turn start
// times. A turn lasts until the next turn starts. A speaker with any turn
// of unknown length (untimed, or the final turn) is left out so that its
// pace falls back to the word-count estimate.
func Durations(turns []Turn) map[string]float64 {
	out := map[string]float64{}
	unknown := map[string]bool{}
	for i, cur := range turns {
		if cur.Text == "" {
			continue
		}
		key := SpeakerKey(cur.Speaker)
		if cur.Start < 0 || i+1 == len(turns) || turns[i+1].Start < cur.Start {
			unknown[key] = true
			continue
		}
		out[key] += turns[i+1].Start - cur.Start
	}
	for key := range unknown {
		delete(out, key)
	}
	return out
}

// lookupDuration returns the first positive duration found for names.
func lookupDuration(durations map[string]float64, names ...string) float64 {
	for _, name := range names {
		key := SpeakerKey(name)
		if key == "" {
			continue
		}
		for k, v := range durations {
			if SpeakerKey(k) == key && v > 0 {
				return v
			}
		}
	}
	return 0
}

func matchKeys(names []string) map[string]bool {
	keys := map[string]bool{}
	for _, n := range names {
		if k := SpeakerKey(n); k != "" {
			keys[k] = true
		}
	}
	return keys
}
