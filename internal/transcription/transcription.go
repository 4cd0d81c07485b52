package transcription

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"interview-insights-go/internal/apperror"
	"interview-insights-go/internal/config"
	"interview-insights-go/internal/logger"
)

// SupportedExtensions are the accepted audio containers.
var SupportedExtensions = []string{".wav", ".mp3", ".mp4", ".m4a", ".flac", ".ogg"}

type Segment struct {
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Speaker string  `json:"speaker"`
	Text    string  `json:"text"`
}

type Result struct {
	Text     string    `json:"text"`
	Segments []Segment `json:"segments"`
	Language string    `json:"language"`
}

// Transcriber converts an audio stream to text. filename is used for its
// extension only.
type Transcriber interface {
	Transcribe(ctx context.Context, filename string, audio io.Reader) (Result, error)
}

func New(cfg config.STTConfig, log *logger.Logger) (Transcriber, error) {
	switch cfg.Provider {
	case "mock":
		return NewMockClient(), nil
	case "gateway":
		return NewGatewayClient(cfg, log), nil
	default:
		if cfg.AssemblyAIKey == "" {
			return nil, apperror.MissingCredential("ASSEMBLYAI_API_KEY")
		}
		return NewAssemblyAIClient(cfg, log), nil
	}
}

// Validate checks the upload before any bytes are sent upstream.
func Validate(filename string, size, limit int64) error {
	ext := strings.ToLower(filepath.Ext(filename))
	supported := false
	for _, e := range SupportedExtensions {
		if e == ext {
			supported = true
			break
		}
	}
	if !supported {
		return apperror.UnsupportedAudio(ext)
	}
	if size == 0 {
		return apperror.InvalidArgument("audio file is empty")
	}
	if limit > 0 && size > limit {
		return apperror.AudioTooLarge(size, limit)
	}
	return nil
}

// FormatTranscript renders segments as "Speaker: text" lines, merging
// consecutive segments from the same speaker.
func FormatTranscript(segments []Segment) string {
	var b strings.Builder
	last := ""
	for _, s := range segments {
		text := strings.TrimSpace(s.Text)
		if text == "" {
			continue
		}
		speaker := strings.TrimSpace(s.Speaker)
		if speaker == "" {
			speaker = "Speaker"
		}
		switch {
		case b.Len() == 0:
			fmt.Fprintf(&b, "%s: %s", speaker, text)
		case speaker == last:
			b.WriteString(" " + text)
		default:
			fmt.Fprintf(&b, "\n%s: %s", speaker, text)
		}
		last = speaker
	}
	return b.String()
}

// SpeakerDurations sums seconds spoken per speaker label.
func SpeakerDurations(segments []Segment) map[string]float64 {
	out := map[string]float64{}
	for _, s := range segments {
		if s.End > s.Start && s.Speaker != "" {
			out[s.Speaker] += s.End - s.Start
		}
	}
	return out
}

// Speakers returns the distinct speaker labels in sorted order.
func Speakers(segments []Segment) []string {
	seen := map[string]bool{}
	var out []string
	for _, s := range segments {
		if s.Speaker != "" && !seen[s.Speaker] {
			seen[s.Speaker] = true
			out = append(out, s.Speaker)
		}
	}
	sort.Strings(out)
	return out
}
