package transcription

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
	"interview-insights-go/internal/apperror"
	"interview-insights-go/internal/config"
	"interview-insights-go/internal/logger"
)

// AssemblyAIClient uploads audio and waits for a speaker-labelled transcript.
type AssemblyAIClient struct {
	client *aai.Client
	log    *logger.Logger
}

func NewAssemblyAIClient(cfg config.STTConfig, log *logger.Logger) *AssemblyAIClient {
	if log == nil {
		log = logger.Discard()
	}
	return &AssemblyAIClient{
		client: aai.NewClient(cfg.AssemblyAIKey),
		log:    log.Component("transcription.assemblyai"),
	}
}

func (c *AssemblyAIClient) Transcribe(ctx context.Context, filename string, audio io.Reader) (Result, error) {
	start := time.Now()
	params := &aai.TranscriptOptionalParams{
		SpeakerLabels:     aai.Bool(true),
		LanguageDetection: aai.Bool(true),
	}

	c.log.WithField("file", filename).Info("starting transcription")
	transcript, err := c.client.Transcripts.TranscribeFromReader(ctx, audio, params)
	if err != nil {
		c.log.WithError(err).Error("assemblyai transcription failed")
		return Result{}, apperror.Transcription(err)
	}
	if transcript.Status == aai.TranscriptStatusError {
		msg := "assemblyai transcription failed"
		if transcript.Error != nil {
			msg = fmt.Sprintf("assemblyai error: %s", *transcript.Error)
		}
		return Result{}, apperror.Transcription(errors.New(msg))
	}

	res := resultFromTranscript(transcript)
	c.log.WithField("segments", len(res.Segments)).
		WithField("language", res.Language).
		WithField("duration_ms", time.Since(start).Milliseconds()).
		Info("transcription complete")
	return res, nil
}

func resultFromTranscript(t aai.Transcript) Result {
	res := Result{
		Language: string(t.LanguageCode),
		Segments: make([]Segment, 0, len(t.Utterances)),
	}
	for _, u := range t.Utterances {
		seg := Segment{}
		if u.Text != nil {
			seg.Text = *u.Text
		}
		if u.Speaker != nil {
			seg.Speaker = "Speaker " + *u.Speaker
		}
		if u.Start != nil {
			seg.Start = float64(*u.Start) / 1000.0 // ms to seconds
		}
		if u.End != nil {
			seg.End = float64(*u.End) / 1000.0
		}
		res.Segments = append(res.Segments, seg)
	}

	if len(res.Segments) > 0 {
		res.Text = FormatTranscript(res.Segments)
	} else if t.Text != nil {
		res.Text = *t.Text
	}
	return res
}
