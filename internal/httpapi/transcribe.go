package httpapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"interview-insights-go/internal/apperror"
	"interview-insights-go/internal/processor"
	"interview-insights-go/internal/transcription"
)

type transcribeResponse struct {
	Transcription transcription.Result `json:"transcription"`
	Speakers      []string             `json:"speakers"`
	Analysis      *processor.Result    `json:"analysis,omitempty"`
}

// transcribe accepts a multipart "file" upload. With analyze=true the
// transcript is analyzed too, using segment durations for speaking pace.
func (h *handler) transcribe(c echo.Context) error {
	if h.Transcriber == nil {
		return apperror.Internal(errors.New("speech-to-text is not configured"))
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return apperror.InvalidArgument("multipart field \"file\" is required")
	}
	if err := transcription.Validate(fh.Filename, fh.Size, h.Config.MaxAudioBytes()); err != nil {
		return err
	}

	var req analyzeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	src, err := fh.Open()
	if err != nil {
		return apperror.Internal(err)
	}
	defer src.Close()

	ctx := c.Request().Context()
	tr, err := h.Transcriber.Transcribe(ctx, fh.Filename, src)
	if err != nil {
		if _, ok := apperror.As(err); !ok {
			err = apperror.Transcription(err)
		}
		return err
	}
	resp := transcribeResponse{Transcription: tr, Speakers: transcription.Speakers(tr.Segments)}

	if c.FormValue("analyze") == "true" {
		res, err := h.Analyzer.Analyze(ctx, processor.Request{
			Transcript:      tr.Text,
			Config:          req.config(),
			Durations:       transcription.SpeakerDurations(tr.Segments),
			LocalTrend:      req.LocalTrend,
			ExtractKeywords: req.ExtractKeywords,
		})
		if err != nil {
			return err
		}
		h.saveReport(c, &res)
		resp.Analysis = &res
	}
	return c.JSON(http.StatusOK, resp)
}
