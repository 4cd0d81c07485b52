package httpapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"interview-insights-go/internal/apperror"
	"interview-insights-go/internal/dataset"
	"interview-insights-go/internal/processor"
	"interview-insights-go/internal/types"
)

type batchItem struct {
	ID           string             `json:"id"`
	Transcript   string             `json:"transcript"`
	Domain       types.Domain       `json:"domain" validate:"domain"`
	RoundType    types.RoundType    `json:"round_type" validate:"round_type"`
	FeedbackTone types.FeedbackTone `json:"feedback_tone" validate:"feedback_tone"`
}

type batchRequest struct {
	Items           []batchItem `json:"items" validate:"required,min=1,dive"`
	LocalTrend      bool        `json:"local_trend"`
	ExtractKeywords bool        `json:"extract_keywords"`
}

// batch analyzes a JSON item list or an uploaded xlsx workbook (multipart
// field "file").
func (h *handler) batch(c echo.Context) error {
	items, opts, err := h.batchInput(c)
	if err != nil {
		return err
	}
	if err := processor.ValidateBatch(items); err != nil {
		return err
	}
	opts.Concurrency = h.Config.Batch.Concurrency

	ctx := c.Request().Context()
	out := h.Analyzer.AnalyzeBatch(ctx, items, opts)
	for i := range out.Items {
		if res := out.Items[i].Result; res != nil {
			h.saveReport(c, res)
		}
	}
	return c.JSON(http.StatusOK, out)
}

func (h *handler) batchInput(c echo.Context) ([]types.BatchItem, processor.BatchOptions, error) {
	var opts processor.BatchOptions

	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		fh, err := c.FormFile("file")
		if err != nil {
			return nil, opts, apperror.InvalidArgument("multipart field \"file\" is required")
		}
		src, err := fh.Open()
		if err != nil {
			return nil, opts, apperror.Internal(err)
		}
		defer src.Close()

		items, err := dataset.LoadReader(src)
		if err != nil {
			return nil, opts, apperror.InvalidArgument(err.Error())
		}
		opts.LocalTrend = c.FormValue("local_trend") == "true"
		opts.ExtractKeywords = c.FormValue("extract_keywords") == "true"
		return items, opts, nil
	}

	var req batchRequest
	if err := bindAndValidate(c, &req); err != nil {
		return nil, opts, err
	}
	items := make([]types.BatchItem, len(req.Items))
	for i, it := range req.Items {
		items[i] = types.BatchItem{
			ID:         it.ID,
			Transcript: it.Transcript,
			Config: types.AnalysisConfig{
				Domain:       it.Domain,
				RoundType:    it.RoundType,
				FeedbackTone: it.FeedbackTone,
			},
		}
	}
	opts.LocalTrend = req.LocalTrend
	opts.ExtractKeywords = req.ExtractKeywords
	return items, opts, nil
}
