package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"interview-insights-go/internal/apperror"
	"interview-insights-go/internal/processor"
	"interview-insights-go/internal/report"
	"interview-insights-go/internal/types"
)

type analyzeRequest struct {
	Transcript      string             `json:"transcript" form:"transcript"`
	Domain          types.Domain       `json:"domain" form:"domain" validate:"domain"`
	RoundType       types.RoundType    `json:"round_type" form:"round_type" validate:"round_type"`
	FeedbackTone    types.FeedbackTone `json:"feedback_tone" form:"feedback_tone" validate:"feedback_tone"`
	LocalTrend      bool               `json:"local_trend" form:"local_trend"`
	ExtractKeywords bool               `json:"extract_keywords" form:"extract_keywords"`
}

func (r analyzeRequest) config() types.AnalysisConfig {
	return types.AnalysisConfig{
		Domain:       r.Domain,
		RoundType:    r.RoundType,
		FeedbackTone: r.FeedbackTone,
	}
}

type keywordsRequest struct {
	Text  string `json:"text" validate:"required"`
	Count int    `json:"count" validate:"omitempty,min=1,max=50"`
}

func (h *handler) healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": h.Config.Environment,
	})
}

func (h *handler) options(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"domains":        types.Domains,
		"round_types":    types.RoundTypes,
		"feedback_tones": types.FeedbackTones,
		"export_formats": []report.Format{report.FormatJSON, report.FormatYAML, report.FormatXLSX},
		"defaults":       types.DefaultAnalysisConfig(),
	})
}

func (h *handler) schema(c echo.Context) error {
	data, err := report.SchemaJSON()
	if err != nil {
		return apperror.Internal(err)
	}
	return c.JSONBlob(http.StatusOK, data)
}

func (h *handler) analyze(c echo.Context) error {
	var req analyzeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.Analyzer.Analyze(c.Request().Context(), processor.Request{
		Transcript:      req.Transcript,
		Config:          req.config(),
		LocalTrend:      req.LocalTrend,
		ExtractKeywords: req.ExtractKeywords,
	})
	if err != nil {
		return err
	}
	h.saveReport(c, &res)
	return c.JSON(http.StatusOK, res)
}

func (h *handler) keywords(c echo.Context) error {
	var req keywordsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	kws := h.Analyzer.Keywords(c.Request().Context(), req.Text, req.Count)
	return c.JSON(http.StatusOK, map[string]interface{}{"keywords": kws})
}

func (h *handler) getReport(c echo.Context) error {
	r, err := h.Reports.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, r)
}

func (h *handler) charts(c echo.Context) error {
	r, err := h.Reports.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report.Charts(r))
}

// export streams the rendered report, or persists it when save=true and
// returns the artifact location.
func (h *handler) export(c echo.Context) error {
	f, err := report.ParseFormat(c.QueryParam("format"))
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	r, err := h.Reports.Get(ctx, c.Param("id"))
	if err != nil {
		return err
	}
	data, err := report.Render(r, f)
	if err != nil {
		if _, ok := apperror.As(err); !ok {
			err = apperror.Export(err)
		}
		return err
	}
	name := report.ArtifactName(r, f, time.Now())

	if c.QueryParam("save") == "true" {
		artifact, err := h.Artifacts.Put(ctx, name, data, f.ContentType())
		if err != nil {
			return apperror.Export(err)
		}
		h.log.WithField("artifact", artifact.Location).Info("report exported")
		return c.JSON(http.StatusCreated, artifact)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Blob(http.StatusOK, f.ContentType(), data)
}

// saveReport keeps the report for later rendering. A store failure does not
// fail the analysis; it is returned as a warning.
func (h *handler) saveReport(c echo.Context, res *processor.Result) {
	if err := h.Reports.Save(c.Request().Context(), res.Report); err != nil {
		h.log.WithError(err).WithField("report_id", res.Report.ID).Warn("failed to store report")
		res.Warnings = append(res.Warnings, "report was not stored: "+err.Error())
	}
}

func bindAndValidate(c echo.Context, v interface{}) error {
	if err := c.Bind(v); err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) && he.Code == http.StatusRequestEntityTooLarge {
			return err
		}
		return apperror.InvalidArgument("request body could not be decoded")
	}
	return c.Validate(v)
}
