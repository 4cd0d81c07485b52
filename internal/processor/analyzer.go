package processor

import (
	"context"
	"errors"
	"strings"
	"time"

	"interview-insights-go/internal/apperror"
	"interview-insights-go/internal/extractor"
	"interview-insights-go/internal/llm"
	"interview-insights-go/internal/logger"
	"interview-insights-go/internal/metrics"
	"interview-insights-go/internal/report"
	"interview-insights-go/internal/sentiment"
	"interview-insights-go/internal/types"
)

const DefaultModelTimeout = 60 * time.Second

// Request is everything one analysis needs. It is owned by the caller.
type Request struct {
	Transcript string
	Config     types.AnalysisConfig
	// Durations maps speaker labels to seconds spoken (from STT segments).
	Durations map[string]float64
	// TrendOverride replaces the model's sentiment trend when non-nil.
	TrendOverride []types.SentimentTrendPoint
	// LocalTrend computes a trend override from the transcript when
	// TrendOverride is nil.
	LocalTrend bool
	// ExtractKeywords backfills keywords with a second model call when the
	// analysis has none.
	ExtractKeywords bool
}

// Result is returned by Analyze
type Result struct {
	Report     types.Report `json:"report"`
	Outcome    string       `json:"parse_outcome"`
	Degraded   bool         `json:"degraded"`
	Warnings   []string     `json:"warnings"`
	DurationMs int64        `json:"duration_ms"`
}

// Analyzer runs prompt, model call, parse, enrichment and assembly in
// sequence. It holds no per-invocation state and is safe for concurrent use.
type Analyzer struct {
	gen          llm.Generator
	keywords     *extractor.KeywordExtractor
	enricher     *metrics.Enricher
	sentiment    *sentiment.Analyzer
	assembler    *report.Assembler
	timeout      time.Duration
	keywordCount int
	log          *logger.Logger
}

type Options struct {
	Timeout       time.Duration
	KeywordPrefix int
	KeywordCount  int
	Assembler     *report.Assembler
	Logger        *logger.Logger
}

func New(gen llm.Generator, opts Options) *Analyzer {
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultModelTimeout
	}
	if opts.KeywordCount <= 0 {
		opts.KeywordCount = extractor.DefaultKeywordCount
	}
	if opts.Assembler == nil {
		opts.Assembler = report.NewAssembler()
	}
	sa := sentiment.New()
	return &Analyzer{
		gen:          gen,
		keywords:     extractor.NewKeywordExtractor(gen, opts.KeywordPrefix, log),
		enricher:     metrics.NewEnricher(sa, log),
		sentiment:    sa,
		assembler:    opts.Assembler,
		timeout:      opts.Timeout,
		keywordCount: opts.KeywordCount,
		log:          log.Component("analyzer"),
	}
}

// Analyze produces a Report for one transcript. It fails only for an empty
// transcript or a failed model call; unparseable model output yields a
// degraded Result instead.
func (a *Analyzer) Analyze(ctx context.Context, req Request) (Result, error) {
	start := time.Now()
	if strings.TrimSpace(req.Transcript) == "" {
		return Result{}, apperror.EmptyTranscript()
	}
	log := a.log.WithField("transcript_len", len(req.Transcript))

	prompt := extractor.BuildAnalysisPrompt(req.Transcript, req.Config)
	raw, err := a.generate(ctx, prompt)
	if err != nil {
		log.WithError(err).Error("model invocation failed")
		return Result{}, err
	}

	res := Result{Warnings: []string{}}

	outcome := extractor.ParseResponse(raw, req.Transcript)
	res.Outcome = outcome.Kind.String()
	if outcome.Degraded() {
		res.Degraded = true
		degraded := apperror.ResponseParseDegraded(outcome.Cause)
		res.Warnings = append(res.Warnings, degraded.Message)
		log.WithError(degraded).Warn("using fallback extraction")
	}
	analysis := outcome.Analysis

	for _, err := range a.enricher.Enrich(analysis, req.Transcript, metrics.Options{Durations: req.Durations}) {
		res.Warnings = append(res.Warnings, err.Error())
	}

	if req.ExtractKeywords && len(analysis.Keywords) == 0 {
		analysis.Keywords = a.extractKeywords(ctx, req.Transcript, a.keywordCount)
	}

	trend := req.TrendOverride
	if trend == nil && req.LocalTrend {
		local, err := a.sentiment.SegmentTrend(req.Transcript, sentiment.DefaultSegments)
		if err != nil {
			res.Warnings = append(res.Warnings, "local sentiment trend unavailable: "+err.Error())
		} else {
			trend = local
		}
	}

	res.Report = a.assembler.Assemble(analysis, report.AssembleOptions{
		Config:        req.Config,
		TrendOverride: trend,
	})
	res.DurationMs = time.Since(start).Milliseconds()

	log.WithField("report_id", res.Report.ID).
		WithField("participants", len(res.Report.Participants)).
		WithField("degraded", res.Degraded).
		WithField("duration_ms", res.DurationMs).
		Info("analysis complete")
	return res, nil
}

// Keywords runs the standalone keyword extraction.
func (a *Analyzer) Keywords(ctx context.Context, text string, n int) []string {
	if n <= 0 {
		n = a.keywordCount
	}
	return a.extractKeywords(ctx, text, n)
}

// extractKeywords bounds the keyword call by the same deadline as the
// analysis call. Extract swallows the timeout and returns no keywords.
func (a *Analyzer) extractKeywords(ctx context.Context, text string, n int) []string {
	kwCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()
	return a.keywords.Extract(kwCtx, text, n)
}

// generate runs the analysis call under its own deadline.
func (a *Analyzer) generate(ctx context.Context, prompt string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	raw, err := a.gen.Generate(callCtx, prompt)
	if err == nil {
		if ctxErr := callCtx.Err(); ctxErr != nil {
			err = ctxErr
		}
	}
	if err != nil {
		if !errors.Is(err, apperror.ErrModelInvocation) {
			err = apperror.ModelInvocation(err)
		}
		return "", err
	}
	return raw, nil
}
