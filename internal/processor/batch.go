package processor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"interview-insights-go/internal/actionable"
	"interview-insights-go/internal/apperror"
	"interview-insights-go/internal/aggregator"
	"interview-insights-go/internal/types"
)

const DefaultBatchConcurrency = 4

type BatchOptions struct {
	Concurrency     int
	LocalTrend      bool
	ExtractKeywords bool
}

// BatchItemResult holds either a Result or the error message for one row.
type BatchItemResult struct {
	ID     string  `json:"id"`
	Result *Result `json:"result,omitempty"`
	Error  string  `json:"error,omitempty"`
}

type BatchResult struct {
	Items      []BatchItemResult       `json:"items"`
	Insight    aggregator.Insight      `json:"insight"`
	Actions    []actionable.ActionCard `json:"actions"`
	DurationMs int64                   `json:"duration_ms"`
}

// AnalyzeBatch analyzes items with bounded concurrency. Results keep the
// input order and a failing row never stops the others.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, items []types.BatchItem, opts BatchOptions) BatchResult {
	start := time.Now()
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultBatchConcurrency
	}

	out := make([]BatchItemResult, len(items))
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	for i, item := range items {
		id := item.ID
		if id == "" {
			id = fmt.Sprintf("row-%d", i+1)
		}
		out[i].ID = id

		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			out[i].Error = ctx.Err().Error()
			continue
		}

		wg.Add(1)
		go func(i int, item types.BatchItem) {
			defer wg.Done()
			defer func() { <-sem }()
			defer func() {
				if r := recover(); r != nil {
					out[i].Error = fmt.Sprintf("panic: %v", r)
				}
			}()

			res, err := a.Analyze(ctx, Request{
				Transcript:      item.Transcript,
				Config:          item.Config,
				LocalTrend:      opts.LocalTrend,
				ExtractKeywords: opts.ExtractKeywords,
			})
			if err != nil {
				out[i].Error = err.Error()
				return
			}
			out[i].Result = &res
		}(i, item)
	}
	wg.Wait()

	reports := make([]types.Report, 0, len(out))
	degraded, failed := 0, 0
	for _, r := range out {
		if r.Result == nil {
			failed++
			continue
		}
		if r.Result.Degraded {
			degraded++
		}
		reports = append(reports, r.Result.Report)
	}
	ins := aggregator.Aggregate(reports, degraded, failed)

	res := BatchResult{
		Items:      out,
		Insight:    ins,
		Actions:    actionable.Generate(ins),
		DurationMs: time.Since(start).Milliseconds(),
	}
	a.log.WithField("items", len(items)).
		WithField("failed", failed).
		WithField("degraded", degraded).
		WithField("duration_ms", res.DurationMs).
		Info("batch complete")
	return res
}

// Failed reports whether every row failed.
func (b BatchResult) Failed() bool {
	for _, it := range b.Items {
		if it.Result != nil {
			return false
		}
	}
	return len(b.Items) > 0
}

// ValidateBatch rejects an empty batch before any model call is made.
func ValidateBatch(items []types.BatchItem) error {
	if len(items) == 0 {
		return apperror.InvalidArgument("batch has no items")
	}
	for i := range items {
		if err := items[i].Config.WithDefaults().Validate(); err != nil {
			return apperror.InvalidArgument(fmt.Sprintf("row %d: %v", i+1, err))
		}
	}
	return nil
}
