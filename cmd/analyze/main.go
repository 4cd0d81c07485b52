package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"interview-insights-go/internal/config"
	"interview-insights-go/internal/dataset"
	"interview-insights-go/internal/llm"
	"interview-insights-go/internal/logger"
	"interview-insights-go/internal/processor"
	"interview-insights-go/internal/report"
	"interview-insights-go/internal/storage"
	"interview-insights-go/internal/types"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "analyze",
		Short:        "Analyze interview transcripts and export reports",
		SilenceUsage: true,
	}
	root.AddCommand(newRunCmd(), newBatchCmd(), newSchemaCmd())
	return root
}

// app is the wiring shared by run and batch.
type app struct {
	cfg      *config.Config
	log      *logger.Logger
	analyzer *processor.Analyzer
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := logger.New(cfg.Environment, cfg.LogLevel)
	log.Logger.SetOutput(os.Stderr)

	gen, err := llm.New(cfg.LLM, log)
	if err != nil {
		return nil, err
	}
	return &app{
		cfg: cfg,
		log: log,
		analyzer: processor.New(gen, processor.Options{
			Timeout:       cfg.LLM.Timeout,
			KeywordPrefix: cfg.Keywords.PrefixChars,
			KeywordCount:  cfg.Keywords.Count,
			Logger:        log,
		}),
	}, nil
}

func newRunCmd() *cobra.Command {
	var (
		domain, round, tone string
		format, out         string
		localTrend          bool
		keywords            bool
	)
	cmd := &cobra.Command{
		Use:   "run <transcript.txt|->",
		Short: "Analyze one transcript",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}
			cfg := types.AnalysisConfig{
				Domain:       types.Domain(domain),
				RoundType:    types.RoundType(round),
				FeedbackTone: types.FeedbackTone(tone),
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			transcript, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			res, err := a.analyzer.Analyze(cmd.Context(), processor.Request{
				Transcript:      transcript,
				Config:          cfg,
				LocalTrend:      localTrend,
				ExtractKeywords: keywords,
			})
			if err != nil {
				return err
			}
			for _, w := range res.Warnings {
				a.log.Warn(w)
			}

			data, err := report.Render(res.Report, f)
			if err != nil {
				return err
			}
			if out != "" {
				if err := os.WriteFile(out, data, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", out, err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			}
			artifact, err := storage.NewLocalStore(a.cfg.OutputDir).
				Put(cmd.Context(), report.ArtifactName(res.Report, f, time.Now()), data, f.ContentType())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), artifact.Location)
			return nil
		},
	}
	cmd.Flags().StringVar(&domain, "domain", string(types.DomainGeneral), "interview domain")
	cmd.Flags().StringVar(&round, "round", string(types.RoundGeneral), "round type")
	cmd.Flags().StringVar(&tone, "tone", string(types.ToneProfessional), "feedback tone")
	cmd.Flags().StringVar(&format, "format", "json", "export format: json, yaml or xlsx")
	cmd.Flags().StringVar(&out, "out", "", "output file (default: a new file in OUTPUT_DIR)")
	cmd.Flags().BoolVar(&localTrend, "local-trend", false, "compute the sentiment trend locally")
	cmd.Flags().BoolVar(&keywords, "keywords", false, "extract keywords when the model returns none")
	return cmd
}

func newBatchCmd() *cobra.Command {
	var (
		out         string
		concurrency int
		localTrend  bool
		keywords    bool
	)
	cmd := &cobra.Command{
		Use:   "batch <transcripts.xlsx>",
		Short: "Analyze every transcript row in a workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := dataset.Load(args[0])
			if err != nil {
				return err
			}
			a, err := newApp()
			if err != nil {
				return err
			}
			dataset.Summarize(items, a.log)

			if out == "" {
				out = a.cfg.OutputDir
			}
			if concurrency <= 0 {
				concurrency = a.cfg.Batch.Concurrency
			}
			res := a.analyzer.AnalyzeBatch(cmd.Context(), items, processor.BatchOptions{
				Concurrency:     concurrency,
				LocalTrend:      localTrend,
				ExtractKeywords: keywords,
			})

			artifacts := storage.NewLocalStore(out)
			now := time.Now()
			for _, it := range res.Items {
				if it.Result == nil {
					a.log.WithField("id", it.ID).WithField("error", it.Error).Warn("row failed")
					continue
				}
				data, err := report.Render(it.Result.Report, report.FormatJSON)
				if err != nil {
					return err
				}
				name := report.ArtifactName(it.Result.Report, report.FormatJSON, now)
				if _, err := artifacts.Put(cmd.Context(), name, data, report.FormatJSON.ContentType()); err != nil {
					return err
				}
			}

			summary, err := json.MarshalIndent(res, "", "  ")
			if err != nil {
				return err
			}
			name := fmt.Sprintf("batch_summary_%s.json", now.Format("20060102_150405"))
			artifact, err := artifacts.Put(cmd.Context(), name, summary, "application/json")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), artifact.Location)

			if res.Failed() {
				return fmt.Errorf("all %d rows failed", len(res.Items))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "output directory (default: OUTPUT_DIR)")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "parallel analyses (default: BATCH_CONCURRENCY)")
	cmd.Flags().BoolVar(&localTrend, "local-trend", false, "compute sentiment trends locally")
	cmd.Flags().BoolVar(&keywords, "keywords", false, "extract keywords when the model returns none")
	return cmd
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of a report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := report.SchemaJSON()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}
}

func readInput(stdin io.Reader, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read transcript: %w", err)
	}
	return string(data), nil
}
