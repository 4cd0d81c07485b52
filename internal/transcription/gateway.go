package transcription

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
	"interview-insights-go/internal/apperror"
	"interview-insights-go/internal/config"
	"interview-insights-go/internal/logger"
)

const (
	statusQueued     = "queued"
	statusProcessing = "processing"
	statusCompleted  = "completed"
	statusFailed     = "failed"

	defaultPollInterval = 5 * time.Second
	maxPolls            = 120
)

// GatewayClient publishes audio to an STT gateway and polls until the job
// completes.
type GatewayClient struct {
	baseURL      string
	pollInterval time.Duration
	http         *http.Client
	log          *logger.Logger
}

func NewGatewayClient(cfg config.STTConfig, log *logger.Logger) *GatewayClient {
	if log == nil {
		log = logger.Discard()
	}
	interval := cfg.PollInterval
	if interval <= 0 {
		interval = defaultPollInterval
	}
	return &GatewayClient{
		baseURL:      strings.TrimRight(cfg.GatewayURL, "/"),
		pollInterval: interval,
		http:         &http.Client{Timeout: 30 * time.Second},
		log:          log.Component("transcription.gateway"),
	}
}

// jobResponse is returned by both /transcribe and /status.
type jobResponse struct {
	ID     string  `json:"id"`
	Status string  `json:"status"`
	Reason string  `json:"reason,omitempty"`
	Result *Result `json:"result,omitempty"`
}

func (c *GatewayClient) Transcribe(ctx context.Context, filename string, audio io.Reader) (Result, error) {
	data, err := io.ReadAll(audio)
	if err != nil {
		return Result{}, apperror.Transcription(fmt.Errorf("read audio: %w", err))
	}
	log := c.log.WithField("file", filename)
	log.Info("starting transcription")

	// 1) publish
	job, err := c.publish(ctx, filename, data)
	if err != nil {
		log.WithError(err).Error("transcribe publish failed")
		return Result{}, apperror.Transcription(err)
	}

	// 2) poll until done, unless the gateway answered synchronously
	for i := 0; job.Status != statusCompleted; i++ {
		switch job.Status {
		case statusFailed:
			return Result{}, apperror.Transcription(fmt.Errorf("transcription failed: %s", job.Reason))
		case statusQueued, statusProcessing:
		default:
			return Result{}, apperror.Transcription(fmt.Errorf("unexpected job status %q", job.Status))
		}
		if i >= maxPolls {
			return Result{}, apperror.Transcription(fmt.Errorf("transcription timeout"))
		}

		select {
		case <-ctx.Done():
			return Result{}, apperror.Transcription(ctx.Err())
		case <-time.After(c.pollInterval):
		}

		next, err := c.status(ctx, job.ID)
		if err != nil {
			log.WithError(err).Warn("polling failed")
			continue
		}
		job = next
		log.WithFields(logrus.Fields{
			"job_id": job.ID,
			"status": job.Status,
		}).Debug("polling transcription")
	}

	if job.Result == nil {
		return Result{}, apperror.Transcription(fmt.Errorf("completed job %s has no result", job.ID))
	}
	res := *job.Result
	if res.Segments == nil {
		res.Segments = []Segment{}
	}
	if strings.TrimSpace(res.Text) == "" {
		res.Text = FormatTranscript(res.Segments)
	}
	log.WithField("segments", len(res.Segments)).Info("transcription complete")
	return res, nil
}

func (c *GatewayClient) publish(ctx context.Context, filename string, data []byte) (jobResponse, error) {
	var job jobResponse
	err := c.doJSON(ctx, func() (*http.Request, error) {
		var b bytes.Buffer
		w := multipart.NewWriter(&b)
		part, err := w.CreateFormFile("file", filepath.Base(filename))
		if err != nil {
			return nil, err
		}
		if _, err := part.Write(data); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/transcribe", &b)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", w.FormDataContentType())
		return req, nil
	}, &job)
	return job, err
}

func (c *GatewayClient) status(ctx context.Context, id string) (jobResponse, error) {
	u := c.baseURL + "/status?" + url.Values{"id": {id}}.Encode()
	var job jobResponse
	err := c.doJSON(ctx, func() (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	}, &job)
	return job, err
}

// doJSON retries 5xx and transport errors. The request is rebuilt for every
// attempt because multipart bodies are single-use.
func (c *GatewayClient) doJSON(ctx context.Context, newReq func() (*http.Request, error), target any) error {
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 12 * time.Second

	op := func() error {
		req, err := newReq()
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)

		if resp.StatusCode >= 500 {
			return fmt.Errorf("server error %d: %s", resp.StatusCode, body)
		}
		if resp.StatusCode >= 400 {
			return backoff.Permanent(fmt.Errorf("gateway returned %d: %s", resp.StatusCode, body))
		}
		if len(body) == 0 {
			return fmt.Errorf("empty body")
		}
		if err := json.Unmarshal(body, target); err != nil {
			return backoff.Permanent(fmt.Errorf("json decode error: %v body=%s", err, body))
		}
		return nil
	}
	return backoff.Retry(op, backoff.WithContext(bo, ctx))
}
