package httpapi

import (
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"interview-insights-go/internal/config"
	"interview-insights-go/internal/logger"
	"interview-insights-go/internal/processor"
	"interview-insights-go/internal/storage"
	"interview-insights-go/internal/store"
	"interview-insights-go/internal/transcription"
)

// Deps are the collaborators shared by all handlers. All of them are safe
// for concurrent use.
type Deps struct {
	Config      *config.Config
	Analyzer    *processor.Analyzer
	Reports     store.ReportStore
	Artifacts   storage.ArtifactStore
	Transcriber transcription.Transcriber
	Logger      *logger.Logger
}

type handler struct {
	Deps
	log *logger.Logger
}

// New builds the echo instance with middleware and routes.
func New(d Deps) *echo.Echo {
	if d.Logger == nil {
		d.Logger = logger.Discard()
	}
	if d.Reports == nil {
		d.Reports = store.NewMemoryStore(d.Config.Redis.ReportTTL)
	}
	if d.Artifacts == nil {
		d.Artifacts = storage.NewLocalStore(d.Config.OutputDir)
	}
	h := &handler{Deps: d, log: d.Logger.Component("httpapi")}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator()
	e.HTTPErrorHandler = errorHandler(h.log)

	e.Use(middleware.Recover())
	e.Use(requestLogger(h.log))
	e.Use(middleware.BodyLimit(fmt.Sprintf("%dM", d.Config.STT.MaxFileMB+1)))

	e.GET("/healthz", h.healthz)

	v1 := e.Group("/v1")
	v1.GET("/options", h.options)
	v1.GET("/schema", h.schema)
	v1.POST("/analyze", h.analyze)
	v1.POST("/keywords", h.keywords)
	v1.POST("/transcribe", h.transcribe)
	v1.POST("/batch", h.batch)

	reports := v1.Group("/reports")
	reports.GET("/:id", h.getReport)
	reports.GET("/:id/charts", h.charts)
	reports.GET("/:id/export", h.export)

	return e
}
