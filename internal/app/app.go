package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"github.com/khrees2412/cvforge/internal/ai"
	"github.com/khrees2412/cvforge/internal/config"
	"github.com/khrees2412/cvforge/internal/database"
	"github.com/khrees2412/cvforge/internal/pipeline"
	"github.com/khrees2412/cvforge/internal/renderer"
	"github.com/khrees2412/cvforge/internal/templates"
	"github.com/khrees2412/cvforge/pkg/logging"
)

// App is the dependency container shared by the CLI and the HTTP server
type App struct {
	Config    *config.Config
	Logger    *logging.Logger
	DB        *sql.DB
	Templates templates.Store
	Builtins  *templates.Builtins
	Resolver  *templates.Resolver
	History   *database.HistoryRepository
	Artifacts *pipeline.ArtifactWriter
	Renderer  renderer.Renderer
	Generator *ai.Generator
	Source    pipeline.JobSource
	Pipeline  *pipeline.Pipeline
}

// NewApp initializes and returns a new App instance
func NewApp(ctx context.Context, cfg *config.Config, log *logging.Logger) (*App, error) {
	if log == nil {
		log = logging.NewNop()
	}

	a := &App{
		Config:    cfg,
		Logger:    log,
		Builtins:  templates.NewBuiltins(cfg.TemplatesDir),
		Artifacts: pipeline.NewArtifactWriter(cfg.OutputDir),
		Renderer:  renderer.New(cfg.RendererConfig(), log.With("component", "renderer")),
		Source:    NewJoobleSource(cfg.JoobleConfig()),
	}

	// Open database when the sqlite store or history needs it
	if cfg.TemplateStore == config.StoreSQLite || cfg.History {
		db, err := database.Open(cfg.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to initialize database: %v", ErrConfiguration, err)
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("%w: failed to ping database: %v", ErrConfiguration, err)
		}
		a.DB = db
	}

	switch cfg.TemplateStore {
	case config.StoreSQLite:
		a.Templates = database.NewTemplateRepository(a.DB)
	default:
		a.Templates = templates.NewFileStore(cfg.TemplateStorePath)
	}
	a.Resolver = templates.NewResolver(a.Templates, a.Builtins, log.With("component", "templates"))

	aiCfg := cfg.AIConfig()
	backend, err := ai.NewBackend(aiCfg, &http.Client{Timeout: aiCfg.Timeout})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	a.Generator = ai.NewGenerator(backend, aiCfg, log.With("component", "ai"))

	observers := pipeline.MultiObserver{pipeline.NewLogObserver(log.With("component", "pipeline"))}
	if cfg.History && a.DB != nil {
		a.History = database.NewHistoryRepository(a.DB)
		observers = append(observers, pipeline.NewRecordingObserver(a.History, log))
	}

	a.Pipeline = pipeline.New(pipeline.Deps{
		Source:    a.Source,
		Resolver:  a.Resolver,
		Generator: a.Generator,
		Writer:    a.Artifacts,
		Renderer:  a.Renderer,
		Observer:  observers,
		Logger:    log.With("component", "pipeline"),
	})

	return a, nil
}

// Close closes all resources
func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
