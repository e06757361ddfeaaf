package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/khrees2412/cvforge/internal/app"
	"github.com/khrees2412/cvforge/internal/pipeline"
	"github.com/khrees2412/cvforge/internal/templates"
	"github.com/khrees2412/cvforge/pkg/logging"
	"github.com/khrees2412/cvforge/web"
)

// Runner executes one search-and-generate request
type Runner interface {
	Run(ctx context.Context, req pipeline.Request) (*pipeline.Result, error)
}

// Deps are the collaborators of the HTTP surface
type Deps struct {
	Runner      Runner
	Templates   templates.Store
	Builtins    *templates.Builtins
	Artifacts   *pipeline.ArtifactWriter
	Logger      *logging.Logger
	Development bool
	CORSOrigins []string
	Addr        string
}

// Server is the HTTP surface for the UI
type Server struct {
	runner    Runner
	templates templates.Store
	builtins  *templates.Builtins
	artifacts *pipeline.ArtifactWriter
	log       *logging.Logger
	dev       bool

	engine *gin.Engine
	http   *http.Server
}

// FromApp collects server dependencies from the application container
func FromApp(a *app.App) Deps {
	return Deps{
		Runner:      a.Pipeline,
		Templates:   a.Templates,
		Builtins:    a.Builtins,
		Artifacts:   a.Artifacts,
		Logger:      a.Logger.With("component", "http"),
		Development: a.Config.IsDevelopment(),
		CORSOrigins: a.Config.CORSOrigins,
		Addr:        a.Config.Addr(),
	}
}

// New constructs the Gin engine with middleware and routes registered.
func New(deps Deps) *Server {
	if deps.Logger == nil {
		deps.Logger = logging.NewNop()
	}
	if deps.Builtins == nil {
		deps.Builtins = templates.NewBuiltins("")
	}

	if !deps.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(
		RequestID(),
		Logging(deps.Logger),
		Recovery(deps.Logger),
		CORS(deps.CORSOrigins),
	)

	s := &Server{
		runner:    deps.Runner,
		templates: deps.Templates,
		builtins:  deps.Builtins,
		artifacts: deps.Artifacts,
		log:       deps.Logger,
		dev:       deps.Development,
		engine:    r,
	}
	s.registerRoutes(r)

	s.http = &http.Server{
		Addr:              deps.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) registerRoutes(r *gin.Engine) {
	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	r.POST("/search", s.handleSearch)

	r.GET("/templates", s.handleListTemplates)
	r.POST("/templates", s.handleSaveTemplate)
	r.GET("/templates/builtin", s.handleBuiltinTemplates)
	r.DELETE("/templates/:name", s.handleDeleteTemplate)

	r.GET("/cvs/:name", s.handleDownload)
	r.HEAD("/cvs/:name", s.handleDownload)

	r.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", web.Index)
	})
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start listens until Shutdown is called
func (s *Server) Start() error {
	s.log.Info("server running", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
