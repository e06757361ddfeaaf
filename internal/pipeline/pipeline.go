package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/khrees2412/cvforge/internal/matcher"
	"github.com/khrees2412/cvforge/internal/renderer"
	"github.com/khrees2412/cvforge/internal/resume"
	"github.com/khrees2412/cvforge/internal/templates"
	"github.com/khrees2412/cvforge/pkg/logging"
	"github.com/khrees2412/cvforge/pkg/models"
)

// JobSource fetches raw postings for a query
type JobSource interface {
	Search(ctx context.Context, query, location string) ([]models.JobPosting, error)
}

// TemplateResolver picks the base text for a job
type TemplateResolver interface {
	Resolve(ctx context.Context, job models.JobPosting, in templates.Input) (templates.Resolution, error)
}

// Generator turns a prompt into CV text
type Generator interface {
	Generate(ctx context.Context, prompt resume.GenerationPrompt) (string, error)
}

// Request is one search-and-generate call
type Request struct {
	Query          string
	Location       string
	Technology     string
	CustomTemplate string
	TemplateName   string
	Profile        *models.Profile
}

// SearchQuery is the query sent to the job source and used for filtering.
func (r Request) SearchQuery() string {
	return strings.TrimSpace(strings.TrimSpace(r.Query) + " " + strings.TrimSpace(r.Technology))
}

func (r Request) templateInput() templates.Input {
	return templates.Input{
		CustomTemplate: r.CustomTemplate,
		TemplateName:   r.TemplateName,
		Profile:        r.Profile,
	}
}

// Result is the outcome of a batch
type Result struct {
	Jobs    int
	Results []models.CVResult
}

// Deps are the collaborators of a Pipeline
type Deps struct {
	Source    JobSource
	Resolver  TemplateResolver
	Generator Generator
	Writer    *ArtifactWriter
	Renderer  renderer.Renderer
	Observer  Observer
	Logger    *logging.Logger
}

// Pipeline searches for jobs and generates one tailored CV per job.
type Pipeline struct {
	source    JobSource
	resolver  TemplateResolver
	generator Generator
	writer    *ArtifactWriter
	renderer  renderer.Renderer
	observer  Observer
	log       *logging.Logger
}

func New(deps Deps) *Pipeline {
	p := &Pipeline{
		source:    deps.Source,
		resolver:  deps.Resolver,
		generator: deps.Generator,
		writer:    deps.Writer,
		renderer:  deps.Renderer,
		observer:  deps.Observer,
		log:       deps.Logger,
	}
	if p.log == nil {
		p.log = logging.NewNop()
	}
	if p.observer == nil {
		p.observer = NopObserver{}
	}
	if p.renderer == nil {
		p.renderer = renderer.Disabled{}
	}
	return p
}

// WithObserver returns a copy of p that also reports to o
func (p *Pipeline) WithObserver(o Observer) *Pipeline {
	cp := *p
	cp.observer = MultiObserver{p.observer, o}
	return &cp
}

// Run searches the job source, filters the postings and generates a CV for
// each one. A failing job is reported and skipped. Only a job source error
// fails the whole call.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Result, error) {
	if p.source == nil {
		return nil, fmt.Errorf("no job source configured")
	}

	query := req.SearchQuery()
	p.log.Info("starting job search", "query", query, "location", req.Location)

	postings, err := p.source.Search(ctx, query, req.Location)
	if err != nil {
		return nil, err
	}

	jobs := matcher.Filter(postings, query)
	p.log.Info("jobs found", "fetched", len(postings), "matching", len(jobs))

	return p.Process(ctx, jobs, req.templateInput()), nil
}

// Process generates CVs for already selected jobs, sequentially and in order.
func (p *Pipeline) Process(ctx context.Context, jobs []models.JobPosting, in templates.Input) *Result {
	res := &Result{Jobs: len(jobs), Results: []models.CVResult{}}
	if len(jobs) == 0 {
		return res
	}

	p.observer.BatchStarted(len(jobs))
	for i, job := range jobs {
		if ctx.Err() != nil {
			p.observer.JobFailed(i, job, StagePending, ctx.Err())
			continue
		}

		result, err := p.processJob(ctx, i, job, in)
		if err != nil {
			stage := StagePending
			var se *StageError
			if errors.As(err, &se) {
				stage = se.Stage
			}
			p.observer.StageChanged(i, job, StageFailed)
			p.observer.JobFailed(i, job, stage, err)
			continue
		}

		res.Results = append(res.Results, result)
		p.observer.JobSucceeded(i, result)
	}
	p.observer.BatchFinished(len(res.Results), len(jobs))

	return res
}

func (p *Pipeline) processJob(ctx context.Context, index int, job models.JobPosting, in templates.Input) (models.CVResult, error) {
	p.observer.StageChanged(index, job, StagePending)

	resolution, err := p.resolver.Resolve(ctx, job, in)
	if err != nil {
		return models.CVResult{}, &StageError{Stage: StageTemplateResolved, Err: err}
	}
	p.observer.StageChanged(index, job, StageTemplateResolved)

	prompt := resume.BuildPrompt(job, resolution.BaseText, resolution.Language, resolution.Strategy)
	p.observer.StageChanged(index, job, StagePrompted)

	text, err := p.generator.Generate(ctx, prompt)
	if err != nil {
		return models.CVResult{}, &StageError{Stage: StageGenerated, Err: err}
	}
	p.observer.StageChanged(index, job, StageGenerated)

	base := p.writer.BaseName(job)
	txtName, err := p.writer.WriteText(base, text)
	if err != nil {
		return models.CVResult{}, &StageError{Stage: StagePersisted, Err: err}
	}
	p.observer.StageChanged(index, job, StagePersisted)

	result := models.CVResult{
		JobPosting: job,
		CV:         text,
		CVFilename: base + ".pdf",
		CVTxt:      txtName,
		Language:   resolution.Language.String(),
	}

	pdfPath, err := p.writer.Path(result.CVFilename)
	if err == nil {
		err = p.renderer.Render(ctx, text, pdfPath)
	}
	if err != nil {
		p.observer.JobFailed(index, job, StageRendered, &StageError{Stage: StageRendered, Err: err})
		return result, nil
	}
	result.Rendered = true
	p.observer.StageChanged(index, job, StageRendered)

	return result, nil
}
