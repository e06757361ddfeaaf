package templates

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/khrees2412/cvforge/internal/lang"
	"github.com/khrees2412/cvforge/internal/resume"
	"github.com/khrees2412/cvforge/pkg/logging"
	"github.com/khrees2412/cvforge/pkg/models"
)

// Input carries the caller's template choices for one request
type Input struct {
	CustomTemplate string
	TemplateName   string
	Profile        *models.Profile
}

// Resolution is the base text chosen for one job
type Resolution struct {
	Language lang.Language
	Strategy resume.Strategy
	BaseText string
	Source   string
}

// Resolver picks the base text and generation strategy for a job.
type Resolver struct {
	store    Store
	builtins *Builtins
	log      *logging.Logger
}

// NewResolver creates a resolver. store may be nil when custom templates are disabled.
func NewResolver(store Store, builtins *Builtins, log *logging.Logger) *Resolver {
	if log == nil {
		log = logging.NewNop()
	}
	if builtins == nil {
		builtins = NewBuiltins("")
	}
	return &Resolver{store: store, builtins: builtins, log: log}
}

// Resolve applies, in order: an inline custom template, a stored template
// by name, the caller's profile, and finally the built-in template for the
// language detected from the job snippet.
func (r *Resolver) Resolve(ctx context.Context, job models.JobPosting, in Input) (Resolution, error) {
	res := Resolution{Language: lang.Detect(job.Snippet)}
	name := strings.TrimSpace(in.TemplateName)

	if strings.TrimSpace(in.CustomTemplate) != "" {
		if name != "" && r.store != nil {
			if err := r.store.Save(ctx, name, in.CustomTemplate); err != nil {
				r.log.Warn("failed to save custom template", "name", name, "error", err)
			}
		}
		res.Strategy = resume.Customize
		res.BaseText = in.CustomTemplate
		res.Source = "custom"
		return res, nil
	}

	if name != "" && r.store != nil {
		content, err := r.store.Get(ctx, name)
		switch {
		case err == nil:
			res.Strategy = resume.Customize
			res.BaseText = content
			res.Source = "stored:" + name
			return res, nil
		case errors.Is(err, ErrNotFound):
			r.log.Debug("stored template not found, falling back", "name", name)
		default:
			return Resolution{}, fmt.Errorf("failed to load template %q: %w", name, err)
		}
	}

	if in.Profile != nil {
		res.Strategy = resume.FromProfile
		res.BaseText = resume.Synthesize(*in.Profile)
		res.Source = "profile"
		return res, nil
	}

	text, err := r.builtins.Load(res.Language)
	if err != nil {
		return Resolution{}, err
	}
	res.Strategy = resume.Customize
	res.BaseText = text
	res.Source = "builtin:" + res.Language.String()
	return res, nil
}
