package app

import (
	"errors"

	"github.com/khrees2412/cvforge/internal/ai"
	"github.com/khrees2412/cvforge/internal/pipeline"
	"github.com/khrees2412/cvforge/internal/templates"
)

// Sentinel errors for common application errors
var (
	ErrConfiguration = errors.New("configuration error")
	ErrProvider      = errors.New("job provider error")
	ErrGeneration    = errors.New("generation error")
	ErrRender        = errors.New("render error")
	ErrValidation    = errors.New("validation error")
	ErrNotFound      = templates.ErrNotFound
)

// Classify returns the sentinel describing err, or nil when it matches none
func Classify(err error) error {
	if err == nil {
		return nil
	}

	var genErr *ai.GenerationError
	var stageErr *pipeline.StageError
	switch {
	case errors.Is(err, ErrValidation):
		return ErrValidation
	case errors.Is(err, ErrNotFound):
		return ErrNotFound
	case errors.Is(err, ErrConfiguration):
		return ErrConfiguration
	case errors.Is(err, ErrProvider):
		return ErrProvider
	case errors.Is(err, ErrRender):
		return ErrRender
	case errors.As(err, &genErr), errors.Is(err, ErrGeneration):
		return ErrGeneration
	case errors.As(err, &stageErr):
		switch stageErr.Stage {
		case pipeline.StageRendered:
			return ErrRender
		case pipeline.StageGenerated:
			return ErrGeneration
		}
	}
	return nil
}
