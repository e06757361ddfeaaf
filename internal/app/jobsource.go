package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/khrees2412/cvforge/pkg/jooble"
	"github.com/khrees2412/cvforge/pkg/models"
)

// JoobleSource adapts the Jooble client to the pipeline's job source.
// The client is built lazily so a missing API key only fails searches.
type JoobleSource struct {
	cfg    jooble.Config
	client *jooble.Client
	err    error
}

func NewJoobleSource(cfg jooble.Config) *JoobleSource {
	client, err := jooble.NewClient(cfg)
	return &JoobleSource{cfg: cfg, client: client, err: err}
}

func (s *JoobleSource) Search(ctx context.Context, query, location string) ([]models.JobPosting, error) {
	if s.err != nil {
		if errors.Is(s.err, jooble.ErrMissingAPIKey) {
			return nil, fmt.Errorf("%w: JOOBLE_API_KEY is required", ErrConfiguration)
		}
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, s.err)
	}

	jobs, err := s.client.SearchJobs(ctx, query, jooble.SearchParams{Location: location})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: failed to fetch jobs from Jooble: %w", ErrProvider, err)
	}

	postings := make([]models.JobPosting, 0, len(jobs))
	for _, j := range jobs {
		postings = append(postings, models.JobPosting{
			Title:    j.Title,
			Company:  j.Company,
			Location: j.Location,
			Snippet:  j.Snippet,
			Salary:   j.Salary,
			Link:     j.Link,
		})
	}
	return postings, nil
}
