package matcher

import (
	"strings"

	"github.com/khrees2412/cvforge/pkg/models"
)

// Filter drops duplicate postings and postings unrelated to query.
// Provider order is preserved and the first posting with a given
// (title, company) key wins. A key is marked as seen before relevance
// is checked, so an irrelevant first occurrence still shadows later ones.
func Filter(postings []models.JobPosting, query string) []models.JobPosting {
	q := strings.ToLower(strings.TrimSpace(query))
	seen := make(map[string]struct{}, len(postings))
	filtered := make([]models.JobPosting, 0, len(postings))

	for _, job := range postings {
		key := job.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		if !matchesQuery(job, q) {
			continue
		}
		filtered = append(filtered, job)
	}

	return filtered
}

// Dedup removes postings whose (title, company) key was already seen.
func Dedup(postings []models.JobPosting) []models.JobPosting {
	return Filter(postings, "")
}

// Matches reports whether the posting's title or snippet contains query, ignoring case.
func Matches(job models.JobPosting, query string) bool {
	return matchesQuery(job, strings.ToLower(strings.TrimSpace(query)))
}

// matchesQuery expects q to be lowercased already
func matchesQuery(job models.JobPosting, q string) bool {
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(job.Title), q) ||
		strings.Contains(strings.ToLower(job.Snippet), q)
}
