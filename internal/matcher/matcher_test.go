package matcher

import (
	"testing"

	"github.com/khrees2412/cvforge/pkg/models"
)

func TestFilterDedupKeepsFirstOccurrence(t *testing.T) {
	postings := []models.JobPosting{
		{Title: "Backend Engineer", Company: "Acme", Snippet: "first", Link: "a"},
		{Title: "Backend Engineer", Company: "Beta", Snippet: "other company", Link: "b"},
		{Title: "Backend Engineer", Company: "Acme", Snippet: "duplicate", Link: "c"},
	}

	got := Filter(postings, "backend")
	if len(got) != 2 {
		t.Fatalf("expected 2 postings, got %d: %+v", len(got), got)
	}
	if got[0].Link != "a" || got[1].Link != "b" {
		t.Errorf("unexpected order or survivor: %+v", got)
	}
}

func TestFilterRelevance(t *testing.T) {
	tests := []struct {
		name    string
		posting models.JobPosting
		query   string
		want    bool
	}{
		{name: "title match", posting: models.JobPosting{Title: "Senior Backend Engineer"}, query: "Backend Engineer", want: true},
		{name: "snippet match case insensitive", posting: models.JobPosting{Title: "Engineer", Snippet: "BACKEND services in Go"}, query: "backend", want: true},
		{name: "no match", posting: models.JobPosting{Title: "Designer", Snippet: "Figma"}, query: "backend", want: false},
		{name: "empty query keeps everything", posting: models.JobPosting{Title: "Designer"}, query: "", want: true},
		{name: "polish text", posting: models.JobPosting{Title: "Programista Go", Snippet: "Szukamy osoby"}, query: "programista", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter([]models.JobPosting{tt.posting}, tt.query)
			if (len(got) == 1) != tt.want {
				t.Errorf("Filter kept=%v, want %v", len(got) == 1, tt.want)
			}
			if Matches(tt.posting, tt.query) != tt.want {
				t.Errorf("Matches = %v, want %v", !tt.want, tt.want)
			}
		})
	}
}

func TestFilterEveryOutputMatchesAndNothingRelevantDropped(t *testing.T) {
	postings := []models.JobPosting{
		{Title: "Go Developer", Company: "A"},
		{Title: "Java Developer", Company: "B", Snippet: "some go tooling"},
		{Title: "Chef", Company: "C", Snippet: "kitchen"},
		{Title: "Go Developer", Company: "A", Snippet: "dup"},
		{Title: "golang lead", Company: "D"},
	}

	got := Filter(postings, "GO")
	want := []string{"A", "B", "D"}
	if len(got) != len(want) {
		t.Fatalf("expected %d postings, got %d: %+v", len(want), len(got), got)
	}
	for i, company := range want {
		if got[i].Company != company {
			t.Errorf("position %d: company %q, want %q", i, got[i].Company, company)
		}
		if !Matches(got[i], "go") {
			t.Errorf("posting %+v does not match query", got[i])
		}
	}
}

func TestFilterIrrelevantFirstOccurrenceShadowsDuplicate(t *testing.T) {
	postings := []models.JobPosting{
		{Title: "Engineer", Company: "Acme", Snippet: "frontend"},
		{Title: "Engineer", Company: "Acme", Snippet: "backend"},
	}
	if got := Filter(postings, "backend"); len(got) != 0 {
		t.Errorf("expected the duplicate to be dropped, got %+v", got)
	}
}

func TestDedup(t *testing.T) {
	postings := []models.JobPosting{
		{Title: "A", Company: "X"},
		{Title: "A", Company: "Y"},
		{Title: "A", Company: "X"},
	}
	if got := Dedup(postings); len(got) != 2 {
		t.Errorf("expected 2 postings, got %d", len(got))
	}
}
