package resume

import (
	"strings"
	"testing"

	"github.com/khrees2412/cvforge/internal/lang"
	"github.com/khrees2412/cvforge/pkg/models"
)

func TestBuildPromptCustomizeEnglish(t *testing.T) {
	job := models.JobPosting{Title: "Backend Engineer", Company: "Acme", Location: "Warsaw", Snippet: "Go, PostgreSQL"}
	p := BuildPrompt(job, "BASE CV", lang.English, Customize)

	for _, want := range []string{
		"Keep exactly the same format",
		"Position: Backend Engineer",
		"Company: Acme",
		"Location: Warsaw",
		"Requirements: Go, PostgreSQL",
		"CV TO CUSTOMIZE:\nBASE CV",
	} {
		if !strings.Contains(p.User, want) {
			t.Errorf("user prompt missing %q:\n%s", want, p.User)
		}
	}
	want := "You are a professional CV customizer. Modify ONLY existing sections. Keep the exact same format. CV in English"
	if p.System != want {
		t.Errorf("system = %q, want %q", p.System, want)
	}
}

func TestBuildPromptPolishPlaceholders(t *testing.T) {
	p := BuildPrompt(models.JobPosting{}, "BAZA", lang.Polish, Customize)

	for _, want := range []string{
		"Zachowaj dokladnie ten sam format",
		"Stanowisko: Nie podano",
		"Firma: Nie podano",
		"Lokalizacja: Nie podano",
		"Wymagania: Brak wymagan",
		"CV DO DOSTOSOWANIA:\nBAZA",
	} {
		if !strings.Contains(p.User, want) {
			t.Errorf("user prompt missing %q:\n%s", want, p.User)
		}
	}
	if !strings.HasSuffix(p.System, "CV in Polish") {
		t.Errorf("system = %q", p.System)
	}
}

func TestBuildPromptStrategiesDiffer(t *testing.T) {
	job := models.JobPosting{Title: "Dev", Snippet: "Go"}
	customize := BuildPrompt(job, "TEXT", lang.English, Customize)
	fromProfile := BuildPrompt(job, "TEXT", lang.English, FromProfile)

	if customize.User == fromProfile.User || customize.System == fromProfile.System {
		t.Fatal("strategies produced identical prompts")
	}
	if !strings.Contains(fromProfile.User, "Create a well-formatted CV") {
		t.Errorf("missing profile instruction:\n%s", fromProfile.User)
	}
	if !strings.Contains(fromProfile.User, "CANDIDATE PROFILE:\nTEXT") {
		t.Errorf("missing profile section:\n%s", fromProfile.User)
	}
	if strings.Contains(fromProfile.User, "Keep exactly the same format") {
		t.Error("profile prompt must not ask to keep the format")
	}
}

func TestStrategyString(t *testing.T) {
	if Customize.String() != "customize" || FromProfile.String() != "from_profile" {
		t.Errorf("unexpected names: %s %s", Customize, FromProfile)
	}
}
