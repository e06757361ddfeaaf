package resume

import (
	"fmt"
	"strings"

	"github.com/khrees2412/cvforge/internal/lang"
	"github.com/khrees2412/cvforge/pkg/models"
)

// Strategy selects how the model treats the base text
type Strategy int

const (
	// Customize rewrites an existing CV while keeping its layout
	Customize Strategy = iota
	// FromProfile writes a new CV from synthesized profile facts
	FromProfile
)

func (s Strategy) String() string {
	switch s {
	case Customize:
		return "customize"
	case FromProfile:
		return "from_profile"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

// GenerationPrompt is the system and user message pair sent to the model
type GenerationPrompt struct {
	System string
	User   string
}

type labels struct {
	header       string
	position     string
	company      string
	location     string
	requirements string
	missing      string
	noReqs       string
}

var (
	englishLabels = labels{
		header:       "JOB OFFER:",
		position:     "Position",
		company:      "Company",
		location:     "Location",
		requirements: "Requirements",
		missing:      "Not specified",
		noReqs:       "No requirements",
	}
	polishLabels = labels{
		header:       "OFERTA PRACY:",
		position:     "Stanowisko",
		company:      "Firma",
		location:     "Lokalizacja",
		requirements: "Wymagania",
		missing:      "Nie podano",
		noReqs:       "Brak wymagan",
	}
)

// BuildPrompt assembles the generation prompt for one job.
func BuildPrompt(job models.JobPosting, baseText string, language lang.Language, strategy Strategy) GenerationPrompt {
	var l labels
	switch language {
	case lang.Polish:
		l = polishLabels
	case lang.English:
		l = englishLabels
	default:
		l = englishLabels
	}

	var b strings.Builder
	b.WriteString(instruction(language, strategy))
	b.WriteString("\n\n")
	b.WriteString(l.header)
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s: %s\n", l.position, orDefault(job.Title, l.missing))
	fmt.Fprintf(&b, "%s: %s\n", l.company, orDefault(job.Company, l.missing))
	fmt.Fprintf(&b, "%s: %s\n", l.location, orDefault(job.Location, l.missing))
	fmt.Fprintf(&b, "%s: %s\n", l.requirements, orDefault(job.Snippet, l.noReqs))
	b.WriteString("\n")
	b.WriteString(baseHeader(language, strategy))
	b.WriteString("\n")
	b.WriteString(baseText)

	return GenerationPrompt{
		System: systemMessage(language, strategy),
		User:   b.String(),
	}
}

func instruction(language lang.Language, strategy Strategy) string {
	switch strategy {
	case FromProfile:
		if language == lang.Polish {
			return "Stworz przejrzyste, dobrze sformatowane CV na podstawie profilu kandydata, dopasowane do oferty pracy. Uzywaj tylko faktow z profilu. CV w jezyku polskim."
		}
		return "Create a well-formatted CV from the candidate profile below, tailored to this job offer. Use only facts from the profile. CV in English."
	default:
		if language == lang.Polish {
			return "Dostosuj ponizsze CV do oferty pracy. Skup sie na doswiadczeniu, umiejetnosciach i projektach zwiazanych z wymaganiami. Zachowaj dokladnie ten sam format. CV w jezyku polskim."
		}
		return "Customize the following CV for this job offer. Focus on experience, skills and projects related to the requirements. Keep exactly the same format. CV in English."
	}
}

func baseHeader(language lang.Language, strategy Strategy) string {
	switch strategy {
	case FromProfile:
		if language == lang.Polish {
			return "PROFIL KANDYDATA:"
		}
		return "CANDIDATE PROFILE:"
	default:
		if language == lang.Polish {
			return "CV DO DOSTOSOWANIA:"
		}
		return "CV TO CUSTOMIZE:"
	}
}

func systemMessage(language lang.Language, strategy Strategy) string {
	switch strategy {
	case FromProfile:
		return "You are a professional CV writer. Create a clear, well-formatted CV using only facts from the candidate profile. CV in " + language.DisplayName()
	default:
		return "You are a professional CV customizer. Modify ONLY existing sections. Keep the exact same format. CV in " + language.DisplayName()
	}
}
