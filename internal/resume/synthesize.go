package resume

import (
	"fmt"
	"strings"

	"github.com/khrees2412/cvforge/pkg/models"
)

const (
	notSpecified = "Not specified"
	present      = "Present"
)

// Section headers, in the order they appear in a synthesized document.
const (
	HeaderSummary    = "PROFESSIONAL SUMMARY"
	HeaderExperience = "WORK EXPERIENCE"
	HeaderEducation  = "EDUCATION"
	HeaderSkills     = "SKILLS"
)

// Synthesize renders a profile as a plain-text CV. Missing values are
// replaced with placeholders so the result always has every section.
func Synthesize(p models.Profile) string {
	var b strings.Builder

	b.WriteString(orDefault(p.Name, notSpecified))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Email: %s | Phone: %s\n", orDefault(p.Email, notSpecified), orDefault(p.Phone, notSpecified))

	writeSection(&b, HeaderSummary)
	b.WriteString(orDefault(p.Summary, notSpecified))
	b.WriteString("\n")

	writeSection(&b, HeaderExperience)
	if len(p.Experience) == 0 {
		b.WriteString(notSpecified + "\n")
	}
	for i, exp := range p.Experience {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s at %s\n", orDefault(exp.Position, "Position"), orDefault(exp.Company, notSpecified))
		fmt.Fprintf(&b, "%s - %s\n", orDefault(exp.StartDate, notSpecified), orDefault(exp.EndDate, present))
		if desc := strings.TrimSpace(exp.Description); desc != "" {
			b.WriteString(desc)
			b.WriteString("\n")
		}
	}

	writeSection(&b, HeaderEducation)
	if len(p.Education) == 0 {
		b.WriteString(notSpecified + "\n")
	}
	for i, edu := range p.Education {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s in %s at %s\n", orDefault(edu.Degree, "Degree"), orDefault(edu.Field, "Field"), orDefault(edu.School, notSpecified))
		fmt.Fprintf(&b, "%s - %s\n", orDefault(edu.StartDate, notSpecified), orDefault(edu.EndDate, present))
	}

	writeSection(&b, HeaderSkills)
	skills := make([]string, 0, len(p.Skills))
	for _, s := range p.Skills {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}
	if len(skills) == 0 {
		b.WriteString(notSpecified + "\n")
	} else {
		b.WriteString(strings.Join(skills, ", "))
		b.WriteString("\n")
	}

	return b.String()
}

func writeSection(b *strings.Builder, header string) {
	b.WriteString("\n")
	b.WriteString(header)
	b.WriteString("\n")
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}
