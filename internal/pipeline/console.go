package pipeline

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/khrees2412/cvforge/pkg/models"
)

const progressBarWidth = 20

var (
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	jobStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	barFillStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	barDimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// ConsoleObserver prints a progress bar and per-job status lines for the CLI
type ConsoleObserver struct {
	out   io.Writer
	total int
	done  int
}

func NewConsoleObserver(out io.Writer) *ConsoleObserver {
	return &ConsoleObserver{out: out}
}

func (o *ConsoleObserver) BatchStarted(total int) {
	o.total = total
	o.done = 0
	fmt.Fprintf(o.out, "\nGenerating CVs for %d jobs...\n", total)
}

func (o *ConsoleObserver) StageChanged(index int, job models.JobPosting, stage Stage) {
	if stage == StageTemplateResolved {
		fmt.Fprintln(o.out, jobStyle.Render(fmt.Sprintf("Processing: %s at %s", job.Title, job.Company)))
	}
}

func (o *ConsoleObserver) JobFailed(index int, job models.JobPosting, stage Stage, err error) {
	if stage == StageRendered {
		fmt.Fprintf(o.out, "%s PDF not rendered for %s: %v\n", warnStyle.Render("!"), job.Title, err)
		return
	}
	fmt.Fprintf(o.out, "%s Skipping %s at %s: %v\n", failStyle.Render("✗"), job.Title, job.Company, err)
	o.advance()
}

func (o *ConsoleObserver) JobSucceeded(index int, result models.CVResult) {
	if result.Rendered {
		fmt.Fprintf(o.out, "%s CV saved to: %s and %s\n", okStyle.Render("✓"), result.CVTxt, result.CVFilename)
	} else {
		fmt.Fprintf(o.out, "%s CV saved to: %s\n", okStyle.Render("✓"), result.CVTxt)
	}
	o.advance()
}

func (o *ConsoleObserver) BatchFinished(succeeded, total int) {
	fmt.Fprintln(o.out, okStyle.Render(fmt.Sprintf("Completed %d of %d jobs", succeeded, total)))
}

func (o *ConsoleObserver) advance() {
	o.done++
	fmt.Fprintln(o.out, progressBar(o.done, o.total))
}

// progressBar renders "[####----] done/total"
func progressBar(done, total int) string {
	filled := 0
	if total > 0 {
		progress := float64(done) / float64(total)
		if progress > 1 {
			progress = 1
		}
		filled = int(progress*progressBarWidth + 0.5)
	}
	return fmt.Sprintf("[%s%s] %d/%d",
		barFillStyle.Render(strings.Repeat("#", filled)),
		barDimStyle.Render(strings.Repeat("-", progressBarWidth-filled)),
		done, total)
}
