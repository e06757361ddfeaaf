package cmd

import (
	"fmt"
	"os"

	"github.com/khrees2412/cvforge/internal/pipeline"
	"github.com/khrees2412/cvforge/pkg/models"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a CV for a single job offer",
	Long:  "Generate a CV for a job described on the command line, without searching Jooble",
	Example: `  cvforge generate --title "Go Developer" --company Acme --snippet "We build APIs in Go" --profile me.json
  cvforge generate --title "Programista Java" --company Beta --snippet "Szukamy programisty" --template-file cv.docx`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := mustApp(cmd)
		if err != nil {
			return err
		}

		var job models.JobPosting
		job.Title, _ = cmd.Flags().GetString("title")
		job.Company, _ = cmd.Flags().GetString("company")
		job.Location, _ = cmd.Flags().GetString("location")
		job.Snippet, _ = cmd.Flags().GetString("snippet")
		job.Link, _ = cmd.Flags().GetString("link")

		if job.Title == "" {
			return fmt.Errorf("job title is required, use --title")
		}

		in, err := baseCVInput(cmd)
		if err != nil {
			return err
		}

		cmd.Printf("Generating CV for %s", job.Title)
		if job.Company != "" {
			cmd.Printf(" at %s", job.Company)
		}
		cmd.Println()

		p := a.Pipeline.WithObserver(pipeline.NewConsoleObserver(os.Stdout))
		result := p.Process(cmd.Context(), []models.JobPosting{job}, in)
		if len(result.Results) == 0 {
			if err := cmd.Context().Err(); err != nil {
				return err
			}
			return fmt.Errorf("CV generation failed, see the log for details")
		}

		show, _ := cmd.Flags().GetBool("print")
		if show {
			cmd.Println(titleStyle.Render("Generated CV"))
			cmd.Println(result.Results[0].CV)
		}
		printResults(a.Artifacts, result)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().String("title", "", "Job title")
	generateCmd.Flags().String("company", "", "Company name")
	generateCmd.Flags().String("location", "", "Job location")
	generateCmd.Flags().String("snippet", "", "Job description, used for language detection and the prompt")
	generateCmd.Flags().String("link", "", "Link to the offer")
	generateCmd.Flags().Bool("print", false, "Print the generated CV")
	addBaseCVFlags(generateCmd)
}
