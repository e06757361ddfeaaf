package cmd

import (
	"fmt"
	"os"

	"github.com/khrees2412/cvforge/internal/pipeline"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search Jooble and generate a CV for every matching offer",
	Example: `  cvforge search --query "backend developer" --location Warsaw --profile me.json
  cvforge search --query "frontend" --technology React --template-file cv.pdf
  cvforge search --query "devops" --template my-devops-cv`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := mustApp(cmd)
		if err != nil {
			return err
		}

		query, _ := cmd.Flags().GetString("query")
		location, _ := cmd.Flags().GetString("location")
		technology, _ := cmd.Flags().GetString("technology")

		if query == "" {
			return fmt.Errorf("query is required, use --query")
		}

		in, err := baseCVInput(cmd)
		if err != nil {
			return err
		}

		req := pipeline.Request{
			Query:          query,
			Location:       location,
			Technology:     technology,
			CustomTemplate: in.CustomTemplate,
			TemplateName:   in.TemplateName,
			Profile:        in.Profile,
		}

		fmt.Printf("Searching for jobs: '%s'", req.SearchQuery())
		if location != "" {
			fmt.Printf(" in %s", location)
		}
		fmt.Println()

		result, err := a.Pipeline.WithObserver(pipeline.NewConsoleObserver(os.Stdout)).Run(cmd.Context(), req)
		if err != nil {
			return err
		}

		if result.Jobs == 0 {
			fmt.Println("No jobs found matching your criteria.")
			return nil
		}

		fmt.Println(titleStyle.Render(fmt.Sprintf("Generated %d of %d CVs", len(result.Results), result.Jobs)))
		printResults(a.Artifacts, result)
		return nil
	},
}

func printResults(artifacts *pipeline.ArtifactWriter, result *pipeline.Result) {
	for i, r := range result.Results {
		fmt.Printf("\n%d. %s\n", i+1, r.Title)
		printField("Company:", r.Company)
		printField("Location:", r.Location)
		printField("Salary:", r.Salary)
		printField("Language:", r.Language)
		printField("URL:", r.Link)
		if txt, err := artifacts.Path(r.CVTxt); err == nil {
			printField("Text:", txt)
		}
		if r.Rendered {
			if pdf, err := artifacts.Path(r.CVFilename); err == nil {
				printField("PDF:", pdf)
			}
		}
	}
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringP("query", "q", "", "Job title to search for")
	searchCmd.Flags().StringP("location", "l", "", "Job location")
	searchCmd.Flags().StringP("technology", "t", "", "Technology appended to the query")
	addBaseCVFlags(searchCmd)
}
