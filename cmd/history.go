package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View generated CVs and statistics",
	Long:  "List recently generated CVs and summarize the generation history",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := mustApp(cmd)
		if err != nil {
			return err
		}
		if a.History == nil {
			fmt.Println("History is disabled. Enable it with 'cvforge config set --key history --value true'")
			return nil
		}

		limit, _ := cmd.Flags().GetInt("limit")
		gens, err := a.History.Recent(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("fetch history: %w", err)
		}

		if len(gens) == 0 {
			fmt.Println("No CVs generated yet. Run 'cvforge search --query <title>' to start.")
			return nil
		}

		fmt.Println(titleStyle.Render("Recent CVs"))
		for i, g := range gens {
			fmt.Printf("\n%d. %s\n", i+1, g.Title)
			printField("Company:", g.Company)
			printField("Location:", g.Location)
			printField("Language:", g.Language)
			printField("Generated:", g.GeneratedAt.Local().Format("Jan 2, 2006 15:04"))
			printField("Text:", g.CVTxt)
			if g.Rendered {
				printField("PDF:", g.CVFilename)
			}
		}

		stats, err := a.History.Stats(cmd.Context())
		if err != nil {
			return fmt.Errorf("fetch statistics: %w", err)
		}

		fmt.Printf("\n%s\n", labelStyle.Render("Overview"))
		fmt.Printf("  Total CVs: %d\n", stats.Total)
		fmt.Printf("  Companies: %d\n", stats.Companies)
		if stats.Total > 0 {
			fmt.Printf("  Rendered to PDF: %d (%.1f%%)\n", stats.Rendered, float64(stats.Rendered)/float64(stats.Total)*100)
		}

		if len(stats.ByLang) > 0 {
			fmt.Printf("\n%s\n", labelStyle.Render("Languages"))
			langs := make([]string, 0, len(stats.ByLang))
			for l := range stats.ByLang {
				langs = append(langs, l)
			}
			sort.Strings(langs)
			for _, l := range langs {
				fmt.Printf("  %s: %d\n", l, stats.ByLang[l])
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntP("limit", "n", 10, "Number of recent CVs to show")
}
