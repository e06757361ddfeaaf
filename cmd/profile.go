package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/khrees2412/cvforge/internal/resume"
	"github.com/khrees2412/cvforge/pkg/models"
	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage your profile",
	Long:  "Create and preview the profile file used to generate CVs from scratch",
}

var initProfileCmd = &cobra.Command{
	Use:         "init <file>",
	Short:       "Create a profile file with an interactive wizard",
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{skipApp: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("profile already exists: %s", path)
		}

		fmt.Println(titleStyle.Render("Let's set up your profile."))
		reader := bufio.NewReader(os.Stdin)

		var p models.Profile
		p.Name = ask(reader, "Full Name: ")
		p.Email = ask(reader, "Email: ")
		p.Phone = ask(reader, "Phone (optional): ")
		p.Summary = ask(reader, "Summary: ")
		p.Skills = splitList(ask(reader, "Skills (comma separated): "))

		for {
			company := ask(reader, "Company (empty to finish experience): ")
			if company == "" {
				break
			}
			p.Experience = append(p.Experience, models.Experience{
				Company:     company,
				Position:    ask(reader, "  Position: "),
				StartDate:   ask(reader, "  Start date: "),
				EndDate:     ask(reader, "  End date (empty if current): "),
				Description: ask(reader, "  Description: "),
			})
		}

		for {
			school := ask(reader, "School (empty to finish education): ")
			if school == "" {
				break
			}
			p.Education = append(p.Education, models.Education{
				School:    school,
				Degree:    ask(reader, "  Degree: "),
				Field:     ask(reader, "  Field: "),
				StartDate: ask(reader, "  Start date: "),
				EndDate:   ask(reader, "  End date: "),
			})
		}

		data, err := json.MarshalIndent(p, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, data, 0o600); err != nil {
			return fmt.Errorf("write profile: %w", err)
		}

		fmt.Println(titleStyle.Render("✓ Profile created successfully!"))
		fmt.Println("Next steps:")
		fmt.Printf("  1. Preview the CV it produces: cvforge profile render %s\n", path)
		fmt.Printf("  2. Generate CVs: cvforge search --query \"backend developer\" --profile %s\n", path)
		return nil
	},
}

var renderProfileCmd = &cobra.Command{
	Use:         "render <file>",
	Short:       "Print the base CV built from a profile file",
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{skipApp: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := readProfile(args[0])
		if err != nil {
			return err
		}
		fmt.Println(resume.Synthesize(*p))
		return nil
	},
}

func ask(reader *bufio.Reader, label string) string {
	fmt.Print(labelStyle.Render(label))
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(initProfileCmd)
	profileCmd.AddCommand(renderProfileCmd)
}
