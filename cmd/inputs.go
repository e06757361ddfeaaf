package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/khrees2412/cvforge/internal/extract"
	"github.com/khrees2412/cvforge/internal/templates"
	"github.com/khrees2412/cvforge/pkg/models"
	"github.com/spf13/cobra"
)

// addBaseCVFlags registers the flags that choose the CV to start from
func addBaseCVFlags(cmd *cobra.Command) {
	cmd.Flags().String("profile", "", "Profile JSON file to build the CV from")
	cmd.Flags().String("template", "", "Name of a saved template")
	cmd.Flags().String("template-file", "", "Base CV file (.txt, .md, .pdf, .docx)")
}

// baseCVInput reads the base CV flags into a resolver input
func baseCVInput(cmd *cobra.Command) (templates.Input, error) {
	profilePath, _ := cmd.Flags().GetString("profile")
	name, _ := cmd.Flags().GetString("template")
	file, _ := cmd.Flags().GetString("template-file")

	in := templates.Input{TemplateName: name}

	if file != "" {
		text, err := extract.File(cmd.Context(), file)
		if err != nil {
			return in, fmt.Errorf("read template file: %w", err)
		}
		in.CustomTemplate = text
	}

	if profilePath != "" {
		profile, err := readProfile(profilePath)
		if err != nil {
			return in, err
		}
		in.Profile = profile
	}

	return in, nil
}

func readProfile(path string) (*models.Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	var profile models.Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("parse profile %s: %w", path, err)
	}
	return &profile, nil
}
