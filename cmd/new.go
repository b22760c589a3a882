package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/marcus/intake/internal/config"
	"github.com/marcus/intake/internal/form"
)

var newCmd = &cobra.Command{
	Use:   "new <form-id>",
	Short: "Scaffold a new form definition",
	Long: `Create a form definition JSON in the workspace forms directory.
Prompts for the basics and writes a starter file to edit by hand.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		baseDir := getBaseDir()
		formID := args[0]

		dir, err := config.FormsPath(baseDir)
		if err != nil {
			return err
		}
		path := filepath.Join(dir, formID+".json")
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}

		var (
			title        = formID
			sectionTitle = "Details"
			firstField   = "name"
			firstKind    = string(form.KindText)
			required     = true
		)

		prompt := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Form title").
					Value(&title),
				huh.NewInput().
					Title("First section title").
					Value(&sectionTitle),
				huh.NewInput().
					Title("First field ID").
					Value(&firstField),
				huh.NewSelect[string]().
					Title("First field kind").
					Options(
						huh.NewOption("text", string(form.KindText)),
						huh.NewOption("multiline", string(form.KindMultiline)),
						huh.NewOption("select", string(form.KindSelect)),
						huh.NewOption("combobox", string(form.KindCombobox)),
						huh.NewOption("confirm", string(form.KindConfirm)),
					).
					Value(&firstKind),
				huh.NewConfirm().
					Title("Require the first field?").
					Value(&required),
			),
		)
		if err := prompt.Run(); err != nil {
			return err
		}

		field := form.Field{
			ID:       firstField,
			Label:    firstField,
			Kind:     form.FieldKind(firstKind),
			Required: required,
		}
		if field.Kind == form.KindSelect || field.Kind == form.KindCombobox {
			field.Options = []string{"option one", "option two"}
		}

		def := form.Definition{
			ID:    formID,
			Title: title,
			Sections: []form.Section{{
				Title:  sectionTitle,
				Fields: []form.Field{field},
			}},
		}
		if err := def.Validate(); err != nil {
			return err
		}

		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
		data, err := json.MarshalIndent(def, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return err
		}

		fmt.Printf("CREATED %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
}
