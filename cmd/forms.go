package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marcus/intake/internal/config"
	"github.com/marcus/intake/internal/form"
	"github.com/marcus/intake/internal/store"
)

var formsCmd = &cobra.Command{
	Use:   "forms",
	Short: "List available forms",
	RunE: func(cmd *cobra.Command, args []string) error {
		baseDir := getBaseDir()

		dir, err := config.FormsPath(baseDir)
		if err != nil {
			return err
		}
		defs, err := form.LoadDir(dir)
		if err != nil {
			return err
		}

		st, stErr := store.Open(baseDir)
		if stErr == nil {
			defer st.Close()
		}

		if len(defs) > 0 {
			fmt.Printf("Workspace forms (%s):\n", dir)
			for _, d := range defs {
				fmt.Printf("  %-24s %s (%d fields)%s\n", d.ID, d.Title, len(d.Fields()), formAnnotations(st, d))
			}
		} else {
			fmt.Printf("No workspace forms in %s\n", dir)
		}

		fmt.Println("\nBuilt-in samples:")
		for _, name := range form.SampleNames() {
			d, err := form.Sample(name)
			if err != nil {
				continue
			}
			fmt.Printf("  %-24s %s (%d fields)%s\n", d.ID, d.Title, len(d.Fields()), formAnnotations(st, d))
		}
		return nil
	},
}

// formAnnotations marks forms with a pending draft or saved responses.
func formAnnotations(st *store.Store, d *form.Definition) string {
	if st == nil {
		return ""
	}
	out := ""
	if draft, err := st.LoadDraft(d.ID); err == nil && len(draft) > 0 {
		out += "  [draft]"
	}
	if responses, err := st.ListResponses(d.ID); err == nil && len(responses) > 0 {
		out += fmt.Sprintf("  [%d submitted]", len(responses))
	}
	return out
}

func init() {
	rootCmd.AddCommand(formsCmd)
}
