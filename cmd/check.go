package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/marcus/intake/internal/config"
	"github.com/marcus/intake/internal/form"
)

var checkCmd = &cobra.Command{
	Use:   "check [files...]",
	Short: "Validate form definitions",
	Long: `Validate form definition files. Without arguments, checks every JSON
file in the workspace forms directory. Files are checked in parallel.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		paths := args
		if len(paths) == 0 {
			dir, err := config.FormsPath(getBaseDir())
			if err != nil {
				return err
			}
			matches, err := filepath.Glob(filepath.Join(dir, "*.json"))
			if err != nil {
				return err
			}
			paths = matches
		}

		if len(paths) == 0 {
			fmt.Println("nothing to check")
			return nil
		}

		if err := form.CheckAll(cmd.Context(), paths); err != nil {
			fmt.Fprintf(os.Stderr, "FAIL %v\n", err)
			return err
		}

		fmt.Printf("OK %d form(s)\n", len(paths))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
