package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/marcus/intake/internal/config"
	"github.com/marcus/intake/internal/form"
	"github.com/marcus/intake/internal/store"
	"github.com/marcus/intake/pkg/runner"
)

var (
	runNoWrap  bool
	runNoDraft bool
)

var runCmd = &cobra.Command{
	Use:   "run [form-id]",
	Short: "Run a form in the terminal",
	Long: `Run a form as an interactive TUI. Without an argument, re-runs the
most recently used form. Form definitions are looked up in the
workspace forms directory, then among the built-in samples.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		baseDir := getBaseDir()

		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return fmt.Errorf("intake run needs a terminal")
		}

		formID := ""
		if len(args) == 1 {
			formID = args[0]
		} else {
			last, err := config.GetLastForm(baseDir)
			if err != nil {
				return err
			}
			if last == "" {
				return fmt.Errorf("no form given and no previous run; try `intake forms`")
			}
			formID = last
		}

		def, err := lookupForm(baseDir, formID)
		if err != nil {
			return err
		}

		cfg, err := config.Load(baseDir)
		if err != nil {
			return err
		}

		var st *store.Store
		if !runNoDraft {
			st, err = store.Open(baseDir)
			if err != nil {
				return err
			}
			defer st.Close()
		}

		responseID, err := runner.Run(runner.Options{
			Definition: def,
			Store:      st,
			Logger:     slog.Default(),
			NoWrap:     runNoWrap || cfg.NoWrap,
			MaxHistory: cfg.MaxHistory,
			Debug:      debug,
		})
		if err != nil {
			return err
		}

		if err := config.SetLastForm(baseDir, def.ID); err != nil {
			slog.Warn("could not remember last form", "error", err)
		}

		if responseID > 0 {
			fmt.Printf("SUBMITTED %s #%d\n", def.ID, responseID)
		} else {
			fmt.Printf("DRAFTED %s\n", def.ID)
		}
		return nil
	},
}

// lookupForm resolves a form ID against the workspace forms directory
// first, then the embedded samples.
func lookupForm(baseDir, formID string) (*form.Definition, error) {
	dir, err := config.FormsPath(baseDir)
	if err != nil {
		return nil, err
	}

	defs, err := form.LoadDir(dir)
	if err != nil {
		return nil, err
	}
	for _, d := range defs {
		if d.ID == formID {
			return d, nil
		}
	}

	if def, err := form.Sample(formID); err == nil {
		return def, nil
	}

	return nil, fmt.Errorf("form %q not found; try `intake forms`", formID)
}

func init() {
	runCmd.Flags().BoolVar(&runNoWrap, "no-wrap", false, "stop at the first/last field instead of wrapping")
	runCmd.Flags().BoolVar(&runNoDraft, "no-draft", false, "do not load or save drafts")
	rootCmd.AddCommand(runCmd)
}
