package cmd

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

//go:embed docs.md
var docsMarkdown string

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Show the user guide",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Print(docsMarkdown)
			return nil
		}

		width := 100
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w < width {
			width = w
		}

		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return err
		}
		out, err := r.Render(docsMarkdown)
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(docsCmd)
}
