package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/marcus/intake/internal/store"
)

var (
	exportOut     string
	exportEncrypt bool
)

var exportCmd = &cobra.Command{
	Use:   "export <form-id>",
	Short: "Export submitted responses as JSON",
	Long: `Export every submitted response for a form as JSON. With --encrypt,
the output is sealed with a passphrase (scrypt key derivation,
XChaCha20-Poly1305) and only readable by someone holding it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		formID := args[0]

		st, err := store.Open(getBaseDir())
		if err != nil {
			return err
		}
		defer st.Close()

		responses, err := st.ListResponses(formID)
		if err != nil {
			return err
		}
		if len(responses) == 0 {
			return fmt.Errorf("no responses for form %q", formID)
		}

		data, err := json.MarshalIndent(responses, "", "  ")
		if err != nil {
			return err
		}

		if exportEncrypt {
			passphrase, err := readPassphrase()
			if err != nil {
				return err
			}
			data, err = store.Seal(passphrase, data)
			if err != nil {
				return err
			}
		}

		if exportOut == "" || exportOut == "-" {
			if exportEncrypt {
				return fmt.Errorf("refusing to write encrypted bytes to stdout; use --out")
			}
			_, err = os.Stdout.Write(append(data, '\n'))
			return err
		}

		if err := os.WriteFile(exportOut, data, 0600); err != nil {
			return err
		}
		fmt.Printf("EXPORTED %d response(s) to %s\n", len(responses), exportOut)
		return nil
	},
}

// readPassphrase prompts twice on the terminal without echo.
func readPassphrase() ([]byte, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("passphrase entry needs a terminal")
	}

	fmt.Fprint(os.Stderr, "Passphrase: ")
	first, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, err
	}
	if len(first) == 0 {
		return nil, fmt.Errorf("empty passphrase")
	}

	fmt.Fprint(os.Stderr, "Repeat: ")
	second, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, err
	}
	if string(first) != string(second) {
		return nil, fmt.Errorf("passphrases do not match")
	}
	return first, nil
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output file (default stdout)")
	exportCmd.Flags().BoolVar(&exportEncrypt, "encrypt", false, "seal the export with a passphrase")
	rootCmd.AddCommand(exportCmd)
}
