// Command tafctl decodes TAF reports from the command line and validates the
// decoder against a YAML corpus of reports.
//
// Usage:
//
//	tafctl decode "TAF LFPG 080500Z 0806/0912 23010KT 9999 SCT025"
//	tafctl decode --strict --file reports.txt
//	tafctl validate --corpus internal/decoder/testdata/reports.yaml
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// A missing .env file is fine; the environment may already be set.
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "tafctl",
		Short:         "Decode and validate TAF weather forecasts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newDecodeCmd(), newValidateCmd())
	return root
}
