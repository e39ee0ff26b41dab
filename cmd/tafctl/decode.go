package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/spf13/cobra"

	"github.com/couchcryptid/taf-decoder/internal/decoder"
	"github.com/couchcryptid/taf-decoder/internal/domain"
)

type decodeOptions struct {
	strict  bool
	file    string
	workers int
}

func newDecodeCmd() *cobra.Command {
	opts := &decodeOptions{}
	cmd := &cobra.Command{
		Use:   "decode [TAF...]",
		Short: "Decode TAF reports and print them as JSON",
		Long: `Decodes each argument as one TAF report. With --file, reports are read
from the file (or stdin for "-") and separated by blank lines or a trailing "=".
Without --strict the mode follows DECODE_STRICT.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("strict") {
				strict, err := strconv.ParseBool(sharedcfg.EnvOrDefault("DECODE_STRICT", "false"))
				if err != nil {
					return errors.New("invalid DECODE_STRICT: must be true or false")
				}
				opts.strict = strict
			}
			return runDecode(cmd, opts, args)
		},
	}
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "stop each decoding phase at its first error")
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", `read reports from a file ("-" for stdin)`)
	cmd.Flags().IntVar(&opts.workers, "workers", 4, "number of concurrent decoders")
	return cmd
}

func runDecode(cmd *cobra.Command, opts *decodeOptions, args []string) error {
	raws := args
	if opts.file != "" {
		fromFile, err := readReports(cmd.InOrStdin(), opts.file)
		if err != nil {
			return err
		}
		raws = append(raws, fromFile...)
	}
	if len(raws) == 0 {
		return errors.New("no reports to decode: pass reports as arguments or use --file")
	}

	mode := decoder.Lenient
	if opts.strict {
		mode = decoder.Strict
	}
	tafs, err := decoder.DecodeBatch(cmd.Context(), raws, mode, opts.workers)
	if err != nil {
		return fmt.Errorf("decode reports: %w", err)
	}

	reports := make([]domain.DecodedReport, len(tafs))
	for i, taf := range tafs {
		reports[i] = domain.NewDecodedReport(taf)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(reports); err != nil {
		return fmt.Errorf("write reports: %w", err)
	}
	return nil
}

// readReports reads reports from path, or from stdin when path is "-".
func readReports(stdin io.Reader, path string) ([]string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read reports: %w", err)
	}
	return splitReports(string(data)), nil
}

// splitReports splits text into reports. A report ends at a blank line or
// at a token ending in "=".
func splitReports(text string) []string {
	var (
		reports []string
		current []string
	)
	flush := func() {
		if len(current) > 0 {
			reports = append(reports, strings.Join(current, " "))
			current = nil
		}
	}

	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			flush()
			continue
		}
		for _, tok := range strings.Fields(line) {
			if strings.HasSuffix(tok, "=") {
				if tok = strings.TrimSuffix(tok, "="); tok != "" {
					current = append(current, tok)
				}
				flush()
				continue
			}
			current = append(current, tok)
		}
	}
	flush()
	return reports
}
