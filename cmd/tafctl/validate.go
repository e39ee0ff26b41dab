package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/couchcryptid/taf-decoder/internal/corpus"
	"github.com/couchcryptid/taf-decoder/internal/decoder"
	"github.com/couchcryptid/taf-decoder/internal/domain"
)

// maxStrictErrors bounds the errors one strict decode may record: one from
// the report body and one from the evolutions.
const maxStrictErrors = 2

var errValidationFailed = errors.New("validation failed")

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func newValidateCmd() *cobra.Command {
	var corpusPath string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the decoder against a corpus of reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cases, err := corpus.Load(corpusPath)
			if err != nil {
				return err
			}
			return runValidate(cmd, cases)
		},
	}
	cmd.Flags().StringVar(&corpusPath, "corpus", "internal/decoder/testdata/reports.yaml", "path to the YAML report corpus")
	return cmd
}

func runValidate(cmd *cobra.Command, cases []corpus.Case) error {
	// A fixed clock makes envelopes comparable byte for byte.
	domain.SetClock(clockwork.NewFakeClockAt(time.Date(2024, time.April, 27, 6, 0, 0, 0, time.UTC)))
	defer domain.SetClock(nil)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "=== TAF Decoder Validation ===")
	fmt.Fprintln(out)

	phases := []*phase{
		validateExpectations(cases),
		validateDeterminism(cases),
		validateStrictBound(cases),
		validateBatchParity(cmd, cases),
	}
	return report(out, phases, len(cases))
}

func report(out io.Writer, phases []*phase, cases int) error {
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(out, "  %-42s %s\n", p.name, status)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Reports: %d\n", cases)

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(out, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(out, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(out, "\nAll validations passed.")
		return nil
	}
	fmt.Fprintln(out, "\nValidation FAILED.")
	return errValidationFailed
}

func validateExpectations(cases []corpus.Case) *phase {
	p := &phase{name: "Expected results"}
	for _, c := range cases {
		taf := decoder.Decode(c.Raw, c.Mode())
		for _, problem := range c.Check(taf) {
			p.errorf("%s: %s", c.Name, problem)
		}
	}
	return p
}

func validateDeterminism(cases []corpus.Case) *phase {
	p := &phase{name: "Determinism"}
	for _, c := range cases {
		first, err := json.Marshal(domain.NewDecodedReport(decoder.Decode(c.Raw, c.Mode())))
		if err != nil {
			p.errorf("%s: marshal: %v", c.Name, err)
			continue
		}
		second, err := json.Marshal(domain.NewDecodedReport(decoder.Decode(c.Raw, c.Mode())))
		if err != nil {
			p.errorf("%s: marshal: %v", c.Name, err)
			continue
		}
		if string(first) != string(second) {
			p.errorf("%s: repeated decodes differ", c.Name)
		}
	}
	return p
}

func validateStrictBound(cases []corpus.Case) *phase {
	p := &phase{name: fmt.Sprintf("Strict error bound (<= %d)", maxStrictErrors)}
	for _, c := range cases {
		if n := len(decoder.ParseStrict(c.Raw).DecodingErrors()); n > maxStrictErrors {
			p.errorf("%s: %d errors in strict mode", c.Name, n)
		}
	}
	return p
}

func validateBatchParity(cmd *cobra.Command, cases []corpus.Case) *phase {
	p := &phase{name: "Batch parity"}
	raws := make([]string, len(cases))
	for i, c := range cases {
		raws[i] = c.Raw
	}

	tafs, err := decoder.DecodeBatch(cmd.Context(), raws, decoder.Lenient, 4)
	if err != nil {
		p.errorf("decode batch: %v", err)
		return p
	}
	for i, c := range cases {
		want := decoder.ParseLenient(c.Raw)
		if tafs[i].Raw != want.Raw || len(tafs[i].DecodingErrors()) != len(want.DecodingErrors()) {
			p.errorf("%s: batch result differs from single decode", c.Name)
		}
	}
	return p
}
