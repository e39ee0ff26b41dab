// Package decoder turns raw TAF text into a domain.DecodedTaf.
//
// A report is decoded by running a fixed chain of fragment decoders over a
// single text cursor, then decoding the trailing evolution clauses. Each
// fragment owns one anchored grammar and consumes its tokens plus one
// trailing space. Malformed input never yields a Go error: failures are
// recorded on the report and, in lenient mode, decoding resumes from the
// failing fragment's leftover text.
package decoder

import (
	"regexp"
	"strings"
	"sync/atomic"

	"github.com/couchcryptid/taf-decoder/internal/domain"
)

// Mode selects how decoding reacts to a failed fragment.
type Mode int

const (
	// Lenient records every error and resumes from the leftover text.
	Lenient Mode = iota
	// Strict stops a decoding phase at its first error.
	Strict
)

func (m Mode) String() string {
	if m == Strict {
		return "strict"
	}
	return "lenient"
}

// sentinel terminates the cursor of non-cancelled reports.
const sentinel = "END"

// Fields holds what a fragment decoded. Nil members were not produced.
type Fields struct {
	Type               *domain.ReportType
	ICAO               *string
	Day                *int
	Time               *string
	ForecastPeriod     *domain.ForecastPeriod
	SurfaceWind        *domain.SurfaceWind
	Visibility         *domain.Visibility
	Cavok              *bool
	WeatherPhenomena   domain.WeatherPhenomena
	Clouds             domain.CloudLayers // non-nil and empty for NSC/NCD/SKC/CLR
	MinimumTemperature *domain.Temperature
	MaximumTemperature *domain.Temperature
}

// Result is a successful fragment decode.
type Result struct {
	Fields    Fields
	Remaining string
}

// Fragment decodes one grammar fragment anchored at the start of the text.
// On failure it returns a *domain.DecodeError whose Leftover lets the
// caller skip past the fragment.
type Fragment interface {
	Component() domain.Component
	Pattern() *regexp.Regexp
	Parse(remaining string, withCavok bool) (Result, error)
}

// Normalize upper-cases raw and collapses all whitespace, line breaks
// included, to single spaces.
func Normalize(raw string) string {
	return strings.Join(strings.Fields(strings.ToUpper(raw)), " ")
}

// cursor returns the initial text cursor for a normalized report and
// whether the report is a cancellation.
func cursor(normalized string) (string, bool) {
	if strings.Contains(normalized, "CNL") {
		return normalized + " ", true
	}
	return normalized + " " + sentinel, false
}

// dropOneToken skips the first space-delimited token of s.
func dropOneToken(s string) string {
	if i := strings.IndexByte(s, ' '); i >= 0 {
		return s[i+1:]
	}
	return ""
}

// consume returns the submatches of re at the start of s and the text after
// the match, or nil when re does not match.
func consume(re *regexp.Regexp, s string) ([]string, string) {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return nil, s
	}
	return m, s[len(m[0]):]
}

func shapeError(c domain.Component, text, msg string) *domain.DecodeError {
	return &domain.DecodeError{
		Decoder:  c,
		Kind:     domain.KindShape,
		Text:     text,
		Leftover: dropOneToken(text),
		Message:  msg,
	}
}

func rangeError(c domain.Component, text, leftover, msg string) *domain.DecodeError {
	return &domain.DecodeError{
		Decoder:  c,
		Kind:     domain.KindRange,
		Text:     text,
		Leftover: leftover,
		Message:  msg,
	}
}

// Decode decodes raw in the given mode. The returned report is never nil;
// check IsValid and DecodingErrors for failures.
func Decode(raw string, mode Mode) *domain.DecodedTaf {
	normalized := Normalize(raw)
	taf := domain.NewDecodedTaf(normalized)

	remaining, cancelled := cursor(normalized)
	remaining = runChain(taf, remaining, mode)
	if cancelled {
		return taf
	}

	evolutionDecoder{mode: mode}.decode(taf, remaining)
	return taf
}

var defaultStrict atomic.Bool

// SetDefaultStrict sets the mode used by Parse.
func SetDefaultStrict(strict bool) {
	defaultStrict.Store(strict)
}

// Parse decodes raw in the mode chosen by SetDefaultStrict (lenient unless set).
func Parse(raw string) *domain.DecodedTaf {
	if defaultStrict.Load() {
		return Decode(raw, Strict)
	}
	return Decode(raw, Lenient)
}

func ParseStrict(raw string) *domain.DecodedTaf {
	return Decode(raw, Strict)
}

func ParseLenient(raw string) *domain.DecodedTaf {
	return Decode(raw, Lenient)
}

// Decoder turns raw TAF text into a report.
type Decoder interface {
	Decode(raw string) *domain.DecodedTaf
}

type modeDecoder struct {
	mode Mode
}

// For returns a Decoder bound to mode.
func For(mode Mode) Decoder {
	return modeDecoder{mode: mode}
}

func (d modeDecoder) Decode(raw string) *domain.DecodedTaf {
	return Decode(raw, d.mode)
}

func ptr[T any](v T) *T {
	return &v
}
