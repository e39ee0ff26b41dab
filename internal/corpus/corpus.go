// Package corpus loads YAML collections of raw TAF reports paired with the
// outcome expected from decoding them. The same corpus drives the decoder
// golden tests and the tafctl validate command.
package corpus

import (
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/couchcryptid/taf-decoder/internal/decoder"
	"github.com/couchcryptid/taf-decoder/internal/domain"
)

// Case is one corpus entry. Unset expectations are not checked.
type Case struct {
	Name   string `yaml:"name"`
	Raw    string `yaml:"raw"`
	Strict bool   `yaml:"strict"`

	Valid     *bool    `yaml:"valid"`
	Errors    *int     `yaml:"errors"`
	MinErrors int      `yaml:"min_errors"`
	Decoders  []string `yaml:"decoders"`
	ICAO      string   `yaml:"icao"`
	Type      string   `yaml:"type"`
	Cancelled bool     `yaml:"cancelled"`
	Clouds    *int     `yaml:"clouds"`
	Weather   *int     `yaml:"weather"`
	// WindEvolutions is the number of evolutions attached to the surface wind.
	WindEvolutions *int `yaml:"wind_evolutions"`
}

// Mode returns the decoding mode of the case.
func (c Case) Mode() decoder.Mode {
	if c.Strict {
		return decoder.Strict
	}
	return decoder.Lenient
}

// Load reads a corpus file.
func Load(path string) ([]Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}
	return Parse(data)
}

// Parse decodes corpus YAML. Every case needs a name and a raw report.
func Parse(data []byte) ([]Case, error) {
	var cases []Case
	if err := yaml.Unmarshal(data, &cases); err != nil {
		return nil, fmt.Errorf("parse corpus: %w", err)
	}
	for i, c := range cases {
		if c.Name == "" || c.Raw == "" {
			return nil, fmt.Errorf("corpus case %d: name and raw are required", i)
		}
	}
	return cases, nil
}

// Check compares a decoded report with the case expectations and returns one
// message per mismatch.
func (c Case) Check(taf *domain.DecodedTaf) []string {
	var problems []string
	errs := taf.DecodingErrors()

	if c.Valid != nil && taf.IsValid() != *c.Valid {
		problems = append(problems, fmt.Sprintf("valid: got %t, want %t", taf.IsValid(), *c.Valid))
	}
	if c.Errors != nil && len(errs) != *c.Errors {
		problems = append(problems, fmt.Sprintf("errors: got %d, want %d", len(errs), *c.Errors))
	}
	if len(errs) < c.MinErrors {
		problems = append(problems, fmt.Sprintf("errors: got %d, want at least %d", len(errs), c.MinErrors))
	}
	if c.Decoders != nil {
		got := make([]string, len(errs))
		for i, e := range errs {
			got[i] = string(e.Decoder)
		}
		if !slices.Equal(got, c.Decoders) {
			problems = append(problems, fmt.Sprintf("decoders: got %v, want %v", got, c.Decoders))
		}
	}
	if c.ICAO != "" && taf.ICAO != c.ICAO {
		problems = append(problems, fmt.Sprintf("icao: got %q, want %q", taf.ICAO, c.ICAO))
	}
	if c.Type != "" && string(taf.Type) != c.Type {
		problems = append(problems, fmt.Sprintf("type: got %q, want %q", taf.Type, c.Type))
	}
	if taf.Cancelled != c.Cancelled {
		problems = append(problems, fmt.Sprintf("cancelled: got %t, want %t", taf.Cancelled, c.Cancelled))
	}
	if c.Clouds != nil && len(taf.Clouds) != *c.Clouds {
		problems = append(problems, fmt.Sprintf("clouds: got %d layers, want %d", len(taf.Clouds), *c.Clouds))
	}
	if c.Weather != nil && len(taf.WeatherPhenomena) != *c.Weather {
		problems = append(problems, fmt.Sprintf("weather: got %d, want %d", len(taf.WeatherPhenomena), *c.Weather))
	}
	if c.WindEvolutions != nil {
		got := 0
		if taf.SurfaceWind != nil {
			got = len(taf.SurfaceWind.Evolutions)
		}
		if got != *c.WindEvolutions {
			problems = append(problems, fmt.Sprintf("wind evolutions: got %d, want %d", got, *c.WindEvolutions))
		}
	}
	return problems
}
