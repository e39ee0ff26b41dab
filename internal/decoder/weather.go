package decoder

import (
	"regexp"

	"github.com/couchcryptid/taf-decoder/internal/domain"
)

const maxWeatherGroups = 3

var (
	weatherDescriptors = `TS|FZ|SH|BL|DR|MI|BC|PR`
	weatherPhenomena   = `DZ|RA|SN|SG|PL|DS|GR|GS|UP|IC|FG|BR|SA|DU|HZ|FU|VA|PY|PO|SQ|FC|SS|//`

	// weatherGroupRe matches one present-weather group; phenomena are captured
	// as a run of up to three two-character codes.
	weatherGroupRe = regexp.MustCompile(`^(-|\+|VC)?(` + weatherDescriptors + `)?((?:` + weatherPhenomena + `){0,3}) `)
)

// weatherFragment decodes up to three present-weather groups. The groups
// are optional, so it never fails.
type weatherFragment struct{}

func (weatherFragment) Component() domain.Component { return domain.ComponentWeatherPhenomena }
func (weatherFragment) Pattern() *regexp.Regexp     { return weatherGroupRe }

func (weatherFragment) Parse(remaining string, _ bool) (Result, error) {
	var groups domain.WeatherPhenomena
	rest := remaining
	for range maxWeatherGroups {
		m, next := consume(weatherGroupRe, rest)
		if m == nil || (m[2] == "" && m[3] == "") {
			break
		}
		rest = next

		phenomena := splitCodes(m[3])
		if len(phenomena) == 1 && phenomena[0] == "//" {
			continue
		}
		groups = append(groups, domain.WeatherPhenomenon{
			IntensityProximity: m[1],
			Descriptor:         m[2],
			Phenomena:          phenomena,
		})
	}
	return Result{Fields: Fields{WeatherPhenomena: groups}, Remaining: rest}, nil
}

// splitCodes cuts a run of two-character codes.
func splitCodes(run string) []string {
	if run == "" {
		return nil
	}
	codes := make([]string, 0, len(run)/2)
	for i := 0; i+2 <= len(run); i += 2 {
		codes = append(codes, run[i:i+2])
	}
	return codes
}
