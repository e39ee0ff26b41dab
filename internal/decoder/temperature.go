package decoder

import (
	"regexp"

	"github.com/couchcryptid/taf-decoder/internal/domain"
)

// temperatureGroupRe matches "TXdd/ddhhZ" or "TNMdd/ddhhZ". The trailing Z
// is optional because some offices omit it.
var temperatureGroupRe = regexp.MustCompile(`^(TX|TN)(M?[0-9]{2})/([0-9]{2})([0-9]{2})Z? `)

const inconsistentTemperature = "Inconsistent values for temperature information"

// temperatureFragment decodes the optional forecast max/min pair. Fields are
// produced only when both groups are present.
type temperatureFragment struct{}

func (temperatureFragment) Component() domain.Component { return domain.ComponentTemperature }
func (temperatureFragment) Pattern() *regexp.Regexp     { return temperatureGroupRe }

func (temperatureFragment) Parse(remaining string, _ bool) (Result, error) {
	var groups []*domain.Temperature
	rest := remaining
	for range 2 {
		m, next := consume(temperatureGroupRe, rest)
		if m == nil {
			break
		}
		rest = next
		groups = append(groups, &domain.Temperature{
			Type:  domain.TemperatureType(m[1]),
			Value: domain.ParseValue(m[2], domain.UnitDegreeCelsius),
			Day:   atoi(m[3]),
			Hour:  atoi(m[4]),
		})
	}

	if len(groups) < 2 {
		return Result{Remaining: rest}, nil
	}

	var minimum, maximum *domain.Temperature
	for _, g := range groups {
		if g.Type == domain.TemperatureMax {
			maximum = g
		} else {
			minimum = g
		}
	}
	if minimum == nil || maximum == nil || minimum.Value.Float() > maximum.Value.Float() {
		return Result{}, rangeError(domain.ComponentTemperature, remaining, rest, inconsistentTemperature)
	}

	return Result{
		Fields:    Fields{MinimumTemperature: minimum, MaximumTemperature: maximum},
		Remaining: rest,
	}, nil
}
