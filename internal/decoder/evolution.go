package decoder

import (
	"regexp"

	"github.com/couchcryptid/taf-decoder/internal/domain"
)

var (
	// evolutionHeaderRe matches "BECMG ddhh/ddhh", "TEMPO ddhh/ddhh",
	// "FMddhhmm" and "PROBnn [TEMPO] ddhh/ddhh".
	evolutionHeaderRe = regexp.MustCompile(`^(?:(BECMG|TEMPO) ([0-9]{4})/([0-9]{4})|FM([0-9]{6})|(PROB[34]0)(?: (TEMPO))? ([0-9]{4})/([0-9]{4}))(?: |$)`)

	// embeddedProbabilityRe matches a PROBnn clause met inside a clause body.
	embeddedProbabilityRe = regexp.MustCompile(`^(PROB[34]0)(?: (TEMPO))? ([0-9]{4})/([0-9]{4})(?: |$)`)
)

// evolutionChain is the sub-chain run over each clause body.
var evolutionChain = []Fragment{
	surfaceWindFragment{},
	visibilityFragment{},
	weatherFragment{},
	cloudsFragment{},
	temperatureFragment{},
}

const badEvolution = "Bad format for evolution information"

type evolutionDecoder struct {
	mode Mode
}

// decode consumes evolution clauses until the text runs out.
func (d evolutionDecoder) decode(taf *domain.DecodedTaf, text string) {
	remaining := text
	for remaining != "" && remaining != sentinel {
		next, err := d.parseClause(taf, remaining)
		if err != nil {
			taf.AddDecodingError(err)
			if d.mode == Strict {
				return
			}
			next = err.Leftover
		}
		remaining = next
	}
}

// parseClause decodes one clause. Text that does not start with a clause
// header loses its first token.
func (d evolutionDecoder) parseClause(taf *domain.DecodedTaf, text string) (string, *domain.DecodeError) {
	m, body := consume(evolutionHeaderRe, text)
	if m == nil {
		return dropOneToken(text), nil
	}

	ev := &domain.Evolution{}
	switch {
	case m[1] != "":
		ev.Type = domain.EvolutionType(m[1])
		setSpan(ev, m[2], m[3])
	case m[4] != "":
		ev.Type = domain.EvolutionFrom
		ev.FromDay = atoi(m[4][:2])
		ev.FromTime = m[4][2:4] + ":" + m[4][4:6] + " UTC"
	default:
		ev.Type = domain.EvolutionProbability
		if m[6] != "" {
			ev.Type = domain.EvolutionTemporary
		}
		ev.Probability = m[5]
		setSpan(ev, m[7], m[8])
	}

	return d.parseEntities(taf, ev, body)
}

// parseEntities runs the sub-chain over a clause body until no fragment
// matches, attaching a clone of ev to every entity it decodes.
func (d evolutionDecoder) parseEntities(taf *domain.DecodedTaf, ev *domain.Evolution, body string) (string, *domain.DecodeError) {
	remaining := body
	drops := 0
	for {
		matched := false
		for _, f := range evolutionChain {
			// A PROBnn group may sit between any two elements.
			if m, rest := consume(embeddedProbabilityRe, remaining); m != nil {
				ev.Evolutions = append(ev.Evolutions, embeddedEvolution(m))
				return d.parseEntities(taf, ev, rest)
			}

			res, err := f.Parse(remaining, false)
			if err != nil || !attach(taf, ev, f.Component(), res.Fields) {
				continue
			}
			remaining = res.Remaining
			matched = true
		}

		if matched {
			drops = 0
			continue
		}
		if clauseEnded(remaining) {
			return remaining, nil
		}
		if d.mode == Strict {
			return remaining, &domain.DecodeError{
				Decoder:  domain.ComponentEvolution,
				Kind:     domain.KindExhausted,
				Text:     remaining,
				Leftover: dropOneToken(remaining),
				Message:  badEvolution,
			}
		}
		if drops == len(evolutionChain) {
			return remaining, nil
		}
		remaining = dropOneToken(remaining)
		drops++
	}
}

func clauseEnded(s string) bool {
	return s == "" || s == sentinel || evolutionHeaderRe.MatchString(s)
}

func embeddedEvolution(m []string) *domain.Evolution {
	ev := &domain.Evolution{Type: domain.EvolutionProbability, Probability: m[1]}
	if m[2] != "" {
		ev.Type = domain.EvolutionTemporary
	}
	setSpan(ev, m[3], m[4])
	return ev
}

// setSpan fills an evolution window from two ddhh groups.
func setSpan(ev *domain.Evolution, from, to string) {
	ev.FromDay = atoi(from[:2])
	ev.FromTime = from[2:4] + ":00 UTC"
	ev.ToDay = atoi(to[:2])
	ev.ToTime = to[2:4] + ":00 UTC"
}

// attach records a clone of ev on the report entity decoded by component c.
// It reports false when the fields carry no entity.
func attach(taf *domain.DecodedTaf, ev *domain.Evolution, c domain.Component, f Fields) bool {
	clone := ev.Clone()
	switch c {
	case domain.ComponentSurfaceWind:
		if f.SurfaceWind == nil {
			return false
		}
		clone.Entity = f.SurfaceWind
		if taf.SurfaceWind == nil {
			taf.SurfaceWind = &domain.SurfaceWind{}
		}
		taf.SurfaceWind.Evolutions = append(taf.SurfaceWind.Evolutions, clone)

	case domain.ComponentVisibility:
		if f.Cavok == nil {
			return false
		}
		clone.Cavok = *f.Cavok
		if f.Visibility != nil {
			clone.Entity = f.Visibility
		}
		if taf.Visibility == nil {
			taf.Visibility = &domain.Visibility{}
		}
		taf.Visibility.Evolutions = append(taf.Visibility.Evolutions, clone)

	case domain.ComponentWeatherPhenomena:
		if len(f.WeatherPhenomena) == 0 {
			return false
		}
		clone.Entity = f.WeatherPhenomena
		taf.WeatherPhenomena = append(taf.WeatherPhenomena, domain.WeatherPhenomenon{
			Evolutions: []*domain.Evolution{clone},
		})

	case domain.ComponentClouds:
		if f.Clouds == nil {
			return false
		}
		clone.Entity = f.Clouds
		taf.Clouds = append(taf.Clouds, domain.CloudLayer{
			Evolutions: []*domain.Evolution{clone},
		})

	case domain.ComponentTemperature:
		if f.MinimumTemperature == nil || f.MaximumTemperature == nil {
			return false
		}
		clone.Entity = f.MaximumTemperature
		if taf.MaximumTemperature == nil {
			taf.MaximumTemperature = &domain.Temperature{Type: domain.TemperatureMax}
		}
		taf.MaximumTemperature.Evolutions = append(taf.MaximumTemperature.Evolutions, clone)

		minClone := ev.Clone()
		minClone.Entity = f.MinimumTemperature
		if taf.MinimumTemperature == nil {
			taf.MinimumTemperature = &domain.Temperature{Type: domain.TemperatureMin}
		}
		taf.MinimumTemperature.Evolutions = append(taf.MinimumTemperature.Evolutions, minClone)

	default:
		return false
	}
	return true
}
