package decoder

import (
	"regexp"
	"strconv"

	"github.com/couchcryptid/taf-decoder/internal/domain"
)

// visibilityRe alternatives, in priority order: CAVOK, metres, statute
// miles ("P6SM", "6 1/4SM", "M1/4SM"), not measured.
var visibilityRe = regexp.MustCompile(`^(CAVOK|([0-9]{4})|(M)?(P)?([0-9]{1,2})?(?: ?([1357])/(2|4|8|16))?SM|////) `)

type visibilityFragment struct{}

func (visibilityFragment) Component() domain.Component { return domain.ComponentVisibility }
func (visibilityFragment) Pattern() *regexp.Regexp     { return visibilityRe }

func (visibilityFragment) Parse(remaining string, _ bool) (Result, error) {
	m, rest := consume(visibilityRe, remaining)
	if m == nil {
		return Result{}, shapeError(domain.ComponentVisibility, remaining, "Bad format for visibility information")
	}

	var vis *domain.Visibility
	cavok := false
	switch {
	case m[1] == "CAVOK":
		cavok = true
	case m[1] == "////":
	case m[2] != "":
		vis = &domain.Visibility{ActualVisibility: domain.NewValue(float64(atoi(m[2])), domain.UnitMeter)}
	default:
		whole, num, den := m[5], m[6], m[7]
		if whole == "" && num == "" {
			return Result{}, shapeError(domain.ComponentVisibility, remaining, "Bad format for visibility information")
		}
		miles := 0.0
		if whole != "" {
			miles = float64(atoi(whole))
		}
		if num != "" {
			n, _ := strconv.ParseFloat(num, 64)
			d, _ := strconv.ParseFloat(den, 64)
			miles += n / d
		}
		vis = &domain.Visibility{
			ActualVisibility: domain.NewValue(miles, domain.UnitStatuteMile),
			Greater:          m[4] == "P",
		}
	}

	return Result{Fields: Fields{Visibility: vis, Cavok: &cavok}, Remaining: rest}, nil
}
