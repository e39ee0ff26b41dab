package decoder

import (
	"regexp"

	"github.com/couchcryptid/taf-decoder/internal/domain"
)

var surfaceWindRe = regexp.MustCompile(`^([0-9]{3}|VRB|///)P?([0-9]{2,3}|//)(?:GP?([0-9]{2,3}|//))?(KT|MPS|KPH)(?: ([0-9]{3})V([0-9]{3}))? `)

// surfaceWindFragment decodes "dddss[Ggg]KT [dddVddd]".
type surfaceWindFragment struct{}

func (surfaceWindFragment) Component() domain.Component { return domain.ComponentSurfaceWind }
func (surfaceWindFragment) Pattern() *regexp.Regexp     { return surfaceWindRe }

func (surfaceWindFragment) Parse(remaining string, _ bool) (Result, error) {
	m, rest := consume(surfaceWindRe, remaining)
	if m == nil {
		return Result{}, shapeError(domain.ComponentSurfaceWind, remaining, "Bad format for surface wind information")
	}
	direction, speed, gust, unitCode, varFrom, varTo := m[1], m[2], m[3], m[4], m[5], m[6]

	if direction == "///" && speed == "//" {
		return Result{}, rangeError(domain.ComponentSurfaceWind, remaining, rest, "No information measured for surface wind")
	}

	unit := domain.ParseSpeedUnit(unitCode)
	wind := &domain.SurfaceWind{MeanSpeed: domain.ParseValue(speed, unit)}

	if direction == "VRB" {
		wind.VariableDirection = true
	} else {
		dir := domain.ParseValue(direction, domain.UnitDegree)
		if !inCompassRange(dir) {
			return Result{}, rangeError(domain.ComponentSurfaceWind, remaining, rest, "Wind direction should be in [0,360]")
		}
		wind.MeanDirection = dir
	}

	if gust != "" {
		wind.SpeedVariations = domain.ParseValue(gust, unit)
	}

	if varFrom != "" {
		from := domain.ParseValue(varFrom, domain.UnitDegree)
		to := domain.ParseValue(varTo, domain.UnitDegree)
		if !inCompassRange(from) || !inCompassRange(to) {
			return Result{}, rangeError(domain.ComponentSurfaceWind, remaining, rest, "Wind direction variations should be in [0,360]")
		}
		wind.DirectionVariations = []domain.Value{*from, *to}
	}

	return Result{Fields: Fields{SurfaceWind: wind}, Remaining: rest}, nil
}

// inCompassRange accepts unmeasured directions and readings in [0,360].
func inCompassRange(v *domain.Value) bool {
	if v == nil || !v.IsMeasured() {
		return true
	}
	return v.Float() >= 0 && v.Float() <= 360
}
