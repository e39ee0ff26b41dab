package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Unit identifies the physical unit of a Value.
type Unit string

const (
	UnitNone             Unit = "N/A"
	UnitDegree           Unit = "deg"
	UnitKnot             Unit = "kt"
	UnitMeterPerSecond   Unit = "m/s"
	UnitKilometerPerHour Unit = "km/h"
	UnitMeter            Unit = "m"
	UnitStatuteMile      Unit = "SM"
	UnitFeet             Unit = "ft"
	UnitDegreeCelsius    Unit = "degC"
)

// ErrIncompatibleUnit is returned by Value.Convert across unit families.
var ErrIncompatibleUnit = errors.New("incompatible units")

// Conversion factors to the base unit of each family (m/s for speed, m for distance).
var (
	speedFactors = map[Unit]float64{
		UnitMeterPerSecond:   1,
		UnitKnot:             1852.0 / 3600.0,
		UnitKilometerPerHour: 1000.0 / 3600.0,
	}
	distanceFactors = map[Unit]float64{
		UnitMeter:       1,
		UnitStatuteMile: 1609.344,
		UnitFeet:        0.3048,
	}
)

// Value is a numeric quantity tagged with its unit. A nil Actual means the
// quantity was reported as not measured ("///").
type Value struct {
	Actual *float64 `json:"value"`
	Unit   Unit     `json:"unit"`
}

// NewValue returns a measured value.
func NewValue(v float64, unit Unit) *Value {
	return &Value{Actual: &v, Unit: unit}
}

// Unmeasured returns a value with no reading.
func Unmeasured(unit Unit) *Value {
	return &Value{Unit: unit}
}

// ParseValue decodes a TAF numeric field. Leading "M" negates (temperatures),
// leading "P" is dropped, and a field made only of slashes is unmeasured.
// It returns nil when raw is empty or not numeric.
func ParseValue(raw string, unit Unit) *Value {
	if raw == "" {
		return nil
	}
	if strings.Trim(raw, "/") == "" {
		return Unmeasured(unit)
	}
	sign := 1.0
	switch raw[0] {
	case 'M':
		sign = -1
		raw = raw[1:]
	case 'P':
		raw = raw[1:]
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return NewValue(sign*f, unit)
}

// ParseSpeedUnit maps a TAF wind unit code to a Unit.
func ParseSpeedUnit(code string) Unit {
	switch code {
	case "KT":
		return UnitKnot
	case "MPS":
		return UnitMeterPerSecond
	case "KPH":
		return UnitKilometerPerHour
	}
	return UnitNone
}

func (v Value) IsMeasured() bool {
	return v.Actual != nil
}

// Float returns the reading, or 0 when unmeasured.
func (v Value) Float() float64 {
	if v.Actual == nil {
		return 0
	}
	return *v.Actual
}

func (v Value) String() string {
	if v.Actual == nil {
		return "/// " + string(v.Unit)
	}
	return strconv.FormatFloat(*v.Actual, 'f', -1, 64) + " " + string(v.Unit)
}

// Convert expresses the value in another unit of the same family.
func (v Value) Convert(to Unit) (Value, error) {
	if v.Unit == to {
		return v, nil
	}
	fromF, toF, ok := factors(v.Unit, to)
	if !ok {
		return Value{}, fmt.Errorf("convert %s to %s: %w", v.Unit, to, ErrIncompatibleUnit)
	}
	if v.Actual == nil {
		return *Unmeasured(to), nil
	}
	return *NewValue(*v.Actual*fromF/toF, to), nil
}

func factors(from, to Unit) (float64, float64, bool) {
	for _, family := range []map[Unit]float64{speedFactors, distanceFactors} {
		fromF, ok1 := family[from]
		toF, ok2 := family[to]
		if ok1 && ok2 {
			return fromF, toF, true
		}
	}
	return 0, 0, false
}
