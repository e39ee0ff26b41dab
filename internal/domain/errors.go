package domain

import "errors"

// Component names the fragment decoder that produced a result or an error.
type Component string

const (
	ComponentReportType       Component = "report_type"
	ComponentICAO             Component = "icao"
	ComponentDatetime         Component = "datetime"
	ComponentForecastPeriod   Component = "forecast_period"
	ComponentSurfaceWind      Component = "surface_wind"
	ComponentVisibility       Component = "visibility"
	ComponentWeatherPhenomena Component = "weather_phenomena"
	ComponentClouds           Component = "clouds"
	ComponentTemperature      Component = "temperature"
	ComponentEvolution        Component = "evolution"
)

// ErrorKind classifies a DecodeError.
type ErrorKind string

const (
	// KindShape means the text did not match the fragment grammar.
	KindShape ErrorKind = "shape"
	// KindRange means the grammar matched but a decoded value is out of range.
	KindRange ErrorKind = "range"
	// KindExhausted means no decoder of an evolution sub-chain matched.
	KindExhausted ErrorKind = "exhausted"
)

var (
	ErrBadFormat    = errors.New("bad format")
	ErrInvalidValue = errors.New("invalid value")
	ErrExhausted    = errors.New("no decoder matched")
)

// DecodeError describes a failed fragment. Text is the window the decoder
// was evaluating; Leftover is where decoding may resume.
type DecodeError struct {
	Decoder  Component `json:"decoder"`
	Kind     ErrorKind `json:"kind"`
	Text     string    `json:"text"`
	Leftover string    `json:"leftover"`
	Message  string    `json:"message"`
}

func (e *DecodeError) Error() string {
	return string(e.Decoder) + ": " + e.Message
}

// Unwrap maps the error kind to its sentinel so callers can use errors.Is.
func (e *DecodeError) Unwrap() error {
	switch e.Kind {
	case KindRange:
		return ErrInvalidValue
	case KindExhausted:
		return ErrExhausted
	default:
		return ErrBadFormat
	}
}
