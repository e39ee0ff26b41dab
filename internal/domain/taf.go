package domain

import "slices"

// ReportType is the TAF header variant.
type ReportType string

const (
	ReportTypeNone   ReportType = "NONE"
	ReportTypeTAF    ReportType = "TAF"
	ReportTypeTAFAMD ReportType = "TAFAMD"
	ReportTypeTAFCOR ReportType = "TAFCOR"
)

// DecodedTaf accumulates the decoded fields of one report together with the
// errors met while decoding it.
type DecodedTaf struct {
	Raw                string           `json:"raw"`
	Type               ReportType       `json:"type"`
	ICAO               string           `json:"icao,omitempty"`
	Day                int              `json:"day,omitempty"`
	Time               string           `json:"time,omitempty"`
	ForecastPeriod     *ForecastPeriod  `json:"forecast_period,omitempty"`
	SurfaceWind        *SurfaceWind     `json:"surface_wind,omitempty"`
	Visibility         *Visibility      `json:"visibility,omitempty"`
	Cavok              bool             `json:"cavok"`
	WeatherPhenomena   WeatherPhenomena `json:"weather_phenomena,omitempty"`
	Clouds             CloudLayers      `json:"clouds,omitempty"`
	MinimumTemperature *Temperature     `json:"minimum_temperature,omitempty"`
	MaximumTemperature *Temperature     `json:"maximum_temperature,omitempty"`
	Cancelled          bool             `json:"cancelled,omitempty"`

	errors []*DecodeError
}

// NewDecodedTaf returns an empty report for the given normalized text.
func NewDecodedTaf(raw string) *DecodedTaf {
	return &DecodedTaf{Raw: raw, Type: ReportTypeNone}
}

// AddDecodingError records err in encounter order.
func (t *DecodedTaf) AddDecodingError(err *DecodeError) {
	if err == nil {
		return
	}
	t.errors = append(t.errors, err)
}

func (t *DecodedTaf) ResetDecodingErrors() {
	t.errors = nil
}

// DecodingErrors returns a copy of the recorded errors.
func (t *DecodedTaf) DecodingErrors() []*DecodeError {
	return slices.Clone(t.errors)
}

// IsValid reports whether no decoding error was recorded.
func (t *DecodedTaf) IsValid() bool {
	return len(t.errors) == 0
}
