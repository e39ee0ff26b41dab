package domain

// Entity is a weather element that can be carried by an Evolution.
// The set is closed: SurfaceWind, Visibility, Temperature, CloudLayers and
// WeatherPhenomena.
type Entity interface {
	isEntity()
}

// ForecastPeriod is the validity window of a report, ddhh/ddhh.
type ForecastPeriod struct {
	FromDay  int `json:"from_day"`
	FromHour int `json:"from_hour"`
	ToDay    int `json:"to_day"`
	ToHour   int `json:"to_hour"`
}

// IsValid reports whether days are in [1,31], hours in [0,24] and the window
// starts strictly before it ends. A window starting on day 28 or later may
// end on day 1 or 2 of the following month.
func (p ForecastPeriod) IsValid() bool {
	if !validDay(p.FromDay) || !validDay(p.ToDay) {
		return false
	}
	if p.FromHour < 0 || p.FromHour > 24 || p.ToHour < 0 || p.ToHour > 24 {
		return false
	}
	if p.FromDay >= 28 && p.ToDay <= 2 {
		return true
	}
	if p.FromDay != p.ToDay {
		return p.FromDay < p.ToDay
	}
	return p.FromHour < p.ToHour
}

func validDay(d int) bool {
	return d >= 1 && d <= 31
}

// SurfaceWind is the "dddssGggKT dddVddd" group.
type SurfaceWind struct {
	MeanDirection       *Value       `json:"mean_direction,omitempty"`
	VariableDirection   bool         `json:"variable_direction"`
	MeanSpeed           *Value       `json:"mean_speed,omitempty"`
	SpeedVariations     *Value       `json:"speed_variations,omitempty"`
	DirectionVariations []Value      `json:"direction_variations,omitempty"`
	Evolutions          []*Evolution `json:"evolutions,omitempty"`
}

func (*SurfaceWind) isEntity() {}

// Visibility is the prevailing visibility. Greater is set for "P" readings.
type Visibility struct {
	ActualVisibility *Value       `json:"visibility,omitempty"`
	Greater          bool         `json:"greater"`
	Evolutions       []*Evolution `json:"evolutions,omitempty"`
}

func (*Visibility) isEntity() {}

// CloudAmount is the sky coverage code of a cloud layer.
type CloudAmount string

const (
	CloudAmountNone CloudAmount = ""
	CloudAmountFEW  CloudAmount = "FEW"
	CloudAmountSCT  CloudAmount = "SCT"
	CloudAmountBKN  CloudAmount = "BKN"
	CloudAmountOVC  CloudAmount = "OVC"
	CloudAmountVV   CloudAmount = "VV"
)

// CloudType flags convective clouds.
type CloudType string

const (
	CloudTypeNone          CloudType = ""
	CloudTypeCB            CloudType = "CB"
	CloudTypeTCU           CloudType = "TCU"
	CloudTypeCannotMeasure CloudType = "///"
)

// CloudLayer is one "BKN020CB" group. BaseHeight is in feet and nil when
// reported as "///".
type CloudLayer struct {
	Amount     CloudAmount  `json:"amount,omitempty"`
	BaseHeight *Value       `json:"base_height,omitempty"`
	Type       CloudType    `json:"type,omitempty"`
	Evolutions []*Evolution `json:"evolutions,omitempty"`
}

// CloudLayers is an ordered list of layers, lowest reported first.
type CloudLayers []CloudLayer

func (CloudLayers) isEntity() {}

// WeatherPhenomenon is one present-weather group such as "-SHDZRA".
type WeatherPhenomenon struct {
	IntensityProximity string       `json:"intensity_proximity,omitempty"`
	Descriptor         string       `json:"descriptor,omitempty"`
	Phenomena          []string     `json:"phenomena,omitempty"`
	Evolutions         []*Evolution `json:"evolutions,omitempty"`
}

// WeatherPhenomena is an ordered list of present-weather groups.
type WeatherPhenomena []WeatherPhenomenon

func (WeatherPhenomena) isEntity() {}

// TemperatureType distinguishes forecast maxima from minima.
type TemperatureType string

const (
	TemperatureMax TemperatureType = "TX"
	TemperatureMin TemperatureType = "TN"
)

// Temperature is a "TXdd/ddhhZ" or "TNdd/ddhhZ" group.
type Temperature struct {
	Type       TemperatureType `json:"type"`
	Value      *Value          `json:"value,omitempty"`
	Day        int             `json:"day"`
	Hour       int             `json:"hour"`
	Evolutions []*Evolution    `json:"evolutions,omitempty"`
}

func (*Temperature) isEntity() {}
