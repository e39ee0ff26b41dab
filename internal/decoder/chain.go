package decoder

import (
	"errors"
	"strings"

	"github.com/couchcryptid/taf-decoder/internal/domain"
)

// chain is the fixed order in which the report body is decoded.
var chain = []Fragment{
	reportTypeFragment{},
	icaoFragment{},
	datetimeFragment{},
	forecastPeriodFragment{},
	surfaceWindFragment{},
	visibilityFragment{},
	weatherFragment{},
	cloudsFragment{},
	temperatureFragment{},
}

// Chain returns the fragment decoders in decoding order.
func Chain() []Fragment {
	return append([]Fragment(nil), chain...)
}

// runChain decodes the report body into taf and returns the text left for
// evolution decoding. The CAVOK flag is latched after visibility and passed
// to the later fragments.
func runChain(taf *domain.DecodedTaf, remaining string, mode Mode) string {
	withCavok := false
	for _, f := range chain {
		if isCancellation(remaining) {
			taf.Cancelled = true
			break
		}

		res, err := f.Parse(remaining, withCavok)
		if err != nil {
			var de *domain.DecodeError
			if !errors.As(err, &de) {
				de = shapeError(f.Component(), remaining, err.Error())
			}
			taf.AddDecodingError(de)
			if mode == Strict {
				break
			}
			remaining = de.Leftover
		} else {
			merge(taf, res.Fields)
			remaining = res.Remaining
		}

		if f.Component() == domain.ComponentVisibility {
			withCavok = taf.Cavok
		}
	}
	return remaining
}

func isCancellation(s string) bool {
	return s == "CNL" || strings.HasPrefix(s, "CNL ")
}

// merge copies every produced field onto the report.
func merge(taf *domain.DecodedTaf, f Fields) {
	if f.Type != nil {
		taf.Type = *f.Type
	}
	if f.ICAO != nil {
		taf.ICAO = *f.ICAO
	}
	if f.Day != nil {
		taf.Day = *f.Day
	}
	if f.Time != nil {
		taf.Time = *f.Time
	}
	if f.ForecastPeriod != nil {
		taf.ForecastPeriod = f.ForecastPeriod
	}
	if f.SurfaceWind != nil {
		taf.SurfaceWind = f.SurfaceWind
	}
	if f.Visibility != nil {
		taf.Visibility = f.Visibility
	}
	if f.Cavok != nil {
		taf.Cavok = *f.Cavok
	}
	if f.WeatherPhenomena != nil {
		taf.WeatherPhenomena = f.WeatherPhenomena
	}
	if f.Clouds != nil {
		taf.Clouds = f.Clouds
	}
	if f.MinimumTemperature != nil {
		taf.MinimumTemperature = f.MinimumTemperature
	}
	if f.MaximumTemperature != nil {
		taf.MaximumTemperature = f.MaximumTemperature
	}
}
