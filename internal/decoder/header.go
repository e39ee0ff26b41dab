package decoder

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/couchcryptid/taf-decoder/internal/domain"
)

var (
	reportTypeRe     = regexp.MustCompile(`^(TAF(?: TAF)*(?: (AMD|COR))?) `)
	icaoRe           = regexp.MustCompile(`^([A-Z0-9]{4}) `)
	datetimeRe       = regexp.MustCompile(`^([0-9]{2})([0-9]{2})([0-9]{2})Z `)
	forecastPeriodRe = regexp.MustCompile(`^([0-9]{2})([0-9]{2})/([0-9]{2})([0-9]{2}) `)
)

// reportTypeFragment decodes the optional "TAF [AMD|COR]" header.
type reportTypeFragment struct{}

func (reportTypeFragment) Component() domain.Component { return domain.ComponentReportType }
func (reportTypeFragment) Pattern() *regexp.Regexp     { return reportTypeRe }

func (reportTypeFragment) Parse(remaining string, _ bool) (Result, error) {
	m, rest := consume(reportTypeRe, remaining)
	if m == nil {
		return Result{Fields: Fields{Type: ptr(domain.ReportTypeNone)}, Remaining: remaining}, nil
	}
	t := domain.ReportTypeTAF
	switch m[2] {
	case "AMD":
		t = domain.ReportTypeTAFAMD
	case "COR":
		t = domain.ReportTypeTAFCOR
	}
	return Result{Fields: Fields{Type: &t}, Remaining: rest}, nil
}

// icaoFragment decodes the four-character station identifier.
type icaoFragment struct{}

func (icaoFragment) Component() domain.Component { return domain.ComponentICAO }
func (icaoFragment) Pattern() *regexp.Regexp     { return icaoRe }

func (icaoFragment) Parse(remaining string, _ bool) (Result, error) {
	m, rest := consume(icaoRe, remaining)
	if m == nil {
		return Result{}, shapeError(domain.ComponentICAO, remaining, "Station ICAO code not found (4 char expected)")
	}
	return Result{Fields: Fields{ICAO: ptr(m[1])}, Remaining: rest}, nil
}

// datetimeFragment decodes the issue time, ddhhmmZ.
type datetimeFragment struct{}

func (datetimeFragment) Component() domain.Component { return domain.ComponentDatetime }
func (datetimeFragment) Pattern() *regexp.Regexp     { return datetimeRe }

func (datetimeFragment) Parse(remaining string, _ bool) (Result, error) {
	m, rest := consume(datetimeRe, remaining)
	if m == nil {
		return Result{}, shapeError(domain.ComponentDatetime, remaining,
			`Missing or badly formatted day/hour/minute information ("ddhhmmZ" expected)`)
	}
	day, hour, minute := atoi(m[1]), atoi(m[2]), atoi(m[3])
	if day < 1 || day > 31 || hour > 23 || minute > 59 {
		return Result{}, rangeError(domain.ComponentDatetime, remaining, rest, "Invalid values for day/hour/minute")
	}
	return Result{
		Fields: Fields{
			Day:  &day,
			Time: ptr(fmt.Sprintf("%02d:%02d UTC", hour, minute)),
		},
		Remaining: rest,
	}, nil
}

// forecastPeriodFragment decodes the validity window, ddhh/ddhh.
type forecastPeriodFragment struct{}

func (forecastPeriodFragment) Component() domain.Component { return domain.ComponentForecastPeriod }
func (forecastPeriodFragment) Pattern() *regexp.Regexp     { return forecastPeriodRe }

func (forecastPeriodFragment) Parse(remaining string, _ bool) (Result, error) {
	m, rest := consume(forecastPeriodRe, remaining)
	if m == nil {
		return Result{}, shapeError(domain.ComponentForecastPeriod, remaining,
			`Missing or badly formatted forecast period information ("ddhh/ddhh" expected)`)
	}
	period := domain.ForecastPeriod{
		FromDay:  atoi(m[1]),
		FromHour: atoi(m[2]),
		ToDay:    atoi(m[3]),
		ToHour:   atoi(m[4]),
	}
	if !period.IsValid() {
		return Result{}, rangeError(domain.ComponentForecastPeriod, remaining, rest, "Invalid values for the forecast period")
	}
	return Result{Fields: Fields{ForecastPeriod: &period}, Remaining: rest}, nil
}

// atoi converts a digit-only submatch. The grammars guarantee the input.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
