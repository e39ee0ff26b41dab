// Package domain models decoded Terminal Aerodrome Forecast (TAF) reports.
//
// # Data Source
//
// TAF reports are produced by meteorological offices for an aerodrome and
// cover a validity window of up to 30 hours. Upstream collectors publish each
// report as raw text to the Kafka source topic; this service decodes the text
// and publishes the structured form to the sink topic.
//
// # TAF Conventions
//
// Report layout (tokens separated by single spaces after normalization):
//
//	TAF [AMD|COR] <ICAO> <ddhhmmZ> <ddhh/ddhh> <wind> <visibility> [weather] <clouds> [TX.. TN..]
//	followed by zero or more evolution clauses (BECMG, TEMPO, FM, PROBnn).
//
// Surface wind:
//
//	"23010KT"         230 degrees, 10 knots
//	"VRB03KT"         variable direction
//	"18015G25MPS"     gusts to 25 m/s
//	"23010KT 200V260" direction varying between 200 and 260 degrees
//	"/////KT"         nothing measured (decode error)
//
// Visibility:
//
//	"0800"        metres
//	"P6SM"        more than 6 statute miles (Greater)
//	"6 1/4SM"     6.25 statute miles
//	"CAVOK"       ceiling and visibility OK; clouds may then be omitted
//	"////"        not measured
//
// Clouds:
//
//	"BKN020CB"    broken layer at 2000 ft with cumulonimbus
//	"VV///"       vertical visibility, height not measured
//	"NSC" / "NCD" / "SKC" / "CLR" yield an empty layer list
//
// Temperatures:
//
//	"TX05/0318Z TNM03/0405Z"  max 5°C on day 3 at 18Z, min -3°C on day 4 at 05Z
//
// Cancelled forecasts carry "CNL" and have no evolution clauses.
//
// # Evolutions
//
// Each weather entity owns its own evolution history. When one clause changes
// several entities, the clause is cloned per entity so that no two entities
// share an [Evolution] node.
//
// # ID Generation
//
// Report IDs are name-based UUIDs (SHA-1) of the normalized report text, so
// reprocessing the same report yields the same ID downstream. See [ReportID].
package domain
