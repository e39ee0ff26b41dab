package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportID(t *testing.T) {
	a := ReportID("TAF LFPG 271035Z 2712/2818 24010KT CAVOK")
	b := ReportID("TAF LFPG 271035Z 2712/2818 24010KT CAVOK")
	c := ReportID("TAF LFPO 271035Z 2712/2818 24010KT CAVOK")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)

	id, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(5), id.Version())
}

func TestNewDecodedReport(t *testing.T) {
	fixed := time.Date(2026, 3, 4, 22, 44, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(fixed))
	t.Cleanup(func() { SetClock(nil) })

	taf := NewDecodedTaf("TAF LFPG 271035Z")
	taf.Type = ReportTypeTAF
	taf.ICAO = "LFPG"
	taf.AddDecodingError(&DecodeError{Decoder: ComponentForecastPeriod, Kind: KindShape, Text: "END", Message: "missing"})

	report := NewDecodedReport(taf)

	assert.Equal(t, ReportID("TAF LFPG 271035Z"), report.ID)
	assert.Equal(t, "LFPG", report.ICAO)
	assert.False(t, report.Valid)
	assert.Len(t, report.Errors, 1)
	assert.Equal(t, fixed, report.DecodedAt)
	assert.Same(t, taf, report.Report)

	data, err := json.Marshal(report)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "LFPG", decoded["icao"])
	assert.Equal(t, false, decoded["valid"])
	assert.Equal(t, "2026-03-04T22:44:00Z", decoded["decoded_at"])

	inner, ok := decoded["report"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "TAF", inner["type"])
	assert.Equal(t, "TAF LFPG 271035Z", inner["raw"])
}
