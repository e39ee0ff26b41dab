package decoder

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/taf-decoder/internal/domain"
)

func TestSurfaceWindFragment(t *testing.T) {
	tests := []struct {
		input     string
		want      *domain.SurfaceWind
		remaining string
	}{
		{
			input: "23010KT AAA",
			want: &domain.SurfaceWind{
				MeanDirection: domain.NewValue(230, domain.UnitDegree),
				MeanSpeed:     domain.NewValue(10, domain.UnitKnot),
			},
			remaining: "AAA",
		},
		{
			input: "VRB03KT BBB",
			want: &domain.SurfaceWind{
				VariableDirection: true,
				MeanSpeed:         domain.NewValue(3, domain.UnitKnot),
			},
			remaining: "BBB",
		},
		{
			input: "24015G25KT 210V270 CCC",
			want: &domain.SurfaceWind{
				MeanDirection:       domain.NewValue(240, domain.UnitDegree),
				MeanSpeed:           domain.NewValue(15, domain.UnitKnot),
				SpeedVariations:     domain.NewValue(25, domain.UnitKnot),
				DirectionVariations: []domain.Value{*domain.NewValue(210, domain.UnitDegree), *domain.NewValue(270, domain.UnitDegree)},
			},
			remaining: "CCC",
		},
		{
			input: "31010MPS DDD",
			want: &domain.SurfaceWind{
				MeanDirection: domain.NewValue(310, domain.UnitDegree),
				MeanSpeed:     domain.NewValue(10, domain.UnitMeterPerSecond),
			},
			remaining: "DDD",
		},
		{
			input: "///15KPH EEE",
			want: &domain.SurfaceWind{
				MeanDirection: domain.Unmeasured(domain.UnitDegree),
				MeanSpeed:     domain.NewValue(15, domain.UnitKilometerPerHour),
			},
			remaining: "EEE",
		},
		{
			input: "240P99KT FFF",
			want: &domain.SurfaceWind{
				MeanDirection: domain.NewValue(240, domain.UnitDegree),
				MeanSpeed:     domain.NewValue(99, domain.UnitKnot),
			},
			remaining: "FFF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			res, err := surfaceWindFragment{}.Parse(tt.input, false)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, res.Fields.SurfaceWind); diff != "" {
				t.Fatalf("surface wind mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, tt.remaining, res.Remaining)
		})
	}
}

func TestSurfaceWindFragment_Errors(t *testing.T) {
	tests := []struct {
		input    string
		kind     domain.ErrorKind
		message  string
		leftover string
	}{
		{"2300ABKT PSSM", domain.KindShape, "Bad format for surface wind information", "PSSM"},
		{"NIL 12345 END", domain.KindShape, "Bad format for surface wind information", "12345 END"},
		{"/////KT AAA", domain.KindRange, "No information measured for surface wind", "AAA"},
		{"36510KT AAA", domain.KindRange, "Wind direction should be in [0,360]", "AAA"},
		{"23010KT 400V090 AAA", domain.KindRange, "Wind direction variations should be in [0,360]", "AAA"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := surfaceWindFragment{}.Parse(tt.input, false)
			de := requireDecodeError(t, err, domain.ComponentSurfaceWind, tt.kind)
			assert.Equal(t, tt.message, de.Message)
			assert.Equal(t, tt.input, de.Text)
			assert.Equal(t, tt.leftover, de.Leftover)
		})
	}
}
