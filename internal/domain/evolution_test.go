package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvolutionClone(t *testing.T) {
	nested := &Evolution{Type: EvolutionTemporary, Probability: "PROB30", FromDay: 8, FromTime: "08:00 UTC", ToDay: 8, ToTime: "09:00 UTC"}
	orig := &Evolution{
		Type:       EvolutionBecoming,
		FromDay:    8,
		FromTime:   "07:00 UTC",
		ToDay:      8,
		ToTime:     "10:00 UTC",
		Cavok:      true,
		Entity:     &SurfaceWind{MeanSpeed: NewValue(24, UnitKnot)},
		Evolutions: []*Evolution{nested},
	}

	c := orig.Clone()

	t.Run("copies clause fields", func(t *testing.T) {
		want := &Evolution{
			Type:     EvolutionBecoming,
			FromDay:  8,
			FromTime: "07:00 UTC",
			ToDay:    8,
			ToTime:   "10:00 UTC",
			Evolutions: []*Evolution{
				{Type: EvolutionTemporary, Probability: "PROB30", FromDay: 8, FromTime: "08:00 UTC", ToDay: 8, ToTime: "09:00 UTC"},
			},
		}
		if diff := cmp.Diff(want, c); diff != "" {
			t.Errorf("clone mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("drops entity and cavok", func(t *testing.T) {
		assert.Nil(t, c.Entity)
		assert.False(t, c.Cavok)
	})

	t.Run("shares no nested node", func(t *testing.T) {
		require.Len(t, c.Evolutions, 1)
		assert.NotSame(t, nested, c.Evolutions[0])

		orig.Evolutions = append(orig.Evolutions, &Evolution{Type: EvolutionFrom})
		assert.Len(t, c.Evolutions, 1)
	})
}
