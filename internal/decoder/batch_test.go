package decoder_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/couchcryptid/taf-decoder/internal/decoder"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestDecodeBatch_PreservesOrder(t *testing.T) {
	raws := make([]string, 50)
	for i := range raws {
		raws[i] = fmt.Sprintf("TAF LFPG %02d0500Z %02d06/%02d12 23010KT 9999 SCT025", i%28+1, i%28+1, i%28+1)
	}

	got, err := decoder.DecodeBatch(context.Background(), raws, decoder.Strict, 8)
	require.NoError(t, err)
	require.Len(t, got, len(raws))
	for i, taf := range got {
		require.NotNil(t, taf)
		assert.Equal(t, raws[i], taf.Raw)
		assert.Equal(t, i%28+1, taf.Day)
		assert.True(t, taf.IsValid(), "report %d: %v", i, taf.DecodingErrors())
	}
}

func TestDecodeBatch_MatchesSequential(t *testing.T) {
	raws := []string{
		"TAF TAF LIR 032244Z 0318/0206 23010KT",
		"TAF KJFK 081730Z 0818/0924 31015G25KT P6SM BKN040",
		"TAF LFMT 032244Z 0318/0206 CNL",
		"",
	}

	for _, mode := range []decoder.Mode{decoder.Lenient, decoder.Strict} {
		t.Run(mode.String(), func(t *testing.T) {
			got, err := decoder.DecodeBatch(context.Background(), raws, mode, 0)
			require.NoError(t, err)
			for i, raw := range raws {
				want := decoder.Decode(raw, mode)
				assert.Equal(t, want.IsValid(), got[i].IsValid())
				assert.Len(t, got[i].DecodingErrors(), len(want.DecodingErrors()))
			}
		})
	}
}

func TestDecodeBatch_Empty(t *testing.T) {
	got, err := decoder.DecodeBatch(context.Background(), nil, decoder.Lenient, 4)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDecodeBatch_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := decoder.DecodeBatch(ctx, []string{"TAF LFPG 080500Z 0806/0912 23010KT"}, decoder.Lenient, 2)
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, got)
}

func TestDecodeAll_UsesDecoder(t *testing.T) {
	cached := decoder.NewCachedDecoder(decoder.For(decoder.Lenient), 10, nil)
	raws := []string{"TAF LFPG 080500Z 0806/0912 23010KT", "taf lfpg 080500z 0806/0912 23010kt"}

	got, err := decoder.DecodeAll(context.Background(), cached, raws, 1)
	require.NoError(t, err)
	assert.Same(t, got[0], got[1])
	assert.Equal(t, 1, cached.Len())
}
