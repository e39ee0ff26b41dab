package decoder

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/couchcryptid/taf-decoder/internal/domain"
)

// DecodeBatch decodes raws concurrently in the given mode. Results keep the
// input order. It fails only when ctx is cancelled.
func DecodeBatch(ctx context.Context, raws []string, mode Mode, workers int) ([]*domain.DecodedTaf, error) {
	return DecodeAll(ctx, For(mode), raws, workers)
}

// DecodeAll decodes raws with d using at most workers goroutines.
func DecodeAll(ctx context.Context, d Decoder, raws []string, workers int) ([]*domain.DecodedTaf, error) {
	if workers < 1 {
		workers = 1
	}
	out := make([]*domain.DecodedTaf, len(raws))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, raw := range raws {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = d.Decode(raw)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
