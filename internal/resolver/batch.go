package resolver

import (
	"context"
	"sync"
	"time"

	"github.com/palettelab/color-agent/internal/models"
)

// ResolveMany resolves queries in fixed-size sequential batches. Within a
// batch all resolutions run concurrently; a fixed pause separates batches
// to bound load on the generation service. Batching is not adaptive and
// not error-aware. Per-item failures are captured in that item's result;
// one failure never aborts siblings or later batches. Output order
// matches input order.
func (r *Resolver) ResolveMany(ctx context.Context, queries []models.ColorQuery) []models.ColorResult {
	results := make([]models.ColorResult, len(queries))

	for start := 0; start < len(queries); start += r.batchSize {
		end := min(start+r.batchSize, len(queries))

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i] = r.resolveItem(ctx, queries[i])
			}(i)
		}
		wg.Wait()

		r.logger.Debug().
			Int("from", start).
			Int("to", end).
			Int("total", len(queries)).
			Msg("batch complete")

		if end < len(queries) {
			time.Sleep(r.batchDelay)
		}
	}

	return results
}

func (r *Resolver) resolveItem(ctx context.Context, query models.ColorQuery) models.ColorResult {
	resp, err := r.ResolveOne(ctx, query)
	if err != nil {
		r.logger.Warn().Err(err).Str("phrase", query.Phrase).Msg("query failed")
		return models.ColorResult{
			OriginalInput: query.Phrase,
			Error:         err.Error(),
		}
	}

	return models.ColorResult{
		ColorResponse: resp,
		OriginalInput: query.Phrase,
	}
}
