package world

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Pregenerate fills every missing chunk within radius of centre before play
// starts. Generation runs on up to workers goroutines, each on a private
// chunk; the results are inserted on the calling goroutine once all are done.
func (w *World) Pregenerate(ctx context.Context, centre ChunkPos, radius, workers int) error {
	if w.gen == nil || radius < 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}
	start := time.Now()

	var missing []ChunkPos
	for x := centre.X - radius; x <= centre.X+radius; x++ {
		for z := centre.Z - radius; z <= centre.Z+radius; z++ {
			pos := ChunkPos{X: x, Z: z}
			if _, ok := w.chunks[pos]; !ok {
				missing = append(missing, pos)
			}
		}
	}

	built := make([]*Chunk, len(missing))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, pos := range missing {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			c := NewChunk(pos)
			w.gen.Generate(pos, c)
			built[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("pregenerate: %w", err)
	}

	for _, c := range built {
		w.insert(c)
	}
	w.logger.Info("pregenerated chunks",
		zap.Int("count", len(built)),
		zap.Int("radius", radius),
		zap.Int("workers", workers),
		zap.Duration("took", time.Since(start)),
	)
	return nil
}
