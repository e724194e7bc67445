package pipeline

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mailscout/mailscout/internal/model"
)

// RunFunc executes one complete extraction for a start URL and reports the
// outcome. Implementations must build a fresh pipeline and fetcher per
// call: accumulators and retry counters are single-run state.
type RunFunc func(ctx context.Context, startURL string) *model.Run

// BatchProcessor runs extractions for several start URLs concurrently.
// Each URL gets its own pipeline; only the scheduling is shared.
//
// Design decision: We use errgroup.SetLimit rather than a hand-rolled
// worker pool because it handles the concurrency bound and context
// cancellation correctly with far less code.
type BatchProcessor struct {
	// run executes a single extraction.
	run RunFunc

	// concurrency is the maximum number of simultaneous extractions.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent extractions.
// Default is 4.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a BatchProcessor around the given RunFunc.
func NewBatchProcessor(run RunFunc, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		run:         run,
		concurrency: 4,
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// Process extracts emails for every start URL, respecting the concurrency
// limit and context cancellation. The returned slice matches the input
// order; a failed URL yields a Run with its ErrorMessage set rather than
// failing the batch.
func (bp *BatchProcessor) Process(ctx context.Context, startURLs []string) ([]*model.Run, error) {
	bp.logger.Info("starting batch extraction",
		"targets", len(startURLs),
		"concurrency", bp.concurrency,
	)
	start := time.Now()

	results := make([]*model.Run, len(startURLs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, startURL := range startURLs {
		i, startURL := i, startURL
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			results[i] = bp.run(gctx, startURL)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}

	bp.logger.Info("batch extraction complete",
		"targets", len(startURLs),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	return results, nil
}
