package screening

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/complianceworks/sanctions-screening-backend/internal/domain/errors"
	domain "github.com/complianceworks/sanctions-screening-backend/internal/domain/screening"
	"github.com/complianceworks/sanctions-screening-backend/internal/index"
	"github.com/complianceworks/sanctions-screening-backend/internal/infrastructure/telemetry"
	"github.com/complianceworks/sanctions-screening-backend/internal/metrics"
)

// RunBatch screens every input and returns one report for the fully
// processed batch.
//
// Guarantees:
//   - Oversized batches are rejected before any record is touched.
//   - Every record is screened against the same index snapshot, resolved
//     once up front; an unloaded index fails the whole batch closed.
//   - A failing record becomes an error-marked result and the batch
//     continues; it counts toward total_processed, never toward hits.
//   - Results come back in input order regardless of worker interleaving.
//   - On timeout or cancellation the whole batch fails and completed
//     results are discarded; callers resubmit, they never get a partial
//     report.
func (s *Service) RunBatch(ctx context.Context, inputs []domain.Input) (*domain.BulkReport, error) {
	ctx, span := s.tracer.StartScreeningSpan(ctx, "batch")
	defer span.End()

	if len(inputs) > s.cfg.Batch.MaxRecords {
		metrics.BatchesTotal.WithLabelValues("rejected").Inc()
		err := errors.NewBatchSizeError(len(inputs), s.cfg.Batch.MaxRecords)
		telemetry.WithSpanError(span, err)
		return nil, err
	}

	ix, err := s.store.Active()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	batchCtx, cancel := context.WithTimeout(ctx, s.cfg.Batch.Timeout)
	defer cancel()

	results := make([]*domain.Result, len(inputs))

	g, workCtx := errgroup.WithContext(batchCtx)
	g.SetLimit(s.cfg.Batch.Concurrency)

	for i, input := range inputs {
		// cooperative cancellation, checked before each record starts
		if err := workCtx.Err(); err != nil {
			break
		}

		g.Go(func() error {
			if err := workCtx.Err(); err != nil {
				return err
			}
			results[i] = s.screenRecord(workCtx, input, ix)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		failure := s.failBatch(batchCtx, err, len(inputs))
		telemetry.WithSpanError(span, failure)
		return nil, failure
	}
	if err := batchCtx.Err(); err != nil {
		failure := s.failBatch(batchCtx, err, len(inputs))
		telemetry.WithSpanError(span, failure)
		return nil, failure
	}

	duration := time.Since(start)
	report := domain.NewBulkReport(results, duration, time.Now().UTC())

	metrics.BatchesTotal.WithLabelValues("completed").Inc()
	metrics.BatchDuration.Observe(duration.Seconds())
	s.logger.Info("batch completed",
		zap.String("report_id", report.ReportID),
		zap.String("index_version", ix.Version()),
		zap.Int("total_processed", report.TotalProcessed),
		zap.Int("hits", report.Hits),
		zap.Int("errored", report.Errored),
		zap.Float64("hit_rate", report.HitRate),
		zap.Duration("duration", duration),
	)

	return report, nil
}

// screenRecord isolates one record: a validation failure produces an
// error-marked result instead of aborting the batch.
func (s *Service) screenRecord(ctx context.Context, input domain.Input, ix *index.Index) *domain.Result {
	if err := input.Validate(); err != nil {
		metrics.ScreeningsTotal.WithLabelValues("error").Inc()
		return domain.NewErrorResult(input, err, time.Now().UTC())
	}
	return s.screenAgainst(ctx, input, ix)
}

// failBatch maps a batch-level context failure to its stable error,
// discarding all completed per-record results.
func (s *Service) failBatch(batchCtx context.Context, cause error, size int) error {
	if batchCtx.Err() == context.DeadlineExceeded {
		metrics.BatchesTotal.WithLabelValues("timeout").Inc()
		s.logger.Warn("batch timed out",
			zap.Int("size", size),
			zap.Duration("timeout", s.cfg.Batch.Timeout),
		)
		return errors.NewBatchTimeoutError(
			"batch exceeded the configured processing deadline; resubmit the batch").
			WithCause(cause)
	}

	metrics.BatchesTotal.WithLabelValues("cancelled").Inc()
	s.logger.Warn("batch cancelled", zap.Int("size", size))
	return errors.Wrap(cause, "batch cancelled")
}
