package listfeed

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/complianceworks/sanctions-screening-backend/internal/domain/sanction"
	"github.com/complianceworks/sanctions-screening-backend/internal/index"
	"github.com/complianceworks/sanctions-screening-backend/internal/infrastructure/telemetry"
	"github.com/complianceworks/sanctions-screening-backend/internal/metrics"
)

// Loader pulls every configured supplier, builds a fresh index snapshot,
// and swaps it into the store. Readers keep the previous snapshot until
// the swap happens; a failed rebuild publishes nothing.
type Loader struct {
	logger    *zap.Logger
	suppliers []Supplier
	store     *index.Store
	tracer    *telemetry.Tracer
}

func NewLoader(logger *zap.Logger, store *index.Store, suppliers ...Supplier) *Loader {
	return &Loader{
		logger:    logger,
		suppliers: suppliers,
		store:     store,
		tracer:    telemetry.NewTracer("listfeed"),
	}
}

// Rebuild fetches all suppliers concurrently, merges their entities in
// supplier order, and atomically publishes the new snapshot. Any supplier
// failure aborts the whole rebuild and leaves the active snapshot in place.
func (l *Loader) Rebuild(ctx context.Context) (*index.Index, error) {
	ctx, span := l.tracer.StartIndexSpan(ctx, "rebuild")
	defer span.End()

	start := time.Now()

	fetched := make([][]*sanction.Entity, len(l.suppliers))
	g, gctx := errgroup.WithContext(ctx)
	for i, supplier := range l.suppliers {
		g.Go(func() error {
			entities, err := supplier.Entities(gctx)
			if err != nil {
				return err
			}
			fetched[i] = entities
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		l.logger.Error("list rebuild aborted", zap.Error(err))
		telemetry.WithSpanError(span, err)
		return nil, err
	}

	var merged []*sanction.Entity
	for _, entities := range fetched {
		merged = append(merged, entities...)
	}

	ix := index.Build(merged)
	l.store.Swap(ix)

	metrics.IndexRebuildsTotal.Inc()
	for source, count := range ix.CountBySource() {
		metrics.IndexEntities.WithLabelValues(source).Set(float64(count))
	}

	l.logger.Info("list index rebuilt",
		zap.String("index_version", ix.Version()),
		zap.Int("entities", ix.Size()),
		zap.Any("by_source", ix.CountBySource()),
		zap.Duration("duration", time.Since(start)),
	)

	return ix, nil
}

// Sources lists the configured supplier sources in load order
func (l *Loader) Sources() []string {
	sources := make([]string, 0, len(l.suppliers))
	for _, s := range l.suppliers {
		sources = append(sources, s.Source().String())
	}
	return sources
}
