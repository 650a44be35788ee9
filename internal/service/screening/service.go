// Package screening wires the normalizer, matcher, aggregator, and
// recommendation engine into the screening service, and drives bulk input
// through them.
package screening

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/complianceworks/sanctions-screening-backend/internal/domain/errors"
	domain "github.com/complianceworks/sanctions-screening-backend/internal/domain/screening"
	"github.com/complianceworks/sanctions-screening-backend/internal/index"
	"github.com/complianceworks/sanctions-screening-backend/internal/infrastructure/telemetry"
	"github.com/complianceworks/sanctions-screening-backend/internal/matching"
	"github.com/complianceworks/sanctions-screening-backend/internal/metrics"
)

// Service is the screening engine. It owns no mutable state beyond the
// swappable index reference; per-record work shares nothing, so concurrent
// screening over one snapshot needs no locking.
type Service struct {
	logger      *zap.Logger
	cfg         Config
	store       *index.Store
	matcher     *matching.Matcher
	aggregator  *Aggregator
	recommender *Recommender
	tracer      *telemetry.Tracer
}

// NewService validates the whole configuration and assembles the pipeline.
// Configuration failures surface here, at startup, never at request time.
func NewService(logger *zap.Logger, cfg Config, store *index.Store) (*Service, error) {
	if logger == nil {
		return nil, errors.NewConfigurationError("INVALID_LOGGER", "logger cannot be nil")
	}
	if store == nil {
		return nil, errors.NewConfigurationError("INVALID_INDEX_STORE", "index store cannot be nil")
	}

	aggregator, err := NewAggregator(cfg.Weights)
	if err != nil {
		return nil, err
	}
	// Variants rank by the same weighted combination the aggregator reports,
	// so the matched name on a candidate always carries its best confidence.
	matcher, err := matching.NewMatcher(cfg.Matching)
	if err != nil {
		return nil, err
	}
	matcher.WithRank(aggregator.UnitScore)
	recommender, err := NewRecommender(cfg.Thresholds, cfg.HighSeverityPrograms)
	if err != nil {
		return nil, err
	}
	if err := cfg.Batch.Validate(); err != nil {
		return nil, err
	}

	return &Service{
		logger:      logger,
		cfg:         cfg,
		store:       store,
		matcher:     matcher,
		aggregator:  aggregator,
		recommender: recommender,
		tracer:      telemetry.NewTracer("service.screening"),
	}, nil
}

// Screen checks a single subject against the active index. Validation
// failures are hard errors in single-record mode; an unloaded index fails
// closed.
func (s *Service) Screen(ctx context.Context, input domain.Input) (*domain.Result, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	ix, err := s.store.Active()
	if err != nil {
		return nil, err
	}

	return s.screenAgainst(ctx, input, ix), nil
}

// screenAgainst runs the per-record pipeline on one snapshot. The batch
// orchestrator calls it with a single snapshot resolved up front so every
// record in a batch is screened against the same index version.
func (s *Service) screenAgainst(ctx context.Context, input domain.Input, ix *index.Index) *domain.Result {
	_, span := s.tracer.StartScreeningSpan(ctx, "screen")
	defer span.End()

	start := time.Now()

	subject := matching.Normalize(input.FullName)
	found := s.matcher.Match(subject, ix)

	candidates := make([]domain.MatchCandidate, 0, len(found))
	for _, m := range found {
		confidence := s.aggregator.Aggregate(m.Scores)
		recommendation := s.recommender.Recommend(confidence, m.Entity)
		candidates = append(candidates, domain.MatchCandidate{
			Entity:         m.Entity,
			MatchedName:    m.MatchedName,
			MatchedOnAlias: m.MatchedOnAlias,
			Scores:         rawScores(m.Scores),
			Confidence:     confidence,
			Recommendation: recommendation,
			Flags:          s.candidateFlags(input, m),
		})
	}

	result := domain.NewResult(input, ix.Version(), candidates, time.Now().UTC())

	metrics.ScreeningDuration.Observe(time.Since(start).Seconds())
	metrics.RecommendationsTotal.WithLabelValues(result.Recommendation().String()).Inc()
	if result.IsHit {
		metrics.ScreeningsTotal.WithLabelValues("hit").Inc()
		s.logger.Info("screening hit",
			zap.String("screening_id", result.ScreeningID),
			zap.String("index_version", ix.Version()),
			zap.Int("hit_count", result.HitCount),
			zap.String("recommendation", result.Recommendation().String()),
			zap.String("top_confidence", result.TopConfidence().String()),
		)
	} else {
		metrics.ScreeningsTotal.WithLabelValues("clean").Inc()
	}

	return result
}

func rawScores(scores matching.ScoreVector) map[string]float64 {
	out := make(map[string]float64, len(scores))
	for _, alg := range matching.Algorithms() {
		out[string(alg)] = scores[alg]
	}
	return out
}

func (s *Service) candidateFlags(input domain.Input, m matching.Match) []string {
	var flags []string
	if m.Scores[matching.AlgorithmExact] == 1.0 {
		flags = append(flags, domain.FlagExactNameMatch)
	}
	if m.MatchedOnAlias {
		flags = append(flags, domain.FlagMatchedOnAlias)
	}
	if s.recommender.IsHighSeverity(m.Entity) {
		flags = append(flags, domain.FlagHighSeverityProgram)
	}
	if input.Country != "" && m.Entity.HasCountry(input.Country) {
		flags = append(flags, domain.FlagCountryMatch)
	}
	return flags
}

// IndexStore exposes the swappable index reference for the rebuild surface
func (s *Service) IndexStore() *index.Store {
	return s.store
}

// Config returns the validated engine configuration
func (s *Service) Config() Config {
	return s.cfg
}
