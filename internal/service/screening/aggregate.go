package screening

import (
	"fmt"
	"math"

	"github.com/complianceworks/sanctions-screening-backend/internal/domain/errors"
	"github.com/complianceworks/sanctions-screening-backend/internal/domain/values"
	"github.com/complianceworks/sanctions-screening-backend/internal/matching"
)

// Weights assigns one weight per scoring algorithm. Weights must cover the
// full algorithm set and sum to 1.0; this is validated at startup and never
// re-checked per request.
type Weights map[matching.Algorithm]float64

// DefaultWeights orders evidence strength per policy: algorithms that
// indicate deliberate identity (exact, phonetic) weigh no less than
// syntactic similarity (edit distance, token set).
func DefaultWeights() Weights {
	return Weights{
		matching.AlgorithmExact:        0.30,
		matching.AlgorithmPhonetic:     0.30,
		matching.AlgorithmTokenSet:     0.20,
		matching.AlgorithmEditDistance: 0.20,
	}
}

const weightSumTolerance = 1e-6

// Validate fails fast on malformed weighting policy
func (w Weights) Validate() error {
	sum := 0.0
	for _, alg := range matching.Algorithms() {
		weight, ok := w[alg]
		if !ok {
			return errors.NewConfigurationError("MISSING_ALGORITHM_WEIGHT",
				fmt.Sprintf("no weight configured for algorithm '%s'", alg))
		}
		if weight < 0 || weight > 1 {
			return errors.NewConfigurationError("INVALID_ALGORITHM_WEIGHT",
				fmt.Sprintf("weight for '%s' must be within [0,1], got %v", alg, weight))
		}
		sum += weight
	}
	if len(w) != len(matching.Algorithms()) {
		return errors.NewConfigurationError("UNKNOWN_ALGORITHM_WEIGHT",
			"weights configured for algorithms outside the closed set")
	}
	if math.Abs(sum-1.0) > weightSumTolerance {
		return errors.NewConfigurationError("WEIGHTS_NOT_NORMALIZED",
			fmt.Sprintf("algorithm weights must sum to 1.0, got %v", sum))
	}
	return nil
}

// Aggregator reduces a per-algorithm score vector to one overall
// confidence.
type Aggregator struct {
	weights Weights
}

// NewAggregator validates the weighting policy once, at startup
func NewAggregator(weights Weights) (*Aggregator, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	return &Aggregator{weights: weights}, nil
}

// Aggregate computes the weighted average of the [0,1] scores and converts
// it to the [0,100] percentage scale. The conversion happens inside
// values.FromUnitScore and nowhere else in the pipeline; downstream layers
// consume the returned Confidence as-is and must never rescale it.
func (a *Aggregator) Aggregate(scores matching.ScoreVector) values.Confidence {
	return values.FromUnitScore(a.UnitScore(scores))
}

// UnitScore is the weighted average on the [0,1] scale. The matcher ranks
// name variants with it so the variant it reports is the one with the
// highest final confidence, not the highest unweighted mean.
func (a *Aggregator) UnitScore(scores matching.ScoreVector) float64 {
	weighted := 0.0
	for _, alg := range matching.Algorithms() {
		weighted += a.weights[alg] * scores[alg]
	}
	return weighted
}
