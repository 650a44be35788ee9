package values

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/complianceworks/sanctions-screening-backend/internal/domain/errors"
)

// Confidence is an overall match confidence on the 0-100 percentage scale,
// held at two-decimal precision. It is produced exactly once per candidate,
// by the aggregator, from [0,1] algorithm scores. Every layer downstream
// (recommendation thresholds, reports, bulk statistics) consumes this value
// as-is and must never rescale it.
type Confidence struct {
	value float64
}

// FromUnitScore converts a weighted-average [0,1] score to a percentage.
// This is the single scaling point in the pipeline: the input is multiplied
// by 100 here and nowhere else. The result is clamped to [0,100] and rounded
// half-up to two decimals with exact decimal arithmetic so repeated runs are
// bit-for-bit identical.
func FromUnitScore(score float64) Confidence {
	pct := decimal.NewFromFloat(score).Mul(decimal.NewFromInt(100))

	hundred := decimal.NewFromInt(100)
	if pct.IsNegative() {
		pct = decimal.Zero
	} else if pct.GreaterThan(hundred) {
		pct = hundred
	}

	v, _ := pct.Round(2).Float64()
	return Confidence{value: v}
}

// NewConfidence validates a value already on the percentage scale.
func NewConfidence(value float64) (Confidence, error) {
	if value < 0 || value > 100 {
		return Confidence{}, errors.NewValidationError("CONFIDENCE_OUT_OF_RANGE",
			fmt.Sprintf("confidence %.2f outside [0,100]", value))
	}
	v, _ := decimal.NewFromFloat(value).Round(2).Float64()
	return Confidence{value: v}, nil
}

// MustNewConfidence creates Confidence and panics on error (for constants/tests)
func MustNewConfidence(value float64) Confidence {
	c, err := NewConfidence(value)
	if err != nil {
		panic(err)
	}
	return c
}

// Value returns the percentage as a float64 in [0,100]
func (c Confidence) Value() float64 {
	return c.value
}

// AtLeast reports whether the confidence meets a percentage threshold
func (c Confidence) AtLeast(threshold float64) bool {
	return c.value >= threshold
}

// Below reports whether the confidence is under a percentage threshold
func (c Confidence) Below(threshold float64) bool {
	return c.value < threshold
}

// GreaterThan compares two confidence values
func (c Confidence) GreaterThan(other Confidence) bool {
	return c.value > other.value
}

// Equal checks if two Confidence values are equal
func (c Confidence) Equal(other Confidence) bool {
	return c.value == other.value
}

// String renders the percentage with two decimals, e.g. "92.50"
func (c Confidence) String() string {
	return fmt.Sprintf("%.2f", c.value)
}

// MarshalJSON implements JSON marshaling
func (c Confidence) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.value)
}

// UnmarshalJSON implements JSON unmarshaling
func (c *Confidence) UnmarshalJSON(data []byte) error {
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	conf, err := NewConfidence(v)
	if err != nil {
		return err
	}

	*c = conf
	return nil
}
