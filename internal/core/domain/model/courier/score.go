package courier

import (
	"errors"
	"math"
	"time"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// Point budgets of the score components.
const (
	MaxRatingPoints      = 30.0
	MaxReliabilityPoints = 25.0
	MaxLoadPoints        = 15.0
)

var ErrScoreIsNotConstructed = errs.NewValueIsRequiredError("score")

// Score is a derived snapshot of a courier's standing. It is recomputed from
// ratings and delivery history, never edited by hand.
type Score struct {
	rating       float64
	reliability  float64
	load         float64
	calculatedAt time.Time
	guard        guard.ConstructorGuard
}

func NewScore(rating, reliability, load float64, calculatedAt time.Time) (Score, error) {
	if err := errors.Join(
		checkComponent("rating component", rating, MaxRatingPoints),
		checkComponent("reliability component", reliability, MaxReliabilityPoints),
		checkComponent("load component", load, MaxLoadPoints),
	); err != nil {
		return Score{}, err
	}

	return Score{
		rating:       rating,
		reliability:  reliability,
		load:         load,
		calculatedAt: calculatedAt,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (s Score) Validate() error {
	return s.guard.Validate(ErrScoreIsNotConstructed)
}

func (s Score) Overall() float64              { return s.rating + s.reliability + s.load }
func (s Score) RatingComponent() float64      { return s.rating }
func (s Score) ReliabilityComponent() float64 { return s.reliability }
func (s Score) LoadComponent() float64        { return s.load }
func (s Score) CalculatedAt() time.Time       { return s.calculatedAt }

func checkComponent(name string, v, maxValue float64) error {
	if math.IsNaN(v) || v < 0 || v > maxValue {
		return errs.NewValueIsOutOfRangeError(name, v, 0, maxValue)
	}
	return nil
}
