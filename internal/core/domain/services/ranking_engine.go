package services

import (
	"fmt"
	"math"
	"sort"
	"time"

	"fulfillment/internal/core/domain/model/courier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

const (
	// MaxDistancePoints is the distance term at zero distance.
	MaxDistancePoints = 30.0

	maxRatingStars       = 5.0
	neutralRatingStars   = 3.0
	loadPenaltyPerActive = 3.0

	// DefaultMaxDistanceMeters bounds the search radius when none is configured.
	DefaultMaxDistanceMeters = 10000.0
)

// Candidate is a courier with the position used for this ranking.
type Candidate struct {
	Courier  *courier.Courier
	Position kernel.GeoPoint
}

// RankedCourier is one line of a ranking.
type RankedCourier struct {
	Courier        *courier.Courier
	DistanceMeters float64
	Score          courier.Score
	DistanceScore  float64
}

// BaseScore is the rating + reliability + load part.
func (r RankedCourier) BaseScore() float64 {
	return r.Score.Overall()
}

// TotalScore is what the ranking sorts on.
func (r RankedCourier) TotalScore() float64 {
	return r.Score.Overall() + r.DistanceScore
}

// RankingEngine scores couriers and ranks them for a pickup origin.
//
//	base     = min(30, 30*avgRating/5) + min(25, 25*completionRate) + max(0, 15 - 3*active)
//	distance = 30 * (1 - d/maxDistance), couriers beyond maxDistance are dropped
//
// A courier who was never rated is scored as a 3-star average. A courier
// without history gets a completion rate of 1.
type RankingEngine struct {
	maxDistanceMeters float64
}

func NewRankingEngine(maxDistanceMeters float64) (RankingEngine, error) {
	if math.IsNaN(maxDistanceMeters) || maxDistanceMeters <= 0 {
		return RankingEngine{}, errs.NewValueIsInvalidErrorWithCause("max distance",
			fmt.Errorf("%v is not greater than 0", maxDistanceMeters))
	}
	return RankingEngine{maxDistanceMeters: maxDistanceMeters}, nil
}

func (e RankingEngine) MaxDistanceMeters() float64 {
	return e.maxDistanceMeters
}

// Score computes the courier's base score from ratings and delivery history.
func (e RankingEngine) Score(c *courier.Courier, at time.Time) (courier.Score, error) {
	if err := c.Validate(); err != nil {
		return courier.Score{}, err
	}

	avg, rated := c.AverageRating()
	if !rated {
		avg = neutralRatingStars
	}
	ratingPoints := math.Min(courier.MaxRatingPoints, courier.MaxRatingPoints*avg/maxRatingStars)

	stats := c.Stats()
	reliabilityPoints := math.Min(courier.MaxReliabilityPoints, courier.MaxReliabilityPoints*stats.CompletionRate())
	loadPoints := math.Max(0, courier.MaxLoadPoints-loadPenaltyPerActive*float64(stats.Active))

	return courier.NewScore(ratingPoints, reliabilityPoints, loadPoints, at)
}

// DistanceScore decays linearly from MaxDistancePoints at 0 m to 0 at the limit.
// The second value is false when the courier is out of range.
func (e RankingEngine) DistanceScore(distanceMeters float64) (float64, bool) {
	if math.IsNaN(distanceMeters) || distanceMeters < 0 || distanceMeters > e.maxDistanceMeters {
		return 0, false
	}
	return MaxDistancePoints * (1 - distanceMeters/e.maxDistanceMeters), true
}

// Rank returns in-range candidates ordered by total score, highest first. Ties
// are broken by courier id so the order is deterministic.
func (e RankingEngine) Rank(origin kernel.GeoPoint, candidates []Candidate, at time.Time) ([]RankedCourier, error) {
	if err := origin.Validate(); err != nil {
		return nil, err
	}

	ranked := make([]RankedCourier, 0, len(candidates))
	for _, candidate := range candidates {
		distance, err := origin.DistanceTo(candidate.Position)
		if err != nil {
			return nil, err
		}

		distanceScore, inRange := e.DistanceScore(distance)
		if !inRange {
			continue
		}

		score, err := e.Score(candidate.Courier, at)
		if err != nil {
			return nil, err
		}

		ranked = append(ranked, RankedCourier{
			Courier:        candidate.Courier,
			DistanceMeters: distance,
			Score:          score,
			DistanceScore:  distanceScore,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		ti, tj := ranked[i].TotalScore(), ranked[j].TotalScore()
		if ti != tj {
			return ti > tj
		}
		return ranked[i].Courier.ID().Compare(ranked[j].Courier.ID()) < 0
	})

	return ranked, nil
}
