package ratings

import (
	"math"

	"github.com/lhgjose/ufc-prediction-fights/internal/models"
)

// ExpectedScore is the standard Elo logistic expectation for A against B:
// E_A = 1 / (1 + 10^((R_B - R_A) / 400)).
func ExpectedScore(ratingA, ratingB float64) float64 {
	return 1.0 / (1.0 + math.Pow(10, (ratingB-ratingA)/400.0))
}

// NewValue applies the Elo update R' = R + K * (S - E).
func NewValue(rating, expected, actual, k float64) float64 {
	return rating + k*(actual-expected)
}

// WinProbability converts a rating differential (A - B) into the
// probability that A wins.
func WinProbability(diff float64) float64 {
	return 1.0 / (1.0 + math.Pow(10, -diff/400.0))
}

// DynamicK scales the base K-factor by experience: provisional fighters
// converge faster, established high-rated fighters move slower.
func DynamicK(p Params, bouts int, rating float64) float64 {
	k := p.KBase
	if bouts < p.ProvisionalBouts {
		k = p.KBase * p.ProvisionalMult
	} else if rating > p.HighRatingThreshold {
		k = p.KBase * p.HighRatingMult
	}
	return k
}

// FinishMultiplier boosts the update for stoppage wins. A finish inside
// the first half of the scheduled distance transfers the most rating.
func FinishMultiplier(p Params, method models.Method, roundFinished, scheduledRounds int) float64 {
	switch method {
	case models.MethodKOTKO, models.MethodSubmission:
		if scheduledRounds > 0 && roundFinished > 0 && roundFinished*2 <= scheduledRounds {
			return p.EarlyFinishMult
		}
		return p.FinishMult
	}
	return 1.0
}

// shrinkDeviation tightens the uncertainty estimate after a bout.
func shrinkDeviation(p Params, deviation float64) float64 {
	d := deviation * p.DeviationShrink
	if d < models.MinDeviation {
		return models.MinDeviation
	}
	return d
}
