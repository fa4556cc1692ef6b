package ratings

import (
	"time"

	"github.com/lhgjose/ufc-prediction-fights/internal/models"
)

const daysPerMonth = 30.44

// Decay ages a single rating to asOf. The value is pulled toward the
// dimension baseline once inactivity exceeds the grace period, by a
// fraction that grows with idle time but is capped below 1.0, so a rating
// approaches baseline asymptotically and never fully resets. Decay never
// raises a value: ratings already at or below baseline keep their value.
// The deviation grows with idle time regardless of the grace period
// (uncertainty accrues from the first idle month).
//
// age is the fighter's age in years at asOf (0 when unknown). Past the
// decline threshold an extra decay increment applies, faster for cardio
// and slower for striking defense.
func Decay(p Params, r models.Rating, dim models.Dimension, asOf time.Time, age float64) models.Rating {
	if r.LastActive == nil {
		return r
	}
	idleDays := asOf.Sub(*r.LastActive).Hours() / 24
	if idleDays <= 0 {
		return r
	}
	idleMonths := idleDays / daysPerMonth

	// Deviation: uncertainty grows the whole time
	r.Deviation += idleMonths * p.DeviationGrowthMonth
	if r.Deviation > models.MaxDeviation {
		r.Deviation = models.MaxDeviation
	}

	fraction := decayFraction(p, idleMonths)
	fraction += ageFraction(p, dim, age)
	if fraction > p.MaxDecayFraction {
		fraction = p.MaxDecayFraction
	}
	if fraction <= 0 {
		return r
	}

	if r.Value > models.BaselineRating {
		r.Value = models.BaselineRating + (r.Value-models.BaselineRating)*(1-fraction)
	}
	return r
}

// decayFraction returns the inactivity pull toward baseline for a given
// idle span. Monotonically non-decreasing in idleMonths.
func decayFraction(p Params, idleMonths float64) float64 {
	if idleMonths <= p.DecayGraceMonths {
		return 0
	}
	decayMonths := idleMonths - p.DecayGraceMonths
	if decayMonths > p.MaxDecayMonths {
		decayMonths = p.MaxDecayMonths
	}
	return decayMonths * p.DecayRatePerMonth
}

// ageFraction returns the extra decline for fighters past the age
// threshold. Cardio fades faster than average; striking defense (the
// chin-adjacent axis) slower, because chin damage is already permanent
// via the chin-flag path.
func ageFraction(p Params, dim models.Dimension, age float64) float64 {
	if age < p.AgeDeclineStart || age == 0 {
		return 0
	}
	f := (age - p.AgeDeclineStart) * p.AgeDecayPerYear
	if f > p.AgeMaxDecay {
		f = p.AgeMaxDecay
	}
	switch dim {
	case models.Cardio:
		f *= p.AgeCardioMult
	case models.StrikingDefense:
		f *= p.AgeChinMult
	}
	return f
}

// DecayFighter ages every dimension of a fighter's ratings to asOf,
// in place. Callers who must not mutate persisted state pass a Clone.
func DecayFighter(p Params, fr *models.FighterRatings, asOf time.Time, age float64) {
	for _, dim := range models.Dimensions() {
		fr.Set(dim, Decay(p, fr.Get(dim), dim, asOf, age))
	}
}
