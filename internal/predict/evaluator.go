package predict

import (
	"fmt"
	"strings"

	"github.com/lhgjose/ufc-prediction-fights/internal/models"
)

// Evaluator computes per-dimension differentials and contextual signals
// for a pairing. It is pure and read-only: callers hand it already-decayed
// rating clones and it never touches persisted state, so concurrent
// evaluations are safe.
type Evaluator struct {
	params Params
}

// NewEvaluator returns an evaluator with the given tuning.
func NewEvaluator(p Params) *Evaluator {
	return &Evaluator{params: p}
}

// Evaluate builds the Matchup for red vs blue. Either side being nil or
// lacking qualifying bouts produces an explicit refusal, never a guessed
// pick.
func (ev *Evaluator) Evaluate(red, blue *models.FighterRatings, ctx models.MatchupContext) *models.Matchup {
	m := &models.Matchup{Context: ctx}
	if red != nil {
		m.RedID = red.FighterID
	}
	if blue != nil {
		m.BlueID = blue.FighterID
	}

	if reason := ev.refusalReason(red, blue); reason != "" {
		m.Refused = true
		m.RefusalReason = reason
		return m
	}

	m.ShortNoticeSide = shortNoticeSide(ev.params, ctx)
	m.SizeDiff = ev.sizeDiff(ctx)

	// Home-cage advantage is directional uncertainty, not a verified
	// statistic: surfaced as a flag for the narrative, never a numeric
	// shift.
	switch ctx.HomeFighterID {
	case "":
	case m.RedID:
		m.LocationBias = "red"
	case m.BlueID:
		m.LocationBias = "blue"
	}

	m.Diffs = ev.diffs(red, blue, m.ShortNoticeSide)
	m.Composite = ev.composite(m.Diffs)
	m.Style = ev.style(red, blue)

	m.RedChinFlags = red.ChinFlags
	m.BlueChinFlags = blue.ChinFlags
	m.RedDeviation = red.AggregateDeviation()
	m.BlueDeviation = blue.AggregateDeviation()
	m.RedBouts = red.BoutCount
	m.BlueBouts = blue.BoutCount

	return m
}

func (ev *Evaluator) refusalReason(red, blue *models.FighterRatings) string {
	switch {
	case red == nil && blue == nil:
		return "neither fighter has any rated bouts"
	case red == nil:
		return "red corner has no rated bouts"
	case blue == nil:
		return "blue corner has no rated bouts"
	case red.BoutCount < ev.params.MinBouts:
		return fmt.Sprintf("red corner has insufficient history (%d bouts, need %d)", red.BoutCount, ev.params.MinBouts)
	case blue.BoutCount < ev.params.MinBouts:
		return fmt.Sprintf("blue corner has insufficient history (%d bouts, need %d)", blue.BoutCount, ev.params.MinBouts)
	}
	return ""
}

// diffs returns the signed per-dimension differential vector (red minus
// blue) with the short-notice penalty already folded into the affected
// side's offense-leaning dimensions.
func (ev *Evaluator) diffs(red, blue *models.FighterRatings, shortNotice string) []models.DimensionDiff {
	out := make([]models.DimensionDiff, 0, 10)
	for _, dim := range models.Dimensions() {
		rv := red.Get(dim).Value
		bv := blue.Get(dim).Value

		if dim.OffenseLeaning() {
			switch shortNotice {
			case "red":
				rv -= ev.params.ShortNoticePenalty
			case "blue":
				bv -= ev.params.ShortNoticePenalty
			case "both":
				rv -= ev.params.ShortNoticePenalty
				bv -= ev.params.ShortNoticePenalty
			}
		}

		diff := rv - bv
		out = append(out, models.DimensionDiff{
			Dimension:   dim,
			Red:         rv,
			Blue:        bv,
			Diff:        diff,
			Significant: diff >= ev.params.SignificantAdvantage || diff <= -ev.params.SignificantAdvantage,
		})
	}
	return out
}

// composite is the weighted mean differential, positive favoring red.
func (ev *Evaluator) composite(diffs []models.DimensionDiff) float64 {
	var sum, wsum float64
	for _, d := range diffs {
		w := compositeWeights[d.Dimension]
		sum += d.Diff * w
		wsum += w
	}
	if wsum == 0 {
		return 0
	}
	return sum / wsum
}

// shortNoticeSide flags which side took the bout with less than a full
// camp. Zero notice days means unknown and is treated as a full camp.
func shortNoticeSide(p Params, ctx models.MatchupContext) string {
	redShort := ctx.RedNoticeDays > 0 && ctx.RedNoticeDays < p.ShortNoticeDays
	blueShort := ctx.BlueNoticeDays > 0 && ctx.BlueNoticeDays < p.ShortNoticeDays
	switch {
	case redShort && blueShort:
		return "both"
	case redShort:
		return "red"
	case blueShort:
		return "blue"
	}
	return ""
}

// sizeDiff returns the rating-point signal for a cross-class pairing,
// positive when red is the bigger fighter.
func (ev *Evaluator) sizeDiff(ctx models.MatchupContext) float64 {
	if ctx.RedWeightClass == "" || ctx.BlueWeightClass == "" || ctx.RedWeightClass == ctx.BlueWeightClass {
		return 0
	}
	ri, rok := weightClassOrder[normalizeClass(ctx.RedWeightClass)]
	bi, bok := weightClassOrder[normalizeClass(ctx.BlueWeightClass)]
	if !rok || !bok {
		return 0
	}
	return float64(ri-bi) * ev.params.SizePerClass
}

// normalizeClass strips the "Women's" prefix; the step ladder is the same.
func normalizeClass(class string) string {
	return strings.TrimSpace(strings.TrimPrefix(class, "Women's"))
}

// style classifies the pairing: striker vs grappler, who pressures, who
// carries the gas tank, who has been there before.
func (ev *Evaluator) style(red, blue *models.FighterRatings) models.StyleMatchup {
	t := ev.params.StyleThreshold

	striking1 := (red.Get(models.KnockoutPower).Value + red.Get(models.StrikingVolume).Value) / 2
	grappling1 := (red.Get(models.WrestlingOffense).Value + red.Get(models.SubmissionOffense).Value) / 2
	striking2 := (blue.Get(models.KnockoutPower).Value + blue.Get(models.StrikingVolume).Value) / 2
	grappling2 := (blue.Get(models.WrestlingOffense).Value + blue.Get(models.SubmissionOffense).Value) / 2

	var svg string
	if striking1 > grappling1+t && grappling2 > striking2+t {
		svg = "red_striker"
	} else if striking2 > grappling2+t && grappling1 > striking1+t {
		svg = "blue_striker"
	}

	pressure := "neutral"
	if p1, p2 := red.Get(models.Pressure).Value, blue.Get(models.Pressure).Value; p1 > p2+t {
		pressure = "red"
	} else if p2 > p1+t {
		pressure = "blue"
	}

	cardio := "even"
	if c1, c2 := red.Get(models.Cardio).Value, blue.Get(models.Cardio).Value; c1 > c2+t {
		cardio = "red"
	} else if c2 > c1+t {
		cardio = "blue"
	}

	var experience string
	if red.BoutCount > blue.BoutCount+ev.params.ExperienceEdgeBouts {
		experience = "red"
	} else if blue.BoutCount > red.BoutCount+ev.params.ExperienceEdgeBouts {
		experience = "blue"
	}

	return models.StyleMatchup{
		StrikerVsGrappler: svg,
		PressureDynamic:   pressure,
		CardioFactor:      cardio,
		ExperienceEdge:    experience,
	}
}
