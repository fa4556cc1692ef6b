package predict

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lhgjose/ufc-prediction-fights/internal/models"
)

// Engine turns a Matchup into a pick. Three decisions are made in
// sequence (winner, then method, then round) and each is final once made. The
// engine is pure: identical inputs always produce identical output, and
// every decision records its dominant contributing factors in the result.
type Engine struct {
	params Params
}

// NewEngine returns a prediction engine with the given tuning.
func NewEngine(p Params) *Engine {
	return &Engine{params: p}
}

// Predict decides winner, method and round for an evaluated matchup.
// red/blue are the same (decayed) rating profiles the evaluator saw;
// redProf/blueProf are the fighters' historical finish profiles. A
// refused matchup passes through as a refused prediction.
func (e *Engine) Predict(m *models.Matchup, red, blue *models.FighterRatings, redProf, blueProf *models.FinishProfile) *models.Prediction {
	pred := &models.Prediction{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		RedID:     m.RedID,
		BlueID:    m.BlueID,
	}

	if m.Refused {
		pred.Refused = true
		pred.RefusalReason = m.RefusalReason
		return pred
	}

	pred.Diffs = m.Diffs
	pred.Style = m.Style

	// Decision 1: winner
	winnerRed := e.decideWinner(m, pred)
	winner, loser := red, blue
	winnerProf := redProf
	if !winnerRed {
		winner, loser = blue, red
		winnerProf = blueProf
	}
	pred.WinnerID = winner.FighterID

	// Decision 2: method
	pred.Method = e.decideMethod(m, pred, winner, loser, winnerProf)

	// Decision 3: round, only for stoppages
	if pred.Method != models.MethodDecision {
		round := e.decideRound(pred, winner, winnerProf, m.Context.ScheduledRounds)
		pred.Round = &round
	}

	pred.XFactors = e.xFactors(m)
	return pred
}

// decideWinner returns true when red is the pick. The composite score
// decides outright unless the fight is close, in which case the stylistic
// tiebreaker counts dominated dimension pairings, and aggregate
// confidence settles anything still even. The decision is never left
// unresolved.
func (e *Engine) decideWinner(m *models.Matchup, pred *models.Prediction) bool {
	score := m.Composite + m.SizeDiff

	pred.Factors = append(pred.Factors, models.Factor{
		Name: "composite differential", Magnitude: m.Composite,
	})
	if m.SizeDiff != 0 {
		pred.Factors = append(pred.Factors, models.Factor{
			Name: "size differential", Magnitude: m.SizeDiff,
		})
	}
	if m.ShortNoticeSide != "" {
		pred.Factors = append(pred.Factors, models.Factor{
			Name: fmt.Sprintf("short notice (%s)", m.ShortNoticeSide), Magnitude: -e.params.ShortNoticePenalty,
		})
	}

	if score >= e.params.CloseFightThreshold {
		return true
	}
	if score <= -e.params.CloseFightThreshold {
		return false
	}

	pred.CloseFight = true

	redPairs, bluePairs := stylePairings(m)
	pred.Factors = append(pred.Factors, models.Factor{
		Name: "stylistic pairings", Magnitude: float64(redPairs - bluePairs),
	})
	if redPairs != bluePairs {
		return redPairs > bluePairs
	}

	// Confidence tiebreaker: lower aggregate deviation wins
	pred.Factors = append(pred.Factors, models.Factor{
		Name: "aggregate confidence", Magnitude: m.BlueDeviation - m.RedDeviation,
	})
	if m.RedDeviation != m.BlueDeviation {
		return m.RedDeviation < m.BlueDeviation
	}

	// Dead even on every rule: the composite sign decides, red on zero.
	return score >= 0
}

// stylePairings counts the fixed offense-vs-defense interactions each
// side dominates.
func stylePairings(m *models.Matchup) (redPairs, bluePairs int) {
	vals := make(map[models.Dimension]models.DimensionDiff, len(m.Diffs))
	for _, d := range m.Diffs {
		vals[d.Dimension] = d
	}

	pairs := [][2]models.Dimension{
		{models.WrestlingOffense, models.WrestlingDefense},
		{models.KnockoutPower, models.StrikingDefense},
		{models.StrikingVolume, models.StrikingDefense},
		{models.SubmissionOffense, models.SubmissionDefense},
		{models.Pressure, models.Cardio},
	}

	for _, p := range pairs {
		if vals[p[0]].Red > vals[p[1]].Blue {
			redPairs++
		}
		if vals[p[0]].Blue > vals[p[1]].Red {
			bluePairs++
		}
	}
	return redPairs, bluePairs
}

// decideMethod scores KO/TKO, Submission and Decision for the chosen
// winner and picks the highest. Decision is the starting best, so any tie
// resolves to the most conservative call.
func (e *Engine) decideMethod(m *models.Matchup, pred *models.Prediction, winner, loser *models.FighterRatings, winnerProf *models.FinishProfile) models.Method {
	koScore := e.koPotential(winner, loser, winnerProf)
	subScore := e.subPotential(winner, loser, winnerProf)
	decScore := e.decisionPotential(m, pred, winner, loser, winnerProf)

	best, bestScore := models.MethodDecision, decScore
	if koScore > bestScore {
		best, bestScore = models.MethodKOTKO, koScore
	}
	if subScore > bestScore {
		best, bestScore = models.MethodSubmission, subScore
	}

	switch best {
	case models.MethodKOTKO:
		pred.Factors = append(pred.Factors,
			models.Factor{Name: "knockout power vs striking defense", Dimension: string(models.KnockoutPower),
				Magnitude: winner.Get(models.KnockoutPower).Value - loser.Get(models.StrikingDefense).Value},
			models.Factor{Name: "opponent chin flags", Magnitude: float64(loser.ChinFlags)},
		)
	case models.MethodSubmission:
		pred.Factors = append(pred.Factors,
			models.Factor{Name: "submission offense vs submission defense", Dimension: string(models.SubmissionOffense),
				Magnitude: winner.Get(models.SubmissionOffense).Value - loser.Get(models.SubmissionDefense).Value},
		)
	default:
		pred.Factors = append(pred.Factors,
			models.Factor{Name: "decision likelihood", Magnitude: decScore},
		)
	}
	return best
}

func (e *Engine) koPotential(winner, loser *models.FighterRatings, prof *models.FinishProfile) float64 {
	score := (winner.Get(models.KnockoutPower).Value - models.BaselineRating) * 0.7
	score += (models.BaselineRating - loser.Get(models.StrikingDefense).Value) * 0.4
	score += float64(loser.ChinFlags) * 20
	score += (winner.Get(models.StrikingVolume).Value - models.BaselineRating) * 0.25
	score += (winner.Get(models.Pressure).Value - models.BaselineRating) * 0.15
	if prof != nil {
		score += prof.FinishRate(models.MethodKOTKO) * e.params.FinishRateWeight
	}
	return score
}

func (e *Engine) subPotential(winner, loser *models.FighterRatings, prof *models.FinishProfile) float64 {
	score := (winner.Get(models.SubmissionOffense).Value - models.BaselineRating) * 0.8
	score += (models.BaselineRating - loser.Get(models.SubmissionDefense).Value) * 0.5
	score += (winner.Get(models.WrestlingOffense).Value - models.BaselineRating) * 0.3
	score += (models.BaselineRating - loser.Get(models.WrestlingDefense).Value) * 0.2
	if prof != nil {
		score += prof.FinishRate(models.MethodSubmission) * e.params.FinishRateWeight
	}
	return score
}

func (e *Engine) decisionPotential(m *models.Matchup, pred *models.Prediction, winner, loser *models.FighterRatings, prof *models.FinishProfile) float64 {
	score := 20.0
	if pred.CloseFight {
		score += 30
	}

	avgCardio := (winner.Get(models.Cardio).Value + loser.Get(models.Cardio).Value) / 2
	score += (avgCardio - models.BaselineRating) * 0.25

	avgStrikeDef := (winner.Get(models.StrikingDefense).Value + loser.Get(models.StrikingDefense).Value) / 2
	score += (avgStrikeDef - models.BaselineRating) * 0.35

	score += (loser.Get(models.SubmissionDefense).Value - models.BaselineRating) * 0.2
	score += (models.BaselineRating - winner.Get(models.KnockoutPower).Value) * 0.2

	// A durable opponent drags fights to the cards
	switch loser.ChinFlags {
	case 0:
		score += 15
	case 1:
		score += 5
	}

	// Longer scheduled distance leans toward the cards and late finishes
	if m.Context.ScheduledRounds > 3 {
		score += float64(m.Context.ScheduledRounds-3) * e.params.MethodRoundsBias
	}

	if prof != nil {
		score += prof.FinishRate(models.MethodDecision) * e.params.FinishRateWeight
	}
	return score
}

// decideRound builds the winner's per-round finish-likelihood curve for
// the chosen method, applies the championship factor for 5-round bouts,
// caps candidates at the scheduled distance and picks the modal round.
// Ties resolve to the earliest round.
func (e *Engine) decideRound(pred *models.Prediction, winner *models.FighterRatings, winnerProf *models.FinishProfile, scheduledRounds int) int {
	if scheduledRounds <= 0 {
		scheduledRounds = 3
	}
	if scheduledRounds > 5 {
		scheduledRounds = 5
	}

	curve := finishCurve(winnerProf, pred.Method)

	// Championship factor: 5-round bouts redistribute mass toward the
	// late rounds, the more so the better the winner's cardio.
	if scheduledRounds == 5 {
		cardioAdj := winner.Get(models.Cardio).Value / models.BaselineRating
		boost := 1 + e.params.ChampionshipShift*cardioAdj
		curve[3] *= boost
		curve[4] *= boost
	}

	bestRound, bestMass := 1, curve[0]
	for r := 2; r <= scheduledRounds; r++ {
		if curve[r-1] > bestMass {
			bestRound, bestMass = r, curve[r-1]
		}
	}

	pred.Factors = append(pred.Factors, models.Factor{
		Name: fmt.Sprintf("round %d finish likelihood", bestRound), Magnitude: bestMass,
	})
	return bestRound
}

// finishCurve converts the winner's historical round-of-finish counts
// into a normalized curve. With no history for the method, stoppages are
// assumed to skew early.
func finishCurve(prof *models.FinishProfile, method models.Method) [5]float64 {
	fallback := [5]float64{0.35, 0.3, 0.2, 0.1, 0.05}

	if prof == nil {
		return fallback
	}
	hist := prof.RoundHistogram(method)

	var total int
	for _, n := range hist {
		total += n
	}
	if total == 0 {
		return fallback
	}

	var curve [5]float64
	for i, n := range hist {
		curve[i] = float64(n) / float64(total)
	}
	return curve
}

// xFactors surfaces the special considerations worth calling out.
func (e *Engine) xFactors(m *models.Matchup) []string {
	var out []string

	if m.RedChinFlags >= 3 {
		out = append(out, fmt.Sprintf("red corner has shown chin vulnerability (%d KO losses)", m.RedChinFlags))
	}
	if m.BlueChinFlags >= 3 {
		out = append(out, fmt.Sprintf("blue corner has shown chin vulnerability (%d KO losses)", m.BlueChinFlags))
	}
	if m.Style.ExperienceEdge != "" {
		out = append(out, fmt.Sprintf("%s corner holds a significant experience advantage", m.Style.ExperienceEdge))
	}
	if m.Context.ScheduledRounds == 5 && m.Style.CardioFactor != "even" {
		out = append(out, fmt.Sprintf("%s corner has the cardio edge in championship rounds", m.Style.CardioFactor))
	}
	if m.Style.StrikerVsGrappler != "" {
		out = append(out, "striker vs grappler matchup: where the fight takes place will be decisive")
	}
	if m.LocationBias != "" {
		out = append(out, fmt.Sprintf("%s corner fights close to home", m.LocationBias))
	}
	return out
}
