package backtest

import (
	"errors"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/lhgjose/ufc-prediction-fights/internal/models"
	"github.com/lhgjose/ufc-prediction-fights/internal/predict"
	"github.com/lhgjose/ufc-prediction-fights/internal/ratings"
)

// ErrNoTestableBouts is returned when the cutoff leaves nothing to test.
var ErrNoTestableBouts = errors.New("no testable bouts after cutoff")

// Runner replays history up to a cutoff, then walks the remaining bouts
// chronologically: predict with the state as of that date, score against
// the recorded result, and only then fold the bout in. Ratings therefore
// never see the future of the bout being predicted.
type Runner struct {
	ratingParams  ratings.Params
	predictParams predict.Params
	fighters      map[string]*models.Fighter
	logger        *zap.SugaredLogger
}

// NewRunner returns a backtest runner. fighters supplies birth dates for
// decay, same as live replay. logger may be nil.
func NewRunner(rp ratings.Params, pp predict.Params, fighters map[string]*models.Fighter, logger *zap.Logger) *Runner {
	r := &Runner{ratingParams: rp, predictParams: pp, fighters: fighters}
	if logger != nil {
		r.logger = logger.Sugar()
	} else {
		r.logger = zap.NewNop().Sugar()
	}
	return r
}

// Run backtests against the supplied history. Bouts dated before cutoff
// build the rating state; up to limit bouts on or after cutoff are
// predicted and scored (limit <= 0 means all). Draws and no-contests in
// the test window are skipped, as are refused predictions, and neither
// counts against accuracy.
func (r *Runner) Run(bouts []models.Bout, cutoff time.Time, limit int) (*models.BacktestReport, error) {
	ordered := make([]models.Bout, len(bouts))
	copy(ordered, bouts)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].Date.Equal(ordered[j].Date) {
			return ordered[i].Date.Before(ordered[j].Date)
		}
		return ordered[i].ID < ordered[j].ID
	})

	var training, testing []models.Bout
	for _, b := range ordered {
		if b.Date.Before(cutoff) {
			training = append(training, b)
		} else {
			testing = append(testing, b)
		}
	}
	if len(testing) == 0 {
		return nil, ErrNoTestableBouts
	}
	if limit > 0 && len(testing) > limit {
		testing = testing[:limit]
	}

	// Form window positions must cover the whole history, not just the
	// training slice, or the final training bouts would all look "recent".
	careerTotal := careerTotals(ordered)

	engine := ratings.NewEngine(r.ratingParams, r.fighters, r.logger.Desugar())
	state := ratings.NewState()
	var trained int
	for i := range training {
		if !valid(&training[i]) {
			continue
		}
		engine.ProcessBout(state, &training[i], careerTotal, nil)
		trained++
	}

	// Finish profiles as of the cutoff, from the training window only
	profiles := buildProfiles(training)

	evaluator := predict.NewEvaluator(r.predictParams)
	predictor := predict.NewEngine(r.predictParams)

	report := &models.BacktestReport{
		Cutoff:        cutoff,
		ByMethod:      make(map[models.Method]*models.MethodAccuracy),
		ByWeightClass: make(map[string]*models.MethodAccuracy),
	}

	for i := range testing {
		bout := &testing[i]

		if r.scoreBout(state, bout, profiles, evaluator, predictor, report) {
			report.BoutsTested++
		} else {
			report.BoutsSkipped++
		}

		// Fold the bout in regardless: a bout we could not score still
		// happened, and later test bouts must see its effect.
		if valid(bout) {
			engine.ProcessBout(state, bout, careerTotal, nil)
			addToProfiles(profiles, bout)
		}
	}

	r.logger.Infow("Backtest complete",
		"trainingBouts", trained,
		"tested", report.BoutsTested,
		"skipped", report.BoutsSkipped,
		"winnerAccuracy", report.WinnerAccuracy(),
	)
	return report, nil
}

// scoreBout predicts one test bout and books the result. Returns false
// when the bout could not be scored.
func (r *Runner) scoreBout(state *ratings.State, bout *models.Bout, profiles map[string]*models.FinishProfile, evaluator *predict.Evaluator, predictor *predict.Engine, report *models.BacktestReport) bool {
	if !valid(bout) || bout.Draw || bout.WinnerID == "" {
		return false
	}

	red, okRed := state.Lookup(bout.RedID)
	blue, okBlue := state.Lookup(bout.BlueID)
	if !okRed || !okBlue {
		return false
	}

	// Settle both sides to the bout date on clones; the persistent state
	// only moves through ProcessBout.
	red = red.Clone()
	blue = blue.Clone()
	ratings.DecayFighter(r.ratingParams, red, bout.Date, r.ageAt(bout.RedID, bout.Date))
	ratings.DecayFighter(r.ratingParams, blue, bout.Date, r.ageAt(bout.BlueID, bout.Date))

	ctx := models.MatchupContext{
		ScheduledRounds: bout.ScheduledRounds,
		TitleFight:      bout.TitleFight,
		RedWeightClass:  bout.WeightClass,
		BlueWeightClass: bout.WeightClass,
		RedNoticeDays:   bout.RedNoticeDays,
		BlueNoticeDays:  bout.BlueNoticeDays,
	}

	m := evaluator.Evaluate(red, blue, ctx)
	pred := predictor.Predict(m, red, blue, profiles[bout.RedID], profiles[bout.BlueID])
	if pred.Refused {
		return false
	}

	winnerHit := pred.WinnerID == bout.WinnerID
	if winnerHit {
		report.WinnerCorrect++
	} else {
		report.WinnerIncorrect++
	}

	bookAccuracy(report.ByMethod, pred.Method, winnerHit)
	if bout.WeightClass != "" {
		bookAccuracy(report.ByWeightClass, bout.WeightClass, winnerHit)
	}

	// Favorite vs underdog: did the pick side hold the higher composite
	favoredRed := m.Composite+m.SizeDiff >= 0
	pickedRed := pred.WinnerID == bout.RedID
	if favoredRed == pickedRed {
		report.FavoritePicks++
		if winnerHit {
			report.FavoriteCorrect++
		}
	} else {
		report.UnderdogPicks++
		if winnerHit {
			report.UnderdogCorrect++
		}
	}

	// Method and round are scored only inside a correct winner pick
	if winnerHit {
		if pred.Method == bout.NormalizedMethod() {
			report.MethodCorrect++
			if pred.Round != nil && bout.RoundFinished > 0 {
				diff := *pred.Round - bout.RoundFinished
				if diff >= -1 && diff <= 1 {
					report.RoundCorrect++
				} else {
					report.RoundIncorrect++
				}
			}
		} else {
			report.MethodIncorrect++
		}
	}
	return true
}

func bookAccuracy[K comparable](m map[K]*models.MethodAccuracy, key K, correct bool) {
	acc, ok := m[key]
	if !ok {
		acc = &models.MethodAccuracy{}
		m[key] = acc
	}
	acc.Predictions++
	if correct {
		acc.Correct++
	}
}

// valid mirrors the replay engine's bout acceptance.
func valid(b *models.Bout) bool {
	switch {
	case b.ID == "", b.RedID == "", b.BlueID == "", b.RedID == b.BlueID:
		return false
	case b.Date.IsZero(), b.NoContest:
		return false
	case !b.Draw && b.WinnerID == "":
		return false
	case b.WinnerID != "" && b.WinnerID != b.RedID && b.WinnerID != b.BlueID:
		return false
	case b.WinnerID != "" && b.NormalizedMethod() == models.MethodOther && b.Method == "":
		return false
	}
	return true
}

// buildProfiles derives finish profiles from decided bouts.
func buildProfiles(bouts []models.Bout) map[string]*models.FinishProfile {
	profiles := make(map[string]*models.FinishProfile)
	for i := range bouts {
		addToProfiles(profiles, &bouts[i])
	}
	return profiles
}

func addToProfiles(profiles map[string]*models.FinishProfile, b *models.Bout) {
	if b.WinnerID == "" || b.NoContest || b.Draw {
		return
	}
	p, ok := profiles[b.WinnerID]
	if !ok {
		p = &models.FinishProfile{FighterID: b.WinnerID}
		profiles[b.WinnerID] = p
	}
	p.AddWin(b.NormalizedMethod(), b.RoundFinished)
}

func careerTotals(bouts []models.Bout) map[string]int {
	totals := make(map[string]int, len(bouts)*2)
	for i := range bouts {
		if valid(&bouts[i]) {
			totals[bouts[i].RedID]++
			totals[bouts[i].BlueID]++
		}
	}
	return totals
}

func (r *Runner) ageAt(fighterID string, at time.Time) float64 {
	f, ok := r.fighters[fighterID]
	if !ok || f == nil {
		return 0
	}
	return f.Age(at)
}
