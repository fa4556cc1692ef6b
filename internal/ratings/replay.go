package ratings

import (
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/lhgjose/ufc-prediction-fights/internal/models"
)

// Engine replays bout history into Rating State. One Engine invocation
// owns the State it is building; full replays are re-run from empty on
// every data refresh rather than patched incrementally, which is what
// keeps the state reproducible.
type Engine struct {
	params   Params
	fighters map[string]*models.Fighter // for birth dates; may be sparse
	logger   *zap.SugaredLogger
}

// NewEngine returns a replay engine. fighters supplies birth dates for
// age-based decay and may omit fighters (age handling then degrades to
// no age adjustment for them). logger may be nil.
func NewEngine(p Params, fighters map[string]*models.Fighter, logger *zap.Logger) *Engine {
	e := &Engine{params: p, fighters: fighters}
	if logger != nil {
		e.logger = logger.Sugar()
	} else {
		e.logger = zap.NewNop().Sugar()
	}
	return e
}

// Replay folds the full bout history, oldest first, into a fresh State.
// Input order is irrelevant: bouts are always re-sorted by (date, ID)
// before processing, so ratings depend only on chronology, never on
// insertion order. Malformed bouts are skipped with a recorded warning.
func (e *Engine) Replay(bouts []models.Bout) (*State, *models.ReplayReport) {
	report := &models.ReplayReport{StartedAt: time.Now()}
	state := NewState()

	ordered := make([]models.Bout, len(bouts))
	copy(ordered, bouts)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].Date.Equal(ordered[j].Date) {
			return ordered[i].Date.Before(ordered[j].Date)
		}
		return ordered[i].ID < ordered[j].ID
	})

	// Career lengths within this history, for the recent-form window
	careerTotal := make(map[string]int, len(ordered)*2)
	for i := range ordered {
		if reason := validateBout(&ordered[i]); reason == "" {
			careerTotal[ordered[i].RedID]++
			careerTotal[ordered[i].BlueID]++
		}
	}

	for i := range ordered {
		bout := &ordered[i]
		if reason := validateBout(bout); reason != "" {
			e.logger.Warnw("Skipping malformed bout", "boutID", bout.ID, "reason", reason)
			report.BoutsSkipped++
			report.Warnings = append(report.Warnings, models.ReplayWarning{BoutID: bout.ID, Reason: reason})
			continue
		}

		e.ProcessBout(state, bout, careerTotal, report)
		report.BoutsProcessed++
	}

	report.FightersRated = state.Len()
	report.FinishedAt = time.Now()

	e.logger.Infow("Replay complete",
		"bouts", report.BoutsProcessed,
		"skipped", report.BoutsSkipped,
		"fighters", report.FightersRated,
	)
	return state, report
}

// validateBout returns a non-empty reason when a bout cannot be rated.
// No-contests are not malformed, but carry no ratable result.
func validateBout(b *models.Bout) string {
	switch {
	case b.ID == "":
		return "missing bout id"
	case b.RedID == "" || b.BlueID == "":
		return "unknown competitor"
	case b.RedID == b.BlueID:
		return "competitor listed on both sides"
	case b.Date.IsZero():
		return "missing date"
	case b.NoContest:
		return "no contest"
	case !b.Draw && b.WinnerID == "":
		return "missing outcome"
	case b.WinnerID != "" && b.WinnerID != b.RedID && b.WinnerID != b.BlueID:
		return "winner not a participant"
	case b.WinnerID != "" && b.NormalizedMethod() == models.MethodOther && b.Method == "":
		return "missing method"
	}
	return ""
}

// ProcessBout applies one bout to the state: decay both participants to
// the bout date, compute the per-dimension Elo updates, then the chin
// degradation path. Exposed as the fold step so the backtester can
// interleave predictions with updates.
func (e *Engine) ProcessBout(state *State, bout *models.Bout, careerTotal map[string]int, report *models.ReplayReport) {
	red := state.GetOrCreate(bout.RedID)
	blue := state.GetOrCreate(bout.BlueID)

	DecayFighter(e.params, red, bout.Date, e.ageAt(bout.RedID, bout.Date))
	DecayFighter(e.params, blue, bout.Date, e.ageAt(bout.BlueID, bout.Date))

	redScores := ExtractDimensionScores(bout, bout.RedID)
	blueScores := ExtractDimensionScores(bout, bout.BlueID)

	method := bout.NormalizedMethod()
	finishMult := FinishMultiplier(e.params, method, bout.RoundFinished, bout.ScheduledRounds)

	for i := range redScores {
		dim := redScores[i].Dimension

		r1 := red.Get(dim)
		r2 := blue.Get(dim)

		exp1 := ExpectedScore(r1.Value, r2.Value)
		exp2 := 1.0 - exp1

		k1 := DynamicK(e.params, r1.Bouts, r1.Value) * finishMult * redScores[i].Weight * e.formMultiplier(bout.RedID, red.BoutCount, careerTotal)
		k2 := DynamicK(e.params, r2.Bouts, r2.Value) * finishMult * blueScores[i].Weight * e.formMultiplier(bout.BlueID, blue.BoutCount, careerTotal)

		new1 := NewValue(r1.Value, exp1, redScores[i].Score, k1)
		new2 := NewValue(r2.Value, exp2, blueScores[i].Score, k2)

		if report != nil {
			report.Updates = append(report.Updates,
				models.RatingUpdate{
					BoutID: bout.ID, BoutDate: bout.Date,
					FighterID: bout.RedID, OpponentID: bout.BlueID,
					Dimension: dim, OldValue: r1.Value, NewValue: new1,
					Expected: exp1, Actual: redScores[i].Score, KFactor: k1,
				},
				models.RatingUpdate{
					BoutID: bout.ID, BoutDate: bout.Date,
					FighterID: bout.BlueID, OpponentID: bout.RedID,
					Dimension: dim, OldValue: r2.Value, NewValue: new2,
					Expected: exp2, Actual: blueScores[i].Score, KFactor: k2,
				},
			)
		}

		boutDate := bout.Date
		red.Set(dim, models.Rating{
			Value:      new1,
			Deviation:  shrinkDeviation(e.params, r1.Deviation),
			Bouts:      r1.Bouts + 1,
			LastActive: &boutDate,
		})
		blue.Set(dim, models.Rating{
			Value:      new2,
			Deviation:  shrinkDeviation(e.params, r2.Deviation),
			Bouts:      r2.Bouts + 1,
			LastActive: &boutDate,
		})
	}

	boutDate := bout.Date
	red.BoutCount++
	blue.BoutCount++
	red.LastBout = &boutDate
	blue.LastBout = &boutDate

	if method == models.MethodKOTKO && bout.WinnerID != "" {
		loser := blue
		if bout.WinnerID == bout.BlueID {
			loser = red
		}
		e.degradeChin(loser)
	}
}

// formMultiplier boosts updates for a fighter's most recent bouts within
// the supplied history. boutCount is how many of the fighter's bouts were
// already processed; the bout being processed is boutCount+1 of
// careerTotal. The boost's influence fades naturally as later history
// pushes the bout out of the window on the next full replay.
func (e *Engine) formMultiplier(fighterID string, boutCount int, careerTotal map[string]int) float64 {
	total := careerTotal[fighterID]
	if total == 0 {
		return 1.0
	}
	if total-(boutCount+1) < e.params.FormWindow {
		return e.params.FormMult
	}
	return 1.0
}

// degradeChin increments the loser's chin-flag counter and applies the
// permanent striking-defense penalty, on top of the ordinary Elo update
// the bout already produced. The penalty is never given back: future wins
// move the rating through normal mobility only. Total penalty is capped.
func (e *Engine) degradeChin(fr *models.FighterRatings) {
	applied := float64(fr.ChinFlags) * e.params.ChinPenaltyPerKO
	fr.ChinFlags++

	remaining := e.params.ChinMaxPenalty - applied
	if remaining <= 0 {
		return
	}
	penalty := e.params.ChinPenaltyPerKO
	if penalty > remaining {
		penalty = remaining
	}

	r := fr.Get(models.StrikingDefense)
	r.Value -= penalty
	fr.Set(models.StrikingDefense, r)
}

func (e *Engine) ageAt(fighterID string, at time.Time) float64 {
	f, ok := e.fighters[fighterID]
	if !ok || f == nil {
		return 0
	}
	return f.Age(at)
}
