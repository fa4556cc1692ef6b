package models

import "time"

// MethodAccuracy is a correct/total pair for one predicted method.
type MethodAccuracy struct {
	Predictions int `json:"predictions"`
	Correct     int `json:"correct"`
}

// BacktestReport aggregates prediction accuracy over a historical window.
type BacktestReport struct {
	Cutoff       time.Time `json:"cutoff"`
	BoutsTested  int       `json:"bouts_tested"`
	BoutsSkipped int       `json:"bouts_skipped"` // refusals, draws, no-contests

	WinnerCorrect   int `json:"winner_correct"`
	WinnerIncorrect int `json:"winner_incorrect"`

	MethodCorrect   int `json:"method_correct"`
	MethodIncorrect int `json:"method_incorrect"`

	// Round accuracy counts a prediction correct when within one round,
	// evaluated only when the method was also correct.
	RoundCorrect   int `json:"round_correct"`
	RoundIncorrect int `json:"round_incorrect"`

	ByMethod      map[Method]*MethodAccuracy `json:"by_method"`
	ByWeightClass map[string]*MethodAccuracy `json:"by_weight_class"`

	FavoritePicks    int `json:"favorite_picks"`
	FavoriteCorrect  int `json:"favorite_correct"`
	UnderdogPicks    int `json:"underdog_picks"`
	UnderdogCorrect  int `json:"underdog_correct"`
}

// WinnerAccuracy returns the winner hit rate in percent.
func (r *BacktestReport) WinnerAccuracy() float64 {
	total := r.WinnerCorrect + r.WinnerIncorrect
	if total == 0 {
		return 0
	}
	return float64(r.WinnerCorrect) / float64(total) * 100
}

// MethodAccuracyPct returns the method hit rate in percent, counted only
// over bouts where the winner was also correct.
func (r *BacktestReport) MethodAccuracyPct() float64 {
	total := r.MethodCorrect + r.MethodIncorrect
	if total == 0 {
		return 0
	}
	return float64(r.MethodCorrect) / float64(total) * 100
}
