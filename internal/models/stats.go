package models

// FinishProfile summarizes how a fighter historically wins: finish rates
// by method and the round distribution of those finishes. The prediction
// engine's method and round steps consume it.
type FinishProfile struct {
	FighterID string `json:"fighter_id"`

	Wins    int `json:"wins"`
	KOWins  int `json:"ko_wins"`
	SubWins int `json:"sub_wins"`
	DecWins int `json:"dec_wins"`

	// Round index 0 = round 1. Finishes past round 5 are folded into
	// the last bucket.
	KORounds  [5]int `json:"ko_rounds"`
	SubRounds [5]int `json:"sub_rounds"`
}

// FinishRate returns the fraction of wins by the given method, or 0 when
// the fighter has no wins on record.
func (p *FinishProfile) FinishRate(m Method) float64 {
	if p.Wins == 0 {
		return 0
	}
	switch m {
	case MethodKOTKO:
		return float64(p.KOWins) / float64(p.Wins)
	case MethodSubmission:
		return float64(p.SubWins) / float64(p.Wins)
	case MethodDecision:
		return float64(p.DecWins) / float64(p.Wins)
	}
	return 0
}

// RoundHistogram returns the per-round finish counts for a stoppage method.
func (p *FinishProfile) RoundHistogram(m Method) [5]int {
	switch m {
	case MethodKOTKO:
		return p.KORounds
	case MethodSubmission:
		return p.SubRounds
	}
	return [5]int{}
}

// AddWin records a win into the profile.
func (p *FinishProfile) AddWin(m Method, round int) {
	p.Wins++
	bucket := round - 1
	if bucket < 0 {
		bucket = 0
	}
	if bucket > 4 {
		bucket = 4
	}
	switch m {
	case MethodKOTKO:
		p.KOWins++
		p.KORounds[bucket]++
	case MethodSubmission:
		p.SubWins++
		p.SubRounds[bucket]++
	default:
		p.DecWins++
	}
}

// CareerStats is the aggregate statistical summary served by the fighter
// stats endpoint, computed from the raw bout-stat rows.
type CareerStats struct {
	FighterID          string  `json:"fighter_id"`
	Bouts              int     `json:"bouts"`
	SigStrikesLanded   int     `json:"sig_strikes_landed"`
	SigStrikesAbsorbed int     `json:"sig_strikes_absorbed"`
	StrikeAccuracy     float64 `json:"strike_accuracy"`
	TakedownsLanded    int     `json:"takedowns_landed"`
	TakedownAccuracy   float64 `json:"takedown_accuracy"`
	SubAttempts        int     `json:"sub_attempts"`
	ControlSeconds     int     `json:"control_seconds"`
	Knockdowns         int     `json:"knockdowns"`
}
