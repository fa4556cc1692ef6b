package predict

import "github.com/lhgjose/ufc-prediction-fights/internal/models"

// Params holds the prediction-side tuning knobs, configurable from the
// environment and validated through the backtester.
type Params struct {
	CloseFightThreshold  float64 // composite below this triggers the stylistic tiebreaker
	SignificantAdvantage float64 // per-dimension diff flagged as significant
	MinBouts             int     // qualifying bouts required per side

	ShortNoticeDays    int     // prep days under this count as short notice
	ShortNoticePenalty float64 // flat subtraction from offense-leaning dims

	SizePerClass float64 // rating-point signal per weight-class step

	StyleThreshold      float64 // rating gap that defines a stylistic identity
	ExperienceEdgeBouts int

	// Championship factor: probability mass shifted toward rounds 4-5
	// in 5-round bouts, scaled by the winner's cardio.
	ChampionshipShift float64

	// Method scoring
	MethodRoundsBias float64 // per extra scheduled round, toward Decision
	FinishRateWeight float64 // weight of historical finish rates
}

// DefaultParams mirrors the tuning the backtest runs settled on.
func DefaultParams() Params {
	return Params{
		CloseFightThreshold:  50,
		SignificantAdvantage: 75,
		MinBouts:             1,

		ShortNoticeDays:    21,
		ShortNoticePenalty: 40,

		SizePerClass: 30,

		StyleThreshold:      50,
		ExperienceEdgeBouts: 5,

		ChampionshipShift: 0.35,

		MethodRoundsBias: 10,
		FinishRateWeight: 80,
	}
}

// compositeWeights determines how much each dimension contributes to the
// winner composite. Power and defense decide fights more often than
// pressure or fight IQ.
var compositeWeights = map[models.Dimension]float64{
	models.KnockoutPower:     1.2,
	models.StrikingVolume:    1.0,
	models.StrikingDefense:   1.1,
	models.WrestlingOffense:  1.0,
	models.WrestlingDefense:  1.0,
	models.SubmissionOffense: 0.9,
	models.SubmissionDefense: 0.9,
	models.Cardio:            1.0,
	models.Pressure:          0.8,
	models.Adaptability:      0.7,
}

// weightClassOrder maps recognized weight classes to their step index,
// lightest first. The size differential signal is proportional to the
// step gap when a bout crosses classes (catchweights, short-notice
// replacements moving up).
var weightClassOrder = map[string]int{
	"Strawweight":       0,
	"Flyweight":         1,
	"Bantamweight":      2,
	"Featherweight":     3,
	"Lightweight":       4,
	"Welterweight":      5,
	"Middleweight":      6,
	"Light Heavyweight": 7,
	"Heavyweight":       8,
}
