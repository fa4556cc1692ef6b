package ratings

// Params holds every tuning constant of the rating engine. These are
// product-tuning knobs, not structure: the config package overrides them
// from the environment and the backtester is the tool for validating
// changes empirically.
type Params struct {
	// Elo update
	KBase               float64 // base K-factor
	ProvisionalBouts    int     // bouts before a fighter is established
	ProvisionalMult     float64 // K multiplier while provisional
	HighRatingThreshold float64 // rating above which K is damped
	HighRatingMult      float64 // K multiplier above the threshold

	// Recent-form weighting: a fighter's most recent FormWindow bouts
	// move ratings faster.
	FormWindow int
	FormMult   float64

	// Finish multiplier: stoppages transfer more rating than decisions,
	// early stoppages more than late ones.
	FinishMult      float64
	EarlyFinishMult float64

	// Inactivity decay
	DecayGraceMonths  float64
	DecayRatePerMonth float64 // fraction pulled toward baseline per idle month
	MaxDecayMonths    float64
	MaxDecayFraction  float64 // always below 1.0: never a full reset

	// Glicko-style deviation dynamics
	DeviationShrink      float64 // multiplicative shrink per bout
	DeviationGrowthMonth float64 // additive growth per idle month

	// Chin degradation
	ChinPenaltyPerKO float64
	ChinMaxPenalty   float64

	// Age decline
	AgeDeclineStart  float64
	AgeDecayPerYear  float64 // extra decay fraction per year past the threshold
	AgeMaxDecay      float64
	AgeCardioMult    float64 // cardio fades faster
	AgeChinMult      float64 // chin vulnerability is sticky: decays slower
}

// DefaultParams returns the tuning validated against the 2015-onward
// historical corpus.
func DefaultParams() Params {
	return Params{
		KBase:               32,
		ProvisionalBouts:    10,
		ProvisionalMult:     1.5,
		HighRatingThreshold: 1800,
		HighRatingMult:      0.75,

		FormWindow: 3,
		FormMult:   1.25,

		FinishMult:      1.2,
		EarlyFinishMult: 1.35,

		DecayGraceMonths:  12,
		DecayRatePerMonth: 0.005,
		MaxDecayMonths:    36,
		MaxDecayFraction:  0.5,

		DeviationShrink:      0.9,
		DeviationGrowthMonth: 6,

		ChinPenaltyPerKO: 25,
		ChinMaxPenalty:   100,

		AgeDeclineStart: 35,
		AgeDecayPerYear: 0.01,
		AgeMaxDecay:     0.10,
		AgeCardioMult:   1.5,
		AgeChinMult:     0.5,
	}
}
