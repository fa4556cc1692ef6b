package models

import "time"

// Dimension is one of the ten fixed skill axes a fighter is rated on.
type Dimension string

const (
	KnockoutPower     Dimension = "knockout_power"
	StrikingVolume    Dimension = "striking_volume"
	StrikingDefense   Dimension = "striking_defense"
	WrestlingOffense  Dimension = "wrestling_offense"
	WrestlingDefense  Dimension = "wrestling_defense"
	SubmissionOffense Dimension = "submission_offense"
	SubmissionDefense Dimension = "submission_defense"
	Cardio            Dimension = "cardio"
	Pressure          Dimension = "pressure"
	Adaptability      Dimension = "adaptability"
)

// Dimensions returns all skill dimensions in their canonical order.
// The order is fixed: rating vectors, replay updates and serialized
// snapshots all rely on it.
func Dimensions() []Dimension {
	return []Dimension{
		KnockoutPower,
		StrikingVolume,
		StrikingDefense,
		WrestlingOffense,
		WrestlingDefense,
		SubmissionOffense,
		SubmissionDefense,
		Cardio,
		Pressure,
		Adaptability,
	}
}

// OffenseLeaning reports whether a dimension degrades on short notice
// (offense needs a full camp; defense and durability travel better).
func (d Dimension) OffenseLeaning() bool {
	switch d {
	case KnockoutPower, StrikingVolume, WrestlingOffense, SubmissionOffense, Pressure:
		return true
	}
	return false
}

// Rating defaults. Values are practically clamped to [MinRating, MaxRating];
// deviation follows the Glicko convention (high at debut, shrinking with
// bouts, growing again with inactivity).
const (
	BaselineRating = 1500.0
	MinRating      = 800.0
	MaxRating      = 2400.0

	InitialDeviation = 350.0
	MinDeviation     = 50.0
	MaxDeviation     = 350.0
)

// Rating is one fighter's estimate for a single dimension.
type Rating struct {
	Value      float64    `json:"value"`
	Deviation  float64    `json:"deviation"`
	Bouts      int        `json:"bouts"` // times this dimension was updated
	LastActive *time.Time `json:"last_active,omitempty"`
}

// NewRating returns a baseline rating for a dimension that has never
// been updated.
func NewRating() Rating {
	return Rating{Value: BaselineRating, Deviation: InitialDeviation}
}

// FighterRatings is the full ten-dimension profile for one fighter plus
// the metadata the decay and prediction paths need.
type FighterRatings struct {
	FighterID string               `json:"fighter_id"`
	Ratings   map[Dimension]Rating `json:"ratings"`
	ChinFlags int                  `json:"chin_flags"` // KO/TKO losses, never decremented
	BoutCount int                  `json:"bout_count"`
	LastBout  *time.Time           `json:"last_bout,omitempty"`
}

// NewFighterRatings initializes every dimension at baseline.
func NewFighterRatings(fighterID string) *FighterRatings {
	fr := &FighterRatings{
		FighterID: fighterID,
		Ratings:   make(map[Dimension]Rating, 10),
	}
	for _, d := range Dimensions() {
		fr.Ratings[d] = NewRating()
	}
	return fr
}

// Get returns the rating for a dimension, or a baseline rating if this
// fighter has never been scored on it. Never writes: read paths share
// snapshots under RLock.
func (fr *FighterRatings) Get(d Dimension) Rating {
	if r, ok := fr.Ratings[d]; ok {
		return r
	}
	return NewRating()
}

// Set stores a rating for a dimension, clamping the value to the sane range.
func (fr *FighterRatings) Set(d Dimension, r Rating) {
	if r.Value < MinRating {
		r.Value = MinRating
	}
	if r.Value > MaxRating {
		r.Value = MaxRating
	}
	if r.Deviation < MinDeviation {
		r.Deviation = MinDeviation
	}
	if r.Deviation > MaxDeviation {
		r.Deviation = MaxDeviation
	}
	fr.Ratings[d] = r
}

// Average returns the mean rating value across all dimensions.
func (fr *FighterRatings) Average() float64 {
	if len(fr.Ratings) == 0 {
		return BaselineRating
	}
	var sum float64
	for _, d := range Dimensions() {
		sum += fr.Get(d).Value
	}
	return sum / float64(len(Dimensions()))
}

// AggregateDeviation returns the mean deviation across all dimensions,
// used as the uncertainty tiebreaker in dead-even matchups.
func (fr *FighterRatings) AggregateDeviation() float64 {
	var sum float64
	for _, d := range Dimensions() {
		sum += fr.Get(d).Deviation
	}
	return sum / float64(len(Dimensions()))
}

// Clone returns a deep copy. Prediction-time decay works on clones so the
// persisted state is never silently altered.
func (fr *FighterRatings) Clone() *FighterRatings {
	cp := &FighterRatings{
		FighterID: fr.FighterID,
		Ratings:   make(map[Dimension]Rating, len(fr.Ratings)),
		ChinFlags: fr.ChinFlags,
		BoutCount: fr.BoutCount,
	}
	for d, r := range fr.Ratings {
		cp.Ratings[d] = r
	}
	if fr.LastBout != nil {
		t := *fr.LastBout
		cp.LastBout = &t
	}
	return cp
}

// FighterRank is one row of the rankings listing.
type FighterRank struct {
	FighterID string  `json:"fighter_id"`
	Name      string  `json:"name,omitempty"`
	Average   float64 `json:"average"`
	BoutCount int     `json:"bout_count"`
	Deviation float64 `json:"deviation"`
}

// RatingUpdate is one audit-trail entry: a single dimension update from a
// single bout. The replay report carries these so every rating movement is
// traceable to the bout and scores that produced it.
type RatingUpdate struct {
	BoutID     string    `json:"bout_id"`
	BoutDate   time.Time `json:"bout_date"`
	FighterID  string    `json:"fighter_id"`
	OpponentID string    `json:"opponent_id"`
	Dimension  Dimension `json:"dimension"`
	OldValue   float64   `json:"old_value"`
	NewValue   float64   `json:"new_value"`
	Expected   float64   `json:"expected"`
	Actual     float64   `json:"actual"`
	KFactor    float64   `json:"k_factor"`
}

// ReplayWarning records a bout the replay engine skipped and why.
type ReplayWarning struct {
	BoutID string `json:"bout_id"`
	Reason string `json:"reason"`
}

// ReplayReport summarizes one full chronological replay.
type ReplayReport struct {
	BoutsProcessed int             `json:"bouts_processed"`
	BoutsSkipped   int             `json:"bouts_skipped"`
	FightersRated  int             `json:"fighters_rated"`
	Warnings       []ReplayWarning `json:"warnings,omitempty"`
	Updates        []RatingUpdate  `json:"-"` // audit trail, not serialized by default
	StartedAt      time.Time       `json:"started_at"`
	FinishedAt     time.Time       `json:"finished_at"`
}
