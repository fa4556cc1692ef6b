package models

import (
	"strings"
	"time"
)

// Method classifies how a bout ended.
type Method string

const (
	MethodKOTKO      Method = "KO/TKO"
	MethodSubmission Method = "Submission"
	MethodDecision   Method = "Decision"
	MethodOther      Method = "Other"
)

// NormalizeMethod maps the free-form method strings found in historical
// records ("KO (Punch)", "SUB (RNC)", "Decision - Unanimous") onto the
// canonical Method values.
func NormalizeMethod(raw string) Method {
	m := strings.ToUpper(raw)
	switch {
	case strings.Contains(m, "KO") || strings.Contains(m, "TKO"):
		return MethodKOTKO
	case strings.Contains(m, "SUB"):
		return MethodSubmission
	case strings.Contains(m, "DEC"):
		return MethodDecision
	default:
		return MethodOther
	}
}

// BoutStats holds one fighter's recorded statistics for a single bout.
type BoutStats struct {
	FighterID          string `json:"fighter_id"`
	Knockdowns         int    `json:"knockdowns"`
	SigStrikesLanded   int    `json:"sig_strikes_landed"`
	SigStrikesAttempts int    `json:"sig_strikes_attempted"`
	TotalStrikesLanded int    `json:"total_strikes_landed"`
	TakedownsLanded    int    `json:"takedowns_landed"`
	TakedownsAttempted int    `json:"takedowns_attempted"`
	SubAttempts        int    `json:"sub_attempts"`
	Reversals          int    `json:"reversals"`
	ControlSeconds     int    `json:"control_time_seconds"`
}

// Bout is one authoritative historical bout record. Exactly one record
// exists per bout ID; a later ingested record for the same ID supersedes
// the earlier one (that resolution happens in the store, before replay).
type Bout struct {
	ID              string     `json:"id"`
	EventID         string     `json:"event_id"`
	Date            time.Time  `json:"date"`
	RedID           string     `json:"red_id"`
	BlueID          string     `json:"blue_id"`
	WinnerID        string     `json:"winner_id,omitempty"` // empty for draw/NC
	NoContest       bool       `json:"no_contest,omitempty"`
	Draw            bool       `json:"draw,omitempty"`
	WeightClass     string     `json:"weight_class,omitempty"`
	TitleFight      bool       `json:"title_fight,omitempty"`
	Method          string     `json:"method,omitempty"`
	MethodDetail    string     `json:"method_detail,omitempty"`
	RoundFinished   int        `json:"round_finished,omitempty"`
	ScheduledRounds int        `json:"scheduled_rounds"`
	RedNoticeDays   int        `json:"red_notice_days,omitempty"`
	BlueNoticeDays  int        `json:"blue_notice_days,omitempty"`
	Venue           string     `json:"venue,omitempty"`
	Commission      string     `json:"commission,omitempty"`
	RedStats        *BoutStats `json:"red_stats,omitempty"`
	BlueStats       *BoutStats `json:"blue_stats,omitempty"`
	IngestedAt      time.Time  `json:"ingested_at,omitempty"`
}

// NormalizedMethod returns the canonical method for the bout.
func (b *Bout) NormalizedMethod() Method {
	return NormalizeMethod(b.Method)
}

// Decided reports whether the bout produced a usable result for rating
// updates: a winner, or an explicit draw.
func (b *Bout) Decided() bool {
	if b.NoContest {
		return false
	}
	return b.WinnerID != "" || b.Draw
}

// Opponent returns the other participant's ID, or "" if the fighter was
// not in this bout.
func (b *Bout) Opponent(fighterID string) string {
	switch fighterID {
	case b.RedID:
		return b.BlueID
	case b.BlueID:
		return b.RedID
	}
	return ""
}

// StatsFor returns the recorded statistics for one participant (may be nil).
func (b *Bout) StatsFor(fighterID string) *BoutStats {
	switch fighterID {
	case b.RedID:
		return b.RedStats
	case b.BlueID:
		return b.BlueStats
	}
	return nil
}

// NoticeDaysFor returns the preparation window for one participant.
// Zero means unknown (full camp assumed).
func (b *Bout) NoticeDaysFor(fighterID string) int {
	switch fighterID {
	case b.RedID:
		return b.RedNoticeDays
	case b.BlueID:
		return b.BlueNoticeDays
	}
	return 0
}
