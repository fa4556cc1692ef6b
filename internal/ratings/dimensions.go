package ratings

import (
	"strings"

	"github.com/lhgjose/ufc-prediction-fights/internal/models"
)

// DimensionScore is the implied result of one bout for one fighter on one
// skill axis: 1.0 dominant, 0.5 even, 0.0 dominated. Weight scales how
// hard the Elo update for that axis is applied.
type DimensionScore struct {
	Dimension models.Dimension
	Score     float64
	Weight    float64
}

// ExtractDimensionScores converts raw bout statistics into per-dimension
// implied outcomes for one participant. When detailed statistics are
// missing the scores fall back to method-aware outcome-only estimates at
// reduced weight.
func ExtractDimensionScores(bout *models.Bout, fighterID string) []DimensionScore {
	isWinner := bout.WinnerID == fighterID
	fs := bout.StatsFor(fighterID)
	os := bout.StatsFor(bout.Opponent(fighterID))

	if fs == nil || os == nil {
		return scoresFromOutcomeOnly(bout, isWinner)
	}

	method := bout.NormalizedMethod()

	return []DimensionScore{
		{models.KnockoutPower, koPowerScore(method, isWinner, fs, os), 1.0},
		{models.StrikingVolume, strikingVolumeScore(fs, os), 1.0},
		{models.StrikingDefense, strikingDefenseScore(os), 1.0},
		{models.WrestlingOffense, wrestlingOffenseScore(fs, os), 1.0},
		{models.WrestlingDefense, wrestlingDefenseScore(os), 1.0},
		{models.SubmissionOffense, submissionOffenseScore(method, isWinner, fs, os), 1.0},
		{models.SubmissionDefense, submissionDefenseScore(method, isWinner, os), 1.0},
		{models.Cardio, cardioScore(bout, method, isWinner), 1.0},
		{models.Pressure, pressureScore(fs, os), 1.0},
		{models.Adaptability, adaptabilityScore(bout, method, isWinner), 1.0},
	}
}

// scoresFromOutcomeOnly rates a bout with no recorded statistics. Only the
// method tells us anything, so most axes get a moderate nudge at half
// weight and the method-relevant axes get the full signal.
func scoresFromOutcomeOnly(bout *models.Bout, isWinner bool) []DimensionScore {
	base := 0.3
	switch {
	case bout.Draw:
		base = 0.5
	case isWinner:
		base = 0.7
	}
	method := bout.NormalizedMethod()

	scores := make([]DimensionScore, 0, 10)
	for _, dim := range models.Dimensions() {
		score, weight := base, 0.5

		switch method {
		case models.MethodKOTKO:
			switch dim {
			case models.KnockoutPower:
				score, weight = 0.0, 1.0
				if isWinner {
					score = 1.0
				}
			case models.StrikingDefense:
				score, weight = 0.0, 0.8
				if isWinner {
					score = 0.7
				}
			}
		case models.MethodSubmission:
			switch dim {
			case models.SubmissionOffense:
				score, weight = 0.0, 1.0
				if isWinner {
					score = 1.0
				}
			case models.SubmissionDefense:
				score, weight = 0.0, 0.8
				if isWinner {
					score = 0.7
				}
			}
		case models.MethodDecision:
			// Went the distance: both showed cardio
			if dim == models.Cardio {
				score, weight = 0.4, 0.7
				if isWinner {
					score = 0.6
				}
			}
		}

		scores = append(scores, DimensionScore{dim, score, weight})
	}
	return scores
}

func safeRatio(num, den int, fallback float64) float64 {
	if den == 0 {
		return fallback
	}
	return float64(num) / float64(den)
}

func clampScore(s, lo, hi float64) float64 {
	if s < lo {
		return lo
	}
	if s > hi {
		return hi
	}
	return s
}

func koPowerScore(method models.Method, isWinner bool, fs, os *models.BoutStats) float64 {
	if method == models.MethodKOTKO {
		if isWinner {
			return 1.0
		}
		return 0.0
	}

	// Otherwise knockdowns carry the signal
	switch {
	case fs.Knockdowns > os.Knockdowns:
		return 0.7 + min(0.2, float64(fs.Knockdowns)*0.1)
	case fs.Knockdowns < os.Knockdowns:
		return 0.3 - min(0.2, float64(os.Knockdowns)*0.1)
	default:
		return 0.5
	}
}

func strikingVolumeScore(fs, os *models.BoutStats) float64 {
	total := fs.SigStrikesLanded + os.SigStrikesLanded
	if total == 0 {
		return 0.5
	}
	share := float64(fs.SigStrikesLanded) / float64(total)
	score := 0.2 + share*0.6
	if share > 0.6 {
		score += 0.2
	}
	return score
}

func strikingDefenseScore(os *models.BoutStats) float64 {
	if os.SigStrikesAttempts == 0 {
		return 0.5
	}
	defenseRate := 1.0 - float64(os.SigStrikesLanded)/float64(os.SigStrikesAttempts)
	return clampScore(defenseRate, 0.1, 0.9)
}

func wrestlingOffenseScore(fs, os *models.BoutStats) float64 {
	successRate := safeRatio(fs.TakedownsLanded, fs.TakedownsAttempted, 0)

	totalTD := fs.TakedownsLanded + os.TakedownsLanded
	if totalTD == 0 {
		return 0.5
	}
	tdShare := float64(fs.TakedownsLanded) / float64(totalTD)

	return successRate*0.4 + tdShare*0.6
}

func wrestlingDefenseScore(os *models.BoutStats) float64 {
	if os.TakedownsAttempted == 0 {
		// Opponent never shot: mildly positive
		return 0.55
	}
	defenseRate := 1.0 - safeRatio(os.TakedownsLanded, os.TakedownsAttempted, 0)
	return clampScore(defenseRate, 0.1, 0.9)
}

func submissionOffenseScore(method models.Method, isWinner bool, fs, os *models.BoutStats) float64 {
	if isWinner && method == models.MethodSubmission {
		return 1.0
	}

	total := fs.SubAttempts + os.SubAttempts
	if total == 0 {
		return 0.5
	}
	share := float64(fs.SubAttempts) / float64(total)
	return 0.3 + share*0.4
}

func submissionDefenseScore(method models.Method, isWinner bool, os *models.BoutStats) float64 {
	if !isWinner && method == models.MethodSubmission {
		return 0.0
	}
	if os.SubAttempts == 0 {
		return 0.55
	}
	// Every survived attempt is evidence of defense
	return min(0.9, 0.5+float64(os.SubAttempts)*0.1)
}

func cardioScore(bout *models.Bout, method models.Method, isWinner bool) float64 {
	if method == models.MethodDecision {
		if isWinner {
			return 0.65
		}
		return 0.45
	}

	switch {
	case bout.RoundFinished > 0 && bout.RoundFinished <= 2:
		if isWinner {
			return 0.55 // finished early, cardio untested
		}
		return 0.4
	case bout.RoundFinished >= 3:
		if isWinner {
			return 0.75 // strong late
		}
		return 0.35 // faded
	}
	return 0.5
}

func pressureScore(fs, os *models.BoutStats) float64 {
	controlShare := 0.5
	if totalControl := fs.ControlSeconds + os.ControlSeconds; totalControl > 0 {
		controlShare = float64(fs.ControlSeconds) / float64(totalControl)
	}

	strikeShare := 0.5
	if totalStrikes := fs.TotalStrikesLanded + os.TotalStrikesLanded; totalStrikes > 0 {
		strikeShare = float64(fs.TotalStrikesLanded) / float64(totalStrikes)
	}

	return controlShare*0.6 + strikeShare*0.4
}

func adaptabilityScore(bout *models.Bout, method models.Method, isWinner bool) float64 {
	split := containsSplit(bout.Method) || containsSplit(bout.MethodDetail)

	if isWinner {
		if method == models.MethodDecision {
			if split {
				return 0.7 // edged a close one
			}
			return 0.65
		}
		return 0.6
	}

	if method == models.MethodDecision {
		if split {
			return 0.45
		}
		return 0.4
	}
	return 0.35 // got finished
}

func containsSplit(s string) bool {
	return strings.Contains(strings.ToLower(s), "split")
}
