package predict

import (
	"fmt"
	"strings"

	"github.com/lhgjose/ufc-prediction-fights/internal/models"
)

// Narrative renders a prediction as a short plain-text report. Rendering
// reads only the prediction's recorded factors and style read, so the
// text always agrees with the structured pick.
func Narrative(pred *models.Prediction, redName, blueName string) string {
	if redName == "" {
		redName = pred.RedID
	}
	if blueName == "" {
		blueName = pred.BlueID
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s vs %s\n", redName, blueName)

	if pred.Refused {
		fmt.Fprintf(&b, "No prediction: %s\n", pred.RefusalReason)
		return b.String()
	}

	winnerName := redName
	if pred.WinnerID == pred.BlueID {
		winnerName = blueName
	}

	fmt.Fprintf(&b, "Pick: %s by %s", winnerName, methodLabel(pred.Method))
	if pred.Round != nil {
		fmt.Fprintf(&b, " in round %d", *pred.Round)
	}
	b.WriteString("\n")

	if pred.CloseFight {
		b.WriteString("This one is close. The pick came down to stylistic matchups rather than a clear ratings gap.\n")
	}

	if lines := advantageLines(pred, redName, blueName); len(lines) > 0 {
		b.WriteString("\nKey advantages:\n")
		for _, l := range lines {
			fmt.Fprintf(&b, "  - %s\n", l)
		}
	}

	if s := styleLine(pred.Style, redName, blueName); s != "" {
		fmt.Fprintf(&b, "\nStyle: %s\n", s)
	}

	if len(pred.XFactors) > 0 {
		b.WriteString("\nX-factors:\n")
		for _, x := range pred.XFactors {
			fmt.Fprintf(&b, "  - %s\n", x)
		}
	}

	return b.String()
}

func methodLabel(m models.Method) string {
	switch m {
	case models.MethodKOTKO:
		return "KO/TKO"
	case models.MethodSubmission:
		return "submission"
	case models.MethodDecision:
		return "decision"
	default:
		return string(m)
	}
}

// advantageLines describes each significant dimension edge in plain words.
func advantageLines(pred *models.Prediction, redName, blueName string) []string {
	var out []string
	for _, d := range pred.Diffs {
		if !d.Significant {
			continue
		}
		holder := redName
		gap := d.Diff
		if gap < 0 {
			holder = blueName
			gap = -gap
		}
		out = append(out, fmt.Sprintf("%s holds a %.0f point edge in %s", holder, gap, dimensionLabel(d.Dimension)))
	}
	return out
}

func dimensionLabel(d models.Dimension) string {
	return strings.ReplaceAll(string(d), "_", " ")
}

func styleLine(s models.StyleMatchup, redName, blueName string) string {
	var parts []string

	switch s.StrikerVsGrappler {
	case "red_striker":
		parts = append(parts, fmt.Sprintf("%s wants to keep it standing against %s's grappling", redName, blueName))
	case "blue_striker":
		parts = append(parts, fmt.Sprintf("%s wants to keep it standing against %s's grappling", blueName, redName))
	}

	switch s.PressureDynamic {
	case "red":
		parts = append(parts, fmt.Sprintf("%s will push the pace", redName))
	case "blue":
		parts = append(parts, fmt.Sprintf("%s will push the pace", blueName))
	}

	switch s.CardioFactor {
	case "red":
		parts = append(parts, fmt.Sprintf("%s is stronger late", redName))
	case "blue":
		parts = append(parts, fmt.Sprintf("%s is stronger late", blueName))
	}

	return strings.Join(parts, "; ")
}
