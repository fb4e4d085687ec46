package services

// Decision thresholds for the burnout heuristic.
const (
	strainThreshold    = 3.5
	sentimentThreshold = -0.4
)

// BurnoutFlag combines the four strain responses (1..5, higher = worse)
// with the note sentiment into a binary risk flag. Either condition alone
// is sufficient. Empty input returns 0.
func BurnoutFlag(scores []int, sentiment float64) int {
	if len(scores) == 0 {
		return 0
	}
	sum := 0
	for _, s := range scores {
		sum += s
	}
	avg := float64(sum) / float64(len(scores))
	if avg >= strainThreshold || sentiment <= sentimentThreshold {
		return 1
	}
	return 0
}
