package task

import "github.com/josephgoksu/taskrank/models"

// Tier thresholds. Each bound is exclusive: a score equal to a bound falls
// into the lower tier.
const (
	CriticalThreshold = 1.5
	HighThreshold     = 1.0
	MediumThreshold   = 0.5
)

// Classify maps a score to a tier. Local strategies carry no score
// semantics, so everything they produce is medium.
func Classify(score float64, strategy models.Strategy) models.PriorityTier {
	if !strategy.IsRemote() {
		return models.TierMedium
	}
	switch {
	case score > CriticalThreshold:
		return models.TierCritical
	case score > HighThreshold:
		return models.TierHigh
	case score > MediumThreshold:
		return models.TierMedium
	default:
		return models.TierLow
	}
}

// Rank attaches a tier and 1-based display position to each task,
// keeping the given order.
func Rank(tasks []models.AnalyzedTask, strategy models.Strategy) []models.RankedTask {
	ranked := make([]models.RankedTask, len(tasks))
	for i, t := range tasks {
		ranked[i] = models.RankedTask{
			AnalyzedTask: t,
			Rank:         i + 1,
			Tier:         Classify(EffectiveScore(t.PriorityScore), strategy),
		}
	}
	return ranked
}

// Unscored wraps locally ordered tasks as analysis results without scores.
func Unscored(tasks []models.Task) []models.AnalyzedTask {
	out := make([]models.AnalyzedTask, len(tasks))
	for i, t := range tasks {
		out[i] = models.AnalyzedTask{Task: t}
	}
	return out
}
