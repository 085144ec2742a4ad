package task

import (
	"testing"

	"github.com/josephgoksu/taskrank/models"
	"github.com/stretchr/testify/assert"
)

func TestClassify_RemoteThresholds(t *testing.T) {
	tests := []struct {
		score float64
		want  models.PriorityTier
	}{
		{score: 1.6, want: models.TierCritical},
		{score: 1.5, want: models.TierHigh},
		{score: 1.2, want: models.TierHigh},
		{score: 1.0, want: models.TierMedium},
		{score: 0.7, want: models.TierMedium},
		{score: 0.5, want: models.TierLow},
		{score: 0.3, want: models.TierLow},
		{score: 0, want: models.TierLow},
		{score: -1, want: models.TierLow},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.score, models.StrategySmart), "smart %v", tt.score)
		assert.Equal(t, tt.want, Classify(tt.score, models.StrategySuggest), "suggest %v", tt.score)
	}
}

func TestClassify_LocalStrategiesAreMedium(t *testing.T) {
	for _, s := range []models.Strategy{models.StrategyFastest, models.StrategyHighImpact, models.StrategyDeadline} {
		for _, score := range []float64{-5, 0, 0.5, 1.2, 99} {
			assert.Equal(t, models.TierMedium, Classify(score, s), "%s %v", s, score)
		}
	}
}

func TestRank(t *testing.T) {
	score := 1.7
	tasks := []models.AnalyzedTask{
		{Task: models.Task{Title: "scored"}, PriorityScore: &score},
		{Task: models.Task{Title: "unscored"}},
	}

	ranked := Rank(tasks, models.StrategySmart)
	assert.Len(t, ranked, 2)
	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, models.TierCritical, ranked[0].Tier)
	assert.Equal(t, 2, ranked[1].Rank)
	assert.Equal(t, models.TierLow, ranked[1].Tier, "missing score counts as 0")
}

func TestUnscored(t *testing.T) {
	out := Unscored([]models.Task{{Title: "a"}})
	assert.Len(t, out, 1)
	assert.Nil(t, out[0].PriorityScore)
	assert.Equal(t, "a", out[0].Title)
}
