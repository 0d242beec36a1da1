package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AngelCh415/stratis/internal/models"
	"github.com/AngelCh415/stratis/internal/rng"
)

func TestAggregateTwoRecords(t *testing.T) {
	k := Aggregate([]models.DailyMetrics{
		{Date: "2026-01-01", Spend: 100, Revenue: 300, Conversions: 2, Impressions: 1000, Clicks: 50},
		{Date: "2026-01-02", Spend: 200, Revenue: 100, Conversions: 1, Impressions: 2000, Clicks: 50},
	})
	assert.Equal(t, 300.0, k.Spend)
	assert.Equal(t, 400.0, k.Revenue)
	assert.InDelta(t, 1.3333, k.ROAS, 1e-3)
	assert.InDelta(t, 100, k.CPA, 1e-9)
	assert.InDelta(t, 3.3333, k.CTR, 1e-3)
	assert.InDelta(t, 3, k.CPC, 1e-9)
	assert.InDelta(t, 100, k.CPM, 1e-9)
	assert.Equal(t, "2026-01-02", k.Date)
	// reach is 0
	assert.Zero(t, k.Frequency)
}

func TestAggregateEmpty(t *testing.T) {
	assert.Equal(t, models.AggregatedKPIs{}, Aggregate(nil))
	assert.Equal(t, models.AggregatedKPIs{}, NewAggregator(NewRandomScorer(rng.New(1))).Aggregate([]models.DailyMetrics{}))
}

func TestAggregateZeroImpressions(t *testing.T) {
	k := Aggregate([]models.DailyMetrics{{Date: "2026-01-01", Spend: 50, Clicks: 0, Engagements: 4}})
	assert.Zero(t, k.CTR)
	assert.Zero(t, k.CPM)
	assert.Zero(t, k.EngagementRate)
	assert.Zero(t, k.CPC)
	assert.Zero(t, k.ROAS)
	for _, key := range models.KPIKeys {
		v := k.Metric(key)
		assert.False(t, math.IsNaN(v), "%s is NaN", key)
	}
}

func TestVolatilityAndRecentAnomalies(t *testing.T) {
	flat := make([]models.DailyMetrics, 10)
	for i := range flat {
		flat[i] = models.DailyMetrics{Spend: 100}
	}
	k := Aggregate(flat)
	assert.Zero(t, k.VolatilityScore)
	assert.Zero(t, k.AnomalyCount)

	// one big spike in the last week
	spiky := make([]models.DailyMetrics, 20)
	for i := range spiky {
		spiky[i] = models.DailyMetrics{Spend: 100}
	}
	spiky[18].Spend = 1000
	k = Aggregate(spiky)
	assert.Greater(t, k.VolatilityScore, 0.0)
	assert.Equal(t, 1, k.AnomalyCount)

	// spike outside the last 7 records does not count
	spiky[18].Spend = 100
	spiky[2].Spend = 1000
	assert.Zero(t, Aggregate(spiky).AnomalyCount)
}

func TestNoScorerLeavesHealthZero(t *testing.T) {
	k := Aggregate([]models.DailyMetrics{{Spend: 10, Impressions: 100}})
	assert.Zero(t, k.BrandSearchLift)
	assert.Zero(t, k.ShareOfVoice)
	assert.Zero(t, k.BudgetPacing)
	assert.Zero(t, k.CreativeFatigueIndex)
}

func TestRandomScorerRanges(t *testing.T) {
	agg := NewAggregator(NewRandomScorer(rng.New(42)))
	for i := 0; i < 100; i++ {
		k := agg.Aggregate([]models.DailyMetrics{{Spend: 10, Impressions: 100}})
		require.GreaterOrEqual(t, k.BrandSearchLift, 50.0)
		require.Less(t, k.BrandSearchLift, 100.0)
		require.GreaterOrEqual(t, k.ShareOfVoice, 10.0)
		require.Less(t, k.ShareOfVoice, 40.0)
		require.GreaterOrEqual(t, k.BudgetPacing, 85.0)
		require.Less(t, k.BudgetPacing, 115.0)
		require.GreaterOrEqual(t, k.CreativeFatigueIndex, 20.0)
		require.Less(t, k.CreativeFatigueIndex, 80.0)
	}
}

func TestRandomScorerDrawsFourPerCall(t *testing.T) {
	r := rng.New(9)
	NewAggregator(NewRandomScorer(r)).Aggregate([]models.DailyMetrics{{Spend: 1}})
	ref := rng.New(9)
	for i := 0; i < 4; i++ {
		ref.Float64()
	}
	assert.Equal(t, ref.Float64(), r.Float64())
}

func TestDeltaSymmetry(t *testing.T) {
	k := Aggregate([]models.DailyMetrics{
		{Spend: 120, Impressions: 5000, Reach: 3000, Clicks: 90, Conversions: 4, Revenue: 900},
	})
	for key, d := range ComputeDeltas(k, k) {
		assert.Zero(t, d.Delta, key)
		assert.Zero(t, d.DeltaPercent, key)
	}
	assert.Len(t, ComputeDeltas(k, k), len(models.KPIKeys))
}

func TestDelta(t *testing.T) {
	d := Delta(150, 100)
	assert.Equal(t, models.KPIDelta{Value: 150, PreviousValue: 100, Delta: 50, DeltaPercent: 50}, d)

	d = Delta(5, 0)
	assert.Equal(t, 5.0, d.Delta)
	assert.Zero(t, d.DeltaPercent)
}
