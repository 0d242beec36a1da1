package metrics

import (
	"math"

	"github.com/montanaflynn/stats"

	"github.com/AngelCh415/stratis/internal/models"
)

const (
	recentDays       = 7
	recentZThreshold = 2.0
)

// Aggregator reduces daily records into a KPI snapshot. The health scores
// that do not come from the data are delegated to Scorer.
type Aggregator struct {
	Scorer HealthScorer
}

func NewAggregator(s HealthScorer) *Aggregator {
	if s == nil {
		s = NoScorer{}
	}
	return &Aggregator{Scorer: s}
}

// Aggregate uses no health scorer; the synthetic scores stay 0.
func Aggregate(records []models.DailyMetrics) models.AggregatedKPIs {
	return NewAggregator(NoScorer{}).Aggregate(records)
}

func (a *Aggregator) Aggregate(records []models.DailyMetrics) models.AggregatedKPIs {
	if len(records) == 0 {
		return models.AggregatedKPIs{}
	}

	var sum models.DailyMetrics
	for _, r := range records {
		sum.Add(r)
	}
	sum.Date = records[len(records)-1].Date

	k := models.AggregatedKPIs{DailyMetrics: sum}
	// métricas derivadas
	k.Frequency = safeDiv(float64(sum.Impressions), float64(sum.Reach))
	k.CTR = safeDiv(float64(sum.Clicks), float64(sum.Impressions)) * 100
	k.CPC = safeDiv(sum.Spend, float64(sum.Clicks))
	k.CPM = safeDiv(sum.Spend, float64(sum.Impressions)) * 1000
	k.LPVRate = safeDiv(float64(sum.LandingPageViews), float64(sum.Clicks)) * 100
	k.CPL = safeDiv(sum.Spend, float64(sum.Leads))
	k.CPA = safeDiv(sum.Spend, float64(sum.Conversions))
	k.ROAS = safeDiv(sum.Revenue, sum.Spend)
	k.VideoCompletionRate = safeDiv(float64(sum.VideoViewsThruplay), float64(sum.VideoViews3s)) * 100
	k.EngagementRate = safeDiv(float64(sum.Engagements), float64(sum.Impressions)) * 100

	k.VolatilityScore, k.AnomalyCount = spendHealth(records)

	scorer := a.Scorer
	if scorer == nil {
		scorer = NoScorer{}
	}
	h := scorer.Score(records, k)
	k.BrandSearchLift = h.BrandSearchLift
	k.ShareOfVoice = h.ShareOfVoice
	k.BudgetPacing = h.BudgetPacing
	k.CreativeFatigueIndex = h.CreativeFatigueIndex
	return k
}

// spendHealth returns the spend coefficient of variation (percent) and how
// many of the last 7 records sit more than 2 std devs from the slice mean.
func spendHealth(records []models.DailyMetrics) (float64, int) {
	spend := make(stats.Float64Data, len(records))
	for i, r := range records {
		spend[i] = r.Spend
	}
	mean, _ := stats.Mean(spend)
	std, _ := stats.StandardDeviation(spend)
	if mean <= 0 {
		return 0, 0
	}
	volatility := std / mean * 100

	div := std
	if div == 0 {
		div = 1
	}
	start := len(spend) - recentDays
	if start < 0 {
		start = 0
	}
	n := 0
	for _, v := range spend[start:] {
		if math.Abs(v-mean)/div > recentZThreshold {
			n++
		}
	}
	return volatility, n
}

func safeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}
