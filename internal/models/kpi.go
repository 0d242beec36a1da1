package models

type KPIKey string

const (
	KPISpend                KPIKey = "spend"
	KPIImpressions          KPIKey = "impressions"
	KPIReach                KPIKey = "reach"
	KPIClicks               KPIKey = "clicks"
	KPILandingPageViews     KPIKey = "landingPageViews"
	KPILeads                KPIKey = "leads"
	KPIConversions          KPIKey = "conversions"
	KPIRevenue              KPIKey = "revenue"
	KPIVideoViews3s         KPIKey = "videoViews3s"
	KPIVideoViewsThruplay   KPIKey = "videoViewsThruplay"
	KPIEngagements          KPIKey = "engagements"
	KPIAssistedConversions  KPIKey = "assistedConversions"
	KPIFrequency            KPIKey = "frequency"
	KPICTR                  KPIKey = "ctr"
	KPICPC                  KPIKey = "cpc"
	KPICPM                  KPIKey = "cpm"
	KPILPVRate              KPIKey = "lpvRate"
	KPICPL                  KPIKey = "cpl"
	KPICPA                  KPIKey = "cpa"
	KPIROAS                 KPIKey = "roas"
	KPIVideoCompletionRate  KPIKey = "videoCompletionRate"
	KPIEngagementRate       KPIKey = "engagementRate"
	KPIBrandSearchLift      KPIKey = "brandSearchLift"
	KPIShareOfVoice         KPIKey = "shareOfVoice"
	KPIVolatilityScore      KPIKey = "volatilityScore"
	KPIAnomalyCount         KPIKey = "anomalyCount"
	KPIBudgetPacing         KPIKey = "budgetPacing"
	KPICreativeFatigueIndex KPIKey = "creativeFatigueIndex"
)

// KPIKeys lists every numeric metric in display order.
var KPIKeys = []KPIKey{
	KPISpend, KPIImpressions, KPIReach, KPIClicks, KPILandingPageViews, KPILeads, KPIConversions, KPIRevenue,
	KPIVideoViews3s, KPIVideoViewsThruplay, KPIEngagements, KPIAssistedConversions,
	KPIFrequency, KPICTR, KPICPC, KPICPM, KPILPVRate, KPICPL, KPICPA, KPIROAS,
	KPIVideoCompletionRate, KPIEngagementRate, KPIBrandSearchLift, KPIShareOfVoice,
	KPIVolatilityScore, KPIAnomalyCount, KPIBudgetPacing, KPICreativeFatigueIndex,
}

// Value reads a raw counter by key. ok is false for derived keys.
func (d DailyMetrics) Value(key KPIKey) (float64, bool) {
	switch key {
	case KPISpend:
		return d.Spend, true
	case KPIImpressions:
		return float64(d.Impressions), true
	case KPIReach:
		return float64(d.Reach), true
	case KPIClicks:
		return float64(d.Clicks), true
	case KPILandingPageViews:
		return float64(d.LandingPageViews), true
	case KPILeads:
		return float64(d.Leads), true
	case KPIConversions:
		return float64(d.Conversions), true
	case KPIRevenue:
		return d.Revenue, true
	case KPIVideoViews3s:
		return float64(d.VideoViews3s), true
	case KPIVideoViewsThruplay:
		return float64(d.VideoViewsThruplay), true
	case KPIEngagements:
		return float64(d.Engagements), true
	case KPIAssistedConversions:
		return float64(d.AssistedConversions), true
	}
	return 0, false
}

// Metric reads any KPI by key; unknown keys read as 0.
func (k AggregatedKPIs) Metric(key KPIKey) float64 {
	if v, ok := k.DailyMetrics.Value(key); ok {
		return v
	}
	switch key {
	case KPIFrequency:
		return k.Frequency
	case KPICTR:
		return k.CTR
	case KPICPC:
		return k.CPC
	case KPICPM:
		return k.CPM
	case KPILPVRate:
		return k.LPVRate
	case KPICPL:
		return k.CPL
	case KPICPA:
		return k.CPA
	case KPIROAS:
		return k.ROAS
	case KPIVideoCompletionRate:
		return k.VideoCompletionRate
	case KPIEngagementRate:
		return k.EngagementRate
	case KPIBrandSearchLift:
		return k.BrandSearchLift
	case KPIShareOfVoice:
		return k.ShareOfVoice
	case KPIVolatilityScore:
		return k.VolatilityScore
	case KPIAnomalyCount:
		return float64(k.AnomalyCount)
	case KPIBudgetPacing:
		return k.BudgetPacing
	case KPICreativeFatigueIndex:
		return k.CreativeFatigueIndex
	}
	return 0
}

type KPIFormat string

const (
	FormatCurrency KPIFormat = "currency"
	FormatNumber   KPIFormat = "number"
	FormatPercent  KPIFormat = "percent"
	FormatDecimal  KPIFormat = "decimal"
	FormatIndex    KPIFormat = "index"
)

type KPIConfig struct {
	Key            KPIKey    `json:"key"`
	Label          string    `json:"label"`
	Format         KPIFormat `json:"format"`
	HigherIsBetter bool      `json:"higherIsBetter"`
	Category       string    `json:"category"`
}

var KPIConfigs = []KPIConfig{
	{KPISpend, "Spend", FormatCurrency, false, "spend"},
	{KPIImpressions, "Impressions", FormatNumber, true, "reach"},
	{KPIReach, "Reach", FormatNumber, true, "reach"},
	{KPIFrequency, "Frequency", FormatDecimal, false, "reach"},
	{KPIClicks, "Clicks", FormatNumber, true, "engagement"},
	{KPICTR, "CTR", FormatPercent, true, "engagement"},
	{KPICPC, "CPC", FormatCurrency, false, "engagement"},
	{KPICPM, "CPM", FormatCurrency, false, "reach"},
	{KPILandingPageViews, "Landing Page Views", FormatNumber, true, "engagement"},
	{KPILPVRate, "LPV Rate", FormatPercent, true, "engagement"},
	{KPILeads, "Leads", FormatNumber, true, "conversion"},
	{KPICPL, "CPL", FormatCurrency, false, "conversion"},
	{KPIConversions, "Conversions", FormatNumber, true, "conversion"},
	{KPICPA, "CPA", FormatCurrency, false, "conversion"},
	{KPIRevenue, "Revenue", FormatCurrency, true, "revenue"},
	{KPIROAS, "ROAS", FormatDecimal, true, "revenue"},
	{KPIVideoViews3s, "Video Views (3s)", FormatNumber, true, "video"},
	{KPIVideoViewsThruplay, "ThruPlay Views", FormatNumber, true, "video"},
	{KPIVideoCompletionRate, "Video Completion Rate", FormatPercent, true, "video"},
	{KPIEngagements, "Engagements", FormatNumber, true, "engagement"},
	{KPIEngagementRate, "Engagement Rate", FormatPercent, true, "engagement"},
	{KPIAssistedConversions, "Assisted Conversions", FormatNumber, true, "conversion"},
	{KPIBrandSearchLift, "Brand Search Lift", FormatIndex, true, "reach"},
	{KPIShareOfVoice, "Share of Voice", FormatPercent, true, "reach"},
	{KPIVolatilityScore, "Volatility", FormatDecimal, false, "health"},
	{KPIAnomalyCount, "Anomalies (7d)", FormatNumber, false, "health"},
	{KPIBudgetPacing, "Budget Pacing", FormatPercent, true, "health"},
	{KPICreativeFatigueIndex, "Creative Fatigue", FormatIndex, false, "health"},
}

func KPIConfigFor(key KPIKey) (KPIConfig, bool) {
	for _, c := range KPIConfigs {
		if c.Key == key {
			return c, true
		}
	}
	return KPIConfig{}, false
}
