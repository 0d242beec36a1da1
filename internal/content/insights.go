package content

import (
	"fmt"
	"time"

	"github.com/AngelCh415/stratis/internal/models"
)

type stepTemplate struct {
	title    string
	subtitle string
	kind     models.StepType
}

var stepTemplates = map[models.InsightCategory][]stepTemplate{
	models.CategoryPerformance: {
		{"Optimize Budget Allocation", "REDISTRIBUTE SPEND ACROSS TOP AD SETS", models.StepBudget},
		{"Adjust Channel Bids", "INCREASE BIDS ON HIGH-ROAS CHANNELS", models.StepBidding},
		{"Refine Audience Targeting", "NARROW TO HIGH-INTENT SEGMENTS", models.StepTargeting},
	},
	models.CategoryCreative: {
		{"Refresh Creative Assets", "REPLACE FATIGUED AD UNITS WITH NEW VARIANTS", models.StepCreative},
		{"A/B Test New Variants", "LAUNCH 3 NEW CREATIVE CONCEPTS", models.StepCreative},
		{"Adjust Ad Scheduling", "SHIFT DELIVERY TO PEAK HOURS", models.StepScheduling},
	},
	models.CategoryCompetitive: {
		{"Launch Conquest Campaign", "TARGET COMPETITOR AUDIENCES", models.StepTargeting},
		{"Increase Brand Spend", "BOOST AWARENESS BUDGET BY 15%", models.StepBudget},
		{"Adjust Bidding Strategy", "INCREASE BIDS ON CONTESTED TERMS", models.StepBidding},
	},
	models.CategoryPlatform: {
		{"Update Bidding Strategy", "ALIGN WITH NEW ALGORITHM PREFERENCES", models.StepBidding},
		{"Adjust Ad Formats", "ADOPT PLATFORM-RECOMMENDED FORMATS", models.StepCreative},
		{"Revise Targeting Parameters", "UPDATE AUDIENCE DEFINITIONS", models.StepTargeting},
	},
	models.CategoryMacro: {
		{"Reallocate Regional Budget", "SHIFT SPEND TO FAVORABLE MARKETS", models.StepBudget},
		{"Adjust Messaging", "UPDATE COPY FOR MARKET CONDITIONS", models.StepCreative},
		{"Modify Flight Schedule", "RESCHEDULE CAMPAIGNS FOR OPTIMAL TIMING", models.StepScheduling},
	},
}

// ActionSteps returns 1 + index%3 steps for the category.
func ActionSteps(category models.InsightCategory, index int) []models.InsightActionStep {
	templates := stepTemplates[category]
	if len(templates) == 0 {
		return nil
	}
	count := 1 + index%3
	steps := make([]models.InsightActionStep, 0, count)
	for i := 0; i < count; i++ {
		t := templates[i%len(templates)]
		steps = append(steps, models.InsightActionStep{
			ID:       fmt.Sprintf("step-%d-%d", index, i),
			Title:    t.title,
			Subtitle: t.subtitle,
			Type:     t.kind,
		})
	}
	return steps
}

type insightTemplate struct {
	id         string
	daysAgo    int
	scope      models.InsightScope
	category   models.InsightCategory
	region     models.RegionID
	campaign   string
	channels   []models.ChannelID
	title      string
	action     string
	summary    string
	evidence   []string
	impact     string
	confidence int
}

const (
	ig  = models.ChannelInstagram
	fb  = models.ChannelFacebook
	tt  = models.ChannelTikTok
	gs  = models.ChannelGoogleSearch
	ttd = models.ChannelTTD
)

var curated = []insightTemplate{
	// campaign
	{"insight-pacing-1", 0, models.ScopeCampaign, models.CategoryPerformance, models.RegionNorthAmerica, "na-taycan-launch",
		[]models.ChannelID{ig, fb, tt}, "Pacing to Underspend", "Adjust pacing to reach the end date",
		"Current daily spend rate projects a $3,750 underspend by flight end. Increasing daily budget or expanding targeting will close the gap.",
		[]string{"Projected spend: $46,250 of $50,000 budget", "Daily run rate $325 below target", "18 days remaining in flight"},
		"+$3.8K utilization", 88},
	{"insight-cvr-decline", 1, models.ScopeCampaign, models.CategoryPerformance, models.RegionEurope, "eu-taycan-turbo",
		[]models.ChannelID{gs, fb}, "Conversion Rate Declining", "Review landing page and audience targeting",
		"Campaign conversion rate has dropped 22% over the last 14 days while traffic volume remains steady, suggesting landing page or audience quality issues.",
		[]string{"CVR dropped from 3.2% to 2.5% over 14 days", "Click volume stable at ~1,200/day", "Bounce rate increased 15% on landing page"},
		"-$12K rev risk", 82},
	{"insight-cpa-above", 2, models.ScopeCampaign, models.CategoryPerformance, models.RegionNorthAmerica, "na-911-performance",
		[]models.ChannelID{gs, fb, ig}, "CPA Trending Above Target", "Tighten targeting or reduce bid caps on low-ROAS segments",
		"Cost per acquisition has risen 18% above the $45 target over the past week. Bidding inefficiency on broad audiences is the primary driver.",
		[]string{"Current CPA $53 vs $45 target", "Broad audience CPA is 2.1x retargeting CPA", "Bid cap exceeded on 3 ad sets"},
		"-$8K efficiency", 79},

	// cross channel
	{"insight-channel-mix", 0, models.ScopeBrand, models.CategoryPerformance, "", "",
		[]models.ChannelID{ig, gs, fb}, "Channel Mix Imbalance", "Shift budget from saturated to high-ROAS channels",
		"Instagram is receiving 40% of total budget but generating only 18% of conversions. Google Search shows 3.2x higher ROAS with room to scale.",
		[]string{"Instagram ROAS: 1.2x vs Google Search ROAS: 3.8x", "40% budget → 18% conversions on Instagram", "Google Search impression share only 62%"},
		"+$28K rev potential", 91},
	{"insight-meta-diminishing", 1, models.ScopeRegion, models.CategoryPlatform, models.RegionEurope, "",
		[]models.ChannelID{fb, gs}, "Diminishing Returns on Meta", "Reallocate excess Facebook spend to Google Search",
		"Incremental CPA on Facebook has risen 35% as audience overlap between ad sets reaches 45%. Moving $5K weekly to Search would improve blended efficiency.",
		[]string{"Facebook incremental CPA up 35% MoM", "Audience overlap at 45% across 4 ad sets", "Google Search has 38% headroom on impression share"},
		"-$4.2K CPA savings", 85},
	{"insight-freq-cap", 2, models.ScopeBrand, models.CategoryPerformance, "", "",
		[]models.ChannelID{ig, fb, tt, ttd}, "Cross-Channel Frequency Cap", "Cap combined exposure to reduce wasted impressions",
		"Users are seeing an average of 12.4 impressions per week across channels, well above the 8x optimal threshold. Excess frequency is driving CPM inflation without conversion lift.",
		[]string{"Average weekly frequency: 12.4x (target: 8x)", "CTR drops 40% after 9th impression", "Estimated waste: $6K/week in excess impressions"},
		"-$6K waste/wk", 87},

	// creative
	{"insight-fatigue-1", 0, models.ScopeCampaign, models.CategoryCreative, models.RegionNorthAmerica, "na-taycan-launch",
		[]models.ChannelID{ig, fb}, "Possible Creative Fatigue", "Pause spend on underperforming ad",
		"Primary hero creative has been running for 21 days with CTR declining steadily. Frequency has reached 6.8x in core audience, indicating ad fatigue.",
		[]string{"CTR declined 28% over 14 days", "Frequency reached 6.8x in primary audience", "Creative fatigue index: 72/100"},
		"+18% CTR recovery", 84},
	{"insight-fatigue-2", 1, models.ScopeCampaign, models.CategoryCreative, models.RegionEurope, "eu-911-heritage",
		[]models.ChannelID{ig, tt}, "Possible Creative Fatigue", "Pause spend on underperforming ad",
		"Video ad variant B has reached saturation with completion rates dropping below 15%. Audience has been heavily exposed over the past 3 weeks.",
		[]string{"Video completion rate dropped from 28% to 14%", "Frequency: 5.4x in lookalike audience", "CPA increased 32% for this creative"},
		"+22% VCR recovery", 78},
	{"insight-fatigue-3", 2, models.ScopeCampaign, models.CategoryCreative, models.RegionUK, "uk-cayenne-summer",
		[]models.ChannelID{ig, fb}, "Possible Creative Fatigue", "Pause spend on underperforming ad",
		"Carousel ad in UK Cayenne campaign shows declining engagement. Swipe rate has halved while CPC has doubled, suggesting creative exhaustion.",
		[]string{"Swipe rate dropped 52% in 10 days", "CPC increased from $1.20 to $2.45", "Engagement rate: 1.1% (was 2.8%)"},
		"+$2.1K efficiency", 81},
	{"insight-scale-top", 0, models.ScopeCampaign, models.CategoryCreative, models.RegionNorthAmerica, "na-taycan-launch",
		[]models.ChannelID{tt, ig}, "Top Performer Ready to Scale", "Increase budget allocation to top creative",
		"New UGC-style Taycan video is outperforming all other creatives by 2.4x on ROAS. Currently capped at 15% of ad set budget; scaling to 35% is projected to improve overall campaign ROAS.",
		[]string{"Creative ROAS: 4.8x vs campaign avg 2.0x", "Only receiving 15% of ad set budget", "No fatigue signals after 12 days"},
		"+$18K rev potential", 92},
	{"insight-low-engage", 1, models.ScopeCampaign, models.CategoryCreative, models.RegionAPAC, "apac-taycan-launch",
		[]models.ChannelID{fb, ig}, "Low Engagement Variant", "Replace or refresh underperforming creative",
		"Static image variant C has the lowest engagement rate across all active creatives at 0.8%. Budget is being wasted on an asset that fails to capture attention.",
		[]string{"Engagement rate: 0.8% (campaign avg: 2.3%)", "CTR: 0.4% vs 1.2% campaign average", "Zero conversions attributed in last 7 days"},
		"+$3.5K reallocation", 90},
}

// GenerateInsights returns the curated recommendation set dated relative to
// end. anomalies is accepted for future correlation and currently unused.
func GenerateInsights(end time.Time, anomalies []models.Anomaly) []models.Insight {
	out := make([]models.Insight, 0, len(curated))
	for i, t := range curated {
		out = append(out, models.Insight{
			ID:                t.id,
			CreatedAt:         end.AddDate(0, 0, -t.daysAgo).Format(models.DateLayout),
			Scope:             t.scope,
			Category:          t.category,
			Region:            t.region,
			Campaign:          t.campaign,
			Channels:          append([]models.ChannelID(nil), t.channels...),
			Title:             t.title,
			RecommendedAction: t.action,
			Summary:           t.summary,
			Evidence:          append([]string(nil), t.evidence...),
			ImpactEstimate:    t.impact,
			Confidence:        t.confidence,
			Status:            models.InsightNew,
			ActionSteps:       ActionSteps(t.category, i),
		})
	}
	return out
}
