package content

import (
	"fmt"
	"sort"
	"time"

	"github.com/AngelCh415/stratis/internal/catalog"
	"github.com/AngelCh415/stratis/internal/models"
	"github.com/AngelCh415/stratis/internal/rng"
)

const (
	DefaultNewsCount = 80
	newsLookbackDays = 89
)

var (
	newsSources = []string{"Automotive News", "Reuters", "AdAge", "TechCrunch", "Bloomberg", "Campaign", "The Drum"}
	competitors = []string{"BMW", "Mercedes-Benz", "Audi", "Tesla", "Lexus"}
	continents  = []string{"North America", "Europe", "Asia"}
)

type newsTemplate struct {
	title        func(r *rng.Rand, competitor string) string
	tags         []models.NewsTag
	urgency      models.NewsUrgency
	summary      string
	whyItMatters string
	competitor   bool
}

func fixed(s string) func(*rng.Rand, string) string {
	return func(*rng.Rand, string) string { return s }
}

func tags(t ...models.NewsTag) []models.NewsTag { return t }

// newsTemplates builds the template table. Summaries that name a competitor
// draw it here, once per table, in table order.
func newsTemplates(r *rng.Rand) []newsTemplate {
	return []newsTemplate{
		{
			title: func(r *rng.Rand, c string) string {
				return fmt.Sprintf("%s Announces Major EV Investment in %s", c, rng.MustPick(r, continents))
			},
			tags: tags(models.TagCompetitor), urgency: models.UrgencyHigh,
			summary:      fmt.Sprintf("%s is scaling up electric vehicle production with a multi-billion dollar factory expansion.", rng.MustPick(r, competitors)),
			whyItMatters: "Direct competitive pressure on Taycan positioning and market share.", competitor: true,
		},
		{title: fixed("TikTok Updates Creator Fund Algorithm for Auto Content"), tags: tags(models.TagPlatform), urgency: models.UrgencyMedium,
			summary:      "TikTok is adjusting algorithm weights for automotive content creators, potentially affecting organic reach for brand accounts.",
			whyItMatters: "May impact TikTok campaign performance metrics and organic discovery."},
		{title: fixed("Global Luxury Car Sales Rise 8% YoY in Latest Quarter"), tags: tags(models.TagCategory), urgency: models.UrgencyLow,
			summary:      "Industry-wide luxury car sales show continued growth driven by strong demand in North America and Middle East markets.",
			whyItMatters: "Positive macro trend supports increased investment in performance campaigns."},
		{
			title:        func(_ *rng.Rand, c string) string { return c + " Launches Aggressive Digital Campaign Targeting Porsche Owners" },
			tags:         tags(models.TagCompetitor), urgency: models.UrgencyHigh,
			summary:      fmt.Sprintf("Competitive intelligence indicates %s is running conquest campaigns specifically targeting Porsche intenders.", rng.MustPick(r, competitors)),
			whyItMatters: "Defensive strategy needed in affected regions to protect market share.", competitor: true,
		},
		{title: fixed("Meta Introduces New Advantage+ Creative Optimization"), tags: tags(models.TagPlatform), urgency: models.UrgencyMedium,
			summary:      "Meta rolls out enhanced AI-driven creative optimization tools that could improve Facebook and Instagram campaign performance.",
			whyItMatters: "New creative optimization features could reduce CPA across Meta channels."},
		{title: fixed("Google Search Adds AI-Powered Shopping Experience"), tags: tags(models.TagPlatform), urgency: models.UrgencyHigh,
			summary:      "Google is expanding AI-generated shopping results that could change how automotive search ads appear in results.",
			whyItMatters: "Search campaign strategy may need adjustment for new SERP layouts."},
		{title: fixed("EU Proposes Stricter Digital Advertising Regulations"), tags: tags(models.TagMacro), urgency: models.UrgencyMedium,
			summary:      "European Parliament proposes new regulations on targeted digital advertising that could affect personalization capabilities.",
			whyItMatters: "May require campaign targeting adjustments in European markets."},
		{title: fixed("Middle East Luxury Goods Market Forecast Upgraded"), tags: tags(models.TagMacro, models.TagCategory), urgency: models.UrgencyLow,
			summary:      "Analysts upgrade Middle East luxury market forecast citing strong oil revenues and tourism growth.",
			whyItMatters: "Opportunity to increase investment in Middle East performance campaigns."},
		{title: fixed("APAC Currency Volatility Increases Marketing Costs"), tags: tags(models.TagMacro), urgency: models.UrgencyHigh,
			summary:      "Currency fluctuations in APAC region are increasing effective CPMs and overall marketing costs.",
			whyItMatters: "Budget pacing in APAC may need adjustment to maintain efficiency targets."},
		{
			title:        func(_ *rng.Rand, c string) string { return c + " Reports Record Q4 Digital Ad Spend" },
			tags:         tags(models.TagCompetitor), urgency: models.UrgencyMedium,
			summary:      fmt.Sprintf("%s significantly increased digital advertising investment, signaling heightened competitive intensity.", rng.MustPick(r, competitors)),
			whyItMatters: "Share of voice may decline without proportional spend increases.", competitor: true,
		},
		{title: fixed("The Trade Desk Launches New CTV Targeting Features"), tags: tags(models.TagPlatform), urgency: models.UrgencyMedium,
			summary:      "TTD introduces enhanced connected TV targeting capabilities with first-party data integration.",
			whyItMatters: "New upper-funnel targeting options could improve awareness campaign efficiency."},
		{title: fixed("Global EV Adoption Accelerates Beyond Forecasts"), tags: tags(models.TagCategory), urgency: models.UrgencyLow,
			summary:      "Electric vehicle adoption rates exceed analyst expectations across all major markets.",
			whyItMatters: "Supports increased investment in Taycan-focused campaigns across regions."},
		{title: fixed("Instagram Reels Engagement Surpasses TikTok in Key Demographics"), tags: tags(models.TagPlatform), urgency: models.UrgencyMedium,
			summary:      "New data shows Instagram Reels outperforming TikTok for engagement among luxury auto intenders aged 35-54.",
			whyItMatters: "Consider shifting video content budget allocation between platforms."},
		{title: fixed("UK Auto Market Shows Signs of Recovery"), tags: tags(models.TagMacro, models.TagCategory), urgency: models.UrgencyLow,
			summary:      "UK automotive registrations up 12% following post-Brexit trade stabilization.",
			whyItMatters: "Favorable conditions for scaling UK campaign budgets."},
		{title: fixed("LATAM Digital Ad Market Grows 25% YoY"), tags: tags(models.TagMacro), urgency: models.UrgencyMedium,
			summary:      "Latin American digital advertising market experiences rapid growth driven by increasing internet penetration.",
			whyItMatters: "Growing addressable audience supports LATAM campaign expansion."},
		{
			title:        func(_ *rng.Rand, c string) string { return c + " Shifts 40% of Budget to Performance Max" },
			tags:         tags(models.TagCompetitor), urgency: models.UrgencyMedium,
			summary:      fmt.Sprintf("%s reportedly moving significant budget to Google Performance Max campaigns.", rng.MustPick(r, competitors)),
			whyItMatters: "Competitor adoption may increase auction pressure on Performance Max.", competitor: true,
		},
		{title: fixed("New Privacy Regulations Impact Cross-Border Targeting"), tags: tags(models.TagMacro, models.TagPlatform), urgency: models.UrgencyHigh,
			summary:      "New data privacy frameworks across multiple regions are limiting cross-border audience targeting capabilities.",
			whyItMatters: "Regional targeting strategies need review for compliance and effectiveness."},
		{title: fixed("Connected Car Data Opens New Marketing Channels"), tags: tags(models.TagCategory, models.TagPlatform), urgency: models.UrgencyLow,
			summary:      "Automotive OEMs explore first-party connected car data for targeted marketing and customer retention.",
			whyItMatters: "Potential new channel for existing owner engagement and upsell campaigns."},
	}
}

// GenerateNews produces count items dated within the 90 days ending at end,
// newest first.
func GenerateNews(r *rng.Rand, end time.Time, count int) []models.NewsItem {
	templates := newsTemplates(r)
	items := make([]models.NewsItem, 0, count)
	for i := 0; i < count; i++ {
		t := templates[i%len(templates)]
		daysAgo := r.Int(0, newsLookbackDays)
		date := end.AddDate(0, 0, -daysAgo).Format(models.DateLayout)
		var competitor string
		if t.competitor {
			competitor = rng.MustPick(r, competitors)
		}
		regions := rng.MustPickN(r, catalog.Regions, r.Int(1, 3))

		items = append(items, models.NewsItem{
			ID:           fmt.Sprintf("news-%d", i),
			Title:        t.title(r, competitor),
			Source:       rng.MustPick(r, newsSources),
			Date:         date,
			Tags:         t.tags,
			Regions:      regions,
			Urgency:      t.urgency,
			Summary:      t.summary,
			WhyItMatters: t.whyItMatters,
			Competitor:   competitor,
		})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Date > items[j].Date })
	return items
}
