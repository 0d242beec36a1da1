package catalog

import (
	"math"

	"github.com/AngelCh415/stratis/internal/models"
)

type CampaignDef struct {
	ID               string
	Name             string
	Region           models.RegionID
	Objective        models.Objective
	Status           models.CampaignStatus
	Channels         []models.ChannelID
	Countries        []string
	BudgetMultiplier float64
}

// Event is a time-boxed multiplier rule over [DayOffset, DayOffset+Duration).
type Event struct {
	Name       string
	DayOffset  int
	Duration   int
	Regions    []models.RegionID
	SpendMult  float64
	CVRMult    float64
	EngageMult float64
}

func (e Event) Active(day int, region models.RegionID) bool {
	if day < e.DayOffset || day >= e.DayOffset+e.Duration {
		return false
	}
	for _, r := range e.Regions {
		if r == region {
			return true
		}
	}
	return false
}

const (
	ig  = models.ChannelInstagram
	fb  = models.ChannelFacebook
	tt  = models.ChannelTikTok
	gs  = models.ChannelGoogleSearch
	ttd = models.ChannelTTD

	awareness     = models.ObjectiveAwareness
	consideration = models.ObjectiveConsideration
	performance   = models.ObjectivePerformance
	live          = models.StatusLive
	paused        = models.StatusPaused
)

func chs(c ...models.ChannelID) []models.ChannelID { return c }
func cc(c ...string) []string                    { return c }

var CampaignDefs = []CampaignDef{
	// North America
	{"na-taycan-launch", "NA Taycan Launch", models.RegionNorthAmerica, awareness, live, chs(ig, fb, tt, ttd), cc("840", "124"), 1.5},
	{"na-911-performance", "NA 911 Performance", models.RegionNorthAmerica, performance, live, chs(gs, fb, ig), cc("840"), 1.2},
	{"na-cayenne-summer", "NA Cayenne Summer", models.RegionNorthAmerica, consideration, live, chs(ig, tt, ttd, fb), cc("840", "124", "484"), 1.0},
	{"na-macan-retarget", "NA Macan Retargeting", models.RegionNorthAmerica, performance, paused, chs(gs, fb, ttd), cc("840"), 0.7},
	{"na-brand-always-on", "NA Brand Always-On", models.RegionNorthAmerica, awareness, live, chs(ig, fb, tt, gs, ttd), cc("840", "124", "484"), 0.9},
	// Europe
	{"eu-911-heritage", "EU 911 Heritage", models.RegionEurope, awareness, live, chs(ig, fb, tt, ttd), cc("276", "250", "380", "724"), 1.3},
	{"eu-taycan-turbo", "EU Taycan Turbo", models.RegionEurope, performance, live, chs(gs, fb, ig, ttd), cc("276", "528", "756", "752", "578"), 1.1},
	{"eu-panamera-exec", "EU Panamera Executive", models.RegionEurope, consideration, live, chs(fb, gs, ttd), cc("276", "756", "040"), 0.8},
	{"eu-winter-driving", "EU Winter Driving", models.RegionEurope, awareness, paused, chs(ig, tt, fb), cc("752", "578", "246", "208"), 0.6},
	// UK
	{"uk-cayenne-summer", "UK Cayenne Summer", models.RegionUK, consideration, live, chs(ig, fb, gs, ttd), cc("826"), 1.0},
	{"uk-taycan-electric", "UK Taycan Electric", models.RegionUK, performance, live, chs(gs, fb, ttd), cc("826", "372"), 1.1},
	{"uk-911-heritage", "UK 911 Heritage", models.RegionUK, awareness, live, chs(ig, tt, fb), cc("826"), 0.7},
	{"uk-macan-launch", "UK Macan Launch", models.RegionUK, awareness, live, chs(ig, fb, tt, gs, ttd), cc("826", "372"), 1.2},
	// Middle East
	{"me-cayenne-luxury", "ME Cayenne Luxury", models.RegionMiddleEast, awareness, live, chs(ig, tt, ttd), cc("784", "682", "634"), 1.0},
	{"me-911-gt", "ME 911 GT Collection", models.RegionMiddleEast, performance, live, chs(gs, ig, fb), cc("784", "682", "414"), 0.9},
	{"me-taycan-desert", "ME Taycan Desert", models.RegionMiddleEast, consideration, live, chs(tt, ig, ttd), cc("784", "512", "048"), 0.8},
	{"me-panamera-vip", "ME Panamera VIP", models.RegionMiddleEast, performance, paused, chs(gs, fb), cc("682", "634"), 0.5},
	// APAC
	{"apac-taycan-launch", "APAC Taycan Launch", models.RegionAPAC, awareness, live, chs(ig, fb, tt, ttd), cc("156", "392", "410", "036"), 1.3},
	{"apac-cayenne-family", "APAC Cayenne Family", models.RegionAPAC, consideration, live, chs(fb, ig, gs), cc("036", "554", "702"), 0.9},
	{"apac-911-track", "APAC 911 Track Day", models.RegionAPAC, performance, live, chs(gs, ig, tt), cc("392", "410", "458"), 0.8},
	{"apac-brand-digital", "APAC Brand Digital", models.RegionAPAC, awareness, live, chs(tt, ig, ttd, fb), cc("356", "360", "764", "704", "608"), 0.7},
	// LATAM
	{"latam-cayenne-urban", "LATAM Cayenne Urban", models.RegionLATAM, consideration, live, chs(ig, fb, tt), cc("076", "032"), 0.8},
	{"latam-911-legend", "LATAM 911 Legend", models.RegionLATAM, awareness, live, chs(ig, tt, ttd), cc("076", "152", "170"), 0.7},
	{"latam-taycan-green", "LATAM Taycan Green", models.RegionLATAM, performance, live, chs(gs, fb), cc("076", "152"), 0.6},
	{"latam-macan-adventure", "LATAM Macan Adventure", models.RegionLATAM, awareness, paused, chs(ig, fb, tt, ttd), cc("032", "604", "170"), 0.5},
}

var Events = []Event{
	{"Taycan Product Launch", 45, 7, []models.RegionID{models.RegionNorthAmerica, models.RegionEurope, models.RegionUK}, 1.8, 1.3, 2.0},
	{"Competitive Surge BMW", 90, 10, []models.RegionID{models.RegionEurope}, 1.0, 0.8, 0.7},
	{"APAC Economic Softness", 120, 14, []models.RegionID{models.RegionAPAC}, 0.9, 0.65, 0.85},
	{"Holiday Shopping Surge", 70, 14, Regions, 1.3, 1.15, 1.4},
	{"TikTok Algorithm Shift", 100, 5, Regions, 1.0, 0.75, 1.6},
	{"Q4 Budget Push", 150, 10, []models.RegionID{models.RegionNorthAmerica, models.RegionEurope}, 1.5, 1.1, 1.1},
}

const budgetBase = 150000

// Campaigns materializes the catalog entries for a window starting at startDate.
func Campaigns(defs []CampaignDef, startDate string) []models.Campaign {
	out := make([]models.Campaign, 0, len(defs))
	for _, d := range defs {
		out = append(out, models.Campaign{
			ID:            d.ID,
			Name:          d.Name,
			Region:        d.Region,
			Objective:     d.Objective,
			Status:        d.Status,
			Channels:      append([]models.ChannelID(nil), d.Channels...),
			Countries:     append([]string(nil), d.Countries...),
			StartDate:     startDate,
			PlannedBudget: math.Round(d.BudgetMultiplier * RegionMultipliers[d.Region] * budgetBase),
		})
	}
	return out
}

func FindCampaign(defs []CampaignDef, id string) (CampaignDef, bool) {
	for _, d := range defs {
		if d.ID == id {
			return d, true
		}
	}
	return CampaignDef{}, false
}
