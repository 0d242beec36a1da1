package synth

import (
	"fmt"
	"math"
	"time"

	"github.com/AngelCh415/stratis/internal/catalog"
	"github.com/AngelCh415/stratis/internal/models"
	"github.com/AngelCh415/stratis/internal/rng"
)

const (
	DefaultDays = 180
	minSpend    = 10
)

var DefaultEnd = time.Date(2026, time.February, 11, 0, 0, 0, 0, time.UTC)

// Window is the historical range: Days calendar days ending at End (inclusive).
type Window struct {
	End  time.Time
	Days int
}

func DefaultWindow() Window { return Window{End: DefaultEnd, Days: DefaultDays} }

func (w Window) Start() time.Time { return w.Day(0) }

// Day returns the date of offset d, 0 being the first day of the window.
func (w Window) Day(d int) time.Time {
	y, m, dd := w.End.UTC().Date()
	end := time.Date(y, m, dd, 0, 0, 0, 0, time.UTC)
	return end.AddDate(0, 0, -(w.Days - 1 - d))
}

type multipliers struct{ spend, cvr, engage float64 }

func eventMultipliers(events []catalog.Event, day int, region models.RegionID) multipliers {
	m := multipliers{1, 1, 1}
	for _, e := range events {
		if e.Active(day, region) {
			m.spend *= e.SpendMult
			m.cvr *= e.CVRMult
			m.engage *= e.EngageMult
		}
	}
	return m
}

// Generate synthesizes one ascending daily series per (campaign, channel).
// Draw order against r is campaign -> channel -> day and must not change.
func Generate(r *rng.Rand, defs []catalog.CampaignDef, events []catalog.Event, w Window) (models.DailyData, error) {
	if w.Days <= 0 {
		return nil, fmt.Errorf("synth: window must have at least one day, got %d", w.Days)
	}
	data := make(models.DailyData, len(defs))
	for _, c := range defs {
		regionMult, err := catalog.RegionMultiplier(c.Region)
		if err != nil {
			return nil, fmt.Errorf("campaign %s: %w", c.ID, err)
		}
		data[c.ID] = make(map[models.ChannelID][]models.DailyMetrics, len(c.Channels))
		for _, ch := range c.Channels {
			profile, err := catalog.Profile(ch)
			if err != nil {
				return nil, fmt.Errorf("campaign %s: %w", c.ID, err)
			}
			days := make([]models.DailyMetrics, 0, w.Days)
			for d := 0; d < w.Days; d++ {
				days = append(days, day(r, c, profile, regionMult, events, w, d))
			}
			data[c.ID][ch] = days
		}
	}
	return data, nil
}

func day(r *rng.Rand, c catalog.CampaignDef, p catalog.ChannelProfile, regionMult float64, events []catalog.Event, w Window, d int) models.DailyMetrics {
	date := w.Day(d)
	weekendMult := 1.0
	if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
		weekendMult = 0.75
	}
	seasonality := 1 + 0.1*math.Sin(float64(d)/float64(w.Days)*math.Pi*2)
	ev := eventMultipliers(events, d, c.Region)

	noise := 1 + r.Gaussian()*p.Volatility
	spend := math.Max(minSpend, p.BaseSpend*c.BudgetMultiplier*regionMult*weekendMult*seasonality*ev.spend*math.Max(0.3, noise))

	// el piso de 0.5 evita CPM negativo sin consumir draws extra
	cpm := r.Uniform(p.CPMRange[0], p.CPMRange[1]) * math.Max(0.5, 1+r.Gaussian()*0.1)
	impressions := round(spend / cpm * 1000)
	reach := round(float64(impressions) * r.Uniform(0.6, 0.85))

	ctr := r.Uniform(p.CTRRange[0], p.CTRRange[1]) * math.Max(0.5, 1+r.Gaussian()*0.15) / 100
	clicks := round(float64(impressions) * ctr)

	lpv := round(float64(clicks) * r.Uniform(0.5, 0.8))

	cvr := r.Uniform(p.CVRRange[0], p.CVRRange[1]) * ev.cvr * math.Max(0.3, 1+r.Gaussian()*0.15) / 100
	conversions := max0(round(float64(clicks) * cvr))
	leads := round(float64(conversions) * r.Uniform(1.5, 3))

	orderValue := r.Uniform(190, 440)
	revenue := float64(conversions) * orderValue * r.Uniform(0.8, 1.2)

	views3s := round(float64(impressions) * p.VideoViewRate * r.Uniform(0.8, 1.2))
	thruplay := round(float64(views3s) * p.VideoCompletionRate * r.Uniform(0.7, 1.3))
	engagements := round(float64(impressions) * p.EngagementMultiplier * ev.engage * r.Uniform(0.01, 0.04))
	assisted := round(float64(conversions) * r.Uniform(0.2, 0.5))

	return models.DailyMetrics{
		Date:                date.Format(models.DateLayout),
		Spend:               spend,
		Impressions:         impressions,
		Reach:               reach,
		Clicks:              clicks,
		LandingPageViews:    lpv,
		Leads:               leads,
		Conversions:         conversions,
		Revenue:             revenue,
		VideoViews3s:        views3s,
		VideoViewsThruplay:  thruplay,
		Engagements:         engagements,
		AssistedConversions: assisted,
	}
}

// round is half-up, matching the dashboard's rounding of counters.
func round(f float64) int64 { return int64(math.Floor(f + 0.5)) }

func max0(i int64) int64 {
	if i < 0 {
		return 0
	}
	return i
}
