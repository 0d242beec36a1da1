package metrics

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/AngelCh415/stratis/internal/catalog"
	"github.com/AngelCh415/stratis/internal/models"
)

var ErrBadQuery = errors.New("metrics: bad query")

// Source is what the service reads from; *store.MemoryStore satisfies it.
type Source interface {
	Get() (*models.Dataset, error)
	Aggregator() (*Aggregator, error)
}

type Service struct {
	src   Source
	today time.Time
}

// NewService anchors the date presets at today.
func NewService(src Source, today time.Time) *Service { return &Service{src: src, today: today} }

func norm(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func csvSet(s string) map[string]struct{} {
	out := map[string]struct{}{}
	for _, p := range strings.Split(s, ",") {
		p = norm(p)
		if p != "" {
			out[p] = struct{}{}
		}
	}
	return out
}

func csvList[T ~string](s string) []T {
	var out []T
	for p := range csvSet(s) {
		out = append(out, T(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

type ViewLevel string

const (
	ViewBrand    ViewLevel = "brand"
	ViewRegion   ViewLevel = "region"
	ViewCampaign ViewLevel = "campaign"
)

var Attribution = map[string]float64{
	"last-click":  1,
	"first-click": 0.85,
	"linear":      0.92,
	"data-driven": 1.05,
}

type Query struct {
	Preset      string
	Start, End  string
	Compare     bool
	Attribution string

	Regions    []models.RegionID
	Countries  []string
	Channels   []models.ChannelID
	Campaigns  []string
	Objectives []models.Objective
	Statuses   []models.CampaignStatus

	// drill-down
	SelectedRegion   models.RegionID
	SelectedCampaign string
}

// DateRange resolves a preset relative to today. A bare "custom" (no from/to)
// has nothing to keep and resolves like the 30d default.
func DateRange(preset string, today time.Time) (start, end string, err error) {
	end = today.Format(models.DateLayout)
	switch preset {
	case "7d":
		return today.AddDate(0, 0, -7).Format(models.DateLayout), end, nil
	case "14d":
		return today.AddDate(0, 0, -14).Format(models.DateLayout), end, nil
	case "30d", "", "custom":
		return today.AddDate(0, 0, -30).Format(models.DateLayout), end, nil
	case "90d":
		return today.AddDate(0, 0, -90).Format(models.DateLayout), end, nil
	case "ytd":
		return time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, time.UTC).Format(models.DateLayout), end, nil
	}
	return "", "", fmt.Errorf("%w: unknown preset %q", ErrBadQuery, preset)
}

// ParseQuery reads dashboard filters. Lists are comma separated.
func ParseQuery(v url.Values, today time.Time) (Query, error) {
	q := Query{
		Preset:           norm(v.Get("preset")),
		Attribution:      norm(v.Get("attribution")),
		Regions:          csvList[models.RegionID](v.Get("region")),
		Countries:        csvList[string](v.Get("country")),
		Channels:         csvList[models.ChannelID](v.Get("channel")),
		Campaigns:        csvList[string](v.Get("campaign")),
		Objectives:       csvList[models.Objective](v.Get("objective")),
		Statuses:         csvList[models.CampaignStatus](v.Get("status")),
		SelectedRegion:   models.RegionID(norm(v.Get("selectedRegion"))),
		SelectedCampaign: norm(v.Get("selectedCampaign")),
	}
	if c := v.Get("compare"); c != "" {
		b, err := strconv.ParseBool(c)
		if err != nil {
			return q, fmt.Errorf("%w: compare %q", ErrBadQuery, c)
		}
		q.Compare = b
	}
	if q.Attribution == "" {
		q.Attribution = "last-click"
	}
	if _, ok := Attribution[q.Attribution]; !ok {
		return q, fmt.Errorf("%w: attribution %q", ErrBadQuery, q.Attribution)
	}

	from, to := v.Get("from"), v.Get("to")
	if from != "" || to != "" {
		q.Preset = "custom"
		if _, err := time.Parse(models.DateLayout, from); err != nil {
			return q, fmt.Errorf("%w: from %q", ErrBadQuery, from)
		}
		if _, err := time.Parse(models.DateLayout, to); err != nil {
			return q, fmt.Errorf("%w: to %q", ErrBadQuery, to)
		}
		if from > to {
			return q, fmt.Errorf("%w: from after to", ErrBadQuery)
		}
		q.Start, q.End = from, to
		return q, nil
	}
	if q.Preset == "" || q.Preset == "custom" {
		q.Preset = "30d"
	}
	start, end, err := DateRange(q.Preset, today)
	if err != nil {
		return q, err
	}
	q.Start, q.End = start, end
	return q, nil
}

// PreviousPeriod is the window of the same length ending the day before start.
func PreviousPeriod(start, end string) (string, string, error) {
	s, err := time.Parse(models.DateLayout, start)
	if err != nil {
		return "", "", fmt.Errorf("%w: start %q", ErrBadQuery, start)
	}
	e, err := time.Parse(models.DateLayout, end)
	if err != nil {
		return "", "", fmt.Errorf("%w: end %q", ErrBadQuery, end)
	}
	n := int(e.Sub(s).Hours() / 24)
	if n == 0 {
		n = 1
	}
	return s.AddDate(0, 0, -n).Format(models.DateLayout), s.AddDate(0, 0, -1).Format(models.DateLayout), nil
}

type TimePoint struct {
	Date           string  `json:"date"`
	Spend          float64 `json:"spend"`
	Impressions    int64   `json:"impressions"`
	Reach          int64   `json:"reach"`
	Clicks         int64   `json:"clicks"`
	Conversions    int64   `json:"conversions"`
	Revenue        float64 `json:"revenue"`
	ROAS           float64 `json:"roas"`
	CTR            float64 `json:"ctr"`
	CPC            float64 `json:"cpc"`
	CPM            float64 `json:"cpm"`
	CPA            float64 `json:"cpa"`
	EngagementRate float64 `json:"engagementRate"`
}

type RegionRow struct {
	Region        models.RegionID        `json:"region"`
	RegionLabel   string                 `json:"regionLabel"`
	KPIs          models.AggregatedKPIs  `json:"kpis"`
	PreviousKPIs  *models.AggregatedKPIs `json:"previousKpis,omitempty"`
	CampaignCount int                    `json:"campaignCount"`
}

type CampaignRow struct {
	Campaign     models.Campaign        `json:"campaign"`
	KPIs         models.AggregatedKPIs  `json:"kpis"`
	PreviousKPIs *models.AggregatedKPIs `json:"previousKpis,omitempty"`
}

type CountryRow struct {
	CountryCode   string          `json:"countryCode"`
	CountryName   string          `json:"countryName"`
	Region        models.RegionID `json:"regionId"`
	CampaignCount int             `json:"campaignCount"`
	Spend         float64         `json:"spend"`
}

type Mover struct {
	Label     string          `json:"label"`
	Region    models.RegionID `json:"region"`
	ROASDelta float64         `json:"roasDelta"`
	CPADelta  float64         `json:"cpaDelta"`
}

type Dashboard struct {
	ViewLevel      ViewLevel                                  `json:"viewLevel"`
	Start          string                                     `json:"start"`
	End            string                                     `json:"end"`
	PreviousStart  string                                     `json:"previousStart,omitempty"`
	PreviousEnd    string                                     `json:"previousEnd,omitempty"`
	CurrentKPIs    models.AggregatedKPIs                      `json:"currentKpis"`
	PreviousKPIs   *models.AggregatedKPIs                     `json:"previousKpis,omitempty"`
	Deltas         map[models.KPIKey]models.KPIDelta          `json:"deltas,omitempty"`
	TimeSeries     []TimePoint                                `json:"timeSeries"`
	Regions        []RegionRow                                `json:"regionData"`
	Campaigns      []CampaignRow                              `json:"campaignData"`
	Channels       map[models.ChannelID]models.AggregatedKPIs `json:"channelData"`
	Countries      []CountryRow                               `json:"countryData"`
	TopImproving   []Mover                                    `json:"topImproving"`
	TopDeclining   []Mover                                    `json:"topDeclining"`
	Anomalies      []models.Anomaly                           `json:"anomalies"`
	ScopedInsights []models.Insight                           `json:"scopedInsights"`
	Selected       *models.Campaign                           `json:"selectedCampaign,omitempty"`
}

type slicer struct {
	ds       *models.Dataset
	agg      *Aggregator
	mult     float64
	channels map[models.ChannelID]bool
}

func (s slicer) adjust(d models.DailyMetrics) models.DailyMetrics {
	d.Conversions = roundInt(float64(d.Conversions) * s.mult)
	d.Revenue *= s.mult
	d.AssistedConversions = roundInt(float64(d.AssistedConversions) * s.mult)
	return d
}

// collect merges the attributed records of camps within [start, end] by date.
func (s slicer) collect(camps []models.Campaign, start, end string) []models.DailyMetrics {
	byDate := map[string]*models.DailyMetrics{}
	for _, c := range camps {
		byCh, ok := s.ds.DailyData[c.ID]
		if !ok {
			continue
		}
		for _, ch := range c.Channels {
			if len(s.channels) > 0 && !s.channels[ch] {
				continue
			}
			for _, d := range byCh[ch] {
				if d.Date < start || d.Date > end {
					continue
				}
				d = s.adjust(d)
				if cur, ok := byDate[d.Date]; ok {
					cur.Add(d)
					continue
				}
				cp := d
				byDate[d.Date] = &cp
			}
		}
	}
	out := make([]models.DailyMetrics, 0, len(byDate))
	for _, d := range byDate {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

func (s slicer) kpis(camps []models.Campaign, start, end string) models.AggregatedKPIs {
	return s.agg.Aggregate(s.collect(camps, start, end))
}

func in[T comparable](xs []T, x T) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

func filterCampaigns(all []models.Campaign, q Query) []models.Campaign {
	var out []models.Campaign
	for _, c := range all {
		if len(q.Regions) > 0 && !in(q.Regions, c.Region) {
			continue
		}
		if len(q.Countries) > 0 {
			hit := false
			for _, code := range c.Countries {
				if in(q.Countries, code) {
					hit = true
					break
				}
			}
			if !hit {
				continue
			}
		}
		if len(q.Objectives) > 0 && !in(q.Objectives, c.Objective) {
			continue
		}
		if len(q.Statuses) > 0 && !in(q.Statuses, c.Status) {
			continue
		}
		if len(q.Campaigns) > 0 && !in(q.Campaigns, c.ID) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Dashboard slices the dataset by q: filters, drill-down, attribution and
// optional comparison with the previous period.
func (s *Service) Dashboard(q Query) (Dashboard, error) {
	ds, err := s.src.Get()
	if err != nil {
		return Dashboard{}, err
	}
	agg, err := s.src.Aggregator()
	if err != nil {
		return Dashboard{}, err
	}
	if q.Start == "" || q.End == "" {
		if q.Start, q.End, err = DateRange(q.Preset, s.today); err != nil {
			return Dashboard{}, err
		}
	}
	mult, ok := Attribution[q.Attribution]
	if !ok {
		mult = 1
	}
	sl := slicer{ds: ds, agg: agg, mult: mult, channels: map[models.ChannelID]bool{}}
	for _, ch := range q.Channels {
		sl.channels[ch] = true
	}

	out := Dashboard{ViewLevel: ViewBrand, Start: q.Start, End: q.End}
	var prevStart, prevEnd string
	if q.Compare {
		if prevStart, prevEnd, err = PreviousPeriod(q.Start, q.End); err != nil {
			return Dashboard{}, err
		}
		out.PreviousStart, out.PreviousEnd = prevStart, prevEnd
	}

	camps := filterCampaigns(ds.Campaigns, q)
	view := camps
	if q.SelectedRegion != "" {
		out.ViewLevel = ViewRegion
		view = nil
		for _, c := range camps {
			if c.Region == q.SelectedRegion {
				view = append(view, c)
			}
		}
	}
	if q.SelectedCampaign != "" {
		out.ViewLevel = ViewCampaign
		view = nil
		for _, c := range camps {
			if c.ID == q.SelectedCampaign {
				view = append(view, c)
			}
		}
		if c, ok := ds.Campaign(q.SelectedCampaign); ok {
			out.Selected = &c
		}
	}

	current := sl.collect(view, q.Start, q.End)
	out.CurrentKPIs = agg.Aggregate(current)
	if q.Compare {
		prev := sl.kpis(view, prevStart, prevEnd)
		out.PreviousKPIs = &prev
		out.Deltas = ComputeDeltas(out.CurrentKPIs, prev)
	}
	out.TimeSeries = timeSeries(current)

	for _, r := range catalog.Regions {
		var rc []models.Campaign
		for _, c := range camps {
			if c.Region == r {
				rc = append(rc, c)
			}
		}
		row := RegionRow{Region: r, RegionLabel: catalog.RegionLabels[r], KPIs: sl.kpis(rc, q.Start, q.End), CampaignCount: len(rc)}
		if q.Compare {
			prev := sl.kpis(rc, prevStart, prevEnd)
			row.PreviousKPIs = &prev
		}
		out.Regions = append(out.Regions, row)
	}

	out.Campaigns = make([]CampaignRow, 0, len(view))
	for _, c := range view {
		row := CampaignRow{Campaign: c, KPIs: sl.kpis([]models.Campaign{c}, q.Start, q.End)}
		if q.Compare {
			prev := sl.kpis([]models.Campaign{c}, prevStart, prevEnd)
			row.PreviousKPIs = &prev
		}
		out.Campaigns = append(out.Campaigns, row)
	}

	// channel breakdown ignores the channel filter
	chSlicer := sl
	out.Channels = make(map[models.ChannelID]models.AggregatedKPIs, len(catalog.Channels))
	for _, ch := range catalog.Channels {
		chSlicer.channels = map[models.ChannelID]bool{ch: true}
		out.Channels[ch] = chSlicer.kpis(view, q.Start, q.End)
	}

	out.Countries = countrySplit(out.Campaigns, q.Countries)
	if q.Compare {
		out.TopImproving, out.TopDeclining = movers(out.Regions)
	} else {
		out.TopImproving, out.TopDeclining = []Mover{}, []Mover{}
	}
	out.Anomalies = scopeAnomalies(ds.Anomalies, q)
	out.ScopedInsights = scopeInsights(ds.Insights, q)
	return out, nil
}

func timeSeries(days []models.DailyMetrics) []TimePoint {
	out := make([]TimePoint, 0, len(days))
	for _, d := range days {
		imp := float64(d.Impressions)
		if imp == 0 {
			imp = 1
		}
		clicks := float64(d.Clicks)
		if clicks == 0 {
			clicks = 1
		}
		out = append(out, TimePoint{
			Date: d.Date, Spend: d.Spend, Impressions: d.Impressions, Reach: d.Reach,
			Clicks: d.Clicks, Conversions: d.Conversions, Revenue: d.Revenue,
			ROAS:           safeDiv(d.Revenue, d.Spend),
			CTR:            float64(d.Clicks) / imp * 100,
			CPC:            d.Spend / clicks,
			CPM:            d.Spend / imp * 1000,
			CPA:            safeDiv(d.Spend, float64(d.Conversions)),
			EngagementRate: float64(d.Engagements) / imp * 100,
		})
	}
	return out
}

// countrySplit spreads each campaign's spend evenly over its countries.
func countrySplit(rows []CampaignRow, only []string) []CountryRow {
	acc := map[string]*CountryRow{}
	for _, r := range rows {
		n := len(r.Campaign.Countries)
		if n == 0 {
			continue
		}
		per := r.KPIs.Spend / float64(n)
		for _, code := range r.Campaign.Countries {
			c, ok := acc[code]
			if !ok {
				c = &CountryRow{CountryCode: code, CountryName: catalog.CountryName(code), Region: catalog.CountryRegions[code]}
				acc[code] = c
			}
			c.Spend += per
			c.CampaignCount++
		}
	}
	out := make([]CountryRow, 0, len(acc))
	for code, c := range acc {
		if len(only) > 0 && !in(only, code) {
			continue
		}
		out = append(out, *c)
	}
	// orden determinista
	sort.Slice(out, func(i, j int) bool { return out[i].CountryCode < out[j].CountryCode })
	return out
}

func pctChange(cur, prev float64) float64 {
	if prev <= 0 {
		return 0
	}
	return (cur - prev) / prev * 100
}

// movers ranks regions by ROAS change, top 3 each way.
func movers(regions []RegionRow) (improving, declining []Mover) {
	improving, declining = []Mover{}, []Mover{}
	for _, r := range regions {
		if r.PreviousKPIs == nil {
			continue
		}
		m := Mover{
			Label:     r.RegionLabel,
			Region:    r.Region,
			ROASDelta: pctChange(r.KPIs.ROAS, r.PreviousKPIs.ROAS),
			CPADelta:  pctChange(r.KPIs.CPA, r.PreviousKPIs.CPA),
		}
		switch {
		case m.ROASDelta > 0:
			improving = append(improving, m)
		case m.ROASDelta < 0:
			declining = append(declining, m)
		}
	}
	sort.SliceStable(improving, func(i, j int) bool { return improving[i].ROASDelta > improving[j].ROASDelta })
	sort.SliceStable(declining, func(i, j int) bool { return declining[i].ROASDelta < declining[j].ROASDelta })
	if len(improving) > 3 {
		improving = improving[:3]
	}
	if len(declining) > 3 {
		declining = declining[:3]
	}
	return improving, declining
}

func scopeAnomalies(all []models.Anomaly, q Query) []models.Anomaly {
	out := []models.Anomaly{}
	for _, a := range all {
		if a.Date < q.Start || a.Date > q.End {
			continue
		}
		if len(q.Regions) > 0 && !in(q.Regions, a.Region) {
			continue
		}
		if len(q.Campaigns) > 0 && a.Campaign != "" && !in(q.Campaigns, a.Campaign) {
			continue
		}
		if len(q.Channels) > 0 && a.Channel != "" && !in(q.Channels, a.Channel) {
			continue
		}
		if q.SelectedRegion != "" && a.Region != q.SelectedRegion {
			continue
		}
		if q.SelectedCampaign != "" && a.Campaign != q.SelectedCampaign {
			continue
		}
		out = append(out, a)
	}
	return out
}

func scopeInsights(all []models.Insight, q Query) []models.Insight {
	out := []models.Insight{}
	for _, it := range all {
		if it.CreatedAt < q.Start || it.CreatedAt > q.End {
			continue
		}
		if len(q.Regions) > 0 && it.Region != "" && !in(q.Regions, it.Region) {
			continue
		}
		if len(q.Campaigns) > 0 && it.Campaign != "" && !in(q.Campaigns, it.Campaign) {
			continue
		}
		if len(q.Channels) > 0 && len(it.Channels) > 0 && !overlaps(q.Channels, it.Channels) {
			continue
		}
		if q.SelectedRegion != "" && it.Region != "" && it.Region != q.SelectedRegion {
			continue
		}
		if q.SelectedCampaign != "" && it.Campaign != "" && it.Campaign != q.SelectedCampaign {
			continue
		}
		out = append(out, it)
	}
	return out
}

func overlaps[T comparable](a, b []T) bool {
	for _, x := range b {
		if in(a, x) {
			return true
		}
	}
	return false
}

// Listings

func (s *Service) Campaigns(v url.Values) ([]models.Campaign, error) {
	ds, err := s.src.Get()
	if err != nil {
		return nil, err
	}
	q := Query{
		Regions:    csvList[models.RegionID](v.Get("region")),
		Objectives: csvList[models.Objective](v.Get("objective")),
		Statuses:   csvList[models.CampaignStatus](v.Get("status")),
	}
	rows := filterCampaigns(ds.Campaigns, q)
	limit, offset := clampLimitOffset(atoiDef(v.Get("limit"), 100), atoiDef(v.Get("offset"), 0), len(rows))
	return paginate(rows, limit, offset), nil
}

func (s *Service) Anomalies(v url.Values) ([]models.Anomaly, error) {
	ds, err := s.src.Get()
	if err != nil {
		return nil, err
	}
	regions := csvSet(v.Get("region"))
	channels := csvSet(v.Get("channel"))
	sev := csvSet(v.Get("severity"))
	kpis := csvSet(v.Get("metric"))
	camp := norm(v.Get("campaign"))
	rows := []models.Anomaly{}
	for _, a := range ds.Anomalies {
		if !member(regions, string(a.Region)) || !member(channels, string(a.Channel)) ||
			!member(sev, string(a.Severity)) || !member(kpis, norm(string(a.Metric))) {
			continue
		}
		if camp != "" && a.Campaign != camp {
			continue
		}
		rows = append(rows, a)
	}
	limit, offset := clampLimitOffset(atoiDef(v.Get("limit"), 100), atoiDef(v.Get("offset"), 0), len(rows))
	return paginate(rows, limit, offset), nil
}

func (s *Service) News(v url.Values) ([]models.NewsItem, error) {
	ds, err := s.src.Get()
	if err != nil {
		return nil, err
	}
	tagSet := csvSet(v.Get("tag"))
	regions := csvSet(v.Get("region"))
	urgency := csvSet(v.Get("urgency"))
	rows := []models.NewsItem{}
	for _, n := range ds.News {
		if !member(urgency, string(n.Urgency)) || !anyMember(tagSet, n.Tags) || !anyMember(regions, n.Regions) {
			continue
		}
		rows = append(rows, n)
	}
	limit, offset := clampLimitOffset(atoiDef(v.Get("limit"), 100), atoiDef(v.Get("offset"), 0), len(rows))
	return paginate(rows, limit, offset), nil
}

func (s *Service) Insights(v url.Values) ([]models.Insight, error) {
	ds, err := s.src.Get()
	if err != nil {
		return nil, err
	}
	cats := csvSet(v.Get("category"))
	scopes := csvSet(v.Get("scope"))
	regions := csvSet(v.Get("region"))
	rows := []models.Insight{}
	for _, it := range ds.Insights {
		if !member(cats, string(it.Category)) || !member(scopes, string(it.Scope)) || !member(regions, string(it.Region)) {
			continue
		}
		rows = append(rows, it)
	}
	limit, offset := clampLimitOffset(atoiDef(v.Get("limit"), 100), atoiDef(v.Get("offset"), 0), len(rows))
	return paginate(rows, limit, offset), nil
}

// member is true for an empty filter.
func member(set map[string]struct{}, v string) bool {
	if len(set) == 0 {
		return true
	}
	_, ok := set[v]
	return ok
}

func anyMember[T ~string](set map[string]struct{}, vs []T) bool {
	if len(set) == 0 {
		return true
	}
	for _, v := range vs {
		if _, ok := set[string(v)]; ok {
			return true
		}
	}
	return false
}

func paginate[T any](rows []T, limit, offset int) []T {
	if offset >= len(rows) {
		return []T{}
	}
	end := offset + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end]
}

func atoiDef(s string, d int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return d
	}
	return v
}

func clampLimitOffset(limit, offset, n int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = n
	}
	if limit > 1000 {
		limit = 1000
	} // tope sano
	if offset > n {
		offset = n
	}
	return limit, offset
}

func roundInt(f float64) int64 { return int64(math.Floor(f + 0.5)) }
