package models

import (
	"errors"
	"fmt"
	"math"
)

// DateLayout is the civil-date format used by every Date field.
const DateLayout = "2006-01-02"

type RegionID string

const (
	RegionNorthAmerica RegionID = "north-america"
	RegionEurope       RegionID = "europe"
	RegionUK           RegionID = "uk"
	RegionMiddleEast   RegionID = "middle-east"
	RegionAPAC         RegionID = "apac"
	RegionLATAM        RegionID = "latam"
)

type ChannelID string

const (
	ChannelInstagram    ChannelID = "instagram"
	ChannelFacebook     ChannelID = "facebook"
	ChannelTikTok       ChannelID = "tiktok"
	ChannelGoogleSearch ChannelID = "google-search"
	ChannelTTD          ChannelID = "ttd"
)

type Objective string

const (
	ObjectiveAwareness     Objective = "awareness"
	ObjectiveConsideration Objective = "consideration"
	ObjectivePerformance   Objective = "performance"
)

type CampaignStatus string

const (
	StatusLive   CampaignStatus = "live"
	StatusPaused CampaignStatus = "paused"
)

type Campaign struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Region        RegionID       `json:"region"`
	Objective     Objective      `json:"objective"`
	Status        CampaignStatus `json:"status"`
	Channels      []ChannelID    `json:"channels"`
	Countries     []string       `json:"countries"` // ISO 3166-1 numeric
	StartDate     string         `json:"startDate"`
	PlannedBudget float64        `json:"plannedBudget"`
}

func (c Campaign) HasChannel(ch ChannelID) bool {
	for _, x := range c.Channels {
		if x == ch {
			return true
		}
	}
	return false
}

type DailyMetrics struct {
	Date                string  `json:"date"`
	Spend               float64 `json:"spend"`
	Impressions         int64   `json:"impressions"`
	Reach               int64   `json:"reach"`
	Clicks              int64   `json:"clicks"`
	LandingPageViews    int64   `json:"landingPageViews"`
	Leads               int64   `json:"leads"`
	Conversions         int64   `json:"conversions"`
	Revenue             float64 `json:"revenue"`
	VideoViews3s        int64   `json:"videoViews3s"`
	VideoViewsThruplay  int64   `json:"videoViewsThruplay"`
	Engagements         int64   `json:"engagements"`
	AssistedConversions int64   `json:"assistedConversions"`
}

var ErrInvalidRecord = errors.New("invalid daily record")

// Validate rejects negative counters and non-finite or negative money.
func (d DailyMetrics) Validate() error {
	counters := []struct {
		name string
		v    int64
	}{
		{"impressions", d.Impressions}, {"reach", d.Reach}, {"clicks", d.Clicks},
		{"landingPageViews", d.LandingPageViews}, {"leads", d.Leads}, {"conversions", d.Conversions},
		{"videoViews3s", d.VideoViews3s}, {"videoViewsThruplay", d.VideoViewsThruplay},
		{"engagements", d.Engagements}, {"assistedConversions", d.AssistedConversions},
	}
	for _, c := range counters {
		if c.v < 0 {
			return fmt.Errorf("%w: %s %d on %q", ErrInvalidRecord, c.name, c.v, d.Date)
		}
	}
	if err := checkMoney("spend", d.Spend, d.Date); err != nil {
		return err
	}
	return checkMoney("revenue", d.Revenue, d.Date)
}

func checkMoney(name string, v float64, date string) error {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s %v on %q", ErrInvalidRecord, name, v, date)
	}
	return nil
}

// Add sums the raw counters of o into d. Date is left untouched.
func (d *DailyMetrics) Add(o DailyMetrics) {
	d.Spend += o.Spend
	d.Impressions += o.Impressions
	d.Reach += o.Reach
	d.Clicks += o.Clicks
	d.LandingPageViews += o.LandingPageViews
	d.Leads += o.Leads
	d.Conversions += o.Conversions
	d.Revenue += o.Revenue
	d.VideoViews3s += o.VideoViews3s
	d.VideoViewsThruplay += o.VideoViewsThruplay
	d.Engagements += o.Engagements
	d.AssistedConversions += o.AssistedConversions
}

// DailyData is campaignID -> channel -> ascending daily series.
type DailyData map[string]map[ChannelID][]DailyMetrics

type AggregatedKPIs struct {
	DailyMetrics

	Frequency           float64 `json:"frequency"`
	CTR                 float64 `json:"ctr"`
	CPC                 float64 `json:"cpc"`
	CPM                 float64 `json:"cpm"`
	LPVRate             float64 `json:"lpvRate"`
	CPL                 float64 `json:"cpl"`
	CPA                 float64 `json:"cpa"`
	ROAS                float64 `json:"roas"`
	VideoCompletionRate float64 `json:"videoCompletionRate"`
	EngagementRate      float64 `json:"engagementRate"`

	BrandSearchLift      float64 `json:"brandSearchLift"`
	ShareOfVoice         float64 `json:"shareOfVoice"`
	VolatilityScore      float64 `json:"volatilityScore"`
	AnomalyCount         int     `json:"anomalyCount"`
	BudgetPacing         float64 `json:"budgetPacing"`
	CreativeFatigueIndex float64 `json:"creativeFatigueIndex"`
}

type KPIDelta struct {
	Value         float64 `json:"value"`
	PreviousValue float64 `json:"previousValue"`
	Delta         float64 `json:"delta"`
	DeltaPercent  float64 `json:"deltaPercent"`
}

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

type Anomaly struct {
	ID          string    `json:"id"`
	Date        string    `json:"date"`
	Region      RegionID  `json:"region"`
	Campaign    string    `json:"campaign,omitempty"`
	Channel     ChannelID `json:"channel,omitempty"`
	Metric      KPIKey    `json:"metric"`
	Severity    Severity  `json:"severity"`
	ZScore      float64   `json:"zScore"`
	Description string    `json:"description"`
}

type NewsTag string

const (
	TagCompetitor NewsTag = "competitor"
	TagCategory   NewsTag = "category"
	TagPlatform   NewsTag = "platform"
	TagMacro      NewsTag = "macro"
)

type NewsUrgency string

const (
	UrgencyLow    NewsUrgency = "low"
	UrgencyMedium NewsUrgency = "medium"
	UrgencyHigh   NewsUrgency = "high"
)

type NewsItem struct {
	ID           string      `json:"id"`
	Title        string      `json:"title"`
	Source       string      `json:"source"`
	Date         string      `json:"date"`
	Tags         []NewsTag   `json:"tags"`
	Regions      []RegionID  `json:"regions"`
	Urgency      NewsUrgency `json:"urgency"`
	Summary      string      `json:"summary"`
	WhyItMatters string      `json:"whyItMatters"`
	Competitor   string      `json:"competitor,omitempty"`
}

type InsightCategory string

const (
	CategoryPerformance InsightCategory = "performance"
	CategoryCreative    InsightCategory = "creative"
	CategoryCompetitive InsightCategory = "competitive"
	CategoryPlatform    InsightCategory = "platform"
	CategoryMacro       InsightCategory = "macro"
)

type InsightScope string

const (
	ScopeBrand    InsightScope = "brand"
	ScopeRegion   InsightScope = "region"
	ScopeCampaign InsightScope = "campaign"
)

type InsightStatus string

const (
	InsightNew       InsightStatus = "new"
	InsightReviewed  InsightStatus = "reviewed"
	InsightApproved  InsightStatus = "approved"
	InsightDismissed InsightStatus = "dismissed"
	InsightSnoozed   InsightStatus = "snoozed"
)

type StepType string

const (
	StepBudget     StepType = "budget"
	StepCreative   StepType = "creative"
	StepTargeting  StepType = "targeting"
	StepBidding    StepType = "bidding"
	StepScheduling StepType = "scheduling"
)

type InsightActionStep struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Subtitle  string   `json:"subtitle"`
	Type      StepType `json:"type"`
	Completed bool     `json:"completed"`
}

type Insight struct {
	ID                string              `json:"id"`
	CreatedAt         string              `json:"createdAt"`
	Scope             InsightScope        `json:"scope"`
	Region            RegionID            `json:"region,omitempty"`
	Campaign          string              `json:"campaign,omitempty"`
	Channels          []ChannelID         `json:"channels"`
	Category          InsightCategory     `json:"category"`
	Title             string              `json:"title"`
	Summary           string              `json:"summary"`
	Evidence          []string            `json:"evidence"`
	Confidence        int                 `json:"confidence"`
	ImpactEstimate    string              `json:"impactEstimate"`
	RecommendedAction string              `json:"recommendedAction"`
	Status            InsightStatus       `json:"status"`
	LinkedNewsID      string              `json:"linkedNewsId,omitempty"`
	LinkedAnomalyID   string              `json:"linkedAnomalyId,omitempty"`
	ActionSteps       []InsightActionStep `json:"actionSteps"`

	// workflow, owned by the caller
	ApprovalRationale string `json:"approvalRationale,omitempty"`
	DismissReason     string `json:"dismissReason,omitempty"`
	SnoozeUntil       string `json:"snoozeUntil,omitempty"`
	ActionedAt        string `json:"actionedAt,omitempty"`
	ActionedBy        string `json:"actionedBy,omitempty"`
}

// Dataset is the full synthetic dataset. It is immutable once built.
type Dataset struct {
	Campaigns []Campaign `json:"campaigns"`
	DailyData DailyData  `json:"dailyData"`
	News      []NewsItem `json:"newsItems"`
	Insights  []Insight  `json:"insights"`
	Anomalies []Anomaly  `json:"anomalies"`
}

func (d *Dataset) Campaign(id string) (Campaign, bool) {
	for _, c := range d.Campaigns {
		if c.ID == id {
			return c, true
		}
	}
	return Campaign{}, false
}

func (d *Dataset) Insight(id string) (Insight, bool) {
	for _, in := range d.Insights {
		if in.ID == id {
			return in, true
		}
	}
	return Insight{}, false
}
