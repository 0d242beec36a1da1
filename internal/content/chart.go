package content

import (
	"math"
	"strings"
	"unicode/utf16"

	"github.com/AngelCh415/stratis/internal/rng"
)

type MetricsHint string

const (
	HintROASFrequency MetricsHint = "roas-frequency"
	HintBudgetSpend   MetricsHint = "budget-spend"
)

// HintFor picks the chart family from an insight title.
func HintFor(title string) MetricsHint {
	if strings.Contains(title, "Pacing") || strings.Contains(title, "Budget") {
		return HintBudgetSpend
	}
	return HintROASFrequency
}

const (
	chartDays       = 42
	chartTodayIndex = 28
)

type ChartPoint struct {
	Day       int      `json:"day"`
	Label     string   `json:"label"`
	Primary   float64  `json:"primary"`
	Secondary float64  `json:"secondary"`
	Improved  *float64 `json:"improved,omitempty"`
}

type AdSet struct {
	Name        string  `json:"name"`
	Current     float64 `json:"current"`
	Recommended float64 `json:"recommended"`
}

type ChartData struct {
	Historical     []ChartPoint `json:"historical"`
	Predicted      []ChartPoint `json:"predicted"`
	Improved       []ChartPoint `json:"improved"`
	TodayIndex     int          `json:"todayIndex"`
	AdSets         []AdSet      `json:"adSets"`
	PrimaryLabel   string       `json:"primaryLabel"`
	SecondaryLabel string       `json:"secondaryLabel"`
	MetricTabs     []string     `json:"metricTabs"`
}

var adSetNames = []string{"Lookalike – US", "Interest – Auto Intenders", "Retarget – Site Visitors", "Broad – 25-54", "Custom – CRM Match"}

// hashID is the 31-multiplier string hash over UTF-16 units, absolute value.
func hashID(s string) int64 {
	var h int32
	for _, u := range utf16.Encode([]rune(s)) {
		h = h<<5 - h + int32(u)
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return v
}

// InsightChart builds the projection shown next to an insight. The series
// depend only on the insight id and hint.
func InsightChart(insightID string, hint MetricsHint) ChartData {
	seed := hashID(insightID)
	r := rng.New(uint32(seed))
	budget := hint == HintBudgetSpend

	cd := ChartData{TodayIndex: chartTodayIndex}
	if budget {
		cd.PrimaryLabel, cd.SecondaryLabel = "BUDGET TARGET", "ACTUAL SPEND"
		cd.MetricTabs = []string{"Spend Pacing", "Budget", "Forecast"}
	} else {
		cd.PrimaryLabel, cd.SecondaryLabel = "ROAS", "FREQUENCY"
		cd.MetricTabs = []string{"Comparison", "ROAS", "Frequency"}
	}

	var baseP, baseS, noiseP, noiseS, trend, improveDelta, floorP, floorS float64
	if budget {
		baseP = 400 + r.Float64()*600
		baseS = baseP * (0.7 + r.Float64()*0.15)
		noiseP, noiseS = 30, 50
		trend = 8 + r.Float64()*15
		improveDelta = 80 + r.Float64()*200
		floorP, floorS = 50, 30
	} else {
		baseP = 1.5 + r.Float64()*1.2
		baseS = 1.0 + r.Float64()*1.5
		noiseP, noiseS = 0.12, 0.1
		trend = (r.Float64() - 0.35) * 0.06
		improveDelta = 0.3 + r.Float64()*0.6
		floorP, floorS = 0.2, 0.2
	}

	p, s := baseP, baseS
	for d := 0; d < chartDays; d++ {
		n1 := (r.Float64() - 0.5) * noiseP * 2
		n2 := (r.Float64() - 0.5) * noiseS * 2
		p = math.Max(floorP, p+trend+n1)
		s = math.Max(floorS, s+trend*0.6+n2)

		pt := ChartPoint{Day: d, Label: dayLabel(d)}
		if budget {
			pt.Primary, pt.Secondary = roundTo(p, 0), roundTo(s, 0)
		} else {
			pt.Primary, pt.Secondary = roundTo(p, 1), roundTo(s, 1)
		}

		if d <= chartTodayIndex {
			cd.Historical = append(cd.Historical, pt)
			continue
		}
		cd.Predicted = append(cd.Predicted, pt)
		var imp float64
		if budget {
			imp = roundTo(p+improveDelta*(0.8+r.Float64()*0.4), 0)
		} else {
			imp = roundTo(p+improveDelta*(0.5+r.Float64()*0.5), 1)
		}
		withImp := pt
		withImp.Improved = &imp
		cd.Improved = append(cd.Improved, withImp)
	}

	numSets := 3 + int(seed%3)
	for i := 0; i < numSets; i++ {
		current := roundTo(1000+r.Float64()*4000, 2)
		shift := (r.Float64() - 0.3) * 0.4
		cd.AdSets = append(cd.AdSets, AdSet{
			Name:        adSetNames[i%len(adSetNames)],
			Current:     current,
			Recommended: roundTo(current*(1+shift), 2),
		})
	}
	return cd
}

func dayLabel(d int) string {
	switch d {
	case 0:
		return "APR 6"
	case chartTodayIndex:
		return "TODAY"
	case chartDays - 1:
		return "MAY 9"
	}
	return ""
}

// InterpolateImproved moves each improved point from its predicted value
// (t=0) to the full projection (t=1).
func InterpolateImproved(predicted, improved []ChartPoint, t float64) []ChartPoint {
	t = clamp01(t)
	out := make([]ChartPoint, len(improved))
	for i, imp := range improved {
		out[i] = imp
		if i >= len(predicted) || imp.Improved == nil {
			continue
		}
		base := predicted[i].Primary
		v := roundTo(base+(*imp.Improved-base)*t, 1)
		out[i].Improved = &v
	}
	return out
}

// InterpolateAdSets moves recommended budgets from current (t=0) to the full
// recommendation (t=1).
func InterpolateAdSets(sets []AdSet, t float64) []AdSet {
	t = clamp01(t)
	out := make([]AdSet, len(sets))
	for i, a := range sets {
		a.Recommended = roundTo(a.Current+(a.Recommended-a.Current)*t, 2)
		out[i] = a
	}
	return out
}

func clamp01(t float64) float64 { return math.Max(0, math.Min(1, t)) }

func roundTo(f float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Floor(f*p+0.5) / p
}
