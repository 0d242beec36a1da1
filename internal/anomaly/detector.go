package anomaly

import (
	"fmt"
	"math"
	"sort"

	"github.com/montanaflynn/stats"

	"github.com/AngelCh415/stratis/internal/catalog"
	"github.com/AngelCh415/stratis/internal/models"
)

type Options struct {
	Window    int
	Threshold float64
	Medium    float64
	High      float64
	Limit     int
	Metrics   []models.KPIKey
}

func DefaultOptions() Options {
	return Options{
		Window:    30,
		Threshold: 2.5,
		Medium:    3,
		High:      3.5,
		Limit:     200,
		Metrics:   []models.KPIKey{models.KPISpend, models.KPIClicks, models.KPIConversions, models.KPIRevenue},
	}
}

// sane replaces out-of-range fields with their defaults. A window under one
// day has no statistics and negative thresholds would flag everything.
func (o Options) sane() Options {
	def := DefaultOptions()
	if o.Window < 1 {
		o.Window = def.Window
	}
	if o.Threshold < 0 {
		o.Threshold = def.Threshold
	}
	if o.Medium < 0 {
		o.Medium = def.Medium
	}
	if o.High < 0 {
		o.High = def.High
	}
	return o
}

func (o Options) severity(z float64) models.Severity {
	switch {
	case z > o.High:
		return models.SeverityHigh
	case z > o.Medium:
		return models.SeverityMedium
	}
	return models.SeverityLow
}

// Detect flags points whose z-score against the preceding Window days exceeds
// Threshold. Each point only sees its past. The result is sorted by date
// descending and capped at Limit. Invalid fields in o fall back to
// DefaultOptions.
func Detect(defs []catalog.CampaignDef, data models.DailyData, o Options) []models.Anomaly {
	o = o.sane()
	var out []models.Anomaly
	for _, c := range defs {
		for _, ch := range c.Channels {
			series := data[c.ID][ch]
			if len(series) < o.Window {
				continue
			}
			for _, metric := range o.Metrics {
				out = append(out, scan(c, ch, metric, series, o)...)
			}
		}
	}

	// orden determinista
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	if o.Limit >= 0 && len(out) > o.Limit {
		out = out[:o.Limit]
	}
	return out
}

func scan(c catalog.CampaignDef, ch models.ChannelID, metric models.KPIKey, series []models.DailyMetrics, o Options) []models.Anomaly {
	values := make(stats.Float64Data, len(series))
	for i, d := range series {
		v, ok := d.Value(metric)
		if !ok {
			return nil
		}
		values[i] = v
	}

	var out []models.Anomaly
	for i := o.Window; i < len(values); i++ {
		window := values[i-o.Window : i]
		mean, err := stats.Mean(window)
		if err != nil {
			continue
		}
		std, err := stats.StandardDeviation(window)
		if err != nil || std == 0 {
			continue
		}
		z := math.Abs(values[i]-mean) / std
		if math.IsNaN(z) || math.IsInf(z, 0) || z <= o.Threshold {
			continue
		}
		direction := "drop"
		if values[i] > mean {
			direction = "spike"
		}
		out = append(out, models.Anomaly{
			ID:          fmt.Sprintf("anom-%s-%s-%s-%d", c.ID, ch, metric, i),
			Date:        series[i].Date,
			Region:      c.Region,
			Campaign:    c.ID,
			Channel:     ch,
			Metric:      metric,
			Severity:    o.severity(z),
			ZScore:      round2(z),
			Description: fmt.Sprintf("%s %s in %s (%s): z-score %.1f", metric, direction, c.Name, catalog.ChannelLabels[ch], z),
		})
	}
	return out
}

func round2(f float64) float64 { return math.Floor(f*100+0.5) / 100 }
