package metrics

import "github.com/AngelCh415/stratis/internal/models"

// ComputeDeltas compares every KPI in models.KPIKeys.
func ComputeDeltas(current, previous models.AggregatedKPIs) map[models.KPIKey]models.KPIDelta {
	out := make(map[models.KPIKey]models.KPIDelta, len(models.KPIKeys))
	for _, key := range models.KPIKeys {
		out[key] = Delta(current.Metric(key), previous.Metric(key))
	}
	return out
}

func Delta(v, pv float64) models.KPIDelta {
	d := models.KPIDelta{Value: v, PreviousValue: pv, Delta: v - pv}
	if pv != 0 {
		d.DeltaPercent = (v - pv) / pv * 100
	}
	return d
}
