package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDailyMetricsValidate(t *testing.T) {
	ok := DailyMetrics{Date: "2026-01-01", Spend: 10, Impressions: 100, Clicks: 3}
	assert.NoError(t, ok.Validate())
	assert.NoError(t, DailyMetrics{}.Validate())

	bad := []DailyMetrics{
		{Clicks: -1},
		{AssistedConversions: -2},
		{Spend: -0.5},
		{Revenue: math.Inf(1)},
		{Spend: math.NaN()},
	}
	for _, d := range bad {
		assert.ErrorIs(t, d.Validate(), ErrInvalidRecord, "%+v", d)
	}
}
