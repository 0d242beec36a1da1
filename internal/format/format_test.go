package format

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AngelCh415/stratis/internal/models"
)

func TestCurrency(t *testing.T) {
	assert.Equal(t, "$2.5M", Currency(2_500_000))
	assert.Equal(t, "$12.3K", Currency(12_340))
	assert.Equal(t, "$-1.5K", Currency(-1_500))
	assert.Equal(t, "$457", Currency(456.7))
	assert.Equal(t, "$9.99", Currency(9.99))
}

func TestNumber(t *testing.T) {
	assert.Equal(t, "1.2M", Number(1_234_567))
	assert.Equal(t, "5.0K", Number(5_000))
	assert.Equal(t, "999", Number(999.4))
	assert.Equal(t, "0", Number(0))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "0%", Percent(0.004))
	assert.Equal(t, "0.45%", Percent(0.45))
	assert.Equal(t, "3.3%", Percent(3.333))
}

func TestSmallFormats(t *testing.T) {
	assert.Equal(t, "1.33x", Decimal(1.3333))
	assert.Equal(t, "72/100", Index(71.6))
	assert.Equal(t, "+12.5%", DeltaPercent(12.5))
	assert.Equal(t, "-3.0%", DeltaPercent(-3))
	assert.Equal(t, "0.0%", DeltaPercent(0))
	assert.Equal(t, "+$1.2K", Delta(1200, models.FormatCurrency))
	assert.Equal(t, "-0.50x", Delta(-0.5, models.FormatDecimal))
}

func TestKPI(t *testing.T) {
	assert.Equal(t, "$300", KPI(models.KPISpend, 300))
	assert.Equal(t, "1.33x", KPI(models.KPIROAS, 400.0/300))
	assert.Equal(t, "3.3%", KPI(models.KPICTR, 100.0/3000*100))
	assert.Equal(t, "40/100", KPI(models.KPICreativeFatigueIndex, 40))
	assert.Equal(t, "7", KPI("unknown", 7))
}

func TestDateRangeLabel(t *testing.T) {
	assert.Equal(t, "Last 7 Days", DateRangeLabel("7d", "", ""))
	assert.Equal(t, "Year to Date", DateRangeLabel("ytd", "", ""))
	assert.Equal(t, "Jan 13 – Feb 12, 2026", DateRangeLabel("custom", "2026-01-13", "2026-02-12"))
	assert.Equal(t, "a – b", DateRangeLabel("custom", "a", "b"))
}

func TestCurrencyExact(t *testing.T) {
	assert.Equal(t, "$1,234,567", CurrencyExact(1_234_567.4))
	assert.Equal(t, "$1,000", CurrencyExact(999.5))
	assert.Equal(t, "-$1,500", CurrencyExact(-1_500))
	assert.Equal(t, "$12", CurrencyExact(12.2))
	// the abbreviated form only groups on the 999.5 boundary
	assert.Equal(t, "$1,000", Currency(999.6))
}
