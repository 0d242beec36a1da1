// Package format renders KPI values the way the dashboard shows them.
package format

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/AngelCh415/stratis/internal/models"
)

var printer = message.NewPrinter(language.AmericanEnglish)

func grouped(v float64) string {
	return printer.Sprintf("%d", int64(math.Floor(v+0.5)))
}

func Currency(v float64) string {
	a := math.Abs(v)
	switch {
	case a >= 1_000_000:
		return fmt.Sprintf("$%.1fM", v/1_000_000)
	case a >= 1_000:
		return fmt.Sprintf("$%.1fK", v/1_000)
	case a >= 100:
		return "$" + grouped(v)
	}
	return fmt.Sprintf("$%.2f", v)
}

// CurrencyExact is the unabbreviated form with thousands separators, for tables.
func CurrencyExact(v float64) string {
	n := int64(math.Floor(v + 0.5))
	if n < 0 {
		return printer.Sprintf("-$%d", -n)
	}
	return printer.Sprintf("$%d", n)
}

func Number(v float64) string {
	a := math.Abs(v)
	switch {
	case a >= 1_000_000:
		return fmt.Sprintf("%.1fM", v/1_000_000)
	case a >= 1_000:
		return fmt.Sprintf("%.1fK", v/1_000)
	}
	return grouped(v)
}

func Percent(v float64) string {
	a := math.Abs(v)
	switch {
	case a < 0.01:
		return "0%"
	case a < 1:
		return fmt.Sprintf("%.2f%%", v)
	}
	return fmt.Sprintf("%.1f%%", v)
}

func Decimal(v float64) string { return fmt.Sprintf("%.2fx", v) }

func Index(v float64) string { return fmt.Sprintf("%d/100", int64(math.Floor(v+0.5))) }

func KPIValue(v float64, f models.KPIFormat) string {
	switch f {
	case models.FormatCurrency:
		return Currency(v)
	case models.FormatPercent:
		return Percent(v)
	case models.FormatDecimal:
		return Decimal(v)
	case models.FormatIndex:
		return Index(v)
	}
	return Number(v)
}

// KPI formats the value of key using its configured format.
func KPI(key models.KPIKey, v float64) string {
	if c, ok := models.KPIConfigFor(key); ok {
		return KPIValue(v, c.Format)
	}
	return Number(v)
}

func Delta(d float64, f models.KPIFormat) string {
	if d > 0 {
		return "+" + KPIValue(d, f)
	}
	return KPIValue(d, f)
}

func DeltaPercent(p float64) string {
	if p > 0 {
		return fmt.Sprintf("+%.1f%%", p)
	}
	return fmt.Sprintf("%.1f%%", p)
}

// DateRangeLabel names a preset, or prints "Jan 2 – Feb 12, 2026" for custom ranges.
func DateRangeLabel(preset, start, end string) string {
	switch preset {
	case "7d":
		return "Last 7 Days"
	case "14d":
		return "Last 14 Days"
	case "30d":
		return "Last 30 Days"
	case "90d":
		return "Last 90 Days"
	case "ytd":
		return "Year to Date"
	}
	s, err1 := time.Parse(models.DateLayout, start)
	e, err2 := time.Parse(models.DateLayout, end)
	if err1 != nil || err2 != nil {
		return start + " – " + end
	}
	return fmt.Sprintf("%s – %s, %d", s.Format("Jan 2"), e.Format("Jan 2"), e.Year())
}
