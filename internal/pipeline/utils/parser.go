package utils

import (
	"math"
	"strconv"
	"strings"
	"time"
)

var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
}

// ParseDate accepts the date shapes seen across agency extracts. Timestamps
// are truncated to their date part first. Unparsable input yields the zero
// time; rows keep flowing.
func ParseDate(dateStr string) time.Time {
	cleaned := strings.TrimSpace(dateStr)
	if cleaned == "" {
		return time.Time{}
	}
	if len(cleaned) > 10 {
		cleaned = cleaned[:10]
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t
		}
	}
	return time.Time{}
}

// ParseMoney coerces a possibly currency-formatted amount ("$1,234.50") to a
// plain float. Currency formatting never survives past ingestion.
func ParseMoney(valStr string) (float64, error) {
	cleaned := strings.TrimSpace(valStr)
	if cleaned == "" {
		return 0.0, nil
	}
	cleaned = strings.ReplaceAll(cleaned, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	return strconv.ParseFloat(cleaned, 64)
}

// MoneyValue is the lenient form of ParseMoney for row-local coercion.
func MoneyValue(valStr string) float64 {
	val, err := ParseMoney(valStr)
	if err != nil {
		return 0.0
	}
	return val
}

// NormalizeNAICS coerces a NAICS value to its canonical 6-character string
// form. Joining tables on anything longer is a known bug class.
func NormalizeNAICS(val string) string {
	cleaned := strings.TrimSpace(val)
	if len(cleaned) > 6 {
		cleaned = cleaned[:6]
	}
	return cleaned
}

// MonthsRemaining computes whole 30-day months between now and expiration,
// flooring toward negative infinity so expired contracts go negative.
func MonthsRemaining(expiration, now time.Time) (int, bool) {
	if expiration.IsZero() {
		return 0, false
	}
	days := math.Floor(expiration.Sub(now).Hours() / 24)
	return int(math.Floor(days / 30)), true
}

func ParseIntDefault(valStr string, fallback int) int {
	cleaned := strings.TrimSpace(valStr)
	if cleaned == "" {
		return fallback
	}
	// Socio-economic action counts arrive as "1" or "1.0" depending on the
	// exporting system.
	if f, err := strconv.ParseFloat(cleaned, 64); err == nil {
		return int(f)
	}
	return fallback
}
