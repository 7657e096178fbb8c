package cli

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var brl = message.NewPrinter(language.BrazilianPortuguese)

// formatCurrency renders an amount in Brazilian reais, e.g. "R$ 1.234,50".
func formatCurrency(v float64) string {
	if v < 0 {
		return "-R$ " + brl.Sprintf("%.2f", -v)
	}
	return "R$ " + brl.Sprintf("%.2f", v)
}

func formatPercent(v float64) string {
	return brl.Sprintf("%.1f%%", v)
}

func formatDate(t time.Time) string {
	return t.Local().Format("02/01/2006")
}
