package utils

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// CoerceCost turns whatever the cost field held into a usable amount.
// Blank, non-numeric, non-finite and negative input all become 0.
func CoerceCost(raw any) float64 {
	var v float64
	switch x := raw.(type) {
	case float64:
		v = x
	case float32:
		v = float64(x)
	case int:
		v = float64(x)
	case int64:
		v = float64(x)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0
		}
		v = parsed
	default:
		return 0
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// AmountFormatter renders budget figures with locale digit grouping.
type AmountFormatter struct {
	printer *message.Printer
}

func NewAmountFormatter(locale string) *AmountFormatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Indonesian
	}
	return &AmountFormatter{printer: message.NewPrinter(tag)}
}

// Format keeps up to two fraction digits.
func (f *AmountFormatter) Format(v float64) string {
	return f.printer.Sprint(number.Decimal(v, number.MaxFractionDigits(2)))
}

// FormatWhole rounds to an integer, as the daily average is shown.
func (f *AmountFormatter) FormatWhole(v float64) string {
	return f.printer.Sprint(number.Decimal(v, number.MaxFractionDigits(0)))
}
