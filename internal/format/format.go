// Package format renders raw catalog values as display strings.
package format

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/example/fatales/internal/locale"
)

const (
	// CurrencyCode is appended to prices for Latin-script locales.
	CurrencyCode = "MRU"
	// CurrencyArabic is appended to prices for Arabic.
	CurrencyArabic = "أوقية"
)

// Price groups digits the French way for French and the US way otherwise,
// then appends the currency suffix for the locale. No conversion happens.
func Price(price float64, loc string) string {
	l := locale.Normalize(loc)

	tag := language.AmericanEnglish
	if l == locale.French {
		tag = language.French
	}
	printer := message.NewPrinter(tag)
	formatted := printer.Sprintf("%v", number.Decimal(price, number.MaxFractionDigits(3)))

	if l == locale.Arabic {
		return formatted + " " + CurrencyArabic
	}
	return formatted + " " + CurrencyCode
}

// ComparePrice returns the formatted original price when it marks a sale,
// that is when compareAt is set and above price.
func ComparePrice(price float64, compareAt *float64, loc string) string {
	if compareAt == nil || *compareAt <= price {
		return ""
	}
	return Price(*compareAt, loc)
}
