// Package locale maps free-form language identifiers onto the three
// storefront locales.
package locale

import (
	"strings"

	"golang.org/x/text/language"
)

// Locale is one of the supported storefront languages.
type Locale string

const (
	English Locale = "en"
	Arabic  Locale = "ar"
	French  Locale = "fr"
)

// Default is used whenever a value cannot be recognised.
const Default = English

// All returns the supported locales in menu order.
func All() []Locale {
	return []Locale{English, Arabic, French}
}

// Normalize maps any string onto a supported locale. Values starting with
// "ar" or "fr" (any case) select Arabic or French; everything else, including
// values with leading whitespace, is English.
func Normalize(value string) Locale {
	l := strings.ToLower(value)
	switch {
	case strings.HasPrefix(l, "ar"):
		return Arabic
	case strings.HasPrefix(l, "fr"):
		return French
	default:
		return English
	}
}

// FromAcceptLanguage picks the highest-weighted tag of an Accept-Language
// header and normalizes it.
func FromAcceptLanguage(header string) Locale {
	if strings.TrimSpace(header) == "" {
		return Default
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return Default
	}
	return Normalize(tags[0].String())
}

// String implements fmt.Stringer.
func (l Locale) String() string {
	return string(l)
}

// Dir returns the text direction for the locale.
func (l Locale) Dir() string {
	if Normalize(string(l)) == Arabic {
		return "rtl"
	}
	return "ltr"
}
