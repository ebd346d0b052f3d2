package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/fatales/internal/locale"
)

const localeContextKey = "locale"

// Locale resolves the request locale from ?locale= or, failing that,
// Accept-Language and echoes it in Content-Language.
func Locale() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var loc locale.Locale
		if q := c.Query("locale"); q != "" {
			loc = locale.Normalize(q)
		} else {
			loc = locale.FromAcceptLanguage(c.Get(fiber.HeaderAcceptLanguage))
		}

		c.Locals(localeContextKey, loc)
		c.Set(fiber.HeaderContentLanguage, loc.String())
		c.Vary(fiber.HeaderAcceptLanguage)
		return c.Next()
	}
}

// LocaleFrom returns the locale resolved by Locale, or the default.
func LocaleFrom(c *fiber.Ctx) locale.Locale {
	if loc, ok := c.Locals(localeContextKey).(locale.Locale); ok {
		return loc
	}
	return locale.Default
}
