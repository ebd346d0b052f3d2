package handlers

import (
	"errors"
	"net/mail"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/example/fatales/internal/locale"
	"github.com/example/fatales/internal/middleware"
	"github.com/example/fatales/internal/models"
	"github.com/example/fatales/internal/store"
)

// ContactHandler serves the brand contact block.
type ContactHandler struct {
	store store.ContactStore
}

// NewContactHandler constructs ContactHandler. With a nil store only the
// built-in defaults are served and updates are refused.
func NewContactHandler(s store.ContactStore) *ContactHandler {
	return &ContactHandler{store: s}
}

const (
	defaultEmail       = "contact@mesky.mr"
	defaultPhone       = "+222 32 29 19 08"
	defaultWhatsApp    = "22232291908"
	defaultTikTok      = "https://www.tiktok.com/@mesky44"
	defaultSnapchat    = "https://www.snapchat.com/@fatales_m"
	defaultFacebook    = "https://www.facebook.com/fatalesmauritanie/"
	defaultTaglineEn   = "Luxury fragrances, crafted for the modern soul."
	defaultTaglineAr   = "عطور فاخرة مصممة للروح العصرية."
	defaultTaglineFr   = "Des parfums de luxe pensés pour l'âme moderne."
	defaultCopyrightEn = "© 2026 FATALES. All Rights Reserved."
	defaultCopyrightAr = "© 2026 FATALES. جميع الحقوق محفوظة."
	defaultCopyrightFr = "© 2026 FATALES. Tous droits réservés."
)

func defaultBranches() []models.Branch {
	return []models.Branch{
		{
			Key:          "branch1",
			NameEn:       "Television Boutique",
			NameAr:       "فرع التلفزيون",
			NameFr:       "Boutique Télévision",
			AddressEn:    "Television district, Nouakchott",
			AddressAr:    "حي التلفزيون، نواكشوط",
			AddressFr:    "Quartier Télévision, Nouakchott",
			Coordinates:  "18.108288824702704, -15.980190034653045",
			MapQuery:     "مسكي للعطور فرع التلفزيون Nouakchott Mauritania",
			Image:        "/images/branches/branch-1.jpg",
			DisplayOrder: 1,
		},
		{
			Key:          "branch2",
			NameEn:       "Carrefour Bekar Boutique",
			NameAr:       "فرع كرفور بكار",
			NameFr:       "Boutique Carrefour Bekar",
			AddressEn:    "Carrefour Bekar, Nouakchott",
			AddressAr:    "كرفور بكار، نواكشوط",
			AddressFr:    "Carrefour Bekar, Nouakchott",
			Coordinates:  "18.118304918608672, -15.960671199999997",
			MapQuery:     "مسكي للعطور كرفور بكار Nouakchott",
			Image:        "/images/branches/branch-2.jpg",
			DisplayOrder: 2,
		},
		{
			Key:          "branch3",
			NameEn:       "Arafat Boutique",
			NameAr:       "فرع عرفات",
			NameFr:       "Boutique Arafat",
			AddressEn:    "Arafat, Nouakchott",
			AddressAr:    "عرفات، نواكشوط",
			AddressFr:    "Arafat, Nouakchott",
			Coordinates:  "18.073877285811534, -15.956373213082069",
			MapQuery:     "مسكي للعطور فرع عرفات Nouakchott",
			Image:        "/images/branches/branch-3.jpg",
			DisplayOrder: 3,
		},
	}
}

func applyContactDefaults(settings *models.ContactSettings) {
	if settings == nil {
		return
	}
	fill := func(field *string, value string) {
		if strings.TrimSpace(*field) == "" {
			*field = value
		}
	}
	fill(&settings.Email, defaultEmail)
	fill(&settings.Phone, defaultPhone)
	fill(&settings.WhatsApp, defaultWhatsApp)
	fill(&settings.TikTok, defaultTikTok)
	fill(&settings.Snapchat, defaultSnapchat)
	fill(&settings.Facebook, defaultFacebook)
	fill(&settings.TaglineEn, defaultTaglineEn)
	fill(&settings.TaglineAr, defaultTaglineAr)
	fill(&settings.TaglineFr, defaultTaglineFr)
	fill(&settings.CopyrightEn, defaultCopyrightEn)
	fill(&settings.CopyrightAr, defaultCopyrightAr)
	fill(&settings.CopyrightFr, defaultCopyrightFr)
	if len(settings.Branches) == 0 {
		settings.Branches = defaultBranches()
	}
}

func validateContactSettings(input *models.ContactSettings) error {
	if input == nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(input.Email) != "" {
		if _, err := mail.ParseAddress(input.Email); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid email format")
		}
	}
	if input.WhatsApp != "" && digitsOnly(input.WhatsApp) != input.WhatsApp {
		return fiber.NewError(fiber.StatusBadRequest, "whatsapp must be digits in international format")
	}
	for _, b := range input.Branches {
		if strings.TrimSpace(b.Key) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "branch key is required")
		}
	}
	return nil
}

type branchView struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	Coordinates string `json:"coordinates"`
	Image       string `json:"image"`
	MapURL      string `json:"map_url"`
}

type contactView struct {
	Email       string       `json:"email"`
	Phone       string       `json:"phone"`
	TelURL      string       `json:"tel_url"`
	WhatsAppURL string       `json:"whatsapp_url"`
	TikTok      string       `json:"tiktok"`
	Snapchat    string       `json:"snapchat"`
	Facebook    string       `json:"facebook"`
	Instagram   string       `json:"instagram,omitempty"`
	Tagline     string       `json:"tagline"`
	Copyright   string       `json:"copyright"`
	Branches    []branchView `json:"branches"`
}

func pick(loc locale.Locale, en, ar, fr string) string {
	switch loc {
	case locale.Arabic:
		return ar
	case locale.French:
		return fr
	default:
		return en
	}
}

func newContactView(s *models.ContactSettings, loc locale.Locale) contactView {
	view := contactView{
		Email:       s.Email,
		Phone:       s.Phone,
		TelURL:      "tel:+" + digitsOnly(s.Phone),
		WhatsAppURL: "https://wa.me/" + s.WhatsApp,
		TikTok:      s.TikTok,
		Snapchat:    s.Snapchat,
		Facebook:    s.Facebook,
		Instagram:   s.Instagram,
		Tagline:     pick(loc, s.TaglineEn, s.TaglineAr, s.TaglineFr),
		Copyright:   pick(loc, s.CopyrightEn, s.CopyrightAr, s.CopyrightFr),
		Branches:    make([]branchView, 0, len(s.Branches)),
	}
	for _, b := range s.Branches {
		view.Branches = append(view.Branches, branchView{
			Key:         b.Key,
			Name:        pick(loc, b.NameEn, b.NameAr, b.NameFr),
			Address:     pick(loc, b.AddressEn, b.AddressAr, b.AddressFr),
			Coordinates: b.Coordinates,
			Image:       b.Image,
			MapURL:      mapURL(b),
		})
	}
	return view
}

func mapURL(b models.Branch) string {
	query := strings.TrimSpace(b.MapQuery + " " + b.Coordinates)
	return "https://www.google.com/maps/search/?api=1&query=" + url.QueryEscape(query)
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// GetContact returns the localized contact block (public endpoint).
func (h *ContactHandler) GetContact(c *fiber.Ctx) error {
	loc := middleware.LocaleFrom(c)

	settings := &models.ContactSettings{}
	if h.store != nil {
		found, err := h.store.Get(c.UserContext())
		switch {
		case err == nil:
			settings = found
		case !errors.Is(err, store.ErrNotFound):
			return err
		}
	}

	applyContactDefaults(settings)
	return c.JSON(fiber.Map{
		"success": true,
		"locale":  loc,
		"dir":     loc.Dir(),
		"data":    newContactView(settings, loc),
	})
}

// UpdateContact creates or replaces the contact settings (admin endpoint).
func (h *ContactHandler) UpdateContact(c *fiber.Ctx) error {
	if h.store == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "persistence is not configured")
	}

	var input models.ContactSettings
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validateContactSettings(&input); err != nil {
		return err
	}

	saved, err := h.store.Save(c.UserContext(), &input)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    saved,
	})
}
