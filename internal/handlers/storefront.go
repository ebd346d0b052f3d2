package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/example/fatales/internal/cache"
	"github.com/example/fatales/internal/locale"
	"github.com/example/fatales/internal/middleware"
	"github.com/example/fatales/internal/storefront"
	"github.com/example/fatales/internal/utils"
)

// StorefrontHandler serves the catalog pages.
type StorefrontHandler struct {
	svc   *storefront.Service
	cache cache.Store
}

// NewStorefrontHandler constructs StorefrontHandler. A nil store disables
// response caching.
func NewStorefrontHandler(svc *storefront.Service, store cache.Store) *StorefrontHandler {
	if store == nil {
		store = cache.Noop{}
	}
	return &StorefrontHandler{svc: svc, cache: store}
}

type envelope struct {
	Success bool          `json:"success"`
	Locale  locale.Locale `json:"locale"`
	Dir     string        `json:"dir"`
	Data    any           `json:"data"`
}

// Home returns hero slides, categories, bestsellers and reviews.
func (h *StorefrontHandler) Home(c *fiber.Ctx) error {
	loc := middleware.LocaleFrom(c)
	return h.serve(c, cache.PageKey("home", loc), loc, func(ctx context.Context) (any, error) {
		page, err := h.svc.Home(ctx, loc)
		if err != nil {
			return nil, pageError("home", err)
		}
		return page, nil
	})
}

// Shop returns the product grid, optionally narrowed to ?category=<id>.
func (h *StorefrontHandler) Shop(c *fiber.Ctx) error {
	loc := middleware.LocaleFrom(c)
	p := utils.ParsePagination(c, storefront.ShopDefaultLimit, storefront.ShopDefaultLimit)
	q := storefront.ShopQuery{
		CategoryID: strings.TrimSpace(c.Query("category")),
		Page:       p.Page,
		Limit:      p.Limit,
	}

	key := cache.PageKey("shop", loc, q.CategoryID, strconv.Itoa(q.Page), strconv.Itoa(q.Limit))
	return h.serve(c, key, loc, func(ctx context.Context) (any, error) {
		page, err := h.svc.Shop(ctx, loc, q)
		if err != nil {
			return nil, pageError("shop", err)
		}
		return page, nil
	})
}

// Product returns one product by :slug, or the first bestseller without one.
func (h *StorefrontHandler) Product(c *fiber.Ctx) error {
	loc := middleware.LocaleFrom(c)
	slug := strings.TrimSpace(c.Params("slug"))
	if len(slug) > 200 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product slug")
	}

	return h.serve(c, cache.PageKey("product", loc, slug), loc, func(ctx context.Context) (any, error) {
		page, err := h.svc.Product(ctx, loc, slug)
		if err != nil {
			return nil, pageError("product", err)
		}
		return page, nil
	})
}

// Categories lists the categories in display order.
func (h *StorefrontHandler) Categories(c *fiber.Ctx) error {
	loc := middleware.LocaleFrom(c)
	return h.serve(c, cache.PageKey("categories", loc), loc, func(ctx context.Context) (any, error) {
		cats, err := h.svc.Categories(ctx, loc)
		if err != nil {
			return nil, pageError("categories", err)
		}
		return cats, nil
	})
}

// HeroSlides lists the active slides.
func (h *StorefrontHandler) HeroSlides(c *fiber.Ctx) error {
	loc := middleware.LocaleFrom(c)
	return h.serve(c, cache.PageKey("hero-slides", loc), loc, func(ctx context.Context) (any, error) {
		slides, err := h.svc.HeroSlides(ctx, loc)
		if err != nil {
			return nil, pageError("hero slides", err)
		}
		return slides, nil
	})
}

type localeView struct {
	Code  locale.Locale `json:"code"`
	Label string        `json:"label"`
	Dir   string        `json:"dir"`
}

var localeLabels = map[locale.Locale]string{
	locale.English: "English",
	locale.Arabic:  "العربية",
	locale.French:  "Français",
}

// Locales lists the supported languages.
func (h *StorefrontHandler) Locales(c *fiber.Ctx) error {
	loc := middleware.LocaleFrom(c)
	all := locale.All()
	views := make([]localeView, 0, len(all))
	for _, l := range all {
		views = append(views, localeView{Code: l, Label: localeLabels[l], Dir: l.Dir()})
	}
	return c.JSON(envelope{Success: true, Locale: loc, Dir: loc.Dir(), Data: views})
}

func (h *StorefrontHandler) serve(c *fiber.Ctx, key string, loc locale.Locale, build func(context.Context) (any, error)) error {
	ctx := c.UserContext()

	if body, ok := h.cache.Get(ctx, key); ok {
		c.Set("X-Cache", "HIT")
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
		return c.Send(body)
	}

	data, err := build(ctx)
	if err != nil {
		return err
	}

	body, err := json.Marshal(envelope{Success: true, Locale: loc, Dir: loc.Dir(), Data: data})
	if err != nil {
		return err
	}
	h.cache.Set(ctx, key, body)

	c.Set("X-Cache", "MISS")
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.Send(body)
}

// pageError maps a page failure to its HTTP error. CMS failures collapse to
// one message per page.
func pageError(page string, err error) error {
	if errors.Is(err, storefront.ErrProductNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "product not found")
	}
	if errors.Is(err, context.Canceled) {
		return fiber.NewError(fiber.StatusRequestTimeout, "request cancelled")
	}
	log.Printf("[CMS] %s page failed: %v", page, err)
	return fiber.NewError(fiber.StatusBadGateway, "failed to load "+page)
}
