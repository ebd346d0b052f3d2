package handlers

import (
	"context"
	"errors"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"

	"github.com/example/fatales/internal/middleware"
	"github.com/example/fatales/internal/models"
	"github.com/example/fatales/internal/services"
	"github.com/example/fatales/internal/storefront"
	"github.com/example/fatales/internal/store"
)

// ConciergeNotifier forwards a request to the advisors.
type ConciergeNotifier interface {
	NotifyConcierge(ctx context.Context, n services.ConciergeNotification) error
}

// ConciergeHandler accepts callback requests from visitors.
type ConciergeHandler struct {
	svc      *storefront.Service
	store    store.ConciergeStore
	notifier ConciergeNotifier
}

// NewConciergeHandler constructs ConciergeHandler. store and notifier may be
// nil when persistence or Telegram are not configured.
func NewConciergeHandler(svc *storefront.Service, s store.ConciergeStore, notifier ConciergeNotifier) *ConciergeHandler {
	return &ConciergeHandler{svc: svc, store: s, notifier: notifier}
}

type conciergeRequest struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Message     string `json:"message"`
	ProductSlug string `json:"product_slug"`
}

// Limits match the column sizes of models.ConciergeRequest.
const (
	maxNameLength    = 120
	maxPhoneLength   = 32
	maxSlugLength    = 200
	maxMessageLength = 2000
)

func (r *conciergeRequest) normalize() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Message = strings.TrimSpace(r.Message)
	r.ProductSlug = strings.TrimSpace(r.ProductSlug)

	if r.Name == "" || r.Phone == "" {
		return fiber.NewError(fiber.StatusBadRequest, "name and phone are required")
	}
	if utf8.RuneCountInString(r.Name) > maxNameLength {
		return fiber.NewError(fiber.StatusBadRequest, "name is too long")
	}
	if utf8.RuneCountInString(r.Phone) > maxPhoneLength {
		return fiber.NewError(fiber.StatusBadRequest, "invalid phone number")
	}
	if n := len(digitsOnly(r.Phone)); n < 8 || n > 15 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid phone number")
	}
	if utf8.RuneCountInString(r.ProductSlug) > maxSlugLength {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product slug")
	}
	if utf8.RuneCountInString(r.Message) > maxMessageLength {
		return fiber.NewError(fiber.StatusBadRequest, "message is too long")
	}
	return nil
}

// Create records a callback request and notifies the advisors.
func (h *ConciergeHandler) Create(c *fiber.Ctx) error {
	var input conciergeRequest
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := input.normalize(); err != nil {
		return err
	}

	ctx := c.UserContext()
	loc := middleware.LocaleFrom(c)

	notification := services.ConciergeNotification{
		Name:    input.Name,
		Phone:   input.Phone,
		Message: input.Message,
		Locale:  loc.String(),
	}

	if input.ProductSlug != "" {
		page, err := h.svc.Product(ctx, loc, input.ProductSlug)
		switch {
		case errors.Is(err, storefront.ErrProductNotFound):
			return fiber.NewError(fiber.StatusBadRequest, "unknown product")
		case err != nil:
			log.Printf("[Concierge] product lookup %q failed: %v", input.ProductSlug, err)
		default:
			notification.ProductName = page.Product.Name
			notification.ProductPrice = page.Product.Price
		}
	}

	req := models.ConciergeRequest{
		Name:        input.Name,
		Phone:       input.Phone,
		Message:     input.Message,
		ProductSlug: input.ProductSlug,
		Locale:      loc.String(),
		Status:      models.ConciergeNew,
	}

	if h.store != nil {
		if err := h.store.Create(ctx, &req); err != nil {
			return err
		}
		notification.RequestID = req.ID.String()
	}

	if h.notifier != nil {
		if err := h.notifier.NotifyConcierge(ctx, notification); err != nil {
			log.Printf("[Concierge] Telegram notification failed: %v", err)
		} else {
			req.Status = models.ConciergeNotified
			if h.store != nil {
				if err := h.store.SetStatus(ctx, req.ID, models.ConciergeNotified); err != nil {
					log.Printf("[Concierge] status update failed for %s: %v", req.ID, err)
				}
			}
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    req,
	})
}
