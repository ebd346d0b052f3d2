package handlers

import (
	"crypto/subtle"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/example/fatales/internal/cache"
	"github.com/example/fatales/internal/config"
	"github.com/example/fatales/internal/middleware"
	"github.com/example/fatales/internal/store"
	"github.com/example/fatales/internal/utils"
)

// AdminHandler serves the back-office endpoints.
type AdminHandler struct {
	cfg       *config.Config
	concierge store.ConciergeStore
	cache     cache.Store
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(cfg *config.Config, concierge store.ConciergeStore, pages cache.Store) *AdminHandler {
	if pages == nil {
		pages = cache.Noop{}
	}
	return &AdminHandler{cfg: cfg, concierge: concierge, cache: pages}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login exchanges the admin credentials for a token.
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing required fields")
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(h.cfg.AdminUsername)) == 1
	passOK := utils.CheckPassword(h.cfg.AdminPasswordHash, req.Password)
	if !userOK || !passOK {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
	}

	token, err := utils.GenerateToken(h.cfg.JWTSecret, h.cfg.AdminUsername, h.cfg.TokenExpires)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate token")
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"token":      token,
		"expires_in": int(h.cfg.TokenExpires.Seconds()),
	})
}

// ListConcierge returns callback requests, newest first.
func (h *AdminHandler) ListConcierge(c *fiber.Ctx) error {
	if h.concierge == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "persistence is not configured")
	}

	pg := utils.ParsePagination(c, 20, 100)
	items, total, err := h.concierge.List(c.UserContext(), pg.Offset, pg.Limit)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    items,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

// PurgeCache drops every cached page so CMS edits show up immediately.
func (h *AdminHandler) PurgeCache(c *fiber.Ctx) error {
	removed, err := h.cache.Purge(c.UserContext())
	if err != nil {
		return err
	}

	admin, _ := middleware.CurrentAdmin(c)
	log.Printf("[Cache] %s purged %d page entries", admin, removed)

	return c.JSON(fiber.Map{
		"success": true,
		"removed": removed,
	})
}
