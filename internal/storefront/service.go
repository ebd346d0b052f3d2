// Package storefront assembles the catalog pages from CMS data.
package storefront

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/example/fatales/internal/cms"
	"github.com/example/fatales/internal/locale"
	"github.com/example/fatales/internal/media"
)

const (
	// HomeFeaturedLimit is the number of bestsellers shown on the home page.
	HomeFeaturedLimit = 3
	// ShopDefaultLimit is the page size of the shop grid.
	ShopDefaultLimit = 100
)

// ErrProductNotFound is returned when no product matches the request.
var ErrProductNotFound = errors.New("product not found")

// Catalog is the read side of the CMS used by the pages.
type Catalog interface {
	GetProducts(ctx context.Context, params cms.ProductQuery) (*cms.Page[cms.Product], error)
	GetFeaturedProducts(ctx context.Context, limit int, loc string) ([]cms.Product, error)
	GetProductBySlug(ctx context.Context, slug, loc string) (*cms.Product, error)
	GetCategories(ctx context.Context, loc string) ([]cms.Category, error)
	GetHeroSlides(ctx context.Context, loc string) ([]cms.HeroSlide, error)
}

// Service builds page views.
type Service struct {
	catalog  Catalog
	resolver *media.Resolver
}

// NewService constructs a Service.
func NewService(catalog Catalog, resolver *media.Resolver) *Service {
	return &Service{catalog: catalog, resolver: resolver}
}

// Meta is attached to every page.
type Meta struct {
	Locale locale.Locale `json:"locale"`
	Dir    string        `json:"dir"`
}

func metaFor(loc locale.Locale) Meta {
	return Meta{Locale: loc, Dir: loc.Dir()}
}

// HomePage is the landing page.
type HomePage struct {
	Meta
	HeroSlides []HeroSlideView `json:"hero_slides"`
	Categories []CategoryView  `json:"categories"`
	Featured   []ProductCard   `json:"featured"`
	Reviews    []string        `json:"reviews"`
}

// ShopQuery narrows the shop grid.
type ShopQuery struct {
	CategoryID string
	Page       int
	Limit      int
}

// ShopPage is the product grid with its category filter.
type ShopPage struct {
	Meta
	Categories       []CategoryView `json:"categories"`
	SelectedCategory string         `json:"selected_category,omitempty"`
	Products         []ProductCard  `json:"products"`
	TotalDocs        int            `json:"total_docs"`
	Page             int            `json:"page"`
	TotalPages       int            `json:"total_pages"`
	HasNextPage      bool           `json:"has_next_page"`
}

// ProductPage is a single product.
type ProductPage struct {
	Meta
	Product ProductDetail `json:"product"`
}

// Home fetches slides, categories and bestsellers concurrently. Any failure
// fails the whole page.
func (s *Service) Home(ctx context.Context, loc locale.Locale) (*HomePage, error) {
	var (
		slides   []cms.HeroSlide
		cats     []cms.Category
		featured []cms.Product
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		slides, err = s.catalog.GetHeroSlides(gctx, loc.String())
		if err != nil {
			return fmt.Errorf("load hero slides: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		cats, err = s.catalog.GetCategories(gctx, loc.String())
		if err != nil {
			return fmt.Errorf("load categories: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		featured, err = s.catalog.GetFeaturedProducts(gctx, HomeFeaturedLimit, loc.String())
		if err != nil {
			return fmt.Errorf("load featured products: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	p := NewPresenter(loc, s.resolver)
	return &HomePage{
		Meta:       metaFor(loc),
		HeroSlides: p.HeroSlides(slides),
		Categories: p.Categories(cats),
		Featured:   p.Cards(featured),
		Reviews:    s.reviewURLs(),
	}, nil
}

// Shop fetches categories and products concurrently and applies the
// category filter locally.
func (s *Service) Shop(ctx context.Context, loc locale.Locale, q ShopQuery) (*ShopPage, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = ShopDefaultLimit
	}

	var (
		cats     []cms.Category
		products *cms.Page[cms.Product]
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		cats, err = s.catalog.GetCategories(gctx, loc.String())
		if err != nil {
			return fmt.Errorf("load categories: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		products, err = s.catalog.GetProducts(gctx, cms.ProductQuery{
			Limit:  limit,
			Page:   q.Page,
			Locale: loc.String(),
		})
		if err != nil {
			return fmt.Errorf("load products: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	selected := strings.TrimSpace(q.CategoryID)
	docs := products.Docs
	if selected != "" {
		docs = FilterByCategory(docs, selected)
	}

	p := NewPresenter(loc, s.resolver)
	return &ShopPage{
		Meta:             metaFor(loc),
		Categories:       p.Categories(cats),
		SelectedCategory: selected,
		Products:         p.Cards(docs),
		TotalDocs:        products.TotalDocs,
		Page:             products.Page,
		TotalPages:       products.TotalPages,
		HasNextPage:      products.HasNextPage,
	}, nil
}

// Product loads a product by slug. Without a slug the first bestseller is
// shown instead.
func (s *Service) Product(ctx context.Context, loc locale.Locale, slug string) (*ProductPage, error) {
	var prod *cms.Product

	slug = strings.TrimSpace(slug)
	if slug != "" {
		found, err := s.catalog.GetProductBySlug(ctx, slug, loc.String())
		if errors.Is(err, cms.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("load product %q: %w", slug, err)
		}
		prod = found
	} else {
		featured, err := s.catalog.GetFeaturedProducts(ctx, 1, loc.String())
		if err != nil {
			return nil, fmt.Errorf("load featured product: %w", err)
		}
		if len(featured) == 0 {
			return nil, ErrProductNotFound
		}
		prod = &featured[0]
	}

	p := NewPresenter(loc, s.resolver)
	return &ProductPage{
		Meta:    metaFor(loc),
		Product: p.Detail(*prod),
	}, nil
}

// Categories lists the categories in display order.
func (s *Service) Categories(ctx context.Context, loc locale.Locale) ([]CategoryView, error) {
	cats, err := s.catalog.GetCategories(ctx, loc.String())
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	return NewPresenter(loc, s.resolver).Categories(cats), nil
}

// HeroSlides lists the active slides.
func (s *Service) HeroSlides(ctx context.Context, loc locale.Locale) ([]HeroSlideView, error) {
	slides, err := s.catalog.GetHeroSlides(ctx, loc.String())
	if err != nil {
		return nil, fmt.Errorf("load hero slides: %w", err)
	}
	return NewPresenter(loc, s.resolver).HeroSlides(slides), nil
}

// FilterByCategory keeps the products of one category, preserving order.
func FilterByCategory(products []cms.Product, categoryID string) []cms.Product {
	out := make([]cms.Product, 0, len(products))
	for _, prod := range products {
		if prod.Category.ID == categoryID {
			out = append(out, prod)
		}
	}
	return out
}

// Customer review screenshots served by the storefront itself.
var reviewPaths = []string{
	"/reviews/review-1.png",
	"/reviews/review-2.png",
	"/reviews/review-3.png",
	"/reviews/review-4.png",
}

func (s *Service) reviewURLs() []string {
	out := make([]string, len(reviewPaths))
	copy(out, reviewPaths)
	return out
}
