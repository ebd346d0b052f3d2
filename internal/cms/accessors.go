package cms

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/example/fatales/internal/locale"
)

const (
	productsPath   = "products"
	categoriesPath = "categories"
	heroSlidesPath = "hero-slides"

	relationDepth   = "2"
	categoriesLimit = 100
	heroSlidesLimit = 10
)

// ProductQuery holds the optional inputs of GetProducts. Zero values are
// left out of the request.
type ProductQuery struct {
	Limit  int
	Page   int
	Where  Where
	Locale string
}

func baseQuery(loc string) url.Values {
	q := url.Values{}
	q.Set("locale", locale.Normalize(loc).String())
	q.Set("depth", relationDepth)
	return q
}

// GetProducts lists products with relations expanded.
func (c *Client) GetProducts(ctx context.Context, params ProductQuery) (*Page[Product], error) {
	q := baseQuery(params.Locale)
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Page > 0 {
		q.Set("page", strconv.Itoa(params.Page))
	}
	if len(params.Where) > 0 {
		where, err := params.Where.Encode()
		if err != nil {
			return nil, fmt.Errorf("encode where filter: %w", err)
		}
		q.Set("where", where)
	}

	return getPage[Product](ctx, c, productsPath, q)
}

// GetFeaturedProducts returns up to limit products flagged as featured.
func (c *Client) GetFeaturedProducts(ctx context.Context, limit int, loc string) ([]Product, error) {
	page, err := c.GetProducts(ctx, ProductQuery{
		Limit:  limit,
		Where:  Equals("featured", true),
		Locale: loc,
	})
	if err != nil {
		return nil, err
	}
	return page.Docs, nil
}

// GetProductBySlug returns the product with the given slug or ErrNotFound.
// Slugs are unique in the CMS; should duplicates appear the first wins.
func (c *Client) GetProductBySlug(ctx context.Context, slug, loc string) (*Product, error) {
	q := baseQuery(loc)
	q.Set("where[slug][equals]", slug)
	q.Set("limit", "1")

	page, err := getPage[Product](ctx, c, productsPath, q)
	if err != nil {
		return nil, err
	}
	if len(page.Docs) == 0 {
		return nil, ErrNotFound
	}
	if page.TotalDocs > 1 {
		log.Printf("[CMS] slug %q matched %d products, using the first", slug, page.TotalDocs)
	}
	return &page.Docs[0], nil
}

// GetCategories returns up to 100 categories ordered by displayOrder.
func (c *Client) GetCategories(ctx context.Context, loc string) ([]Category, error) {
	q := baseQuery(loc)
	q.Set("sort", "displayOrder")
	q.Set("limit", strconv.Itoa(categoriesLimit))

	page, err := getPage[Category](ctx, c, categoriesPath, q)
	if err != nil {
		return nil, err
	}
	return page.Docs, nil
}

// GetHeroSlides returns up to 10 active slides ordered by displayOrder.
func (c *Client) GetHeroSlides(ctx context.Context, loc string) ([]HeroSlide, error) {
	q := baseQuery(loc)
	q.Set("where[active][equals]", "true")
	q.Set("sort", "displayOrder")
	q.Set("limit", strconv.Itoa(heroSlidesLimit))

	page, err := getPage[HeroSlide](ctx, c, heroSlidesPath, q)
	if err != nil {
		return nil, err
	}
	return page.Docs, nil
}
