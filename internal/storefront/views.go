package storefront

import (
	"cmp"
	"slices"

	"github.com/example/fatales/internal/cms"
	"github.com/example/fatales/internal/format"
	"github.com/example/fatales/internal/locale"
	"github.com/example/fatales/internal/media"
)

// Badge labels shown on product cards.
const (
	BadgeBestseller = "BESTSELLER"
	BadgeNew        = "NEW"
)

// missingNote fills an absent fragrance note.
const missingNote = "-"

// ProductCard is a product as listed in grids and carousels.
type ProductCard struct {
	ID             string  `json:"id"`
	Slug           string  `json:"slug"`
	Name           string  `json:"name"`
	Price          float64 `json:"price"`
	PriceLabel     string  `json:"price_label"`
	CompareAtLabel string  `json:"compare_at_label,omitempty"`
	TypeLabel      string  `json:"type_label"`
	Image          string  `json:"image"`
	ImageAlt       string  `json:"image_alt,omitempty"`
	Badge          string  `json:"badge,omitempty"`
	CategoryID     string  `json:"category_id"`
	InStock        bool    `json:"in_stock"`
}

// NotesView is the fragrance pyramid with placeholders for absent notes.
type NotesView struct {
	Top    string `json:"top"`
	Middle string `json:"middle"`
	Base   string `json:"base"`
}

// ProductDetail is the product page.
type ProductDetail struct {
	ProductCard
	Description     string        `json:"description"`
	FullDescription any           `json:"full_description,omitempty"`
	Size            string        `json:"size"`
	Images          []string      `json:"images"`
	Notes           NotesView     `json:"notes"`
	Category        *CategoryView `json:"category,omitempty"`
	StockQuantity   int           `json:"stock_quantity"`
	NewArrival      bool          `json:"new_arrival"`
	Featured        bool          `json:"featured"`
}

// CategoryView is a category tile or filter chip.
type CategoryView struct {
	ID           string `json:"id"`
	Slug         string `json:"slug"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	Image        string `json:"image,omitempty"`
	DisplayOrder int    `json:"display_order"`
}

// ButtonView is a call to action.
type ButtonView struct {
	Text string `json:"text"`
	Link string `json:"link"`
}

// HeroSlideView is one homepage slide.
type HeroSlideView struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Subtitle    string     `json:"subtitle"`
	Description string     `json:"description"`
	Image       string     `json:"image"`
	Primary     ButtonView `json:"primary_button"`
	Secondary   ButtonView `json:"secondary_button"`
}

type heroDefaults struct {
	subtitle    string
	description string
	primary     string
	secondary   string
}

var heroCopy = map[locale.Locale]heroDefaults{
	locale.English: {
		subtitle:    "New Collection",
		description: "Discover our latest signature scents crafted for the modern soul.",
		primary:     "Shop",
		secondary:   "Discover",
	},
	locale.Arabic: {
		subtitle:    "تشكيلة جديدة",
		description: "اكتشف أحدث عطورنا المميزة المصممة للروح العصرية.",
		primary:     "تسوق الآن",
		secondary:   "اكتشف المزيد",
	},
	locale.French: {
		subtitle:    "Nouvelle Collection",
		description: "Découvrez nos dernières fragrances signature, pensées pour l'âme moderne.",
		primary:     "Boutique",
		secondary:   "Découvrir",
	},
}

const (
	defaultPrimaryLink   = "/shop"
	defaultSecondaryLink = "/guide"
)

// Presenter maps CMS records to views for one locale.
type Presenter struct {
	loc      locale.Locale
	resolver *media.Resolver
}

// NewPresenter binds a resolver to a locale.
func NewPresenter(loc locale.Locale, resolver *media.Resolver) Presenter {
	return Presenter{loc: loc, resolver: resolver}
}

// Card builds a product card.
func (p Presenter) Card(prod cms.Product) ProductCard {
	card := ProductCard{
		ID:             prod.ID,
		Slug:           prod.Slug,
		Name:           prod.Name,
		Price:          prod.Price,
		PriceLabel:     format.Price(prod.Price, p.loc.String()),
		CompareAtLabel: format.ComparePrice(prod.Price, prod.CompareAtPrice, p.loc.String()),
		TypeLabel:      format.ParfumTypeLabel(string(prod.ParfumType)),
		CategoryID:     prod.Category.ID,
		InStock:        prod.InStock,
	}
	if len(prod.Images) > 0 {
		card.Image = p.resolver.URL(prod.Images[0].Image)
		card.ImageAlt = prod.Images[0].Image.Alt()
	}
	switch {
	case prod.Featured:
		card.Badge = BadgeBestseller
	case prod.NewArrival:
		card.Badge = BadgeNew
	}
	return card
}

// Cards builds a card per product, keeping order.
func (p Presenter) Cards(products []cms.Product) []ProductCard {
	cards := make([]ProductCard, 0, len(products))
	for _, prod := range products {
		cards = append(cards, p.Card(prod))
	}
	return cards
}

// Detail builds the product page view.
func (p Presenter) Detail(prod cms.Product) ProductDetail {
	images := make([]media.Image, 0, len(prod.Images))
	for _, img := range prod.Images {
		images = append(images, img.Image)
	}

	notes := NotesView{Top: missingNote, Middle: missingNote, Base: missingNote}
	if prod.Notes != nil {
		notes = NotesView{
			Top:    orDefault(prod.Notes.Top, missingNote),
			Middle: orDefault(prod.Notes.Middle, missingNote),
			Base:   orDefault(prod.Notes.Base, missingNote),
		}
	}

	detail := ProductDetail{
		ProductCard:   p.Card(prod),
		Description:   prod.Description,
		Size:          orDefault(prod.Size, "50ml"),
		Images:        p.resolver.URLs(images),
		Notes:         notes,
		StockQuantity: prod.StockQuantity,
		NewArrival:    prod.NewArrival,
		Featured:      prod.Featured,
	}
	if len(prod.FullDescription) > 0 && string(prod.FullDescription) != "null" {
		detail.FullDescription = prod.FullDescription
	}
	if prod.Category.ID != "" {
		cat := p.Category(prod.Category)
		detail.Category = &cat
	}
	return detail
}

// Category builds a category view.
func (p Presenter) Category(cat cms.Category) CategoryView {
	return CategoryView{
		ID:           cat.ID,
		Slug:         cat.Slug,
		Name:         cat.Name,
		Description:  cat.Description,
		Image:        p.resolver.URL(cat.Image),
		DisplayOrder: cat.DisplayOrder,
	}
}

// Categories sorts by display order, keeping server order for ties, and
// builds the views.
func (p Presenter) Categories(cats []cms.Category) []CategoryView {
	sorted := slices.Clone(cats)
	slices.SortStableFunc(sorted, func(a, b cms.Category) int {
		return cmp.Compare(a.DisplayOrder, b.DisplayOrder)
	})
	views := make([]CategoryView, 0, len(sorted))
	for _, cat := range sorted {
		views = append(views, p.Category(cat))
	}
	return views
}

// HeroSlide builds a slide view, filling localized defaults.
func (p Presenter) HeroSlide(slide cms.HeroSlide) HeroSlideView {
	copyText := heroCopy[p.loc]
	return HeroSlideView{
		ID:          slide.ID,
		Title:       slide.Title,
		Subtitle:    orDefault(slide.Subtitle, copyText.subtitle),
		Description: orDefault(slide.Description, copyText.description),
		Image:       p.resolver.URL(slide.BackgroundImage),
		Primary: ButtonView{
			Text: orDefault(slide.PrimaryButton.Text, copyText.primary),
			Link: orDefault(slide.PrimaryButton.Link, defaultPrimaryLink),
		},
		Secondary: ButtonView{
			Text: orDefault(slide.SecondaryButton.Text, copyText.secondary),
			Link: orDefault(slide.SecondaryButton.Link, defaultSecondaryLink),
		},
	}
}

// HeroSlides sorts slides by display order and builds the views.
func (p Presenter) HeroSlides(slides []cms.HeroSlide) []HeroSlideView {
	sorted := slices.Clone(slides)
	slices.SortStableFunc(sorted, func(a, b cms.HeroSlide) int {
		return cmp.Compare(a.DisplayOrder, b.DisplayOrder)
	})
	views := make([]HeroSlideView, 0, len(sorted))
	for _, s := range sorted {
		views = append(views, p.HeroSlide(s))
	}
	return views
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
