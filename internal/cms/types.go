package cms

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/example/fatales/internal/media"
)

// ParfumType is the fragrance concentration of a product.
type ParfumType string

const (
	EauDeParfum     ParfumType = "eau_de_parfum"
	EauDeToilette   ParfumType = "eau_de_toilette"
	ExtraitDeParfum ParfumType = "extrait_de_parfum"
	EauDeCologne    ParfumType = "eau_de_cologne"
)

// Category groups products. Lower DisplayOrder values come first.
type Category struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Slug         string      `json:"slug"`
	Description  string      `json:"description,omitempty"`
	Image        media.Image `json:"image"`
	DisplayOrder int         `json:"displayOrder"`
}

type categoryAlias Category

// UnmarshalJSON accepts an expanded category or a bare id.
func (c *Category) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*c = Category{}
		return nil
	}
	if data[0] == '"' {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return fmt.Errorf("decode category id: %w", err)
		}
		*c = Category{ID: id}
		return nil
	}
	var alias categoryAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return fmt.Errorf("decode category: %w", err)
	}
	*c = Category(alias)
	return nil
}

// Notes are the localized fragrance pyramid.
type Notes struct {
	Top    string `json:"top,omitempty"`
	Middle string `json:"middle,omitempty"`
	Base   string `json:"base,omitempty"`
}

// ProductImage is one row of the product gallery.
type ProductImage struct {
	ID    string      `json:"id,omitempty"`
	Image media.Image `json:"image"`
}

// Product is a perfume in the catalog.
type Product struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Slug            string          `json:"slug"`
	Description     string          `json:"description"`
	FullDescription json.RawMessage `json:"fullDescription,omitempty"`
	Price           float64         `json:"price"`
	CompareAtPrice  *float64        `json:"compareAtPrice,omitempty"`
	Category        Category        `json:"category"`
	ParfumType      ParfumType      `json:"parfumType"`
	Size            string          `json:"size"`
	Images          []ProductImage  `json:"images"`
	Notes           *Notes          `json:"notes,omitempty"`
	Featured        bool            `json:"featured"`
	NewArrival      bool            `json:"newArrival"`
	InStock         bool            `json:"inStock"`
	StockQuantity   int             `json:"stockQuantity"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// Button is a hero call to action.
type Button struct {
	Text string `json:"text"`
	Link string `json:"link"`
}

// HeroSlide is a homepage carousel slide.
type HeroSlide struct {
	ID              string      `json:"id"`
	Title           string      `json:"title"`
	Subtitle        string      `json:"subtitle,omitempty"`
	Description     string      `json:"description,omitempty"`
	BackgroundImage media.Image `json:"backgroundImage"`
	PrimaryButton   Button      `json:"primaryButton"`
	SecondaryButton Button      `json:"secondaryButton"`
	Active          bool        `json:"active"`
	DisplayOrder    int         `json:"displayOrder"`
}
