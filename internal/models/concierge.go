package models

// ConciergeStatus tracks how far a request has been handled.
type ConciergeStatus string

const (
	ConciergeNew       ConciergeStatus = "new"
	ConciergeNotified  ConciergeStatus = "notified"
	ConciergeContacted ConciergeStatus = "contacted"
)

// ConciergeRequest is a visitor asking an advisor to call back, optionally
// about a specific product.
type ConciergeRequest struct {
	BaseModel
	Name        string          `gorm:"size:120;not null" json:"name"`
	Phone       string          `gorm:"size:32;not null;index" json:"phone"`
	Message     string          `gorm:"type:text" json:"message"`
	ProductSlug string          `gorm:"size:200" json:"product_slug,omitempty"`
	Locale      string          `gorm:"size:2" json:"locale"`
	Status      ConciergeStatus `gorm:"size:20;default:new;index" json:"status"`
}
