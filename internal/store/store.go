// Package store persists storefront-owned data with gorm.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/fatales/internal/models"
)

// ErrNotFound is returned when no row matches.
var ErrNotFound = errors.New("record not found")

// ContactStore reads and writes the contact settings singleton.
type ContactStore interface {
	Get(ctx context.Context) (*models.ContactSettings, error)
	Save(ctx context.Context, input *models.ContactSettings) (*models.ContactSettings, error)
}

// ConciergeStore records callback requests.
type ConciergeStore interface {
	Create(ctx context.Context, req *models.ConciergeRequest) error
	SetStatus(ctx context.Context, id uuid.UUID, status models.ConciergeStatus) error
	List(ctx context.Context, offset, limit int) ([]models.ConciergeRequest, int64, error)
}

// Contacts is the gorm ContactStore.
type Contacts struct {
	db *gorm.DB
}

// NewContacts constructs Contacts.
func NewContacts(db *gorm.DB) *Contacts {
	return &Contacts{db: db}
}

func (s *Contacts) Get(ctx context.Context) (*models.ContactSettings, error) {
	var settings models.ContactSettings
	err := s.db.WithContext(ctx).
		Preload("Branches", func(db *gorm.DB) *gorm.DB { return db.Order("display_order ASC") }).
		First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load contact settings: %w", err)
	}
	return &settings, nil
}

// Save creates the row on first use and otherwise overwrites the editable
// fields. Branches are replaced as a whole.
func (s *Contacts) Save(ctx context.Context, input *models.ContactSettings) (*models.ContactSettings, error) {
	var saved models.ContactSettings
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.ContactSettings
		err := tx.First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			input.ID = uuid.Nil
			for i := range input.Branches {
				input.Branches[i].ID = uuid.Nil
			}
			if err := tx.Create(input).Error; err != nil {
				return err
			}
			saved = *input
			return nil
		}
		if err != nil {
			return err
		}

		// Copy field by field so created_at and the id survive a client
		// payload with zero values.
		existing.Email = input.Email
		existing.Phone = input.Phone
		existing.WhatsApp = input.WhatsApp
		existing.TikTok = input.TikTok
		existing.Snapchat = input.Snapchat
		existing.Facebook = input.Facebook
		existing.Instagram = input.Instagram
		existing.TaglineEn = input.TaglineEn
		existing.TaglineAr = input.TaglineAr
		existing.TaglineFr = input.TaglineFr
		existing.CopyrightEn = input.CopyrightEn
		existing.CopyrightAr = input.CopyrightAr
		existing.CopyrightFr = input.CopyrightFr

		if err := tx.Omit("Branches").Save(&existing).Error; err != nil {
			return err
		}
		if err := tx.Where("contact_settings_id = ?", existing.ID).Delete(&models.Branch{}).Error; err != nil {
			return err
		}
		existing.Branches = make([]models.Branch, len(input.Branches))
		for i, b := range input.Branches {
			b.ID = uuid.Nil
			b.ContactSettingsID = existing.ID
			existing.Branches[i] = b
		}
		if len(existing.Branches) > 0 {
			if err := tx.Create(&existing.Branches).Error; err != nil {
				return err
			}
		}
		saved = existing
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("save contact settings: %w", err)
	}
	return &saved, nil
}

// Concierge is the gorm ConciergeStore.
type Concierge struct {
	db *gorm.DB
}

// NewConcierge constructs Concierge.
func NewConcierge(db *gorm.DB) *Concierge {
	return &Concierge{db: db}
}

func (s *Concierge) Create(ctx context.Context, req *models.ConciergeRequest) error {
	if req.Status == "" {
		req.Status = models.ConciergeNew
	}
	if err := s.db.WithContext(ctx).Create(req).Error; err != nil {
		return fmt.Errorf("create concierge request: %w", err)
	}
	return nil
}

func (s *Concierge) SetStatus(ctx context.Context, id uuid.UUID, status models.ConciergeStatus) error {
	res := s.db.WithContext(ctx).Model(&models.ConciergeRequest{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("update concierge status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns the newest requests first with the total count.
func (s *Concierge) List(ctx context.Context, offset, limit int) ([]models.ConciergeRequest, int64, error) {
	var (
		items []models.ConciergeRequest
		total int64
	)
	if err := s.db.WithContext(ctx).Model(&models.ConciergeRequest{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count concierge requests: %w", err)
	}
	if err := s.db.WithContext(ctx).Order("created_at DESC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return nil, 0, fmt.Errorf("list concierge requests: %w", err)
	}
	return items, total, nil
}

var (
	_ ContactStore   = (*Contacts)(nil)
	_ ConciergeStore = (*Concierge)(nil)
)
