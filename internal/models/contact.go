package models

import "github.com/google/uuid"

// ContactSettings is the brand contact block shown in the footer and on the
// contact page. Only one row exists.
type ContactSettings struct {
	BaseModel
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	WhatsApp  string `json:"whatsapp"`
	TikTok    string `json:"tiktok"`
	Snapchat  string `json:"snapchat"`
	Facebook  string `json:"facebook"`
	Instagram string `json:"instagram"`

	TaglineEn string `json:"tagline_en"`
	TaglineAr string `json:"tagline_ar"`
	TaglineFr string `json:"tagline_fr"`

	CopyrightEn string `json:"copyright_en"`
	CopyrightAr string `json:"copyright_ar"`
	CopyrightFr string `json:"copyright_fr"`

	Branches []Branch `gorm:"foreignKey:ContactSettingsID;constraint:OnDelete:CASCADE" json:"branches"`
}

// Branch is a physical boutique.
type Branch struct {
	BaseModel
	ContactSettingsID uuid.UUID `gorm:"type:uuid;index" json:"-"`
	Key               string    `json:"key"`
	NameEn            string    `json:"name_en"`
	NameAr            string    `json:"name_ar"`
	NameFr            string    `json:"name_fr"`
	AddressEn         string    `json:"address_en"`
	AddressAr         string    `json:"address_ar"`
	AddressFr         string    `json:"address_fr"`
	Coordinates       string    `json:"coordinates"`
	MapQuery          string    `json:"map_query"`
	Image             string    `json:"image"`
	DisplayOrder      int       `json:"display_order"`
}
