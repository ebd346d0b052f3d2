// Package media models CMS image references and resolves them to URLs the
// storefront can render.
package media

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"strings"
)

// Ref is one of LocalPath, AbsoluteURL or Asset.
type Ref interface {
	isRef()
}

// LocalPath is a path served by the CMS itself, e.g. "/media/rose.jpg".
type LocalPath string

// AbsoluteURL is a fully qualified http(s) URL or a data URI.
type AbsoluteURL string

// Asset is an expanded media document. When stored on Cloudinary the
// secure URL and thumbnail carry the reliable public id; RawURL may be stale.
type Asset struct {
	ID           string
	Alt          string
	Filename     string
	MimeType     string
	Filesize     int64
	Width        int
	Height       int
	SecureURL    string
	ThumbnailURL string
	RawURL       string
	PublicID     string
	Format       string
}

func (LocalPath) isRef()   {}
func (AbsoluteURL) isRef() {}
func (Asset) isRef()       {}

// Image holds an optional reference. The zero value is an absent image.
type Image struct {
	Ref Ref
}

// Empty reports whether no reference is present.
func (i Image) Empty() bool {
	return i.Ref == nil
}

// Alt returns the alternative text when the reference carries one.
func (i Image) Alt() string {
	if a, ok := i.Ref.(Asset); ok {
		return a.Alt
	}
	return ""
}

// FromString classifies a plain string reference.
func FromString(s string) Image {
	s = strings.TrimSpace(s)
	if s == "" {
		return Image{}
	}
	if isAbsolute(s) {
		return Image{Ref: AbsoluteURL(s)}
	}
	return Image{Ref: LocalPath(s)}
}

type cloudinaryJSON struct {
	PublicID  string `json:"public_id"`
	SecureURL string `json:"secure_url"`
	Format    string `json:"format"`
}

type assetJSON struct {
	ID           string          `json:"id"`
	Alt          string          `json:"alt,omitempty"`
	URL          string          `json:"url,omitempty"`
	Filename     string          `json:"filename,omitempty"`
	MimeType     string          `json:"mimeType,omitempty"`
	Filesize     int64           `json:"filesize,omitempty"`
	Width        int             `json:"width,omitempty"`
	Height       int             `json:"height,omitempty"`
	ThumbnailURL string          `json:"thumbnailURL,omitempty"`
	Cloudinary   *cloudinaryJSON `json:"cloudinary,omitempty"`
}

// UnmarshalJSON accepts null, a string or a media document. Anything else
// decodes to an empty image so one bad field cannot fail the whole document.
func (i *Image) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*i = Image{}
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode image string: %w", err)
		}
		*i = FromString(s)
		return nil
	case '{':
		var raw assetJSON
		if err := json.Unmarshal(data, &raw); err != nil {
			log.Printf("[CMS] Ignoring malformed image object: %v", err)
			*i = Image{}
			return nil
		}
		asset := Asset{
			ID:           raw.ID,
			Alt:          raw.Alt,
			Filename:     raw.Filename,
			MimeType:     raw.MimeType,
			Filesize:     raw.Filesize,
			Width:        raw.Width,
			Height:       raw.Height,
			ThumbnailURL: raw.ThumbnailURL,
			RawURL:       raw.URL,
		}
		if raw.Cloudinary != nil {
			asset.SecureURL = raw.Cloudinary.SecureURL
			asset.PublicID = raw.Cloudinary.PublicID
			asset.Format = raw.Cloudinary.Format
		}
		*i = Image{Ref: asset}
		return nil
	default:
		log.Printf("[CMS] Ignoring unsupported image reference: %.40s", data)
		*i = Image{}
		return nil
	}
}

// MarshalJSON writes the reference back in the CMS shape.
func (i Image) MarshalJSON() ([]byte, error) {
	switch ref := i.Ref.(type) {
	case nil:
		return []byte("null"), nil
	case LocalPath:
		return json.Marshal(string(ref))
	case AbsoluteURL:
		return json.Marshal(string(ref))
	case Asset:
		out := assetJSON{
			ID:           ref.ID,
			Alt:          ref.Alt,
			URL:          ref.RawURL,
			Filename:     ref.Filename,
			MimeType:     ref.MimeType,
			Filesize:     ref.Filesize,
			Width:        ref.Width,
			Height:       ref.Height,
			ThumbnailURL: ref.ThumbnailURL,
		}
		if ref.SecureURL != "" || ref.PublicID != "" {
			out.Cloudinary = &cloudinaryJSON{
				PublicID:  ref.PublicID,
				SecureURL: ref.SecureURL,
				Format:    ref.Format,
			}
		}
		return json.Marshal(out)
	default:
		return nil, fmt.Errorf("unknown image reference %T", ref)
	}
}

func isAbsolute(s string) bool {
	return strings.HasPrefix(s, "http://") ||
		strings.HasPrefix(s, "https://") ||
		strings.HasPrefix(s, "data:")
}
