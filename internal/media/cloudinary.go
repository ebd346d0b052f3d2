package media

import (
	"fmt"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
)

// CloudinaryBuilder builds delivery URLs for assets known only by public id.
type CloudinaryBuilder struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryBuilder parses a cloudinary:// URL.
func NewCloudinaryBuilder(cloudinaryURL string) (*CloudinaryBuilder, error) {
	if cloudinaryURL == "" {
		return nil, fmt.Errorf("cloudinary URL is required")
	}

	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	cld.Config.URL.Secure = true
	cld.Config.URL.Analytics = false

	return &CloudinaryBuilder{cld: cld}, nil
}

// BuildURL returns an https URL with AutoTransformation applied.
func (b *CloudinaryBuilder) BuildURL(publicID string) (string, error) {
	publicID = strings.TrimSpace(publicID)
	if publicID == "" {
		return "", fmt.Errorf("public id is required")
	}

	img, err := b.cld.Image(publicID)
	if err != nil {
		return "", fmt.Errorf("build image asset: %w", err)
	}
	img.Transformation = AutoTransformation

	u, err := img.String()
	if err != nil {
		return "", fmt.Errorf("render image url: %w", err)
	}
	return forceHTTPS(u), nil
}

// forceHTTPS ensures CDN URLs use the https scheme.
func forceHTTPS(in string) string {
	out := strings.TrimSpace(in)
	return strings.Replace(out, "http://", "https://", 1)
}
