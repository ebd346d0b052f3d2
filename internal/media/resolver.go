package media

import (
	"strings"
)

// AutoTransformation asks the CDN for automatic format and quality.
const AutoTransformation = "f_auto,q_auto"

const uploadSegment = "/upload/"

// URLBuilder builds a delivery URL from a CDN public id.
type URLBuilder interface {
	BuildURL(publicID string) (string, error)
}

// Resolver turns image references into renderable URLs.
type Resolver struct {
	baseOrigin string
	builder    URLBuilder
}

// NewResolver creates a Resolver for the given CMS API URL. builder may be
// nil, in which case assets that only carry a public id resolve to "".
func NewResolver(apiURL string, builder URLBuilder) *Resolver {
	return &Resolver{
		baseOrigin: BaseOrigin(apiURL),
		builder:    builder,
	}
}

// BaseOrigin strips the trailing "/api" from the CMS API URL.
func BaseOrigin(apiURL string) string {
	base := strings.TrimRight(strings.TrimSpace(apiURL), "/")
	return strings.TrimSuffix(base, "/api")
}

// BaseOrigin returns the origin prepended to local paths.
func (r *Resolver) BaseOrigin() string {
	return r.baseOrigin
}

// URL resolves img, returning "" when nothing usable is present.
func (r *Resolver) URL(img Image) string {
	switch ref := img.Ref.(type) {
	case nil:
		return ""
	case AbsoluteURL:
		return string(ref)
	case LocalPath:
		return r.prefix(string(ref))
	case Asset:
		return r.assetURL(ref)
	default:
		return ""
	}
}

// URLs resolves every image, skipping the ones that resolve to "".
func (r *Resolver) URLs(images []Image) []string {
	out := make([]string, 0, len(images))
	for _, img := range images {
		if u := r.URL(img); u != "" {
			out = append(out, u)
		}
	}
	return out
}

func (r *Resolver) assetURL(a Asset) string {
	if a.SecureURL != "" {
		return Transform(a.SecureURL)
	}
	if a.ThumbnailURL != "" {
		return Transform(a.ThumbnailURL)
	}
	if a.RawURL != "" {
		if isAbsolute(a.RawURL) {
			return a.RawURL
		}
		return r.prefix(a.RawURL)
	}
	if a.PublicID != "" && r.builder != nil {
		if u, err := r.builder.BuildURL(a.PublicID); err == nil {
			return u
		}
	}
	return ""
}

func (r *Resolver) prefix(path string) string {
	if path == "" {
		return ""
	}
	if isAbsolute(path) {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return r.baseOrigin + path
}

// Transform inserts AutoTransformation directly after the upload segment,
// ahead of any version segment. URLs without an upload segment, or whose
// first segment after it is already a transformation, are returned as-is.
func Transform(rawURL string) string {
	idx := strings.Index(rawURL, uploadSegment)
	if idx < 0 {
		return rawURL
	}
	head := rawURL[:idx+len(uploadSegment)]
	rest := rawURL[idx+len(uploadSegment):]
	if hasTransformation(rest) {
		return rawURL
	}
	return head + AutoTransformation + "/" + rest
}

func hasTransformation(rest string) bool {
	first := rest
	if slash := strings.Index(rest, "/"); slash >= 0 {
		first = rest[:slash]
	}
	return strings.Contains(first, "f_auto") || strings.Contains(first, "q_auto")
}
