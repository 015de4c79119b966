// Package media normalizes catalog image and video URLs into directly
// renderable ones. Operators paste share links from Google Drive or
// GitHub; the resolver rewrites those into raw content URLs.
package media

import (
	"regexp"
	"strings"

	"github.com/storefront/backend/internal/application/storefront"
	"github.com/storefront/backend/internal/domain/catalog"
)

var (
	drivePattern  = regexp.MustCompile(`(?i)drive\.google\.com/file/d/([^/]+)`)
	rawGHPattern  = regexp.MustCompile(`(?i)raw\.githubusercontent\.com/([^/]+)/([^/]+)/refs/heads/main/`)
	rawGHReplace  = "raw.githubusercontent.com/$1/$2/main/"
	drivePrefixed = "https://drive.google.com/uc?export=view&id="
)

// Options toggles which media kinds the resolver exposes
type Options struct {
	GalleryEnabled bool
	VideoEnabled   bool
}

// Resolver rewrites share links into directly loadable media URLs
type Resolver struct {
	opts Options
}

// NewResolver creates a resolver with the given options
func NewResolver(opts Options) *Resolver {
	return &Resolver{opts: opts}
}

// Resolve normalizes a raw URL. Local image paths pass through
// untouched; everything else gets its query string stripped and the
// known share-link hosts rewritten. Resolve is idempotent.
func (r *Resolver) Resolve(rawURL string) string {
	u := strings.TrimSpace(rawURL)
	if u == "" {
		return ""
	}
	if strings.HasPrefix(u, "/images/") {
		return u
	}
	// Already-normalized Drive links carry their file id in the query;
	// stripping it would break them
	if strings.Contains(u, "drive.google.com/uc") {
		return u
	}
	if idx := strings.Index(u, "?"); idx > -1 {
		u = u[:idx]
	}
	if m := drivePattern.FindStringSubmatch(u); m != nil {
		return drivePrefixed + m[1]
	}
	return rawGHPattern.ReplaceAllString(u, rawGHReplace)
}

// ResolveGallery resolves every gallery URL of a product. Returns nil
// when the gallery feature is disabled.
func (r *Resolver) ResolveGallery(p *catalog.Product) []string {
	if !r.opts.GalleryEnabled {
		return nil
	}
	raw := p.GalleryURLs()
	if len(raw) == 0 {
		return nil
	}
	resolved := make([]string, 0, len(raw))
	for _, u := range raw {
		if v := r.Resolve(u); v != "" {
			resolved = append(resolved, v)
		}
	}
	return resolved
}

// ResolveVideo resolves the hero video URL. Returns empty when video
// playback is disabled.
func (r *Resolver) ResolveVideo(rawURL string) string {
	if !r.opts.VideoEnabled {
		return ""
	}
	return r.Resolve(rawURL)
}

// Ensure Resolver implements MediaResolver
var _ storefront.MediaResolver = (*Resolver)(nil)
