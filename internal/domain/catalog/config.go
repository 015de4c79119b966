package catalog

import "strings"

// Hero media types
const (
	HeroTypeVideo = "video"
	HeroTypeImage = "image"
)

// ShopConfig is the storefront configuration delivered to the client:
// the shop title and the hero media shown on the landing screen.
type ShopConfig struct {
	Title    string `json:"title"`
	LogoURL  string `json:"logo_url"`
	VideoURL string `json:"video_url"`
	HeroURL  string `json:"hero_url"`
	HeroType string `json:"hero_type"`
}

// NewShopConfig builds a ShopConfig, deriving the hero fields.
// Video takes precedence over the logo image when both are present.
func NewShopConfig(title, logoURL, videoURL string) ShopConfig {
	cfg := ShopConfig{
		Title:    title,
		LogoURL:  strings.TrimSpace(logoURL),
		VideoURL: strings.TrimSpace(videoURL),
	}
	switch {
	case cfg.VideoURL != "":
		cfg.HeroURL = cfg.VideoURL
		cfg.HeroType = HeroTypeVideo
	case cfg.LogoURL != "":
		cfg.HeroURL = cfg.LogoURL
		cfg.HeroType = HeroTypeImage
	}
	return cfg
}

// HasHero reports whether any hero media is configured
func (c ShopConfig) HasHero() bool {
	return c.HeroURL != ""
}
