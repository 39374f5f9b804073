// Package suggestions — promotion.go превращает одобренное предложение в локацию.
package suggestions

import (
	"fmt"
	"strings"

	"serotonyl.ru/dogspots/internal/config"
	"serotonyl.ru/dogspots/internal/features/locations"
)

// Заглушки картинок по категориям, если автор не приложил фото.
var categoryImages = map[string]string{
	locations.CategoryCafe:       "https://images.unsplash.com/photo-1559925393-8be0ec4767c8?ixlib=rb-4.0.3",
	locations.CategoryRestaurant: "https://images.unsplash.com/photo-1555396273-367ea4eb4db5?ixlib=rb-4.0.3",
	locations.CategoryPark:       "https://images.unsplash.com/photo-1551730459-92db2a308d6a?ixlib=rb-4.0.3",
	locations.CategoryShop:       "https://images.unsplash.com/photo-1583337130417-3346a1be7dee?ixlib=rb-4.0.3",
}

// Promoter хранит параметры публикации: запасные координаты, стартовый рейтинг,
// картинку по умолчанию и награду автору.
type Promoter struct {
	FallbackLatitude  float64
	FallbackLongitude float64
	Rating            float64
	ReviewCount       int
	DistanceMiles     float64
	DefaultImage      string
	Reward            int64
}

// NewPromoter собирает Promoter из конфигурации.
func NewPromoter(cfg *config.Config) *Promoter {
	return &Promoter{
		FallbackLatitude:  cfg.PromotionLatitude,
		FallbackLongitude: cfg.PromotionLongitude,
		Rating:            cfg.PromotionRating,
		ReviewCount:       cfg.PromotionReviewCount,
		DistanceMiles:     cfg.PromotionDistanceMiles,
		DefaultImage:      cfg.PromotionDefaultImage,
		Reward:            cfg.RewardSuggestionPoints,
	}
}

// Location строит новую локацию из предложения (id назначит хранилище).
// Координаты берутся, только если заданы обе; иначе — запасные.
func (p *Promoter) Location(s *Suggestion) *locations.Location {
	lat, lng := p.FallbackLatitude, p.FallbackLongitude
	if s.HasCoordinates() {
		lat, lng = *s.Latitude, *s.Longitude
	}

	return &locations.Location{
		Name:          s.Name,
		Description:   s.Description,
		Category:      s.Category,
		Address:       s.Address,
		Latitude:      lat,
		Longitude:     lng,
		Rating:        p.Rating,
		ReviewCount:   p.ReviewCount,
		ImageURL:      p.image(s),
		Features:      s.Features,
		DistanceMiles: p.DistanceMiles,
	}
}

// RewardDescription — текст записи в журнале баллов.
func (p *Promoter) RewardDescription(s *Suggestion) string {
	return fmt.Sprintf("Suggestion #%d %q approved", s.ID, s.Name)
}

func (p *Promoter) image(s *Suggestion) string {
	if s.PhotoURL != nil && *s.PhotoURL != "" {
		return *s.PhotoURL
	}
	if img, ok := categoryImages[strings.ToLower(s.Category)]; ok {
		return img
	}
	return p.DefaultImage
}
