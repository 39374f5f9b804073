package suggestions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"serotonyl.ru/dogspots/internal/common"
	"serotonyl.ru/dogspots/internal/config"
)

func TestParseStatus(t *testing.T) {
	for _, raw := range []string{"pending", "approved", "rejected"} {
		st, err := ParseStatus(raw)
		require.NoError(t, err)
		assert.Equal(t, Status(raw), st)
	}
	for _, raw := range []string{"", "archived", "Approved", "approved "} {
		_, err := ParseStatus(raw)
		assert.ErrorIs(t, err, common.ErrInvalidStatus, raw)
	}
}

func TestNewPromoter_FromConfig(t *testing.T) {
	p := NewPromoter(&config.Config{
		PromotionLatitude:      1,
		PromotionLongitude:     2,
		PromotionRating:        3.5,
		PromotionReviewCount:   2,
		PromotionDistanceMiles: 0.7,
		PromotionDefaultImage:  "img",
		RewardSuggestionPoints: 9,
	})
	assert.Equal(t, &Promoter{
		FallbackLatitude:  1,
		FallbackLongitude: 2,
		Rating:            3.5,
		ReviewCount:       2,
		DistanceMiles:     0.7,
		DefaultImage:      "img",
		Reward:            9,
	}, p)
}

func TestPromoter_Location(t *testing.T) {
	p := &Promoter{FallbackLatitude: 51.5074, FallbackLongitude: -0.1278, Rating: 4, ReviewCount: 1, DistanceMiles: 0.5, DefaultImage: "default"}
	lat := 10.0

	s := &Suggestion{
		ID: 3, Name: "Bark Bar", Description: "Pub with a garden", Category: "Restaurant",
		Address: "1 High St", Features: "garden, water", Latitude: &lat,
	}
	l := p.Location(s)
	assert.Zero(t, l.ID)
	assert.Equal(t, "Bark Bar", l.Name)
	assert.Equal(t, "Restaurant", l.Category)
	assert.Equal(t, "garden, water", l.Features)
	// Только одна координата — берём запасные
	assert.Equal(t, 51.5074, l.Latitude)
	assert.Equal(t, -0.1278, l.Longitude)
	assert.Equal(t, categoryImages["restaurant"], l.ImageURL)
	assert.Equal(t, 4.0, l.Rating)
	assert.Equal(t, 1, l.ReviewCount)
	assert.Equal(t, 0.5, l.DistanceMiles)

	empty := ""
	s.PhotoURL = &empty
	s.Category = "grooming"
	assert.Equal(t, "default", p.Location(s).ImageURL)
}

func TestPromoter_RewardDescription(t *testing.T) {
	p := &Promoter{}
	assert.Equal(t, `Suggestion #7 "Dog Park Cafe" approved`, p.RewardDescription(&Suggestion{ID: 7, Name: "Dog Park Cafe"}))
}

func TestListFilter_Match(t *testing.T) {
	s := &Suggestion{UserID: 1, Status: StatusPending}
	assert.True(t, ListFilter{}.Match(s))
	assert.True(t, ListFilter{Status: StatusPending, UserID: 1}.Match(s))
	assert.False(t, ListFilter{Status: StatusApproved}.Match(s))
	assert.False(t, ListFilter{UserID: 2}.Match(s))
}
