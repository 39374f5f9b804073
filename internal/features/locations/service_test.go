package locations_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"serotonyl.ru/dogspots/internal/common"
	"serotonyl.ru/dogspots/internal/db/memory"
	"serotonyl.ru/dogspots/internal/features/locations"
)

func validLocation() *locations.Location {
	return &locations.Location{
		Name:        "Hyde Park",
		Description: "Huge park with a lake",
		Category:    "park",
		Address:     "London W2 2UH",
		Latitude:    51.5073,
		Longitude:   -0.1657,
		Rating:      4.8,
		Features:    " off-lead ,, water bowls ",
	}
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	svc := locations.NewService(memory.New().Locations())

	created, err := svc.Create(ctx, validLocation())
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "off-lead, water bowls", created.Features)
	assert.Equal(t, []string{"off-lead", "water bowls"}, created.FeatureList())

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = svc.Get(ctx, 999)
	assert.ErrorIs(t, err, common.ErrLocationNotFound)
}

func TestCreate_RatingNotClamped(t *testing.T) {
	svc := locations.NewService(memory.New().Locations())
	l := validLocation()
	l.Rating = 7.5

	created, err := svc.Create(context.Background(), l)
	require.NoError(t, err)
	assert.Equal(t, 7.5, created.Rating)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(l *locations.Location)
	}{
		{"без названия", func(l *locations.Location) { l.Name = "  " }},
		{"без категории", func(l *locations.Location) { l.Category = "" }},
		{"без адреса", func(l *locations.Location) { l.Address = "" }},
		{"широта", func(l *locations.Location) { l.Latitude = 91 }},
		{"долгота", func(l *locations.Location) { l.Longitude = -181 }},
		{"отрицательные отзывы", func(l *locations.Location) { l.ReviewCount = -1 }},
		{"отрицательная дистанция", func(l *locations.Location) { l.DistanceMiles = -0.1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := validLocation()
			tt.mutate(l)
			assert.ErrorIs(t, locations.Validate(l), common.ErrInvalidInput)
		})
	}
	assert.NoError(t, locations.Validate(validLocation()))
}

func TestSearchAndCategory(t *testing.T) {
	ctx := context.Background()
	svc := locations.NewService(memory.New().Locations())

	for _, l := range []*locations.Location{
		validLocation(),
		{Name: "Bark Cafe", Category: "Cafe", Address: "1 Paw Lane", Features: "treats", Rating: 4.1},
		{Name: "Pet Shop", Category: "shop", Address: "2 Paw Lane", Description: "Near the park", Rating: 3.5},
	} {
		_, err := svc.Create(ctx, l)
		require.NoError(t, err)
	}

	found, err := svc.Search(ctx, "PARK")
	require.NoError(t, err)
	assert.Len(t, found, 2)

	found, err = svc.Search(ctx, "paw lane")
	require.NoError(t, err)
	assert.Len(t, found, 2)

	_, err = svc.Search(ctx, "   ")
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	cafes, err := svc.ByCategory(ctx, "cafe")
	require.NoError(t, err)
	require.Len(t, cafes, 1)
	assert.Equal(t, "Bark Cafe", cafes[0].Name)

	none, err := svc.ByCategory(ctx, "vet")
	require.NoError(t, err)
	assert.Empty(t, none)

	good, err := svc.List(ctx, locations.Filter{MinRating: 4})
	require.NoError(t, err)
	assert.Len(t, good, 2)

	_, err = svc.List(ctx, locations.Filter{MinRating: -1})
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestFilterMatch(t *testing.T) {
	l := validLocation()
	assert.True(t, locations.Filter{}.Match(l))
	assert.True(t, locations.Filter{Category: "PARK"}.Match(l))
	assert.False(t, locations.Filter{Category: "cafe"}.Match(l))
	assert.True(t, locations.Filter{Query: "lake"}.Match(l))
	assert.True(t, locations.Filter{Query: "  WATER  "}.Match(l))
	assert.False(t, locations.Filter{Query: "beach"}.Match(l))
	assert.False(t, locations.Filter{MinRating: 4.9}.Match(l))
}
