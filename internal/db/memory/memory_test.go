package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"serotonyl.ru/dogspots/internal/common"
	"serotonyl.ru/dogspots/internal/features/admin"
	"serotonyl.ru/dogspots/internal/features/locations"
	"serotonyl.ru/dogspots/internal/features/suggestions"
	"serotonyl.ru/dogspots/internal/features/users"
)

func newUser(t *testing.T, s *Store, name string) *users.User {
	t.Helper()
	u, err := s.Users().Create(context.Background(), &users.User{Username: name, PasswordHash: "x"})
	require.NoError(t, err)
	return u
}

func testPromoter() *suggestions.Promoter {
	return &suggestions.Promoter{
		FallbackLatitude:  51.5074,
		FallbackLongitude: -0.1278,
		Rating:            4.0,
		ReviewCount:       1,
		DistanceMiles:     0.5,
		DefaultImage:      "https://example.com/default.jpg",
		Reward:            5,
	}
}

func TestUserRepo_AddPointsConcurrent(t *testing.T) {
	s := New()
	u := newUser(t, s, "walker")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Users().AddPoints(context.Background(), u.ID, 1, users.TxTypeSuggestionApproved, "bonus")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := s.Users().GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(50), got.PawPoints)

	txs, err := s.Users().GetTransactions(context.Background(), u.ID, 0)
	require.NoError(t, err)
	assert.Len(t, txs, 50)
}

func TestUserRepo_Transactions(t *testing.T) {
	s := New()
	ctx := context.Background()
	u := newUser(t, s, "walker")
	other := newUser(t, s, "other")

	for i := int64(1); i <= 3; i++ {
		_, err := s.Users().AddPoints(ctx, u.ID, i, users.TxTypeSuggestionApproved, "")
		require.NoError(t, err)
	}
	_, err := s.Users().AddPoints(ctx, other.ID, 10, users.TxTypeSuggestionApproved, "")
	require.NoError(t, err)

	txs, err := s.Users().GetTransactions(ctx, u.ID, 2)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, int64(3), txs[0].Amount)
	assert.Equal(t, int64(2), txs[1].Amount)

	_, err = s.Users().AddPoints(ctx, 999, 1, users.TxTypeSuggestionApproved, "")
	assert.ErrorIs(t, err, common.ErrUserNotFound)

	_, err = s.Users().Create(ctx, &users.User{Username: "WALKER"})
	assert.ErrorIs(t, err, common.ErrUsernameTaken)
}

func TestSuggestionRepo_CreateForcesPending(t *testing.T) {
	s := New()
	u := newUser(t, s, "walker")

	created, err := s.Suggestions().Create(context.Background(), &suggestions.Suggestion{
		Name:       "Bark Cafe",
		UserID:     u.ID,
		Status:     suggestions.StatusApproved,
		LocationID: ptr(int64(42)),
		ReviewedBy: ptr(int64(7)),
	})
	require.NoError(t, err)
	assert.Equal(t, suggestions.StatusPending, created.Status)
	assert.Nil(t, created.LocationID)
	assert.Nil(t, created.ReviewedBy)
	assert.Nil(t, created.ReviewedAt)

	_, err = s.Suggestions().Create(context.Background(), &suggestions.Suggestion{Name: "Ghost", UserID: 999})
	assert.ErrorIs(t, err, common.ErrUserNotFound)
}

func TestSuggestionRepo_ReturnsCopies(t *testing.T) {
	s := New()
	u := newUser(t, s, "walker")
	created, err := s.Suggestions().Create(context.Background(), &suggestions.Suggestion{
		Name: "Bark Cafe", UserID: u.ID, Latitude: ptr(10.0), Longitude: ptr(20.0),
	})
	require.NoError(t, err)

	*created.Latitude = 0
	created.Name = "changed"

	got, err := s.Suggestions().GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bark Cafe", got.Name)
	assert.Equal(t, 10.0, *got.Latitude)
}

func TestSuggestionRepo_TransitionMissingAuthorChangesNothing(t *testing.T) {
	s := New()
	ctx := context.Background()
	u := newUser(t, s, "walker")
	sg, err := s.Suggestions().Create(ctx, &suggestions.Suggestion{Name: "Bark Cafe", Category: "cafe", UserID: u.ID})
	require.NoError(t, err)

	s.mu.Lock()
	delete(s.users, u.ID)
	s.mu.Unlock()

	_, err = s.Suggestions().Transition(ctx, sg.ID, suggestions.StatusApproved, 100, testPromoter())
	require.ErrorIs(t, err, common.ErrUserNotFound)

	got, err := s.Suggestions().GetByID(ctx, sg.ID)
	require.NoError(t, err)
	assert.Equal(t, suggestions.StatusPending, got.Status)
	assert.Nil(t, got.LocationID)
	assert.Nil(t, got.ReviewedBy)

	all, err := s.Locations().List(ctx, locations.Filter{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSuggestionRepo_TransitionPromotesOnce(t *testing.T) {
	s := New()
	ctx := context.Background()
	u := newUser(t, s, "walker")
	sg, err := s.Suggestions().Create(ctx, &suggestions.Suggestion{Name: "Bark Cafe", Category: "cafe", UserID: u.ID})
	require.NoError(t, err)

	first, err := s.Suggestions().Transition(ctx, sg.ID, suggestions.StatusApproved, 100, testPromoter())
	require.NoError(t, err)
	require.NotNil(t, first.Location)
	assert.Equal(t, suggestions.StatusPending, first.Previous)
	assert.Equal(t, int64(5), first.Reward)

	_, err = s.Suggestions().Transition(ctx, sg.ID, suggestions.StatusRejected, 101, testPromoter())
	require.NoError(t, err)
	second, err := s.Suggestions().Transition(ctx, sg.ID, suggestions.StatusApproved, 100, testPromoter())
	require.NoError(t, err)
	assert.Nil(t, second.Location)
	assert.Zero(t, second.Reward)
	assert.Equal(t, suggestions.StatusRejected, second.Previous)
	assert.Equal(t, first.Location.ID, *second.Suggestion.LocationID)

	author, err := s.Users().GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), author.PawPoints)
}

func TestLocationRepo_List(t *testing.T) {
	s := New()
	ctx := context.Background()
	for _, l := range []*locations.Location{
		{Name: "Hyde Park", Category: "park", Rating: 4.8},
		{Name: "Bark Cafe", Category: "Cafe", Rating: 3.9, Features: "treats"},
		{Name: "Pet Shop", Category: "shop", Rating: 4.2},
	} {
		_, err := s.Locations().Create(ctx, l)
		require.NoError(t, err)
	}

	all, err := s.Locations().List(ctx, locations.Filter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []int64{1, 2, 3}, []int64{all[0].ID, all[1].ID, all[2].ID})

	cafes, err := s.Locations().List(ctx, locations.Filter{Category: "cafe"})
	require.NoError(t, err)
	require.Len(t, cafes, 1)
	assert.Equal(t, "Bark Cafe", cafes[0].Name)

	good, err := s.Locations().List(ctx, locations.Filter{MinRating: 4})
	require.NoError(t, err)
	assert.Len(t, good, 2)

	treats, err := s.Locations().List(ctx, locations.Filter{Query: "TREAT"})
	require.NoError(t, err)
	assert.Len(t, treats, 1)

	_, err = s.Locations().GetByID(ctx, 99)
	assert.ErrorIs(t, err, common.ErrLocationNotFound)
}

func TestAdminRepo_DeleteExpired(t *testing.T) {
	s := New()
	ctx := context.Background()
	base := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }

	require.NoError(t, s.Admin().CreateSession(ctx, &admin.Session{UserID: 1, SessionToken: "old", ExpiresAt: base.Add(time.Hour)}))
	require.NoError(t, s.Admin().CreateSession(ctx, &admin.Session{UserID: 2, SessionToken: "fresh", ExpiresAt: base.Add(48 * time.Hour)}))
	require.NoError(t, s.Admin().LogAttempt(ctx, 1, false))

	n, err := s.Admin().CountRecentFailures(ctx, 1, base.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	deleted, err := s.Admin().DeleteExpired(ctx, base.Add(3*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	_, err = s.Admin().GetSessionByToken(ctx, "old")
	assert.ErrorIs(t, err, common.ErrSessionExpired)
	fresh, err := s.Admin().GetSessionByToken(ctx, "fresh")
	require.NoError(t, err)
	assert.True(t, fresh.IsActive)

	require.NoError(t, s.Admin().DeactivateSessions(ctx, 2))
	deleted, err = s.Admin().DeleteExpired(ctx, base)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
}
