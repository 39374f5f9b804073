package common

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPluralizePoints(t *testing.T) {
	assert.Equal(t, "paw point", PluralizePoints(1))
	assert.Equal(t, "paw point", PluralizePoints(-1))
	assert.Equal(t, "paw points", PluralizePoints(0))
	assert.Equal(t, "paw points", PluralizePoints(5))
	assert.Equal(t, "15 paw points", FormatPoints(15))
	assert.Equal(t, "+5 paw points", FormatPointsAmount(5))
	assert.Equal(t, "-1 paw point", FormatPointsAmount(-1))
}

func TestSplitFeatures(t *testing.T) {
	assert.Equal(t, []string{"Water bowls", "Outdoor seating"}, SplitFeatures(" Water bowls ,, Outdoor seating ,"))
	assert.Empty(t, SplitFeatures(""))
	assert.Equal(t, "a, b", NormalizeFeatures("a ,b,"))
}

func TestFormatDateTime(t *testing.T) {
	ts := time.Date(2024, 3, 5, 14, 7, 0, 0, time.UTC)
	assert.Equal(t, "05.03.2024 14:07", FormatDateTime(ts, nil))
	assert.Equal(t, time.UTC, LoadTimezone("Not/AZone"))
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{ErrInvalidStatus, http.StatusBadRequest},
		{Invalid("name too short"), http.StatusBadRequest},
		{fmt.Errorf("wrap: %w", ErrSuggestionNotFound), http.StatusNotFound},
		{ErrUsernameTaken, http.StatusConflict},
		{ErrNotAdmin, http.StatusForbidden},
		{ErrSessionExpired, http.StatusUnauthorized},
		{ErrTooManyAttempts, http.StatusTooManyRequests},
		{fmt.Errorf("%w (limit 10 bytes)", ErrBodyTooLarge), http.StatusRequestEntityTooLarge},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, HTTPStatus(c.err), "%v", c.err)
	}
}

func TestWriteError_HidesInternalErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, errors.New("pq: password authentication failed"), "Failed to fetch locations")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"Failed to fetch locations"}`, rec.Body.String())
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Status string `json:"status"`
	}

	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"status":"approved"}`))
	require.NoError(t, DecodeJSON(req, &dst))
	assert.Equal(t, "approved", dst.Status)

	req = httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"status":"approved","extra":1}`))
	assert.ErrorIs(t, DecodeJSON(req, &dst), ErrInvalidInput)

	req = httptest.NewRequest(http.MethodPut, "/", strings.NewReader(``))
	assert.ErrorIs(t, DecodeJSON(req, &dst), ErrInvalidInput)
}

func TestDecodeJSONLimit(t *testing.T) {
	var dst struct {
		PhotoURL string `json:"photoUrl"`
	}
	photo := "data:image/jpeg;base64," + strings.Repeat("A", 2<<20)
	body := `{"photoUrl":"` + photo + `"}`

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	err := DecodeJSON(req, &dst)
	assert.ErrorIs(t, err, ErrBodyTooLarge)
	assert.NotErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, http.StatusRequestEntityTooLarge, HTTPStatus(err))

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	require.NoError(t, DecodeJSONLimit(req, &dst, MaxPhotoBodyBytes))
	assert.Equal(t, photo, dst.PhotoURL)
}

func TestParseHelpers(t *testing.T) {
	id, err := ParseID("7", "id")
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	_, err = ParseID("abc", "id")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = ParseID("0", "id")
	assert.ErrorIs(t, err, ErrInvalidInput)

	v, err := ParseFloat("", "minRating")
	require.NoError(t, err)
	assert.Zero(t, v)
	_, err = ParseFloat("x", "minRating")
	assert.Error(t, err)

	n, err := ParseLimit("500", 20, 100)
	require.NoError(t, err)
	assert.Equal(t, 100, n)
	n, err = ParseLimit("", 20, 100)
	require.NoError(t, err)
	assert.Equal(t, 20, n)
}

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("woof-woof")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=65536,t=3,p=2$"))

	assert.True(t, VerifyPassword("woof-woof", hash))
	assert.False(t, VerifyPassword("meow", hash))
	assert.False(t, VerifyPassword("woof-woof", "not-a-hash"))
}

func TestGenerateToken(t *testing.T) {
	a, err := GenerateToken()
	require.NoError(t, err)
	b, err := GenerateToken()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 44)
}
