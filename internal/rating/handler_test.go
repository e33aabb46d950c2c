package rating

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillswap/api/internal/swap"
)

const (
	alice  = "11111111-1111-1111-1111-111111111111"
	bob    = "22222222-2222-2222-2222-222222222222"
	eve    = "33333333-3333-3333-3333-333333333333"
	swapID = "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"
)

func setup() (*Handler, *memStore) {
	store := newMemStore()
	store.addUser(alice, "Alice")
	store.addUser(bob, "Bob")
	store.addUser(eve, "Eve")
	store.addSwap(swapID, alice, bob, swap.StatusAccepted)
	return NewHandler(store), store
}

func do(t *testing.T, h echo.HandlerFunc, method, path, body, userID, paramName, paramValue string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", userID)
	if paramName != "" {
		c.SetParamNames(paramName)
		c.SetParamValues(paramValue)
	}
	require.NoError(t, h(c))
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func submit(t *testing.T, h *Handler, rater, rated string, value int) *httptest.ResponseRecorder {
	t.Helper()
	body := `{"swap_request_id":"` + swapID + `","rated_user_id":"` + rated + `","rating":` +
		string(rune('0'+value)) + `,"feedback":"great swap"}`
	return do(t, h.Submit, http.MethodPost, "/api/ratings/submit", body, rater, "", "")
}

func TestSubmitRating(t *testing.T) {
	h, _ := setup()
	rec := submit(t, h, alice, bob, 5)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	body := decode(t, rec)
	r := body["rating"].(map[string]any)
	assert.Equal(t, bob, r["rated_user_id"])
	assert.EqualValues(t, 5, r["rating"])
	assert.Equal(t, true, r["is_public"])
}

func TestSubmitRatingSwapMissing(t *testing.T) {
	h, _ := setup()
	body := `{"swap_request_id":"bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb","rated_user_id":"` + bob + `","rating":4}`
	rec := do(t, h.Submit, http.MethodPost, "/api/ratings/submit", body, alice, "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSubmitRatingRequiresAcceptedSwap(t *testing.T) {
	h, store := setup()
	store.addSwap("pending-swap", alice, bob, swap.StatusPending)

	body := `{"swap_request_id":"pending-swap","rated_user_id":"` + bob + `","rating":4}`
	rec := do(t, h.Submit, http.MethodPost, "/api/ratings/submit", body, alice, "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "accepted")
}

func TestSubmitRatingParticipantOnly(t *testing.T) {
	h, _ := setup()
	rec := submit(t, h, eve, bob, 4)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestSubmitRatingMustTargetOtherParticipant(t *testing.T) {
	h, _ := setup()
	// Rating yourself is rejected.
	rec := submit(t, h, alice, alice, 4)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Rating an outsider is rejected.
	rec = submit(t, h, alice, eve, 4)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitRatingDuplicate(t *testing.T) {
	h, _ := setup()
	require.Equal(t, http.StatusCreated, submit(t, h, alice, bob, 5).Code)

	rec := submit(t, h, alice, bob, 3)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSubmitRatingValueBounds(t *testing.T) {
	h, _ := setup()
	for _, value := range []int{0, 6} {
		rec := submit(t, h, alice, bob, value)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	}
}

func TestSwapRatingsFlags(t *testing.T) {
	h, _ := setup()

	rec := do(t, h.SwapRatings, http.MethodGet, "/api/ratings/swap/"+swapID, "", alice, "id", swapID)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, true, body["can_rate"])
	assert.Equal(t, false, body["user_has_rated"])
	assert.Equal(t, false, body["other_user_has_rated"])

	require.Equal(t, http.StatusCreated, submit(t, h, alice, bob, 5).Code)

	// Rater side: already rated, cannot rate again.
	rec = do(t, h.SwapRatings, http.MethodGet, "/api/ratings/swap/"+swapID, "", alice, "id", swapID)
	body = decode(t, rec)
	assert.Equal(t, false, body["can_rate"])
	assert.Equal(t, true, body["user_has_rated"])
	assert.Equal(t, false, body["other_user_has_rated"])

	// Other side: sees the mirror image.
	rec = do(t, h.SwapRatings, http.MethodGet, "/api/ratings/swap/"+swapID, "", bob, "id", swapID)
	body = decode(t, rec)
	assert.Equal(t, true, body["can_rate"])
	assert.Equal(t, false, body["user_has_rated"])
	assert.Equal(t, true, body["other_user_has_rated"])
}

func TestSwapRatingsParticipantOnly(t *testing.T) {
	h, _ := setup()
	rec := do(t, h.SwapRatings, http.MethodGet, "/api/ratings/swap/"+swapID, "", eve, "id", swapID)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUserRatingsAndStatsExcludePrivate(t *testing.T) {
	h, store := setup()
	store.addSwap("swap2", eve, bob, swap.StatusAccepted)
	store.addSwap("swap3", bob, alice, swap.StatusAccepted)

	// Three public ratings of bob: 5, 3, 4. One private: 1.
	require.Equal(t, http.StatusCreated, submit(t, h, alice, bob, 5).Code)
	body := `{"swap_request_id":"swap2","rated_user_id":"` + bob + `","rating":3}`
	require.Equal(t, http.StatusCreated,
		do(t, h.Submit, http.MethodPost, "/api/ratings/submit", body, eve, "", "").Code)
	body = `{"swap_request_id":"swap3","rated_user_id":"` + bob + `","rating":4}`
	require.Equal(t, http.StatusCreated,
		do(t, h.Submit, http.MethodPost, "/api/ratings/submit", body, alice, "", "").Code)

	store.addSwap("swap4", eve, bob, swap.StatusAccepted)
	body = `{"swap_request_id":"swap4","rated_user_id":"` + bob + `","rating":1,"is_public":false}`
	require.Equal(t, http.StatusCreated,
		do(t, h.Submit, http.MethodPost, "/api/ratings/submit", body, eve, "", "").Code)

	rec := do(t, h.UserStats, http.MethodGet, "/api/ratings/stats/"+bob, "", alice, "id", bob)
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decode(t, rec)
	assert.InDelta(t, 4.0, stats["average_rating"].(float64), 0.0001)
	assert.EqualValues(t, 3, stats["total_ratings"])
	dist := stats["distribution"].(map[string]any)
	assert.EqualValues(t, 1, dist["3"])
	assert.EqualValues(t, 1, dist["4"])
	assert.EqualValues(t, 1, dist["5"])
	assert.EqualValues(t, 0, dist["1"])

	rec = do(t, h.UserRatings, http.MethodGet, "/api/ratings/user/"+bob, "", alice, "id", bob)
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode(t, rec)
	assert.Len(t, page["ratings"], 3)
	statistics := page["statistics"].(map[string]any)
	assert.InDelta(t, 4.0, statistics["average_rating"].(float64), 0.0001)
}

func TestUserStatsUnknownUser(t *testing.T) {
	h, _ := setup()
	rec := do(t, h.UserStats, http.MethodGet, "/api/ratings/stats/nobody", "", alice, "id", "nobody")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateRatingRaterOnly(t *testing.T) {
	h, store := setup()
	rec := submit(t, h, alice, bob, 5)
	require.Equal(t, http.StatusCreated, rec.Code)
	r := decode(t, rec)["rating"].(map[string]any)
	ratingID := r["id"].(string)

	rec = do(t, h.Update, http.MethodPut, "/api/ratings/"+ratingID,
		`{"rating":2}`, bob, "id", ratingID)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, h.Update, http.MethodPut, "/api/ratings/"+ratingID,
		`{"rating":2,"is_public":false}`, alice, "id", ratingID)
	require.Equal(t, http.StatusOK, rec.Code)

	stored, err := store.GetByID(nil, ratingID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Rating)
	assert.False(t, stored.IsPublic)
}

func TestDeleteRatingRaterOnly(t *testing.T) {
	h, _ := setup()
	rec := submit(t, h, alice, bob, 5)
	require.Equal(t, http.StatusCreated, rec.Code)
	r := decode(t, rec)["rating"].(map[string]any)
	ratingID := r["id"].(string)

	rec = do(t, h.Delete, http.MethodDelete, "/api/ratings/"+ratingID, "", bob, "id", ratingID)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, h.Delete, http.MethodDelete, "/api/ratings/"+ratingID, "", alice, "id", ratingID)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h.Delete, http.MethodDelete, "/api/ratings/"+ratingID, "", alice, "id", ratingID)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
