package alerts

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	dana = "44444444-4444-4444-4444-444444444444"
	evan = "55555555-5555-5555-5555-555555555555"
)

func do(t *testing.T, h echo.HandlerFunc, method, path, userID string, params ...string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, path, strings.NewReader(""))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", userID)
	for i := 0; i+1 < len(params); i += 2 {
		c.SetParamNames(params[i])
		c.SetParamValues(params[i+1])
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

func insert(t *testing.T, store *memNotifStore, userID, ntype, title string, reference *string) string {
	t.Helper()
	n := Notification{UserID: userID, Type: ntype, Title: title, Body: "body", Reference: reference}
	require.NoError(t, store.Insert(context.Background(), &n))
	require.NotEmpty(t, n.ID)
	require.False(t, n.CreatedAt.IsZero())
	return n.ID
}

func TestListNotifications(t *testing.T) {
	store := newMemNotifStore()
	h := NewNotificationHandler(store)

	ref := "66666666-6666-6666-6666-666666666666"
	insert(t, store, dana, "SWAP_REQUEST", "New swap request", &ref)
	insert(t, store, dana, "RATING", "You received a rating", nil)
	insert(t, store, evan, "WELCOME", "Welcome to Skill Swap", nil)

	rec := do(t, h.List, http.MethodGet, "/api/notifications", dana)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	items := body["notifications"].([]any)
	require.Len(t, items, 2)
	assert.Equal(t, float64(2), body["unread_count"])

	// Newest first.
	first := items[0].(map[string]any)
	assert.Equal(t, "RATING", first["type"])
	assert.Nil(t, first["read_at"])

	second := items[1].(map[string]any)
	assert.Equal(t, "SWAP_REQUEST", second["type"])
	assert.Equal(t, ref, second["reference"])
}

func TestListNotificationsEmpty(t *testing.T) {
	h := NewNotificationHandler(newMemNotifStore())

	rec := do(t, h.List, http.MethodGet, "/api/notifications", dana)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.Empty(t, body["notifications"])
	assert.Equal(t, float64(0), body["unread_count"])
}

func TestMarkNotificationRead(t *testing.T) {
	store := newMemNotifStore()
	h := NewNotificationHandler(store)

	id := insert(t, store, dana, "RATING", "You received a rating", nil)

	rec := do(t, h.MarkRead, http.MethodPost, "/api/notifications/"+id+"/read", dana, "id", id)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h.List, http.MethodGet, "/api/notifications", dana)
	body := decode(t, rec)
	assert.Equal(t, float64(0), body["unread_count"])
	item := body["notifications"].([]any)[0].(map[string]any)
	assert.NotNil(t, item["read_at"])

	// Marking twice is not found.
	rec = do(t, h.MarkRead, http.MethodPost, "/api/notifications/"+id+"/read", dana, "id", id)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMarkNotificationReadOwnerOnly(t *testing.T) {
	store := newMemNotifStore()
	h := NewNotificationHandler(store)

	id := insert(t, store, dana, "RATING", "You received a rating", nil)

	rec := do(t, h.MarkRead, http.MethodPost, "/api/notifications/"+id+"/read", evan, "id", id)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMarkAllNotificationsRead(t *testing.T) {
	store := newMemNotifStore()
	h := NewNotificationHandler(store)

	insert(t, store, dana, "SWAP_REQUEST", "New swap request", nil)
	insert(t, store, dana, "SWAP_RESPONSE", "Swap request accepted", nil)
	insert(t, store, evan, "WELCOME", "Welcome to Skill Swap", nil)

	rec := do(t, h.MarkAllRead, http.MethodPost, "/api/notifications/read-all", dana)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(2), decode(t, rec)["updated"])

	rec = do(t, h.List, http.MethodGet, "/api/notifications", dana)
	assert.Equal(t, float64(0), decode(t, rec)["unread_count"])

	// Evan's stays unread.
	rec = do(t, h.List, http.MethodGet, "/api/notifications", evan)
	assert.Equal(t, float64(1), decode(t, rec)["unread_count"])
}
