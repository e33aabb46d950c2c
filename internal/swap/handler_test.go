package swap

import (
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
	alice = "11111111-1111-1111-1111-111111111111"
	bob   = "22222222-2222-2222-2222-222222222222"
	carol = "33333333-3333-3333-3333-333333333333"
)

func setup() (*Handler, *memStore) {
	store := newMemStore()
	store.addUser(alice, "Alice", true)
	store.addUser(bob, "Bob", true)
	store.addUser(carol, "Carol", false)
	return NewHandler(store), store
}

func do(t *testing.T, h echo.HandlerFunc, method, path, body, userID string, params ...string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
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

func createRequest(t *testing.T, h *Handler, sender, receiver string) string {
	t.Helper()
	rec := do(t, h.Create, http.MethodPost, "/api/requests/create",
		`{"receiver_id":"`+receiver+`","message":"let's swap"}`, sender)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decode(t, rec)
	request := body["request"].(map[string]any)
	return request["id"].(string)
}

func TestCreateRequest(t *testing.T) {
	h, _ := setup()

	rec := do(t, h.Create, http.MethodPost, "/api/requests/create",
		`{"receiver_id":"`+bob+`","message":"let's swap"}`, alice)
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decode(t, rec)
	request := body["request"].(map[string]any)
	assert.Equal(t, "PENDING", request["status"])
	assert.Equal(t, alice, request["sender_id"])
	assert.Equal(t, true, request["is_sender"])
	assert.Equal(t, false, request["can_accept"])
	assert.Equal(t, true, request["can_cancel"])
}

func TestCreateRequestToSelf(t *testing.T) {
	h, _ := setup()
	rec := do(t, h.Create, http.MethodPost, "/api/requests/create",
		`{"receiver_id":"`+alice+`"}`, alice)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateRequestReceiverMissing(t *testing.T) {
	h, _ := setup()
	rec := do(t, h.Create, http.MethodPost, "/api/requests/create",
		`{"receiver_id":"99999999-9999-9999-9999-999999999999"}`, alice)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateRequestPrivateReceiver(t *testing.T) {
	h, _ := setup()
	rec := do(t, h.Create, http.MethodPost, "/api/requests/create",
		`{"receiver_id":"`+carol+`"}`, alice)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "private profile")
}

func TestCreateRequestDuplicatePendingEitherDirection(t *testing.T) {
	h, _ := setup()
	createRequest(t, h, alice, bob)

	rec := do(t, h.Create, http.MethodPost, "/api/requests/create",
		`{"receiver_id":"`+bob+`"}`, alice)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Reverse direction is also blocked while the pair is pending.
	rec = do(t, h.Create, http.MethodPost, "/api/requests/create",
		`{"receiver_id":"`+alice+`"}`, bob)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRespondAccept(t *testing.T) {
	h, store := setup()
	id := createRequest(t, h, alice, bob)

	rec := do(t, h.Respond, http.MethodPut, "/api/requests/"+id+"/respond",
		`{"status":"ACCEPTED"}`, bob, "id", id)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	r, err := store.GetByID(nil, id)
	require.NoError(t, err)
	assert.Equal(t, StatusAccepted, r.Status)
}

func TestRespondOnlyReceiver(t *testing.T) {
	h, _ := setup()
	id := createRequest(t, h, alice, bob)

	rec := do(t, h.Respond, http.MethodPut, "/api/requests/"+id+"/respond",
		`{"status":"ACCEPTED"}`, alice, "id", id)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRespondTwice(t *testing.T) {
	h, _ := setup()
	id := createRequest(t, h, alice, bob)

	rec := do(t, h.Respond, http.MethodPut, "/api/requests/"+id+"/respond",
		`{"status":"REJECTED"}`, bob, "id", id)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h.Respond, http.MethodPut, "/api/requests/"+id+"/respond",
		`{"status":"ACCEPTED"}`, bob, "id", id)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRespondInvalidStatus(t *testing.T) {
	h, _ := setup()
	id := createRequest(t, h, alice, bob)

	rec := do(t, h.Respond, http.MethodPut, "/api/requests/"+id+"/respond",
		`{"status":"CANCELLED"}`, bob, "id", id)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCancelOnlySender(t *testing.T) {
	h, store := setup()
	id := createRequest(t, h, alice, bob)

	rec := do(t, h.Cancel, http.MethodPut, "/api/requests/"+id+"/cancel", "", bob, "id", id)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, h.Cancel, http.MethodPut, "/api/requests/"+id+"/cancel", "", alice, "id", id)
	require.Equal(t, http.StatusOK, rec.Code)

	r, err := store.GetByID(nil, id)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, r.Status)
}

func TestNewRequestAllowedAfterResolution(t *testing.T) {
	h, _ := setup()
	id := createRequest(t, h, alice, bob)

	rec := do(t, h.Cancel, http.MethodPut, "/api/requests/"+id+"/cancel", "", alice, "id", id)
	require.Equal(t, http.StatusOK, rec.Code)

	// The pair is free again once the pending request resolved.
	createRequest(t, h, bob, alice)
}

func TestDeleteRules(t *testing.T) {
	h, _ := setup()
	id := createRequest(t, h, alice, bob)

	// Pending requests are not deletable.
	rec := do(t, h.Delete, http.MethodDelete, "/api/requests/"+id, "", alice, "id", id)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h.Respond, http.MethodPut, "/api/requests/"+id+"/respond",
		`{"status":"REJECTED"}`, bob, "id", id)
	require.Equal(t, http.StatusOK, rec.Code)

	// Outsiders may not delete.
	rec = do(t, h.Delete, http.MethodDelete, "/api/requests/"+id, "", carol, "id", id)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, h.Delete, http.MethodDelete, "/api/requests/"+id, "", bob, "id", id)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h.Delete, http.MethodDelete, "/api/requests/"+id, "", bob, "id", id)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetParticipantOnly(t *testing.T) {
	h, _ := setup()
	id := createRequest(t, h, alice, bob)

	rec := do(t, h.Get, http.MethodGet, "/api/requests/"+id, "", carol, "id", id)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, h.Get, http.MethodGet, "/api/requests/"+id, "", bob, "id", id)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, true, body["is_receiver"])
	assert.Equal(t, true, body["can_accept"])
	assert.Equal(t, false, body["can_cancel"])
}

func TestMyRequestsFilters(t *testing.T) {
	h, _ := setup()
	sentID := createRequest(t, h, alice, bob)
	_ = sentID
	createRequest(t, h, carol, alice) // carol is private but can still send

	rec := do(t, h.MyRequests, http.MethodGet, "/api/requests/my-requests?type=sent", "", alice)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Len(t, body["requests"], 1)

	rec = do(t, h.MyRequests, http.MethodGet, "/api/requests/my-requests?type=all", "", alice)
	body = decode(t, rec)
	assert.Len(t, body["requests"], 2)
	pagination := body["pagination"].(map[string]any)
	assert.EqualValues(t, 2, pagination["total"])

	rec = do(t, h.MyRequests, http.MethodGet, "/api/requests/my-requests?status=accepted", "", alice)
	body = decode(t, rec)
	assert.Len(t, body["requests"], 0)

	rec = do(t, h.MyRequests, http.MethodGet, "/api/requests/my-requests?type=bogus", "", alice)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatsSummary(t *testing.T) {
	h, _ := setup()
	id := createRequest(t, h, alice, bob)
	rec := do(t, h.Respond, http.MethodPut, "/api/requests/"+id+"/respond",
		`{"status":"ACCEPTED"}`, bob, "id", id)
	require.Equal(t, http.StatusOK, rec.Code)
	createRequest(t, h, carol, alice)

	rec = do(t, h.Stats, http.MethodGet, "/api/requests/stats/summary", "", alice)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)

	sent := body["sent"].(map[string]any)
	received := body["received"].(map[string]any)
	assert.EqualValues(t, 1, sent["ACCEPTED"])
	assert.EqualValues(t, 0, sent["PENDING"])
	assert.EqualValues(t, 1, received["PENDING"])
}
