package swap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillswap/api/internal/apperr"
)

func pendingRequest() *Request {
	return &Request{ID: "r1", SenderID: "sender", ReceiverID: "receiver", Status: StatusPending}
}

func TestNextCoversOnlyPendingTransitions(t *testing.T) {
	cases := []struct {
		from   Status
		action Action
		want   Status
		ok     bool
	}{
		{StatusPending, ActionAccept, StatusAccepted, true},
		{StatusPending, ActionReject, StatusRejected, true},
		{StatusPending, ActionCancel, StatusCancelled, true},
		{StatusAccepted, ActionAccept, "", false},
		{StatusAccepted, ActionCancel, "", false},
		{StatusRejected, ActionAccept, "", false},
		{StatusCancelled, ActionCancel, "", false},
	}
	for _, tc := range cases {
		got, ok := Next(tc.from, tc.action)
		assert.Equal(t, tc.ok, ok, "%s/%s", tc.from, tc.action)
		if tc.ok {
			assert.Equal(t, tc.want, got)
		}
	}
}

func TestApplyActorGuards(t *testing.T) {
	r := pendingRequest()

	_, err := Apply(r, ActionAccept, "sender")
	assert.True(t, apperr.IsKind(err, apperr.KindAuthorization))

	_, err = Apply(r, ActionReject, "stranger")
	assert.True(t, apperr.IsKind(err, apperr.KindAuthorization))

	_, err = Apply(r, ActionCancel, "receiver")
	assert.True(t, apperr.IsKind(err, apperr.KindAuthorization))

	to, err := Apply(r, ActionAccept, "receiver")
	require.NoError(t, err)
	assert.Equal(t, StatusAccepted, to)

	to, err = Apply(r, ActionCancel, "sender")
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, to)
}

func TestApplyRejectsTerminalStates(t *testing.T) {
	for _, from := range []Status{StatusAccepted, StatusRejected, StatusCancelled} {
		r := pendingRequest()
		r.Status = from

		_, err := Apply(r, ActionAccept, "receiver")
		assert.True(t, apperr.IsKind(err, apperr.KindState), "accept from %s", from)

		_, err = Apply(r, ActionCancel, "sender")
		assert.True(t, apperr.IsKind(err, apperr.KindState), "cancel from %s", from)
	}
}

func TestDerivedFlags(t *testing.T) {
	r := pendingRequest()
	assert.True(t, CanAccept(r, "receiver"))
	assert.True(t, CanReject(r, "receiver"))
	assert.False(t, CanAccept(r, "sender"))
	assert.True(t, CanCancel(r, "sender"))
	assert.False(t, CanCancel(r, "receiver"))

	r.Status = StatusAccepted
	assert.False(t, CanAccept(r, "receiver"))
	assert.False(t, CanCancel(r, "sender"))
}

func TestCanDelete(t *testing.T) {
	assert.True(t, CanDelete(StatusCancelled))
	assert.True(t, CanDelete(StatusRejected))
	assert.False(t, CanDelete(StatusPending))
	assert.False(t, CanDelete(StatusAccepted))
}

func TestOtherParticipant(t *testing.T) {
	r := pendingRequest()
	assert.Equal(t, "receiver", r.OtherParticipant("sender"))
	assert.Equal(t, "sender", r.OtherParticipant("receiver"))
}
