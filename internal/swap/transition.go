package swap

import "github.com/skillswap/api/internal/apperr"

// Action is a lifecycle operation requested by a participant.
type Action string

const (
	ActionAccept Action = "accept"
	ActionReject Action = "reject"
	ActionCancel Action = "cancel"
)

type transitionKey struct {
	from   Status
	action Action
}

// transitions is the single source of truth for the request lifecycle.
// Every mutating handler goes through Apply; nothing else changes status.
var transitions = map[transitionKey]Status{
	{StatusPending, ActionAccept}: StatusAccepted,
	{StatusPending, ActionReject}: StatusRejected,
	{StatusPending, ActionCancel}: StatusCancelled,
}

// Next returns the target state for (from, action), if the transition exists.
func Next(from Status, action Action) (Status, bool) {
	to, ok := transitions[transitionKey{from, action}]
	return to, ok
}

// actorFor returns which participant may perform the action.
func actorFor(r *Request, action Action) string {
	if action == ActionCancel {
		return r.SenderID
	}
	return r.ReceiverID
}

// Apply checks the actor guard and the transition table, returning the
// target status or a classified error.
func Apply(r *Request, action Action, actorID string) (Status, error) {
	if actorID != actorFor(r, action) {
		if action == ActionCancel {
			return "", apperr.Authorization("only the sender can cancel this request")
		}
		return "", apperr.Authorization("only the receiver can respond to this request")
	}
	to, ok := Next(r.Status, action)
	if !ok {
		if action == ActionCancel {
			return "", apperr.State("only pending requests can be cancelled")
		}
		return "", apperr.State("this request has already been responded to")
	}
	return to, nil
}

// CanAccept reports whether userID may currently accept the request.
func CanAccept(r *Request, userID string) bool {
	_, ok := Next(r.Status, ActionAccept)
	return ok && r.ReceiverID == userID
}

// CanReject reports whether userID may currently reject the request.
func CanReject(r *Request, userID string) bool {
	_, ok := Next(r.Status, ActionReject)
	return ok && r.ReceiverID == userID
}

// CanCancel reports whether userID may currently cancel the request.
func CanCancel(r *Request, userID string) bool {
	_, ok := Next(r.Status, ActionCancel)
	return ok && r.SenderID == userID
}

// CanDelete reports whether the request is in a deletable state.
// Only terminal states that never carried a completed swap qualify.
func CanDelete(status Status) bool {
	return status == StatusCancelled || status == StatusRejected
}
