package fsm

// Status constants shared by the response and offer state machines.
const (
	StatusPending   = "pending"
	StatusAccepted  = "accepted"
	StatusRejected  = "rejected"
	StatusWithdrawn = "withdrawn"
	StatusExpired   = "expired"
)

// pending is the only non-terminal status; every transition out of it is
// final. Withdrawn exists only for responses, expired only for offers.
var responseTransitions = map[string]map[string]struct{}{
	StatusPending: {
		StatusAccepted:  {},
		StatusRejected:  {},
		StatusWithdrawn: {},
	},
	StatusAccepted:  {},
	StatusRejected:  {},
	StatusWithdrawn: {},
}

var offerTransitions = map[string]map[string]struct{}{
	StatusPending: {
		StatusAccepted: {},
		StatusRejected: {},
		StatusExpired:  {},
	},
	StatusAccepted: {},
	StatusRejected: {},
	StatusExpired:  {},
}

func canTransition(transitions map[string]map[string]struct{}, from, to string) bool {
	allowed, ok := transitions[from]
	if !ok {
		return false
	}
	_, ok = allowed[to]
	return ok
}

// CanTransitionResponse reports whether a response may move from one status
// to another.
func CanTransitionResponse(from, to string) bool {
	return canTransition(responseTransitions, from, to)
}

// CanTransitionOffer reports whether an offer may move from one status to
// another.
func CanTransitionOffer(from, to string) bool {
	return canTransition(offerTransitions, from, to)
}

// IsTerminal reports whether a status admits no further transitions.
func IsTerminal(status string) bool {
	return status != StatusPending
}
