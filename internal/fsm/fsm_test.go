package fsm

import "testing"

func TestCanTransitionResponse(t *testing.T) {
	if !CanTransitionResponse(StatusPending, StatusAccepted) {
		t.Fatal("expected pending -> accepted to be allowed")
	}
	if !CanTransitionResponse(StatusPending, StatusRejected) {
		t.Fatal("expected pending -> rejected to be allowed")
	}
	if !CanTransitionResponse(StatusPending, StatusWithdrawn) {
		t.Fatal("expected pending -> withdrawn to be allowed")
	}
	if CanTransitionResponse(StatusPending, StatusExpired) {
		t.Fatal("responses must not expire")
	}
	if CanTransitionResponse(StatusAccepted, StatusRejected) {
		t.Fatal("accepted is terminal")
	}
	if CanTransitionResponse(StatusWithdrawn, StatusWithdrawn) {
		t.Fatal("withdrawn is terminal, repeat withdraw must be rejected")
	}
}

func TestCanTransitionOffer(t *testing.T) {
	if !CanTransitionOffer(StatusPending, StatusAccepted) {
		t.Fatal("expected pending -> accepted to be allowed")
	}
	if !CanTransitionOffer(StatusPending, StatusExpired) {
		t.Fatal("expected pending -> expired to be allowed")
	}
	if CanTransitionOffer(StatusPending, StatusWithdrawn) {
		t.Fatal("offers must not be withdrawn")
	}
	if CanTransitionOffer(StatusExpired, StatusAccepted) {
		t.Fatal("expired is terminal")
	}
	if CanTransitionOffer(StatusRejected, StatusPending) {
		t.Fatal("terminal status must not go back to pending")
	}
}

func TestIsTerminal(t *testing.T) {
	if IsTerminal(StatusPending) {
		t.Fatal("pending is not terminal")
	}
	for _, s := range []string{StatusAccepted, StatusRejected, StatusWithdrawn, StatusExpired} {
		if !IsTerminal(s) {
			t.Fatalf("expected %s to be terminal", s)
		}
	}
}
