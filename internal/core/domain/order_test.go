package domain

import "testing"

func TestOrderStatus_IsValid(t *testing.T) {
	valid := []OrderStatus{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled}
	for _, s := range valid {
		if !s.IsValid() {
			t.Errorf("%q must be valid", s)
		}
	}

	invalid := []OrderStatus{"", "unknown", "Pending", "PENDING", "canceled"}
	for _, s := range invalid {
		if s.IsValid() {
			t.Errorf("%q must not be valid", s)
		}
	}
}

func TestOrderStatus_Transitions(t *testing.T) {
	cases := []struct {
		from OrderStatus
		to   OrderStatus
		want bool
	}{
		// Forward progression
		{StatusPending, StatusProcessing, true},
		{StatusProcessing, StatusShipped, true},
		{StatusShipped, StatusDelivered, true},

		// Cancellation from any non-terminal state
		{StatusPending, StatusCancelled, true},
		{StatusProcessing, StatusCancelled, true},
		{StatusShipped, StatusCancelled, true},

		// No skipping forward
		{StatusPending, StatusShipped, false},
		{StatusPending, StatusDelivered, false},
		{StatusProcessing, StatusDelivered, false},

		// No moving backward
		{StatusProcessing, StatusPending, false},
		{StatusShipped, StatusProcessing, false},
		{StatusDelivered, StatusShipped, false},

		// Terminal states allow nothing
		{StatusDelivered, StatusCancelled, false},
		{StatusDelivered, StatusPending, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusDelivered, false},

		// Self-transitions are not allowed
		{StatusPending, StatusPending, false},
		{StatusDelivered, StatusDelivered, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Errorf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.want, got)
		}
	}
}

func TestReferenceError_Message(t *testing.T) {
	err := &ReferenceError{Entity: "book", ID: "64f0c2"}
	want := "book 64f0c2 does not exist"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}
