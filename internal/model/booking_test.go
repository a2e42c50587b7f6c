package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to BookingStatus
		want     bool
	}{
		{StatusPending, StatusAccepted, true},
		{StatusPending, StatusRejected, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusPending, false},

		{StatusAccepted, StatusCancelled, true},
		{StatusAccepted, StatusRejected, false},
		{StatusAccepted, StatusPending, false},
		{StatusAccepted, StatusAccepted, false},

		{StatusRejected, StatusAccepted, false},
		{StatusRejected, StatusCancelled, false},
		{StatusRejected, StatusPending, false},

		{StatusCancelled, StatusAccepted, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusCancelled, false},
	}
	for _, tc := range cases {
		assert.Equalf(t, tc.want, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusAccepted.IsTerminal())
	assert.True(t, StatusRejected.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
}

func TestStatusValid(t *testing.T) {
	for _, s := range []BookingStatus{StatusPending, StatusAccepted, StatusRejected, StatusCancelled} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, BookingStatus("").Valid())
	assert.False(t, BookingStatus("pending").Valid())
	assert.False(t, BookingStatus("Done").Valid())
}
