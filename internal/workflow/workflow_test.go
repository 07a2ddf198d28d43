package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayoutTransitions(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		from    PayoutStatus
		to      PayoutStatus
		allowed bool
	}{
		{"pending to processing", PayoutPending, PayoutProcessing, true},
		{"pending to rejected", PayoutPending, PayoutRejected, true},
		{"processing to payment_sent", PayoutProcessing, PayoutPaymentSent, true},
		{"processing to rejected", PayoutProcessing, PayoutRejected, true},
		{"pending directly to payment_sent", PayoutPending, PayoutPaymentSent, false},
		{"payment_sent to processing", PayoutPaymentSent, PayoutProcessing, false},
		{"payment_sent to rejected", PayoutPaymentSent, PayoutRejected, false},
		{"rejected to processing", PayoutRejected, PayoutProcessing, false},
		{"pending to pending", PayoutPending, PayoutPending, false},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := tc.from.TransitionTo(tc.to)
			if tc.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidTransition)
			}
		})
	}
}

func TestPaymentSentRequiresProcessing(t *testing.T) {
	t.Parallel()

	// The only state that may advance to payment_sent is processing.
	for _, from := range []PayoutStatus{PayoutPending, PayoutPaymentSent, PayoutRejected} {
		assert.ErrorIs(t, from.TransitionTo(PayoutPaymentSent), ErrInvalidTransition)
	}
	require.NoError(t, PayoutProcessing.TransitionTo(PayoutPaymentSent))
}

func TestConsultationTransitions(t *testing.T) {
	t.Parallel()

	require.NoError(t, ConsultationPending.TransitionTo(ConsultationActive))
	require.NoError(t, ConsultationPending.TransitionTo(ConsultationExpired))
	require.NoError(t, ConsultationActive.TransitionTo(ConsultationCompleted))

	assert.ErrorIs(t, ConsultationExpired.TransitionTo(ConsultationActive), ErrInvalidTransition)
	assert.ErrorIs(t, ConsultationCompleted.TransitionTo(ConsultationActive), ErrInvalidTransition)
	assert.ErrorIs(t, ConsultationActive.TransitionTo(ConsultationExpired), ErrInvalidTransition)
}

func TestEventAndApplicationAdminOnlyFromPending(t *testing.T) {
	t.Parallel()

	require.NoError(t, EventPending.TransitionTo(EventApproved))
	require.NoError(t, EventPending.TransitionTo(EventRejected))
	assert.ErrorIs(t, EventApproved.TransitionTo(EventRejected), ErrInvalidTransition)
	assert.ErrorIs(t, EventRejected.TransitionTo(EventApproved), ErrInvalidTransition)

	require.NoError(t, ApplicationPending.TransitionTo(ApplicationApproved))
	assert.ErrorIs(t, ApplicationApproved.TransitionTo(ApplicationRejected), ErrInvalidTransition)
}

func TestBookingTransitions(t *testing.T) {
	t.Parallel()

	require.NoError(t, BookingConfirmed.TransitionTo(BookingCancelled))
	assert.ErrorIs(t, BookingCancelled.TransitionTo(BookingConfirmed), ErrInvalidTransition)
}

func TestFinalStates(t *testing.T) {
	t.Parallel()

	assert.True(t, PayoutPaymentSent.IsFinal())
	assert.True(t, PayoutRejected.IsFinal())
	assert.False(t, PayoutProcessing.IsFinal())
	assert.True(t, ConsultationExpired.IsFinal())
	assert.False(t, ConsultationPending.IsFinal())
}
