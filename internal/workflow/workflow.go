package workflow

import "fmt"

// ErrInvalidTransition is returned when a status change is not allowed
// by the entity's transition table.
var ErrInvalidTransition = fmt.Errorf("invalid status transition")

type EventStatus string

const (
	EventPending  EventStatus = "pending"
	EventApproved EventStatus = "approved"
	EventRejected EventStatus = "rejected"
)

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)

type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

type PayoutStatus string

const (
	PayoutPending     PayoutStatus = "pending"
	PayoutProcessing  PayoutStatus = "processing"
	PayoutPaymentSent PayoutStatus = "payment_sent"
	PayoutRejected    PayoutStatus = "rejected"
)

type ConsultationStatus string

const (
	ConsultationPending   ConsultationStatus = "pending"
	ConsultationActive    ConsultationStatus = "active"
	ConsultationCompleted ConsultationStatus = "completed"
	ConsultationExpired   ConsultationStatus = "expired"
)

var eventTransitions = map[EventStatus][]EventStatus{
	EventPending: {EventApproved, EventRejected},
}

var applicationTransitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationPending: {ApplicationApproved, ApplicationRejected},
}

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingConfirmed: {BookingCancelled},
}

var payoutTransitions = map[PayoutStatus][]PayoutStatus{
	PayoutPending:    {PayoutProcessing, PayoutRejected},
	PayoutProcessing: {PayoutPaymentSent, PayoutRejected},
}

var consultationTransitions = map[ConsultationStatus][]ConsultationStatus{
	ConsultationPending: {ConsultationActive, ConsultationExpired},
	ConsultationActive:  {ConsultationCompleted},
}

func transition[S ~string](table map[S][]S, current, next S) error {
	for _, allowed := range table[current] {
		if allowed == next {
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, next)
}

func (s EventStatus) String() string { return string(s) }

func (s EventStatus) IsValid() bool {
	switch s {
	case EventPending, EventApproved, EventRejected:
		return true
	default:
		return false
	}
}

func (s EventStatus) TransitionTo(next EventStatus) error {
	return transition(eventTransitions, s, next)
}

func (s ApplicationStatus) String() string { return string(s) }

func (s ApplicationStatus) IsValid() bool {
	switch s {
	case ApplicationPending, ApplicationApproved, ApplicationRejected:
		return true
	default:
		return false
	}
}

func (s ApplicationStatus) TransitionTo(next ApplicationStatus) error {
	return transition(applicationTransitions, s, next)
}

func (s BookingStatus) String() string { return string(s) }

func (s BookingStatus) TransitionTo(next BookingStatus) error {
	return transition(bookingTransitions, s, next)
}

func (s PayoutStatus) String() string { return string(s) }

func (s PayoutStatus) IsValid() bool {
	switch s {
	case PayoutPending, PayoutProcessing, PayoutPaymentSent, PayoutRejected:
		return true
	default:
		return false
	}
}

// IsFinal reports whether no further transition is possible.
func (s PayoutStatus) IsFinal() bool {
	return s == PayoutPaymentSent || s == PayoutRejected
}

func (s PayoutStatus) TransitionTo(next PayoutStatus) error {
	return transition(payoutTransitions, s, next)
}

func (s ConsultationStatus) String() string { return string(s) }

func (s ConsultationStatus) IsFinal() bool {
	return s == ConsultationCompleted || s == ConsultationExpired
}

func (s ConsultationStatus) TransitionTo(next ConsultationStatus) error {
	return transition(consultationTransitions, s, next)
}
