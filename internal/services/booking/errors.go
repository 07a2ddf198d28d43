package booking

import "errors"

var (
	ErrNotEnoughTickets       = errors.New("not enough tickets")
	ErrTicketCountInvalid     = errors.New("ticket count must be at least 1")
	ErrEventNotBookable       = errors.New("event is not open for booking")
	ErrGroomerUnavailable     = errors.New("groomer is not available")
	ErrHomeServiceUnavailable = errors.New("groomer does not provide home service")
	ErrInvalidServiceType     = errors.New("invalid service type")
	ErrPetDetailsRequired     = errors.New("pet name and details are required")
	ErrAddressRequired        = errors.New("home address is required for home service")
	ErrSlotRequired           = errors.New("a time slot must be selected")
	ErrSlotUnavailable        = errors.New("time slot is not available")
	ErrSlotMismatch           = errors.New("time slot does not belong to this groomer")
	ErrPackageMismatch        = errors.New("package does not belong to this groomer")
)
