package payout

import "errors"

var (
	ErrSubjectRequired        = errors.New("exactly one of event or groomer profile must be referenced")
	ErrAccountDetailsRequired = errors.New("account name, number and IFSC code are required")
	ErrNotOwner               = errors.New("payout subject does not belong to this user")
	ErrEventNotFinished       = errors.New("event has not finished yet")
	ErrGroomerNotApproved     = errors.New("groomer profile is not approved")
	ErrAmountRequired         = errors.New("paid amount must be positive")
	ErrConflict               = errors.New("payout request was modified concurrently")
)
