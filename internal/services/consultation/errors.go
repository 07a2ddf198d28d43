package consultation

import "errors"

var (
	ErrExpired         = errors.New("consultation request has expired")
	ErrAlreadyAssigned = errors.New("consultation was already accepted by another vet")
	ErrNotAcceptable   = errors.New("consultation cannot be accepted")
	ErrNotCompletable  = errors.New("consultation is not active for this vet")
	ErrVetNotApproved  = errors.New("vet profile is not approved")
)
