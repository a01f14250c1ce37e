package trip

import "errors"

var (
	ErrTripNotFound   = errors.New("trip not found")
	ErrMemberNotFound = errors.New("member not found")
	ErrNotMember      = errors.New("not authorized for this trip")
	ErrNotOwner       = errors.New("only owner can perform this action")
)
