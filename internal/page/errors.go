package page

import "errors"

var (
	// ErrUnknownIdentity is returned for an identity choice other than booth or owner
	ErrUnknownIdentity = errors.New("unknown identity choice")
	// ErrTornDown is returned when a controller is used after Teardown
	ErrTornDown = errors.New("page torn down")
)
