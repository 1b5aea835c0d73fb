package rotation

import "errors"

// Sentinel errors for the rotation engine. Callers match with errors.Is;
// revenue math never masks bad data with a zero.
var (
	ErrInvalidDate           = errors.New("invalid or missing date")
	ErrInvalidRotation       = errors.New("rotation weeks must be at least 1")
	ErrInvalidTransition     = errors.New("illegal appointment status transition")
	ErrMissingPaymentInfo    = errors.New("payment method or amount not resolvable")
	ErrMissingMissedReason   = errors.New("missed reason required")
	ErrUnknownAddOnFrequency = errors.New("unrecognized add-on frequency")
)
