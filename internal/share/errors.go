package share

import "errors"

var (
	ErrNotFound       = errors.New("item not found")
	ErrForbidden      = errors.New("actor cannot view this item")
	ErrPolicyDisabled = errors.New("sharing is disabled for this content")
	ErrInvalidChannel = errors.New("share channel not recognized")
	ErrConflict       = errors.New("share state conflict")
	ErrTransient      = errors.New("transient storage failure")
)
