package challenge

import "errors"

var (
	ErrFailed        = errors.New("challenge: user failed challenge")
	ErrInvalidFormat = errors.New("challenge: field has invalid format")
	ErrUnknownMethod = errors.New("challenge: unknown method")
	ErrBadOptions    = errors.New("challenge: registry options are invalid")
)
