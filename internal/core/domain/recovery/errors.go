package recovery

import "errors"

var (
	ErrInvalidOrExpiredToken = errors.New("invalid or expired recovery token")
	ErrTokenAlreadyExists    = errors.New("recovery token already exists")
	ErrDeliveryFailed        = errors.New("could not deliver recovery token")
)
