package user

import (
	"errors"
	"fmt"
)

var (
	ErrEmailAlreadyExists  = errors.New("email already exists")
	ErrUserDoesNotExist    = errors.New("user does not exist")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrSessionDoesNotExist = errors.New("session does not exist")
	ErrPasswordTooWeak     = fmt.Errorf("password must be at least %d characters long", MinPasswordLength)
)
