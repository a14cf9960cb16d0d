package user

// MinPasswordLength is the only composition rule applied to new passwords.
const MinPasswordLength = 8

func ValidatePassword(password RawPassword) error {
	if len(password) < MinPasswordLength {
		return ErrPasswordTooWeak
	}
	return nil
}
