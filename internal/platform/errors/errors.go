package apperrors

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("not found")
	ErrSetupRequired     = errors.New("setup required")
	ErrAlreadyConfigured = errors.New("profile already configured")
	ErrNoSubmissions     = errors.New("no submissions")
	ErrCorruptRecord     = errors.New("corrupt record")
	ErrConfiguration     = errors.New("configuration error")
	ErrInterrupted       = errors.New("interrupted")
	ErrDecrypt           = errors.New("cannot decrypt record")
)
