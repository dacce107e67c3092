package config

import "github.com/goliatone/go-errors"

var (
	// ErrSigningKeyRequired is returned when no JWT signing key is configured.
	ErrSigningKeyRequired = errors.New("config: auth signing key required", errors.CategoryValidation).
				WithTextCode("SIGNING_KEY_REQUIRED")
	// ErrUnsupportedDriver is returned for persistence drivers other than sqlite and postgres.
	ErrUnsupportedDriver = errors.New("config: unsupported persistence driver", errors.CategoryValidation).
				WithTextCode("UNSUPPORTED_DRIVER")
)
