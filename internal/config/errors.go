package config

import (
	"errors"
	"fmt"
)

// unsupportedFormatError signals a config file extension with no decoder.
type unsupportedFormatError struct{ ext string }

func (e unsupportedFormatError) Error() string {
	return "unsupported config extension: " + e.ext
}

// IsUnsupportedFormat reports whether err is due to an unknown file extension.
func IsUnsupportedFormat(err error) bool {
	var u unsupportedFormatError
	return errors.As(err, &u)
}

// invalidConfigError reports a field value the training loop cannot use.
type invalidConfigError struct {
	field string
	msg   string
}

func (e invalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %s: %s", e.field, e.msg)
}

// IsInvalidConfig reports whether err came from Validate.
func IsInvalidConfig(err error) bool {
	var ic invalidConfigError
	return errors.As(err, &ic)
}
