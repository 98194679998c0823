package errors

import (
	stderrors "errors"
)

// As finds the first AppError in err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// TypeOf returns the type of the first AppError in err's chain, or "" when
// there is none.
func TypeOf(err error) ErrorType {
	if appErr, ok := As(err); ok {
		return appErr.Type
	}
	return ""
}

// IsMalformedInput reports whether err is (or wraps) a MALFORMED_INPUT error
func IsMalformedInput(err error) bool {
	return TypeOf(err) == ErrTypeMalformedInput
}

// IsUnparseableValue reports whether err is (or wraps) an UNPARSEABLE_VALUE error
func IsUnparseableValue(err error) bool {
	return TypeOf(err) == ErrTypeUnparseableValue
}

// IsNotFound reports whether err is (or wraps) a NOT_FOUND error
func IsNotFound(err error) bool {
	return TypeOf(err) == ErrTypeNotFound
}

// Annotate adds key/value context to the first AppError in err's chain and
// returns err unchanged. Errors without an AppError are returned as is.
func Annotate(err error, key string, value interface{}) error {
	if appErr, ok := As(err); ok {
		appErr.WithContext(key, value)
	}
	return err
}
