package errors

import "github.com/muhammadheryan/product-console/constant"

type CustomError struct {
	errType constant.ErrorType
	cause   error
}

// Error returns the user-facing message; the cause is never exposed.
func (c CustomError) Error() string {
	return constant.ErrorTypeMessage[c.errType]
}

func (c CustomError) ErrorCode() string {
	return constant.ErrorTypeCode[c.errType]
}

func (c CustomError) ErrorHTTPCode() int {
	return constant.ErrorTypeHTTPCode[c.errType]
}

func (c CustomError) Type() constant.ErrorType {
	return c.errType
}

func (c CustomError) Unwrap() error {
	return c.cause
}

func SetCustomError(errorType constant.ErrorType) CustomError {
	return CustomError{
		errType: errorType,
	}
}

// Wrap builds a CustomError that keeps err reachable through errors.Is / errors.As.
func Wrap(errorType constant.ErrorType, err error) CustomError {
	return CustomError{
		errType: errorType,
		cause:   err,
	}
}
