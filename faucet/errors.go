package faucet

import "fmt"

// ErrorKind is the closed classification every backend failure is reduced
// to before it reaches the dispatcher.
type ErrorKind int

const (
	ErrGeneric ErrorKind = iota
	ErrInvalidAddress
	ErrInsufficientFunds
	ErrPendingTx
	ErrProviderUnavailable
	ErrEncoding
)

func (k ErrorKind) String() string {
	switch k {
	case ErrInvalidAddress:
		return "invalid address"
	case ErrInsufficientFunds:
		return "insufficient funds"
	case ErrPendingTx:
		return "pending transaction"
	case ErrProviderUnavailable:
		return "provider unavailable"
	case ErrEncoding:
		return "encoding error"
	default:
		return "generic"
	}
}

// Error carries a classified kind together with the raw upstream detail.
// The detail is for the operator log only and never reaches the user.
type Error struct {
	Kind   ErrorKind
	Detail string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func newError(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}
