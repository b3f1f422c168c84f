package core

import (
	"github.com/pkg/errors"
)

var (
	ErrInvalidAlias        = errors.New("invalid alias")
	ErrDuplicateAlias      = errors.New("contact alias already exists")
	ErrDuplicateAddress    = errors.New("address already used by another contact")
	ErrSponsoredLocked     = errors.New("sponsored contact can't be changed")
	ErrAlreadySponsored    = errors.New("contact is already sponsored")
	ErrUnauthenticated     = errors.New("unauthenticated caller")
	ErrTransferFailed      = errors.New("transfer failed")
	ErrNotInitialized      = errors.New("contact book is not initialized")
	ErrAlreadyInitialized  = errors.New("contact book is already initialized")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInternal            = errors.New("internal error")
)

// ErrorCode carries an aborted call over IPC. CodeNone means the call
// completed, whatever its boolean result.
type ErrorCode uint

const (
	CodeNone ErrorCode = iota
	CodeInvalidAlias
	CodeDuplicateAlias
	CodeDuplicateAddress
	CodeSponsoredLocked
	CodeAlreadySponsored
	CodeUnauthenticated
	CodeTransferFailed
	CodeNotInitialized
	CodeAlreadyInitialized
	CodeInsufficientBalance
	CodeInvalidAmount
	CodeInternal
)

var codeErrors = map[ErrorCode]error{
	CodeInvalidAlias:        ErrInvalidAlias,
	CodeDuplicateAlias:      ErrDuplicateAlias,
	CodeDuplicateAddress:    ErrDuplicateAddress,
	CodeSponsoredLocked:     ErrSponsoredLocked,
	CodeAlreadySponsored:    ErrAlreadySponsored,
	CodeUnauthenticated:     ErrUnauthenticated,
	CodeTransferFailed:      ErrTransferFailed,
	CodeNotInitialized:      ErrNotInitialized,
	CodeAlreadyInitialized:  ErrAlreadyInitialized,
	CodeInsufficientBalance: ErrInsufficientBalance,
	CodeInvalidAmount:       ErrInvalidAmount,
	CodeInternal:            ErrInternal,
}

func ErrorToCode(err error) ErrorCode {
	if err == nil {
		return CodeNone
	}
	cause := errors.Cause(err)
	for code, e := range codeErrors {
		if e == cause {
			return code
		}
	}
	return CodeInternal
}

// CodeToError rebuilds an error whose cause is the sentinel of code.
func CodeToError(code ErrorCode, msg string) error {
	if code == CodeNone {
		return nil
	}
	e, ok := codeErrors[code]
	if !ok {
		e = ErrInternal
	}
	if len(msg) == 0 || msg == e.Error() {
		return e
	}
	return &remoteError{cause: e, msg: msg}
}

// remoteError keeps the peer's message and exposes the local sentinel to
// errors.Cause and errors.Is.
type remoteError struct {
	cause error
	msg   string
}

func (e *remoteError) Error() string { return e.msg }
func (e *remoteError) Cause() error  { return e.cause }
func (e *remoteError) Unwrap() error { return e.cause }

var codeNames = map[ErrorCode]string{
	CodeNone:                "NONE",
	CodeInvalidAlias:        "INVALID_ALIAS",
	CodeDuplicateAlias:      "DUPLICATE_ALIAS",
	CodeDuplicateAddress:    "DUPLICATE_ADDRESS",
	CodeSponsoredLocked:     "SPONSORED_LOCKED",
	CodeAlreadySponsored:    "ALREADY_SPONSORED",
	CodeUnauthenticated:     "UNAUTHENTICATED",
	CodeTransferFailed:      "TRANSFER_FAILED",
	CodeNotInitialized:      "NOT_INITIALIZED",
	CodeAlreadyInitialized:  "ALREADY_INITIALIZED",
	CodeInsufficientBalance: "INSUFFICIENT_BALANCE",
	CodeInvalidAmount:       "INVALID_AMOUNT",
	CodeInternal:            "INTERNAL",
}

func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
