package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Domain errors
var (
	ErrNotFound                = errors.New("resource not found")
	ErrInvalidInput            = errors.New("invalid input")
	ErrBadRequest              = errors.New("bad request")
	ErrUnauthorized            = errors.New("unauthorized")
	ErrForbidden               = errors.New("forbidden")
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrTokenExpired            = errors.New("token expired")
	ErrContractTypeMismatch    = errors.New("contract type mismatch")
	ErrUnsupportedContractType = errors.New("unsupported contract type")
	ErrABIAssetNotFound        = errors.New("abi asset not found")
	ErrInvalidAddress          = errors.New("invalid contract address")
	ErrRPCNotAllowed           = errors.New("rpc endpoint is not allowed")
)

// Error codes
const (
	CodeBadRequest         = "BAD_REQUEST"
	CodeInvalidInput       = "INVALID_INPUT"
	CodeNotFound           = "NOT_FOUND"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeTypeMismatch       = "CONTRACT_TYPE_MISMATCH"
	CodeUnsupportedType    = "UNSUPPORTED_CONTRACT_TYPE"
	CodeUpstreamError      = "UPSTREAM_ERROR"
	CodeInternalError      = "INTERNAL_ERROR"
	CodeSchemaInvalid      = "SCHEMA_INVALID"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeRPCNotAllowed      = "RPC_NOT_ALLOWED"
)

// ContractTypeMismatchError is returned when the on-chain contract does not report
// the remote name registered for the expected contract type.
type ContractTypeMismatchError struct {
	Expected string
	Address  string
	Reported string
}

func (e *ContractTypeMismatchError) Error() string {
	return fmt.Sprintf("Contract is not a %s", e.Expected)
}

// Is makes errors.Is(err, ErrContractTypeMismatch) match
func (e *ContractTypeMismatchError) Is(target error) bool {
	return target == ErrContractTypeMismatch
}

// NewContractTypeMismatch creates a type mismatch error for the expected type
func NewContractTypeMismatch(expected, address, reported string) *ContractTypeMismatchError {
	return &ContractTypeMismatchError{
		Expected: expected,
		Address:  address,
		Reported: reported,
	}
}

// AppError represents application error with HTTP status
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, CodeNotFound, message, ErrNotFound)
}

func BadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeInvalidInput, message, ErrInvalidInput)
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, CodeUnauthorized, message, ErrUnauthorized)
}

func Forbidden(message string) *AppError {
	return NewAppError(http.StatusForbidden, CodeForbidden, message, ErrForbidden)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeInternalError, "internal server error", err)
}

// SchemaInvalid reports a metadata document rejected by a contract schema
func SchemaInvalid(err error) *AppError {
	return NewAppError(http.StatusBadRequest, CodeSchemaInvalid, err.Error(), err)
}

// FromResolution maps errors surfaced by contract resolution to an AppError.
// Collaborator errors that are not classified here are reported as upstream failures.
func FromResolution(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var mismatch *ContractTypeMismatchError
	switch {
	case errors.As(err, &mismatch):
		return NewAppError(http.StatusUnprocessableEntity, CodeTypeMismatch, mismatch.Error(), err)
	case errors.Is(err, ErrRPCNotAllowed):
		return NewAppError(http.StatusBadRequest, CodeRPCNotAllowed, err.Error(), err)
	case errors.Is(err, ErrUnsupportedContractType):
		return NewAppError(http.StatusBadRequest, CodeUnsupportedType, err.Error(), err)
	case errors.Is(err, ErrInvalidAddress), errors.Is(err, ErrInvalidInput):
		return NewAppError(http.StatusBadRequest, CodeInvalidInput, err.Error(), err)
	case errors.Is(err, ErrNotFound):
		return NewAppError(http.StatusNotFound, CodeNotFound, err.Error(), err)
	default:
		return NewAppError(http.StatusBadGateway, CodeUpstreamError, err.Error(), err)
	}
}

// NewError creates a new error with a custom message wrapping an existing error
func NewError(message string, err error) error {
	return &AppError{
		Status:  http.StatusBadRequest,
		Code:    CodeBadRequest,
		Message: message,
		Err:     err,
	}
}
