package utils

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindMissingToken
	KindTokenExpired
	KindInvalidToken
	KindAuthFailed
	KindAccessDenied
	KindAlreadyExists
	KindNotFound
	KindValidation
	KindUnavailable
)

// Error codes shared by every service
const (
	CodeMissingToken        = "MISSING_TOKEN"
	CodeTokenExpired        = "TOKEN_EXPIRED"
	CodeInvalidToken        = "INVALID_TOKEN"
	CodeAuthFailed          = "AUTH_FAILED"
	CodeInvalidRefreshToken = "INVALID_REFRESH_TOKEN"
	CodeAccessDenied        = "ACCESS_DENIED"
	CodeForbidden           = "AUTHZ_FORBIDDEN"
	CodeAlreadyExists       = "RESOURCE_ALREADY_EXISTS"
	CodeUserAlreadyExists   = "USER_ALREADY_EXISTS"
	CodeGameAlreadyExists   = "GAME_ALREADY_EXISTS"
	CodeNotFound            = "RESOURCE_NOT_FOUND"
	CodeUserNotFound        = "USER_NOT_FOUND"
	CodeGameNotFound        = "GAME_NOT_FOUND"
	CodeValidation          = "VALIDATION_ERROR"
	CodeBadRequest          = "BAD_REQUEST"
	CodeUnavailable         = "SERVICE_UNAVAILABLE"
	CodeInternal            = "INTERNAL_SERVER_ERROR"
)

const MsgInternal = "An unexpected error occurred"

var kindStatus = map[ErrorKind]int{
	KindInternal:      http.StatusInternalServerError,
	KindMissingToken:  http.StatusUnauthorized,
	KindTokenExpired:  http.StatusUnauthorized,
	KindInvalidToken:  http.StatusUnauthorized,
	KindAuthFailed:    http.StatusUnauthorized,
	KindAccessDenied:  http.StatusForbidden,
	KindAlreadyExists: http.StatusConflict,
	KindNotFound:      http.StatusNotFound,
	KindValidation:    http.StatusBadRequest,
	KindUnavailable:   http.StatusServiceUnavailable,
}

var kindCode = map[ErrorKind]string{
	KindInternal:      CodeInternal,
	KindMissingToken:  CodeMissingToken,
	KindTokenExpired:  CodeTokenExpired,
	KindInvalidToken:  CodeInvalidToken,
	KindAuthFailed:    CodeAuthFailed,
	KindAccessDenied:  CodeAccessDenied,
	KindAlreadyExists: CodeAlreadyExists,
	KindNotFound:      CodeNotFound,
	KindValidation:    CodeValidation,
	KindUnavailable:   CodeUnavailable,
}

// AppError is a domain failure that maps onto an HTTP status and a stable code.
type AppError struct {
	Kind    ErrorKind
	Code    string
	Message string
	Details []FieldError
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Status returns the HTTP status code for the error kind.
func (e *AppError) Status() int {
	if status, ok := kindStatus[e.Kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// NewAppError builds an AppError; an empty code falls back to the kind's default.
func NewAppError(kind ErrorKind, code, message string) *AppError {
	if code == "" {
		code = kindCode[kind]
	}
	return &AppError{Kind: kind, Code: code, Message: message}
}

// WithDetails attaches field level errors.
func (e *AppError) WithDetails(details []FieldError) *AppError {
	e.Details = details
	return e
}

// Wrap keeps the cause for logging without exposing it to clients.
func (e *AppError) Wrap(err error) *AppError {
	e.Err = err
	return e
}

func ErrValidation(message string, details []FieldError) *AppError {
	return NewAppError(KindValidation, CodeValidation, message).WithDetails(details)
}

func ErrNotFound(code, message string) *AppError {
	return NewAppError(KindNotFound, code, message)
}

func ErrAlreadyExists(code, message string) *AppError {
	return NewAppError(KindAlreadyExists, code, message)
}

func ErrForbidden(message string) *AppError {
	return NewAppError(KindAccessDenied, CodeForbidden, message)
}

// AsAppError unwraps err into an AppError; anything unknown becomes an internal error.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return NewAppError(KindInternal, CodeInternal, MsgInternal).Wrap(err), false
}
