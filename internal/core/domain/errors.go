package domain

import "errors"

// Credential errors
var (
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// Account errors
var (
	ErrAccountNotFound = errors.New("account not found")
	ErrAccountBlocked  = errors.New("account is blocked and cannot request loans")
)

// Loan errors
var (
	ErrLoanNotFound      = errors.New("loan not found")
	ErrAccessDenied      = errors.New("access denied")
	ErrInvalidState      = errors.New("only loans in processing status can be changed")
	ErrInvalidLoanStatus = errors.New("invalid loan status")
	ErrInvalidLoanType   = errors.New("invalid loan type")
)
