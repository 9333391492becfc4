package services

import (
	"context"
	"time"

	"loanapi/internal/core/domain"

	"github.com/shopspring/decimal"
)

// PasswordHasher hashes and verifies account passwords
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// TokenIssuer signs bearer tokens for authenticated accounts
type TokenIssuer interface {
	Issue(accountID uint, username string, role domain.Role) (string, error)
}

// LoanNotifier receives loan lifecycle events after they are persisted
type LoanNotifier interface {
	NotifyLoan(ctx context.Context, event LoanEvent)
}

// LoanEventType names a loan lifecycle event
type LoanEventType string

const (
	LoanCreated LoanEventType = "loan.created"
	LoanUpdated LoanEventType = "loan.updated"
	LoanDeleted LoanEventType = "loan.deleted"
)

// LoanEvent describes a persisted change to a loan
type LoanEvent struct {
	Type       LoanEventType     `json:"type"`
	LoanID     uint              `json:"loan_id"`
	AccountID  uint              `json:"account_id"`
	Status     domain.LoanStatus `json:"status"`
	ByOwner    bool              `json:"by_owner"`
	OccurredAt time.Time         `json:"occurred_at"`
}

// LoanChanges holds the fields an owner may change; nil means unchanged
type LoanChanges struct {
	Amount     *decimal.Decimal
	Currency   *string
	LoanPeriod *int
}

// AccountantLoanChanges extends LoanChanges with the fields only an accountant may set
type AccountantLoanChanges struct {
	LoanChanges
	LoanType *domain.LoanType
	Status   *domain.LoanStatus
}
