package models

import (
	"time"

	"loanapi/internal/core/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Account represents accounts table
type Account struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	FirstName     string          `gorm:"size:50;not null" json:"first_name"`
	LastName      string          `gorm:"size:50;not null" json:"last_name"`
	Username      string          `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email         string          `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Age           int             `gorm:"not null" json:"age"`
	MonthlyIncome decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"monthly_income"`
	IsBlocked     bool            `gorm:"default:false" json:"is_blocked"`
	Role          domain.Role     `gorm:"size:20;default:'User';index" json:"role"`
	PasswordHash  string          `gorm:"size:255;not null" json:"-"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Account) TableName() string {
	return "accounts"
}

// IsAccountant reports whether the account holds the accountant role
func (a *Account) IsAccountant() bool {
	return a.Role == domain.RoleAccountant
}

// AccountResponse DTO
type AccountResponse struct {
	ID            uint            `json:"id"`
	FirstName     string          `json:"first_name"`
	LastName      string          `json:"last_name"`
	Username      string          `json:"username"`
	Email         string          `json:"email"`
	Age           int             `json:"age"`
	MonthlyIncome decimal.Decimal `json:"monthly_income"`
	IsBlocked     bool            `json:"is_blocked"`
	IsAccountant  bool            `json:"is_accountant"`
	Role          domain.Role     `json:"role"`
	CreatedAt     time.Time       `json:"created_at"`
}

func (a *Account) ToResponse() *AccountResponse {
	return &AccountResponse{
		ID:            a.ID,
		FirstName:     a.FirstName,
		LastName:      a.LastName,
		Username:      a.Username,
		Email:         a.Email,
		Age:           a.Age,
		MonthlyIncome: a.MonthlyIncome,
		IsBlocked:     a.IsBlocked,
		IsAccountant:  a.IsAccountant(),
		Role:          a.Role,
		CreatedAt:     a.CreatedAt,
	}
}

// Loan represents loans table
type Loan struct {
	ID         uint              `gorm:"primaryKey" json:"id"`
	AccountID  uint              `gorm:"not null;index" json:"account_id"`
	LoanType   domain.LoanType   `gorm:"size:20;not null" json:"loan_type"`
	Amount     decimal.Decimal   `gorm:"type:decimal(15,2);not null" json:"amount"`
	Currency   string            `gorm:"size:10;not null" json:"currency"`
	LoanPeriod int               `gorm:"not null" json:"loan_period"`
	Status     domain.LoanStatus `gorm:"size:20;not null;default:'Processing';index" json:"status"`
	CreatedAt  time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt    `gorm:"index" json:"-"`

	// Relations
	Account *Account `gorm:"foreignKey:AccountID" json:"account,omitempty"`
}

func (Loan) TableName() string {
	return "loans"
}

// IsProcessing reports whether the loan is still awaiting review
func (l *Loan) IsProcessing() bool {
	return l.Status == domain.LoanStatusProcessing
}

// LoanResponse DTO
type LoanResponse struct {
	ID         uint              `json:"id"`
	AccountID  uint              `json:"account_id"`
	LoanType   domain.LoanType   `json:"loan_type"`
	Amount     decimal.Decimal   `json:"amount"`
	Currency   string            `json:"currency"`
	LoanPeriod int               `json:"loan_period"`
	Status     domain.LoanStatus `json:"status"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
	Account    *AccountResponse  `json:"account,omitempty"`
}

func (l *Loan) ToResponse() *LoanResponse {
	resp := &LoanResponse{
		ID:         l.ID,
		AccountID:  l.AccountID,
		LoanType:   l.LoanType,
		Amount:     l.Amount,
		Currency:   l.Currency,
		LoanPeriod: l.LoanPeriod,
		Status:     l.Status,
		CreatedAt:  l.CreatedAt,
		UpdatedAt:  l.UpdatedAt,
	}
	if l.Account != nil {
		resp.Account = l.Account.ToResponse()
	}
	return resp
}

// LoansToResponse converts a slice of loans
func LoansToResponse(loans []*Loan) []*LoanResponse {
	out := make([]*LoanResponse, len(loans))
	for i, l := range loans {
		out[i] = l.ToResponse()
	}
	return out
}

// StatusCount is one row of the per-status loan tally
type StatusCount struct {
	Status domain.LoanStatus `json:"status"`
	Count  int64             `json:"count"`
}

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Account{},
		&Loan{},
	)
}
