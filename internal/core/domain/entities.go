package domain

// Role represents an account role in the system
type Role string

const (
	RoleUser       Role = "User"
	RoleAccountant Role = "Accountant"
)

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAccountant:
		return true
	}
	return false
}

// LoanStatus represents the review state of a loan request
type LoanStatus string

const (
	LoanStatusProcessing LoanStatus = "Processing"
	LoanStatusApproved   LoanStatus = "Approved"
	LoanStatusRejected   LoanStatus = "Rejected"
)

// Valid reports whether s is one of the three loan statuses
func (s LoanStatus) Valid() bool {
	switch s {
	case LoanStatusProcessing, LoanStatusApproved, LoanStatusRejected:
		return true
	}
	return false
}

// LoanStatuses lists every status, in review order
func LoanStatuses() []LoanStatus {
	return []LoanStatus{LoanStatusProcessing, LoanStatusApproved, LoanStatusRejected}
}

// LoanType represents the loan category
type LoanType string

const (
	LoanTypeFast        LoanType = "FastLoan"
	LoanTypeAuto        LoanType = "AutoLoan"
	LoanTypeInstallment LoanType = "Installment"
)

// Valid reports whether t is one of the fixed loan categories
func (t LoanType) Valid() bool {
	switch t {
	case LoanTypeFast, LoanTypeAuto, LoanTypeInstallment:
		return true
	}
	return false
}
