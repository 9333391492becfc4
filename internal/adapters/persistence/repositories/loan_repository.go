package repositories

import (
	"context"

	"loanapi/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// loanRepository implements LoanRepository interface
type loanRepository struct {
	db *gorm.DB
}

// NewLoanRepository creates a new loan repository
func NewLoanRepository(db *gorm.DB) LoanRepository {
	return &loanRepository{db: db}
}

func (r *loanRepository) Create(ctx context.Context, loan *models.Loan) error {
	return r.db.WithContext(ctx).Create(loan).Error
}

// GetByID returns gorm.ErrRecordNotFound for missing or deleted loans
func (r *loanRepository) GetByID(ctx context.Context, id uint) (*models.Loan, error) {
	var loan models.Loan
	err := r.db.WithContext(ctx).First(&loan, id).Error
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

func (r *loanRepository) ListByAccountID(ctx context.Context, accountID uint) ([]*models.Loan, error) {
	var loans []*models.Loan
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Find(&loans).Error
	return loans, err
}

// ListWithAccount lists every loan with its owning account
func (r *loanRepository) ListWithAccount(ctx context.Context) ([]*models.Loan, error) {
	var loans []*models.Loan
	err := r.db.WithContext(ctx).
		Preload("Account").
		Find(&loans).Error
	return loans, err
}

func (r *loanRepository) Update(ctx context.Context, loan *models.Loan) error {
	return r.db.WithContext(ctx).Omit("Account").Save(loan).Error
}

// Delete soft deletes a loan
func (r *loanRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Loan{}, id).Error
}

func (r *loanRepository) CountByStatus(ctx context.Context) ([]models.StatusCount, error) {
	var counts []models.StatusCount
	err := r.db.WithContext(ctx).
		Model(&models.Loan{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&counts).Error
	return counts, err
}
