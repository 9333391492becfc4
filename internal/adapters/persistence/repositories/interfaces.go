package repositories

import (
	"context"

	"loanapi/internal/adapters/persistence/models"
	"loanapi/internal/core/domain"
)

// AccountRepository defines account repository interface
type AccountRepository interface {
	Create(ctx context.Context, account *models.Account) error
	GetByID(ctx context.Context, id uint) (*models.Account, error)
	GetByUsername(ctx context.Context, username string) (*models.Account, error)
	Update(ctx context.Context, account *models.Account) error
	List(ctx context.Context, offset, limit int) ([]*models.Account, int64, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByRole(ctx context.Context, role domain.Role) (bool, error)
}

// LoanRepository defines loan repository interface
type LoanRepository interface {
	Create(ctx context.Context, loan *models.Loan) error
	GetByID(ctx context.Context, id uint) (*models.Loan, error)
	ListByAccountID(ctx context.Context, accountID uint) ([]*models.Loan, error)
	ListWithAccount(ctx context.Context) ([]*models.Loan, error)
	Update(ctx context.Context, loan *models.Loan) error
	Delete(ctx context.Context, id uint) error
	CountByStatus(ctx context.Context) ([]models.StatusCount, error)
}
