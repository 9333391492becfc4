package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"loanapi/internal/adapters/persistence/models"
	"loanapi/internal/adapters/persistence/repositories"
	"loanapi/internal/core/domain"

	"gorm.io/gorm"
)

// LoanService handles the loan request lifecycle.
// Owner operations take the acting account id explicitly; accountant
// operations carry no ownership context.
type LoanService struct {
	loanRepo    repositories.LoanRepository
	accountRepo repositories.AccountRepository
	notifier    LoanNotifier
	logger      *slog.Logger
	now         func() time.Time
}

// NewLoanService creates a new loan service. A nil notifier disables events.
func NewLoanService(
	loanRepo repositories.LoanRepository,
	accountRepo repositories.AccountRepository,
	notifier LoanNotifier,
	logger *slog.Logger,
) *LoanService {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &LoanService{
		loanRepo:    loanRepo,
		accountRepo: accountRepo,
		notifier:    notifier,
		logger:      logger,
		now:         time.Now,
	}
}

// Create persists a new loan for accountID. Owner and status are always
// assigned here, whatever the caller put in loan.
func (s *LoanService) Create(ctx context.Context, accountID uint, loan *models.Loan) (*models.Loan, error) {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	if account.IsBlocked {
		s.logger.Warn("loan request rejected: account blocked", "account_id", accountID)
		return nil, domain.ErrAccountBlocked
	}
	if !loan.LoanType.Valid() {
		return nil, domain.ErrInvalidLoanType
	}

	loan.ID = 0
	loan.AccountID = accountID
	loan.Status = domain.LoanStatusProcessing
	loan.Account = nil

	if err := s.loanRepo.Create(ctx, loan); err != nil {
		return nil, fmt.Errorf("create loan: %w", err)
	}

	s.logger.Info("loan created", "loan_id", loan.ID, "account_id", accountID, "amount", loan.Amount.String(), "currency", loan.Currency)
	s.notify(ctx, LoanCreated, loan, true)
	return loan, nil
}

// ListOwnedBy lists the loans of one account, in no particular order
func (s *LoanService) ListOwnedBy(ctx context.Context, accountID uint) ([]*models.Loan, error) {
	loans, err := s.loanRepo.ListByAccountID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}
	return loans, nil
}

// ListAll lists every loan with its owning account
func (s *LoanService) ListAll(ctx context.Context) ([]*models.Loan, error) {
	loans, err := s.loanRepo.ListWithAccount(ctx)
	if err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}
	return loans, nil
}

// FetchByID returns the loan or domain.ErrLoanNotFound
func (s *LoanService) FetchByID(ctx context.Context, id uint) (*models.Loan, error) {
	loan, err := s.loanRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLoanNotFound
		}
		return nil, fmt.Errorf("get loan: %w", err)
	}
	return loan, nil
}

// UpdateAsOwner applies amount, currency and period changes.
// Guards run in order: not found, access denied, invalid state.
func (s *LoanService) UpdateAsOwner(ctx context.Context, accountID, loanID uint, changes LoanChanges) (*models.Loan, error) {
	loan, err := s.ownedProcessingLoan(ctx, accountID, loanID)
	if err != nil {
		return nil, err
	}

	changes.apply(loan)
	if err := s.loanRepo.Update(ctx, loan); err != nil {
		return nil, fmt.Errorf("update loan: %w", err)
	}

	s.logger.Info("loan updated by owner", "loan_id", loan.ID, "account_id", accountID)
	s.notify(ctx, LoanUpdated, loan, true)
	return loan, nil
}

// DeleteAsOwner removes a loan with the same guards as UpdateAsOwner
func (s *LoanService) DeleteAsOwner(ctx context.Context, accountID, loanID uint) error {
	loan, err := s.ownedProcessingLoan(ctx, accountID, loanID)
	if err != nil {
		return err
	}

	if err := s.loanRepo.Delete(ctx, loan.ID); err != nil {
		return fmt.Errorf("delete loan: %w", err)
	}

	s.logger.Info("loan deleted by owner", "loan_id", loan.ID, "account_id", accountID)
	s.notify(ctx, LoanDeleted, loan, true)
	return nil
}

// UpdateAsAccountant applies changes regardless of status. Any of the three
// statuses is accepted verbatim; there is no transition graph.
func (s *LoanService) UpdateAsAccountant(ctx context.Context, loanID uint, changes AccountantLoanChanges) (*models.Loan, error) {
	loan, err := s.FetchByID(ctx, loanID)
	if err != nil {
		return nil, err
	}

	// validate everything before touching the record
	if changes.Status != nil && !changes.Status.Valid() {
		return nil, domain.ErrInvalidLoanStatus
	}
	if changes.LoanType != nil && !changes.LoanType.Valid() {
		return nil, domain.ErrInvalidLoanType
	}

	previous := loan.Status
	changes.LoanChanges.apply(loan)
	if changes.LoanType != nil {
		loan.LoanType = *changes.LoanType
	}
	if changes.Status != nil {
		loan.Status = *changes.Status
	}

	if err := s.loanRepo.Update(ctx, loan); err != nil {
		return nil, fmt.Errorf("update loan: %w", err)
	}

	s.logger.Info("loan updated by accountant", "loan_id", loan.ID, "from_status", previous, "to_status", loan.Status)
	s.notify(ctx, LoanUpdated, loan, false)
	return loan, nil
}

// DeleteAsAccountant removes any loan regardless of status
func (s *LoanService) DeleteAsAccountant(ctx context.Context, loanID uint) error {
	loan, err := s.FetchByID(ctx, loanID)
	if err != nil {
		return err
	}

	if err := s.loanRepo.Delete(ctx, loan.ID); err != nil {
		return fmt.Errorf("delete loan: %w", err)
	}

	s.logger.Info("loan deleted by accountant", "loan_id", loan.ID, "status", loan.Status)
	s.notify(ctx, LoanDeleted, loan, false)
	return nil
}

func (s *LoanService) ownedProcessingLoan(ctx context.Context, accountID, loanID uint) (*models.Loan, error) {
	loan, err := s.FetchByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if loan.AccountID != accountID {
		s.logger.Warn("loan access denied", "loan_id", loanID, "account_id", accountID)
		return nil, domain.ErrAccessDenied
	}
	if !loan.IsProcessing() {
		return nil, domain.ErrInvalidState
	}
	return loan, nil
}

func (s *LoanService) notify(ctx context.Context, typ LoanEventType, loan *models.Loan, byOwner bool) {
	s.notifier.NotifyLoan(ctx, LoanEvent{
		Type:       typ,
		LoanID:     loan.ID,
		AccountID:  loan.AccountID,
		Status:     loan.Status,
		ByOwner:    byOwner,
		OccurredAt: s.now().UTC(),
	})
}

func (c LoanChanges) apply(loan *models.Loan) {
	if c.Amount != nil {
		loan.Amount = *c.Amount
	}
	if c.Currency != nil {
		loan.Currency = *c.Currency
	}
	if c.LoanPeriod != nil {
		loan.LoanPeriod = *c.LoanPeriod
	}
}

type noopNotifier struct{}

func (noopNotifier) NotifyLoan(context.Context, LoanEvent) {}
