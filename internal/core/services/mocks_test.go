package services

import (
	"context"
	"sync"

	"loanapi/internal/adapters/persistence/models"
	"loanapi/internal/core/domain"

	"github.com/stretchr/testify/mock"
)

type mockAccountRepo struct {
	mock.Mock
}

func (m *mockAccountRepo) Create(ctx context.Context, account *models.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *mockAccountRepo) GetByID(ctx context.Context, id uint) (*models.Account, error) {
	args := m.Called(ctx, id)
	if a := args.Get(0); a != nil {
		return a.(*models.Account), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAccountRepo) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	args := m.Called(ctx, username)
	if a := args.Get(0); a != nil {
		return a.(*models.Account), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAccountRepo) Update(ctx context.Context, account *models.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *mockAccountRepo) List(ctx context.Context, offset, limit int) ([]*models.Account, int64, error) {
	args := m.Called(ctx, offset, limit)
	accounts, _ := args.Get(0).([]*models.Account)
	return accounts, args.Get(1).(int64), args.Error(2)
}

func (m *mockAccountRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *mockAccountRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockAccountRepo) ExistsByRole(ctx context.Context, role domain.Role) (bool, error) {
	args := m.Called(ctx, role)
	return args.Bool(0), args.Error(1)
}

type mockLoanRepo struct {
	mock.Mock
}

func (m *mockLoanRepo) Create(ctx context.Context, loan *models.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}

func (m *mockLoanRepo) GetByID(ctx context.Context, id uint) (*models.Loan, error) {
	args := m.Called(ctx, id)
	if l := args.Get(0); l != nil {
		return l.(*models.Loan), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockLoanRepo) ListByAccountID(ctx context.Context, accountID uint) ([]*models.Loan, error) {
	args := m.Called(ctx, accountID)
	loans, _ := args.Get(0).([]*models.Loan)
	return loans, args.Error(1)
}

func (m *mockLoanRepo) ListWithAccount(ctx context.Context) ([]*models.Loan, error) {
	args := m.Called(ctx)
	loans, _ := args.Get(0).([]*models.Loan)
	return loans, args.Error(1)
}

func (m *mockLoanRepo) Update(ctx context.Context, loan *models.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}

func (m *mockLoanRepo) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockLoanRepo) CountByStatus(ctx context.Context) ([]models.StatusCount, error) {
	args := m.Called(ctx)
	counts, _ := args.Get(0).([]models.StatusCount)
	return counts, args.Error(1)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, routingKey string, body interface{}) error {
	args := m.Called(ctx, routingKey, body)
	return args.Error(0)
}

// fakeHasher avoids bcrypt cost in unit tests
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (fakeHasher) Verify(password, hash string) bool { return hash == "hashed:"+password }

type fakeIssuer struct {
	issued []uint
}

func (f *fakeIssuer) Issue(accountID uint, username string, role domain.Role) (string, error) {
	f.issued = append(f.issued, accountID)
	return "token-" + username + "-" + string(role), nil
}

// recordingNotifier keeps every event it receives
type recordingNotifier struct {
	mu     sync.Mutex
	events []LoanEvent
}

func (r *recordingNotifier) NotifyLoan(_ context.Context, event LoanEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingNotifier) types() []LoanEventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]LoanEventType, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}
