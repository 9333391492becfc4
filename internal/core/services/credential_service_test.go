package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"loanapi/internal/adapters/persistence/models"
	"loanapi/internal/core/domain"
	"loanapi/internal/pkg/logger"
	"loanapi/internal/pkg/pagination"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCredentialService(repo *mockAccountRepo) (*CredentialService, *fakeIssuer) {
	issuer := &fakeIssuer{}
	return NewCredentialService(repo, fakeHasher{}, issuer, logger.Discard()), issuer
}

func newAccount(username string) *models.Account {
	return &models.Account{
		FirstName:     "Alice",
		LastName:      "Smith",
		Username:      username,
		Email:         username + "@example.com",
		Age:           30,
		MonthlyIncome: decimal.NewFromInt(2500),
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	repo := new(mockAccountRepo)
	svc, _ := newCredentialService(repo)

	repo.On("ExistsByUsername", ctx, "alice").Return(false, nil)
	repo.On("ExistsByEmail", ctx, "alice@example.com").Return(false, nil)
	repo.On("Create", ctx, mock.AnythingOfType("*models.Account")).
		Run(func(args mock.Arguments) { args.Get(1).(*models.Account).ID = 7 }).
		Return(nil)

	input := newAccount("alice")
	input.Role = domain.RoleAccountant
	input.IsBlocked = true
	input.ID = 99

	account, err := svc.Register(ctx, input, "secret1")
	require.NoError(t, err)

	assert.Equal(t, uint(7), account.ID)
	assert.Equal(t, domain.RoleUser, account.Role)
	assert.False(t, account.IsBlocked)
	assert.Equal(t, "hashed:secret1", account.PasswordHash)
	repo.AssertExpectations(t)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	repo := new(mockAccountRepo)
	svc, _ := newCredentialService(repo)

	repo.On("ExistsByUsername", ctx, "alice").Return(true, nil)

	_, err := svc.Register(ctx, newAccount("alice"), "secret1")
	assert.ErrorIs(t, err, domain.ErrDuplicateUsername)
	repo.AssertNotCalled(t, "ExistsByEmail", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := new(mockAccountRepo)
	svc, _ := newCredentialService(repo)

	repo.On("ExistsByUsername", ctx, "bob").Return(false, nil)
	repo.On("ExistsByEmail", ctx, "bob@example.com").Return(true, nil)

	_, err := svc.Register(ctx, newAccount("bob"), "secret1")
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegisterConcurrentDuplicate(t *testing.T) {
	tests := []struct {
		name          string
		usernameTaken bool
		want          error
	}{
		{"username claimed", true, domain.ErrDuplicateUsername},
		{"email claimed", false, domain.ErrDuplicateEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			repo := new(mockAccountRepo)
			svc, _ := newCredentialService(repo)

			repo.On("ExistsByUsername", ctx, "carol").Return(false, nil).Once()
			repo.On("ExistsByEmail", ctx, "carol@example.com").Return(false, nil).Once()
			repo.On("Create", ctx, mock.AnythingOfType("*models.Account")).
				Return(fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey))
			repo.On("ExistsByUsername", ctx, "carol").Return(tt.usernameTaken, nil).Once()

			_, err := svc.Register(ctx, newAccount("carol"), "secret1")
			assert.ErrorIs(t, err, tt.want)
			repo.AssertExpectations(t)
		})
	}
}

func TestRegisterRepositoryError(t *testing.T) {
	ctx := context.Background()
	repo := new(mockAccountRepo)
	svc, _ := newCredentialService(repo)

	dbErr := errors.New("connection refused")
	repo.On("ExistsByUsername", ctx, "alice").Return(false, dbErr)

	_, err := svc.Register(ctx, newAccount("alice"), "secret1")
	assert.ErrorIs(t, err, dbErr)
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	stored := newAccount("alice")
	stored.ID = 3
	stored.Role = domain.RoleUser
	stored.PasswordHash = "hashed:secret1"

	t.Run("valid credentials", func(t *testing.T) {
		repo := new(mockAccountRepo)
		svc, issuer := newCredentialService(repo)
		repo.On("GetByUsername", ctx, "alice").Return(stored, nil)

		token, err := svc.Authenticate(ctx, "alice", "secret1")
		require.NoError(t, err)
		assert.Equal(t, "token-alice-User", token)
		assert.Equal(t, []uint{3}, issuer.issued)
	})

	t.Run("unknown username and wrong password fail alike", func(t *testing.T) {
		repo := new(mockAccountRepo)
		svc, issuer := newCredentialService(repo)
		repo.On("GetByUsername", ctx, "ghost").Return(nil, gorm.ErrRecordNotFound)
		repo.On("GetByUsername", ctx, "alice").Return(stored, nil)

		_, errUnknown := svc.Authenticate(ctx, "ghost", "secret1")
		_, errWrong := svc.Authenticate(ctx, "alice", "wrong")

		assert.ErrorIs(t, errUnknown, domain.ErrInvalidCredentials)
		assert.ErrorIs(t, errWrong, domain.ErrInvalidCredentials)
		assert.Equal(t, errUnknown.Error(), errWrong.Error())
		assert.Empty(t, issuer.issued)
	})

	t.Run("blocked account can still log in", func(t *testing.T) {
		blocked := *stored
		blocked.IsBlocked = true

		repo := new(mockAccountRepo)
		svc, _ := newCredentialService(repo)
		repo.On("GetByUsername", ctx, "alice").Return(&blocked, nil)

		token, err := svc.Authenticate(ctx, "alice", "secret1")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
	})
}

func TestFetchAccountByID(t *testing.T) {
	ctx := context.Background()
	repo := new(mockAccountRepo)
	svc, _ := newCredentialService(repo)

	repo.On("GetByID", ctx, uint(1)).Return(newAccount("alice"), nil)
	repo.On("GetByID", ctx, uint(2)).Return(nil, gorm.ErrRecordNotFound)

	account, err := svc.FetchByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "alice", account.Username)

	_, err = svc.FetchByID(ctx, 2)
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestSetBlocked(t *testing.T) {
	ctx := context.Background()
	repo := new(mockAccountRepo)
	svc, _ := newCredentialService(repo)

	account := newAccount("alice")
	account.ID = 1
	repo.On("GetByID", ctx, uint(1)).Return(account, nil)
	repo.On("Update", ctx, account).Return(nil)
	repo.On("GetByID", ctx, uint(9)).Return(nil, gorm.ErrRecordNotFound)

	updated, err := svc.SetBlocked(ctx, 1, true)
	require.NoError(t, err)
	assert.True(t, updated.IsBlocked)

	updated, err = svc.SetBlocked(ctx, 1, false)
	require.NoError(t, err)
	assert.False(t, updated.IsBlocked)

	_, err = svc.SetBlocked(ctx, 9, true)
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestListAccounts(t *testing.T) {
	ctx := context.Background()
	repo := new(mockAccountRepo)
	svc, _ := newCredentialService(repo)

	a := newAccount("alice")
	b := newAccount("bob")
	b.Role = domain.RoleAccountant
	repo.On("List", ctx, 2, 2).Return([]*models.Account{a, b}, int64(5), nil)

	page, err := svc.List(ctx, pagination.New(2, 2))
	require.NoError(t, err)

	require.Len(t, page.Items, 2)
	assert.False(t, page.Items[0].IsAccountant)
	assert.True(t, page.Items[1].IsAccountant)
	assert.Equal(t, int64(5), page.Meta.Total)
	assert.Equal(t, 3, page.Meta.TotalPages)
}
