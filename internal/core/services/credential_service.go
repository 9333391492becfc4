package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"loanapi/internal/adapters/persistence/models"
	"loanapi/internal/adapters/persistence/repositories"
	"loanapi/internal/core/domain"
	"loanapi/internal/pkg/pagination"

	"gorm.io/gorm"
)

// CredentialService handles registration, login and account administration
type CredentialService struct {
	accountRepo repositories.AccountRepository
	hasher      PasswordHasher
	tokens      TokenIssuer
	logger      *slog.Logger
}

// NewCredentialService creates a new credential service
func NewCredentialService(
	accountRepo repositories.AccountRepository,
	hasher PasswordHasher,
	tokens TokenIssuer,
	logger *slog.Logger,
) *CredentialService {
	return &CredentialService{
		accountRepo: accountRepo,
		hasher:      hasher,
		tokens:      tokens,
		logger:      logger,
	}
}

// Register creates a regular account. Only the bcrypt hash of password is stored.
func (s *CredentialService) Register(ctx context.Context, account *models.Account, password string) (*models.Account, error) {
	log := s.logger.With("username", account.Username)

	// 1. Check if username already exists
	exists, err := s.accountRepo.ExistsByUsername(ctx, account.Username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if exists {
		log.Warn("registration rejected: username already exists")
		return nil, domain.ErrDuplicateUsername
	}

	// 2. Check if email already exists
	exists, err = s.accountRepo.ExistsByEmail(ctx, account.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		log.Warn("registration rejected: email already exists", "email", account.Email)
		return nil, domain.ErrDuplicateEmail
	}

	// 3. Hash password
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// 4. Create account; role and block flag are never client supplied
	account.ID = 0
	account.PasswordHash = hash
	account.Role = domain.RoleUser
	account.IsBlocked = false

	if err := s.accountRepo.Create(ctx, account); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// a concurrent registration claimed the username or email
			log.Warn("registration rejected: unique constraint", "error", err)
			return nil, s.duplicateReason(ctx, account.Username)
		}
		return nil, fmt.Errorf("create account: %w", err)
	}

	log.Info("account registered", "account_id", account.ID)
	return account, nil
}

func (s *CredentialService) duplicateReason(ctx context.Context, username string) error {
	if exists, err := s.accountRepo.ExistsByUsername(ctx, username); err == nil && exists {
		return domain.ErrDuplicateUsername
	}
	return domain.ErrDuplicateEmail
}

// Authenticate verifies credentials and returns a signed token.
// Unknown usernames and wrong passwords fail with the same error.
// Blocked accounts may still log in; blocking only restricts loan requests.
func (s *CredentialService) Authenticate(ctx context.Context, username, password string) (string, error) {
	log := s.logger.With("username", username)

	account, err := s.accountRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("login failed: unknown username")
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("get account: %w", err)
	}

	if !s.hasher.Verify(password, account.PasswordHash) {
		log.Warn("login failed: wrong password", "account_id", account.ID)
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(account.ID, account.Username, account.Role)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	log.Info("account logged in", "account_id", account.ID, "role", account.Role)
	return token, nil
}

// FetchByID returns the account or domain.ErrAccountNotFound
func (s *CredentialService) FetchByID(ctx context.Context, id uint) (*models.Account, error) {
	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Debug("account not found", "account_id", id)
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	return account, nil
}

// SetBlocked blocks or unblocks an account
func (s *CredentialService) SetBlocked(ctx context.Context, id uint, blocked bool) (*models.Account, error) {
	account, err := s.FetchByID(ctx, id)
	if err != nil {
		return nil, err
	}

	account.IsBlocked = blocked
	if err := s.accountRepo.Update(ctx, account); err != nil {
		return nil, fmt.Errorf("update account: %w", err)
	}

	action := "unblocked"
	if blocked {
		action = "blocked"
	}
	s.logger.Info("account "+action, "account_id", id, "username", account.Username)
	return account, nil
}

// List lists accounts page by page
func (s *CredentialService) List(ctx context.Context, params *pagination.Params) (*pagination.Page[*models.AccountResponse], error) {
	accounts, total, err := s.accountRepo.List(ctx, params.Offset, params.Limit)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	items := make([]*models.AccountResponse, len(accounts))
	for i, a := range accounts {
		items[i] = a.ToResponse()
	}
	return pagination.NewPage(items, params, total), nil
}
