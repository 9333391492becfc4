package config

import (
	"context"
	"fmt"
	"log/slog"

	"loanapi/internal/adapters/persistence/models"
	"loanapi/internal/adapters/persistence/repositories"
	"loanapi/internal/core/domain"

	"github.com/shopspring/decimal"
)

// PasswordHasher hashes the seeded account password
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// Seeder handles database seeding
type Seeder struct {
	accounts repositories.AccountRepository
	hasher   PasswordHasher
	logger   *slog.Logger
}

// NewSeeder creates a new seeder instance
func NewSeeder(accounts repositories.AccountRepository, hasher PasswordHasher, logger *slog.Logger) *Seeder {
	return &Seeder{accounts: accounts, hasher: hasher, logger: logger}
}

// Run executes all seeders
func (s *Seeder) Run(ctx context.Context, seed SeedConfig) error {
	created, err := s.seedAccountant(ctx, seed)
	if err != nil {
		return fmt.Errorf("seed accountant: %w", err)
	}
	if created {
		s.logger.Info("accountant account created", "username", seed.AccountantUsername)
	}
	return nil
}

// seedAccountant creates the first accountant. It is a no-op when credentials
// are not configured or an accountant already exists.
func (s *Seeder) seedAccountant(ctx context.Context, seed SeedConfig) (bool, error) {
	if seed.AccountantUsername == "" || seed.AccountantPassword == "" {
		s.logger.Debug("accountant seed skipped: SEED_ACCOUNTANT_USERNAME or SEED_ACCOUNTANT_PASSWORD not set")
		return false, nil
	}

	exists, err := s.accounts.ExistsByRole(ctx, domain.RoleAccountant)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	taken, err := s.accounts.ExistsByUsername(ctx, seed.AccountantUsername)
	if err != nil {
		return false, err
	}
	if taken {
		s.logger.Warn("accountant seed skipped: username already in use", "username", seed.AccountantUsername)
		return false, nil
	}

	hash, err := s.hasher.Hash(seed.AccountantPassword)
	if err != nil {
		return false, err
	}

	accountant := &models.Account{
		FirstName:     "System",
		LastName:      "Accountant",
		Username:      seed.AccountantUsername,
		Email:         seed.AccountantEmail,
		Age:           18,
		MonthlyIncome: decimal.NewFromInt(1),
		Role:          domain.RoleAccountant,
		PasswordHash:  hash,
	}
	if err := s.accounts.Create(ctx, accountant); err != nil {
		return false, err
	}
	return true, nil
}
