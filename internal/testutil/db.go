// Package testutil holds helpers shared by package tests.
package testutil

import (
	"testing"

	"loanapi/internal/adapters/persistence/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a private in-memory SQLite database with the schema migrated
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// Account builds an unsaved account with every required field filled
func Account(username string) *models.Account {
	return &models.Account{
		FirstName:     "Test",
		LastName:      "User",
		Username:      username,
		Email:         username + "@test.com",
		Age:           25,
		MonthlyIncome: decimal.NewFromInt(1000),
		Role:          "User",
		PasswordHash:  "dummyhash123",
	}
}

// Loan builds an unsaved loan owned by accountID
func Loan(accountID uint, amount int64) *models.Loan {
	return &models.Loan{
		AccountID:  accountID,
		LoanType:   "FastLoan",
		Amount:     decimal.NewFromInt(amount),
		Currency:   "GEL",
		LoanPeriod: 12,
		Status:     "Processing",
	}
}
