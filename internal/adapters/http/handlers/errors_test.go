package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"loanapi/internal/core/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainErrorStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.ErrDuplicateUsername, http.StatusConflict},
		{domain.ErrDuplicateEmail, http.StatusConflict},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrAccountNotFound, http.StatusNotFound},
		{domain.ErrLoanNotFound, http.StatusNotFound},
		{domain.ErrAccountBlocked, http.StatusForbidden},
		{domain.ErrAccessDenied, http.StatusForbidden},
		{domain.ErrInvalidState, http.StatusConflict},
		{domain.ErrInvalidLoanStatus, http.StatusBadRequest},
		{domain.ErrInvalidLoanType, http.StatusBadRequest},
		{fmt.Errorf("get loan: %w", errors.New("db down")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		app := fiber.New()
		app.Get("/", func(c *fiber.Ctx) error {
			return domainError(c, tt.err, "failed")
		})

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, tt.want, resp.StatusCode, tt.err.Error())
	}
}
