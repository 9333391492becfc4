package handlers

import (
	"errors"
	"strconv"

	"loanapi/internal/core/domain"
	"loanapi/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// domainError maps service errors onto HTTP responses.
// Unknown errors become a 500 with fallback as message.
func domainError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, domain.ErrDuplicateUsername),
		errors.Is(err, domain.ErrDuplicateEmail),
		errors.Is(err, domain.ErrInvalidState):
		return response.Conflict(c, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		return response.Unauthorized(c, err.Error())
	case errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrLoanNotFound):
		return response.NotFound(c, err.Error())
	case errors.Is(err, domain.ErrAccountBlocked),
		errors.Is(err, domain.ErrAccessDenied):
		return response.Forbidden(c, err.Error())
	case errors.Is(err, domain.ErrInvalidLoanStatus),
		errors.Is(err, domain.ErrInvalidLoanType):
		return response.BadRequest(c, err.Error())
	default:
		return response.InternalServerError(c, fallback)
	}
}

// paramID parses the :id route parameter
func paramID(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
