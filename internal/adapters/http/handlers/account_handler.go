package handlers

import (
	"loanapi/internal/adapters/http/middleware"
	"loanapi/internal/core/domain"
	"loanapi/internal/core/services"
	"loanapi/internal/pkg/pagination"
	"loanapi/internal/pkg/response"
	"loanapi/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// AccountHandler handles account administration endpoints
type AccountHandler struct {
	credentials *services.CredentialService
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(credentials *services.CredentialService) *AccountHandler {
	return &AccountHandler{credentials: credentials}
}

// BlockRequest represents the block toggle body
type BlockRequest struct {
	Blocked *bool `json:"blocked" validate:"required"`
}

// GetAccount handles getting an account by ID
// @Summary Get account
// @Description Get an account. Users may only read their own account.
// @Tags Accounts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Account ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /accounts/{id} [get]
func (h *AccountHandler) GetAccount(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return response.BadRequest(c, "Invalid account ID")
	}

	if id != middleware.AccountID(c) && middleware.Role(c) != domain.RoleAccountant {
		return response.Forbidden(c, domain.ErrAccessDenied.Error())
	}

	account, err := h.credentials.FetchByID(c.UserContext(), id)
	if err != nil {
		return domainError(c, err, "Failed to get account")
	}

	return response.Success(c, "Account retrieved successfully", account.ToResponse())
}

// ListAccounts handles listing accounts (Accountant only)
// @Summary List accounts
// @Description List accounts page by page (Accountant only)
// @Tags Accounts
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /accounts [get]
func (h *AccountHandler) ListAccounts(c *fiber.Ctx) error {
	page, err := h.credentials.List(c.UserContext(), pagination.GetParams(c))
	if err != nil {
		return domainError(c, err, "Failed to list accounts")
	}

	return response.Success(c, "Accounts retrieved successfully", page)
}

// SetBlocked handles blocking or unblocking an account (Accountant only)
// @Summary Block or unblock account
// @Description Set the blocked flag of an account (Accountant only)
// @Tags Accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Account ID"
// @Param body body BlockRequest true "Block flag"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /accounts/{id}/block [patch]
func (h *AccountHandler) SetBlocked(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return response.BadRequest(c, "Invalid account ID")
	}

	var req BlockRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	account, err := h.credentials.SetBlocked(c.UserContext(), id, *req.Blocked)
	if err != nil {
		return domainError(c, err, "Failed to update account")
	}

	return response.Success(c, "Account updated successfully", account.ToResponse())
}
