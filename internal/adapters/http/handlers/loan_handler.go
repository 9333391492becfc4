package handlers

import (
	"strings"

	"loanapi/internal/adapters/http/middleware"
	"loanapi/internal/adapters/persistence/models"
	"loanapi/internal/core/domain"
	"loanapi/internal/core/services"
	"loanapi/internal/pkg/response"
	"loanapi/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// LoanHandler handles loan request endpoints
type LoanHandler struct {
	loans *services.LoanService
}

// NewLoanHandler creates a new loan handler
func NewLoanHandler(loans *services.LoanService) *LoanHandler {
	return &LoanHandler{loans: loans}
}

// CreateLoanRequest represents a new loan request body
type CreateLoanRequest struct {
	LoanType   string          `json:"loan_type" validate:"required,loantype"`
	Amount     decimal.Decimal `json:"amount" validate:"gt=0,money"`
	Currency   string          `json:"currency" validate:"required,len=3,alpha,uppercase"`
	LoanPeriod int             `json:"loan_period" validate:"gt=0"`
}

// UpdateLoanRequest represents the fields an owner may change.
// Omitted fields keep their value.
type UpdateLoanRequest struct {
	Amount     *decimal.Decimal `json:"amount" validate:"omitempty,gt=0,money"`
	Currency   *string          `json:"currency" validate:"omitempty,len=3,alpha,uppercase"`
	LoanPeriod *int             `json:"loan_period" validate:"omitempty,gt=0"`
}

// AccountantUpdateLoanRequest adds loan type and status
type AccountantUpdateLoanRequest struct {
	UpdateLoanRequest
	LoanType *string `json:"loan_type" validate:"omitempty,loantype"`
	Status   *string `json:"status" validate:"omitempty,loanstatus"`
}

func (r UpdateLoanRequest) changes() services.LoanChanges {
	changes := services.LoanChanges{
		Amount:     r.Amount,
		LoanPeriod: r.LoanPeriod,
	}
	if r.Currency != nil {
		currency := strings.TrimSpace(*r.Currency)
		changes.Currency = &currency
	}
	return changes
}

// CreateLoan handles submitting a loan request
// @Summary Request a loan
// @Description Submit a loan request; it starts in Processing status
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateLoanRequest true "Loan data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /loans [post]
func (h *LoanHandler) CreateLoan(c *fiber.Ctx) error {
	var req CreateLoanRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	req.Currency = strings.TrimSpace(req.Currency)
	if err := validation.Struct(req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	loan := &models.Loan{
		LoanType:   domain.LoanType(req.LoanType),
		Amount:     req.Amount,
		Currency:   req.Currency,
		LoanPeriod: req.LoanPeriod,
	}

	loan, err := h.loans.Create(c.UserContext(), middleware.AccountID(c), loan)
	if err != nil {
		return domainError(c, err, "Failed to create loan")
	}

	return response.Created(c, "Loan request submitted successfully", loan.ToResponse())
}

// GetMyLoans handles listing the caller's loans
// @Summary My loans
// @Description List the authenticated account's loan requests
// @Tags Loans
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /loans/my [get]
func (h *LoanHandler) GetMyLoans(c *fiber.Ctx) error {
	loans, err := h.loans.ListOwnedBy(c.UserContext(), middleware.AccountID(c))
	if err != nil {
		return domainError(c, err, "Failed to list loans")
	}

	return response.Success(c, "Loans retrieved successfully", models.LoansToResponse(loans))
}

// GetLoan handles getting one loan. Users may only read their own loans.
// @Summary Get loan
// @Description Get a loan request by ID
// @Tags Loans
// @Produce json
// @Security BearerAuth
// @Param id path int true "Loan ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loans/{id} [get]
func (h *LoanHandler) GetLoan(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return response.BadRequest(c, "Invalid loan ID")
	}

	loan, err := h.loans.FetchByID(c.UserContext(), id)
	if err != nil {
		return domainError(c, err, "Failed to get loan")
	}

	if loan.AccountID != middleware.AccountID(c) && middleware.Role(c) != domain.RoleAccountant {
		return response.Forbidden(c, domain.ErrAccessDenied.Error())
	}

	return response.Success(c, "Loan retrieved successfully", loan.ToResponse())
}

// UpdateLoan handles an owner changing a processing loan
// @Summary Update own loan
// @Description Change amount, currency or period while the loan is Processing
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Loan ID"
// @Param body body UpdateLoanRequest true "Changes"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /loans/{id} [put]
func (h *LoanHandler) UpdateLoan(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return response.BadRequest(c, "Invalid loan ID")
	}

	var req UpdateLoanRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	loan, err := h.loans.UpdateAsOwner(c.UserContext(), middleware.AccountID(c), id, req.changes())
	if err != nil {
		return domainError(c, err, "Failed to update loan")
	}

	return response.Success(c, "Loan updated successfully", loan.ToResponse())
}

// DeleteLoan handles an owner removing a processing loan
// @Summary Delete own loan
// @Description Delete a loan while it is Processing
// @Tags Loans
// @Produce json
// @Security BearerAuth
// @Param id path int true "Loan ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /loans/{id} [delete]
func (h *LoanHandler) DeleteLoan(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return response.BadRequest(c, "Invalid loan ID")
	}

	if err := h.loans.DeleteAsOwner(c.UserContext(), middleware.AccountID(c), id); err != nil {
		return domainError(c, err, "Failed to delete loan")
	}

	return response.Success(c, "Loan deleted successfully", nil)
}

// ListAllLoans handles listing every loan (Accountant only)
// @Summary All loans
// @Description List every loan with its owning account (Accountant only)
// @Tags Accountant
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /accountant/loans [get]
func (h *LoanHandler) ListAllLoans(c *fiber.Ctx) error {
	loans, err := h.loans.ListAll(c.UserContext())
	if err != nil {
		return domainError(c, err, "Failed to list loans")
	}

	return response.Success(c, "Loans retrieved successfully", models.LoansToResponse(loans))
}

// AccountantUpdateLoan handles an accountant changing any loan
// @Summary Review loan
// @Description Change any field of a loan, including status (Accountant only)
// @Tags Accountant
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Loan ID"
// @Param body body AccountantUpdateLoanRequest true "Changes"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /accountant/loans/{id} [put]
func (h *LoanHandler) AccountantUpdateLoan(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return response.BadRequest(c, "Invalid loan ID")
	}

	var req AccountantUpdateLoanRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	changes := services.AccountantLoanChanges{LoanChanges: req.changes()}
	if req.LoanType != nil {
		loanType := domain.LoanType(*req.LoanType)
		changes.LoanType = &loanType
	}
	if req.Status != nil {
		status := domain.LoanStatus(*req.Status)
		changes.Status = &status
	}

	loan, err := h.loans.UpdateAsAccountant(c.UserContext(), id, changes)
	if err != nil {
		return domainError(c, err, "Failed to update loan")
	}

	return response.Success(c, "Loan updated successfully", loan.ToResponse())
}

// AccountantDeleteLoan handles an accountant removing any loan
// @Summary Delete loan
// @Description Delete any loan regardless of status (Accountant only)
// @Tags Accountant
// @Produce json
// @Security BearerAuth
// @Param id path int true "Loan ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /accountant/loans/{id} [delete]
func (h *LoanHandler) AccountantDeleteLoan(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return response.BadRequest(c, "Invalid loan ID")
	}

	if err := h.loans.DeleteAsAccountant(c.UserContext(), id); err != nil {
		return domainError(c, err, "Failed to delete loan")
	}

	return response.Success(c, "Loan deleted successfully", nil)
}
