package handlers

import (
	"strings"

	"loanapi/internal/adapters/http/middleware"
	"loanapi/internal/adapters/persistence/models"
	"loanapi/internal/core/services"
	"loanapi/internal/pkg/jwt"
	"loanapi/internal/pkg/response"
	"loanapi/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	credentials *services.CredentialService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(credentials *services.CredentialService) *AuthHandler {
	return &AuthHandler{credentials: credentials}
}

// RegisterRequest represents registration request body
type RegisterRequest struct {
	FirstName     string          `json:"first_name" validate:"required,max=50"`
	LastName      string          `json:"last_name" validate:"required,max=50"`
	Username      string          `json:"username" validate:"required,max=50"`
	Email         string          `json:"email" validate:"required,email,max=100"`
	Age           int             `json:"age" validate:"gte=18"`
	MonthlyIncome decimal.Decimal `json:"monthly_income" validate:"gt=0,money"`
	Password      string          `json:"password" validate:"required,min=6"`
}

// LoginRequest represents login request body
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse is returned by a successful login
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// Register handles account registration
// @Summary Register new account
// @Description Register a new account with the User role
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "Registration data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	if err := validation.Struct(req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	account := &models.Account{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Username:      req.Username,
		Email:         req.Email,
		Age:           req.Age,
		MonthlyIncome: req.MonthlyIncome,
	}

	account, err := h.credentials.Register(c.UserContext(), account, req.Password)
	if err != nil {
		return domainError(c, err, "Failed to register account")
	}

	return response.Created(c, "Account registered successfully", account.ToResponse())
}

// Login handles login
// @Summary Login
// @Description Authenticate and return a bearer token valid for 3 hours
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	req.Username = strings.TrimSpace(req.Username)
	if err := validation.Struct(req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	token, err := h.credentials.Authenticate(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return domainError(c, err, "Failed to login")
	}

	return response.Success(c, "Login successful", TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(jwt.TokenLifetime.Seconds()),
	})
}

// Me handles getting the authenticated account
// @Summary Current account
// @Description Get the authenticated account
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	account, err := h.credentials.FetchByID(c.UserContext(), middleware.AccountID(c))
	if err != nil {
		return domainError(c, err, "Failed to get account")
	}

	return response.Success(c, "Account retrieved successfully", account.ToResponse())
}
