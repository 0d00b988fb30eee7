// Package http provides HTTP handlers for token issuance and verification.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/domainguard/internal/httputil"
	"github.com/allisson/domainguard/internal/token/http/dto"
	tokenUseCase "github.com/allisson/domainguard/internal/token/usecase"
	customValidation "github.com/allisson/domainguard/internal/validation"
)

// TokenHandler handles HTTP requests for token operations.
type TokenHandler struct {
	tokenUseCase tokenUseCase.TokenUseCase
	logger       *slog.Logger
}

// NewTokenHandler creates a new token handler with required dependencies.
func NewTokenHandler(useCase tokenUseCase.TokenUseCase, logger *slog.Logger) *TokenHandler {
	return &TokenHandler{
		tokenUseCase: useCase,
		logger:       logger,
	}
}

// GenerateHandler mints a token for a domain that passes all security checks.
// POST /v1/generate-token
// Returns 201 Created with the token, or the mapped verdict status when any
// check fails (403 whitelist, 400 rejected, 503 unreachable).
func (h *TokenHandler) GenerateHandler(c *gin.Context) {
	var req dto.GenerateTokenRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	issued, err := h.tokenUseCase.Issue(c.Request.Context(), req.Domain, req.TTLSeconds)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapIssuedTokenToResponse(issued))
}

// VerifyHandler verifies a previously issued token.
// POST /v1/verify-token
// Returns 200 OK for a valid token and 401 Unauthorized otherwise; both carry
// the verification outcome in the body.
func (h *TokenHandler) VerifyHandler(c *gin.Context) {
	var req dto.VerifyTokenRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	result := h.tokenUseCase.Verify(c.Request.Context(), req.Token)

	statusCode := http.StatusOK
	if !result.Valid {
		statusCode = http.StatusUnauthorized
	}
	c.JSON(statusCode, dto.MapVerifyResultToResponse(result))
}
