// Package http provides HTTP handlers for domain security checks.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/allisson/domainguard/internal/check/http/dto"
	checkService "github.com/allisson/domainguard/internal/check/service"
	"github.com/allisson/domainguard/internal/httputil"
	customValidation "github.com/allisson/domainguard/internal/validation"
)

// CheckHandler handles HTTP requests for domain security checks.
type CheckHandler struct {
	checker checkService.Checker
	logger  *slog.Logger
}

// NewCheckHandler creates a new check handler with required dependencies.
func NewCheckHandler(checker checkService.Checker, logger *slog.Logger) *CheckHandler {
	return &CheckHandler{
		checker: checker,
		logger:  logger,
	}
}

// CheckDomainHandler runs the unified security check for one domain.
// POST /v1/check-domain
// Returns 200 OK when the domain passes; otherwise the mapped verdict status
// (403 whitelist, 400 rejected, 503 unreachable).
func (h *CheckHandler) CheckDomainHandler(c *gin.Context) {
	var req dto.CheckDomainRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	opts := checkService.Options{
		Timeout:       time.Duration(req.TimeoutSeconds) * time.Second,
		SkipWhitelist: req.SkipWhitelist,
	}
	if err := h.checker.Check(c.Request.Context(), req.Domain, opts); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.CheckDomainResponse{Domain: req.Domain, Allowed: true})
}

// CheckDomainsHandler runs the unified security check for several domains.
// POST /v1/check-domains
// Always returns 200 OK with a per-domain result list; individual verdicts
// never fail the batch.
func (h *CheckHandler) CheckDomainsHandler(c *gin.Context) {
	var req dto.CheckDomainsRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	opts := checkService.Options{
		Timeout:       time.Duration(req.TimeoutSeconds) * time.Second,
		SkipWhitelist: req.SkipWhitelist,
	}
	results := h.checker.CheckBatch(c.Request.Context(), req.Domains, opts)

	c.JSON(http.StatusOK, dto.MapBatchResults(results))
}
