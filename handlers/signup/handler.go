package signup

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mangomarket/onboard/config"
	"github.com/mangomarket/onboard/services/logging"
	"github.com/mangomarket/onboard/services/otp"
	"go.uber.org/zap"
)

type IssueRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
}

type VerifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type SuccessResponse struct {
	Success   bool   `json:"success"`
	AccountID string `json:"accountId,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// genericVerifyError is the single message returned for every verification
// failure so a caller cannot distinguish a missing challenge from a wrong
// code. The specific cause is logged server-side.
const genericVerifyError = "invalid or expired code"

type Handler struct {
	config *config.Config
	otp    *otp.Service
	logger *logging.Service
}

func NewHandler(cfg *config.Config, otpService *otp.Service, logger *logging.Service) *Handler {
	return &Handler{
		config: cfg,
		otp:    otpService,
		logger: logger,
	}
}

// Issue handles POST /otp/issue. The response never carries the code; it only
// ever travels through the mail collaborator.
func (h *Handler) Issue(c echo.Context) error {
	var req IssueRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	if len(req.Password) < h.config.OTP.MinPasswordLength {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: fmt.Sprintf("password must be at least %d characters", h.config.OTP.MinPasswordLength),
		})
	}

	err := h.otp.Issue(c.Request().Context(), req.Email, req.DisplayName, req.Password)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, SuccessResponse{Success: true})
	case errors.Is(err, otp.ErrInvalidEmail):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid email address"})
	case errors.Is(err, otp.ErrDeliveryFailed):
		// The challenge is stored even when dispatch fails; re-issuing is the
		// recovery path.
		return c.JSON(http.StatusBadGateway, ErrorResponse{Error: "failed to send verification code"})
	default:
		h.logger.Error("challenge issue failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to issue verification code"})
	}
}

// Verify handles POST /otp/verify. Pending signup data (display name,
// password hash) is held server-side from the issue step, so the request
// carries only the email and the submitted code.
func (h *Handler) Verify(c echo.Context) error {
	var req VerifyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	accountID, err := h.otp.Verify(c.Request().Context(), req.Email, req.Code)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, SuccessResponse{Success: true, AccountID: accountID})
	case errors.Is(err, otp.ErrMalformedCode):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid code format; please enter a 6-digit code"})
	case errors.Is(err, otp.ErrChallengeNotFound),
		errors.Is(err, otp.ErrChallengeExpired),
		errors.Is(err, otp.ErrTooManyAttempts),
		errors.Is(err, otp.ErrCodeMismatch):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: genericVerifyError})
	case errors.Is(err, otp.ErrAccountCreationFailed):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: "account could not be created; please restart signup"})
	default:
		h.logger.Error("challenge verification failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "verification failed"})
	}
}
