package handlers

import (
	"net/http"

	domainerrors "contract-registry.backend/internal/domain/errors"
	"contract-registry.backend/internal/interfaces/http/response"
	"contract-registry.backend/pkg/crypto"
	"contract-registry.backend/pkg/jwt"
	"contract-registry.backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TokenIssuer signs admin tokens
type TokenIssuer interface {
	IssueAdminToken(subject string) (*jwt.Token, error)
}

var checkPassword = crypto.CheckPassword

type AdminHandler struct {
	issuer       TokenIssuer
	passwordHash string
}

func NewAdminHandler(issuer TokenIssuer, passwordHash string) *AdminHandler {
	return &AdminHandler{issuer: issuer, passwordHash: passwordHash}
}

// IssueToken exchanges the admin password for a bearer token.
// POST /api/v1/admin/token
func (h *AdminHandler) IssueToken(c *gin.Context) {
	var input struct {
		Subject  string `json:"subject" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if !checkPassword(input.Password, h.passwordHash) {
		logger.Warn(c.Request.Context(), "Rejected admin token request", zap.String("subject", input.Subject))
		response.Error(c, domainerrors.NewAppError(http.StatusUnauthorized, domainerrors.CodeInvalidCredentials, "invalid credentials", domainerrors.ErrInvalidCredentials))
		return
	}

	token, err := h.issuer.IssueAdminToken(input.Subject)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, token)
}
