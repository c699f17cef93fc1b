// internal/handlers/auth/auth_handler.go
package auth

import (
	"net/http"

	"github.com/kubilayakkiz/wawainteriorsNL/internal/domain/customer"
	"github.com/kubilayakkiz/wawainteriorsNL/internal/middleware"
	"github.com/kubilayakkiz/wawainteriorsNL/internal/pkg/response"
	identitySvc "github.com/kubilayakkiz/wawainteriorsNL/internal/service/identity"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	identityService *identitySvc.Service
	logger          *zap.Logger
}

func NewAuthHandler(identityService *identitySvc.Service, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		identityService: identityService,
		logger:          logger,
	}
}

// Register handles customer registration (public endpoint)
func (h *AuthHandler) Register(c *gin.Context) {
	var req customer.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	sess, err := h.identityService.SignUp(c.Request.Context(), &req)
	if err != nil {
		h.logger.Warn("registration failed",
			zap.String("email", req.Email),
			zap.Error(err),
		)
		response.FromError(c, "registration failed", err)
		return
	}

	response.Success(c, http.StatusCreated, "registration successful", sess)
}

// Login handles customer and admin login
func (h *AuthHandler) Login(c *gin.Context) {
	var req customer.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	sess, err := h.identityService.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Warn("login failed",
			zap.String("email", req.Email),
			zap.String("ip", c.ClientIP()),
			zap.Error(err),
		)
		response.FromError(c, "login failed", err)
		return
	}

	h.logger.Info("user logged in",
		zap.String("identity_id", sess.IdentityID),
		zap.String("email", sess.Email),
	)

	response.Success(c, http.StatusOK, "login successful", sess)
}

// Logout revokes the caller's session (requires auth)
func (h *AuthHandler) Logout(c *gin.Context) {
	sess := middleware.MustGetSession(c)

	if err := h.identityService.SignOut(c.Request.Context(), sess.IdentityID, sess.JTI); err != nil {
		h.logger.Error("logout failed",
			zap.String("identity_id", sess.IdentityID),
			zap.Error(err),
		)
		response.Error(c, http.StatusInternalServerError, "logout failed", err)
		return
	}

	response.Success(c, http.StatusOK, "logged out", nil)
}

// Me returns the caller's session (requires auth)
func (h *AuthHandler) Me(c *gin.Context) {
	sess := middleware.MustGetSession(c)
	response.Success(c, http.StatusOK, "session", sess)
}
