package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/imoblead/fichapro-api/internal/models"
	"github.com/imoblead/fichapro-api/internal/services"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// @Summary Health Check
// @Description Checks if the API is running
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *HealthHandler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "fichapro-api",
		"version": "1.0.0",
	})
}

type AuthHandler struct {
	authService *services.AuthService
	userService *services.UserService
	auditSvc    *services.AuditService
}

func NewAuthHandler(authService *services.AuthService, userService *services.UserService, auditSvc *services.AuditService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
		auditSvc:    auditSvc,
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// @Summary Login
// @Description Authenticates a user
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login Credentials"
// @Success 200 {object} services.LoginResult
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "E-mail e senha são obrigatórios"})
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	h.auditSvc.Log(c.Request.Context(), services.Entry{
		UserID:    &result.User.ID,
		UserName:  result.User.FullName,
		UserEmail: result.User.Email,
		Action:    models.ActionLogin,
		Details:   "acesso ao sistema",
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})

	c.JSON(http.StatusOK, result)
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// @Summary Refresh Token
// @Description Refreshes the access token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body RefreshRequest true "Refresh Token"
// @Success 200 {object} services.LoginResult
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Refresh token é obrigatório"})
		return
	}

	result, err := h.authService.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// @Summary Logout
// @Description Logs out a user (invalidates refresh token)
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body RefreshRequest true "Refresh Token"
// @Success 200 {object} map[string]string
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Refresh token é obrigatório"})
		return
	}

	h.authService.Logout(c.Request.Context(), req.RefreshToken)
	c.JSON(http.StatusOK, gin.H{"message": "Sessão encerrada com sucesso"})
}

type SendRecoveryCodeRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// @Summary Send Recovery Code
// @Description Send password recovery code to email
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body SendRecoveryCodeRequest true "Email"
// @Success 200 {object} map[string]string
// @Router /auth/send_recovery_code [post]
func (h *AuthHandler) SendRecoveryCode(c *gin.Context) {
	var req SendRecoveryCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.userService.SendRecoveryCode(c.Request.Context(), req.Email); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao enviar código"})
		return
	}

	// Same response whether or not the address exists
	c.JSON(http.StatusOK, gin.H{"message": "Código de recuperação enviado"})
}

type VerifyRecoveryCodeRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6"`
}

// @Summary Verify Recovery Code
// @Description Verify if recovery code is valid
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body VerifyRecoveryCodeRequest true "Verification Data"
// @Success 200 {object} map[string]bool
// @Router /auth/verify_recovery_code [post]
func (h *AuthHandler) VerifyRecoveryCode(c *gin.Context) {
	var req VerifyRecoveryCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	valid, err := h.userService.VerifyRecoveryCode(c.Request.Context(), req.Email, req.Code)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao verificar código"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"valid": valid})
}

type UpdatePasswordWithCodeRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Code        string `json:"code" binding:"required,len=6"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

// @Summary Reset Password
// @Description Reset password using recovery code
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body UpdatePasswordWithCodeRequest true "Reset Data"
// @Success 200 {object} map[string]string
// @Router /auth/update_password_with_code [post]
func (h *AuthHandler) UpdatePasswordWithCode(c *gin.Context) {
	var req UpdatePasswordWithCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.userService.UpdatePasswordWithCode(c.Request.Context(), req.Email, req.Code, req.NewPassword); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Código inválido ou expirado"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Senha atualizada com sucesso"})
}
