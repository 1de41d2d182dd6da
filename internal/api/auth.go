package api

import (
	"database/sql"
	"net/http"
	"time"

	"vocabpool/internal/auth"
	"vocabpool/internal/config"
	"vocabpool/internal/database"
	"vocabpool/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuthHandler handles account creation, login, and profile requests.
type AuthHandler struct {
	userService  *models.UserService
	tokenService *auth.TokenService
	emailService *auth.EmailService
	userRepo     models.UserRepository
}

// NewAuthHandler creates a new authentication handler.
func NewAuthHandler(db *sql.DB, cfg *config.Config) *AuthHandler {
	userRepo := database.NewUserRepository(db)
	userService := models.NewUserService(userRepo)
	tokenService := auth.NewTokenService(cfg)
	emailService := auth.NewEmailService(cfg)

	return &AuthHandler{
		userService:  userService,
		tokenService: tokenService,
		emailService: emailService,
		userRepo:     userRepo,
	}
}

// SignupRequest represents a signup request.
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Username string `json:"username"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// PasswordResetRequest represents a password reset request.
type PasswordResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// PasswordResetConfirmRequest represents a password reset confirmation.
type PasswordResetConfirmRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// EmailVerificationRequest represents an email verification request.
type EmailVerificationRequest struct {
	Token string `json:"token" binding:"required"`
}

// RefreshTokenRequest represents a token refresh request.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// AuthResponse represents an authentication response.
type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         *models.User `json:"user"`
	ExpiresIn    int          `json:"expires_in"`
}

// Signup handles user registration.
func (ah *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	if existing, err := ah.userService.GetUserByEmail(req.Email); err == nil && existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "User with this email already exists"})
		return
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process password"})
		return
	}

	var username *string
	if req.Username != "" {
		username = &req.Username
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        req.Email,
		Username:     username,
		PasswordHash: hashedPassword,
		IsVerified:   false,
		IsActive:     true,
	}

	if err := ah.userService.CreateUser(user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	verificationToken, err := auth.GenerateSecureToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate verification token"})
		return
	}

	emailToken := &models.EmailVerificationToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		Token:     verificationToken,
		ExpiresAt: time.Now().Add(24 * time.Hour),
		CreatedAt: time.Now(),
	}
	if err := ah.userRepo.CreateEmailVerificationToken(emailToken); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create verification token"})
		return
	}

	if err := ah.emailService.SendEmailVerification(user.Email, user.DisplayName(), verificationToken); err != nil {
		log.Warn().Err(err).Msg("failed to send verification email")
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully. Please check your email for verification instructions.",
		"user": gin.H{
			"id":          user.ID,
			"email":       user.Email,
			"username":    user.Username,
			"is_verified": user.IsVerified,
		},
	})
}

// Login handles user authentication.
func (ah *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	user, err := ah.userService.GetUserByEmail(req.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	if !user.IsActive {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account is deactivated"})
		return
	}

	if err := auth.VerifyPassword(req.Password, user.PasswordHash); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	accessToken, err := ah.tokenService.GenerateAccessToken(user.ID, user.Email, user.IsVerified)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate access token"})
		return
	}

	refreshToken, err := ah.tokenService.GenerateRefreshToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate refresh token"})
		return
	}

	if err := ah.userService.UpdateLastLogin(user.ID); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID.String()).Msg("failed to update last login")
	}

	clientIP := c.ClientIP()
	userAgent := c.GetHeader("User-Agent")
	session := &models.UserSession{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: auth.HashToken(refreshToken),
		ExpiresAt: time.Now().Add(7 * 24 * time.Hour),
		IPAddress: &clientIP,
		UserAgent: &userAgent,
		CreatedAt: time.Now(),
	}
	if err := ah.userRepo.CreateSession(session); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID.String()).Msg("failed to persist session")
	}

	c.JSON(http.StatusOK, AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
		ExpiresIn:    900,
	})
}

// Logout invalidates the session tied to the given refresh token, if any.
func (ah *AuthHandler) Logout(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.ShouldBindJSON(&req); err == nil && req.RefreshToken != "" {
		tokenHash := auth.HashToken(req.RefreshToken)
		if err := ah.userRepo.DeleteSession(tokenHash); err != nil {
			log.Warn().Err(err).Msg("failed to delete session on logout")
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// RefreshToken exchanges a valid refresh token for a new access token.
func (ah *AuthHandler) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	claims, err := ah.tokenService.ValidateToken(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired refresh token"})
		return
	}

	tokenHash := auth.HashToken(req.RefreshToken)
	session, err := ah.userRepo.GetSessionByTokenHash(tokenHash)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session not found, please log in again"})
		return
	}

	if time.Now().After(session.ExpiresAt) {
		_ = ah.userRepo.DeleteSession(tokenHash)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expired, please log in again"})
		return
	}

	user, err := ah.userService.GetUserByID(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	if !user.IsActive {
		_ = ah.userRepo.DeleteSession(tokenHash)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account is deactivated"})
		return
	}

	newAccessToken, err := ah.tokenService.GenerateAccessToken(user.ID, user.Email, user.IsVerified)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate access token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": newAccessToken, "expires_in": 900})
}

// RequestPasswordReset handles password reset requests.
func (ah *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req PasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	const genericMessage = "If an account with that email exists, a password reset link has been sent."

	user, err := ah.userService.GetUserByEmail(req.Email)
	if err != nil || !user.IsActive {
		c.JSON(http.StatusOK, gin.H{"message": genericMessage})
		return
	}

	resetToken, err := auth.GenerateSecureToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate reset token"})
		return
	}

	passwordToken := &models.PasswordResetToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		Token:     resetToken,
		ExpiresAt: time.Now().Add(1 * time.Hour),
		CreatedAt: time.Now(),
	}
	if err := ah.userRepo.CreatePasswordResetToken(passwordToken); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reset token"})
		return
	}

	if err := ah.emailService.SendPasswordReset(user.Email, user.DisplayName(), resetToken); err != nil {
		log.Warn().Err(err).Msg("failed to send password reset email")
	}

	c.JSON(http.StatusOK, gin.H{"message": genericMessage})
}

// ConfirmPasswordReset handles password reset confirmation.
func (ah *AuthHandler) ConfirmPasswordReset(c *gin.Context) {
	var req PasswordResetConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	resetToken, err := ah.userRepo.GetPasswordResetToken(req.Token)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired reset token"})
		return
	}
	if time.Now().After(resetToken.ExpiresAt) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Reset token has expired"})
		return
	}
	if resetToken.UsedAt != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Reset token has already been used"})
		return
	}

	user, err := ah.userService.GetUserByID(resetToken.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User not found"})
		return
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process password"})
		return
	}
	user.PasswordHash = hashedPassword
	if err := ah.userService.UpdateUser(user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
		return
	}

	if err := ah.userRepo.UsePasswordResetToken(req.Token); err != nil {
		log.Warn().Err(err).Msg("failed to mark reset token used")
	}
	if err := ah.userRepo.DeleteUserSessions(user.ID); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate sessions after password reset")
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password has been reset successfully"})
}

// VerifyEmail handles email verification.
func (ah *AuthHandler) VerifyEmail(c *gin.Context) {
	var req EmailVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	verificationToken, err := ah.userRepo.GetEmailVerificationToken(req.Token)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired verification token"})
		return
	}
	if time.Now().After(verificationToken.ExpiresAt) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Verification token has expired"})
		return
	}
	if verificationToken.UsedAt != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email has already been verified"})
		return
	}

	if err := ah.userService.VerifyUserEmail(verificationToken.UserID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify email"})
		return
	}
	if err := ah.userRepo.UseEmailVerificationToken(req.Token); err != nil {
		log.Warn().Err(err).Msg("failed to mark verification token used")
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email has been verified successfully"})
}

// GetProfile returns the current user's profile.
func (ah *AuthHandler) GetProfile(c *gin.Context) {
	user, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdateProfile updates the current user's profile.
func (ah *AuthHandler) UpdateProfile(c *gin.Context) {
	user, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	currentUser := user.(*models.User)

	var req struct {
		Username *string `json:"username"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	if req.Username != nil {
		currentUser.Username = req.Username
	}

	if err := ah.userService.UpdateUser(currentUser); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully", "user": currentUser})
}
