package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pratik-mahalle/hireloop/internal/api/dto"
	"github.com/pratik-mahalle/hireloop/internal/api/middleware"
	"github.com/pratik-mahalle/hireloop/internal/auth"
	"github.com/pratik-mahalle/hireloop/internal/config"
	"github.com/pratik-mahalle/hireloop/internal/domain/user"
	"github.com/pratik-mahalle/hireloop/internal/pkg/errors"
	"github.com/pratik-mahalle/hireloop/internal/pkg/logger"
	"github.com/pratik-mahalle/hireloop/internal/pkg/utils"
	"github.com/pratik-mahalle/hireloop/internal/pkg/validator"
)

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	userService user.Service
	config      *config.Config
	logger      *logger.Logger
	validator   *validator.Validator
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(
	userService user.Service,
	cfg *config.Config,
	log *logger.Logger,
	val *validator.Validator,
) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		config:      cfg,
		logger:      log,
		validator:   val,
	}
}

// Login handles user login
// @Summary User login
// @Description Authenticate user with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.AuthResponse "Successfully authenticated"
// @Failure 400 {object} utils.ErrorResponse "Invalid request"
// @Failure 401 {object} utils.ErrorResponse "Invalid credentials"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	authenticatedUser, err := h.userService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.WithFields(map[string]interface{}{
			"email": req.Email,
		}).Warn("Authentication failed")
		utils.WriteAppError(w, err)
		return
	}

	h.issueSession(w, authenticatedUser, http.StatusOK)

	h.logger.WithFields(map[string]interface{}{
		"user_id": authenticatedUser.ID,
	}).Info("User logged in successfully")
}

// Register handles user registration
// @Summary User registration
// @Description Register a new account. The email starts unverified.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration details"
// @Success 201 {object} dto.AuthResponse "User successfully registered"
// @Failure 400 {object} utils.ErrorResponse "Invalid request or validation error"
// @Failure 409 {object} utils.ErrorResponse "Email already registered"
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	var fullName *string
	if name := strings.TrimSpace(req.FullName); name != "" {
		fullName = &name
	}

	newUser, err := h.userService.Register(r.Context(), req.Email, req.Password, fullName)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	h.issueSession(w, newUser, http.StatusCreated)
}

// VerifyEmail confirms the address behind a verification token
// @Summary Verify email
// @Description Mark the account holding the token as verified. Refresh the session afterwards to carry the verified flag.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.VerifyEmailRequest true "Verification token"
// @Success 200 {object} dto.UserDTO "Verified user"
// @Failure 400 {object} utils.ErrorResponse "Invalid or used token"
// @Router /auth/verify-email [post]
func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req dto.VerifyEmailRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	verified, err := h.userService.VerifyEmail(r.Context(), req.Token)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.ToUserDTO(verified))
}

// Logout handles user logout
// @Summary User logout
// @Description Logout current user
// @Tags Auth
// @Success 200 {object} utils.SuccessResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.setCookie(w, "accessToken", "", -1)
	h.setCookie(w, "refreshToken", "", -1)

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Logged out successfully", nil)
}

// Me returns the current user's information
// @Summary Get current user
// @Description Get authenticated user's information
// @Tags Auth
// @Produce json
// @Success 200 {object} dto.UserDTO "User information"
// @Failure 401 {object} utils.ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("User not authenticated"))
		return
	}

	u, err := h.userService.GetByID(r.Context(), userID)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to get user")
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.ToUserDTO(u))
}

// RefreshToken handles token refresh
// @Summary Refresh access token
// @Description Exchange a refresh token (body or cookie) for a new session
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest false "Refresh token"
// @Success 200 {object} dto.AuthResponse "New tokens generated"
// @Failure 401 {object} utils.ErrorResponse "Invalid refresh token"
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req dto.RefreshTokenRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.WriteError(w, errors.BadRequest("Invalid request body"))
			return
		}
	}
	if req.RefreshToken == "" {
		if cookie, err := r.Cookie("refreshToken"); err == nil {
			req.RefreshToken = cookie.Value
		}
	}
	if req.RefreshToken == "" {
		utils.WriteError(w, errors.Unauthorized("Missing refresh token"))
		return
	}

	claims, err := auth.ParseRefresh(req.RefreshToken, h.config.Auth.JWTSecret)
	if err != nil {
		utils.WriteError(w, errors.Unauthorized("Invalid refresh token"))
		return
	}

	// reload so a freshly verified email reaches the new claims
	u, err := h.userService.GetByID(r.Context(), claims.UserID)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to get user")
		utils.WriteError(w, errors.Unauthorized("Invalid refresh token"))
		return
	}

	h.issueSession(w, u, http.StatusOK)
}

func (h *AuthHandler) issueSession(w http.ResponseWriter, u *user.User, status int) {
	tokens, err := auth.MintTokens(
		auth.Identity{UserID: u.ID, Email: u.Email, EmailVerified: u.EmailVerified},
		h.config.Auth.JWTSecret,
		h.config.Auth.AccessTokenExpiry,
		h.config.Auth.RefreshTokenExpiry,
	)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to generate tokens")
		utils.WriteError(w, errors.Internal("Failed to generate tokens", err))
		return
	}

	h.setCookie(w, "accessToken", tokens.AccessToken, int(h.config.Auth.AccessTokenExpiry.Seconds()))
	h.setCookie(w, "refreshToken", tokens.RefreshToken, int(h.config.Auth.RefreshTokenExpiry.Seconds()))

	utils.WriteSuccess(w, status, dto.AuthResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		User:         dto.ToUserDTO(u),
	})
}

func (h *AuthHandler) setCookie(w http.ResponseWriter, name, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		HttpOnly: true,
		Secure:   h.config.IsProduction(),
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   maxAge,
	})
}
