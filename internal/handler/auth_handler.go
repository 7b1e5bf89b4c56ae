package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"boardman-api/internal/dto"
	"boardman-api/internal/middleware"
	"boardman-api/internal/response"
	"boardman-api/internal/service"
)

// sessionCookieMaxAge keeps the cookie alive as long as the session token
const sessionCookieMaxAge = 7 * 24 * 60 * 60

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// setSessionCookie writes the httpOnly session cookie
func setSessionCookie(c *gin.Context, token string) {
	c.SetCookie(middleware.SessionCookieName, token, sessionCookieMaxAge, "/", "", false, true)
}

// clearSessionCookie expires the session cookie
func clearSessionCookie(c *gin.Context) {
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)
}

// SignUp creates a pending account and mails a one-time code
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req dto.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request")
		return
	}

	pending, token, err := h.authService.SignUp(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	setSessionCookie(c, token)
	response.SendSuccess(c, http.StatusOK, pending)
}

// SignIn mails a one-time code to an existing user
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req dto.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Email is required")
		return
	}

	user, token, err := h.authService.SignIn(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	setSessionCookie(c, token)
	response.SendSuccess(c, http.StatusOK, user)
}

// Verify exchanges a pending session plus a one-time code for a full session
func (h *AuthHandler) Verify(c *gin.Context) {
	claims, ok := sessionClaims(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Authentication required")
		return
	}

	var req dto.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Email and code are required")
		return
	}

	user, token, err := h.authService.Verify(c.Request.Context(), claims, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	setSessionCookie(c, token)
	response.SendSuccess(c, http.StatusOK, user)
}

// SignOut clears the session cookie
func (h *AuthHandler) SignOut(c *gin.Context) {
	clearSessionCookie(c)
	response.SendSuccess(c, http.StatusOK, "Signed out")
}

// sessionClaims reads the parsed token claims set by the auth middleware
func sessionClaims(c *gin.Context) (*service.Claims, bool) {
	v, exists := c.Get("claims")
	if !exists {
		return nil, false
	}
	claims, ok := v.(*service.Claims)
	return claims, ok
}
