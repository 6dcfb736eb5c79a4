package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/payhub_backend/internal/apperrors"
	"github.com/SscSPs/payhub_backend/internal/core/domain"
	portssvc "github.com/SscSPs/payhub_backend/internal/core/ports/services"
	"github.com/SscSPs/payhub_backend/internal/dto"
	"github.com/SscSPs/payhub_backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	limitergin "github.com/ulule/limiter/v3/drivers/middleware/gin"
)

// AuthHandler handles registration and password login.
type AuthHandler struct {
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
	captcha      portssvc.CaptchaVerifierSvc
}

// NewAuthHandler creates a new AuthHandler. captcha may be nil.
func NewAuthHandler(us portssvc.UserSvcFacade, ts portssvc.TokenSvcFacade, captcha portssvc.CaptchaVerifierSvc) *AuthHandler {
	return &AuthHandler{
		userService:  us,
		tokenService: ts,
		captcha:      captcha,
	}
}

// RegisterAuthRoutes sets up the public authentication routes on rg (normally /api/v1/auth).
// Login is throttled per client IP when loginLimiter is non-nil.
func RegisterAuthRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer, loginLimiter *limiter.Limiter) {
	h := NewAuthHandler(services.User, services.TokenService, services.Captcha)

	loginChain := []gin.HandlerFunc{}
	if loginLimiter != nil {
		loginChain = append(loginChain, limitergin.NewMiddleware(loginLimiter))
	}
	loginChain = append(loginChain, h.Login)

	rg.POST("/login", loginChain...)
	rg.POST("/register", h.Register)

	g := NewGoogleOAuthHandler(services.GoogleOAuthHandler, services.User, services.TokenService)
	rg.POST("/google/exchange-code", g.ExchangeCodeGoogle)
}

// Login godoc
// @Summary User login
// @Description Authenticates a user and returns a JWT token. The reCAPTCHA token is checked only when supplied.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindError(c, err)
		return
	}

	if req.RecaptchaToken != "" && h.captcha != nil {
		ok, err := h.captcha.Verify(ctx, req.RecaptchaToken)
		if err != nil {
			logger.Error("reCAPTCHA verification request failed", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to verify reCAPTCHA"})
			return
		}
		if !ok {
			logger.Warn("reCAPTCHA rejected", slog.String("username", req.Username))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "reCAPTCHA verification failed"})
			return
		}
	}

	user, err := h.userService.AuthenticateUser(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid username or password"})
			return
		}
		respondWithError(c, err, "Failed to log in")
		return
	}

	h.respondWithToken(c, http.StatusOK, user)
}

// Register godoc
// @Summary Register new user
// @Description Creates a user with an account at the opening balance and returns a JWT token.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterUserRequest true "User Registration Info"
// @Success 201 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Conflict (username or email exists)"
// @Failure 500 {object} ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindError(c, err)
		return
	}

	newUser, err := h.userService.RegisterUser(ctx, req)
	if err != nil {
		respondWithError(c, err, "Failed to register user")
		return
	}

	h.respondWithToken(c, http.StatusCreated, newUser)
}

// respondWithToken issues an access token for user and writes the login body.
func (h *AuthHandler) respondWithToken(c *gin.Context, status int, user *domain.User) {
	token, expiresAt, err := h.tokenService.GenerateAccessToken(c.Request.Context(), user)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to sign JWT token",
			slog.String("user_id", user.UserID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}
	c.JSON(status, dto.LoginResponse{Token: token, ExpiresAt: expiresAt, User: dto.ToUserResponse(user)})
}
