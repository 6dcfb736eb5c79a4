package handlers

import (
	"net/http"

	"github.com/SscSPs/payhub_backend/internal/core/domain"
	portssvc "github.com/SscSPs/payhub_backend/internal/core/ports/services"
	"github.com/SscSPs/payhub_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

type accountHandler struct {
	accountService portssvc.AccountSvcFacade
	userService    portssvc.UserSvcFacade
}

func newAccountHandler(as portssvc.AccountSvcFacade, us portssvc.UserSvcFacade) *accountHandler {
	return &accountHandler{
		accountService: as,
		userService:    us,
	}
}

// RegisterAccountRoutes registers the caller's balance and profile routes.
func RegisterAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade, userService portssvc.UserSvcFacade) {
	h := newAccountHandler(accountService, userService)

	rg.GET("/account", h.getAccountBalance)
	rg.GET("/profile", h.getProfile)
	rg.PUT("/profile", h.updateProfile)
}

// getAccountBalance godoc
// @Summary Get account balance
// @Description Returns the caller's current balance.
// @Tags accounts
// @Produce json
// @Success 200 {object} dto.AccountBalanceResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /account [get]
func (h *accountHandler) getAccountBalance(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	acc, err := h.accountService.GetAccount(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err, "Failed to retrieve balance")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountBalanceResponse(acc))
}

// getProfile godoc
// @Summary Get profile
// @Description Returns the caller's profile and balance.
// @Tags accounts
// @Produce json
// @Success 200 {object} dto.ProfileResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /profile [get]
func (h *accountHandler) getProfile(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err, "Failed to retrieve profile")
		return
	}
	h.writeProfile(c, http.StatusOK, userID, user)
}

// updateProfile godoc
// @Summary Update profile
// @Description Updates name, email, phone or address. Omitted fields are unchanged; an empty phone or address clears it.
// @Tags accounts
// @Accept json
// @Produce json
// @Param profile body dto.UpdateProfileRequest true "Profile changes"
// @Success 200 {object} dto.ProfileResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Email already in use"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /profile [put]
func (h *accountHandler) updateProfile(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindError(c, err)
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		respondWithError(c, err, "Failed to update profile")
		return
	}
	h.writeProfile(c, http.StatusOK, userID, user)
}

func (h *accountHandler) writeProfile(c *gin.Context, status int, userID string, user *domain.User) {
	acc, err := h.accountService.GetAccount(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err, "Failed to retrieve profile")
		return
	}
	c.JSON(status, dto.ToProfileResponse(user, acc))
}
