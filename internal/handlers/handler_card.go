package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/payhub_backend/internal/core/ports/services"
	"github.com/SscSPs/payhub_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

type cardHandler struct {
	cardService portssvc.CardSvcFacade
}

// RegisterCardRoutes registers the saved-card routes.
func RegisterCardRoutes(rg *gin.RouterGroup, cardService portssvc.CardSvcFacade) {
	h := &cardHandler{cardService: cardService}

	cards := rg.Group("/cards")
	{
		cards.GET("", h.listCards)
		cards.POST("", h.createCard)
		cards.DELETE("/:cardID", h.deleteCard)
		cards.POST("/:cardID/default", h.setDefaultCard)
	}
}

// listCards godoc
// @Summary List cards
// @Description Lists the caller's saved cards.
// @Tags cards
// @Produce json
// @Success 200 {array} dto.CardResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /cards [get]
func (h *cardHandler) listCards(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	cards, err := h.cardService.ListCards(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err, "Failed to list cards")
		return
	}

	c.JSON(http.StatusOK, dto.ToListCardResponse(cards))
}

// createCard godoc
// @Summary Save a card
// @Description Saves a card. Only the last four digits are kept; isDefault moves the default to this card.
// @Tags cards
// @Accept json
// @Produce json
// @Param card body dto.CreateCardRequest true "Card details"
// @Success 201 {object} dto.CardResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /cards [post]
func (h *cardHandler) createCard(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindError(c, err)
		return
	}

	card, err := h.cardService.CreateCard(c.Request.Context(), userID, req)
	if err != nil {
		respondWithError(c, err, "Failed to save card")
		return
	}

	c.JSON(http.StatusCreated, dto.ToCardResponse(card))
}

// deleteCard godoc
// @Summary Delete a card
// @Tags cards
// @Param cardID path string true "Card ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Card belongs to another user"
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /cards/{cardID} [delete]
func (h *cardHandler) deleteCard(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.cardService.DeleteCard(c.Request.Context(), userID, c.Param("cardID")); err != nil {
		respondWithError(c, err, "Failed to delete card")
		return
	}

	c.Status(http.StatusNoContent)
}

// setDefaultCard godoc
// @Summary Set the default card
// @Description Makes the card the caller's only default card.
// @Tags cards
// @Param cardID path string true "Card ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Card belongs to another user"
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /cards/{cardID}/default [post]
func (h *cardHandler) setDefaultCard(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.cardService.SetDefaultCard(c.Request.Context(), userID, c.Param("cardID")); err != nil {
		respondWithError(c, err, "Failed to set default card")
		return
	}

	c.Status(http.StatusNoContent)
}
