package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/payhub_backend/internal/core/ports/services"
	"github.com/SscSPs/payhub_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

type contactHandler struct {
	contactService portssvc.ContactSvcFacade
}

// RegisterContactRoutes registers the contact directory routes.
func RegisterContactRoutes(rg *gin.RouterGroup, contactService portssvc.ContactSvcFacade) {
	h := &contactHandler{contactService: contactService}

	rg.GET("/contacts", h.listContacts)
	rg.POST("/contacts", h.addContact)
}

// listContacts godoc
// @Summary List contacts
// @Description Lists the caller's contacts with the payee name and when they were last paid.
// @Tags contacts
// @Produce json
// @Success 200 {array} dto.ContactResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /contacts [get]
func (h *contactHandler) listContacts(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	contacts, err := h.contactService.ListContacts(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err, "Failed to list contacts")
		return
	}

	c.JSON(http.StatusOK, dto.ToListContactResponse(contacts))
}

// addContact godoc
// @Summary Add a contact
// @Description Adds another user, by username, to the caller's contacts.
// @Tags contacts
// @Accept json
// @Produce json
// @Param contact body dto.AddContactRequest true "Payee username"
// @Success 201 {object} dto.ContactResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "No such user"
// @Failure 409 {object} ErrorResponse "Already a contact"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /contacts [post]
func (h *contactHandler) addContact(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.AddContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindError(c, err)
		return
	}

	contact, err := h.contactService.AddContact(c.Request.Context(), userID, req)
	if err != nil {
		respondWithError(c, err, "Failed to add contact")
		return
	}

	c.JSON(http.StatusCreated, dto.ToContactResponse(contact))
}
