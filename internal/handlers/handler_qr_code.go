package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/payhub_backend/internal/core/ports/services"
	"github.com/SscSPs/payhub_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

type qrCodeHandler struct {
	qrCodeService portssvc.QRCodeSvcFacade
}

// RegisterQRCodeRoutes registers the receive-by-QR routes.
func RegisterQRCodeRoutes(rg *gin.RouterGroup, qrCodeService portssvc.QRCodeSvcFacade) {
	h := &qrCodeHandler{qrCodeService: qrCodeService}

	qr := rg.Group("/qr-code")
	{
		qr.GET("", h.getActiveQRCode)
		qr.POST("", h.issueQRCode)
		qr.POST("/resolve", h.resolveQRCode)
	}
}

// getActiveQRCode godoc
// @Summary Get active QR code
// @Description Returns the caller's active QR code, issuing one if none exists.
// @Tags qr-code
// @Produce json
// @Success 200 {object} dto.QRCodeResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /qr-code [get]
func (h *qrCodeHandler) getActiveQRCode(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	code, err := h.qrCodeService.GetActiveQRCode(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err, "Failed to retrieve QR code")
		return
	}

	c.JSON(http.StatusOK, dto.ToQRCodeResponse(code))
}

// issueQRCode godoc
// @Summary Issue a new QR code
// @Description Issues a fresh QR code and deactivates the previous one.
// @Tags qr-code
// @Produce json
// @Success 201 {object} dto.QRCodeResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /qr-code [post]
func (h *qrCodeHandler) issueQRCode(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	code, err := h.qrCodeService.IssueQRCode(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err, "Failed to issue QR code")
		return
	}

	c.JSON(http.StatusCreated, dto.ToQRCodeResponse(code))
}

// resolveQRCode godoc
// @Summary Resolve a scanned QR code
// @Description Returns the payee behind an active QR code, with the name to use as recipientName.
// @Tags qr-code
// @Accept json
// @Produce json
// @Param qr body dto.ResolveQRCodeRequest true "Scanned QR payload"
// @Success 200 {object} dto.ResolveQRCodeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /qr-code/resolve [post]
func (h *qrCodeHandler) resolveQRCode(c *gin.Context) {
	if _, ok := requireUserID(c); !ok {
		return
	}

	var req dto.ResolveQRCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindError(c, err)
		return
	}

	payee, err := h.qrCodeService.ResolveQRCode(c.Request.Context(), req.QRString)
	if err != nil {
		respondWithError(c, err, "Failed to resolve QR code")
		return
	}

	c.JSON(http.StatusOK, dto.ResolveQRCodeResponse{UserID: payee.UserID, RecipientName: payee.DisplayName()})
}
