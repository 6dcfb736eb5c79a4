package handlers

import (
	"net/http"
	"strconv"

	portssvc "github.com/SscSPs/payhub_backend/internal/core/ports/services"
	"github.com/SscSPs/payhub_backend/internal/dto"
	"github.com/SscSPs/payhub_backend/internal/middleware"
	"github.com/SscSPs/payhub_backend/internal/utils"
	"github.com/gin-gonic/gin"
)

type transactionHandler struct {
	ledgerService portssvc.LedgerSvcFacade
	posthog       *utils.PosthogClientWrapper
}

// RegisterTransactionRoutes registers the ledger routes for the caller's own account.
// posthog may be nil.
func RegisterTransactionRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade, posthog *utils.PosthogClientWrapper) {
	h := &transactionHandler{ledgerService: ledgerService, posthog: posthog}

	txns := rg.Group("/transactions")
	{
		txns.POST("", h.postTransaction)
		txns.GET("", h.listTransactions)
		txns.GET("/:transactionID", h.getTransaction)
	}
}

// postTransaction godoc
// @Summary Post a transaction
// @Description Records a credit or debit against the caller's account. Only completed transactions move the balance.
// @Tags transactions
// @Accept json
// @Produce json
// @Param transaction body dto.PostTransactionRequest true "Transaction intent"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Account not found"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions [post]
func (h *transactionHandler) postTransaction(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.PostTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindError(c, err)
		return
	}

	txn, err := h.ledgerService.PostTransaction(c.Request.Context(), userID, req)
	if err != nil {
		respondWithError(c, err, "Failed to post transaction")
		return
	}

	middleware.PosthogEvent(c, h.posthog, "transaction_posted", map[string]any{
		"type":     string(txn.TransactionType),
		"category": txn.Category,
		"status":   string(txn.Status),
	})
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// listTransactions godoc
// @Summary List transactions
// @Description Lists the caller's transactions newest first, optionally capped by limit.
// @Tags transactions
// @Produce json
// @Param limit query int false "Maximum number of transactions (must be positive)"
// @Success 200 {array} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Account not found"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	txns, err := h.ledgerService.ListTransactions(c.Request.Context(), userID, params.Limit)
	if err != nil {
		respondWithError(c, err, "Failed to list transactions")
		return
	}

	c.JSON(http.StatusOK, dto.ToListTransactionResponse(txns))
}

// getTransaction godoc
// @Summary Get a transaction
// @Description Returns one of the caller's transactions.
// @Tags transactions
// @Produce json
// @Param transactionID path int true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{transactionID} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	transactionID, err := strconv.ParseInt(c.Param("transactionID"), 10, 64)
	if err != nil || transactionID <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid transaction ID"})
		return
	}

	txn, err := h.ledgerService.GetTransaction(c.Request.Context(), userID, transactionID)
	if err != nil {
		respondWithError(c, err, "Failed to retrieve transaction")
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}
