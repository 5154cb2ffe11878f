package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/gestion-app/gestion_backend/internal/core/ports/services"
	"github.com/gestion-app/gestion_backend/internal/dto"
	"github.com/gestion-app/gestion_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// settlementHandler handles HTTP requests for the payment settlement workflow.
type settlementHandler struct {
	settlementService portssvc.SettlementSvcFacade
}

func newSettlementHandler(settlementService portssvc.SettlementSvcFacade) *settlementHandler {
	return &settlementHandler{settlementService: settlementService}
}

func (h *settlementHandler) bindSettleRequest(c *gin.Context) (*dto.SettlePaymentRequest, string, bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SettlePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for settlement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return nil, "", false
	}
	agentID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return nil, "", false
	}
	return &req, agentID, true
}

// cashPayment godoc
// @Summary Cash a payment
// @Description Settles a cash-method payment, creating the cashing transaction.
// @Tags settlements
// @Accept json
// @Produce json
// @Param paymentID path string true "Payment ID"
// @Param settlement body dto.SettlePaymentRequest true "Value date"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /payments/{paymentID}/cash [post]
func (h *settlementHandler) cashPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	paymentID := c.Param("paymentID")

	req, agentID, ok := h.bindSettleRequest(c)
	if !ok {
		return
	}

	txn, err := h.settlementService.CashPayment(c.Request.Context(), paymentID, req.Date, agentID)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// undoCashing godoc
// @Summary Undo a cashing
// @Description Reverts a cashed payment to unsettled, soft-deleting the linked transaction.
// @Tags settlements
// @Produce json
// @Param paymentID path string true "Payment ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /payments/{paymentID}/cash [delete]
func (h *settlementHandler) undoCashing(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	paymentID := c.Param("paymentID")

	agentID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.settlementService.UndoCashing(c.Request.Context(), paymentID, agentID); err != nil {
		respondError(c, logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// depositPayment godoc
// @Summary Deposit a payment
// @Description Settles a non-cash payment, creating the deposit transaction.
// @Tags settlements
// @Accept json
// @Produce json
// @Param paymentID path string true "Payment ID"
// @Param settlement body dto.SettlePaymentRequest true "Value date"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /payments/{paymentID}/deposit [post]
func (h *settlementHandler) depositPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	paymentID := c.Param("paymentID")

	req, agentID, ok := h.bindSettleRequest(c)
	if !ok {
		return
	}

	txn, err := h.settlementService.DepositPayment(c.Request.Context(), paymentID, req.Date, agentID)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// undoDeposit godoc
// @Summary Undo a deposit
// @Description Reverts a deposited payment to unsettled, soft-deleting the linked transaction.
// @Tags settlements
// @Produce json
// @Param paymentID path string true "Payment ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /payments/{paymentID}/deposit [delete]
func (h *settlementHandler) undoDeposit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	paymentID := c.Param("paymentID")

	agentID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.settlementService.UndoDeposit(c.Request.Context(), paymentID, agentID); err != nil {
		respondError(c, logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// registerSettlementRoutes registers settlement workflow routes.
func registerSettlementRoutes(group *gin.RouterGroup, settlementService portssvc.SettlementSvcFacade) {
	h := newSettlementHandler(settlementService)

	payments := group.Group("/payments")
	{
		payments.POST("/:paymentID/cash", h.cashPayment)
		payments.DELETE("/:paymentID/cash", h.undoCashing)
		payments.POST("/:paymentID/deposit", h.depositPayment)
		payments.DELETE("/:paymentID/deposit", h.undoDeposit)
	}
}
