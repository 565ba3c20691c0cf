package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"koperasi-pos/internal/settlement"
)

type DebtHandler struct {
	engine *settlement.Engine
	redis  *redis.Client
}

func NewDebtHandler(engine *settlement.Engine, redisClient *redis.Client) *DebtHandler {
	return &DebtHandler{engine: engine, redis: redisClient}
}

type ApplyPaymentRequest struct {
	DebtID int64  `json:"debt_id" binding:"required"`
	Amount string `json:"amount" binding:"required"`
	Note   string `json:"note"`
}

func parseOptionalID(c *gin.Context, name string) (*int64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, false
	}
	return &id, true
}

func (h *DebtHandler) ListDebts(c *gin.Context) {
	memberID, ok := parseOptionalID(c, "member_id")
	if !ok {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid member_id"))
		return
	}

	debts, err := h.engine.ListDebts(c.Request.Context(), memberID, c.Query("status"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to list debts"))
		return
	}

	c.JSON(http.StatusOK, successResponse("Debts retrieved successfully", debts))
}

func (h *DebtHandler) GetDebt(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid debt ID"))
		return
	}

	debt, err := h.engine.GetDebt(c.Request.Context(), id)
	if err != nil {
		c.JSON(statusForError(err), errorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, successResponse("Debt retrieved successfully", debt))
}

// SummarizeDebts groups the (optionally filtered) debt collection per member.
func (h *DebtHandler) SummarizeDebts(c *gin.Context) {
	memberID, ok := parseOptionalID(c, "member_id")
	if !ok {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid member_id"))
		return
	}

	debts, err := h.engine.ListDebts(c.Request.Context(), memberID, c.Query("status"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to list debts"))
		return
	}

	c.JSON(http.StatusOK, successResponse("Debt summary retrieved successfully",
		settlement.SummarizeDebtsByMember(debts)))
}

func (h *DebtHandler) ApplyPayment(c *gin.Context) {
	var req ApplyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("debt_id and amount are required"))
		return
	}

	payment, debt, err := h.engine.ApplyPayment(c.Request.Context(), settlement.PaymentInput{
		DebtID: req.DebtID,
		Amount: req.Amount,
		Note:   req.Note,
	})
	if err != nil {
		c.JSON(statusForError(err), errorResponse(err.Error()))
		return
	}

	// Outstanding-credit totals moved, cached dashboard stats are stale.
	if h.redis != nil {
		_ = h.redis.Del(c.Request.Context(), DashboardCacheKey)
	}

	c.JSON(http.StatusCreated, successResponse("Payment recorded successfully", gin.H{
		"payment": payment,
		"debt":    debt,
	}))
}

func (h *DebtHandler) ListPayments(c *gin.Context) {
	memberID, ok := parseOptionalID(c, "member_id")
	if !ok {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid member_id"))
		return
	}
	debtID, ok := parseOptionalID(c, "debt_id")
	if !ok {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid debt_id"))
		return
	}

	payments, err := h.engine.ListPayments(c.Request.Context(), memberID, debtID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to list payments"))
		return
	}

	c.JSON(http.StatusOK, successResponse("Payments retrieved successfully", payments))
}

// ListDebtPayments serves the nested payment-history route for one debt.
func (h *DebtHandler) ListDebtPayments(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid debt ID"))
		return
	}

	if _, err := h.engine.GetDebt(c.Request.Context(), id); err != nil {
		c.JSON(statusForError(err), errorResponse(err.Error()))
		return
	}

	payments, err := h.engine.ListPayments(c.Request.Context(), nil, &id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to list payments"))
		return
	}

	c.JSON(http.StatusOK, successResponse("Payments retrieved successfully", payments))
}
