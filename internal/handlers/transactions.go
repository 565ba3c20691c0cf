package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"koperasi-pos/internal/database/models"
	"koperasi-pos/internal/settlement"
)

type TransactionHandler struct {
	db     *gorm.DB
	engine *settlement.Engine
	redis  *redis.Client
}

func NewTransactionHandler(db *gorm.DB, engine *settlement.Engine, redisClient *redis.Client) *TransactionHandler {
	return &TransactionHandler{db: db, engine: engine, redis: redisClient}
}

type SaleItemRequest struct {
	ProductID int32 `json:"product_id" binding:"required"`
	Quantity  int64 `json:"quantity" binding:"required,min=1"`
}

type CreateSaleRequest struct {
	Items          []SaleItemRequest `json:"items" binding:"required,min=1"`
	PaymentMethod  string            `json:"payment_method" binding:"required"`
	MemberID       *int64            `json:"member_id,omitempty"`
	AmountTendered *string           `json:"amount_tendered,omitempty"`
	DueDate        *time.Time        `json:"due_date,omitempty"`
}

func (h *TransactionHandler) CreateSale(c *gin.Context) {
	var req CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("payment_method and at least one item are required"))
		return
	}

	items := make([]settlement.SaleItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, settlement.SaleItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	trx, err := h.engine.CreateSale(c.Request.Context(), settlement.SaleInput{
		Items:          items,
		PaymentMethod:  req.PaymentMethod,
		MemberID:       req.MemberID,
		AmountTendered: req.AmountTendered,
		DueDate:        req.DueDate,
	})
	if err != nil {
		c.JSON(statusForError(err), errorResponse(err.Error()))
		return
	}

	// Stock changed, cached product list is stale.
	invalidateCatalogCaches(c.Request.Context(), h.redis)

	c.JSON(http.StatusCreated, successResponse("Sale recorded successfully", trx))
}

func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	q := h.db.Model(&models.Transaction{}).Preload("Items").Order("occurred_at DESC, id DESC")

	if memberID := c.Query("member_id"); memberID != "" {
		id, err := strconv.ParseInt(memberID, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse("Invalid member_id"))
			return
		}
		q = q.Where("member_id = ?", id)
	}
	if method := c.Query("method"); method != "" && method != "all" {
		q = q.Where("payment_method = ?", method)
	}
	if start := c.Query("start_date"); start != "" {
		day, err := time.Parse("2006-01-02", start)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse("start_date must be YYYY-MM-DD"))
			return
		}
		q = q.Where("occurred_at >= ?", day)
	}
	if end := c.Query("end_date"); end != "" {
		day, err := time.Parse("2006-01-02", end)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse("end_date must be YYYY-MM-DD"))
			return
		}
		q = q.Where("occurred_at < ?", day.AddDate(0, 0, 1))
	}

	var transactions []models.Transaction
	if err := q.Find(&transactions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to list transactions"))
		return
	}

	c.JSON(http.StatusOK, successResponse("Transactions retrieved successfully", transactions))
}

func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid transaction ID"))
		return
	}

	var trx models.Transaction
	if err := h.db.Preload("Items").First(&trx, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, errorResponse("Transaction not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to get transaction"))
		return
	}

	c.JSON(http.StatusOK, successResponse("Transaction retrieved successfully", trx))
}
