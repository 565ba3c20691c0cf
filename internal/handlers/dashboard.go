package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"koperasi-pos/internal/database/models"
)

type DashboardHandler struct {
	db    *gorm.DB
	redis *redis.Client
}

func NewDashboardHandler(db *gorm.DB, redisClient *redis.Client) *DashboardHandler {
	return &DashboardHandler{db: db, redis: redisClient}
}

type DashboardStats struct {
	TodaySalesTotal   string `json:"today_sales_total"`
	TodaySalesCount   int64  `json:"today_sales_count"`
	ActiveMembers     int64  `json:"active_members"`
	ProductCount      int64  `json:"product_count"`
	LowStockProducts  int64  `json:"low_stock_products"`
	OutstandingCredit string `json:"outstanding_credit"`
}

func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	if h.redis != nil {
		if cached, err := h.redis.Get(c.Request.Context(), DashboardCacheKey).Result(); err == nil {
			var stats DashboardStats
			if json.Unmarshal([]byte(cached), &stats) == nil {
				c.JSON(http.StatusOK, successResponse("Dashboard stats retrieved successfully", stats))
				return
			}
		}
	}

	var stats DashboardStats

	if err := h.db.Model(&models.Member{}).
		Where("status = ?", models.MemberStatusActive).
		Count(&stats.ActiveMembers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to compute dashboard stats"))
		return
	}
	if err := h.db.Model(&models.Product{}).Count(&stats.ProductCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to compute dashboard stats"))
		return
	}
	if err := h.db.Model(&models.Product{}).
		Where("stock < ?", models.LowStockThreshold).
		Count(&stats.LowStockProducts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to compute dashboard stats"))
		return
	}

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var todays []models.Transaction
	if err := h.db.Where("occurred_at >= ?", startOfDay).Find(&todays).Error; err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to compute dashboard stats"))
		return
	}
	salesTotal := decimal.Zero
	for _, trx := range todays {
		if total, err := decimal.NewFromString(trx.Total); err == nil {
			salesTotal = salesTotal.Add(total)
		}
	}
	stats.TodaySalesCount = int64(len(todays))
	stats.TodaySalesTotal = salesTotal.StringFixed(2)

	var unpaid []models.Debt
	if err := h.db.Where("status = ?", models.DebtStatusUnpaid).Find(&unpaid).Error; err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to compute dashboard stats"))
		return
	}
	outstanding := decimal.Zero
	for _, d := range unpaid {
		if remaining, err := decimal.NewFromString(d.RemainingAmount); err == nil {
			outstanding = outstanding.Add(remaining)
		}
	}
	stats.OutstandingCredit = outstanding.StringFixed(2)

	if h.redis != nil {
		if payload, err := json.Marshal(stats); err == nil {
			_ = h.redis.Set(c.Request.Context(), DashboardCacheKey, payload, CacheTTLShort).Err()
		}
	}

	c.JSON(http.StatusOK, successResponse("Dashboard stats retrieved successfully", stats))
}
