package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"koperasi-pos/internal/database/models"
)

const (
	ProductListCacheKey = "pos:products"
	DashboardCacheKey   = "pos:dashboard"
	CacheTTLShort       = 5 * time.Minute
)

type ProductHandler struct {
	db    *gorm.DB
	redis *redis.Client
}

func NewProductHandler(db *gorm.DB, redisClient *redis.Client) *ProductHandler {
	return &ProductHandler{db: db, redis: redisClient}
}

type ProductRequest struct {
	Code      string `json:"code" binding:"required"`
	Name      string `json:"name" binding:"required"`
	Category  string `json:"category" binding:"required"`
	CostPrice string `json:"cost_price" binding:"required"`
	SellPrice string `json:"sell_price" binding:"required"`
	Stock     int64  `json:"stock"`
	Unit      string `json:"unit" binding:"required"`
}

// invalidateCatalogCaches drops the cached product list and dashboard stats.
func invalidateCatalogCaches(ctx context.Context, rdb *redis.Client) {
	if rdb == nil {
		return
	}
	_ = rdb.Del(ctx, ProductListCacheKey, DashboardCacheKey)
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	category := c.Query("category")
	search := c.Query("search")
	lowStock := c.Query("low_stock")

	// Unfiltered listing is the POS hot path; serve it from cache.
	cacheable := category == "" && search == "" && lowStock == ""
	if cacheable && h.redis != nil {
		if cached, err := h.redis.Get(c.Request.Context(), ProductListCacheKey).Result(); err == nil {
			var products []models.Product
			if json.Unmarshal([]byte(cached), &products) == nil {
				c.JSON(http.StatusOK, successResponse("Products retrieved successfully", products))
				return
			}
		}
	}

	q := h.db.Model(&models.Product{}).Order("created_at DESC, id DESC")
	if category != "" && category != "all" {
		q = q.Where("category = ?", category)
	}
	if search != "" {
		term := "%" + search + "%"
		q = q.Where("name ILIKE ? OR code ILIKE ?", term, term)
	}
	if lowStock == "true" {
		q = q.Where("stock < ?", models.LowStockThreshold)
	}

	var products []models.Product
	if err := q.Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to list products"))
		return
	}

	if cacheable && h.redis != nil {
		if payload, err := json.Marshal(products); err == nil {
			_ = h.redis.Set(c.Request.Context(), ProductListCacheKey, payload, CacheTTLShort).Err()
		}
	}

	c.JSON(http.StatusOK, successResponse("Products retrieved successfully", products))
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid product ID"))
		return
	}

	var product models.Product
	if err := h.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, errorResponse("Product not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to get product"))
		return
	}

	c.JSON(http.StatusOK, successResponse("Product retrieved successfully", product))
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("code, name, category, cost_price, sell_price and unit are required"))
		return
	}
	if req.Stock < 0 {
		c.JSON(http.StatusBadRequest, errorResponse("stock must not be negative"))
		return
	}
	if !validAmount(req.CostPrice) || !validAmount(req.SellPrice) {
		c.JSON(http.StatusBadRequest, errorResponse("prices must be non-negative decimal amounts"))
		return
	}

	product := models.Product{
		Code:      req.Code,
		Name:      req.Name,
		Category:  req.Category,
		CostPrice: req.CostPrice,
		SellPrice: req.SellPrice,
		Stock:     req.Stock,
		Unit:      req.Unit,
	}

	if err := h.db.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to create product"))
		return
	}

	invalidateCatalogCaches(c.Request.Context(), h.redis)
	c.JSON(http.StatusCreated, successResponse("Product created successfully", product))
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid product ID"))
		return
	}

	var product models.Product
	if err := h.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, errorResponse("Product not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to get product"))
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("code, name, category, cost_price, sell_price and unit are required"))
		return
	}
	if req.Stock < 0 {
		c.JSON(http.StatusBadRequest, errorResponse("stock must not be negative"))
		return
	}
	if !validAmount(req.CostPrice) || !validAmount(req.SellPrice) {
		c.JSON(http.StatusBadRequest, errorResponse("prices must be non-negative decimal amounts"))
		return
	}

	product.Code = req.Code
	product.Name = req.Name
	product.Category = req.Category
	product.CostPrice = req.CostPrice
	product.SellPrice = req.SellPrice
	product.Stock = req.Stock
	product.Unit = req.Unit

	if err := h.db.Save(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to update product"))
		return
	}

	invalidateCatalogCaches(c.Request.Context(), h.redis)
	c.JSON(http.StatusOK, successResponse("Product updated successfully", product))
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid product ID"))
		return
	}

	res := h.db.Delete(&models.Product{}, id)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to delete product"))
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, errorResponse("Product not found"))
		return
	}

	invalidateCatalogCaches(c.Request.Context(), h.redis)
	c.JSON(http.StatusOK, successResponse("Product deleted successfully", nil))
}
