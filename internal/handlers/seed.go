package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"koperasi-pos/internal/database"
)

type SeedHandler struct {
	db    *gorm.DB
	redis *redis.Client
}

func NewSeedHandler(db *gorm.DB, redisClient *redis.Client) *SeedHandler {
	return &SeedHandler{db: db, redis: redisClient}
}

func (h *SeedHandler) Seed(c *gin.Context) {
	if err := database.Seed(h.db); err != nil {
		c.JSON(http.StatusConflict, errorResponse(err.Error()))
		return
	}

	invalidateCatalogCaches(c.Request.Context(), h.redis)
	c.JSON(http.StatusOK, successResponse("Sample members and products loaded", nil))
}
