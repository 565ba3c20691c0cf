package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"koperasi-pos/internal/database/models"
)

type MemberHandler struct {
	db *gorm.DB
}

func NewMemberHandler(db *gorm.DB) *MemberHandler {
	return &MemberHandler{db: db}
}

type MemberRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Status  string `json:"status"`
}

func (h *MemberHandler) ListMembers(c *gin.Context) {
	q := h.db.Model(&models.Member{}).Order("created_at DESC, id DESC")

	if status := c.Query("status"); status != "" && status != "all" {
		q = q.Where("status = ?", status)
	}
	if search := c.Query("search"); search != "" {
		term := "%" + search + "%"
		q = q.Where("name ILIKE ? OR phone LIKE ? OR email ILIKE ?", term, term, term)
	}

	var members []models.Member
	if err := q.Find(&members).Error; err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to list members"))
		return
	}

	c.JSON(http.StatusOK, successResponse("Members retrieved successfully", members))
}

func (h *MemberHandler) GetMember(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid member ID"))
		return
	}

	var member models.Member
	if err := h.db.First(&member, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, errorResponse("Member not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to get member"))
		return
	}

	c.JSON(http.StatusOK, successResponse("Member retrieved successfully", member))
}

func (h *MemberHandler) CreateMember(c *gin.Context) {
	var req MemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("name is required"))
		return
	}

	status := req.Status
	if status == "" {
		status = models.MemberStatusActive
	}
	if status != models.MemberStatusActive && status != models.MemberStatusInactive {
		c.JSON(http.StatusBadRequest, errorResponse("status must be active or inactive"))
		return
	}

	member := models.Member{
		Name:     req.Name,
		Address:  req.Address,
		Phone:    req.Phone,
		Email:    req.Email,
		Status:   status,
		JoinedAt: time.Now(),
	}

	if err := h.db.Create(&member).Error; err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to create member"))
		return
	}

	c.JSON(http.StatusCreated, successResponse("Member created successfully", member))
}

func (h *MemberHandler) UpdateMember(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid member ID"))
		return
	}

	var member models.Member
	if err := h.db.First(&member, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, errorResponse("Member not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to get member"))
		return
	}

	var req MemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("name is required"))
		return
	}
	if req.Status != "" && req.Status != models.MemberStatusActive && req.Status != models.MemberStatusInactive {
		c.JSON(http.StatusBadRequest, errorResponse("status must be active or inactive"))
		return
	}

	member.Name = req.Name
	member.Address = req.Address
	member.Phone = req.Phone
	member.Email = req.Email
	if req.Status != "" {
		member.Status = req.Status
	}

	if err := h.db.Save(&member).Error; err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to update member"))
		return
	}

	c.JSON(http.StatusOK, successResponse("Member updated successfully", member))
}

func (h *MemberHandler) DeleteMember(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid member ID"))
		return
	}

	res := h.db.Delete(&models.Member{}, id)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to delete member"))
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, errorResponse("Member not found"))
		return
	}

	c.JSON(http.StatusOK, successResponse("Member deleted successfully", nil))
}
