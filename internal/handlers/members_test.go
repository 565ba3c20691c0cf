package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"koperasi-pos/internal/database/models"
)

func memberRouter(db *gorm.DB) *gin.Engine {
	r := newTestRouter()
	h := NewMemberHandler(db)
	r.GET("/members", h.ListMembers)
	r.GET("/members/:id", h.GetMember)
	r.POST("/members", h.CreateMember)
	r.PUT("/members/:id", h.UpdateMember)
	r.DELETE("/members/:id", h.DeleteMember)
	return r
}

func TestCreateAndGetMember(t *testing.T) {
	db := newTestDB(t)
	r := memberRouter(db)

	w := perform(t, r, http.MethodPost, "/members", gin.H{
		"name":  "Ahmad Hidayat",
		"phone": "081234567001",
		"email": "ahmad@example.com",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", w.Code, w.Body.String())
	}

	var member models.Member
	if err := db.First(&member).Error; err != nil {
		t.Fatalf("member not persisted: %v", err)
	}
	if member.Status != models.MemberStatusActive {
		t.Fatalf("default status = %s, want active", member.Status)
	}
	if member.JoinedAt.IsZero() {
		t.Fatalf("joined_at not set")
	}

	w = perform(t, r, http.MethodGet, fmt.Sprintf("/members/%d", member.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}
	resp := decodeResponse(t, w)
	if !resp.Success {
		t.Fatalf("get not successful: %+v", resp)
	}
}

func TestCreateMemberValidation(t *testing.T) {
	db := newTestDB(t)
	r := memberRouter(db)

	w := perform(t, r, http.MethodPost, "/members", gin.H{"phone": "0812"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing name status = %d, want 400", w.Code)
	}

	w = perform(t, r, http.MethodPost, "/members", gin.H{"name": "X", "status": "suspended"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad status code = %d, want 400", w.Code)
	}
}

func TestListMembersStatusFilter(t *testing.T) {
	db := newTestDB(t)
	for _, m := range []models.Member{
		{Name: "Ahmad", Status: models.MemberStatusActive},
		{Name: "Siti", Status: models.MemberStatusActive},
		{Name: "Budi", Status: models.MemberStatusInactive},
	} {
		if err := db.Create(&m).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	r := memberRouter(db)

	w := perform(t, r, http.MethodGet, "/members?status=active", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	resp := decodeResponse(t, w)
	rows, ok := resp.Data.([]interface{})
	if !ok || len(rows) != 2 {
		t.Fatalf("active members = %v, want 2 rows", resp.Data)
	}

	w = perform(t, r, http.MethodGet, "/members?status=all", nil)
	resp = decodeResponse(t, w)
	rows, _ = resp.Data.([]interface{})
	if len(rows) != 3 {
		t.Fatalf("all members = %d rows, want 3", len(rows))
	}
}

func TestUpdateMember(t *testing.T) {
	db := newTestDB(t)
	member := models.Member{Name: "Ahmad", Status: models.MemberStatusActive}
	if err := db.Create(&member).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	r := memberRouter(db)

	w := perform(t, r, http.MethodPut, fmt.Sprintf("/members/%d", member.ID), gin.H{
		"name":   "Ahmad Hidayat",
		"status": "inactive",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d, body %s", w.Code, w.Body.String())
	}

	var got models.Member
	if err := db.First(&got, member.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Name != "Ahmad Hidayat" || got.Status != models.MemberStatusInactive {
		t.Fatalf("update not applied: %+v", got)
	}
}

func TestDeleteMember(t *testing.T) {
	db := newTestDB(t)
	member := models.Member{Name: "Ahmad", Status: models.MemberStatusActive}
	if err := db.Create(&member).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	r := memberRouter(db)

	w := perform(t, r, http.MethodDelete, fmt.Sprintf("/members/%d", member.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d", w.Code)
	}

	w = perform(t, r, http.MethodDelete, fmt.Sprintf("/members/%d", member.ID), nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("repeat delete status = %d, want 404", w.Code)
	}

	w = perform(t, r, http.MethodGet, "/members/999", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("get missing status = %d, want 404", w.Code)
	}
}
