package handlers

import (
	"context"
	"net/http"
	"testing"

	"koperasi-pos/internal/database/models"
	"koperasi-pos/internal/settlement"
)

func TestGetDashboard(t *testing.T) {
	db := newTestDB(t)
	engine := settlement.NewEngine(db)

	member := models.Member{Name: "Ahmad", Status: models.MemberStatusActive}
	if err := db.Create(&member).Error; err != nil {
		t.Fatalf("seed member: %v", err)
	}
	inactive := models.Member{Name: "Budi", Status: models.MemberStatusInactive}
	if err := db.Create(&inactive).Error; err != nil {
		t.Fatalf("seed member: %v", err)
	}
	product := seedProduct(t, db, "BRG001", 50) // sells at 12000
	seedProduct(t, db, "BRG002", 3)

	if _, err := engine.CreateSale(context.Background(), settlement.SaleInput{
		Items:         []settlement.SaleItemInput{{ProductID: product.ID, Quantity: 2}},
		PaymentMethod: models.PaymentMethodCash,
	}); err != nil {
		t.Fatalf("cash sale: %v", err)
	}
	if _, err := engine.CreateSale(context.Background(), settlement.SaleInput{
		Items:         []settlement.SaleItemInput{{ProductID: product.ID, Quantity: 1}},
		PaymentMethod: models.PaymentMethodCredit,
		MemberID:      &member.ID,
	}); err != nil {
		t.Fatalf("credit sale: %v", err)
	}

	r := newTestRouter()
	r.GET("/dashboard", NewDashboardHandler(db, nil).GetDashboard)

	w := perform(t, r, http.MethodGet, "/dashboard", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("dashboard status = %d, body %s", w.Code, w.Body.String())
	}

	resp := decodeResponse(t, w)
	stats, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if stats["active_members"] != float64(1) {
		t.Fatalf("active_members = %v, want 1", stats["active_members"])
	}
	if stats["product_count"] != float64(2) {
		t.Fatalf("product_count = %v, want 2", stats["product_count"])
	}
	if stats["low_stock_products"] != float64(1) {
		t.Fatalf("low_stock_products = %v, want 1", stats["low_stock_products"])
	}
	if stats["today_sales_count"] != float64(2) {
		t.Fatalf("today_sales_count = %v, want 2", stats["today_sales_count"])
	}
	if stats["today_sales_total"] != "36000.00" {
		t.Fatalf("today_sales_total = %v, want 36000.00", stats["today_sales_total"])
	}
	if stats["outstanding_credit"] != "12000.00" {
		t.Fatalf("outstanding_credit = %v, want 12000.00", stats["outstanding_credit"])
	}
}
