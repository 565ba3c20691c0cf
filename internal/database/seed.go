package database

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"koperasi-pos/internal/database/models"
)

var sampleMembers = []models.Member{
	{Name: "Ahmad Hidayat", Address: "Jl. Merdeka No. 10, Sindangjaya", Phone: "081234567890", Email: "ahmad@email.com", Status: models.MemberStatusActive},
	{Name: "Siti Nurhaliza", Address: "Jl. Sudirman No. 25, Sindangjaya", Phone: "081234567891", Email: "siti@email.com", Status: models.MemberStatusActive},
	{Name: "Budi Santoso", Address: "Jl. Gatot Subroto No. 5, Sindangjaya", Phone: "081234567892", Email: "budi@email.com", Status: models.MemberStatusActive},
	{Name: "Dewi Lestari", Address: "Jl. Pahlawan No. 15, Sindangjaya", Phone: "081234567893", Email: "dewi@email.com", Status: models.MemberStatusActive},
	{Name: "Rudi Hartono", Address: "Jl. Diponegoro No. 8, Sindangjaya", Phone: "081234567894", Email: "rudi@email.com", Status: models.MemberStatusInactive},
}

var sampleProducts = []models.Product{
	{Code: "BRG001", Name: "Beras Premium 5kg", Category: "Sembako", CostPrice: "65000.00", SellPrice: "75000.00", Stock: 50, Unit: "karung"},
	{Code: "BRG002", Name: "Minyak Goreng 2L", Category: "Sembako", CostPrice: "28000.00", SellPrice: "32000.00", Stock: 35, Unit: "botol"},
	{Code: "BRG003", Name: "Gula Pasir 1kg", Category: "Sembako", CostPrice: "12000.00", SellPrice: "15000.00", Stock: 40, Unit: "kg"},
	{Code: "BRG004", Name: "Tepung Terigu 1kg", Category: "Sembako", CostPrice: "10000.00", SellPrice: "13000.00", Stock: 45, Unit: "kg"},
	{Code: "BRG005", Name: "Garam 500g", Category: "Sembako", CostPrice: "4000.00", SellPrice: "6000.00", Stock: 60, Unit: "bungkus"},
	{Code: "BRG006", Name: "Aqua 600ml", Category: "Minuman", CostPrice: "2500.00", SellPrice: "3500.00", Stock: 100, Unit: "botol"},
	{Code: "BRG007", Name: "Teh Botol 350ml", Category: "Minuman", CostPrice: "3000.00", SellPrice: "4500.00", Stock: 80, Unit: "botol"},
	{Code: "BRG008", Name: "Kopi Kapal Api Sachet", Category: "Minuman", CostPrice: "1500.00", SellPrice: "2500.00", Stock: 150, Unit: "sachet"},
	{Code: "BRG009", Name: "Indomie Goreng", Category: "Makanan", CostPrice: "2500.00", SellPrice: "3500.00", Stock: 200, Unit: "bungkus"},
	{Code: "BRG010", Name: "Mie Sedaap Goreng", Category: "Makanan", CostPrice: "2500.00", SellPrice: "3500.00", Stock: 180, Unit: "bungkus"},
	{Code: "BRG011", Name: "Gudang Garam Surya", Category: "Rokok", CostPrice: "22000.00", SellPrice: "25000.00", Stock: 30, Unit: "bungkus"},
	{Code: "BRG012", Name: "Sampoerna Mild", Category: "Rokok", CostPrice: "25000.00", SellPrice: "28000.00", Stock: 25, Unit: "bungkus"},
	{Code: "BRG013", Name: "Sabun Lifebuoy", Category: "Kebersihan", CostPrice: "3000.00", SellPrice: "4500.00", Stock: 50, Unit: "buah"},
	{Code: "BRG014", Name: "Shampo Sunsachet", Category: "Kebersihan", CostPrice: "2000.00", SellPrice: "3000.00", Stock: 8, Unit: "sachet"},
	{Code: "BRG015", Name: "Pasta Gigi Pepsodent", Category: "Kebersihan", CostPrice: "8000.00", SellPrice: "12000.00", Stock: 40, Unit: "tube"},
}

// Seed loads the starter catalog and member directory. It refuses to run
// against a store that already has data.
func Seed(db *gorm.DB) error {
	var memberCount, productCount int64
	db.Model(&models.Member{}).Count(&memberCount)
	db.Model(&models.Product{}).Count(&productCount)
	if memberCount > 0 || productCount > 0 {
		return fmt.Errorf("store already has data, refusing to seed")
	}

	now := time.Now()
	for _, m := range sampleMembers {
		m.JoinedAt = now
		if err := db.Create(&m).Error; err != nil {
			return err
		}
	}
	for _, p := range sampleProducts {
		if err := db.Create(&p).Error; err != nil {
			return err
		}
	}

	return nil
}

// EnsureAdminUser bootstraps the admin account on first start so the
// protected API is reachable on a fresh install.
func EnsureAdminUser(db *gorm.DB, password string) error {
	var count int64
	db.Model(&models.User{}).Where("username = ?", "admin").Count(&count)
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return db.Create(&models.User{
		Username: "admin",
		Password: string(hash),
		Role:     models.RoleAdmin,
		IsActive: true,
	}).Error
}
