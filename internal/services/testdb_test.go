// internal/services/testdb_test.go
package services_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shopyangu/backend/internal/models"
)

// newTestDB opens a private in-memory database per test. cache=shared with a
// unique name keeps every pooled connection on the same database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Shop{}, &models.Product{}))
	return db
}

func seedShop(t *testing.T, db *gorm.DB, name string) *models.Shop {
	t.Helper()

	shop := &models.Shop{
		Name:        name,
		Description: "a seeded shop for testing",
		Logo:        "https://cdn.example.com/logo.png",
	}
	require.NoError(t, db.Create(shop).Error)
	return shop
}

func seedShopAt(t *testing.T, db *gorm.DB, name string, createdAt time.Time) *models.Shop {
	t.Helper()

	shop := seedShop(t, db, name)
	require.NoError(t, db.Model(shop).UpdateColumn("created_at", createdAt).Error)
	shop.CreatedAt = createdAt
	return shop
}

func seedProduct(t *testing.T, db *gorm.DB, shopID uuid.UUID, stock int, price float64) *models.Product {
	t.Helper()

	product := &models.Product{
		ShopID:      shopID,
		Name:        "Seeded Product",
		Price:       price,
		StockLevel:  stock,
		Description: "a seeded product for testing",
		Images:      []string{"https://cdn.example.com/p1.png"},
		Thumbnail:   "https://cdn.example.com/p1.png",
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func seedProductAt(t *testing.T, db *gorm.DB, shopID uuid.UUID, stock int, price float64, createdAt time.Time) *models.Product {
	t.Helper()

	product := seedProduct(t, db, shopID, stock, price)
	require.NoError(t, db.Model(product).UpdateColumn("created_at", createdAt).Error)
	product.CreatedAt = createdAt
	return product
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
func strPtr(v string) *string     { return &v }
