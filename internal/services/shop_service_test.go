// internal/services/shop_service_test.go
package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopyangu/backend/internal/apperrors"
	"github.com/shopyangu/backend/internal/models"
	"github.com/shopyangu/backend/internal/services"
)

func TestShopService_Create(t *testing.T) {
	db := newTestDB(t)
	service := services.NewShopService(db)

	shop, err := service.Create(context.Background(), &services.CreateShopRequest{
		Name:        "  Mama Mboga  ",
		Description: "Fresh groceries",
		Logo:        "https://cdn.example.com/mama.png",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, shop.ID)
	assert.Equal(t, "Mama Mboga", shop.Name)
	assert.False(t, shop.CreatedAt.IsZero())
}

func TestShopService_CreateRejectsMissingFields(t *testing.T) {
	db := newTestDB(t)
	service := services.NewShopService(db)

	_, err := service.Create(context.Background(), &services.CreateShopRequest{
		Name: "No Logo",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.InvalidInput))

	// Whitespace-only name fails the same way.
	_, err = service.Create(context.Background(), &services.CreateShopRequest{
		Name:        "   ",
		Description: "desc",
		Logo:        "https://cdn.example.com/logo.png",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.InvalidInput))
}

func TestShopService_UpdateMergesAndRevalidates(t *testing.T) {
	db := newTestDB(t)
	service := services.NewShopService(db)
	shop := seedShop(t, db, "Before")

	updated, err := service.Update(context.Background(), shop.ID, &services.UpdateShopRequest{
		Name: strPtr("After"),
	})
	require.NoError(t, err)
	assert.Equal(t, "After", updated.Name)
	assert.Equal(t, shop.Description, updated.Description)

	// Clearing a required field on update is rejected like on create.
	_, err = service.Update(context.Background(), shop.ID, &services.UpdateShopRequest{
		Name: strPtr(""),
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.InvalidInput))

	_, err = service.Update(context.Background(), uuid.New(), &services.UpdateShopRequest{
		Name: strPtr("Ghost"),
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.NotFound))
}

func TestShopService_DeleteBlockedByActiveProducts(t *testing.T) {
	db := newTestDB(t)
	service := services.NewShopService(db)
	shop := seedShop(t, db, "Guarded")
	seedProduct(t, db, shop.ID, 5, 9.99)
	seedProduct(t, db, shop.ID, 0, 1.50)

	_, err := service.Delete(context.Background(), shop.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.Conflict))

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, int64(2), appErr.Details["productsCount"])

	// Nothing was written: shop and products are untouched.
	var shopCount, productCount int64
	db.Model(&models.Shop{}).Where("id = ?", shop.ID).Count(&shopCount)
	db.Model(&models.Product{}).Where("shop_id = ?", shop.ID).Count(&productCount)
	assert.Equal(t, int64(1), shopCount)
	assert.Equal(t, int64(2), productCount)
}

func TestShopService_DeleteEmptyShop(t *testing.T) {
	db := newTestDB(t)
	service := services.NewShopService(db)
	shop := seedShop(t, db, "Disposable")

	deleted, err := service.Delete(context.Background(), shop.ID)
	require.NoError(t, err)
	assert.Equal(t, shop.ID, deleted.ID)

	_, err = service.Get(context.Background(), shop.ID)
	assert.True(t, apperrors.IsKind(err, apperrors.NotFound))
}

func TestShopService_DeleteUnknownShop(t *testing.T) {
	db := newTestDB(t)
	service := services.NewShopService(db)

	_, err := service.Delete(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.NotFound))
}

func TestShopService_ReassignProducts(t *testing.T) {
	db := newTestDB(t)
	service := services.NewShopService(db)
	source := seedShop(t, db, "Closing Down")
	target := seedShop(t, db, "Taking Over")
	seedProduct(t, db, source.ID, 3, 5.0)
	seedProduct(t, db, source.ID, 7, 2.0)
	seedProduct(t, db, target.ID, 1, 1.0)

	moved, err := service.ReassignProducts(context.Background(), source.ID, target.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), moved)

	// No product references the source any more, the target absorbed exactly
	// the source's prior count, and the source shop is gone.
	var sourceCount, targetCount int64
	db.Model(&models.Product{}).Where("shop_id = ?", source.ID).Count(&sourceCount)
	db.Model(&models.Product{}).Where("shop_id = ?", target.ID).Count(&targetCount)
	assert.Equal(t, int64(0), sourceCount)
	assert.Equal(t, int64(3), targetCount)

	_, err = service.Get(context.Background(), source.ID)
	assert.True(t, apperrors.IsKind(err, apperrors.NotFound))
}

func TestShopService_ReassignProductsMissingTarget(t *testing.T) {
	db := newTestDB(t)
	service := services.NewShopService(db)
	source := seedShop(t, db, "Still Here")
	seedProduct(t, db, source.ID, 3, 5.0)

	_, err := service.ReassignProducts(context.Background(), source.ID, uuid.New())
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.NotFound))

	// Aborted before any write: product still on the source, shop still there.
	var count int64
	db.Model(&models.Product{}).Where("shop_id = ?", source.ID).Count(&count)
	assert.Equal(t, int64(1), count)

	_, err = service.Get(context.Background(), source.ID)
	assert.NoError(t, err)
}
