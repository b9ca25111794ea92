// internal/services/shop_service.go
package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopyangu/backend/internal/apperrors"
	"github.com/shopyangu/backend/internal/models"
	"github.com/shopyangu/backend/internal/utils"
)

type ShopService struct {
	db *gorm.DB
}

type CreateShopRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	Logo        string `json:"logo" validate:"required,url"`
}

type UpdateShopRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Logo        *string `json:"logo,omitempty"`
}

func NewShopService(db *gorm.DB) *ShopService {
	return &ShopService{db: db}
}

func (s *ShopService) Create(ctx context.Context, req *CreateShopRequest) (*models.Shop, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)

	if err := utils.ValidateStruct(req); err != nil {
		return nil, invalidInput(err)
	}

	shop := &models.Shop{
		Name:        req.Name,
		Description: req.Description,
		Logo:        req.Logo,
	}

	if err := s.db.WithContext(ctx).Create(shop).Error; err != nil {
		return nil, storeError("failed to create shop", err)
	}

	return shop, nil
}

func (s *ShopService) List(ctx context.Context) ([]models.Shop, error) {
	shops := []models.Shop{}
	if err := s.db.WithContext(ctx).Order("created_at").Find(&shops).Error; err != nil {
		return nil, storeError("failed to list shops", err)
	}
	return shops, nil
}

func (s *ShopService) Get(ctx context.Context, id uuid.UUID) (*models.Shop, error) {
	var shop models.Shop
	if err := s.db.WithContext(ctx).First(&shop, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.NotFound, "Shop not found")
		}
		return nil, storeError("failed to load shop", err)
	}
	return &shop, nil
}

// Update applies a partial payload and re-validates the merged result with the
// same rules as Create.
func (s *ShopService) Update(ctx context.Context, id uuid.UUID, req *UpdateShopRequest) (*models.Shop, error) {
	shop, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		shop.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		shop.Description = strings.TrimSpace(*req.Description)
	}
	if req.Logo != nil {
		shop.Logo = *req.Logo
	}

	merged := &CreateShopRequest{
		Name:        shop.Name,
		Description: shop.Description,
		Logo:        shop.Logo,
	}
	if err := utils.ValidateStruct(merged); err != nil {
		return nil, invalidInput(err)
	}

	if err := s.db.WithContext(ctx).Save(shop).Error; err != nil {
		return nil, storeError("failed to update shop", err)
	}

	return shop, nil
}

// Delete removes a shop only when no products reference it. A shop with active
// products is reported as a conflict with the product count; nothing is written.
func (s *ShopService) Delete(ctx context.Context, id uuid.UUID) (*models.Shop, error) {
	var productsCount int64
	if err := s.db.WithContext(ctx).Model(&models.Product{}).
		Where("shop_id = ?", id).
		Count(&productsCount).Error; err != nil {
		return nil, storeError("failed to count shop products", err)
	}

	if productsCount > 0 {
		return nil, apperrors.New(apperrors.Conflict, "Cannot delete shop with active products").
			WithDetails(map[string]interface{}{
				"action":        "Please remove or reassign all products before deleting this shop.",
				"productsCount": productsCount,
			})
	}

	shop, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Delete(&models.Shop{}, "id = ?", id).Error; err != nil {
		return nil, storeError("failed to delete shop", err)
	}

	return shop, nil
}

// ReassignProducts moves every product of the source shop to the target shop
// and then deletes the source. Both writes run in one transaction so a failure
// between them cannot leave the reassignment half applied.
func (s *ShopService) ReassignProducts(ctx context.Context, sourceID, targetID uuid.UUID) (int64, error) {
	var moved int64

	var shops []models.Shop
	if err := s.db.WithContext(ctx).Find(&shops, "id IN ?", []uuid.UUID{sourceID, targetID}).Error; err != nil {
		return 0, storeError("failed to load shops", err)
	}
	if len(shops) < 2 {
		return 0, apperrors.New(apperrors.NotFound, "One or both shops not found")
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Product{}).
			Where("shop_id = ?", sourceID).
			Update("shop_id", targetID)
		if result.Error != nil {
			return storeError("failed to reassign products", result.Error)
		}
		moved = result.RowsAffected

		if err := tx.Delete(&models.Shop{}, "id = ?", sourceID).Error; err != nil {
			return storeError("failed to delete source shop", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return moved, nil
}
