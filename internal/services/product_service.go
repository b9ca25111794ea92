// internal/services/product_service.go
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

type ProductService struct {
	db *gorm.DB
}

type CreateProductRequest struct {
	ShopID      string   `json:"shop_id" validate:"required,uuid"`
	Name        string   `json:"name" validate:"required"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	StockLevel  *int     `json:"stock_level" validate:"required,gte=0"`
	Description string   `json:"description" validate:"required,min=10"`
	Images      []string `json:"images" validate:"required,min=1,max=20,dive,required,url"`
	Thumbnail   string   `json:"thumbnail" validate:"required,url"`
}

type UpdateProductRequest struct {
	ShopID      *string  `json:"shop_id,omitempty"`
	Name        *string  `json:"name,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	StockLevel  *int     `json:"stock_level,omitempty"`
	Description *string  `json:"description,omitempty"`
	Images      []string `json:"images,omitempty"`
	Thumbnail   *string  `json:"thumbnail,omitempty"`
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

func (r *CreateProductRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
}

// validate checks field rules plus the cross-field constraint that the
// thumbnail is one of the images.
func (r *CreateProductRequest) validate() error {
	if err := utils.ValidateStruct(r); err != nil {
		return invalidInput(err)
	}

	for _, img := range r.Images {
		if img == r.Thumbnail {
			return nil
		}
	}
	return apperrors.New(apperrors.InvalidInput, "thumbnail must be one of images")
}

func (s *ProductService) Create(ctx context.Context, req *CreateProductRequest) (*models.Product, error) {
	var product *models.Product
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		product, err = s.create(tx, req)
		return err
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// CreateBatch persists several products atomically: one invalid entry aborts
// the whole batch.
func (s *ProductService) CreateBatch(ctx context.Context, reqs []CreateProductRequest) ([]models.Product, error) {
	if len(reqs) == 0 {
		return nil, apperrors.New(apperrors.InvalidInput, "product batch is empty")
	}

	products := make([]models.Product, 0, len(reqs))
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range reqs {
			product, err := s.create(tx, &reqs[i])
			if err != nil {
				return err
			}
			products = append(products, *product)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (s *ProductService) create(tx *gorm.DB, req *CreateProductRequest) (*models.Product, error) {
	req.normalize()
	if err := req.validate(); err != nil {
		return nil, err
	}

	shopID, err := uuid.Parse(req.ShopID)
	if err != nil {
		return nil, apperrors.New(apperrors.InvalidInput, "shop_id must be a valid id")
	}

	var shop models.Shop
	if err := tx.First(&shop, "id = ?", shopID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.InvalidInput, "shop_id does not reference an existing shop")
		}
		return nil, storeError("failed to load shop", err)
	}

	product := &models.Product{
		ShopID:      shopID,
		Name:        req.Name,
		Price:       *req.Price,
		StockLevel:  *req.StockLevel,
		Description: req.Description,
		Images:      req.Images,
		Thumbnail:   req.Thumbnail,
	}

	if err := tx.Create(product).Error; err != nil {
		return nil, storeError("failed to create product", err)
	}

	return product, nil
}

// List returns every product denormalized with its owning shop. Products whose
// shop no longer exists are returned with a nil shop rather than dropped.
func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	products := []models.Product{}
	if err := s.db.WithContext(ctx).Preload("Shop").Order("created_at").Find(&products).Error; err != nil {
		return nil, storeError("failed to list products", err)
	}
	return products, nil
}

func (s *ProductService) ListByShop(ctx context.Context, shopID uuid.UUID) ([]models.Product, error) {
	products := []models.Product{}
	if err := s.db.WithContext(ctx).Preload("Shop").
		Where("shop_id = ?", shopID).
		Order("created_at").
		Find(&products).Error; err != nil {
		return nil, storeError("failed to list shop products", err)
	}
	return products, nil
}

func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.NotFound, "Product not found")
		}
		return nil, storeError("failed to load product", err)
	}
	return &product, nil
}

// Update applies a partial payload, then re-validates the merged result with
// the same rules as Create before writing it back.
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req *UpdateProductRequest) (*models.Product, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ShopID != nil {
		shopID, err := uuid.Parse(*req.ShopID)
		if err != nil {
			return nil, apperrors.New(apperrors.InvalidInput, "shop_id must be a valid id")
		}
		var shop models.Shop
		if err := s.db.WithContext(ctx).First(&shop, "id = ?", shopID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.New(apperrors.InvalidInput, "shop_id does not reference an existing shop")
			}
			return nil, storeError("failed to load shop", err)
		}
		product.ShopID = shopID
	}
	if req.Name != nil {
		product.Name = strings.TrimSpace(*req.Name)
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.StockLevel != nil {
		product.StockLevel = *req.StockLevel
	}
	if req.Description != nil {
		product.Description = strings.TrimSpace(*req.Description)
	}
	if req.Images != nil {
		product.Images = req.Images
	}
	if req.Thumbnail != nil {
		product.Thumbnail = *req.Thumbnail
	}

	price := product.Price
	stockLevel := product.StockLevel
	merged := &CreateProductRequest{
		ShopID:      product.ShopID.String(),
		Name:        product.Name,
		Price:       &price,
		StockLevel:  &stockLevel,
		Description: product.Description,
		Images:      product.Images,
		Thumbnail:   product.Thumbnail,
	}
	if err := merged.validate(); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Save(product).Error; err != nil {
		return nil, storeError("failed to update product", err)
	}

	return product, nil
}

// Delete is unconditional and returns the removed record.
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id).Error; err != nil {
		return nil, storeError("failed to delete product", err)
	}

	return product, nil
}
