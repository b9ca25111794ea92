// internal/handlers/shop.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shopyangu/backend/internal/apperrors"
	"github.com/shopyangu/backend/internal/services"
	"github.com/shopyangu/backend/internal/utils"
)

type ShopHandler struct {
	shopService    *services.ShopService
	productService *services.ProductService
}

func NewShopHandler(shopService *services.ShopService, productService *services.ProductService) *ShopHandler {
	return &ShopHandler{
		shopService:    shopService,
		productService: productService,
	}
}

// GET /shops
func (h *ShopHandler) GetShops(c *gin.Context) {
	shops, err := h.shopService.List(c.Request.Context())
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.ListResponse(c, shops)
}

// POST /shops
func (h *ShopHandler) CreateShop(c *gin.Context) {
	var req services.CreateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, apperrors.New(apperrors.InvalidInput, "Invalid request body"))
		return
	}

	shop, err := h.shopService.Create(c.Request.Context(), &req)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": "Shop added successfully!",
		"shop":    shop,
	})
}

// PATCH /shops/:id
func (h *ShopHandler) UpdateShop(c *gin.Context) {
	id, err := shopID(c)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	var req services.UpdateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, apperrors.New(apperrors.InvalidInput, "Invalid request body"))
		return
	}

	shop, err := h.shopService.Update(c.Request.Context(), id, &req)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.OKResponse(c, gin.H{
		"message": "Shop updated successfully!",
		"shop":    shop,
	})
}

// DELETE /shops/:id
func (h *ShopHandler) DeleteShop(c *gin.Context) {
	id, err := shopID(c)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	shop, err := h.shopService.Delete(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.OKResponse(c, gin.H{
		"message": "Shop deleted successfully!",
		"shop":    shop,
	})
}

// GET /shops/:id/products
func (h *ShopHandler) GetShopProducts(c *gin.Context) {
	id, err := shopID(c)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	products, err := h.productService.ListByShop(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.ListResponse(c, products)
}

// POST /shops/:id/reassign-products
func (h *ShopHandler) ReassignProducts(c *gin.Context) {
	id, err := shopID(c)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	var req struct {
		NewShopID string `json:"newShopId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.NewShopID == "" {
		utils.ErrorResponse(c, apperrors.New(apperrors.InvalidInput, "Missing shop IDs"))
		return
	}

	targetID, err := uuid.Parse(req.NewShopID)
	if err != nil {
		utils.ErrorResponse(c, apperrors.New(apperrors.InvalidInput, "Invalid target shop ID"))
		return
	}

	if _, err := h.shopService.ReassignProducts(c.Request.Context(), id, targetID); err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.OKResponse(c, gin.H{
		"message": "Products reassigned and shop deleted successfully",
	})
}

func shopID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, apperrors.New(apperrors.InvalidInput, "Invalid shop ID")
	}
	return id, nil
}
