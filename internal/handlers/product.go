// internal/handlers/product.go
package handlers

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shopyangu/backend/internal/apperrors"
	"github.com/shopyangu/backend/internal/services"
	"github.com/shopyangu/backend/internal/utils"
)

type ProductHandler struct {
	productService *services.ProductService
}

func NewProductHandler(productService *services.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// GET /products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	products, err := h.productService.List(c.Request.Context())
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.ListResponse(c, products)
}

// POST /products
//
// Accepts either a single product object or an array of products.
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		utils.ErrorResponse(c, apperrors.New(apperrors.InvalidInput, "Invalid request body"))
		return
	}

	trimmed := bytes.TrimLeft(body, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var reqs []services.CreateProductRequest
		if err := json.Unmarshal(body, &reqs); err != nil {
			utils.ErrorResponse(c, apperrors.New(apperrors.InvalidInput, "Invalid request body"))
			return
		}

		products, err := h.productService.CreateBatch(c.Request.Context(), reqs)
		if err != nil {
			utils.ErrorResponse(c, err)
			return
		}

		utils.CreatedResponse(c, gin.H{
			"message":  "Products added successfully!",
			"products": products,
		})
		return
	}

	var req services.CreateProductRequest
	if err := json.Unmarshal(body, &req); err != nil {
		utils.ErrorResponse(c, apperrors.New(apperrors.InvalidInput, "Invalid request body"))
		return
	}

	product, err := h.productService.Create(c.Request.Context(), &req)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": "Product added successfully!",
		"product": product,
	})
}

// PATCH /products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, err := productID(c)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	var req services.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, apperrors.New(apperrors.InvalidInput, "Invalid request body"))
		return
	}

	product, err := h.productService.Update(c.Request.Context(), id, &req)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.OKResponse(c, gin.H{
		"message": "Product updated successfully!",
		"product": product,
	})
}

// DELETE /products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, err := productID(c)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	product, err := h.productService.Delete(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.OKResponse(c, gin.H{
		"message": "Product deleted successfully!",
		"product": product,
	})
}

func productID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, apperrors.New(apperrors.InvalidInput, "Invalid product ID")
	}
	return id, nil
}
