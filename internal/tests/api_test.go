// internal/tests/api_test.go
package tests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shopyangu/backend/internal/config"
	"github.com/shopyangu/backend/internal/models"
	"github.com/shopyangu/backend/internal/router"
)

type APITestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
}

func (s *APITestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	s.Require().NoError(err)
	s.Require().NoError(db.AutoMigrate(&models.Shop{}, &models.Product{}))

	cfg := &config.Config{
		Environment: "test",
		Server:      config.ServerConfig{Host: "localhost", Port: "8080"},
	}

	s.db = db
	s.router = router.Initialize(db, cfg)
}

func (s *APITestSuite) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewBuffer(data)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *APITestSuite) decode(w *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func (s *APITestSuite) decodeList(w *httptest.ResponseRecorder) []map[string]interface{} {
	var body []map[string]interface{}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func (s *APITestSuite) createShop(name string) string {
	w := s.do(http.MethodPost, "/shops", map[string]interface{}{
		"name":        name,
		"description": "created by the API suite",
		"logo":        "https://cdn.example.com/logo.png",
	})
	s.Require().Equal(http.StatusCreated, w.Code)

	shop := s.decode(w)["shop"].(map[string]interface{})
	return shop["id"].(string)
}

func (s *APITestSuite) productPayload(shopID string, stock int) map[string]interface{} {
	return map[string]interface{}{
		"shop_id":     shopID,
		"name":        "Suite Product",
		"price":       19.90,
		"stock_level": stock,
		"description": "a product created by the API suite",
		"images":      []string{"https://cdn.example.com/p.png"},
		"thumbnail":   "https://cdn.example.com/p.png",
	}
}

func (s *APITestSuite) createProduct(shopID string, stock int) string {
	w := s.do(http.MethodPost, "/products", s.productPayload(shopID, stock))
	s.Require().Equal(http.StatusCreated, w.Code)

	product := s.decode(w)["product"].(map[string]interface{})
	return product["id"].(string)
}

func (s *APITestSuite) TestHealth() {
	w := s.do(http.MethodGet, "/health", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Equal("healthy", s.decode(w)["status"])
}

func (s *APITestSuite) TestShopLifecycle() {
	id := s.createShop("Lifecycle Shop")

	w := s.do(http.MethodGet, "/shops", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Len(s.decodeList(w), 1)

	w = s.do(http.MethodPatch, "/shops/"+id, map[string]interface{}{"name": "Renamed Shop"})
	s.Equal(http.StatusOK, w.Code)
	body := s.decode(w)
	s.Equal("Shop updated successfully!", body["message"])
	s.Equal("Renamed Shop", body["shop"].(map[string]interface{})["name"])

	w = s.do(http.MethodDelete, "/shops/"+id, nil)
	s.Equal(http.StatusOK, w.Code)
	s.Equal("Shop deleted successfully!", s.decode(w)["message"])
}

func (s *APITestSuite) TestShopDeleteGuard() {
	id := s.createShop("Guarded Shop")
	s.createProduct(id, 5)

	w := s.do(http.MethodDelete, "/shops/"+id, nil)
	s.Equal(http.StatusBadRequest, w.Code)
	body := s.decode(w)
	s.Equal("Cannot delete shop with active products", body["message"])
	s.Equal(float64(1), body["productsCount"])

	// The shop survived.
	w = s.do(http.MethodGet, "/shops", nil)
	s.Len(s.decodeList(w), 1)
}

func (s *APITestSuite) TestReassignProducts() {
	source := s.createShop("Source Shop")
	target := s.createShop("Target Shop")
	s.createProduct(source, 3)
	s.createProduct(source, 7)

	w := s.do(http.MethodPost, "/shops/"+source+"/reassign-products",
		map[string]interface{}{"newShopId": target})
	s.Equal(http.StatusOK, w.Code)
	s.Equal("Products reassigned and shop deleted successfully", s.decode(w)["message"])

	w = s.do(http.MethodGet, "/shops/"+target+"/products", nil)
	s.Len(s.decodeList(w), 2)

	w = s.do(http.MethodGet, "/shops", nil)
	shops := s.decodeList(w)
	s.Len(shops, 1)
	s.Equal("Target Shop", shops[0]["name"])
}

func (s *APITestSuite) TestReassignProductsUnknownTarget() {
	source := s.createShop("Lonely Shop")
	s.createProduct(source, 3)

	w := s.do(http.MethodPost, "/shops/"+source+"/reassign-products",
		map[string]interface{}{"newShopId": uuid.NewString()})
	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("One or both shops not found", s.decode(w)["message"])

	w = s.do(http.MethodGet, "/shops/"+source+"/products", nil)
	s.Len(s.decodeList(w), 1)
}

func (s *APITestSuite) TestProductValidation() {
	shopID := s.createShop("Validation Shop")

	payload := s.productPayload(shopID, 5)
	payload["thumbnail"] = "https://cdn.example.com/elsewhere.png"

	w := s.do(http.MethodPost, "/products", payload)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("thumbnail must be one of images", s.decode(w)["message"])
}

func (s *APITestSuite) TestProductBatchCreate() {
	shopID := s.createShop("Batch Shop")

	w := s.do(http.MethodPost, "/products", []map[string]interface{}{
		s.productPayload(shopID, 2),
		s.productPayload(shopID, 8),
	})
	s.Equal(http.StatusCreated, w.Code)
	body := s.decode(w)
	s.Equal("Products added successfully!", body["message"])
	s.Len(body["products"].([]interface{}), 2)
}

func (s *APITestSuite) TestProductUpdateErrors() {
	w := s.do(http.MethodPatch, "/products/"+uuid.NewString(),
		map[string]interface{}{"stock_level": 1})
	s.Equal(http.StatusNotFound, w.Code)

	w = s.do(http.MethodPatch, "/products/not-a-uuid",
		map[string]interface{}{"stock_level": 1})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *APITestSuite) TestMetrics() {
	shopID := s.createShop("Metrics Shop")
	for _, stock := range []int{10, 0, 3} {
		s.createProduct(shopID, stock)
	}

	w := s.do(http.MethodGet, "/metrics", nil)
	s.Equal(http.StatusOK, w.Code)
	body := s.decode(w)

	current := body["current"].(map[string]interface{})
	s.Equal(float64(1), current["totalShops"])
	s.Equal(float64(3), current["totalProducts"])
	s.Equal(float64(13), current["totalStock"])

	var bucketTotal float64
	for _, raw := range body["stockDistribution"].([]interface{}) {
		bucket := raw.(map[string]interface{})
		s.Contains([]string{"In Stock", "Low Stock", "Out of Stock"}, bucket["status"])
		bucketTotal += bucket["count"].(float64)
	}
	s.Equal(float64(3), bucketTotal)

	topShops := body["topShops"].([]interface{})
	s.Require().Len(topShops, 1)
	s.Equal("Metrics Shop", topShops[0].(map[string]interface{})["shopName"])
}

func (s *APITestSuite) upload(filename string, content []byte) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fw, err := w.CreateFormFile("file", filename)
	s.Require().NoError(err)
	_, err = fw.Write(content)
	s.Require().NoError(err)
	s.Require().NoError(w.WriteField("folder", "shops"))
	s.Require().NoError(w.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *APITestSuite) TestUpload() {
	png := append([]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, bytes.Repeat([]byte{0x00}, 64)...)

	w := s.upload("logo.png", png)
	s.Equal(http.StatusOK, w.Code)
	body := s.decode(w)
	s.Equal("success", body["message"])
	s.Contains(body["imgUrl"], "/uploads/shops/")

	// Disallowed extension
	w = s.upload("logo.gif", png)
	s.Equal(http.StatusBadRequest, w.Code)

	// Right extension, wrong content
	w = s.upload("logo.png", []byte("definitely not an image"))
	s.Equal(http.StatusBadRequest, w.Code)
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}
