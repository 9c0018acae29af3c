package productControllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/pcstorehq/pcstore-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}))
	return db
}

func setupRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/products", GetProducts(db))
	r.GET("/api/products/:id", GetProductByID(db))
	r.POST("/admin/products", CreateProduct(db))
	r.PUT("/admin/products/:id", UpdateProduct(db))
	r.DELETE("/admin/products/:id", DeleteProduct(db))
	return r
}

func doJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestProductCRUD(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)

	w := doJSON(r, http.MethodPost, "/admin/products", gin.H{
		"name":        "Gaming PC",
		"description": "High-performance gaming PC with RTX 3080",
		"price":       1500.0,
		"image":       "/images/gaming-pc.jpg",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)

	w = doJSON(r, http.MethodGet, "/api/products/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPut, "/admin/products/"+created.ID, gin.H{"price": 1400.0})
	require.Equal(t, http.StatusOK, w.Code)

	var got models.Product
	require.NoError(t, db.First(&got, "id = ?", created.ID).Error)
	assert.InDelta(t, 1400.0, got.Price, 0.001)
	assert.Equal(t, "Gaming PC", got.Name)

	w = doJSON(r, http.MethodDelete, "/admin/products/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodDelete, "/admin/products/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateProductValidation(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)

	w := doJSON(r, http.MethodPost, "/admin/products", gin.H{"name": "No price"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/admin/products", gin.H{"name": "Negative", "price": -5.0})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetProductsWithoutCache(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)

	for _, p := range []models.Product{
		{Name: "Gaming PC", Price: 1500},
		{Name: "Workstation PC", Price: 2100},
		{Name: "Gaming Laptop", Price: 2400},
	} {
		require.NoError(t, db.Create(&p).Error)
	}

	w := doJSON(r, http.MethodGet, "/api/products", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var products []models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
	assert.Len(t, products, 3)
}
