package cartControllers

import (
	"bytes"
	"encoding/json"
	"fmt"
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

const testUserID = "user_test_1"

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.CartItem{},
	))
	return db
}

func setupRouter(db *gorm.DB, authed bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if authed {
		r.Use(func(c *gin.Context) {
			c.Set("user_id", testUserID)
			c.Next()
		})
	}
	r.GET("/api/cart", GetCart(db))
	r.POST("/api/cart", AddCartItem(db))
	r.PATCH("/api/cart/:id", UpdateCartItem(db))
	r.PUT("/api/cart/:id", RemoveCartItem(db))
	return r
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64) models.Product {
	t.Helper()
	product := models.Product{Name: name, Price: price}
	require.NoError(t, db.Create(&product).Error)
	return product
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

func TestAddCartItemMergesSameProduct(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db, true)
	product := seedProduct(t, db, "Gaming PC", 1500)

	for _, q := range []int{1, 2, 3} {
		w := doJSON(r, http.MethodPost, "/api/cart", gin.H{"productId": product.ID, "quantity": q})
		require.Contains(t, []int{http.StatusOK, http.StatusCreated}, w.Code, w.Body.String())
	}

	var items []models.CartItem
	require.NoError(t, db.Where("user_id = ?", testUserID).Find(&items).Error)
	require.Len(t, items, 1)
	assert.Equal(t, 6, items[0].Quantity)
}

func TestAddCartItemUnknownProduct(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db, true)

	w := doJSON(r, http.MethodPost, "/api/cart", gin.H{"productId": "nope", "quantity": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetCartMergesDuplicateRows(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db, true)
	product := seedProduct(t, db, "Workstation PC", 2100)

	// Storage permits duplicate rows; the read path must collapse them.
	require.NoError(t, db.Create(&models.CartItem{UserID: testUserID, ProductID: product.ID, Quantity: 1}).Error)
	require.NoError(t, db.Create(&models.CartItem{UserID: testUserID, ProductID: product.ID, Quantity: 4}).Error)

	w := doJSON(r, http.MethodGet, "/api/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var items []models.CartItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestUpdateCartItemSetsQuantity(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db, true)
	product := seedProduct(t, db, "Gaming Laptop", 2400)

	item := models.CartItem{UserID: testUserID, ProductID: product.ID, Quantity: 1}
	require.NoError(t, db.Create(&item).Error)

	w := doJSON(r, http.MethodPatch, "/api/cart/"+item.ID, gin.H{"quantity": 7})
	require.Equal(t, http.StatusOK, w.Code)

	var got models.CartItem
	require.NoError(t, db.First(&got, "id = ?", item.ID).Error)
	assert.Equal(t, 7, got.Quantity)
}

func TestUpdateCartItemZeroQuantityRemoves(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db, true)
	product := seedProduct(t, db, "Gaming PC", 1500)

	for _, q := range []int{0, -3} {
		item := models.CartItem{UserID: testUserID, ProductID: product.ID, Quantity: 2}
		require.NoError(t, db.Create(&item).Error)

		w := doJSON(r, http.MethodPatch, fmt.Sprintf("/api/cart/%s", item.ID), gin.H{"quantity": q})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var count int64
		require.NoError(t, db.Model(&models.CartItem{}).Where("id = ?", item.ID).Count(&count).Error)
		assert.Zero(t, count)
	}
}

func TestUpdateCartItemNotFound(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db, true)

	w := doJSON(r, http.MethodPatch, "/api/cart/missing", gin.H{"quantity": 3})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRemoveCartItem(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db, true)
	product := seedProduct(t, db, "Gaming PC", 1500)

	item := models.CartItem{UserID: testUserID, ProductID: product.ID, Quantity: 2}
	require.NoError(t, db.Create(&item).Error)

	w := doJSON(r, http.MethodPut, "/api/cart/"+item.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPut, "/api/cart/"+item.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCartRequiresSession(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db, false)

	for _, call := range []struct{ method, path string }{
		{http.MethodGet, "/api/cart"},
		{http.MethodPost, "/api/cart"},
		{http.MethodPatch, "/api/cart/x"},
		{http.MethodPut, "/api/cart/x"},
	} {
		w := doJSON(r, call.method, call.path, gin.H{"productId": "x", "quantity": 1})
		assert.Equal(t, http.StatusUnauthorized, w.Code, call.method+" "+call.path)
	}
}
