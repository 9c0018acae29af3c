package addressControllers

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

const testUserID = "user_test_1"

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Address{}))
	return db
}

func setupRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", testUserID)
		c.Next()
	})
	r.GET("/api/address", GetAddress(db))
	r.GET("/api/addresses", ListAddresses(db))
	r.POST("/api/address", CreateAddress(db))
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

func TestCreateAndFetchAddress(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)

	w := doJSON(r, http.MethodPost, "/api/address", gin.H{
		"street": "123 Main St",
		"city":   "New York",
		"state":  "NY",
		"zip":    "10001",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created models.Address
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, testUserID, created.UserID)
	require.NotEmpty(t, created.ID)

	w = doJSON(r, http.MethodGet, "/api/address?addressId="+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got models.Address
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "123 Main St", got.Street)
}

func TestCreateAddressMissingFields(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)

	w := doJSON(r, http.MethodPost, "/api/address", gin.H{"street": "123 Main St"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetAddressErrors(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)

	w := doJSON(r, http.MethodGet, "/api/address", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodGet, "/api/address?addressId=missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListAddressesOnlyMine(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)

	mine := models.Address{UserID: testUserID, Street: "123 Main St", City: "New York", State: "NY", Zip: "10001"}
	require.NoError(t, db.Create(&mine).Error)
	other := models.Address{UserID: "user_test_2", Street: "9 Elsewhere Rd", City: "Boston", State: "MA", Zip: "02101"}
	require.NoError(t, db.Create(&other).Error)

	w := doJSON(r, http.MethodGet, "/api/addresses", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got []models.Address
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, mine.ID, got[0].ID)
}
