package addressControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pcstorehq/pcstore-api/models"
	"gorm.io/gorm"
)

type CreateAddressInput struct {
	Street string `json:"street" binding:"required"`
	City   string `json:"city" binding:"required"`
	State  string `json:"state" binding:"required"`
	Zip    string `json:"zip" binding:"required"`
}

// GET /api/address?addressId=
func GetAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		addressID := c.Query("addressId")
		if addressID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing addressId"})
			return
		}

		var address models.Address
		if err := db.First(&address, "id = ?", addressID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch address"})
			return
		}

		c.JSON(http.StatusOK, address)
	}
}

// GET /api/addresses
func ListAddresses(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var addresses []models.Address
		if err := db.Where("user_id = ?", userID).Order("created_at").Find(&addresses).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch addresses"})
			return
		}

		c.JSON(http.StatusOK, addresses)
	}
}

// POST /api/address
func CreateAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var input CreateAddressInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		address := models.Address{
			UserID: userID,
			Street: input.Street,
			City:   input.City,
			State:  input.State,
			Zip:    input.Zip,
		}
		if err := db.Create(&address).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create address"})
			return
		}

		c.JSON(http.StatusCreated, address)
	}
}
