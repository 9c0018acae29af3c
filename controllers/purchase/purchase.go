package purchaseControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pcstorehq/pcstore-api/models"
	"gorm.io/gorm"
)

type CreatePurchaseInput struct {
	AddressID string `json:"addressId" binding:"required"`
	// Set for the buy-now path; empty means checkout of the whole cart.
	ProductID string `json:"productId"`
}

// POST /api/purchase
// Creates a pending Purchase with the total frozen at creation time. A
// missing or foreign address and an empty cart are soft failures: the client
// is told to go back to the cart instead of getting an error.
func CreatePurchase(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var input CreatePurchaseInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		// The address must belong to the buyer.
		var address models.Address
		if err := db.Where("id = ? AND user_id = ?", input.AddressID, userID).First(&address).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusOK, gin.H{"redirect": "/cart"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch address"})
			return
		}

		var total float64
		var items []models.PurchaseItem

		if input.ProductID != "" {
			// Buy-now: one product, quantity 1, cart untouched.
			var product models.Product
			if err := db.First(&product, "id = ?", input.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					c.JSON(http.StatusOK, gin.H{"redirect": "/cart"})
					return
				}
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
				return
			}
			total = product.Price
			items = []models.PurchaseItem{{ProductID: product.ID, Quantity: 1}}
		} else {
			var cartItems []models.CartItem
			if err := db.Preload("Product").Where("user_id = ?", userID).Find(&cartItems).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
				return
			}
			if len(cartItems) == 0 {
				c.JSON(http.StatusOK, gin.H{"redirect": "/cart"})
				return
			}
			for _, item := range cartItems {
				total += item.Product.Price * float64(item.Quantity)
				items = append(items, models.PurchaseItem{
					ProductID: item.ProductID,
					Quantity:  item.Quantity,
				})
			}
		}

		purchase := models.Purchase{
			UserID:    userID,
			Total:     total,
			Status:    models.PurchaseStatusPending,
			AddressID: address.ID,
			Items:     items,
		}
		if err := db.Create(&purchase).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create purchase"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"purchaseId": purchase.ID,
			"redirect":   "/payment?purchaseId=" + purchase.ID,
		})
	}
}

// GET /api/purchase?purchaseId=
func GetPurchase(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		purchaseID := c.Query("purchaseId")
		if purchaseID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing purchaseId"})
			return
		}

		var purchase models.Purchase
		if err := db.
			Preload("Items").
			Preload("Items.Product").
			Preload("Address").
			First(&purchase, "id = ?", purchaseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Purchase not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch purchase"})
			return
		}

		c.JSON(http.StatusOK, purchase)
	}
}
