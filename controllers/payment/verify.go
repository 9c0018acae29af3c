package paymentControllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pcstorehq/pcstore-api/mailer"
	"github.com/pcstorehq/pcstore-api/models"
	"gorm.io/gorm"
)

// ConfirmResult tells the two confirmation adapters (client poll and payment
// provider webhook) what the single state-transition function did.
type ConfirmResult int

const (
	ConfirmApplied ConfirmResult = iota
	ConfirmAlreadyProcessed
	ConfirmPurchaseMissing
	ConfirmMarkedFailed
)

type VerifyPaymentInput struct {
	PurchaseID string   `json:"purchaseId" binding:"required"`
	Status     string   `json:"status" binding:"required"`
	Email      string   `json:"email" binding:"required"`
	Total      *float64 `json:"total" binding:"required"`
}

func mapPurchaseStatus(status string) (models.PurchaseStatus, error) {
	switch strings.ToLower(status) {
	case string(models.PurchaseStatusSuccess):
		return models.PurchaseStatusSuccess, nil
	case string(models.PurchaseStatusFailed):
		return models.PurchaseStatusFailed, nil
	default:
		return "", errors.New("invalid payment status")
	}
}

// ConfirmPurchase drives PENDING → SUCCESS/FAILED. Both the Stripe webhook
// and the client confirmation call land here, so it has to be idempotent:
// an existing invoice means the outcome was already applied and nothing
// happens again. On success it creates the single invoice, clears the
// buyer's cart, notifies the purchase feed and sends the receipt email.
// Cart-clear and email are side effects of confirmed payment only; a failed
// outcome records the status and leaves everything else alone.
func ConfirmPurchase(db *gorm.DB, purchaseID string, status models.PurchaseStatus) (ConfirmResult, error) {
	var purchase models.Purchase
	err := db.Preload("Items").Preload("Items.Product").First(&purchase, "id = ?", purchaseID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Stale or unknown id: acknowledge so the provider stops retrying.
			log.Printf("⚠️ Confirmation for unknown purchase %s ignored", purchaseID)
			return ConfirmPurchaseMissing, nil
		}
		return 0, err
	}

	var existing models.Invoice
	err = db.Where("purchase_id = ?", purchaseID).First(&existing).Error
	if err == nil {
		log.Printf("ℹ️ Purchase %s already processed, skipping", purchaseID)
		return ConfirmAlreadyProcessed, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	if err := db.Model(&models.Purchase{}).Where("id = ?", purchaseID).
		Update("status", status).Error; err != nil {
		return 0, err
	}

	if status != models.PurchaseStatusSuccess {
		log.Printf("💔 Purchase %s marked failed", purchaseID)
		return ConfirmMarkedFailed, nil
	}

	invoice := models.Invoice{
		PurchaseID: purchase.ID,
		Details:    invoiceDetails(purchase),
	}
	if err := db.Create(&invoice).Error; err != nil {
		// Two confirmations raced past the existence check; the unique index
		// on purchase_id caught the loser.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			log.Printf("ℹ️ Invoice for purchase %s already created by a concurrent confirmation", purchaseID)
			return ConfirmAlreadyProcessed, nil
		}
		return 0, err
	}

	if err := db.Where("user_id = ?", purchase.UserID).Delete(&models.CartItem{}).Error; err != nil {
		return 0, err
	}

	log.Printf("🧾 Purchase %s confirmed, invoice %s created", purchase.ID, invoice.ID)

	purchase.Status = models.PurchaseStatusSuccess
	broadcastConfirmedPurchase(purchase)

	// Receipt email is best effort, it must never fail the confirmation.
	var user models.User
	if err := db.First(&user, "id = ?", purchase.UserID).Error; err == nil {
		if err := mailer.SendReceipt(user.Email, user.Name, purchase, invoice.ID); err != nil {
			log.Printf("⚠️ Failed to send receipt for purchase %s: %v", purchase.ID, err)
		}
	}

	return ConfirmApplied, nil
}

func invoiceDetails(purchase models.Purchase) string {
	summaries := make([]string, 0, len(purchase.Items))
	for _, item := range purchase.Items {
		name := item.Product.Name
		if name == "" {
			name = item.ProductID
		}
		summaries = append(summaries, fmt.Sprintf("%s x%d", name, item.Quantity))
	}
	details, _ := json.Marshal(gin.H{
		"total": purchase.Total,
		"items": strings.Join(summaries, ", "),
	})
	return string(details)
}

// GET /api/verify-payment?purchaseId=
func VerifyPaymentStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		purchaseID := c.Query("purchaseId")
		if purchaseID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing purchaseId"})
			return
		}

		var purchase models.Purchase
		if err := db.First(&purchase, "id = ?", purchaseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Purchase not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch purchase"})
			return
		}

		var invoiceCount int64
		if err := db.Model(&models.Invoice{}).Where("purchase_id = ?", purchaseID).
			Count(&invoiceCount).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch invoice"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"isVerified": invoiceCount > 0 || purchase.Status == models.PurchaseStatusSuccess,
		})
	}
}

// POST /api/verify-payment
// Client-initiated confirmation after the hosted checkout returns. Thin
// adapter over ConfirmPurchase; the webhook is the other one.
func VerifyPayment(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input VerifyPaymentInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
			return
		}

		status, err := mapPurchaseStatus(input.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		result, err := ConfirmPurchase(db, input.PurchaseID, status)
		if err != nil {
			log.Println("❌ Verify payment error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		switch result {
		case ConfirmPurchaseMissing:
			c.JSON(http.StatusOK, gin.H{"message": "Purchase not found, ignored"})
		case ConfirmAlreadyProcessed:
			c.JSON(http.StatusOK, gin.H{"message": "Payment already processed"})
		case ConfirmMarkedFailed:
			c.JSON(http.StatusOK, gin.H{"message": "Payment failed"})
		default:
			c.JSON(http.StatusOK, gin.H{"message": "Payment verified successfully"})
		}
	}
}
