package webhookControllers

import (
	"encoding/json"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	paymentControllers "github.com/pcstorehq/pcstore-api/controllers/payment"
	"github.com/pcstorehq/pcstore-api/models"
	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/webhook"
	"gorm.io/gorm"
)

// POST /api/webhooks/stripe
// Signed payment provider callback. On checkout.session.completed the
// purchase from the session metadata is confirmed through the same
// idempotent transition the client poll uses.
func StripeWebhook(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		const MaxBodyBytes = int64(65536)
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes)

		payload, err := c.GetRawData()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read body"})
			return
		}

		secret := os.Getenv("STRIPE_WEBHOOK_SECRET")
		var event stripe.Event

		if secret == "" {
			log.Println("⚠️ STRIPE_WEBHOOK_SECRET not set, skipping signature verification")
			if err := json.Unmarshal(payload, &event); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
				return
			}
		} else {
			event, err = webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), secret)
			if err != nil {
				log.Println("❌ Webhook verification failed:", err)
				c.JSON(http.StatusBadRequest, gin.H{"error": "Webhook verification failed"})
				return
			}
		}

		if event.Type != "checkout.session.completed" {
			c.JSON(http.StatusOK, gin.H{"received": true})
			return
		}

		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event payload"})
			return
		}

		purchaseID := session.Metadata["purchaseId"]
		if purchaseID == "" {
			log.Println("⚠️ No purchaseId in session metadata")
			c.JSON(http.StatusOK, gin.H{"received": true})
			return
		}

		if _, err := paymentControllers.ConfirmPurchase(db, purchaseID, models.PurchaseStatusSuccess); err != nil {
			log.Println("❌ Failed to confirm purchase from webhook:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process event"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"received": true})
	}
}
