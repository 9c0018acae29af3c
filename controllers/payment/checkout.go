package paymentControllers

import (
	"errors"
	"log"
	"math"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/pcstorehq/pcstore-api/models"
	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/checkout/session"
	"gorm.io/gorm"
)

type CreateCheckoutSessionInput struct {
	PurchaseID string `json:"purchaseId" binding:"required"`
	Email      string `json:"email"`
	// Minor units as computed by the client; informational only, the session
	// amount always comes from the stored purchase total.
	Amount int64 `json:"amount"`
}

// POST /api/stripe/create-checkout-session
// Hands the frozen purchase total to the hosted checkout. Purchase.Total is
// stored in major units; Stripe wants minor units, and this is the one place
// that converts (×100).
func CreateCheckoutSession(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreateCheckoutSessionInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var purchase models.Purchase
		if err := db.First(&purchase, "id = ?", input.PurchaseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Purchase not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch purchase"})
			return
		}

		amountCents := int64(math.Round(purchase.Total * 100))
		if input.Amount != 0 && input.Amount != amountCents {
			log.Printf("⚠️ Client amount %d differs from purchase total %d for %s, using stored total",
				input.Amount, amountCents, purchase.ID)
		}

		baseURL := os.Getenv("BASE_URL")
		if baseURL == "" {
			baseURL = "http://localhost:3000"
		}

		params := &stripe.CheckoutSessionParams{
			PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
			LineItems: []*stripe.CheckoutSessionLineItemParams{
				{
					PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
						Currency: stripe.String("usd"),
						ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
							Name: stripe.String("PC Device Purchase"),
						},
						UnitAmount: stripe.Int64(amountCents),
					},
					Quantity: stripe.Int64(1),
				},
			},
			Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
			SuccessURL: stripe.String(baseURL + "/payment/success?purchaseId=" + purchase.ID),
			CancelURL:  stripe.String(baseURL + "/cart"),
		}
		params.AddMetadata("purchaseId", purchase.ID)
		if input.Email != "" {
			params.CustomerEmail = stripe.String(input.Email)
		}

		s, err := session.New(params)
		if err != nil {
			log.Println("❌ Error creating Checkout Session:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Checkout Session"})
			return
		}

		log.Printf("💳 Checkout session %s created for purchase %s (%.2f$)", s.ID, purchase.ID, purchase.Total)

		c.JSON(http.StatusOK, gin.H{"sessionId": s.ID})
	}
}
