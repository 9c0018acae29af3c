package routes

import (
	"github.com/gin-gonic/gin"
	webhookControllers "github.com/pcstorehq/pcstore-api/controllers/webhooks"
	"gorm.io/gorm"
)

// SetupWebhookRoutes registers the signed callbacks from the payment and
// auth providers. Signature verification happens inside the handlers.
func SetupWebhookRoutes(r *gin.Engine, db *gorm.DB) {
	webhooks := r.Group("/api/webhooks")
	{
		webhooks.POST("/stripe", webhookControllers.StripeWebhook(db))
		webhooks.POST("/clerk", webhookControllers.ClerkWebhook(db))
	}
}
