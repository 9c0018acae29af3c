package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry-point that wires up the storefront API,
// admin, and webhook route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	// Storefront API (public + session-protected)
	SetupAPIRoutes(r, db)

	// Admin routes (API-key-protected)
	SetupAdminRoutes(r, db)

	// Signed provider callbacks
	SetupWebhookRoutes(r, db)
}
