package routes

import (
	"github.com/gin-gonic/gin"
	addressControllers "github.com/pcstorehq/pcstore-api/controllers/address"
	cartControllers "github.com/pcstorehq/pcstore-api/controllers/cart"
	paymentControllers "github.com/pcstorehq/pcstore-api/controllers/payment"
	productControllers "github.com/pcstorehq/pcstore-api/controllers/product"
	purchaseControllers "github.com/pcstorehq/pcstore-api/controllers/purchase"
	userControllers "github.com/pcstorehq/pcstore-api/controllers/user"
	"github.com/pcstorehq/pcstore-api/middleware"
	"gorm.io/gorm"
)

// SetupAPIRoutes registers all "/api/*" storefront endpoints.
func SetupAPIRoutes(r *gin.Engine, db *gorm.DB) {
	api := r.Group("/api")
	{
		// ──────────────── Public ────────────────
		api.GET("/products", productControllers.GetProducts(db))           // GET /api/products
		api.GET("/products/:id", productControllers.GetProductByID(db))    // GET /api/products/:id
		api.GET("/address", addressControllers.GetAddress(db))             // GET /api/address?addressId=
		api.GET("/purchase", purchaseControllers.GetPurchase(db))          // GET /api/purchase?purchaseId=
		api.GET("/verify-payment", paymentControllers.VerifyPaymentStatus(db))
		api.POST("/verify-payment", paymentControllers.VerifyPayment(db))
		api.POST("/stripe/create-checkout-session", paymentControllers.CreateCheckoutSession(db))
		api.GET("/purchases/ws", paymentControllers.PurchaseFeedHandler)

		// ──────────────── Session required ────────────────
		authed := api.Group("")
		authed.Use(middleware.ValidateToken)
		{
			authed.GET("/user", userControllers.GetUser(db)) // GET /api/user

			authed.GET("/cart", cartControllers.GetCart(db))              // GET /api/cart
			authed.POST("/cart", cartControllers.AddCartItem(db))         // POST /api/cart
			authed.PATCH("/cart/:id", cartControllers.UpdateCartItem(db)) // PATCH /api/cart/:id
			authed.PUT("/cart/:id", cartControllers.RemoveCartItem(db))   // PUT /api/cart/:id (remove)

			authed.GET("/addresses", addressControllers.ListAddresses(db)) // GET /api/addresses
			authed.POST("/address", addressControllers.CreateAddress(db))  // POST /api/address

			authed.POST("/purchase", purchaseControllers.CreatePurchase(db)) // POST /api/purchase
		}
	}
}
