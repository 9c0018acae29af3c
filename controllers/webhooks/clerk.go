package webhookControllers

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pcstorehq/pcstore-api/models"
	svix "github.com/svix/svix-webhooks/go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type clerkEvent struct {
	Type string `json:"type"`
	Data struct {
		ID             string `json:"id"`
		FirstName      string `json:"first_name"`
		LastName       string `json:"last_name"`
		EmailAddresses []struct {
			EmailAddress string `json:"email_address"`
		} `json:"email_addresses"`
	} `json:"data"`
}

// POST /api/webhooks/clerk
// Auth provider callback, svix-signed. user.created and user.updated upsert
// the local user row keyed by the provider's id.
func ClerkWebhook(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, err := c.GetRawData()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read body"})
			return
		}

		secret := os.Getenv("CLERK_WEBHOOK_SECRET")
		if secret == "" {
			log.Println("⚠️ CLERK_WEBHOOK_SECRET not set, skipping signature verification")
		} else {
			wh, err := svix.NewWebhook(secret)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Webhook secret invalid"})
				return
			}
			if err := wh.Verify(payload, c.Request.Header); err != nil {
				log.Println("❌ Webhook verification failed:", err)
				c.JSON(http.StatusBadRequest, gin.H{"error": "Webhook verification failed"})
				return
			}
		}

		var evt clerkEvent
		if err := json.Unmarshal(payload, &evt); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
			return
		}

		if evt.Type != "user.created" && evt.Type != "user.updated" {
			c.JSON(http.StatusOK, gin.H{"received": true})
			return
		}

		if evt.Data.ID == "" || len(evt.Data.EmailAddresses) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing user data"})
			return
		}

		user := models.User{
			ID:    evt.Data.ID,
			Email: evt.Data.EmailAddresses[0].EmailAddress,
			Name:  strings.TrimSpace(evt.Data.FirstName + " " + evt.Data.LastName),
		}
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"email", "name"}),
		}).Create(&user).Error; err != nil {
			log.Println("❌ Failed to upsert user:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upsert user"})
			return
		}

		log.Printf("👤 User %s upserted from %s", user.ID, evt.Type)
		c.JSON(http.StatusOK, gin.H{"received": true})
	}
}
