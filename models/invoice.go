package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Invoice is the immutable proof-of-payment artifact. The unique index on
// PurchaseID is what guarantees at most one invoice per purchase even when
// the webhook and the client confirmation race.
type Invoice struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	PurchaseID string    `gorm:"uniqueIndex;not null" json:"purchaseId"`
	Details    string    `gorm:"not null" json:"details"` // JSON snapshot of total + item summary
	CreatedAt  time.Time `json:"createdAt"`
}

func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
