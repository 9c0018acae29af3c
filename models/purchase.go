package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PurchaseStatus string

const (
	PurchaseStatusPending PurchaseStatus = "pending" // created, awaiting payment outcome
	PurchaseStatusSuccess PurchaseStatus = "success" // payment confirmed, invoice exists
	PurchaseStatusFailed  PurchaseStatus = "failed"  // payment declined or abandoned
)

// Purchase is a frozen checkout record, distinct from the mutable cart.
// Total is computed once at creation and never recomputed.
type Purchase struct {
	ID        string         `gorm:"primaryKey" json:"id"`
	UserID    string         `gorm:"not null;index" json:"userId"`
	Total     float64        `gorm:"not null" json:"total"` // major units
	Status    PurchaseStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	AddressID string         `gorm:"not null" json:"addressId"`
	Address   Address        `gorm:"foreignKey:AddressID" json:"address"`
	Items     []PurchaseItem `gorm:"foreignKey:PurchaseID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time      `json:"createdAt"`
}

// PurchaseItem is a snapshot of one cart row at purchase time.
type PurchaseItem struct {
	ID         string  `gorm:"primaryKey" json:"id"`
	PurchaseID string  `gorm:"not null;index" json:"purchaseId"`
	ProductID  string  `gorm:"not null" json:"productId"`
	Product    Product `gorm:"foreignKey:ProductID" json:"product"`
	Quantity   int     `gorm:"not null" json:"quantity"`
}

func (p *Purchase) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

func (i *PurchaseItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
