package models

import "time"

type User struct {
	ID        string    `gorm:"primaryKey" json:"id"` // auth provider user id
	Email     string    `gorm:"unique;not null" json:"email"`
	Name      string    `json:"name"`
	Addresses []Address `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"addresses,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
