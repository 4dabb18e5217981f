package models

import (
	"time"

	"github.com/google/uuid"
)

// Store represents a tenant storefront owned by a single user.
type Store struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID         uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	StoreName      string    `gorm:"column:store_name;not null"`
	StoreType      string    `gorm:"column:store_type;not null"`
	EmailID        string    `gorm:"column:email_id;not null;uniqueIndex"`
	ManagerEmailID *string   `gorm:"column:manager_email_id"`
	Address        string    `gorm:"column:address;not null"`
	City           string    `gorm:"column:city;not null"`
	State          string    `gorm:"column:state;not null"`
	Pincode        string    `gorm:"column:pincode;not null"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
