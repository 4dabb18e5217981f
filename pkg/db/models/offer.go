package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Offer is a promotion attached to a store. Authorization resolves through
// the owning store at read time.
type Offer struct {
	ID                 uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	StoreID            uuid.UUID      `gorm:"column:store_id;type:uuid;not null;index"`
	Location           string         `gorm:"column:location;not null"`
	OfferType          string         `gorm:"column:offer_type;not null"`
	OfferTitle         string         `gorm:"column:offer_title;not null"`
	OfferDescription   string         `gorm:"column:offer_description;not null"`
	StartDate          time.Time      `gorm:"column:start_date;not null"`
	EndDate            time.Time      `gorm:"column:end_date;not null"`
	DiscountPercentage *float64       `gorm:"column:discount_percentage"`
	MinSpendAmount     *float64       `gorm:"column:min_spend_amount"`
	CouponCode         *string        `gorm:"column:coupon_code"`
	SelectOfferStatus  string         `gorm:"column:select_offer_status;not null"`
	OfferStatus        string         `gorm:"column:offer_status;not null"`
	ApplicableProducts *string        `gorm:"column:applicable_products"`
	Audience           string         `gorm:"column:audience;not null;default:'Public'"`
	OfferImages        pq.StringArray `gorm:"column:offer_images;type:text[]"`
	CreatedAt          time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
