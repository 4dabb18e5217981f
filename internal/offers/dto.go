package offers

import (
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/simplishare/simplishare-server/pkg/db/models"
)

// OfferDTO exposes offer data in API responses.
type OfferDTO struct {
	ID                 uuid.UUID `json:"id"`
	StoreID            uuid.UUID `json:"store_id"`
	Location           string    `json:"location"`
	OfferType          string    `json:"offer_type"`
	OfferTitle         string    `json:"offer_title"`
	OfferDescription   string    `json:"offer_description"`
	StartDate          time.Time `json:"start_date"`
	EndDate            time.Time `json:"end_date"`
	DiscountPercentage *float64  `json:"discount_percentage,omitempty"`
	MinSpendAmount     *float64  `json:"min_spend_amount,omitempty"`
	CouponCode         *string   `json:"coupon_code,omitempty"`
	SelectOfferStatus  string    `json:"select_offer_status"`
	OfferStatus        string    `json:"offer_status"`
	ApplicableProducts *string   `json:"applicable_products,omitempty"`
	Audience           string    `json:"audience"`
	OfferImages        []string  `json:"offer_images"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// CreateOfferDTO holds creation-time data for a new offer.
type CreateOfferDTO struct {
	StoreID            uuid.UUID
	Location           string
	OfferType          string
	OfferTitle         string
	OfferDescription   string
	StartDate          time.Time
	EndDate            time.Time
	DiscountPercentage *float64
	MinSpendAmount     *float64
	CouponCode         *string
	SelectOfferStatus  string
	OfferStatus        string
	ApplicableProducts *string
	Audience           string
}

// UpdateOfferInput captures the allowed offer fields for mutation. Nil
// fields are left untouched.
type UpdateOfferInput struct {
	Location           *string
	OfferType          *string
	OfferTitle         *string
	OfferDescription   *string
	StartDate          *time.Time
	EndDate            *time.Time
	DiscountPercentage *float64
	MinSpendAmount     *float64
	CouponCode         *string
	SelectOfferStatus  *string
	OfferStatus        *string
	ApplicableProducts *string
	Audience           *string
}

// HasChanges reports whether at least one field is present.
func (u UpdateOfferInput) HasChanges() bool {
	return u.Location != nil || u.OfferType != nil || u.OfferTitle != nil ||
		u.OfferDescription != nil || u.StartDate != nil || u.EndDate != nil ||
		u.DiscountPercentage != nil || u.MinSpendAmount != nil ||
		u.CouponCode != nil || u.SelectOfferStatus != nil ||
		u.OfferStatus != nil || u.ApplicableProducts != nil || u.Audience != nil
}

// ImageFile is one multipart image destined for the blob store.
type ImageFile struct {
	Reader      io.Reader
	Filename    string
	ContentType string
}

// FromModel maps the persisted offer into a DTO.
func FromModel(m *models.Offer) *OfferDTO {
	if m == nil {
		return nil
	}

	images := make([]string, len(m.OfferImages))
	copy(images, m.OfferImages)

	return &OfferDTO{
		ID:                 m.ID,
		StoreID:            m.StoreID,
		Location:           m.Location,
		OfferType:          m.OfferType,
		OfferTitle:         m.OfferTitle,
		OfferDescription:   m.OfferDescription,
		StartDate:          m.StartDate,
		EndDate:            m.EndDate,
		DiscountPercentage: cloneFloatPtr(m.DiscountPercentage),
		MinSpendAmount:     cloneFloatPtr(m.MinSpendAmount),
		CouponCode:         cloneStringPtr(m.CouponCode),
		SelectOfferStatus:  m.SelectOfferStatus,
		OfferStatus:        m.OfferStatus,
		ApplicableProducts: cloneStringPtr(m.ApplicableProducts),
		Audience:           m.Audience,
		OfferImages:        images,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

// ToModel prepares the GORM model from the creation DTO.
func (c CreateOfferDTO) ToModel() *models.Offer {
	audience := c.Audience
	if audience == "" {
		audience = "Public"
	}

	return &models.Offer{
		StoreID:            c.StoreID,
		Location:           c.Location,
		OfferType:          c.OfferType,
		OfferTitle:         c.OfferTitle,
		OfferDescription:   c.OfferDescription,
		StartDate:          c.StartDate,
		EndDate:            c.EndDate,
		DiscountPercentage: cloneFloatPtr(c.DiscountPercentage),
		MinSpendAmount:     cloneFloatPtr(c.MinSpendAmount),
		CouponCode:         cloneStringPtr(c.CouponCode),
		SelectOfferStatus:  c.SelectOfferStatus,
		OfferStatus:        c.OfferStatus,
		ApplicableProducts: cloneStringPtr(c.ApplicableProducts),
		Audience:           audience,
		OfferImages:        pq.StringArray{},
	}
}

func cloneStringPtr(value *string) *string {
	if value == nil {
		return nil
	}
	cpy := *value
	return &cpy
}

func cloneFloatPtr(value *float64) *float64 {
	if value == nil {
		return nil
	}
	cpy := *value
	return &cpy
}
