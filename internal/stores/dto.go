package stores

import (
	"time"

	"github.com/google/uuid"

	"github.com/simplishare/simplishare-server/pkg/db/models"
)

// StoreDTO exposes store data in API responses.
type StoreDTO struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"user_id"`
	StoreName      string    `json:"store_name"`
	StoreType      string    `json:"store_type"`
	EmailID        string    `json:"email_id"`
	ManagerEmailID *string   `json:"manager_email_id,omitempty"`
	Address        string    `json:"address"`
	City           string    `json:"city"`
	State          string    `json:"state"`
	Pincode        string    `json:"pincode"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CreateStoreDTO holds creation-time data for a new store. The owner comes
// from the authenticated request, never from the payload.
type CreateStoreDTO struct {
	UserID         uuid.UUID
	StoreName      string
	StoreType      string
	EmailID        string
	ManagerEmailID *string
	Address        string
	City           string
	State          string
	Pincode        string
}

// UpdateStoreInput captures the allowed store fields for mutation. Nil
// fields are left untouched.
type UpdateStoreInput struct {
	StoreName      *string
	StoreType      *string
	EmailID        *string
	ManagerEmailID *string
	Address        *string
	City           *string
	State          *string
	Pincode        *string
}

// HasChanges reports whether at least one field is present.
func (u UpdateStoreInput) HasChanges() bool {
	return u.StoreName != nil || u.StoreType != nil || u.EmailID != nil ||
		u.ManagerEmailID != nil || u.Address != nil || u.City != nil ||
		u.State != nil || u.Pincode != nil
}

// FromModel maps the persisted store into a DTO.
func FromModel(m *models.Store) *StoreDTO {
	if m == nil {
		return nil
	}

	dto := &StoreDTO{
		ID:        m.ID,
		UserID:    m.UserID,
		StoreName: m.StoreName,
		StoreType: m.StoreType,
		EmailID:   m.EmailID,
		Address:   m.Address,
		City:      m.City,
		State:     m.State,
		Pincode:   m.Pincode,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}

	if m.ManagerEmailID != nil {
		cpy := *m.ManagerEmailID
		dto.ManagerEmailID = &cpy
	}

	return dto
}

// ToModel prepares the GORM model from the creation DTO.
func (c CreateStoreDTO) ToModel() *models.Store {
	model := &models.Store{
		UserID:    c.UserID,
		StoreName: c.StoreName,
		StoreType: c.StoreType,
		EmailID:   c.EmailID,
		Address:   c.Address,
		City:      c.City,
		State:     c.State,
		Pincode:   c.Pincode,
	}

	if c.ManagerEmailID != nil {
		cpy := *c.ManagerEmailID
		model.ManagerEmailID = &cpy
	}

	return model
}
