package offers

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/simplishare/simplishare-server/pkg/db/models"
)

// Repository handles offer persistence. Ownership always resolves through
// the owning store's user_id.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to offer operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new offer row.
func (r *Repository) Create(ctx context.Context, offer *models.Offer) error {
	if offer == nil {
		return fmt.Errorf("offer is required")
	}
	if offer.ID == uuid.Nil {
		offer.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(offer).Error
}

// StoreOwnedBy reports whether the store exists and belongs to the owner.
func (r *Repository) StoreOwnedBy(ctx context.Context, storeID, ownerID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Store{}).
		Where("id = ? AND user_id = ?", storeID, ownerID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindByIDForOwner loads an offer only when its store belongs to the owner.
// An offer on someone else's store is indistinguishable from a missing one.
func (r *Repository) FindByIDForOwner(ctx context.Context, id, ownerID uuid.UUID) (*models.Offer, error) {
	var offer models.Offer
	if err := r.db.WithContext(ctx).
		Joins("JOIN stores ON stores.id = offers.store_id").
		Where("offers.id = ? AND stores.user_id = ?", id, ownerID).
		First(&offer).Error; err != nil {
		return nil, err
	}
	return &offer, nil
}

// FindByOwner returns offers across all of the owner's stores.
func (r *Repository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Offer, error) {
	var offers []models.Offer
	if err := r.db.WithContext(ctx).
		Joins("JOIN stores ON stores.id = offers.store_id").
		Where("stores.user_id = ?", ownerID).
		Order("offers.created_at DESC").
		Find(&offers).Error; err != nil {
		return nil, err
	}
	return offers, nil
}

// Update saves the provided offer.
func (r *Repository) Update(ctx context.Context, offer *models.Offer) error {
	if offer == nil {
		return fmt.Errorf("offer is required")
	}
	return r.db.WithContext(ctx).Save(offer).Error
}

// Delete removes the offer row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Offer{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
