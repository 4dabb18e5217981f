package offers

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/simplishare/simplishare-server/pkg/db/models"
	pkgerrors "github.com/simplishare/simplishare-server/pkg/errors"
	"github.com/simplishare/simplishare-server/pkg/logger"
)

// MaxImages caps the number of images attached to a single offer.
const MaxImages = 5

type offerRepository interface {
	Create(ctx context.Context, offer *models.Offer) error
	StoreOwnedBy(ctx context.Context, storeID, ownerID uuid.UUID) (bool, error)
	FindByIDForOwner(ctx context.Context, id, ownerID uuid.UUID) (*models.Offer, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Offer, error)
	Update(ctx context.Context, offer *models.Offer) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type blobStore interface {
	Upload(ctx context.Context, body io.Reader, filename, contentType string) (string, error)
	Delete(ctx context.Context, key string)
}

// Service exposes offer operations scoped to the owning user.
type Service interface {
	Create(ctx context.Context, ownerID uuid.UUID, dto CreateOfferDTO, images []ImageFile) (*OfferDTO, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]OfferDTO, error)
	Update(ctx context.Context, ownerID, offerID uuid.UUID, input UpdateOfferInput, images []ImageFile) (*OfferDTO, error)
	Delete(ctx context.Context, ownerID, offerID uuid.UUID) error
}

type service struct {
	repo  offerRepository
	blobs blobStore
	logg  *logger.Logger
}

// NewService builds an offer service with the provided dependencies.
func NewService(repo offerRepository, blobs blobStore, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("offer repository required")
	}
	if blobs == nil {
		return nil, fmt.Errorf("blob store required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, blobs: blobs, logg: logg}, nil
}

func (s *service) Create(ctx context.Context, ownerID uuid.UUID, dto CreateOfferDTO, images []ImageFile) (*OfferDTO, error) {
	if len(images) > MaxImages {
		return nil, tooManyImages()
	}

	owned, err := s.repo.StoreOwnedBy(ctx, dto.StoreID, ownerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check store ownership")
	}
	if !owned {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found").
			WithAppCode(pkgerrors.AppStoreNotFound)
	}

	keys, err := s.uploadImages(ctx, images)
	if err != nil {
		return nil, err
	}

	offer := dto.ToModel()
	offer.OfferImages = pq.StringArray(keys)

	if err := s.repo.Create(ctx, offer); err != nil {
		s.deleteBlobs(ctx, keys)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create offer")
	}
	return FromModel(offer), nil
}

func (s *service) List(ctx context.Context, ownerID uuid.UUID) ([]OfferDTO, error) {
	rows, err := s.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list offers")
	}

	result := make([]OfferDTO, 0, len(rows))
	for i := range rows {
		result = append(result, *FromModel(&rows[i]))
	}
	return result, nil
}

func (s *service) Update(ctx context.Context, ownerID, offerID uuid.UUID, input UpdateOfferInput, images []ImageFile) (*OfferDTO, error) {
	if len(images) > MaxImages {
		return nil, tooManyImages()
	}
	if !input.HasChanges() && len(images) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one field required")
	}

	offer, err := s.repo.FindByIDForOwner(ctx, offerID, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, offerNotFound()
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load offer")
	}

	applyUpdate(offer, input)

	// new images fully replace the old set; old blobs go away only after
	// the row is saved
	var oldKeys []string
	if len(images) > 0 {
		newKeys, err := s.uploadImages(ctx, images)
		if err != nil {
			return nil, err
		}
		oldKeys = append(oldKeys, offer.OfferImages...)
		offer.OfferImages = pq.StringArray(newKeys)
	}

	if err := s.repo.Update(ctx, offer); err != nil {
		if len(images) > 0 {
			s.deleteBlobs(ctx, offer.OfferImages)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update offer")
	}

	s.deleteBlobs(ctx, oldKeys)
	return FromModel(offer), nil
}

func (s *service) Delete(ctx context.Context, ownerID, offerID uuid.UUID) error {
	offer, err := s.repo.FindByIDForOwner(ctx, offerID, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return offerNotFound()
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load offer")
	}

	if err := s.repo.Delete(ctx, offer.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return offerNotFound()
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete offer")
	}

	s.deleteBlobs(ctx, offer.OfferImages)
	return nil
}

func (s *service) uploadImages(ctx context.Context, images []ImageFile) ([]string, error) {
	keys := make([]string, 0, len(images))
	for _, img := range images {
		key, err := s.blobs.Upload(ctx, img.Reader, img.Filename, img.ContentType)
		if err != nil {
			s.deleteBlobs(ctx, keys)
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upload offer image")
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func (s *service) deleteBlobs(ctx context.Context, keys []string) {
	for _, key := range keys {
		s.blobs.Delete(ctx, key)
	}
}

func applyUpdate(offer *models.Offer, input UpdateOfferInput) {
	if input.Location != nil {
		offer.Location = *input.Location
	}
	if input.OfferType != nil {
		offer.OfferType = *input.OfferType
	}
	if input.OfferTitle != nil {
		offer.OfferTitle = *input.OfferTitle
	}
	if input.OfferDescription != nil {
		offer.OfferDescription = *input.OfferDescription
	}
	if input.StartDate != nil {
		offer.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		offer.EndDate = *input.EndDate
	}
	if input.DiscountPercentage != nil {
		offer.DiscountPercentage = cloneFloatPtr(input.DiscountPercentage)
	}
	if input.MinSpendAmount != nil {
		offer.MinSpendAmount = cloneFloatPtr(input.MinSpendAmount)
	}
	if input.CouponCode != nil {
		offer.CouponCode = cloneStringPtr(input.CouponCode)
	}
	if input.SelectOfferStatus != nil {
		offer.SelectOfferStatus = *input.SelectOfferStatus
	}
	if input.OfferStatus != nil {
		offer.OfferStatus = *input.OfferStatus
	}
	if input.ApplicableProducts != nil {
		offer.ApplicableProducts = cloneStringPtr(input.ApplicableProducts)
	}
	if input.Audience != nil {
		offer.Audience = *input.Audience
	}
}

func tooManyImages() *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodeValidation,
		fmt.Sprintf("a maximum of %d images is allowed", MaxImages))
}

func offerNotFound() *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodeNotFound, "offer not found").
		WithAppCode(pkgerrors.AppOfferNotFound)
}
