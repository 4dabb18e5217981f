package stores

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/simplishare/simplishare-server/pkg/db"
	"github.com/simplishare/simplishare-server/pkg/db/models"
	pkgerrors "github.com/simplishare/simplishare-server/pkg/errors"
)

type storeRepository interface {
	Create(ctx context.Context, dto CreateStoreDTO) (*models.Store, error)
	FindByIDForOwner(ctx context.Context, id, ownerID uuid.UUID) (*models.Store, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Store, error)
	Update(ctx context.Context, store *models.Store) error
	DeleteForOwner(ctx context.Context, id, ownerID uuid.UUID) error
}

// Service exposes owner-scoped store operations.
type Service interface {
	Create(ctx context.Context, ownerID uuid.UUID, dto CreateStoreDTO) (*StoreDTO, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]StoreDTO, error)
	Update(ctx context.Context, ownerID, storeID uuid.UUID, input UpdateStoreInput) (*StoreDTO, error)
	Delete(ctx context.Context, ownerID, storeID uuid.UUID) error
}

type service struct {
	repo storeRepository
}

// NewService builds a store service with the provided repository.
func NewService(repo storeRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("store repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, ownerID uuid.UUID, dto CreateStoreDTO) (*StoreDTO, error) {
	dto.UserID = ownerID

	store, err := s.repo.Create(ctx, dto)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "store email already in use").
				WithAppCode(pkgerrors.AppDuplicateEntry)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create store")
	}
	return FromModel(store), nil
}

func (s *service) List(ctx context.Context, ownerID uuid.UUID) ([]StoreDTO, error) {
	rows, err := s.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list stores")
	}

	result := make([]StoreDTO, 0, len(rows))
	for i := range rows {
		result = append(result, *FromModel(&rows[i]))
	}
	return result, nil
}

func (s *service) Update(ctx context.Context, ownerID, storeID uuid.UUID, input UpdateStoreInput) (*StoreDTO, error) {
	if !input.HasChanges() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one field required")
	}

	store, err := s.repo.FindByIDForOwner(ctx, storeID, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storeNotFound()
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
	}

	if input.StoreName != nil {
		store.StoreName = *input.StoreName
	}
	if input.StoreType != nil {
		store.StoreType = *input.StoreType
	}
	if input.EmailID != nil {
		store.EmailID = *input.EmailID
	}
	if input.ManagerEmailID != nil {
		cpy := *input.ManagerEmailID
		store.ManagerEmailID = &cpy
	}
	if input.Address != nil {
		store.Address = *input.Address
	}
	if input.City != nil {
		store.City = *input.City
	}
	if input.State != nil {
		store.State = *input.State
	}
	if input.Pincode != nil {
		store.Pincode = *input.Pincode
	}

	if err := s.repo.Update(ctx, store); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "store email already in use").
				WithAppCode(pkgerrors.AppDuplicateEntry)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update store")
	}
	return FromModel(store), nil
}

func (s *service) Delete(ctx context.Context, ownerID, storeID uuid.UUID) error {
	if err := s.repo.DeleteForOwner(ctx, storeID, ownerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return storeNotFound()
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete store")
	}
	return nil
}

func storeNotFound() *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodeNotFound, "store not found").
		WithAppCode(pkgerrors.AppStoreNotFound)
}
