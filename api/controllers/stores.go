package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/simplishare/simplishare-server/api/middleware"
	"github.com/simplishare/simplishare-server/api/responses"
	"github.com/simplishare/simplishare-server/api/validators"
	"github.com/simplishare/simplishare-server/internal/stores"
	pkgerrors "github.com/simplishare/simplishare-server/pkg/errors"
	"github.com/simplishare/simplishare-server/pkg/logger"
)

type storeCreateRequest struct {
	StoreName      string  `json:"store_name" validate:"required"`
	StoreType      string  `json:"store_type" validate:"required"`
	EmailID        string  `json:"email_id" validate:"required,email"`
	ManagerEmailID *string `json:"manager_email_id" validate:"required,email"`
	Address        string  `json:"address" validate:"required"`
	City           string  `json:"city" validate:"required"`
	State          string  `json:"state" validate:"required"`
	Pincode        string  `json:"pincode" validate:"required,len=6,numeric"`
}

func (r storeCreateRequest) toDTO() stores.CreateStoreDTO {
	return stores.CreateStoreDTO{
		StoreName:      r.StoreName,
		StoreType:      r.StoreType,
		EmailID:        r.EmailID,
		ManagerEmailID: r.ManagerEmailID,
		Address:        r.Address,
		City:           r.City,
		State:          r.State,
		Pincode:        r.Pincode,
	}
}

type storeUpdateRequest struct {
	StoreName      *string `json:"store_name,omitempty" validate:"omitempty,min=1"`
	StoreType      *string `json:"store_type,omitempty" validate:"omitempty,min=1"`
	EmailID        *string `json:"email_id,omitempty" validate:"omitempty,email"`
	ManagerEmailID *string `json:"manager_email_id,omitempty" validate:"omitempty,email"`
	Address        *string `json:"address,omitempty" validate:"omitempty,min=1"`
	City           *string `json:"city,omitempty" validate:"omitempty,min=1"`
	State          *string `json:"state,omitempty" validate:"omitempty,min=1"`
	Pincode        *string `json:"pincode,omitempty" validate:"omitempty,len=6,numeric"`
}

func (r storeUpdateRequest) toInput() stores.UpdateStoreInput {
	return stores.UpdateStoreInput{
		StoreName:      r.StoreName,
		StoreType:      r.StoreType,
		EmailID:        r.EmailID,
		ManagerEmailID: r.ManagerEmailID,
		Address:        r.Address,
		City:           r.City,
		State:          r.State,
		Pincode:        r.Pincode,
	}
}

// StoreCreate registers a new store owned by the authenticated user.
func StoreCreate(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store service unavailable"))
			return
		}

		ownerID := middleware.UserIDFromContext(r.Context())
		if ownerID == uuid.Nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		var payload storeCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store, err := svc.Create(r.Context(), ownerID, payload.toDTO())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(r.Context(), w, http.StatusCreated,
			"Store has been successfully added.", store)
	}
}

// StoreList returns every store owned by the caller.
func StoreList(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store service unavailable"))
			return
		}

		ownerID := middleware.UserIDFromContext(r.Context())
		if ownerID == uuid.Nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		list, err := svc.List(r.Context(), ownerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(r.Context(), w, "Stores fetched successfully.", list)
	}
}

// StoreUpdate applies a sparse merge to one of the caller's stores.
func StoreUpdate(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store service unavailable"))
			return
		}

		ownerID := middleware.UserIDFromContext(r.Context())
		if ownerID == uuid.Nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		storeID, err := uuid.Parse(chi.URLParam(r, "store_id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid store id"))
			return
		}

		var payload storeUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store, err := svc.Update(r.Context(), ownerID, storeID, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(r.Context(), w, "Store updated successfully.", store)
	}
}

// StoreDelete removes one of the caller's stores.
func StoreDelete(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store service unavailable"))
			return
		}

		ownerID := middleware.UserIDFromContext(r.Context())
		if ownerID == uuid.Nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		storeID, err := uuid.Parse(chi.URLParam(r, "store_id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid store id"))
			return
		}

		if err := svc.Delete(r.Context(), ownerID, storeID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(r.Context(), w, "Store deleted successfully.", nil)
	}
}
