package controllers

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/simplishare/simplishare-server/api/middleware"
	"github.com/simplishare/simplishare-server/api/responses"
	"github.com/simplishare/simplishare-server/api/validators"
	"github.com/simplishare/simplishare-server/internal/offers"
	"github.com/simplishare/simplishare-server/pkg/config"
	pkgerrors "github.com/simplishare/simplishare-server/pkg/errors"
	"github.com/simplishare/simplishare-server/pkg/logger"
)

// offerImagesField is the multipart field carrying the image files.
const offerImagesField = "offer_images"

type offerCreateRequest struct {
	StoreID            string   `json:"store_id" validate:"required,uuid"`
	Location           string   `json:"location" validate:"required"`
	OfferType          string   `json:"offer_type" validate:"required,oneof='Day Offers' 'Offers By Value' BOGO"`
	OfferTitle         string   `json:"offer_title" validate:"required"`
	OfferDescription   string   `json:"offer_description" validate:"required"`
	StartDate          string   `json:"start_date" validate:"required"`
	EndDate            string   `json:"end_date" validate:"required"`
	DiscountPercentage *float64 `json:"discount_percentage" validate:"omitempty,gte=0,lte=100"`
	MinSpendAmount     *float64 `json:"min_spend_amount" validate:"omitempty,gte=0"`
	CouponCode         *string  `json:"coupon_code"`
	SelectOfferStatus  string   `json:"select_offer_status" validate:"required"`
	OfferStatus        string   `json:"offer_status" validate:"required"`
	ApplicableProducts string   `json:"applicable_products" validate:"required"`
	Audience           string   `json:"audience" validate:"omitempty,oneof=Public Private"`
}

type offerUpdateRequest struct {
	Location           *string  `json:"location" validate:"omitempty,min=1"`
	OfferType          *string  `json:"offer_type" validate:"omitempty,oneof='Day Offers' 'Offers By Value' BOGO"`
	OfferTitle         *string  `json:"offer_title" validate:"omitempty,min=1"`
	OfferDescription   *string  `json:"offer_description" validate:"omitempty,min=1"`
	StartDate          *string  `json:"start_date"`
	EndDate            *string  `json:"end_date"`
	DiscountPercentage *float64 `json:"discount_percentage" validate:"omitempty,gte=0,lte=100"`
	MinSpendAmount     *float64 `json:"min_spend_amount" validate:"omitempty,gte=0"`
	CouponCode         *string  `json:"coupon_code"`
	SelectOfferStatus  *string  `json:"select_offer_status" validate:"omitempty,min=1"`
	OfferStatus        *string  `json:"offer_status" validate:"omitempty,min=1"`
	ApplicableProducts *string  `json:"applicable_products" validate:"omitempty,min=1"`
	Audience           *string  `json:"audience" validate:"omitempty,oneof=Public Private"`
}

// OfferCreate accepts a multipart form describing the offer plus up to
// five image files, all attached to one of the caller's stores.
func OfferCreate(svc offers.Service, blobCfg config.BlobConfig, logg *logger.Logger) http.HandlerFunc {
	maxMemory := int64(blobCfg.MaxUploadMB) << 20
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "offer service unavailable"))
			return
		}

		ownerID := middleware.UserIDFromContext(r.Context())
		if ownerID == uuid.Nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		headers, err := validators.FormFiles(r, maxMemory, offerImagesField, offers.MaxImages)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payload, err := decodeOfferCreateForm(r.MultipartForm)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := payload.toDTO()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		images, closeImages, err := openImageFiles(headers)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		defer closeImages()

		offer, err := svc.Create(r.Context(), ownerID, dto, images)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(r.Context(), w, http.StatusCreated,
			"Offer has been successfully added.", offer)
	}
}

// OfferList returns every offer across the caller's stores.
func OfferList(svc offers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "offer service unavailable"))
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

		responses.WriteSuccess(r.Context(), w, "Offers fetched successfully.", list)
	}
}

// OfferUpdate applies a sparse merge to one of the caller's offers. New
// image files, when supplied, replace the existing set.
func OfferUpdate(svc offers.Service, blobCfg config.BlobConfig, logg *logger.Logger) http.HandlerFunc {
	maxMemory := int64(blobCfg.MaxUploadMB) << 20
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "offer service unavailable"))
			return
		}

		ownerID := middleware.UserIDFromContext(r.Context())
		if ownerID == uuid.Nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		offerID, err := uuid.Parse(chi.URLParam(r, "offer_id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid offer id"))
			return
		}

		headers, err := validators.FormFiles(r, maxMemory, offerImagesField, offers.MaxImages)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payload, err := decodeOfferUpdateForm(r.MultipartForm)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		images, closeImages, err := openImageFiles(headers)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		defer closeImages()

		offer, err := svc.Update(r.Context(), ownerID, offerID, input, images)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(r.Context(), w, "Offer updated successfully.", offer)
	}
}

// OfferDelete removes one of the caller's offers and its stored images.
func OfferDelete(svc offers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "offer service unavailable"))
			return
		}

		ownerID := middleware.UserIDFromContext(r.Context())
		if ownerID == uuid.Nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		offerID, err := uuid.Parse(chi.URLParam(r, "offer_id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid offer id"))
			return
		}

		if err := svc.Delete(r.Context(), ownerID, offerID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(r.Context(), w, "Offer deleted successfully.", nil)
	}
}

func decodeOfferCreateForm(form *multipart.Form) (*offerCreateRequest, error) {
	payload := offerCreateRequest{
		StoreID:            formValue(form, "store_id"),
		Location:           formValue(form, "location"),
		OfferType:          formValue(form, "offer_type"),
		OfferTitle:         formValue(form, "offer_title"),
		OfferDescription:   formValue(form, "offer_description"),
		StartDate:          formValue(form, "start_date"),
		EndDate:            formValue(form, "end_date"),
		SelectOfferStatus:  formValue(form, "select_offer_status"),
		OfferStatus:        formValue(form, "offer_status"),
		ApplicableProducts: formValue(form, "applicable_products"),
		Audience:           formValue(form, "audience"),
	}

	var err error
	if payload.DiscountPercentage, err = formFloat(form, "discount_percentage"); err != nil {
		return nil, err
	}
	if payload.MinSpendAmount, err = formFloat(form, "min_spend_amount"); err != nil {
		return nil, err
	}
	if v, ok := formLookup(form, "coupon_code"); ok {
		payload.CouponCode = &v
	}

	if err := validators.CheckStruct(&payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (p *offerCreateRequest) toDTO() (offers.CreateOfferDTO, error) {
	start, err := parseFormTime("start_date", p.StartDate)
	if err != nil {
		return offers.CreateOfferDTO{}, err
	}
	end, err := parseFormTime("end_date", p.EndDate)
	if err != nil {
		return offers.CreateOfferDTO{}, err
	}

	// StoreID already passed the uuid constraint.
	storeID, err := uuid.Parse(p.StoreID)
	if err != nil {
		return offers.CreateOfferDTO{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid store id")
	}

	return offers.CreateOfferDTO{
		StoreID:            storeID,
		Location:           p.Location,
		OfferType:          p.OfferType,
		OfferTitle:         p.OfferTitle,
		OfferDescription:   p.OfferDescription,
		StartDate:          start,
		EndDate:            end,
		DiscountPercentage: p.DiscountPercentage,
		MinSpendAmount:     p.MinSpendAmount,
		CouponCode:         p.CouponCode,
		SelectOfferStatus:  p.SelectOfferStatus,
		OfferStatus:        p.OfferStatus,
		ApplicableProducts: &p.ApplicableProducts,
		Audience:           p.Audience,
	}, nil
}

func decodeOfferUpdateForm(form *multipart.Form) (*offerUpdateRequest, error) {
	var payload offerUpdateRequest

	stringFields := map[string]**string{
		"location":            &payload.Location,
		"offer_type":          &payload.OfferType,
		"offer_title":         &payload.OfferTitle,
		"offer_description":   &payload.OfferDescription,
		"start_date":          &payload.StartDate,
		"end_date":            &payload.EndDate,
		"coupon_code":         &payload.CouponCode,
		"select_offer_status": &payload.SelectOfferStatus,
		"offer_status":        &payload.OfferStatus,
		"applicable_products": &payload.ApplicableProducts,
		"audience":            &payload.Audience,
	}
	for key, dest := range stringFields {
		if v, ok := formLookup(form, key); ok {
			value := v
			*dest = &value
		}
	}

	var err error
	if payload.DiscountPercentage, err = formFloat(form, "discount_percentage"); err != nil {
		return nil, err
	}
	if payload.MinSpendAmount, err = formFloat(form, "min_spend_amount"); err != nil {
		return nil, err
	}

	if err := validators.CheckStruct(&payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (p *offerUpdateRequest) toInput() (offers.UpdateOfferInput, error) {
	input := offers.UpdateOfferInput{
		Location:           p.Location,
		OfferType:          p.OfferType,
		OfferTitle:         p.OfferTitle,
		OfferDescription:   p.OfferDescription,
		DiscountPercentage: p.DiscountPercentage,
		MinSpendAmount:     p.MinSpendAmount,
		CouponCode:         p.CouponCode,
		SelectOfferStatus:  p.SelectOfferStatus,
		OfferStatus:        p.OfferStatus,
		ApplicableProducts: p.ApplicableProducts,
		Audience:           p.Audience,
	}

	if p.StartDate != nil {
		start, err := parseFormTime("start_date", *p.StartDate)
		if err != nil {
			return offers.UpdateOfferInput{}, err
		}
		input.StartDate = &start
	}
	if p.EndDate != nil {
		end, err := parseFormTime("end_date", *p.EndDate)
		if err != nil {
			return offers.UpdateOfferInput{}, err
		}
		input.EndDate = &end
	}

	return input, nil
}

func formLookup(form *multipart.Form, key string) (string, bool) {
	if form == nil {
		return "", false
	}
	vals := form.Value[key]
	if len(vals) == 0 {
		return "", false
	}
	return strings.TrimSpace(vals[0]), true
}

func formValue(form *multipart.Form, key string) string {
	v, _ := formLookup(form, key)
	return v
}

func formFloat(form *multipart.Form, key string) (*float64, error) {
	raw, ok := formLookup(form, key)
	if !ok || raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err,
			fmt.Sprintf("%s must be a number", key))
	}
	return &v, nil
}

func parseFormTime(field, raw string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err,
			fmt.Sprintf("%s must be an ISO timestamp", field))
	}
	return t, nil
}

func openImageFiles(headers []*multipart.FileHeader) ([]offers.ImageFile, func(), error) {
	var (
		files   []offers.ImageFile
		closers []io.Closer
	)
	cleanup := func() {
		for _, c := range closers {
			c.Close()
		}
	}

	for _, h := range headers {
		f, err := h.Open()
		if err != nil {
			cleanup()
			return nil, nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "reading uploaded file")
		}
		closers = append(closers, f)
		files = append(files, offers.ImageFile{
			Reader:      f,
			Filename:    h.Filename,
			ContentType: h.Header.Get("Content-Type"),
		})
	}
	return files, cleanup, nil
}
