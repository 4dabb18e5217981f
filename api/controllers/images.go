package controllers

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/simplishare/simplishare-server/api/responses"
	"github.com/simplishare/simplishare-server/pkg/blob"
	pkgerrors "github.com/simplishare/simplishare-server/pkg/errors"
	"github.com/simplishare/simplishare-server/pkg/logger"
)

// ImageOpener is the slice of the blob store the image controller needs.
type ImageOpener interface {
	Open(ctx context.Context, key string) (*blob.Object, error)
}

// ImageGet streams a stored offer image to the caller without buffering
// the whole object.
func ImageGet(blobs ImageOpener, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if blobs == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "blob store unavailable"))
			return
		}

		obj, err := blobs.Open(r.Context(), chi.URLParam(r, "file_id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		defer obj.Body.Close()

		contentType := obj.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		w.Header().Set("Content-Type", contentType)
		if obj.Size > 0 {
			w.Header().Set("Content-Length", strconv.FormatInt(obj.Size, 10))
		}

		if _, err := io.Copy(w, obj.Body); err != nil {
			// Headers are already out; all we can do is log.
			if logg != nil {
				logg.Error(r.Context(), "image stream interrupted", err)
			}
		}
	}
}
