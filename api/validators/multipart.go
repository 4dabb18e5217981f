package validators

import (
	"fmt"
	"mime/multipart"
	"net/http"

	pkgerrors "github.com/simplishare/simplishare-server/pkg/errors"
)

// FormFiles parses a multipart request body and returns the file headers for
// the named field. The cap is enforced here so an oversized batch is rejected
// before any file reaches the bucket.
func FormFiles(r *http.Request, maxMemory int64, field string, maxFiles int) ([]*multipart.FileHeader, error) {
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart body").
			WithDetails(map[string]any{"error": err.Error()})
	}
	if r.MultipartForm == nil {
		return nil, nil
	}

	files := r.MultipartForm.File[field]
	if len(files) > maxFiles {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("a maximum of %d images is allowed", maxFiles))
	}
	return files, nil
}
