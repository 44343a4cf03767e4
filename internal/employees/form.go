package employees

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/ayush/employee-admin/internal/apperr"
	"github.com/ayush/employee-admin/internal/models"
)

// imageField is the multipart part carrying the employee picture.
const imageField = "image"

// Upload is an image received with a create or update request.
type Upload struct {
	File     multipart.File
	Filename string
	Size     int64
}

func (u *Upload) Close() error {
	if u == nil || u.File == nil {
		return nil
	}
	return u.File.Close()
}

// parseForm reads the employee fields and the optional image from a multipart or
// urlencoded body of at most maxBytes. A nil Upload means no image was sent.
func parseForm(w http.ResponseWriter, r *http.Request, maxBytes int64) (models.EmployeeFields, *Upload, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		if !errors.Is(err, http.ErrNotMultipart) {
			return models.EmployeeFields{}, nil, formError(err)
		}
		if err := r.ParseForm(); err != nil {
			return models.EmployeeFields{}, nil, formError(err)
		}
	}

	fields := models.EmployeeFields{
		Name:        strings.TrimSpace(r.FormValue("name")),
		Email:       strings.TrimSpace(r.FormValue("email")),
		MobileNo:    strings.TrimSpace(r.FormValue("mobile_no")),
		Designation: strings.TrimSpace(r.FormValue("designation")),
		Gender:      strings.TrimSpace(r.FormValue("gender")),
		Course:      strings.TrimSpace(r.FormValue("course")),
	}

	file, header, err := r.FormFile(imageField)
	switch {
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		return fields, nil, nil
	case err != nil:
		return models.EmployeeFields{}, nil, formError(err)
	}
	return fields, &Upload{File: file, Filename: header.Filename, Size: header.Size}, nil
}

func formError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return apperr.Wrap(err, apperr.Validation, "Image file is too large")
	}
	return apperr.Wrap(err, apperr.Validation, "invalid form data")
}
