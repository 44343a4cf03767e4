// Package employees implements the employee resource: listing, lookup, and the
// create/update/delete operations that keep records and their images in step.
package employees

import (
	"context"
	"io"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/ayush/employee-admin/internal/apperr"
	"github.com/ayush/employee-admin/internal/models"
)

var errImageRequired = apperr.New(apperr.Validation, "Image file is required")

// EmployeeStore defines the interface for employee persistence.
type EmployeeStore interface {
	Insert(ctx context.Context, e *models.Employee) (*models.Employee, error)
	List(ctx context.Context) ([]models.Employee, error)
	GetByID(ctx context.Context, id string) (*models.Employee, error)
	Update(ctx context.Context, e *models.Employee) (*models.Employee, error)
	Delete(ctx context.Context, id string) (*models.Employee, error)
}

// ImageStore keeps employee pictures. Delete is best-effort.
type ImageStore interface {
	Store(ctx context.Context, r io.Reader, size int64, originalName string) (string, error)
	Delete(ctx context.Context, name string)
}

type Service struct {
	store    EmployeeStore
	images   ImageStore
	validate *validator.Validate
	now      func() time.Time
}

func NewService(store EmployeeStore, images ImageStore) *Service {
	return &Service{store: store, images: images, validate: newValidator(), now: time.Now}
}

func (s *Service) List(ctx context.Context) ([]models.Employee, error) {
	return s.store.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*models.Employee, error) {
	return s.store.GetByID(ctx, id)
}

// Create stores the image, then the record. The image is released again when the
// record cannot be inserted.
func (s *Service) Create(ctx context.Context, fields models.EmployeeFields, img *Upload) (*models.Employee, error) {
	if img == nil {
		return nil, errImageRequired
	}
	if err := validateFields(s.validate, fields); err != nil {
		return nil, err
	}

	name, err := s.images.Store(ctx, img.File, img.Size, img.Filename)
	if err != nil {
		return nil, err
	}

	e := &models.Employee{Image: name, CreateDate: s.now().UTC().Truncate(time.Millisecond)}
	e.Apply(fields)
	created, err := s.store.Insert(ctx, e)
	if err != nil {
		s.images.Delete(ctx, name)
		return nil, err
	}

	zerolog.Ctx(ctx).Info().Str("employee_id", created.ID.Hex()).Msg("employee created")
	return created, nil
}

// Update merges the supplied fields over the stored record. A new image replaces the
// old one only after the record is saved.
func (s *Service) Update(ctx context.Context, id string, fields models.EmployeeFields, img *Upload) (*models.Employee, error) {
	existing, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := fields.Merge(existing.Fields())
	if err := validateFields(s.validate, merged); err != nil {
		return nil, err
	}

	next := *existing
	next.Apply(merged)
	if img != nil {
		name, err := s.images.Store(ctx, img.File, img.Size, img.Filename)
		if err != nil {
			return nil, err
		}
		next.Image = name
	}

	updated, err := s.store.Update(ctx, &next)
	if err != nil {
		if next.Image != existing.Image {
			s.images.Delete(ctx, next.Image)
		}
		return nil, err
	}
	if existing.Image != "" && existing.Image != updated.Image {
		s.images.Delete(ctx, existing.Image)
	}

	zerolog.Ctx(ctx).Info().Str("employee_id", id).Msg("employee updated")
	return updated, nil
}

// Delete removes the record, then its image.
func (s *Service) Delete(ctx context.Context, id string) error {
	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	s.images.Delete(ctx, deleted.Image)

	zerolog.Ctx(ctx).Info().Str("employee_id", id).Msg("employee deleted")
	return nil
}
