// Package images stores uploaded employee pictures under generated names and serves
// them back.
package images

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"mime"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ayush/employee-admin/internal/apperr"
)

const defaultContentType = "application/octet-stream"

var (
	errImageNotFound = apperr.New(apperr.NotFound, "Image not found")

	// validName matches bare file names: no separators, no leading dot.
	validName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*(\.[A-Za-z0-9]+)?$`)

	// 128 random bits.
	tokenLimit = new(big.Int).Lsh(big.NewInt(1), 128)
)

// Storage is the medium images are kept in. DiskStore and MinioStore implement it.
type Storage interface {
	Put(ctx context.Context, name string, r io.Reader, size int64, contentType string) error
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Remove(ctx context.Context, name string) error
}

type Service struct {
	storage Storage
}

func NewService(storage Storage) *Service {
	return &Service{storage: storage}
}

// Store saves r under a freshly generated name and returns that name.
func (s *Service) Store(ctx context.Context, r io.Reader, size int64, originalName string) (string, error) {
	name, err := generateName(originalName)
	if err != nil {
		return "", err
	}
	if err := s.storage.Put(ctx, name, r, size, ContentType(name)); err != nil {
		return "", fmt.Errorf("store image: %w", err)
	}
	return name, nil
}

// Open returns the image called name and its content type.
func (s *Service) Open(ctx context.Context, name string) (io.ReadCloser, string, error) {
	if !ValidName(name) {
		return nil, "", errImageNotFound
	}
	rc, err := s.storage.Open(ctx, name)
	if err != nil {
		return nil, "", err
	}
	return rc, ContentType(name), nil
}

// Delete removes name. Failures are logged and otherwise ignored.
func (s *Service) Delete(ctx context.Context, name string) {
	if name == "" || !ValidName(name) {
		return
	}
	log := zerolog.Ctx(ctx)
	err := s.storage.Remove(ctx, name)
	switch {
	case err == nil:
		log.Debug().Str("image", name).Msg("image removed")
	case apperr.KindOf(err) == apperr.NotFound:
		log.Debug().Str("image", name).Msg("image already gone")
	default:
		log.Warn().Err(err).Str("image", name).Msg("image cleanup failed")
	}
}

// ValidName reports whether name is a bare file name safe to look up.
func ValidName(name string) bool {
	return validName.MatchString(name)
}

// ContentType guesses the MIME type from the file extension.
func ContentType(name string) string {
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		return ct
	}
	return defaultContentType
}

// generateName returns a random base-36 token followed by the sanitised extension
// of original.
func generateName(original string) (string, error) {
	n, err := rand.Int(rand.Reader, tokenLimit)
	if err != nil {
		return "", fmt.Errorf("generate image name: %w", err)
	}
	name := n.Text(36)
	if ext := extension(original); ext != "" {
		name += "." + ext
	}
	return name, nil
}

func extension(original string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(original), "."))
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return -1
	}, ext)
}
