// Package photo guarda las fotos de artículos y ventas en el almacén local.
package photo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/tiendita/internal/domain"
	"github.com/jhoicas/tiendita/internal/domain/repository"
)

const (
	// RefPrefix prefijo de las referencias devueltas por Store.
	RefPrefix = "photo:"

	DefaultMaxDim = 800
	jpegQuality   = 75
)

// Service reduce las imágenes recibidas a JPEG y las guarda como blobs.
type Service struct {
	blobs  repository.BlobStore
	maxDim int
	log    zerolog.Logger
}

// NewService crea el servicio; maxDim <= 0 usa DefaultMaxDim.
func NewService(blobs repository.BlobStore, maxDim int, log zerolog.Logger) *Service {
	if maxDim <= 0 {
		maxDim = DefaultMaxDim
	}
	return &Service{blobs: blobs, maxDim: maxDim, log: log}
}

// Store decodifica raw, lo ajusta a maxDim conservando la proporción y devuelve la referencia.
func (s *Service) Store(ctx context.Context, raw []byte) (string, error) {
	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("%w: imagen no válida", domain.ErrInvalidInput)
	}
	b := img.Bounds()
	if b.Dx() > s.maxDim || b.Dy() > s.maxDim {
		img = imaging.Fit(img, s.maxDim, s.maxDim, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return "", fmt.Errorf("codificar jpeg: %w", err)
	}

	ref := RefPrefix + uuid.New().String()
	if err := s.blobs.PutBlob(ctx, ref, buf.Bytes()); err != nil {
		return "", err
	}
	s.log.Info().
		Str("ref", ref).
		Int("original_w", b.Dx()).
		Int("original_h", b.Dy()).
		Int("bytes", buf.Len()).
		Msg("foto guardada")
	return ref, nil
}

// Load devuelve el JPEG de ref. Acepta la referencia completa o solo el id.
func (s *Service) Load(ctx context.Context, ref string) ([]byte, error) {
	if !strings.HasPrefix(ref, RefPrefix) {
		ref = RefPrefix + ref
	}
	if _, err := uuid.Parse(strings.TrimPrefix(ref, RefPrefix)); err != nil {
		return nil, domain.ErrNotFound
	}
	data, err := s.blobs.GetBlob(ctx, ref)
	if errors.Is(err, repository.ErrKeyNotFound) {
		return nil, domain.ErrNotFound
	}
	return data, err
}
