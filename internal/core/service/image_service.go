package service

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"slices"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"

	"github.com/imagehub/imagehub-web/internal/core/domain"
	"github.com/imagehub/imagehub-web/internal/core/ports"
)

// MaxUploadSize is the largest accepted upload, in bytes.
const MaxUploadSize = 10 * 1024 * 1024

// uploadTypes are the declared MIME types accepted for upload.
var uploadTypes = []string{"image/png", "image/jpeg", "image/gif", "image/bmp"}

// ImageService implements the end-user dashboard.
type ImageService struct {
	api      ports.ImageAPI
	pageSize int
	logger   zerolog.Logger
}

func NewImageService(api ports.ImageAPI, pageSize int, logger zerolog.Logger) *ImageService {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &ImageService{api: api, pageSize: pageSize, logger: logger}
}

// List returns one page of the caller's images. The API answers 404 when the
// caller has none.
func (s *ImageService) List(ctx context.Context, sess domain.Session, page int) (*domain.ImagePage, error) {
	if page < 0 {
		page = 0
	}
	res, err := s.api.ListImages(ctx, sess, page, s.pageSize)
	if errors.Is(err, domain.ErrNotFound) {
		return &domain.ImagePage{Content: []domain.Image{}, Page: page}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	return res, nil
}

// Upload validates the declared type and size, then sends the file.
func (s *ImageService) Upload(ctx context.Context, sess domain.Session, f *domain.UploadFile) error {
	if f == nil || f.Name == "" {
		return reject("upload", MsgNoImageSelected)
	}
	declared := baseMediaType(f.ContentType)
	if declared == "" || declared == "application/octet-stream" {
		declared = baseMediaType(mimetype.Detect(f.Data).String())
	}
	if !slices.Contains(uploadTypes, declared) {
		return reject("upload", MsgInvalidImageFormat)
	}
	size := f.Size
	if size == 0 {
		size = int64(len(f.Data))
	}
	if size > MaxUploadSize {
		return reject("upload", MsgImageTooLarge)
	}

	out := *f
	out.ContentType = declared
	out.Size = size
	if err := s.api.Upload(ctx, sess, out); err != nil {
		return fmt.Errorf("upload: %w", err)
	}
	s.logger.Info().Str("image", f.Name).Int64("bytes", size).Msg("image uploaded")
	return nil
}

// Transform builds the request for kind from the form parameters and submits it.
func (s *ImageService) Transform(ctx context.Context, sess domain.Session, imageID string, kind domain.TransformKind, params domain.TransformParams) error {
	req, err := BuildTransform(kind, params)
	if err != nil {
		return err
	}
	if err := s.api.Transform(ctx, sess, imageID, req); err != nil {
		return fmt.Errorf("transform: %w", err)
	}
	s.logger.Info().Str("image_id", imageID).Str("kind", string(kind)).Msg("image transformed")
	return nil
}

// Download fetches one variant. imageName is the listed name of the image;
// it is required and seeds the file name when the API reports none.
func (s *ImageService) Download(ctx context.Context, sess domain.Session, imageID string, kind domain.ArtifactKind, imageName string) (*domain.Artifact, error) {
	if imageName == "" {
		return nil, domain.NewValidationError(MsgArtifactMissing(kind.Label()))
	}
	art, err := s.api.Download(ctx, sess, imageID, kind)
	if err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}
	if art.Filename == "" {
		art.Filename = domain.ArtifactFilename(imageName, kind)
	}
	if art.ContentType == "" {
		art.ContentType = mimetype.Detect(art.Data).String()
	}
	return art, nil
}

// Delete removes an image.
func (s *ImageService) Delete(ctx context.Context, sess domain.Session, imageID string) error {
	if err := s.api.DeleteImage(ctx, sess, imageID); err != nil {
		return fmt.Errorf("delete image: %w", err)
	}
	return nil
}

// BuildTransform turns the selected kind and the form values into the single
// member request the API expects.
func BuildTransform(kind domain.TransformKind, p domain.TransformParams) (domain.TransformRequest, error) {
	switch kind {
	case domain.TransformResize:
		if p.Width <= 0 || p.Height <= 0 {
			return domain.TransformRequest{}, reject("transform", MsgRequiredFields)
		}
		return domain.TransformRequest{Resize: &domain.Resize{Width: p.Width, Height: p.Height}}, nil
	case domain.TransformCrop:
		if p.CropWidth <= 0 || p.CropHeight <= 0 || p.X < 0 || p.Y < 0 {
			return domain.TransformRequest{}, reject("transform", MsgRequiredFields)
		}
		return domain.TransformRequest{Crop: &domain.Crop{X: p.X, Y: p.Y, Width: p.CropWidth, Height: p.CropHeight}}, nil
	case domain.TransformRotate:
		deg := p.Rotation
		return domain.TransformRequest{Rotate: &deg}, nil
	case domain.TransformGrayscale:
		return domain.TransformRequest{Filters: &domain.Filters{Grayscale: true}}, nil
	case domain.TransformSepia:
		return domain.TransformRequest{Filters: &domain.Filters{Sepia: true}}, nil
	case domain.TransformFormat:
		format := strings.ToLower(strings.TrimSpace(p.Format))
		if !slices.Contains(domain.OutputFormats, format) {
			return domain.TransformRequest{}, reject("transform", MsgInvalidTransform)
		}
		return domain.TransformRequest{Format: format}, nil
	default:
		return domain.TransformRequest{}, reject("transform", MsgInvalidTransform)
	}
}

func baseMediaType(v string) string {
	if v == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(v)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(v))
	}
	return mt
}

var _ ports.ImageService = (*ImageService)(nil)
