package domain

import (
	"path"
	"strings"
)

// Image is a server-owned image record. It is never mutated locally.
type Image struct {
	ID                string    `json:"id"`
	UserName          string    `json:"userName,omitempty"`
	ImageName         string    `json:"imageName"`
	Description       string    `json:"description,omitempty"`
	RegistrationDate  Timestamp `json:"registrationDate"`
	DateOfUpdate      Timestamp `json:"dateOfUpdate"`
	InputPath         string    `json:"inputPath"`
	TransformPath     string    `json:"transformPath,omitempty"`
	HasTransformation bool      `json:"hasTransformation"`
}

// ImagePage is one server-reported page of the caller's images.
type ImagePage struct {
	Content       []Image
	Page          int
	TotalPages    int
	TotalElements int64
}

// HasPrev reports whether a previous page exists.
func (p ImagePage) HasPrev() bool { return p.Page > 0 }

// HasNext reports whether a next page exists.
func (p ImagePage) HasNext() bool { return p.Page+1 < p.TotalPages }

// ArtifactKind selects the original or the transformed variant of an image.
type ArtifactKind string

const (
	ArtifactInput     ArtifactKind = "input"
	ArtifactTransform ArtifactKind = "transform"
)

// ParseArtifactKind defaults to the original artifact for unknown values.
func ParseArtifactKind(s string) ArtifactKind {
	if ArtifactKind(s) == ArtifactTransform {
		return ArtifactTransform
	}
	return ArtifactInput
}

// Label is the Spanish adjective used in user-facing messages.
func (k ArtifactKind) Label() string {
	if k == ArtifactTransform {
		return "transformada"
	}
	return "original"
}

// Artifact is a downloaded binary payload.
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ArtifactFilename synthesises the file name for a download when the server
// does not report one: the transformed variant gets a "_transform" suffix.
func ArtifactFilename(imageName string, kind ArtifactKind) string {
	if kind != ArtifactTransform {
		return imageName
	}
	ext := strings.TrimPrefix(path.Ext(imageName), ".")
	base := strings.TrimSuffix(imageName, path.Ext(imageName))
	if ext == "" {
		ext = "png"
	}
	return base + "_transform." + ext
}

// UploadFile is a user-selected file about to be sent as multipart data.
type UploadFile struct {
	Name        string
	ContentType string
	Size        int64
	Data        []byte
}
