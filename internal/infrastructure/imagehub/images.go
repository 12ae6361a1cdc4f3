package imagehub

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"github.com/imagehub/imagehub-web/internal/core/domain"
	"github.com/imagehub/imagehub-web/internal/core/ports"
)

type imagePageEnvelope struct {
	Data *struct {
		Content       []domain.Image `json:"content"`
		TotalPages    int            `json:"totalPages"`
		TotalElements int64          `json:"totalElements"`
		Number        *int           `json:"number"`
	} `json:"data"`
}

// ListImages fetches one page of the caller's images.
func (c *Client) ListImages(ctx context.Context, s domain.Session, page, size int) (*domain.ImagePage, error) {
	cl, err := jsonCall("list_images", http.MethodGet, "/api/v1/images/user/all", nil)
	if err != nil {
		return nil, err
	}
	cl = cl.as(s)
	cl.query = url.Values{"page": {itoa(page)}, "size": {itoa(size)}}

	var env imagePageEnvelope
	if err := c.sendJSON(ctx, cl, &env); err != nil {
		return nil, err
	}

	out := &domain.ImagePage{Page: page}
	if env.Data != nil {
		out.Content = env.Data.Content
		out.TotalPages = env.Data.TotalPages
		out.TotalElements = env.Data.TotalElements
		if env.Data.Number != nil {
			out.Page = *env.Data.Number
		}
	}
	if out.Content == nil {
		out.Content = []domain.Image{}
	}
	return out, nil
}

// Upload sends the file as multipart form data under the "file" field.
func (c *Client) Upload(ctx context.Context, s domain.Session, f domain.UploadFile) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part := make(textproto.MIMEHeader)
	part.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(f.Name)))
	part.Set("Content-Type", f.ContentType)
	w, err := mw.CreatePart(part)
	if err != nil {
		return fmt.Errorf("create upload part: %w", err)
	}
	if _, err := w.Write(f.Data); err != nil {
		return fmt.Errorf("write upload part: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("close upload body: %w", err)
	}

	cl := call{action: "upload", method: http.MethodPost, path: "/api/v1/images/upload", body: &buf}.as(s)
	cl.header.Set("Content-Type", mw.FormDataContentType())
	return c.sendJSON(ctx, cl, nil)
}

// Transform submits one transformation for an image.
func (c *Client) Transform(ctx context.Context, s domain.Session, imageID string, req domain.TransformRequest) error {
	cl, err := jsonCall("transform", http.MethodPost, "/api/v1/images/"+url.PathEscape(imageID)+"/transform", req)
	if err != nil {
		return err
	}
	return c.sendJSON(ctx, cl.as(s), nil)
}

// Download fetches the original or transformed artifact.
func (c *Client) Download(ctx context.Context, s domain.Session, imageID string, kind domain.ArtifactKind) (*domain.Artifact, error) {
	cl := call{action: "download", method: http.MethodGet, path: "/api/v1/images/" + url.PathEscape(imageID) + "/download"}.as(s)
	cl.header.Del("Content-Type")
	cl.query = url.Values{"type": {string(kind)}}

	resp, err := c.send(ctx, cl)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read download body: %w", err)
	}
	return &domain.Artifact{
		Filename:    dispositionFilename(resp.Header.Get("Content-Disposition")),
		ContentType: resp.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// DeleteImage removes an image and its transformed variant.
func (c *Client) DeleteImage(ctx context.Context, s domain.Session, imageID string) error {
	cl := call{action: "delete_image", method: http.MethodDelete, path: "/api/v1/images/" + url.PathEscape(imageID)}.as(s)
	return c.sendJSON(ctx, cl, nil)
}

func dispositionFilename(header string) string {
	if header == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(header)
	if err != nil {
		return ""
	}
	return params["filename"]
}

func escapeQuotes(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}

var _ ports.ImageAPI = (*Client)(nil)
