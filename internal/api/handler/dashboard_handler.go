package handler

import (
	"context"
	"errors"
	"io"
	"mime"
	"net/http"
	"net/url"
	"slices"
	"strconv"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/imagehub/imagehub-web/internal/api/middleware"
	"github.com/imagehub/imagehub-web/internal/api/web"
	"github.com/imagehub/imagehub-web/internal/core/domain"
	"github.com/imagehub/imagehub-web/internal/core/ports"
	"github.com/imagehub/imagehub-web/internal/core/service"
)

const titleDashboard = "Mis Imágenes"

// ProfileReader resolves the account behind a session.
type ProfileReader interface {
	Me(ctx context.Context, s domain.Session) (*domain.User, error)
}

// DashboardData is the payload of the end-user dashboard.
type DashboardData struct {
	Images   *domain.ImagePage
	Error    string
	Selected *domain.Image
	Kind     domain.TransformKind
	Params   domain.TransformParams
	Kinds    []domain.TransformKind
	Formats  []string
}

type DashboardHandler struct {
	Screen
	imageService ports.ImageService
	profiles     ProfileReader
	seq          *service.Sequencer
}

func NewDashboardHandler(s Screen, imageService ports.ImageService, profiles ProfileReader, seq *service.Sequencer) *DashboardHandler {
	return &DashboardHandler{Screen: s, imageService: imageService, profiles: profiles, seq: seq}
}

// Page renders the dashboard for GET /?p=<n>[&transform=<id>[&type=<kind>]].
// The profile lookup refreshes the cached display name and is best-effort.
func (h *DashboardHandler) Page(c echo.Context, flash web.Flash) error {
	sc := middleware.SessionFrom(c)
	sess := sc.Session()
	page := queryInt(c, "p", 0)

	var (
		images *domain.ImagePage
		me     *domain.User
	)
	g, gctx := errgroup.WithContext(c.Request().Context())
	g.Go(func() error {
		var err error
		images, err = h.imageService.List(gctx, sess, page)
		return err
	})
	g.Go(func() error {
		u, err := h.profiles.Me(gctx, sess)
		if errors.Is(err, domain.ErrUnauthorized) {
			return err
		}
		if err != nil {
			h.logger.Debug().Err(err).Msg("profile lookup failed")
			return nil
		}
		me = u
		return nil
	})
	err := g.Wait()
	if errors.Is(err, domain.ErrUnauthorized) {
		return h.expire(c)
	}

	data := DashboardData{
		Images:  images,
		Kind:    domain.TransformResize,
		Params:  domain.DefaultTransformParams(),
		Kinds:   domain.TransformKinds,
		Formats: domain.OutputFormats,
	}
	if err != nil {
		data.Images = &domain.ImagePage{Content: []domain.Image{}, Page: page}
		if errors.Is(err, domain.ErrUnreachable) {
			data.Error = service.MsgUnreachable
		} else {
			data.Error = domain.MessageOf(err, service.MsgImagesLoadFailed)
		}
		h.logger.Warn().Err(err).Msg("image list failed")
	}

	if me != nil {
		if err := h.sessions.Rename(c.Request().Context(), sc, me.FullName()); err != nil {
			h.logger.Warn().Err(err).Msg("could not refresh display name")
		}
	}

	if id := c.QueryParam("transform"); id != "" {
		for i := range data.Images.Content {
			if data.Images.Content[i].ID == id {
				data.Selected = &data.Images.Content[i]
				break
			}
		}
		if k := domain.TransformKind(c.QueryParam("type")); slices.Contains(domain.TransformKinds, k) {
			data.Kind = k
		}
	}

	v := h.view(c, titleDashboard, flash, data)
	if flash.Download != "" {
		v.Refresh = &web.Refresh{URL: flash.Download}
	}
	return c.Render(http.StatusOK, string(domain.PageDashboard), v)
}

// Upload handles POST /images.
func (h *DashboardHandler) Upload(c echo.Context) error {
	ctx := c.Request().Context()
	sc := middleware.SessionFrom(c)
	target := pageQuery(formInt(c, "p", 0))

	file, err := readUpload(c)
	if err != nil {
		h.logger.Warn().Err(err).Msg("could not read upload")
		h.flashErr(c, service.MsgUploadFailed)
		return home(c, target)
	}

	t := h.seq.Begin(ctx, sc.ID(), "upload")
	err = h.imageService.Upload(ctx, sc.Session(), file)
	return h.conclude(c, t, err, service.MsgUploadSuccess, service.MsgUploadFailed, target)
}

// Transform handles POST /images/:id/transform. With download=true the
// transformed artifact is fetched once the dashboard reloads.
func (h *DashboardHandler) Transform(c echo.Context) error {
	ctx := c.Request().Context()
	sc := middleware.SessionFrom(c)
	id := c.Param("id")
	page := formInt(c, "p", 0)
	kind := domain.TransformKind(c.FormValue("type"))

	def := domain.DefaultTransformParams()
	params := domain.TransformParams{
		Width:      formInt(c, "width", def.Width),
		Height:     formInt(c, "height", def.Height),
		X:          formInt(c, "x", def.X),
		Y:          formInt(c, "y", def.Y),
		CropWidth:  formInt(c, "cropWidth", def.CropWidth),
		CropHeight: formInt(c, "cropHeight", def.CropHeight),
		Rotation:   formInt(c, "rotation", def.Rotation),
		Format:     c.FormValue("format"),
	}
	if params.Format == "" {
		params.Format = def.Format
	}

	t := h.seq.Begin(ctx, sc.ID(), "transform:"+id)
	err := h.imageService.Transform(ctx, sc.Session(), id, kind, params)

	if errors.Is(err, domain.ErrUnauthorized) {
		return h.expire(c)
	}
	if !t.Latest(ctx) {
		return home(c, pageQuery(page))
	}
	switch {
	case isValidation(err):
		h.flashErr(c, domain.MessageOf(err, service.MsgTransformFailed))
		q := url.Values{"transform": {id}, "type": {string(kind)}}
		if page > 0 {
			q.Set("p", strconv.Itoa(page))
		}
		return home(c, q.Encode())
	case err == nil && c.FormValue("download") == "true":
		h.setFlash(c, web.Flash{
			Kind:     web.FlashSuccess,
			Message:  service.MsgTransformSuccess,
			Download: downloadURL(id, domain.ArtifactTransform, c.FormValue("name")),
		})
		return home(c, pageQuery(page))
	}
	return h.conclude(c, service.Ticket{}, err, service.MsgTransformSuccess, service.MsgTransformFailed, pageQuery(page))
}

// Download handles GET /images/:id/download?type=&name= and streams the
// artifact back as an attachment.
func (h *DashboardHandler) Download(c echo.Context) error {
	sc := middleware.SessionFrom(c)
	kind := domain.ParseArtifactKind(c.QueryParam("type"))

	art, err := h.imageService.Download(c.Request().Context(), sc.Session(), c.Param("id"), kind, c.QueryParam("name"))
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrUnauthorized):
		return h.expire(c)
	case errors.Is(err, domain.ErrNotFound):
		h.flashErr(c, service.MsgArtifactNotFound(kind.Label()))
		return home(c, "")
	case errors.Is(err, domain.ErrUnreachable):
		h.flashErr(c, service.MsgDownloadUnreach)
		return home(c, "")
	default:
		if !isValidation(err) {
			h.logger.Warn().Err(err).Msg("download failed")
		}
		h.flashErr(c, domain.MessageOf(err, service.MsgDownloadFailed))
		return home(c, "")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, mime.FormatMediaType("attachment", map[string]string{"filename": art.Filename}))
	return c.Blob(http.StatusOK, art.ContentType, art.Data)
}

// Delete handles POST /images/:id/delete. Without confirmed=true nothing is
// sent.
func (h *DashboardHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	sc := middleware.SessionFrom(c)
	id := c.Param("id")
	target := pageQuery(formInt(c, "p", 0))

	if c.FormValue("confirmed") != "true" {
		return home(c, target)
	}

	t := h.seq.Begin(ctx, sc.ID(), "delete:"+id)
	err := h.imageService.Delete(ctx, sc.Session(), id)
	return h.conclude(c, t, err, service.MsgDeleteSuccess, service.MsgDeleteFailed, target)
}

// readUpload returns nil when no file was attached.
func readUpload(c echo.Context) (*domain.UploadFile, error) {
	fh, err := c.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, service.MaxUploadSize+1))
	if err != nil {
		return nil, err
	}
	return &domain.UploadFile{
		Name:        fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Size:        fh.Size,
		Data:        data,
	}, nil
}

func downloadURL(id string, kind domain.ArtifactKind, name string) string {
	q := url.Values{"type": {string(kind)}, "name": {name}}
	return "/images/" + url.PathEscape(id) + "/download?" + q.Encode()
}

func queryInt(c echo.Context, name string, def int) int {
	n, err := strconv.Atoi(c.QueryParam(name))
	if err != nil || n < 0 {
		return def
	}
	return n
}
