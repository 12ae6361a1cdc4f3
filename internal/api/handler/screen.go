package handler

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/csrf"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/imagehub/imagehub-web/internal/api/middleware"
	"github.com/imagehub/imagehub-web/internal/api/web"
	"github.com/imagehub/imagehub-web/internal/core/domain"
	"github.com/imagehub/imagehub-web/internal/core/ports"
	"github.com/imagehub/imagehub-web/internal/core/service"
)

// Cookies carrying per-browser UI state next to the session cookie.
const (
	CookieFlash = "imagehub_flash"
	CookieView  = "imagehub_view"
	CookiePanel = "imagehub_panel"
)

const (
	flashMaxAge   = 60
	maxViewLength = 32
)

// Screen holds what every page handler needs: the session manager for forced
// logouts, cookie settings and a logger.
type Screen struct {
	sessions ports.SessionManager
	secure   bool
	logger   zerolog.Logger
}

func NewScreen(sessions ports.SessionManager, secure bool, logger zerolog.Logger) Screen {
	return Screen{sessions: sessions, secure: secure, logger: logger}
}

func (s Screen) view(c echo.Context, title string, flash web.Flash, data any) web.View {
	return web.View{
		Title: title,
		User:  middleware.SessionFrom(c).Session(),
		CSRF:  csrf.TemplateField(c.Request()),
		Flash: flash,
		Data:  data,
	}
}

func (s Screen) cookie(name, value string, maxAge int) *http.Cookie {
	ck := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	}
	if maxAge < 0 {
		ck.Expires = time.Unix(0, 0)
	}
	return ck
}

// setFlash stores f for the next rendered page.
func (s Screen) setFlash(c echo.Context, f web.Flash) {
	raw, err := json.Marshal(f)
	if err != nil {
		s.logger.Warn().Err(err).Msg("could not encode flash")
		return
	}
	c.SetCookie(s.cookie(CookieFlash, base64.RawURLEncoding.EncodeToString(raw), flashMaxAge))
}

// takeFlash returns the pending flash and clears it.
func (s Screen) takeFlash(c echo.Context) web.Flash {
	ck, err := c.Cookie(CookieFlash)
	if err != nil || ck.Value == "" {
		return web.Flash{}
	}
	c.SetCookie(s.cookie(CookieFlash, "", -1))

	raw, err := base64.RawURLEncoding.DecodeString(ck.Value)
	if err != nil {
		return web.Flash{}
	}
	var f web.Flash
	if err := json.Unmarshal(raw, &f); err != nil {
		return web.Flash{}
	}
	if f.Kind != web.FlashSuccess {
		f.Kind = web.FlashError
	}
	if !strings.HasPrefix(f.Download, "/images/") {
		f.Download = ""
	}
	return f
}

func (s Screen) flashOK(c echo.Context, msg string) {
	if msg != "" {
		s.setFlash(c, web.Flash{Kind: web.FlashSuccess, Message: msg})
	}
}

func (s Screen) flashErr(c echo.Context, msg string) {
	s.setFlash(c, web.Flash{Kind: web.FlashError, Message: msg})
}

// setView records the page an anonymous visitor asked for.
func (s Screen) setView(c echo.Context, page string) {
	if len(page) > maxViewLength {
		page = page[:maxViewLength]
	}
	c.SetCookie(s.cookie(CookieView, url.QueryEscape(page), 0))
}

func requestedView(c echo.Context) string {
	ck, err := c.Cookie(CookieView)
	if err != nil {
		return ""
	}
	v, err := url.QueryUnescape(ck.Value)
	if err != nil {
		return ""
	}
	return v
}

// home is the PRG target of every form action.
func home(c echo.Context, query string) error {
	target := "/"
	if query != "" {
		target += "?" + query
	}
	return c.Redirect(http.StatusSeeOther, target)
}

// expire handles a session the API rejected: the record is dropped and the
// browser lands on the login screen.
func (s Screen) expire(c echo.Context) error {
	sc := middleware.SessionFrom(c)
	if err := s.sessions.Expire(c.Request().Context(), sc); err != nil {
		s.logger.Warn().Err(err).Msg("could not drop rejected session")
	}
	s.setView(c, string(domain.PageLogin))
	return home(c, "")
}

// conclude finishes a dashboard action with the PRG redirect to target. A
// superseded action redirects without any message.
func (s Screen) conclude(c echo.Context, t service.Ticket, err error, success, fallback, target string) error {
	if errors.Is(err, domain.ErrUnauthorized) {
		return s.expire(c)
	}
	if !t.Latest(c.Request().Context()) {
		return home(c, target)
	}
	switch {
	case err == nil:
		s.flashOK(c, success)
	case errors.Is(err, domain.ErrUnreachable):
		s.flashErr(c, service.MsgUnreachable)
	default:
		if !isValidation(err) {
			s.logger.Warn().Err(err).Str("path", c.Path()).Msg("api rejected action")
		}
		s.flashErr(c, domain.MessageOf(err, fallback))
	}
	return home(c, target)
}

func isValidation(err error) bool {
	var ve *domain.ValidationError
	return errors.As(err, &ve)
}

func formInt(c echo.Context, name string, def int) int {
	v := strings.TrimSpace(c.FormValue(name))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// pageQuery renders the dashboard page index as a query string.
func pageQuery(page int) string {
	if page <= 0 {
		return ""
	}
	return "p=" + strconv.Itoa(page)
}
