package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/imagehub/imagehub-web/internal/api/middleware"
	"github.com/imagehub/imagehub-web/internal/api/web"
	"github.com/imagehub/imagehub-web/internal/core/domain"
	"github.com/imagehub/imagehub-web/internal/core/service"
	"github.com/imagehub/imagehub-web/internal/infrastructure/content"
)

// loadingRetry is how long the loading page waits before asking again.
const loadingRetry = 2

// NavigationHandler renders the page picked for the current session.
type NavigationHandler struct {
	Screen
	landing   *content.Landing
	dashboard *DashboardHandler
	admin     *AdminHandler
}

func NewNavigationHandler(s Screen, landing *content.Landing, dashboard *DashboardHandler, admin *AdminHandler) *NavigationHandler {
	return &NavigationHandler{Screen: s, landing: landing, dashboard: dashboard, admin: admin}
}

// Index handles GET /.
func (h *NavigationHandler) Index(c echo.Context) error {
	sc := middleware.SessionFrom(c)
	flash := h.takeFlash(c)

	switch service.Navigate(sc.State(), sc.Role(), requestedView(c)) {
	case domain.PageLoading:
		v := h.view(c, "", web.Flash{}, nil)
		v.Refresh = &web.Refresh{Seconds: loadingRetry, URL: "/"}
		return c.Render(http.StatusOK, string(domain.PageLoading), v)
	case domain.PageAdmin:
		return h.admin.Page(c, flash)
	case domain.PageDashboard:
		return h.dashboard.Page(c, flash)
	case domain.PageLogin:
		return c.Render(http.StatusOK, string(domain.PageLogin), h.view(c, titleLogin, flash, LoginData{}))
	case domain.PageSignup:
		return c.Render(http.StatusOK, string(domain.PageSignup), h.view(c, titleSignup, flash, SignupData{}))
	default:
		return c.Render(http.StatusOK, string(domain.PageLanding), h.view(c, "", flash, h.landing))
	}
}

// Go handles GET /go/:page. The page name is kept as-is; unknown names fall
// back to the landing page when rendered.
func (h *NavigationHandler) Go(c echo.Context) error {
	h.setView(c, c.Param("page"))
	return home(c, "")
}

// ToLogin is the handler for requests a role guard turned away.
func (h *NavigationHandler) ToLogin(c echo.Context) error {
	if middleware.SessionFrom(c).IsAuthenticated() {
		return home(c, "")
	}
	h.setView(c, string(domain.PageLogin))
	return home(c, "")
}
