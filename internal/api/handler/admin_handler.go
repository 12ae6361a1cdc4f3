package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/imagehub/imagehub-web/internal/api/middleware"
	"github.com/imagehub/imagehub-web/internal/api/web"
	"github.com/imagehub/imagehub-web/internal/core/domain"
	"github.com/imagehub/imagehub-web/internal/core/ports"
	"github.com/imagehub/imagehub-web/internal/core/service"
)

const titleAdmin = "Gestión de Usuarios"

var assignableRoles = []domain.Role{domain.RoleUser, domain.RoleAdmin, domain.RoleOperator}

// AdminData is the payload of the administrator dashboard.
type AdminData struct {
	Users  []domain.User
	Error  string
	Panel  domain.PanelMode
	EditID domain.UserID
	Form   ports.UserForm
	Roles  []domain.Role
}

// panelState is the admin side panel as kept in CookiePanel.
type panelState struct {
	mode domain.PanelMode
	id   domain.UserID
}

func (p panelState) encode() string {
	if p.mode == domain.PanelEditing {
		return string(p.mode) + ":" + string(p.id)
	}
	return string(p.mode)
}

func decodePanel(v string) panelState {
	mode, id, _ := strings.Cut(v, ":")
	switch domain.PanelMode(mode) {
	case domain.PanelAdding:
		return panelState{mode: domain.PanelAdding}
	case domain.PanelEditing:
		if id != "" {
			return panelState{mode: domain.PanelEditing, id: domain.UserID(id)}
		}
	}
	return panelState{mode: domain.PanelIdle}
}

type AdminHandler struct {
	Screen
	adminService ports.AdminService
	seq          *service.Sequencer
}

func NewAdminHandler(s Screen, adminService ports.AdminService, seq *service.Sequencer) *AdminHandler {
	return &AdminHandler{Screen: s, adminService: adminService, seq: seq}
}

// Page renders the admin dashboard for GET /[?panel=add|edit&id=|idle].
func (h *AdminHandler) Page(c echo.Context, flash web.Flash) error {
	panel := h.panel(c)
	if next, ok := h.requestedPanel(c); ok {
		mode, err := panel.mode.Enter(next.mode)
		if err == nil {
			next.mode = mode
			panel = next
			h.setPanel(c, panel)
		}
	}
	return h.render(c, http.StatusOK, flash, panel, nil, "")
}

// render loads the user list and renders the page. A non-nil form is shown
// as submitted instead of being preloaded.
func (h *AdminHandler) render(c echo.Context, status int, flash web.Flash, panel panelState, form *ports.UserForm, formErr string) error {
	sc := middleware.SessionFrom(c)
	data := AdminData{Panel: panel.mode, EditID: panel.id, Roles: assignableRoles, Error: formErr}

	users, err := h.adminService.List(c.Request().Context(), sc.Session())
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return h.expire(c)
	case errors.Is(err, domain.ErrUnreachable):
		data.Error = service.MsgUnreachable
	case err != nil:
		h.logger.Warn().Err(err).Msg("user list failed")
		data.Error = domain.MessageOf(err, service.MsgUsersLoadFailed)
	}
	data.Users = users

	switch {
	case form != nil:
		data.Form = *form
		data.Form.Password = ""
		// The email input is disabled while editing, so browsers never post it.
		if panel.mode == domain.PanelEditing {
			if u := findUser(users, panel.id); u != nil {
				data.Form.Email = u.Email
			}
		}
	case panel.mode == domain.PanelAdding:
		data.Form = ports.UserForm{Role: string(domain.RoleUser), Active: true}
	case panel.mode == domain.PanelEditing && err == nil:
		u := findUser(users, panel.id)
		if u == nil {
			data.Panel, data.EditID = domain.PanelIdle, ""
			data.Error = service.MsgUserNotFound
			h.setPanel(c, panelState{mode: domain.PanelIdle})
			break
		}
		data.Form = ports.FormFromUser(*u)
	}

	return c.Render(status, string(domain.PageAdmin), h.view(c, titleAdmin, flash, data))
}

// Create handles POST /admin/users.
func (h *AdminHandler) Create(c echo.Context) error {
	var form ports.UserForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	ctx := c.Request().Context()
	sc := middleware.SessionFrom(c)
	t := h.seq.Begin(ctx, sc.ID(), "create_user")
	err := h.adminService.Create(ctx, sc.Session(), form)
	return h.saved(c, t, err, panelState{mode: domain.PanelAdding}, &form)
}

// Update handles POST /admin/users/:id. The email is fixed after creation and
// a blank password keeps the current one.
func (h *AdminHandler) Update(c echo.Context) error {
	var form ports.UserForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	ctx := c.Request().Context()
	sc := middleware.SessionFrom(c)
	id := domain.UserID(c.Param("id"))
	t := h.seq.Begin(ctx, sc.ID(), "update_user:"+string(id))
	err := h.adminService.Update(ctx, sc.Session(), id, form)
	return h.saved(c, t, err, panelState{mode: domain.PanelEditing, id: id}, &form)
}

// saved finishes a create or update. Failures re-render the open panel with
// the submitted values.
func (h *AdminHandler) saved(c echo.Context, t service.Ticket, err error, panel panelState, form *ports.UserForm) error {
	if errors.Is(err, domain.ErrUnauthorized) {
		return h.expire(c)
	}
	if !t.Latest(c.Request().Context()) {
		return home(c, "")
	}

	switch {
	case err == nil:
		h.setPanel(c, panelState{mode: domain.PanelIdle})
		h.flashOK(c, service.MsgUserSaved)
		return home(c, "")
	case isValidation(err):
		return h.render(c, http.StatusUnprocessableEntity, web.Flash{}, panel, form, domain.MessageOf(err, service.MsgUserSaveFailed))
	case errors.Is(err, domain.ErrUnreachable):
		return h.render(c, http.StatusBadGateway, web.Flash{}, panel, form, service.MsgUnreachable)
	default:
		h.logger.Warn().Err(err).Msg("api rejected user")
		return h.render(c, http.StatusOK, web.Flash{}, panel, form, domain.MessageOf(err, service.MsgUserSaveFailed))
	}
}

// Delete handles POST /admin/users/:id/delete. Without confirmed=true nothing
// is sent.
func (h *AdminHandler) Delete(c echo.Context) error {
	if c.FormValue("confirmed") != "true" {
		return home(c, "")
	}

	ctx := c.Request().Context()
	sc := middleware.SessionFrom(c)
	id := domain.UserID(c.Param("id"))
	t := h.seq.Begin(ctx, sc.ID(), "delete_user:"+string(id))
	err := h.adminService.Delete(ctx, sc.Session(), id)
	if err == nil {
		if p := h.panel(c); p.mode == domain.PanelEditing && p.id == id {
			h.setPanel(c, panelState{mode: domain.PanelIdle})
		}
	}
	return h.conclude(c, t, err, service.MsgUserDeleted, service.MsgUserDeleteFailed, "")
}

// Activate handles POST /admin/users/:id/activate.
func (h *AdminHandler) Activate(c echo.Context) error {
	return h.setActive(c, true)
}

// Deactivate handles POST /admin/users/:id/deactivate.
func (h *AdminHandler) Deactivate(c echo.Context) error {
	return h.setActive(c, false)
}

func (h *AdminHandler) setActive(c echo.Context, active bool) error {
	ctx := c.Request().Context()
	sc := middleware.SessionFrom(c)
	id := domain.UserID(c.Param("id"))
	t := h.seq.Begin(ctx, sc.ID(), "user_status:"+string(id))
	err := h.adminService.SetActive(ctx, sc.Session(), id, active)
	return h.conclude(c, t, err, "", service.MsgUserStatusFailed, "")
}

func (h *AdminHandler) panel(c echo.Context) panelState {
	ck, err := c.Cookie(CookiePanel)
	if err != nil {
		return panelState{mode: domain.PanelIdle}
	}
	return decodePanel(ck.Value)
}

func (h *AdminHandler) setPanel(c echo.Context, p panelState) {
	if p.mode == domain.PanelIdle {
		c.SetCookie(h.cookie(CookiePanel, "", -1))
		return
	}
	c.SetCookie(h.cookie(CookiePanel, p.encode(), 0))
}

func (h *AdminHandler) requestedPanel(c echo.Context) (panelState, bool) {
	switch c.QueryParam("panel") {
	case "add":
		return panelState{mode: domain.PanelAdding}, true
	case "edit":
		if id := c.QueryParam("id"); id != "" {
			return panelState{mode: domain.PanelEditing, id: domain.UserID(id)}, true
		}
	case "idle":
		return panelState{mode: domain.PanelIdle}, true
	}
	return panelState{}, false
}

func findUser(users []domain.User, id domain.UserID) *domain.User {
	for i := range users {
		if users[i].ID == id {
			return &users[i]
		}
	}
	return nil
}
