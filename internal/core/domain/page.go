package domain

// Page names a top-level screen picked by the navigation controller.
type Page string

const (
	PageLoading   Page = "loading"
	PageLanding   Page = "landing"
	PageLogin     Page = "login"
	PageSignup    Page = "signup"
	PageDashboard Page = "dashboard"
	PageAdmin     Page = "admin"
)

// PanelMode is the admin side-panel state. Adding and editing exclude each other.
type PanelMode string

const (
	PanelIdle    PanelMode = "idle"
	PanelAdding  PanelMode = "adding"
	PanelEditing PanelMode = "editing"
)

// Enter moves the panel into next. Entering a mode while the other one is
// active is rejected; returning to idle is always allowed.
func (m PanelMode) Enter(next PanelMode) (PanelMode, error) {
	if next == PanelIdle || m == PanelIdle || m == "" || m == next {
		return next, nil
	}
	return m, ErrInvalidPanelTransition
}

// Busy reports whether a form panel is open.
func (m PanelMode) Busy() bool {
	return m == PanelAdding || m == PanelEditing
}
