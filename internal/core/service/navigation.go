package service

import "github.com/imagehub/imagehub-web/internal/core/domain"

// Navigate picks the screen to render. Authenticated admins and users always
// get their dashboard; everyone else gets the requested public page, or the
// landing page for anything unknown.
func Navigate(state domain.SessionState, role domain.Role, requested string) domain.Page {
	switch state {
	case domain.StateLoading:
		return domain.PageLoading
	case domain.StateAuthenticated:
		switch role {
		case domain.RoleAdmin:
			return domain.PageAdmin
		case domain.RoleUser:
			return domain.PageDashboard
		}
	}

	switch p := domain.Page(requested); p {
	case domain.PageLanding, domain.PageLogin, domain.PageSignup:
		return p
	default:
		return domain.PageLanding
	}
}

// ScreenRole is the role a screen requires, or "" for public screens.
func ScreenRole(p domain.Page) domain.Role {
	switch p {
	case domain.PageAdmin:
		return domain.RoleAdmin
	case domain.PageDashboard:
		return domain.RoleUser
	default:
		return ""
	}
}

// Allow reports whether sc may act on a screen requiring role.
func Allow(sc *domain.SessionContext, role domain.Role) error {
	if !sc.IsAuthenticated() || sc.Role() != role {
		return domain.ErrForbiddenScreen
	}
	return nil
}
