package accounts

import (
	"strings"

	"github.com/overnightmvp/7-day/internal/models"
)

var publicRoutes = map[string]bool{
	"/":       true,
	"/login":  true,
	"/signup": true,
}

// RedirectPath picks where a user lands after signing in. A local intended
// path other than "/" wins when the user may open it; otherwise admins go to
// /admin and employees to /app. A nil user goes to the landing page.
func RedirectPath(user *models.User, intendedPath string) string {
	if user == nil {
		return "/"
	}
	if intendedPath != "/" && isLocalPath(intendedPath) && CanAccessRoute(user, intendedPath) {
		return intendedPath
	}
	if user.Role.CanAdminister() {
		return "/admin"
	}
	return "/app"
}

// CanAccessRoute reports whether user may open path in the web app.
func CanAccessRoute(user *models.User, path string) bool {
	if publicRoutes[path] {
		return true
	}
	if user == nil {
		return false
	}
	if strings.HasPrefix(path, "/admin") {
		return user.Role.CanAdminister()
	}
	return strings.HasPrefix(path, "/app") || strings.HasPrefix(path, "/bookings")
}

func isLocalPath(p string) bool {
	return strings.HasPrefix(p, "/") && !strings.HasPrefix(p, "//")
}
