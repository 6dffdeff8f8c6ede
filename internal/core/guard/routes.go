package guard

import "github.com/foodshare/platform/internal/core/domain"

const (
	PathLanding    = "/"
	PathLogin      = "/login"
	PathRegister   = "/register"
	PathDashboard  = "/dashboard"
	PathPostFood   = "/post-food"
	PathBrowseFood = "/browse-food"
	PathProfile    = "/profile"
	PathLogout     = "/logout"
)

// Route pairs a navigable path with its access rule.
type Route struct {
	Path   string
	Access Access
}

// Routes is the navigable route table.
var Routes = []Route{
	{Path: PathLanding, Access: Allow(Public)},
	{Path: PathLogin, Access: Allow(AnonymousOnly)},
	{Path: PathRegister, Access: Allow(AnonymousOnly)},
	{Path: PathDashboard, Access: Allow(Authenticated)},
	{Path: PathProfile, Access: Allow(Authenticated)},
	{Path: PathPostFood, Access: RequireRole(domain.RoleDonor)},
	{Path: PathBrowseFood, Access: RequireRole(domain.RoleNGO)},
}

// AccessFor returns the access rule of path. Unlisted paths are public.
func AccessFor(path string) Access {
	for _, r := range Routes {
		if r.Path == path {
			return r.Access
		}
	}
	return Allow(Public)
}
