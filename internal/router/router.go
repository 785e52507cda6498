// Package router holds the static route table and resolves navigation
// attempts through each route's guard chain.
package router

import (
	"fmt"

	"github.com/adr1ann32323/restorApp/internal/guard"
	"github.com/adr1ann32323/restorApp/internal/models"
)

// Route paths. The empty path resolves to the auth route, the app's entry
// point.
const (
	PathAuth         = "/auth"
	PathProducts     = "/products"
	PathOrders       = "/orders"
	PathDashboard    = "/admin/dashboard"
	PathUnauthorized = "/unauthorized"
)

type Route struct {
	Path string
	// Roles is the static required-roles list RoleGuard reads.
	Roles  []models.Role
	Guards guard.Chain
}

// Result is the outcome of one navigation attempt.
type Result struct {
	// Path is where the navigation ended up: the requested route when
	// allowed, or the redirect target.
	Path string
	// Redirected is true when a guard denied the requested route.
	Redirected bool
	// ReturnURL is the originally requested path, set when the denying
	// guard recorded it (login redirects).
	ReturnURL string
}

type Router struct {
	session guard.SessionInfo
	routes  map[string]Route
}

// New builds the router with the application's route table: auth behind
// NoAuthGuard, products and orders behind AuthGuard, and the admin
// dashboard additionally behind RoleGuard with ADMIN required.
func New(session guard.SessionInfo) *Router {
	r := &Router{
		session: session,
		routes:  make(map[string]Route),
	}

	authGuard := guard.AuthGuard{LoginPath: PathAuth}
	noAuthGuard := guard.NoAuthGuard{AdminHome: PathDashboard, UserHome: PathProducts}
	roleGuard := guard.RoleGuard{UnauthorizedPath: PathUnauthorized}

	r.Register(Route{Path: PathAuth, Guards: guard.Chain{noAuthGuard}})
	r.Register(Route{Path: PathProducts, Guards: guard.Chain{authGuard}})
	r.Register(Route{Path: PathOrders, Guards: guard.Chain{authGuard}})
	r.Register(Route{
		Path:   PathDashboard,
		Roles:  []models.Role{models.RoleAdmin},
		Guards: guard.Chain{authGuard, roleGuard},
	})
	r.Register(Route{Path: PathUnauthorized})

	return r
}

func (r *Router) Register(route Route) {
	r.routes[route.Path] = route
}

// Navigate evaluates the requested route's guard chain against current
// auth state. The empty path resolves to the auth route first.
func (r *Router) Navigate(path string) (Result, error) {
	if path == "" {
		path = PathAuth
	}

	route, ok := r.routes[path]
	if !ok {
		return Result{}, fmt.Errorf("no route registered for %q", path)
	}

	decision := route.Guards.Evaluate(guard.Context{
		Session:       r.session,
		Path:          path,
		RequiredRoles: route.Roles,
	})
	if decision.Allowed {
		return Result{Path: path}, nil
	}
	return Result{
		Path:       decision.RedirectTo,
		Redirected: true,
		ReturnURL:  decision.ReturnURL,
	}, nil
}
