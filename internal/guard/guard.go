// Package guard implements the route guards: stateless predicates
// evaluated synchronously before a navigation completes. Guards compose in
// a chain; the first one to deny wins and no later guard runs.
package guard

import (
	"github.com/adr1ann32323/restorApp/internal/models"
)

// SessionInfo is the slice of auth state the guards consult.
type SessionInfo interface {
	IsAuthenticated() bool
	CurrentRole() models.Role
}

// Context describes one navigation attempt. Each attempt independently
// re-evaluates all applicable guards against current auth state; route
// entry is a single-shot decision, not a persistent state machine.
type Context struct {
	Session SessionInfo
	// Path is the originally requested path.
	Path string
	// RequiredRoles comes from the route's static configuration.
	RequiredRoles []models.Role
}

// Decision is the outcome of a guard evaluation: allow, or redirect to
// another path. ReturnURL carries the originally requested path when a
// guard wants the target remembered (login redirects).
type Decision struct {
	Allowed    bool
	RedirectTo string
	ReturnURL  string
}

func Allow() Decision {
	return Decision{Allowed: true}
}

func Redirect(path string) Decision {
	return Decision{RedirectTo: path}
}

type Guard interface {
	Evaluate(Context) Decision
}

// AuthGuard allows only authenticated sessions; otherwise it redirects to
// the login route, recording the requested path as the return target.
type AuthGuard struct {
	LoginPath string
}

func (g AuthGuard) Evaluate(ctx Context) Decision {
	if ctx.Session.IsAuthenticated() {
		return Allow()
	}
	d := Redirect(g.LoginPath)
	d.ReturnURL = ctx.Path
	return d
}

// NoAuthGuard protects routes that only make sense logged out (login,
// register). An authenticated session is redirected by role: ADMIN to the
// dashboard, everyone else to the default landing route.
type NoAuthGuard struct {
	AdminHome string
	UserHome  string
}

func (g NoAuthGuard) Evaluate(ctx Context) Decision {
	if !ctx.Session.IsAuthenticated() {
		return Allow()
	}
	if ctx.Session.CurrentRole() == models.RoleAdmin {
		return Redirect(g.AdminHome)
	}
	return Redirect(g.UserHome)
}

// RoleGuard checks the route's required-roles list. An empty list allows
// unconditionally; otherwise the current role must be a member, or the
// navigation is redirected to the unauthorized route.
type RoleGuard struct {
	UnauthorizedPath string
}

func (g RoleGuard) Evaluate(ctx Context) Decision {
	if len(ctx.RequiredRoles) == 0 {
		return Allow()
	}
	role := ctx.Session.CurrentRole()
	for _, allowed := range ctx.RequiredRoles {
		if role == allowed {
			return Allow()
		}
	}
	return Redirect(g.UnauthorizedPath)
}

// Chain evaluates guards in order with short-circuit on first denial.
type Chain []Guard

func (c Chain) Evaluate(ctx Context) Decision {
	for _, g := range c {
		if d := g.Evaluate(ctx); !d.Allowed {
			return d
		}
	}
	return Allow()
}
