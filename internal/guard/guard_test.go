package guard

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/adr1ann32323/restorApp/internal/models"
)

type fakeSession struct {
	authenticated bool
	role          models.Role
}

func (s fakeSession) IsAuthenticated() bool    { return s.authenticated }
func (s fakeSession) CurrentRole() models.Role { return s.role }

func TestAuthGuard(t *testing.T) {
	g := AuthGuard{LoginPath: "/auth"}

	t.Run("authenticated passes", func(t *testing.T) {
		d := g.Evaluate(Context{Session: fakeSession{authenticated: true, role: models.RoleUser}, Path: "/orders"})
		require.True(t, d.Allowed)
	})

	t.Run("anonymous redirects to login with return url", func(t *testing.T) {
		d := g.Evaluate(Context{Session: fakeSession{}, Path: "/orders"})
		require.False(t, d.Allowed)
		require.Equal(t, "/auth", d.RedirectTo)
		require.Equal(t, "/orders", d.ReturnURL)
	})
}

func TestNoAuthGuard(t *testing.T) {
	g := NoAuthGuard{AdminHome: "/admin/dashboard", UserHome: "/products"}

	t.Run("anonymous passes", func(t *testing.T) {
		d := g.Evaluate(Context{Session: fakeSession{}, Path: "/auth"})
		require.True(t, d.Allowed)
	})

	t.Run("admin redirects to dashboard", func(t *testing.T) {
		d := g.Evaluate(Context{Session: fakeSession{authenticated: true, role: models.RoleAdmin}, Path: "/auth"})
		require.False(t, d.Allowed)
		require.Equal(t, "/admin/dashboard", d.RedirectTo)
		require.Empty(t, d.ReturnURL)
	})

	t.Run("user redirects to products", func(t *testing.T) {
		d := g.Evaluate(Context{Session: fakeSession{authenticated: true, role: models.RoleUser}, Path: "/auth"})
		require.False(t, d.Allowed)
		require.Equal(t, "/products", d.RedirectTo)
	})
}

func TestRoleGuard(t *testing.T) {
	g := RoleGuard{UnauthorizedPath: "/unauthorized"}
	admin := []models.Role{models.RoleAdmin}

	t.Run("no required roles allows anyone", func(t *testing.T) {
		d := g.Evaluate(Context{Session: fakeSession{authenticated: true, role: models.RoleUser}})
		require.True(t, d.Allowed)
	})

	t.Run("matching role passes", func(t *testing.T) {
		d := g.Evaluate(Context{
			Session:       fakeSession{authenticated: true, role: models.RoleAdmin},
			RequiredRoles: admin,
		})
		require.True(t, d.Allowed)
	})

	t.Run("wrong role redirects to unauthorized", func(t *testing.T) {
		d := g.Evaluate(Context{
			Session:       fakeSession{authenticated: true, role: models.RoleUser},
			RequiredRoles: admin,
		})
		require.False(t, d.Allowed)
		require.Equal(t, "/unauthorized", d.RedirectTo)
	})
}

// recordingGuard notes whether it ran, to observe chain short-circuiting.
type recordingGuard struct {
	ran      *bool
	decision Decision
}

func (g recordingGuard) Evaluate(Context) Decision {
	*g.ran = true
	return g.decision
}

func TestChainShortCircuits(t *testing.T) {
	var first, second bool
	chain := Chain{
		recordingGuard{ran: &first, decision: Redirect("/auth")},
		recordingGuard{ran: &second, decision: Allow()},
	}

	d := chain.Evaluate(Context{Session: fakeSession{}})

	require.False(t, d.Allowed)
	require.Equal(t, "/auth", d.RedirectTo)
	require.True(t, first)
	require.False(t, second)
}

func TestChainAllAllow(t *testing.T) {
	var first, second bool
	chain := Chain{
		recordingGuard{ran: &first, decision: Allow()},
		recordingGuard{ran: &second, decision: Allow()},
	}

	require.True(t, chain.Evaluate(Context{Session: fakeSession{}}).Allowed)
	require.True(t, first)
	require.True(t, second)
}

func TestEmptyChainAllows(t *testing.T) {
	require.True(t, Chain{}.Evaluate(Context{Session: fakeSession{}}).Allowed)
}
