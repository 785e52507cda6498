package state

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/adr1ann32323/restorApp/internal/api"
	"github.com/adr1ann32323/restorApp/internal/localstore"
	"github.com/adr1ann32323/restorApp/internal/models"
)

// Auth manages the current session. All mutating operations write through
// to the persistent store synchronously with the in-memory update, so a
// restart restores the last known session.
type Auth struct {
	client  *api.Client
	store   *localstore.Store
	session *Subject[*models.Session]
}

func NewAuth(client *api.Client, store *localstore.Store) *Auth {
	a := &Auth{
		client:  client,
		store:   store,
		session: NewSubject[*models.Session](nil),
	}
	a.restore()
	return a
}

// restore loads the persisted session at startup. A corrupt user record is
// discarded along with the token (fail-open to logged-out, not a crash).
func (a *Auth) restore() {
	token, ok, err := a.store.Get(localstore.KeyToken)
	if err != nil || !ok {
		if err != nil {
			slog.Warn("Failed to read persisted token", "error", err)
		}
		return
	}

	userJSON, ok, err := a.store.Get(localstore.KeyUser)
	if err != nil || !ok {
		if err != nil {
			slog.Warn("Failed to read persisted user", "error", err)
		}
		return
	}

	var user models.User
	if err := json.Unmarshal([]byte(userJSON), &user); err != nil {
		slog.Warn("Persisted user is corrupt, discarding session", "error", err)
		a.clearPersisted()
		return
	}

	a.client.SetToken(token)
	a.session.Publish(&models.Session{Token: token, User: user})
}

// Login authenticates against the backend. On failure nothing is mutated;
// an existing session is left intact.
func (a *Auth) Login(ctx context.Context, email, password string) (*models.Session, error) {
	resp, err := a.client.Login(ctx, models.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	return a.establish(resp)
}

// Register creates a new account server-side and logs it in.
func (a *Auth) Register(ctx context.Context, req models.RegisterRequest) (*models.Session, error) {
	resp, err := a.client.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	return a.establish(resp)
}

func (a *Auth) establish(resp *models.AuthResponse) (*models.Session, error) {
	userJSON, err := json.Marshal(resp.User)
	if err != nil {
		return nil, err
	}
	if err := a.store.Set(localstore.KeyToken, resp.Token); err != nil {
		return nil, err
	}
	if err := a.store.Set(localstore.KeyUser, string(userJSON)); err != nil {
		return nil, err
	}

	a.client.SetToken(resp.Token)
	sess := &models.Session{Token: resp.Token, User: resp.User}
	a.session.Publish(sess)
	return sess, nil
}

// Logout clears the session. It always succeeds, even when nothing was
// logged in; persistence errors are logged, not returned.
func (a *Auth) Logout() {
	a.clearPersisted()
	a.client.SetToken("")
	a.session.Publish(nil)
}

func (a *Auth) clearPersisted() {
	if err := a.store.Delete(localstore.KeyToken); err != nil {
		slog.Warn("Failed to delete persisted token", "error", err)
	}
	if err := a.store.Delete(localstore.KeyUser); err != nil {
		slog.Warn("Failed to delete persisted user", "error", err)
	}
}

// IsAuthenticated reports whether a token is currently held. Token presence
// is treated as sufficient proof of validity; callers wanting more can use
// IsTokenExpired.
func (a *Auth) IsAuthenticated() bool {
	return a.session.Value() != nil
}

// CurrentRole returns the session's role, or "" when logged out.
func (a *Auth) CurrentRole() models.Role {
	sess := a.session.Value()
	if sess == nil {
		return ""
	}
	return sess.User.Role
}

func (a *Auth) CurrentUser() *models.User {
	sess := a.session.Value()
	if sess == nil {
		return nil
	}
	user := sess.User
	return &user
}

func (a *Auth) Token() string {
	sess := a.session.Value()
	if sess == nil {
		return ""
	}
	return sess.Token
}

// IsTokenExpired decodes the token's exp claim and compares it to the
// current time. Any decode failure (malformed token, missing claim) counts
// as expired: fail-closed. The signature is not verified; the client has
// no key and the backend re-checks every request anyway.
func (a *Auth) IsTokenExpired() bool {
	token := a.Token()
	if token == "" {
		return true
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	return exp.Before(time.Now())
}

// Subscribe registers fn for session changes (nil means logged out).
func (a *Auth) Subscribe(fn func(*models.Session)) func() {
	return a.session.Subscribe(fn)
}
