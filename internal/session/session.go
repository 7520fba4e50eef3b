// Package session models the client's login state and acquires it.
package session

import (
	"context"
	"errors"
	"log/slog"
)

// ErrNotAuthenticated is returned when an authorized call is attempted
// without a token.
var ErrNotAuthenticated = errors.New("not logged in (missing token)")

// Session is either unauthenticated or holds a bearer token.
// The zero value is Unauthenticated.
type Session struct {
	token string
}

// Unauthenticated is the session before (or after a failed) login.
var Unauthenticated = Session{}

// Authenticated returns a session carrying token. An empty token yields
// Unauthenticated.
func Authenticated(token string) Session {
	return Session{token: token}
}

// Token returns the bearer token and whether one is present.
func (s Session) Token() (string, bool) {
	return s.token, s.token != ""
}

// IsAuthenticated reports whether authorized calls may be made.
func (s Session) IsAuthenticated() bool {
	return s.token != ""
}

// String never exposes the token.
func (s Session) String() string {
	if s.IsAuthenticated() {
		return "authenticated"
	}
	return "unauthenticated"
}

// LogValue keeps tokens out of structured logs.
func (s Session) LogValue() slog.Value {
	return slog.StringValue(s.String())
}

// TokenIssuer performs the unauthenticated login call.
type TokenIssuer interface {
	Login(ctx context.Context) (string, error)
}

// Acquirer obtains a session once. There is no re-acquisition path.
type Acquirer struct {
	issuer TokenIssuer
	logger *slog.Logger
}

// NewAcquirer creates an Acquirer.
func NewAcquirer(issuer TokenIssuer, logger *slog.Logger) *Acquirer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Acquirer{
		issuer: issuer,
		logger: logger,
	}
}

// Acquire issues the login request. On any failure it returns
// Unauthenticated together with the error; callers treat the error as
// informational and render the unauthenticated state.
func (a *Acquirer) Acquire(ctx context.Context) (Session, error) {
	token, err := a.issuer.Login(ctx)
	if err != nil {
		a.logger.Warn("login failed", slog.String("error", err.Error()))
		return Unauthenticated, err
	}

	a.logger.Info("session acquired")
	return Authenticated(token), nil
}
