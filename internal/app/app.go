// Package app exposes the application-facing service surface: account
// lifecycle plus per-session board registries. The presentation layer,
// whatever it is, talks to this and nothing deeper.
package app

import (
	"context"

	"boardkeep/internal/account"
	"boardkeep/internal/board/service"
	"boardkeep/internal/board/store"
)

// HealthFunc reports the health of one wired collaborator.
type HealthFunc func(ctx context.Context) error

// App bundles the wired services behind one entry point. There is no
// ambient "current user": every call that needs an identity takes the
// session explicitly.
type App struct {
	accounts     *account.Service
	gateway      store.Gateway
	registryOpts []service.Option
	checks       []HealthFunc
}

func New(accounts *account.Service, gateway store.Gateway, registryOpts ...service.Option) *App {
	return &App{accounts: accounts, gateway: gateway, registryOpts: registryOpts}
}

// AddHealthCheck registers a collaborator probe for Health.
func (a *App) AddHealthCheck(check HealthFunc) {
	a.checks = append(a.checks, check)
}

// Register creates a new identity.
func (a *App) Register(ctx context.Context, email, credential string) (account.Identity, error) {
	return a.accounts.Register(ctx, email, credential)
}

// Login authenticates and opens a session.
func (a *App) Login(ctx context.Context, email, credential string) (account.Session, error) {
	return a.accounts.Login(ctx, email, credential)
}

// Logout closes a session. Unknown sessions are a no-op.
func (a *App) Logout(ctx context.Context, sessionID string) error {
	return a.accounts.Logout(ctx, sessionID)
}

// OpenRegistry resolves a session to its owner and returns that owner's
// hydrated board registry. The registry is bound to the session's single
// interactive use; callers must not share it across goroutines.
func (a *App) OpenRegistry(ctx context.Context, sessionID string) (*service.Registry, error) {
	session, err := a.accounts.Session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	registry := service.NewRegistry(session.Email, a.gateway, a.registryOpts...)
	if err := registry.Hydrate(ctx); err != nil {
		return nil, err
	}
	return registry, nil
}

// Health runs every registered collaborator probe and returns the first
// failure.
func (a *App) Health(ctx context.Context) error {
	for _, check := range a.checks {
		if err := check(ctx); err != nil {
			return err
		}
	}
	return nil
}
