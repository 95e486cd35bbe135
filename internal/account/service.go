package account

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"boardkeep/internal/audit"
	"boardkeep/internal/platform/metrics"
	derrors "boardkeep/pkg/domain-errors"
	"boardkeep/pkg/email"
	"boardkeep/pkg/platform/sentinel"
)

// Service owns registration, login and session lifecycle. Credentials are
// compared via bcrypt; there is deliberately no richer auth mechanism here.
type Service struct {
	users    UserStore
	sessions SessionStore
	logger   *slog.Logger
	audit    audit.Publisher
	metrics  *metrics.Metrics
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithAuditPublisher(publisher audit.Publisher) Option {
	return func(s *Service) { s.audit = publisher }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func NewService(users UserStore, sessions SessionStore, opts ...Option) *Service {
	s := &Service{users: users, sessions: sessions}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates a new identity. The email is normalized before it
// becomes a key; a taken address fails with CodeConflict.
func (s *Service) Register(ctx context.Context, addr, credential string) (Identity, error) {
	addr = email.Normalize(addr)
	if err := email.Validate(addr); err != nil {
		return Identity{}, err
	}
	if credential == "" {
		return Identity{}, derrors.New(derrors.CodeValidation, "credential must not be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(credential), bcrypt.DefaultCost)
	if err != nil {
		return Identity{}, derrors.Wrap(err, derrors.CodeInternal, "hash credential")
	}

	identity := Identity{
		Email:          addr,
		CredentialHash: string(hash),
		RegisteredAt:   time.Now().UTC(),
	}
	if err := s.users.Create(ctx, identity); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return Identity{}, derrors.New(derrors.CodeConflict, "email already registered")
		}
		s.metrics.RecordStorageFailure()
		return Identity{}, derrors.Wrap(err, derrors.CodeStorage, "store identity")
	}

	s.metrics.RecordUserRegistered()
	s.emit(ctx, audit.Event{Action: audit.ActionUserRegistered, Owner: addr, Email: addr})
	return identity, nil
}

// Login checks the credential and issues a session. Unknown addresses and
// bad credentials fail identically so the surface cannot be probed for
// registered emails.
func (s *Service) Login(ctx context.Context, addr, credential string) (Session, error) {
	addr = email.Normalize(addr)

	identity, err := s.users.FindByEmail(ctx, addr)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.metrics.RecordLogin("denied")
			s.emit(ctx, audit.Event{Action: audit.ActionLoginFailed, Owner: addr})
			return Session{}, derrors.New(derrors.CodeUnauthorized, "invalid email or credential")
		}
		s.metrics.RecordStorageFailure()
		return Session{}, derrors.Wrap(err, derrors.CodeStorage, "load identity")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(identity.CredentialHash), []byte(credential)); err != nil {
		s.metrics.RecordLogin("denied")
		s.emit(ctx, audit.Event{Action: audit.ActionLoginFailed, Owner: addr})
		return Session{}, derrors.New(derrors.CodeUnauthorized, "invalid email or credential")
	}

	session := Session{
		ID:        uuid.NewString(),
		Email:     identity.Email,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		s.metrics.RecordStorageFailure()
		return Session{}, derrors.Wrap(err, derrors.CodeStorage, "save session")
	}

	s.metrics.RecordLogin("granted")
	s.emit(ctx, audit.Event{Action: audit.ActionLoginSucceeded, Owner: addr})
	return session, nil
}

// Session resolves a session id back to the logged-in identity's session.
func (s *Service) Session(ctx context.Context, id string) (Session, error) {
	session, err := s.sessions.Find(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return Session{}, derrors.New(derrors.CodeUnauthorized, "session not found")
		}
		return Session{}, derrors.Wrap(err, derrors.CodeStorage, "load session")
	}
	return session, nil
}

// Logout deletes a session. Logging out an already-expired session is a
// no-op, not an error.
func (s *Service) Logout(ctx context.Context, id string) error {
	session, err := s.sessions.Find(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil
		}
		return derrors.Wrap(err, derrors.CodeStorage, "load session")
	}
	if err := s.sessions.Delete(ctx, id); err != nil {
		return derrors.Wrap(err, derrors.CodeStorage, "delete session")
	}
	s.emit(ctx, audit.Event{Action: audit.ActionLogout, Owner: session.Email})
	return nil
}

func (s *Service) emit(ctx context.Context, event audit.Event) {
	if s.logger != nil {
		s.logger.InfoContext(ctx, string(event.Action), "owner", event.Owner, "log_type", "audit")
	}
	if s.audit == nil {
		return
	}
	if err := s.audit.Emit(ctx, event); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "audit emit failed", "error", err)
	}
}
