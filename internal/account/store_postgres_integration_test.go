//go:build integration

package account_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"boardkeep/internal/account"
	"boardkeep/pkg/platform/sentinel"
	"boardkeep/pkg/testutil/containers"
)

type PostgresUserStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *account.PostgresUserStore
	ctx      context.Context
}

func TestPostgresUserStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresUserStoreSuite))
}

func (s *PostgresUserStoreSuite) SetupSuite() {
	s.ctx = context.Background()
	s.postgres = containers.NewPostgresContainer(s.T())
	s.store = account.NewPostgresUserStore(s.postgres.DB)
	s.Require().NoError(s.store.EnsureSchema(s.ctx))
}

func (s *PostgresUserStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(s.ctx, "users"))
}

func (s *PostgresUserStoreSuite) TestCreateAndFind() {
	registered := time.Date(2026, 8, 1, 10, 30, 0, 0, time.UTC)
	identity := account.Identity{
		Email:          "ada@example.com",
		CredentialHash: "$2a$10$abcdefghijklmnopqrstuv",
		RegisteredAt:   registered,
	}
	s.Require().NoError(s.store.Create(s.ctx, identity))

	found, err := s.store.FindByEmail(s.ctx, "ada@example.com")
	s.Require().NoError(err)
	s.Equal(identity.Email, found.Email)
	s.Equal(identity.CredentialHash, found.CredentialHash)
	s.True(registered.Equal(found.RegisteredAt))
}

func (s *PostgresUserStoreSuite) TestCreateDuplicateEmail() {
	identity := account.Identity{
		Email:          "ada@example.com",
		CredentialHash: "hash-one",
		RegisteredAt:   time.Now().UTC(),
	}
	s.Require().NoError(s.store.Create(s.ctx, identity))

	identity.CredentialHash = "hash-two"
	s.Require().ErrorIs(s.store.Create(s.ctx, identity), sentinel.ErrConflict)

	// The original row survives.
	found, err := s.store.FindByEmail(s.ctx, "ada@example.com")
	s.Require().NoError(err)
	s.Equal("hash-one", found.CredentialHash)
}

func (s *PostgresUserStoreSuite) TestFindUnknownEmail() {
	_, err := s.store.FindByEmail(s.ctx, "nobody@example.com")
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}
