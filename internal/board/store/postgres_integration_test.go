//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"boardkeep/internal/board/models"
	"boardkeep/internal/board/store"
	"boardkeep/pkg/platform/sentinel"
	"boardkeep/pkg/testutil/containers"
)

type PostgresGatewaySuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	gw       *store.Postgres
	ctx      context.Context
}

func TestPostgresGatewaySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresGatewaySuite))
}

func (s *PostgresGatewaySuite) SetupSuite() {
	s.ctx = context.Background()
	s.postgres = containers.NewPostgresContainer(s.T())
	s.gw = store.NewPostgres(s.postgres.DB)
	s.Require().NoError(s.gw.EnsureSchema(s.ctx))
}

func (s *PostgresGatewaySuite) SetupTest() {
	// item_shares cascades from items.
	s.Require().NoError(s.postgres.TruncateTables(s.ctx, "items", "boards"))
}

func (s *PostgresGatewaySuite) newItem(title string, board models.Name) *models.Item {
	item := models.NewItem(title, "some notes", time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), "owner@x.com")
	item.Board = board
	item.Color = models.Color{R: 10, G: 20, B: 30}
	item.URL = "https://example.com"
	return item
}

func (s *PostgresGatewaySuite) TestInsertLoadRoundTrip() {
	original := s.newItem("write report", models.NameWork)
	id, err := s.gw.InsertItem(s.ctx, original)
	s.Require().NoError(err)
	s.NotZero(id)

	items, err := s.gw.LoadItems(s.ctx, models.NameWork, "owner@x.com")
	s.Require().NoError(err)
	s.Require().Len(items, 1)

	loaded := items[0]
	s.Equal(id, loaded.ID)
	s.Equal("write report", loaded.Title)
	s.Equal("some notes", loaded.Description)
	s.True(original.DueDate.Equal(loaded.DueDate))
	s.Equal(models.Color{R: 10, G: 20, B: 30}, loaded.Color)
	s.Equal("https://example.com", loaded.URL)
	s.Equal(models.NameWork, loaded.Board)
	s.Equal("owner@x.com", loaded.Author)
}

func (s *PostgresGatewaySuite) TestInsertedIDsIncrease() {
	first, err := s.gw.InsertItem(s.ctx, s.newItem("a", models.NameWork))
	s.Require().NoError(err)
	second, err := s.gw.InsertItem(s.ctx, s.newItem("b", models.NameWork))
	s.Require().NoError(err)
	s.Greater(second, first)
}

func (s *PostgresGatewaySuite) TestUpdateMovesBoardAssociation() {
	item := s.newItem("movable", models.NameWork)
	id, err := s.gw.InsertItem(s.ctx, item)
	s.Require().NoError(err)
	item.ID = id

	item.Board = models.NameLeisure
	item.Done = true
	s.Require().NoError(s.gw.UpdateItem(s.ctx, item))

	work, err := s.gw.LoadItems(s.ctx, models.NameWork, "owner@x.com")
	s.Require().NoError(err)
	s.Empty(work)

	leisure, err := s.gw.LoadItems(s.ctx, models.NameLeisure, "owner@x.com")
	s.Require().NoError(err)
	s.Require().Len(leisure, 1)
	s.Equal(id, leisure[0].ID)
	s.True(leisure[0].Done)
}

func (s *PostgresGatewaySuite) TestUpdateUnknownItem() {
	item := s.newItem("ghost", models.NameWork)
	item.ID = 404
	s.Require().ErrorIs(s.gw.UpdateItem(s.ctx, item), sentinel.ErrNotFound)
}

func (s *PostgresGatewaySuite) TestDeleteCascadesSharingEdges() {
	id, err := s.gw.InsertItem(s.ctx, s.newItem("shared", models.NameWork))
	s.Require().NoError(err)
	s.Require().NoError(s.gw.AddSharingEdge(s.ctx, id, "friend@x.com"))

	s.Require().NoError(s.gw.DeleteItem(s.ctx, id))

	var count int
	err = s.postgres.DB.QueryRowContext(s.ctx,
		"SELECT COUNT(*) FROM item_shares WHERE item_id = $1", id).Scan(&count)
	s.Require().NoError(err)
	s.Zero(count)
}

func (s *PostgresGatewaySuite) TestSharingEdgesAreIdempotent() {
	id, err := s.gw.InsertItem(s.ctx, s.newItem("shared", models.NameWork))
	s.Require().NoError(err)

	s.Require().NoError(s.gw.AddSharingEdge(s.ctx, id, "friend@x.com"))
	s.Require().NoError(s.gw.AddSharingEdge(s.ctx, id, "friend@x.com"))

	members, err := s.gw.LoadSharing(s.ctx, id)
	s.Require().NoError(err)
	s.Len(members, 1)

	s.Require().NoError(s.gw.RemoveSharingEdge(s.ctx, id, "friend@x.com"))
	s.Require().NoError(s.gw.RemoveSharingEdge(s.ctx, id, "friend@x.com"))

	members, err = s.gw.LoadSharing(s.ctx, id)
	s.Require().NoError(err)
	s.Empty(members)
}

func (s *PostgresGatewaySuite) TestUpsertBoard() {
	board := models.NewBoard(models.NameSchool, "owner@x.com")
	board.SetDescription("exam prep")
	s.Require().NoError(s.gw.UpsertBoard(s.ctx, board))

	board.SetDescription("all done")
	s.Require().NoError(s.gw.UpsertBoard(s.ctx, board))

	records, err := s.gw.LoadBoards(s.ctx, "owner@x.com")
	s.Require().NoError(err)
	s.Require().Len(records, 1)
	s.Equal(models.NameSchool, records[0].Name)
	s.Equal("all done", records[0].Description)
}

func (s *PostgresGatewaySuite) TestNullDueDateRoundTrip() {
	item := s.newItem("no due date", models.NameWork)
	item.DueDate = time.Time{}
	_, err := s.gw.InsertItem(s.ctx, item)
	s.Require().NoError(err)

	items, err := s.gw.LoadItems(s.ctx, models.NameWork, "owner@x.com")
	s.Require().NoError(err)
	s.Require().Len(items, 1)
	s.True(items[0].DueDate.IsZero())
}
