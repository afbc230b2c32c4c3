package roster

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/playerhub-go/internal/dependencies/mocks"
	"github.com/mcoot/playerhub-go/internal/model"
	"github.com/mcoot/playerhub-go/internal/services/player"
	"github.com/mcoot/playerhub-go/internal/storage/memory"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	players *player.Controller
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	clk := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.storage = memory.New(clk)
	s.players = player.NewController(s.storage)
	s.service = New(s.players)
	s.ctx = context.Background()
}

func (s *ServiceSuite) importCSV(filename, doc string) ([]*model.Player, error) {
	return s.service.ImportCSV(s.ctx, filename, strings.NewReader(doc))
}

// File type tests

func (s *ServiceSuite) TestImportRejectsNonCSVFilename() {
	_, err := s.importCSV("players.txt", "name\nAlice\n")
	s.ErrorIs(err, ErrNotCSV)

	_, err = s.storage.GetPlayer(s.ctx, 1)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *ServiceSuite) TestImportExtensionCheckIsCaseSensitive() {
	_, err := s.importCSV("players.CSV", "name\nAlice\n")
	s.ErrorIs(err, ErrNotCSV)
}

// Row import tests

func (s *ServiceSuite) TestImportCreatesPlayersFromRows() {
	doc := "name,position,team,age,jersey_number\n" +
		"Alice,Forward,Sharks,25,9\n" +
		"Bob,Guard,Hawks,30,12\n"

	created, err := s.importCSV("players.csv", doc)
	s.Require().NoError(err)
	s.Require().Len(created, 2)

	s.Equal("Alice", created[0].Name)
	s.Equal("Forward", *created[0].Position)
	s.Equal("Sharks", *created[0].Team)
	s.Equal(25, *created[0].Age)
	s.Equal(9, *created[0].JerseyNumber)

	s.Equal("Bob", created[1].Name)
	s.Equal(30, *created[1].Age)

	// Rows are persisted, not just returned
	stored, err := s.players.GetPlayer(s.ctx, created[0].ID)
	s.Require().NoError(err)
	s.Equal("Alice", stored.Name)
}

func (s *ServiceSuite) TestImportTrimsCellWhitespace() {
	created, err := s.importCSV("players.csv", "name,position\n  Alice  ,  Forward  \n")
	s.Require().NoError(err)
	s.Require().Len(created, 1)

	s.Equal("Alice", created[0].Name)
	s.Equal("Forward", *created[0].Position)
}

func (s *ServiceSuite) TestImportSkipsEmptyOptionalFields() {
	created, err := s.importCSV("players.csv", "name,position,team\nAlice,,\n")
	s.Require().NoError(err)
	s.Require().Len(created, 1)

	s.Nil(created[0].Position)
	s.Nil(created[0].Team)
}

func (s *ServiceSuite) TestImportToleratesShortRows() {
	created, err := s.importCSV("players.csv", "name,position,age\nAlice\n")
	s.Require().NoError(err)
	s.Require().Len(created, 1)

	s.Equal("Alice", created[0].Name)
	s.Nil(created[0].Position)
	s.Nil(created[0].Age)
}

// Integer field tests

func (s *ServiceSuite) TestImportDropsUnparseableAge() {
	created, err := s.importCSV("players.csv", "name,age\nBob,notanumber\n")
	s.Require().NoError(err)
	s.Require().Len(created, 1)

	s.Equal("Bob", created[0].Name)
	s.Nil(created[0].Age)
}

func (s *ServiceSuite) TestImportDropsUnparseableJerseyNumber() {
	created, err := s.importCSV("players.csv", "name,jersey_number\nBob,ninety-nine\n")
	s.Require().NoError(err)
	s.Require().Len(created, 1)

	s.Nil(created[0].JerseyNumber)
}

func (s *ServiceSuite) TestImportParsesPaddedIntegers() {
	created, err := s.importCSV("players.csv", "name,age\nBob, 25 \n")
	s.Require().NoError(err)
	s.Require().Len(created, 1)

	s.Equal(25, *created[0].Age)
}

// Abort behaviour tests

func (s *ServiceSuite) TestImportAbortsOnMissingName() {
	doc := "name,position\nAlice,Forward\n,Guard\n"

	created, err := s.importCSV("players.csv", doc)

	var rowErr *RowError
	s.Require().ErrorAs(err, &rowErr)
	s.Equal(2, rowErr.Row)
	s.Equal(ReasonNameRequired, rowErr.Reason)

	// The row before the abort stays committed
	s.Require().Len(created, 1)
	stored, err := s.players.GetPlayer(s.ctx, created[0].ID)
	s.Require().NoError(err)
	s.Equal("Alice", stored.Name)
}

func (s *ServiceSuite) TestImportAbortsOnWhitespaceName() {
	_, err := s.importCSV("players.csv", "name\n   \n")

	var rowErr *RowError
	s.Require().ErrorAs(err, &rowErr)
	s.Equal(1, rowErr.Row)
	s.Equal(ReasonNameRequired, rowErr.Reason)
}

func (s *ServiceSuite) TestImportAbortsOnAbsentNameColumn() {
	_, err := s.importCSV("players.csv", "position,team\nForward,Sharks\n")

	var rowErr *RowError
	s.Require().ErrorAs(err, &rowErr)
	s.Equal(1, rowErr.Row)
}

func (s *ServiceSuite) TestImportStopsAtFirstBadRow() {
	doc := "name\nAlice\n \nCarol\n"

	created, err := s.importCSV("players.csv", doc)

	var rowErr *RowError
	s.Require().ErrorAs(err, &rowErr)
	s.Equal(2, rowErr.Row)

	// Carol is never reached
	s.Len(created, 1)
	players, err := s.storage.ListPlayers(s.ctx, 0, 100)
	s.Require().NoError(err)
	s.Len(players, 1)
}

// Empty document tests

func (s *ServiceSuite) TestImportEmptyDocumentReturnsNoPlayers() {
	created, err := s.importCSV("players.csv", "")
	s.Require().NoError(err)
	s.Empty(created)
}

func (s *ServiceSuite) TestImportHeaderOnlyReturnsNoPlayers() {
	created, err := s.importCSV("players.csv", "name,age\n")
	s.Require().NoError(err)
	s.Empty(created)
}
