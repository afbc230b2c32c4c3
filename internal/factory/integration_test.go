package factory

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/playerhub-go/internal/model"
	"github.com/mcoot/playerhub-go/internal/services/token"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	app, err := NewTestApp()
	s.Require().NoError(err)
	s.app = app
	s.ctx = context.Background()
}

// Test: Complete auth flow from signup to authenticated request
func (s *IntegrationSuite) TestSignupLoginAuthenticateFlow() {
	// Step 1: Sign up
	user, err := s.app.AuthService.Signup(s.ctx, "alice@example.com", "alice", "secret123")
	s.Require().NoError(err)
	s.Equal("alice", user.Username)
	s.True(user.IsActive)

	// Step 2: Log in for a token
	tok, err := s.app.AuthService.Login(s.ctx, "alice", "secret123")
	s.Require().NoError(err)
	s.NotEmpty(tok)

	// Step 3: The token resolves back to the user
	authed, err := s.app.AuthService.Authenticate(s.ctx, tok)
	s.Require().NoError(err)
	s.Equal(user.ID, authed.ID)
}

// Test: Tokens stop working once their lifetime passes
func (s *IntegrationSuite) TestTokenExpiresAfterLifetime() {
	_, err := s.app.AuthService.Signup(s.ctx, "alice@example.com", "alice", "secret123")
	s.Require().NoError(err)

	tok, err := s.app.AuthService.Login(s.ctx, "alice", "secret123")
	s.Require().NoError(err)

	// Still valid just before expiry
	s.app.MockClock.Advance(29 * time.Minute)
	_, err = s.app.AuthService.Authenticate(s.ctx, tok)
	s.Require().NoError(err)

	// Expired past the 30 minute lifetime
	s.app.MockClock.Advance(2 * time.Minute)
	_, err = s.app.AuthService.Authenticate(s.ctx, tok)
	s.ErrorIs(err, token.ErrInvalidToken)
}

// Test: CSV import lands in the same store the player controller reads
func (s *IntegrationSuite) TestCSVImportVisibleToPlayerQueries() {
	doc := strings.Join([]string{
		"name,position,team,age,jersey_number",
		"Alice,Forward,Sharks,25,9",
		"Bob,Goalkeeper,Hawks,31,1",
	}, "\n")

	created, err := s.app.RosterService.ImportCSV(s.ctx, "roster.csv", strings.NewReader(doc))
	s.Require().NoError(err)
	s.Require().Len(created, 2)

	// Imported players are listable
	players, err := s.app.PlayerController.ListPlayers(s.ctx, 0, 100)
	s.Require().NoError(err)
	s.Len(players, 2)

	// And searchable
	found, err := s.app.PlayerController.SearchPlayers(s.ctx, "ali", 0, 100)
	s.Require().NoError(err)
	s.Require().Len(found, 1)
	s.Equal("Alice", found[0].Name)
}

// Test: An aborted import keeps the rows inserted before the failure
func (s *IntegrationSuite) TestAbortedImportKeepsEarlierRows() {
	doc := strings.Join([]string{
		"name,age",
		"Alice,25",
		",31",
		"Carol,28",
	}, "\n")

	_, err := s.app.RosterService.ImportCSV(s.ctx, "roster.csv", strings.NewReader(doc))
	s.Require().Error(err)

	players, err := s.app.PlayerController.ListPlayers(s.ctx, 0, 100)
	s.Require().NoError(err)
	s.Require().Len(players, 1)
	s.Equal("Alice", players[0].Name)
}

// Test: Player lifecycle through create, update and delete
func (s *IntegrationSuite) TestPlayerLifecycle() {
	created, err := s.app.PlayerController.CreatePlayer(s.ctx, &model.Player{
		Name: "Alice",
	})
	s.Require().NoError(err)

	// Update stamps updated_at with the wired clock
	s.app.MockClock.Advance(time.Hour)
	team := "Sharks"
	updated, err := s.app.PlayerController.UpdatePlayer(s.ctx, created.ID, model.PlayerUpdate{
		Team: &team,
	})
	s.Require().NoError(err)
	s.Require().NotNil(updated.UpdatedAt)
	s.Equal(s.app.MockClock.Now(), *updated.UpdatedAt)

	// Delete removes the record
	err = s.app.PlayerController.DeletePlayer(s.ctx, created.ID)
	s.Require().NoError(err)

	_, err = s.app.PlayerController.GetPlayer(s.ctx, created.ID)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Test: Default factory config builds a working memory-backed app
func (s *IntegrationSuite) TestDefaultConfigBuildsMemoryApp() {
	app, err := New(Config{})
	s.Require().NoError(err)

	user, err := app.AuthService.Signup(s.ctx, "bob@example.com", "bob", "secret123")
	s.Require().NoError(err)

	tok, err := app.AuthService.Login(s.ctx, "bob", "secret123")
	s.Require().NoError(err)

	authed, err := app.AuthService.Authenticate(s.ctx, tok)
	s.Require().NoError(err)
	s.Equal(user.ID, authed.ID)
}

// Test: Unknown storage type is rejected
func (s *IntegrationSuite) TestInvalidStorageTypeRejected() {
	_, err := New(Config{StorageType: "cassandra"})
	s.Error(err)
}

// Test: Redis storage type requires a config
func (s *IntegrationSuite) TestRedisStorageRequiresConfig() {
	_, err := New(Config{StorageType: StorageTypeRedis})
	s.Error(err)
}

// Test: Postgres storage type requires a config
func (s *IntegrationSuite) TestPostgresStorageRequiresConfig() {
	_, err := New(Config{StorageType: StorageTypePostgres})
	s.Error(err)
}
