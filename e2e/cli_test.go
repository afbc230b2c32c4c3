package e2e_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/playerhub-go/internal/api"
	"github.com/mcoot/playerhub-go/internal/factory"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
	tokenFile  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(projectRoot, "bin", "playerctl-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/playerctl")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	// Create temp token file
	tokenFile := filepath.Join(t.TempDir(), "token")

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
		tokenFile:  tokenFile,
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token-file", r.tokenFile,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func (r *cliRunner) runWithToken(token string, args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token", token,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// testServer manages a real HTTP server for e2e tests
type testServer struct {
	server   *http.Server
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	// Create application
	app, err := factory.New(factory.Config{})
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	router := api.NewRouter(api.RouterConfig{
		Logger:           logger,
		AuthService:      app.AuthService,
		PlayerController: app.PlayerController,
		RosterService:    app.RosterService,
		Validator:        app.Validator,
	})

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server
	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	// Wait for server to be ready
	serverURL := "http://" + addr
	waitForServer(t, serverURL+"/api/v1/health")

	return &testServer{
		server: server,
		addr:   serverURL,
		shutdown: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(ctx)
		},
	}
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

// Response types for JSON parsing
type userResponse struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	IsActive bool   `json:"is_active"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type playerResponse struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Position     *string `json:"position"`
	Team         *string `json:"team"`
	Age          *int    `json:"age"`
	JerseyNumber *int    `json:"jersey_number"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type healthResponse struct {
	Status string `json:"status"`
}

// signupAndLogin creates an account and logs in, persisting the token
// to the runner's token file
func signupAndLogin(t *testing.T, cli *cliRunner, username string) {
	t.Helper()

	output, err := cli.run("auth", "signup",
		"--email", username+"@example.com",
		"--user", username,
		"--pass", "secret123")
	require.NoError(t, err, "output: %s", output)

	output, err = cli.run("auth", "login", "--user", username, "--pass", "secret123")
	require.NoError(t, err, "output: %s", output)
}

// Tests

func TestCLI_HealthCheck(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("health")
	require.NoError(t, err, "output: %s", output)

	var resp healthResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestCLI_AuthCommands(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Signup
	output, err := cli.run("auth", "signup",
		"--email", "alice@example.com",
		"--user", "alice",
		"--pass", "secret123")
	require.NoError(t, err, "output: %s", output)

	var user userResponse
	require.NoError(t, json.Unmarshal([]byte(output), &user))
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.True(t, user.IsActive)

	// Login saves the token to the token file
	output, err = cli.run("auth", "login", "--user", "alice", "--pass", "secret123")
	require.NoError(t, err, "output: %s", output)

	var token tokenResponse
	require.NoError(t, json.Unmarshal([]byte(output), &token))
	assert.NotEmpty(t, token.AccessToken)
	assert.Equal(t, "bearer", token.TokenType)

	saved, err := os.ReadFile(cli.tokenFile)
	require.NoError(t, err)
	assert.Equal(t, token.AccessToken, string(saved))

	// Logout acknowledges and clears the stored token
	output, err = cli.run("auth", "logout")
	require.NoError(t, err, "output: %s", output)

	var msg messageResponse
	require.NoError(t, json.Unmarshal([]byte(output), &msg))
	assert.Equal(t, "Successfully logged out", msg.Message)

	_, err = os.Stat(cli.tokenFile)
	assert.True(t, os.IsNotExist(err), "token file should be removed after logout")
}

func TestCLI_PlayerCommands(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)
	signupAndLogin(t, cli, "alice")

	// Create
	output, err := cli.run("player", "create",
		"--name", "Lionel",
		"--position", "Forward",
		"--team", "Sharks",
		"--age", "25",
		"--jersey", "10")
	require.NoError(t, err, "output: %s", output)

	var created playerResponse
	require.NoError(t, json.Unmarshal([]byte(output), &created))
	assert.Equal(t, "Lionel", created.Name)
	require.NotNil(t, created.Position)
	assert.Equal(t, "Forward", *created.Position)
	require.NotNil(t, created.Age)
	assert.Equal(t, 25, *created.Age)
	id := fmt.Sprintf("%d", created.ID)

	// Get
	output, err = cli.run("player", "get", id)
	require.NoError(t, err, "output: %s", output)

	var got playerResponse
	require.NoError(t, json.Unmarshal([]byte(output), &got))
	assert.Equal(t, created.ID, got.ID)

	// List
	output, err = cli.run("player", "list")
	require.NoError(t, err, "output: %s", output)

	var players []playerResponse
	require.NoError(t, json.Unmarshal([]byte(output), &players))
	assert.Len(t, players, 1)

	// Update a single field
	output, err = cli.run("player", "update", id, "--team", "Hawks")
	require.NoError(t, err, "output: %s", output)

	var updated playerResponse
	require.NoError(t, json.Unmarshal([]byte(output), &updated))
	assert.Equal(t, "Lionel", updated.Name)
	require.NotNil(t, updated.Team)
	assert.Equal(t, "Hawks", *updated.Team)

	// Delete
	output, err = cli.run("player", "delete", id)
	require.NoError(t, err, "output: %s", output)

	var msg messageResponse
	require.NoError(t, json.Unmarshal([]byte(output), &msg))
	assert.Equal(t, "Player deleted successfully", msg.Message)

	// Gone now
	output, err = cli.run("player", "get", id)
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "not found")
}

func TestCLI_SearchCommand(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)
	signupAndLogin(t, cli, "alice")

	for _, name := range []string{"Alice", "Alicia", "Bob"} {
		output, err := cli.run("player", "create", "--name", name)
		require.NoError(t, err, "output: %s", output)
	}

	output, err := cli.run("player", "search", "ali")
	require.NoError(t, err, "output: %s", output)

	var players []playerResponse
	require.NoError(t, json.Unmarshal([]byte(output), &players))
	require.Len(t, players, 2)
	assert.Equal(t, "Alice", players[0].Name)
	assert.Equal(t, "Alicia", players[1].Name)

	// No matches is an error
	output, err = cli.run("player", "search", "zoe")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "no players found")
}

func TestCLI_RosterImport(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)
	signupAndLogin(t, cli, "alice")

	// Write a roster file to import
	csvPath := filepath.Join(t.TempDir(), "roster.csv")
	doc := "name,position,team,age,jersey_number\n" +
		"Lionel,Forward,Sharks,25,10\n" +
		"Marta,Midfielder,Hawks,31,7\n"
	require.NoError(t, os.WriteFile(csvPath, []byte(doc), 0600))

	output, err := cli.run("roster", "import", csvPath)
	require.NoError(t, err, "output: %s", output)

	var imported []playerResponse
	require.NoError(t, json.Unmarshal([]byte(output), &imported))
	require.Len(t, imported, 2)
	assert.Equal(t, "Lionel", imported[0].Name)
	assert.Equal(t, "Marta", imported[1].Name)

	// Imported players are visible to list
	output, err = cli.run("player", "list")
	require.NoError(t, err, "output: %s", output)

	var players []playerResponse
	require.NoError(t, json.Unmarshal([]byte(output), &players))
	assert.Len(t, players, 2)
}

func TestCLI_RosterImportRejectsNonCSV(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)
	signupAndLogin(t, cli, "alice")

	txtPath := filepath.Join(t.TempDir(), "roster.txt")
	require.NoError(t, os.WriteFile(txtPath, []byte("name\nLionel\n"), 0600))

	output, err := cli.run("roster", "import", txtPath)
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "only csv files are allowed")
}

func TestCLI_ErrorHandling(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// List players without auth
	output, err := cli.run("player", "list")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "not authenticated")

	// Duplicate signup
	output, err = cli.run("auth", "signup",
		"--email", "alice@example.com", "--user", "alice", "--pass", "secret123")
	require.NoError(t, err, "output: %s", output)

	output, err = cli.run("auth", "signup",
		"--email", "other@example.com", "--user", "alice", "--pass", "secret123")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "already registered")

	// Bad credentials
	output, err = cli.run("auth", "login", "--user", "alice", "--pass", "wrong")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "incorrect username or password")
}
