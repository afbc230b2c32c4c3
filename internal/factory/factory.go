package factory

import (
	"context"
	"errors"
	"time"

	"github.com/mcoot/playerhub-go/internal/api/schema"
	"github.com/mcoot/playerhub-go/internal/dependencies/clock"
	"github.com/mcoot/playerhub-go/internal/dependencies/random"
	"github.com/mcoot/playerhub-go/internal/services/auth"
	"github.com/mcoot/playerhub-go/internal/services/player"
	"github.com/mcoot/playerhub-go/internal/services/roster"
	"github.com/mcoot/playerhub-go/internal/services/token"
	"github.com/mcoot/playerhub-go/internal/storage"
	"github.com/mcoot/playerhub-go/internal/storage/memory"
	postgresstorage "github.com/mcoot/playerhub-go/internal/storage/postgres"
	redisstorage "github.com/mcoot/playerhub-go/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory   = "memory"
	StorageTypeRedis    = "redis"
	StorageTypePostgres = "postgres"
)

// Generated signing keys are used when no key is configured
const (
	generatedKeyLength   = 32
	generatedKeyAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// connectTimeout bounds backend connection attempts at startup
const connectTimeout = 5 * time.Second

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	TokenService     *token.Service
	AuthService      *auth.Service
	PlayerController *player.Controller
	RosterService    *roster.Service

	// Request body validation
	Validator *schema.Validator
}

// Config holds configuration for the application factory
type Config struct {
	// TokenConfig holds configuration for the token service (optional)
	// If SigningKey is empty, an ephemeral key is generated; issued tokens
	// will not survive a restart
	TokenConfig token.Config
	// StorageType selects the storage backend ("memory", "redis" or "postgres")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// PostgresConfig holds PostgreSQL connection settings (required if StorageType is "postgres")
	PostgresConfig *postgresstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New(clk)
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig, clk)
		if err != nil {
			return nil, err
		}
		store = redisStore
	case StorageTypePostgres:
		if cfg.PostgresConfig == nil {
			return nil, errors.New("PostgresConfig required when StorageType is postgres")
		}
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()
		postgresStore, err := postgresstorage.New(ctx, *cfg.PostgresConfig)
		if err != nil {
			return nil, err
		}
		if err := postgresStore.EnsureSchema(ctx); err != nil {
			_ = postgresStore.Close()
			return nil, err
		}
		store = postgresStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory', 'redis' or 'postgres'")
	}

	tokenCfg := cfg.TokenConfig
	if tokenCfg.SigningKey == "" {
		tokenCfg.SigningKey = rnd.String(generatedKeyLength, generatedKeyAlphabet)
	}

	return newWithDependencies(store, clk, rnd, tokenCfg)
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, tokenCfg token.Config) (*App, error) {
	validator, err := schema.NewValidator()
	if err != nil {
		return nil, err
	}

	// Create services
	tokenService := token.New(clk, rnd, tokenCfg)
	authService := auth.New(store, tokenService, auth.NewBcryptHasher())
	playerController := player.NewController(store)
	rosterService := roster.New(playerController)

	return &App{
		Storage:          store,
		Clock:            clk,
		Random:           rnd,
		TokenService:     tokenService,
		AuthService:      authService,
		PlayerController: playerController,
		RosterService:    rosterService,
		Validator:        validator,
	}, nil
}
