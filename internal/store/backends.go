package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ayush/employee-admin/internal/models"
)

// CredentialBackend is a credential store that supports seeding.
type CredentialBackend interface {
	FindByUsername(ctx context.Context, username string) (*models.Credential, error)
	Upsert(ctx context.Context, username, passwordHash string) error
}

// ConnectMongo connects and pings MongoDB.
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

// OpenCredentials returns the credential store named by backend. mongoDB is only
// used by the mongo backend and postgresDSN only by the postgres backend. The
// returned close function is never nil.
func OpenCredentials(ctx context.Context, backend string, mongoDB *mongo.Database, postgresDSN string) (CredentialBackend, func(), error) {
	switch backend {
	case "mongo":
		if mongoDB == nil {
			return nil, nil, errors.New("credential backend mongo: no database")
		}
		s := NewMongoCredentialStore(mongoDB)
		if err := s.EnsureIndexes(ctx); err != nil {
			return nil, nil, err
		}
		return s, func() {}, nil
	case "postgres":
		pool, err := pgxpool.New(ctx, postgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("postgres connect: %w", err)
		}
		s := NewPostgresStore(pool)
		if err := s.Migrate(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("postgres migrate: %w", err)
		}
		return s, pool.Close, nil
	case "memory":
		return NewMemoryCredentialStore(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown credential backend %q", backend)
	}
}

// SetPassword hashes password with bcrypt and stores it for username, creating the
// credential when it does not exist yet.
func SetPassword(ctx context.Context, creds CredentialBackend, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return errors.New("username must not be empty")
	}
	if password == "" {
		return errors.New("password must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := creds.Upsert(ctx, username, string(hash)); err != nil {
		return fmt.Errorf("save credential: %w", err)
	}
	return nil
}
