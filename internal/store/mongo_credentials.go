package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ayush/employee-admin/internal/apperr"
	"github.com/ayush/employee-admin/internal/models"
)

var errCredentialNotFound = apperr.New(apperr.NotFound, "credential not found")

// MongoCredentialStore keeps login accounts in the "logins" collection.
type MongoCredentialStore struct {
	col *mongo.Collection
}

func NewMongoCredentialStore(db *mongo.Database) *MongoCredentialStore {
	return &MongoCredentialStore{col: db.Collection("logins")}
}

func (s *MongoCredentialStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("mongo login indexes: %w", err)
	}
	return nil
}

func (s *MongoCredentialStore) FindByUsername(ctx context.Context, username string) (*models.Credential, error) {
	var c models.Credential
	err := s.col.FindOne(ctx, bson.M{"username": username}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errCredentialNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mongo find login: %w", err)
	}
	return &c, nil
}

// Upsert sets the password hash of username, creating the account when missing.
func (s *MongoCredentialStore) Upsert(ctx context.Context, username, passwordHash string) error {
	_, err := s.col.UpdateOne(ctx,
		bson.M{"username": username},
		bson.M{
			"$set":         bson.M{"password": passwordHash},
			"$setOnInsert": bson.M{"created_at": time.Now()},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("mongo upsert login: %w", err)
	}
	return nil
}
