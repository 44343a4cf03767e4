package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ayush/employee-admin/internal/apperr"
	"github.com/ayush/employee-admin/internal/models"
)

const msgEmployeeDuplicate = "email or mobile number already in use"

var errEmployeeNotFound = apperr.New(apperr.NotFound, "User not found")

// MongoStore handles employee CRUD in MongoDB.
type MongoStore struct {
	col *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{col: db.Collection("employees")}
}

// EnsureIndexes creates the unique indexes backing the email and mobile number
// uniqueness invariant.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "mobile_no", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return fmt.Errorf("mongo employee indexes: %w", err)
	}
	return nil
}

func (s *MongoStore) Insert(ctx context.Context, e *models.Employee) (*models.Employee, error) {
	doc := *e
	doc.ID = primitive.NewObjectID()
	if _, err := s.col.InsertOne(ctx, &doc); err != nil {
		return nil, mongoErr("mongo insert", err)
	}
	return &doc, nil
}

func (s *MongoStore) List(ctx context.Context) ([]models.Employee, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo find: %w", err)
	}
	defer cur.Close(ctx)

	docs := []models.Employee{}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongo decode: %w", err)
	}
	return docs, nil
}

func (s *MongoStore) GetByID(ctx context.Context, id string) (*models.Employee, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errEmployeeNotFound
	}
	var doc models.Employee
	if err := s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, mongoErr("mongo find one", err)
	}
	return &doc, nil
}

// Update replaces the stored record with e and returns the stored result.
func (s *MongoStore) Update(ctx context.Context, e *models.Employee) (*models.Employee, error) {
	opts := options.FindOneAndReplace().SetReturnDocument(options.After)
	var doc models.Employee
	err := s.col.FindOneAndReplace(ctx, bson.M{"_id": e.ID}, e, opts).Decode(&doc)
	if err != nil {
		return nil, mongoErr("mongo replace", err)
	}
	return &doc, nil
}

// Delete removes the record and returns it so callers can release its image.
func (s *MongoStore) Delete(ctx context.Context, id string) (*models.Employee, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errEmployeeNotFound
	}
	var doc models.Employee
	if err := s.col.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, mongoErr("mongo delete", err)
	}
	return &doc, nil
}

func mongoErr(op string, err error) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return errEmployeeNotFound
	case mongo.IsDuplicateKeyError(err):
		return apperr.Wrap(fmt.Errorf("%s: %w", op, err), apperr.Conflict, msgEmployeeDuplicate)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
