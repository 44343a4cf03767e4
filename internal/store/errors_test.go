package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ayush/employee-admin/internal/apperr"
)

func TestMongoErr(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind apperr.Kind
		msg  string
	}{
		{
			name: "duplicate on insert",
			err:  mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key"}}},
			kind: apperr.Conflict,
			msg:  msgEmployeeDuplicate,
		},
		{
			name: "duplicate on replace",
			err:  mongo.CommandError{Code: 11000, Message: "E11000 duplicate key"},
			kind: apperr.Conflict,
			msg:  msgEmployeeDuplicate,
		},
		{
			name: "no documents",
			err:  mongo.ErrNoDocuments,
			kind: apperr.NotFound,
			msg:  "User not found",
		},
		{
			name: "other write error",
			err:  mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 121, Message: "validation failed"}}},
			kind: apperr.Internal,
			msg:  "internal server error",
		},
		{
			name: "network",
			err:  errors.New("connection reset"),
			kind: apperr.Internal,
			msg:  "internal server error",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := mongoErr("mongo op", tc.err)
			assert.Equal(t, tc.kind, apperr.KindOf(err))
			assert.Equal(t, tc.msg, apperr.PublicMessage(err))
		})
	}
}

func TestMinioErr(t *testing.T) {
	missing := minio.ErrorResponse{Code: "NoSuchKey", Message: "The specified key does not exist."}
	err := minioErr("a.png", missing)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Equal(t, "Image not found", apperr.PublicMessage(err))

	denied := minio.ErrorResponse{Code: "AccessDenied", Message: "Access Denied."}
	err = minioErr("a.png", denied)
	assert.Equal(t, apperr.Internal, apperr.KindOf(err))
	assert.ErrorContains(t, err, "minio a.png")

	err = minioErr("a.png", fmt.Errorf("dial tcp: %w", errors.New("refused")))
	assert.Equal(t, apperr.Internal, apperr.KindOf(err))
}
