package tests

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/IvanChernomyrdin/go-users-service/internal/server/repository"
	serr "github.com/IvanChernomyrdin/go-users-service/internal/shared/errors"
)

const usersNS = "mydatabase.users"

func duplicateKeyResponse() bson.D {
	return mtest.CreateWriteErrorsResponse(mtest.WriteError{
		Index:   0,
		Code:    11000,
		Message: "E11000 duplicate key error collection: mydatabase.users index: email_unique",
	})
}

func TestUsersMongoRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("create ok", func(mt *mtest.T) {
		repo := repository.NewUsersMongoRepository(mt.DB, time.Second)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		id, err := repo.Create(ctx, "alice", "a@mail.com", "hash")
		require.NoError(mt, err)

		_, err = primitive.ObjectIDFromHex(id)
		require.NoError(mt, err)
	})

	mt.Run("create duplicate email", func(mt *mtest.T) {
		repo := repository.NewUsersMongoRepository(mt.DB, time.Second)
		mt.AddMockResponses(duplicateKeyResponse())

		_, err := repo.Create(ctx, "alice", "a@mail.com", "hash")
		require.ErrorIs(mt, err, serr.ErrAlreadyExists)
	})

	mt.Run("create internal error", func(mt *mtest.T) {
		repo := repository.NewUsersMongoRepository(mt.DB, time.Second)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Name:    "BadValue",
			Message: "boom",
		}))

		_, err := repo.Create(ctx, "alice", "a@mail.com", "hash")
		require.ErrorIs(mt, err, serr.ErrInternal)
	})

	mt.Run("get by email", func(mt *mtest.T) {
		repo := repository.NewUsersMongoRepository(mt.DB, time.Second)

		oid := primitive.NewObjectID()
		created := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, usersNS, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: oid},
			{Key: "username", Value: "alice"},
			{Key: "email", Value: "a@mail.com"},
			{Key: "password", Value: "hash"},
			{Key: "createdAt", Value: created},
			{Key: "updatedAt", Value: created},
		}))

		u, err := repo.GetByEmail(ctx, "a@mail.com")
		require.NoError(mt, err)
		require.Equal(mt, oid.Hex(), u.ID)
		require.Equal(mt, "alice", u.Username)
		require.Equal(mt, "hash", u.PasswordHash)
		require.True(mt, created.Equal(u.CreatedAt))
	})

	mt.Run("get by email not found", func(mt *mtest.T) {
		repo := repository.NewUsersMongoRepository(mt.DB, time.Second)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, usersNS, mtest.FirstBatch))

		_, err := repo.GetByEmail(ctx, "ghost@mail.com")
		require.ErrorIs(mt, err, serr.ErrNotFound)
	})

	mt.Run("get by id", func(mt *mtest.T) {
		repo := repository.NewUsersMongoRepository(mt.DB, time.Second)

		oid := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, usersNS, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: oid},
			{Key: "username", Value: "bob"},
			{Key: "email", Value: "b@mail.com"},
			{Key: "password", Value: "hash"},
		}))

		u, err := repo.GetByID(ctx, oid.Hex())
		require.NoError(mt, err)
		require.Equal(mt, "b@mail.com", u.Email)
	})

	// некорректный id: запроса к БД нет
	mt.Run("get by malformed id", func(mt *mtest.T) {
		repo := repository.NewUsersMongoRepository(mt.DB, time.Second)

		_, err := repo.GetByID(ctx, "not-an-object-id")
		require.ErrorIs(mt, err, serr.ErrNotFound)
	})

	mt.Run("update profile ok", func(mt *mtest.T) {
		repo := repository.NewUsersMongoRepository(mt.DB, time.Second)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		err := repo.UpdateProfile(ctx, primitive.NewObjectID().Hex(), "bob", "b@mail.com")
		require.NoError(mt, err)
	})

	mt.Run("update profile not found", func(mt *mtest.T) {
		repo := repository.NewUsersMongoRepository(mt.DB, time.Second)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		err := repo.UpdateProfile(ctx, primitive.NewObjectID().Hex(), "bob", "b@mail.com")
		require.ErrorIs(mt, err, serr.ErrNotFound)
	})

	mt.Run("update profile email taken", func(mt *mtest.T) {
		repo := repository.NewUsersMongoRepository(mt.DB, time.Second)
		mt.AddMockResponses(duplicateKeyResponse())

		err := repo.UpdateProfile(ctx, primitive.NewObjectID().Hex(), "bob", "taken@mail.com")
		require.ErrorIs(mt, err, serr.ErrAlreadyExists)
	})

	mt.Run("update password", func(mt *mtest.T) {
		repo := repository.NewUsersMongoRepository(mt.DB, time.Second)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		require.NoError(mt, repo.UpdatePassword(ctx, primitive.NewObjectID().Hex(), "new-hash"))
		require.ErrorIs(mt, repo.UpdatePassword(ctx, "bad", "new-hash"), serr.ErrNotFound)
	})

	mt.Run("ensure indexes", func(mt *mtest.T) {
		repo := repository.NewUsersMongoRepository(mt.DB, time.Second)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		require.NoError(mt, repo.EnsureIndexes(ctx))
	})

	mt.Run("ping", func(mt *mtest.T) {
		repo := repository.NewUsersMongoRepository(mt.DB, time.Second)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		require.NoError(mt, repo.Ping(ctx))
	})
}
