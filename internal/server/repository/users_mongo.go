package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/IvanChernomyrdin/go-users-service/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-users-service/internal/shared/errors"
)

// UsersCollection — имя коллекции пользователей.
const UsersCollection = "users"

// userDoc — представление пользователя в коллекции.
type userDoc struct {
	ID        primitive.ObjectID `bson:"_id"`
	Username  string             `bson:"username"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password"` // хэш, не открытый пароль
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d *userDoc) toModel() *models.User {
	return &models.User{
		ID:           d.ID.Hex(),
		Username:     d.Username,
		Email:        d.Email,
		PasswordHash: d.Password,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// UsersMongoRepository хранит пользователей в документной БД.
type UsersMongoRepository struct {
	db           *mongo.Database
	coll         *mongo.Collection
	queryTimeout time.Duration

	now func() time.Time
}

// NewUsersMongoRepository создаёт репозиторий поверх базы db.
func NewUsersMongoRepository(db *mongo.Database, queryTimeout time.Duration) *UsersMongoRepository {
	return &UsersMongoRepository{
		db:           db,
		coll:         db.Collection(UsersCollection),
		queryTimeout: queryTimeout,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (r *UsersMongoRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.queryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.queryTimeout)
}

// EnsureIndexes создаёт уникальный индекс по email.
// Вызывается при старте сервера, повторный вызов безопасен.
func (r *UsersMongoRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	})
	if err != nil {
		return fmt.Errorf("%w: create email index: %v", serr.ErrInternal, err)
	}
	return nil
}

// Create вставляет документ пользователя и возвращает hex id.
//
// Ошибки:
//   - ErrAlreadyExists — дубликат по уникальному индексу email
//   - ErrInternal — прочие ошибки драйвера
func (r *UsersMongoRepository) Create(ctx context.Context, username, email, passwordHash string) (string, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	now := r.now()
	doc := userDoc{
		ID:        primitive.NewObjectID(),
		Username:  username,
		Email:     email,
		Password:  passwordHash,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", serr.ErrAlreadyExists
		}
		return "", fmt.Errorf("%w: insert user: %v", serr.ErrInternal, err)
	}
	return doc.ID.Hex(), nil
}

// GetByEmail ищет пользователя по email.
func (r *UsersMongoRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// GetByID ищет пользователя по hex id.
// Некорректный id трактуется как отсутствующая запись.
func (r *UsersMongoRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, serr.ErrNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

// UpdateProfile перезаписывает username и email, пароль не трогает.
func (r *UsersMongoRepository) UpdateProfile(ctx context.Context, id, username, email string) error {
	return r.updateOne(ctx, id, bson.M{
		"username":  username,
		"email":     email,
		"updatedAt": r.now(),
	})
}

// UpdatePassword заменяет хэш пароля.
func (r *UsersMongoRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return r.updateOne(ctx, id, bson.M{
		"password":  passwordHash,
		"updatedAt": r.now(),
	})
}

// Ping проверяет доступность primary.
func (r *UsersMongoRepository) Ping(ctx context.Context) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if err := r.db.Client().Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("%w: ping mongo: %v", serr.ErrInternal, err)
	}
	return nil
}

func (r *UsersMongoRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var doc userDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, serr.ErrNotFound
		}
		return nil, fmt.Errorf("%w: find user: %v", serr.ErrInternal, err)
	}
	return doc.toModel(), nil
}

func (r *UsersMongoRepository) updateOne(ctx context.Context, id string, set bson.M) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return serr.ErrNotFound
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return serr.ErrAlreadyExists
		}
		return fmt.Errorf("%w: update user: %v", serr.ErrInternal, err)
	}
	if res.MatchedCount == 0 {
		return serr.ErrNotFound
	}
	return nil
}
