// Подключение к MongoDB.
//
// Документное хранилище пользователей: одна коллекция users,
// уникальный индекс по email создаётся при старте.
package config

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/IvanChernomyrdin/go-users-service/internal/shared/logger"
)

// InitMongo подключается к MongoDB по DSN и проверяет доступность (Ping).
//
// Возвращает клиента и базу db.Database. Закрывать клиента (Disconnect) должен вызывающий.
func InitMongo(ctx context.Context, db DBConfig, log *logger.HTTPLogger) (*mongo.Client, *mongo.Database, error) {
	opts := options.Client().
		ApplyURI(db.DSN).
		SetConnectTimeout(db.ConnectTimeout).
		SetTimeout(db.QueryTimeout)
	if db.MaxOpenConns > 0 {
		opts.SetMaxPoolSize(uint64(db.MaxOpenConns))
	}
	if db.ConnMaxIdleTime > 0 {
		opts.SetMaxConnIdleTime(db.ConnMaxIdleTime)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		log.Error("error to connect mongo", zap.Error(err))
		return nil, nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, db.ConnectTimeout)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		log.Error("error check mongo connection", zap.Error(err))
		_ = client.Disconnect(context.Background())
		return nil, nil, err
	}

	log.Info("connected to mongo", zap.String("database", db.Database))
	return client, client.Database(db.Database), nil
}
