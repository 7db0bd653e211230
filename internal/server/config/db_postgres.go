// Подключение к PostgreSQL и запуск миграций.
//
// Выполняет:
//   - открытие соединения с PostgreSQL (через драйвер pgx);
//   - настройку пула соединений;
//   - проверку доступности базы (Ping);
//   - запуск миграций (golang-migrate) при старте сервера.
package config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"go.uber.org/zap"

	"github.com/IvanChernomyrdin/go-users-service/internal/shared/logger"

	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v4/stdlib"
)

// InitPostgres открывает подключение к базе данных по DSN, проверяет его доступность
// и (если включено) применяет миграции.
//
// Если миграции уже применены, ошибка migrate.ErrNoChange не считается ошибкой.
func InitPostgres(ctx context.Context, db DBConfig, mig MigrationsConfig, log *logger.HTTPLogger) (*sql.DB, error) {
	conn, err := sql.Open("pgx", db.DSN)
	if err != nil {
		log.Error("error to connect db", zap.Error(err))
		return nil, err
	}

	if db.MaxOpenConns > 0 {
		conn.SetMaxOpenConns(db.MaxOpenConns)
	}
	if db.MaxIdleConns > 0 {
		conn.SetMaxIdleConns(db.MaxIdleConns)
	}
	conn.SetConnMaxLifetime(db.ConnMaxLifetime)
	conn.SetConnMaxIdleTime(db.ConnMaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, db.ConnectTimeout)
	defer cancel()

	if err = conn.PingContext(pingCtx); err != nil {
		log.Error("error check db connection", zap.Error(err))
		conn.Close()
		return nil, err
	}

	if !mig.Enabled {
		return conn, nil
	}

	if err := migrateUp(conn, mig.Path); err != nil {
		log.Error("error applying migrations", zap.Error(err))
		conn.Close()
		return nil, err
	}

	log.Info("migrations applied successfully", zap.String("path", mig.Path))
	return conn, nil
}

func migrateUp(conn *sql.DB, path string) error {
	driver, err := postgres.WithInstance(conn, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	// создаём миграции с выбранным драйвером
	m, err := migrate.NewWithDatabaseInstance(path, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrations: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
