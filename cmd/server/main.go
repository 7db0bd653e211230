// @title           Users API
// @version         1.0
// @description     User accounts service.
// @description     Provides registration, login and profile management.

// @contact.name   Ivan Chernomyrdin
// @contact.url    https://github.com/IvanChernomyrdin

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
//
// Package main содержит точку входа сервиса пользователей.
//
// Пакет отвечает за инициализацию и жизненный цикл HTTP(S)-сервера, а именно:
//   - загрузку переменных окружения из файла .env (если он присутствует);
//   - загрузку конфигурации сервера (SERVER_CONFIG или ./configs/server.yaml);
//   - подключение к хранилищу (mongo или postgres) и управление его жизненным циклом;
//   - создание репозиториев, сервисов, middleware и HTTP-обработчиков;
//   - запуск сервера с заданными таймаутами (HTTPS, если включён TLS);
//   - корректное (graceful) завершение работы по SIGINT, SIGTERM, SIGQUIT.
//
// Пакет не содержит бизнес-логики и не предназначен для unit-тестирования.
package main

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/IvanChernomyrdin/go-users-service/internal/server/api"
	"github.com/IvanChernomyrdin/go-users-service/internal/server/config"
	"github.com/IvanChernomyrdin/go-users-service/internal/server/middleware"
	h "github.com/IvanChernomyrdin/go-users-service/internal/server/net/http"
	"github.com/IvanChernomyrdin/go-users-service/internal/server/repository"
	"github.com/IvanChernomyrdin/go-users-service/internal/server/service"
	"github.com/IvanChernomyrdin/go-users-service/internal/shared/logger"

	_ "github.com/IvanChernomyrdin/go-users-service/swagger/docs"
)

func main() {
	// до загрузки конфига пишем в логгер по умолчанию
	bootLog := logger.NewHTTPLogger()
	sugar := bootLog.Sugar()

	if err := godotenv.Load(); err != nil {
		sugar.Warnf("no .env file loaded, error: %v", err)
	}

	cfg, err := config.Load(config.PathFromEnv())
	if err != nil {
		sugar.Fatal(err)
	}

	httpLogger := logger.New(cfg.Log.LoggerOptions())
	defer httpLogger.Sync()
	sugar = httpLogger.Sugar()

	// создаём контекст и errgroup
	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer stop()

	// подключаем хранилище
	usersRepo, closeStore, err := openUsersRepo(ctx, cfg, httpLogger)
	if err != nil {
		sugar.Fatal(err)
	}
	// делаем отложенное закрытие хранилища
	defer closeStore()

	// складываем в репозиторий
	repos := service.Repositories{
		Users: usersRepo,
	}
	// создаём сервис
	svc := service.NewServices(repos, cfg)
	// создаём jwt
	verifier := middleware.NewJWTVerifier(service.JWTConfigFrom(cfg))
	// создаём хандлер
	handler := api.NewHandler(svc, httpLogger, verifier)
	// создаём роутер
	router := h.NewRouter(handler, cfg.Server.MaxBodyBytes)
	//создаём сервер
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)

	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		MaxHeaderBytes:    cfg.Server.MaxHeaderBytes,
	}
	if cfg.TLS.Enabled {
		server.TLSConfig = &tls.Config{MinVersion: cfg.TLS.MinTLSVersion()}
	}

	g, ctx := errgroup.WithContext(ctx)

	// запускаем сервер
	g.Go(func() error {
		httpLogger.Info("server started",
			zap.String("addr", addr),
			zap.Bool("tls", cfg.TLS.Enabled),
			zap.String("driver", cfg.DB.Driver),
		)

		var err error
		if cfg.TLS.Enabled {
			err = server.ListenAndServeTLS(cfg.TLS.CertFile, cfg.TLS.KeyFile)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// graceful shutdown с таймаутом из конфига
	g.Go(func() error {
		<-ctx.Done()

		sugar.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			cfg.Server.ShutdownTimeout,
		)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	// ожидание и единная обработка ошибок
	if err := g.Wait(); err != nil {
		sugar.Fatalf("server stopped with error: %v", err)
	}
	sugar.Info("server gracefully stopped")
}

// openUsersRepo подключает хранилище по db.driver и возвращает репозиторий и функцию закрытия.
func openUsersRepo(ctx context.Context, cfg *config.Config, log *logger.HTTPLogger) (service.UsersRepo, func(), error) {
	switch cfg.DB.Driver {
	case config.DriverPostgres:
		db, err := config.InitPostgres(ctx, cfg.DB, cfg.Migrations, log)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewUsersRepository(db, cfg.DB.QueryTimeout), func() { db.Close() }, nil

	default:
		client, db, err := config.InitMongo(ctx, cfg.DB, log)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Warn("mongo disconnect failed", zap.Error(err))
			}
		}

		repo := repository.NewUsersMongoRepository(db, cfg.DB.QueryTimeout)
		if err := repo.EnsureIndexes(ctx); err != nil {
			closeFn()
			return nil, nil, err
		}
		return repo, closeFn, nil
	}
}
