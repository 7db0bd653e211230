// Package http реализует маршрутизацию HTTP-слоя сервиса пользователей.
//
// Пакет отвечает за:
//   - регистрацию HTTP-маршрутов и настройку роутера (chi);
//   - логирование выполнения HTTP-запросов и восстановление после паники;
//   - ограничение размера тела запроса;
//   - проверку JWT для защищённых маршрутов.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/IvanChernomyrdin/go-users-service/internal/server/api"
	"github.com/IvanChernomyrdin/go-users-service/internal/server/middleware"
)

// DefaultMaxBodyBytes — лимит тела запроса, если в конфиге не задан.
const DefaultMaxBodyBytes int64 = 1 << 20

// NewRouter создаёт и настраивает HTTP-роутер сервера.
//
// Роутер использует chi.Router и регистрирует:
//   - middleware логирования, Recoverer и лимит тела для всех запросов;
//   - публичные /health, /swagger/*, /users/register и /users/login;
//   - группу защищённых JWT эндпоинтов профиля и пароля.
func NewRouter(h *api.Handler, maxBodyBytes int64) http.Handler {
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}

	r := chi.NewRouter()
	// логирование всех запросов
	r.Use(middleware.LoggerMiddleware(h.Log))
	// паника в хендлере превращается в 500
	r.Use(chimw.Recoverer)
	r.Use(chimw.RequestSize(maxBodyBytes))

	// добавляем swagger
	r.Get("/swagger/*", httpSwagger.WrapHandler)
	r.Get("/health", h.Health)

	r.Route("/users", func(r chi.Router) {
		// Публичные пути
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)

		// защищены пути
		r.Group(func(r chi.Router) {
			// проверка access токена
			r.Use(h.Verifier.AuthMiddleware())

			r.Get("/profile", h.GetProfile)
			r.Put("/profile", h.UpdateProfile)
			r.Put("/password", h.ChangePassword)
		})
	})

	return r
}
