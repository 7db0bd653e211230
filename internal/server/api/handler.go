// Package api реализует HTTP-слой сервиса пользователей.
//
// Пакет отвечает за:
//   - обработку входящих запросов и формирование ответов (JSON, статусы);
//   - маппинг доменных ошибок (service/repository) в HTTP-коды и сообщения.
//
// Маршруты и middleware подключаются в internal/server/net/http.
package api

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/IvanChernomyrdin/go-users-service/internal/server/middleware"
	"github.com/IvanChernomyrdin/go-users-service/internal/server/service"
	serr "github.com/IvanChernomyrdin/go-users-service/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-users-service/internal/shared/logger"
	shared "github.com/IvanChernomyrdin/go-users-service/internal/shared/models"
)

// Каждый метод если будет возвращать ответ то будет это делать в JSON
// Вынес Content-Type и JSON для удобства
const (
	JsonContentType string = "application/json"
	ContentType     string = "Content-Type"
)

// Handler агрегирует зависимости HTTP-слоя и предоставляет методы-хендлеры.
//
// Handler содержит:
//   - Svc: сервисный слой (бизнес-логика);
//   - Log: логгер для записи событий и ошибок;
//   - Verifier: компонент проверки JWT и middleware авторизации.
//
// Методы Handler используются роутером для обработки HTTP-запросов.
type Handler struct {
	Svc      *service.Services
	Log      *logger.HTTPLogger
	Verifier *middleware.JWTVerifier
}

// NewHandler создаёт экземпляр Handler с переданными зависимостями.
//
// svc — набор сервисов приложения,
// log — логгер (nil заменяется zap.NewNop),
// verifier — JWT-проверка и middleware авторизации.
func NewHandler(svc *service.Services, log *logger.HTTPLogger, verifier *middleware.JWTVerifier) *Handler {
	if log == nil {
		log = &logger.HTTPLogger{Logger: zap.NewNop()}
	}
	return &Handler{
		Svc:      svc,
		Log:      log,
		Verifier: verifier,
	}
}

// WriteJSON пишет тело ответа в JSON с заданным статусом.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set(ContentType, JsonContentType)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Вспомогательная функция вывода ошибки: {"error": "..."}
func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, shared.ErrorResponse{Error: msg})
}

// internalError логирует неожиданную ошибку и отдаёт клиенту 500 без деталей.
func (h *Handler) internalError(w http.ResponseWriter, r *http.Request, op string, err error) {
	h.Log.Error(op+" failed",
		zap.String("method", r.Method),
		zap.String("uri", r.RequestURI),
		zap.Error(err),
	)
	WriteError(w, http.StatusInternalServerError, serr.MsgInternal)
}
