// Логирование HTTP-запросов
package middleware

import (
	"net/http"
	"time"

	"github.com/IvanChernomyrdin/go-users-service/internal/shared/logger"
)

type ResponseWriter struct {
	http.ResponseWriter
	Status int
	Size   int
}

func (w *ResponseWriter) WriteHeader(Status int) {
	w.Status = Status
	w.ResponseWriter.WriteHeader(Status)
}

func (w *ResponseWriter) Write(b []byte) (int, error) {
	if w.Status == 0 {
		w.Status = http.StatusOK
	}
	Size, err := w.ResponseWriter.Write(b)
	w.Size += Size
	return Size, err
}

// LoggerMiddleware пишет строку лога на каждый запрос: метод, uri, статус, размер, длительность.
// nil логгер заменяется файловым логгером по умолчанию.
func LoggerMiddleware(log *logger.HTTPLogger) func(http.Handler) http.Handler {
	if log == nil {
		log = logger.NewHTTPLogger()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wr := &ResponseWriter{ResponseWriter: w}
			next.ServeHTTP(wr, r)

			duration := time.Since(start).Seconds() * 1000
			log.LogRequest(r.Method, r.RequestURI, wr.Status, wr.Size, duration)
		})
	}
}
