// Package logger содержит общий логгер для сервера и CLI.
//
// Пакет предоставляет Zap-логгер, настроенный на запись в файл с ротацией
// (lumberjack), опционально дублирующий вывод в stderr, и удобный метод
// для логирования HTTP-запросов.
package logger

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// HTTPLogger представляет обёртку над zap.Logger для логирования HTTP-событий.
//
// Встраивание *zap.Logger позволяет использовать все методы zap напрямую.
type HTTPLogger struct {
	*zap.Logger
}

// Options описывает, куда и в каком виде писать логи.
//
// Нулевые значения заменяются дефолтами из DefaultOptions.
type Options struct {
	Dir        string // каталог логов, по умолчанию runtime/logs
	File       string // имя файла, по умолчанию http.log
	Level      string // debug|info|warn|error
	Format     string // console|json
	Console    bool   // дублировать в stderr
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// DefaultOptions возвращает настройки, с которыми работает NewHTTPLogger.
func DefaultOptions() Options {
	return Options{
		Dir:        filepath.Join("runtime", "logs"),
		File:       "http.log",
		Level:      "info",
		Format:     "console",
		MaxSizeMB:  100, // MB ≈ ~300 000 строк
		MaxBackups: 10,
		MaxAgeDays: 30,
		Compress:   true,
	}
}

// NewHTTPLogger создаёт файловый zap-логгер с настройками по умолчанию.
//
// Логи записываются в файл runtime/logs/http.log.
// Формат времени: "HH:MM:SS DD.MM.YYYY".
func NewHTTPLogger() *HTTPLogger {
	return New(DefaultOptions())
}

// New создаёт zap-логгер по переданным опциям.
//
// Для файла включена ротация (MaxSize/MaxBackups/MaxAge) и сжатие архивов.
func New(opts Options) *HTTPLogger {
	opts = withDefaults(opts)

	_ = os.MkdirAll(opts.Dir, 0755)

	// lumberjack отвечает за ротацию файлов
	writer := zapcore.AddSync(&lumberjack.Logger{
		Filename:   filepath.Join(opts.Dir, opts.File),
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
		Compress:   opts.Compress,
	})
	if opts.Console {
		writer = zapcore.NewMultiWriteSyncer(writer, zapcore.Lock(os.Stderr))
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = customTimeEncoder

	var encoder zapcore.Encoder
	if strings.EqualFold(opts.Format, "json") {
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	} else {
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	}

	core := zapcore.NewCore(encoder, writer, parseLevel(opts.Level))

	logger := zap.New(core, zap.AddCaller())

	return &HTTPLogger{Logger: logger}
}

// LogRequest записывает структурированный лог об HTTP-запросе.
//
// method и uri — параметры запроса,
// status — HTTP-статус ответа,
// responseSize — размер ответа в байтах,
// duration — длительность обработки запроса в миллисекундах.
func (logger *HTTPLogger) LogRequest(method, uri string, status, responseSize int, duration float64) {
	logger.Info("HTTP request",
		zap.String("method", method),
		zap.String("uri", uri),
		zap.Int("status", status),
		zap.Int("response_size", responseSize),
		zap.Float64("duration_ms", duration),
	)
}

func withDefaults(opts Options) Options {
	def := DefaultOptions()
	if opts.Dir == "" {
		opts.Dir = def.Dir
	}
	if opts.File == "" {
		opts.File = def.File
	}
	if opts.Level == "" {
		opts.Level = def.Level
	}
	if opts.Format == "" {
		opts.Format = def.Format
	}
	if opts.MaxSizeMB <= 0 {
		opts.MaxSizeMB = def.MaxSizeMB
	}
	if opts.MaxBackups <= 0 {
		opts.MaxBackups = def.MaxBackups
	}
	if opts.MaxAgeDays <= 0 {
		opts.MaxAgeDays = def.MaxAgeDays
	}
	return opts
}

// неизвестный уровень считаем info
func parseLevel(s string) zapcore.Level {
	lvl, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

// customTimeEncoder форматирует время для логов в виде "HH:MM:SS DD.MM.YYYY".
func customTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("15:04:05 02.01.2006"))
}
