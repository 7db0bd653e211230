// Package api содержит HTTP-клиент для взаимодействия с сервисом пользователей.
//
// Клиент инкапсулирует базовый URL сервера и настроенный http.Client,
// предоставляя методы для отправки JSON-запросов (POST/GET/PUT)
// с авторизацией через Bearer токен.
//
// Особенности:
//   - baseURL нормализуется (обрезаются завершающие "/").
//   - По умолчанию добавляется заголовок Accept: application/json.
//   - Заголовок Content-Type: application/json добавляется только при наличии тела запроса.
//   - При ответах 204 No Content тело не читается и это считается успехом.
//   - Пустое тело ответа (EOF при декодировании) не считается ошибкой.
//   - При ошибочных ответах (не 2xx) возвращается *APIError с полем error из тела
//     (если тело не JSON, то весь текст тела, если пустое, то res.Status).
package api

import (
	"bytes"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client реализует HTTP-клиент для общения с сервером.
//
// Поля:
//   - baseURL: базовый адрес сервера без завершающего слэша.
//   - http: настроенный http.Client (таймаут, транспорт, TLS).
type Client struct {
	baseURL string
	http    *http.Client
}

// APIError — ошибочный ответ сервера.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

// NewClient создаёт новый HTTP-клиент для общения с сервером.
//
// Параметры:
//   - baseURL: базовый адрес сервера (например: "http://127.0.0.1:8080").
//   - insecureTLS: не проверять сертификат сервера.
//
// ВНИМАНИЕ: insecureTLS=true делает TLS уязвимым для MITM.
// Использовать только для локальной разработки с самоподписанным сертификатом.
func NewClient(baseURL string, insecureTLS bool) *Client {
	tr := http.DefaultTransport.(*http.Transport).Clone()
	if insecureTLS {
		tr.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} // только для dev
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   10 * time.Second,
			Transport: tr,
		},
	}
}

// readAPIError читает тело ошибочного ответа.
//
// Сервер отвечает {"error": "..."}; прочие тела отдаются как есть.
func readAPIError(res *http.Response) error {
	raw, _ := io.ReadAll(res.Body)

	var body struct {
		Error string `json:"error"`
	}
	msg := ""
	if json.Unmarshal(raw, &body) == nil && body.Error != "" {
		msg = body.Error
	} else {
		msg = strings.TrimSpace(string(raw))
	}
	if msg == "" {
		msg = res.Status
	}
	return &APIError{Status: res.StatusCode, Message: msg}
}

// decodeJSONOrOK декодирует JSON из r в resp.
//
// Если resp == nil или тело пустое (io.EOF), ошибки нет.
func decodeJSONOrOK(r io.Reader, resp any) error {
	if resp == nil {
		return nil
	}
	err := json.NewDecoder(r).Decode(resp)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// do отправляет запрос и разбирает ответ.
//
// req == nil: тело не отправляется и Content-Type не ставится.
// authToken != "": добавляется Authorization: Bearer <token>.
func (c *Client) do(method, path string, req any, resp any, authToken string) error {
	var body io.Reader
	if req != nil {
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(req); err != nil {
			return err
		}
		body = &buf
	}

	r, err := http.NewRequest(method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	r.Header.Set("Accept", "application/json")
	if req != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	if authToken != "" {
		r.Header.Set("Authorization", "Bearer "+authToken)
	}

	res, err := c.http.Do(r)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return readAPIError(res)
	}

	// 204/пустое тело — ок
	if res.StatusCode == http.StatusNoContent {
		return nil
	}

	return decodeJSONOrOK(res.Body, resp)
}

// PostJSON выполняет POST-запрос, сериализуя req в JSON и декодируя ответ в resp.
func (c *Client) PostJSON(path string, req any, resp any, authToken string) error {
	return c.do(http.MethodPost, path, req, resp, authToken)
}

// GetJSON выполняет GET-запрос и (опционально) декодирует JSON-ответ.
func (c *Client) GetJSON(path string, resp any, authToken string) error {
	return c.do(http.MethodGet, path, nil, resp, authToken)
}

// PutJSON выполняет PUT-запрос, сериализуя req в JSON.
func (c *Client) PutJSON(path string, req any, resp any, authToken string) error {
	return c.do(http.MethodPut, path, req, resp, authToken)
}
