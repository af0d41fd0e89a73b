package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CleaningBookingService/internal/domain"
)

const (
	msgInternalError    = "внутренняя ошибка сервера"
	msgValidation       = "некорректные данные запроса"
	msgNotFound         = "объект не найден"
	msgConflict         = "операция конфликтует с текущим состоянием"
	msgRuleViolation    = "нарушено бизнес-правило"
	msgExternalProvider = "внешний сервис недоступен"

	// MaxBodyBytes ограничение размера тела запроса
	MaxBodyBytes = 1 << 20
)

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// RespondJSON пишет JSON ответ с кодом status
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

// RespondError пишет ошибку с кодом status
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Error: message})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// RespondDomainError выбирает HTTP статус по категории доменной ошибки.
// Текст ошибки попадает в details для всех категорий, кроме внутренних.
func RespondDomainError(w http.ResponseWriter, err error) int {
	status, message := StatusForError(err)
	resp := ErrorResponse{Error: message}
	if status != http.StatusInternalServerError {
		resp.Details = err.Error()
	}
	RespondJSON(w, status, resp)
	return status
}

// ErrorLogger часть Logger, нужная для ответа с ошибкой
type ErrorLogger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RespondFailure отвечает по категории ошибки и логирует 4xx как Warn, 5xx как Error
func RespondFailure(w http.ResponseWriter, log ErrorLogger, route string, err error) {
	status := RespondDomainError(w, err)
	if status >= http.StatusInternalServerError {
		log.Error("%s - Failed: status=%d, error=%v", route, status, err)
		return
	}
	log.Warn("%s - Rejected: status=%d, error=%v", route, status, err)
}

// StatusForError HTTP статус и сообщение для категории ошибки
func StatusForError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, msgValidation
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, msgNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, msgConflict
	case errors.Is(err, domain.ErrRuleViolation):
		return http.StatusUnprocessableEntity, msgRuleViolation
	case errors.Is(err, domain.ErrExternalDependency):
		return http.StatusBadGateway, msgExternalProvider
	default:
		return http.StatusInternalServerError, msgInternalError
	}
}

// DecodeJSON декодирует тело запроса, запрещая неизвестные поля
func DecodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

// PathUUID читает UUID из переменной маршрута
func PathUUID(r *http.Request, name string) (uuid.UUID, error) {
	raw, ok := mux.Vars(r)[name]
	if !ok {
		return uuid.Nil, fmt.Errorf("missing path variable %s", name)
	}
	return uuid.Parse(raw)
}
