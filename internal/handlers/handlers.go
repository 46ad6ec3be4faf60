package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// SendJSON writes v with the given status code.
func SendJSON(w http.ResponseWriter, statusCode int, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_, err = w.Write(payload)
	return err
}

func SendJSONOrLog(
	w http.ResponseWriter,
	logger *slog.Logger,
	statusCode int,
	v any,
) {
	if err := SendJSON(w, statusCode, v); err != nil {
		logger.Error(
			"failed to send data",
			slog.Any("data", v),
			slog.Any("error", err),
		)
	}
}

func SendMessageOrLog(
	w http.ResponseWriter,
	logger *slog.Logger,
	statusCode int,
	m string,
) {
	SendJSONOrLog(w, logger, statusCode, map[string]string{
		"message": m,
	})
}

func SendErrorOrLog(
	w http.ResponseWriter,
	logger *slog.Logger,
	statusCode int,
	e error,
) {
	SendJSONOrLog(w, logger, statusCode, wrapError(e))
}

// InternalError logs msg with args and replies with a generic 500.
func InternalError(
	w http.ResponseWriter,
	logger *slog.Logger,
	msg string,
	args ...any,
) {
	logger.Error(msg, args...)
	SendJSONOrLog(w, logger, http.StatusInternalServerError, map[string]string{
		"error": "internal error",
	})
}

func wrapError(err error) map[string]string {
	return map[string]string{
		"error": err.Error(),
	}
}
