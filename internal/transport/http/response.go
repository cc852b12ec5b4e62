package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"

	"job-funnel-service/internal/entity"
	"job-funnel-service/internal/logging"
)

type apiError struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, apiError{Message: msg})
}

// writeServiceError maps domain errors to status codes. Anything unknown is a 500 and gets logged.
func writeServiceError(w http.ResponseWriter, r *http.Request, log logging.Logger, err error) {
	switch {
	case errors.Is(err, entity.ErrUnauthenticated):
		writeErr(w, http.StatusUnauthorized, "Not authenticated.")
	case errors.Is(err, entity.ErrNotFound):
		writeErr(w, http.StatusNotFound, "Not found.")
	case errors.Is(err, entity.ErrForbidden):
		writeErr(w, http.StatusForbidden, "Forbidden.")
	case errors.Is(err, entity.ErrInvalidReference):
		writeErr(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, entity.ErrConflict):
		writeErr(w, http.StatusConflict, "Already exists.")
	case errors.Is(err, entity.ErrValidation):
		writeErr(w, http.StatusUnprocessableEntity, err.Error())
	default:
		log.Error(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "err", err)
		writeErr(w, http.StatusInternalServerError, "internal error")
	}
}
