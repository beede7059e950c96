package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/orionte/placement-api/internal/usecase"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError translates usecase errors into HTTP status codes. Technical
// errors are never echoed verbatim to the client.
func writeError(w http.ResponseWriter, err error) {
	switch usecase.DomainCode(err) {
	case usecase.CodeValidation:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Code: usecase.CodeValidation})
	case usecase.CodeNotFound:
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error(), Code: usecase.CodeNotFound})
	case usecase.CodeConflict:
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error(), Code: usecase.CodeConflict})
	case usecase.CodeUnauthorized:
		writeJSON(w, http.StatusForbidden, errorResponse{Error: err.Error(), Code: usecase.CodeUnauthorized})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}
