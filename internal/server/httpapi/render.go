package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/afyalink/afyalink/internal/common"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// writeError maps the service error taxonomy onto HTTP statuses. Denials
// keep their guard reason as the body so the UI can render it verbatim.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrNotAuthenticated):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: common.ErrNotAuthenticated.Error()})
	case errors.Is(err, common.ErrWrongRole):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: common.ErrWrongRole.Error()})
	case errors.Is(err, common.ErrAuthentication), errors.Is(err, common.ErrCredentialRequired):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
	case errors.Is(err, common.ErrRoleUnresolved):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: err.Error()})
	case errors.Is(err, common.ErrValidation):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, common.ErrConflict):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, common.ErrorNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, common.ErrStoreTimeout):
		writeJSON(w, http.StatusGatewayTimeout, errorResponse{Error: "store timeout"})
	case errors.Is(err, common.ErrStore), errors.Is(err, common.ErrStorageUpload):
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return common.ErrValidation
	}
	return nil
}
