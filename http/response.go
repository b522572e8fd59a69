package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/roofingmaterials/roofserve"
)

// ErrorResponse represents a JSON error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// companiesNotFoundBody is the exact body returned when the companies
// document is absent. Existing clients match on it.
const companiesNotFoundBody = `{"error": "all-companies.json file not found"}`

// WriteError writes a JSON error response
func WriteError(w http.ResponseWriter, code int, errCode, message string) {
	if err := writeJSON(w, code, ErrorResponse{
		Error:   errCode,
		Message: message,
	}); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

// HandleError writes appropriate error response based on error type.
// Invalid paths are reported as not found so a rejected traversal attempt
// is indistinguishable from a missing file.
func HandleError(w http.ResponseWriter, err error) {
	if errors.Is(err, roofserve.ErrNotFound) || errors.Is(err, roofserve.ErrInvalidInput) {
		slog.Debug("request error", "error", err)
		WriteError(w, http.StatusNotFound, "not_found", "Not found")
		return
	}

	slog.Error("request error", "error", err)

	// Default internal error
	WriteError(w, http.StatusInternalServerError, "internal_error", "Internal server error")
}

func writeJSON(w http.ResponseWriter, code int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(data)
}

func writeCompaniesNotFound(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	if _, err := io.WriteString(w, companiesNotFoundBody); err != nil {
		slog.Error("failed to write error response", "error", err)
	}
}
