package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"fundlens/database"
)

// respondJSON writes a JSON response with the given status code
func respondJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("API Error: failed to encode response: %v", err)
	}
}

// respondWithError logs the error and sends a JSON error response
func respondWithError(w http.ResponseWriter, code int, message string, err error) {
	if err != nil {
		log.Printf("API Error [%d]: %s - %v", code, message, err)
	} else {
		log.Printf("API Error [%d]: %s", code, message)
	}
	respondJSON(w, code, map[string]string{"error": message})
}

// respondDomainError maps the database error taxonomy onto HTTP status
// codes: not found -> 404, validation -> 400, anything else -> 500.
func respondDomainError(w http.ResponseWriter, err error) {
	var notFound *database.NotFoundError
	var validation *database.ValidationError

	switch {
	case errors.As(err, &notFound):
		respondWithError(w, http.StatusNotFound, notFound.Error(), nil)
	case errors.As(err, &validation):
		respondWithError(w, http.StatusBadRequest, validation.Error(), nil)
	default:
		respondWithError(w, http.StatusInternalServerError, "internal server error", err)
	}
}

// decodeBody parses a JSON request body into dest
func decodeBody(r *http.Request, dest interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dest)
}

// bearerToken extracts the token from an "Authorization: Bearer ..." header
func bearerToken(r *http.Request) string {
	const prefix = "Bearer "
	header := r.Header.Get("Authorization")
	if len(header) > len(prefix) && header[:len(prefix)] == prefix {
		return header[len(prefix):]
	}
	return ""
}
