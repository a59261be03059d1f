package api

import (
	"context"
	"net/http"
	"time"

	"fundlens/botrun"
	"fundlens/realtime"
)

// Redis channel carrying completed bot runs for external consumers.
const botRunsChannel = "bot_runs"

func (s *Server) handleGetBotLogs(w http.ResponseWriter, r *http.Request) {
	logs, err := s.repo.GetLogs()
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, botrun.Summarize(logs))
}

// handleRunBot executes one bot synchronously. Exactly one log row exists
// after the call, whatever the outcome; a failed run responds 500 with the
// failure message and its Failure log already persisted.
func (s *Server) handleRunBot(w http.ResponseWriter, r *http.Request) {
	botID := r.PathValue("id")

	var body struct {
		BotName string `json:"botName"`
	}
	if err := decodeBody(r, &body); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if body.BotName == "" {
		respondWithError(w, http.StatusBadRequest, "botName is required", nil)
		return
	}

	entry, runErr := s.runner.RecordRun(botID, body.BotName, s.simulator.ActionFor(botID))

	if entry != nil {
		s.broker.Broadcast(realtime.EventBotRun, entry)
		s.webhooks.NotifyRun(entry)
		if s.redis != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			_ = s.redis.Publish(ctx, botRunsChannel, entry)
			cancel()
		}
	}

	if runErr != nil {
		respondWithError(w, http.StatusInternalServerError, runErr.Error(), nil)
		return
	}

	respondJSON(w, http.StatusOK, entry)
}
