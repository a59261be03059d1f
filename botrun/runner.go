package botrun

import (
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"fundlens/database"
)

// Action runs one bot execution and returns a short description of what it
// did. The runner is agnostic to what the action does.
type Action func() (string, error)

// LogStore is the slice of the store the runner needs.
type LogStore interface {
	AppendLog(*database.BotLog) error
}

// Runner executes bot actions and persists exactly one log row per
// invocation: Success with the action's description, or Failure with the
// error message before the error is handed back to the caller.
type Runner struct {
	store LogStore
}

// NewRunner creates a new bot runner
func NewRunner(store LogStore) *Runner {
	return &Runner{store: store}
}

// RecordRun invokes action, measures its wall-clock duration and appends
// the resulting BotLog. On failure the log is written first and the
// original error is returned alongside the Failure log; a log append
// failure is itself only logged so it cannot mask the action's error.
func (r *Runner) RecordRun(botID, botName string, action Action) (*database.BotLog, error) {
	start := time.Now()

	result, actionErr := action()

	entry := &database.BotLog{
		ID:            uuid.NewString(),
		BotName:       botName,
		Status:        database.StatusSuccess,
		ExecutionTime: roundSeconds(time.Since(start)),
		Timestamp:     time.Now(),
		Result:        result,
	}
	if actionErr != nil {
		entry.Status = database.StatusFailure
		entry.Result = actionErr.Error()
	}

	if err := r.store.AppendLog(entry); err != nil {
		log.Printf("⚠️  Failed to persist %s log for bot %s (%s): %v", entry.Status, botName, botID, err)
		if actionErr == nil {
			return nil, err
		}
	}

	if actionErr != nil {
		return entry, actionErr
	}
	return entry, nil
}

// roundSeconds converts a duration to seconds rounded to 2 decimals,
// half away from zero
func roundSeconds(d time.Duration) float64 {
	return decimal.NewFromFloat(d.Seconds()).Round(2).InexactFloat64()
}
