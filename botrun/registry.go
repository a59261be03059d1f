// Package botrun tracks executions of the simulated scraping bots: it
// derives the per-bot "last successful run" view for the admin panel and
// wraps bot actions so that every invocation leaves exactly one log row.
package botrun

import (
	"sort"
	"strings"

	"fundlens/database"
)

// lastUpdatedFormat renders timestamps for the admin panel cards.
const lastUpdatedFormat = "1/2/2006, 3:04:05 PM"

// Summary is the admin panel view over the bot run log.
type Summary struct {
	Logs []database.BotLog `json:"logs"`

	// LastUpdated maps the normalized bot key to a human-readable
	// timestamp of that bot's most recent successful run. Failed and
	// in-progress runs never contribute, even when newer.
	LastUpdated map[string]string `json:"lastUpdated"`
}

// Summarize builds the admin view from an append-only log snapshot. The
// input is copied, never mutated; the copy is sorted newest first.
func Summarize(logs []database.BotLog) Summary {
	latestSuccess := make(map[string]database.BotLog)
	for _, log := range logs {
		if log.Status != database.StatusSuccess {
			continue
		}
		if best, ok := latestSuccess[log.BotName]; !ok || log.Timestamp.After(best.Timestamp) {
			latestSuccess[log.BotName] = log
		}
	}

	lastUpdated := make(map[string]string, len(latestSuccess))
	for name, log := range latestSuccess {
		lastUpdated[BotKey(name)] = log.Timestamp.Format(lastUpdatedFormat)
	}

	sorted := make([]database.BotLog, len(logs))
	copy(sorted, logs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.After(sorted[j].Timestamp)
	})

	return Summary{Logs: sorted, LastUpdated: lastUpdated}
}

// Historical display-name suffixes collapsed to the plain "-bot" key
// suffix. The admin panel keys off exactly "nse-bot", "amc-bot" and
// "indices-bot".
var collapsedSuffixes = []string{
	"-stock-information-bot",
	"-portfolio-disclosure-bot",
	"-data-bot",
}

// BotKey normalizes a bot display name into the key the admin panel cards
// are addressed by: lowercase, spaces to hyphens, and the historical name
// variants collapsed down to the generic "-bot" suffix, so that
// "NSE Stock Information Bot" keys as "nse-bot".
func BotKey(botName string) string {
	key := strings.ToLower(botName)
	key = strings.ReplaceAll(key, " ", "-")
	for _, suffix := range collapsedSuffixes {
		if strings.HasSuffix(key, suffix) {
			key = strings.TrimSuffix(key, suffix) + "-bot"
			break
		}
	}
	return key
}
