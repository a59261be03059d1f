package botrun

import (
	"testing"
	"time"

	"fundlens/database"
)

func TestBotKeyNormalization(t *testing.T) {
	tests := []struct {
		name    string
		botName string
		want    string
	}{
		{"NSE information variant", "NSE Stock Information Bot", "nse-bot"},
		{"AMC disclosure variant", "AMC Portfolio Disclosure Bot", "amc-bot"},
		{"indices bot", "Indices Data Bot", "indices-bot"},
		{"already hyphenated", "nse-bot", "nse-bot"},
		{"manual upload", "Manual Upload: holdings.csv", "manual-upload:-holdings.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BotKey(tt.botName); got != tt.want {
				t.Errorf("BotKey(%q) = %q, want %q", tt.botName, got, tt.want)
			}
		})
	}
}

func TestSummarizeSortsNewestFirst(t *testing.T) {
	now := time.Now()
	logs := []database.BotLog{
		{ID: "a", BotName: "NSE Stock Information Bot", Status: database.StatusSuccess, Timestamp: now.Add(-2 * time.Hour)},
		{ID: "b", BotName: "Indices Data Bot", Status: database.StatusFailure, Timestamp: now},
		{ID: "c", BotName: "AMC Portfolio Disclosure Bot", Status: database.StatusSuccess, Timestamp: now.Add(-1 * time.Hour)},
	}

	summary := Summarize(logs)

	wantOrder := []string{"b", "c", "a"}
	for i, want := range wantOrder {
		if summary.Logs[i].ID != want {
			t.Errorf("position %d: expected log %s, got %s", i, want, summary.Logs[i].ID)
		}
	}

	// The input slice must stay untouched.
	if logs[0].ID != "a" || logs[2].ID != "c" {
		t.Error("Summarize mutated its input slice")
	}
}

func TestSummarizeLastUpdatedKeys(t *testing.T) {
	now := time.Now()
	logs := []database.BotLog{
		{ID: "a", BotName: "NSE Stock Information Bot", Status: database.StatusSuccess, Timestamp: now.Add(-24 * time.Hour)},
		{ID: "b", BotName: "AMC Portfolio Disclosure Bot", Status: database.StatusSuccess, Timestamp: now.Add(-48 * time.Hour)},
	}

	summary := Summarize(logs)

	if _, ok := summary.LastUpdated["nse-bot"]; !ok {
		t.Errorf("expected key nse-stock-bot, got keys %v", keys(summary.LastUpdated))
	}
	if _, ok := summary.LastUpdated["amc-bot"]; !ok {
		t.Errorf("expected key amc-portfolio-bot, got keys %v", keys(summary.LastUpdated))
	}

	want := now.Add(-24 * time.Hour).Format(lastUpdatedFormat)
	if got := summary.LastUpdated["nse-bot"]; got != want {
		t.Errorf("expected timestamp %q, got %q", want, got)
	}
}

func TestSummarizeNewerFailureDoesNotWin(t *testing.T) {
	now := time.Now()
	logs := []database.BotLog{
		{ID: "ok", BotName: "Indices Data Bot", Status: database.StatusSuccess, Timestamp: now.Add(-3 * time.Hour)},
		{ID: "bad", BotName: "Indices Data Bot", Status: database.StatusFailure, Timestamp: now},
		{ID: "pending", BotName: "Indices Data Bot", Status: database.StatusInProgress, Timestamp: now},
	}

	summary := Summarize(logs)

	want := now.Add(-3 * time.Hour).Format(lastUpdatedFormat)
	if got := summary.LastUpdated["indices-bot"]; got != want {
		t.Errorf("failure/in-progress overrode last success: got %q, want %q", got, want)
	}
}

func TestSummarizeNoSuccesses(t *testing.T) {
	logs := []database.BotLog{
		{ID: "bad", BotName: "Indices Data Bot", Status: database.StatusFailure, Timestamp: time.Now()},
	}

	summary := Summarize(logs)
	if len(summary.LastUpdated) != 0 {
		t.Errorf("expected empty lastUpdated, got %v", summary.LastUpdated)
	}
	if len(summary.Logs) != 1 {
		t.Errorf("expected 1 log, got %d", len(summary.Logs))
	}
}

func keys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
