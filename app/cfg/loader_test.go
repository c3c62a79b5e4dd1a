package cfg

import (
	"testing"
)

func TestGetVersion(t *testing.T) {
	// Test default version
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}

	version := GetVersion()
	if version != "dev" && version != "unknown" {
		// This is fine, version could be set at build time
		t.Logf("Version: %s", version)
	}
}

func TestSplitFeedList(t *testing.T) {
	tests := []struct {
		raw      string
		expected int
	}{
		{"", 0},
		{"https://example.com/feed.xml", 1},
		{"https://a.com/rss, https://b.com/rss", 2},
		{" , https://a.com/rss, ", 1},
	}

	for _, test := range tests {
		result := splitFeedList(test.raw)
		if len(result) != test.expected {
			t.Errorf("splitFeedList(%q): expected %d feeds, got %d", test.raw, test.expected, len(result))
		}
	}
}

func TestSplitFeedListTrimsWhitespace(t *testing.T) {
	feeds := splitFeedList("  https://a.com/rss ,https://b.com/rss  ")
	if len(feeds) != 2 {
		t.Fatalf("Expected 2 feeds, got %d", len(feeds))
	}
	if feeds[0] != "https://a.com/rss" {
		t.Errorf("First feed not trimmed: %q", feeds[0])
	}
	if feeds[1] != "https://b.com/rss" {
		t.Errorf("Second feed not trimmed: %q", feeds[1])
	}
}

func TestConfigFields(t *testing.T) {
	cfg := &Cfg{
		NewsAPIKey:      "test-key",
		NewsBaseURL:     "https://newsdata.io",
		Port:            "8080",
		DBPath:          "./test.db",
		SnapshotTTL:     900,
		RefreshInterval: 600,
		WorkerCount:     2,
		UserAgent:       "Test Agent",
		Timezone:        "UTC",
		Debug:           true,
		Version:         "test-version",
	}

	if cfg.NewsAPIKey != "test-key" {
		t.Errorf("Expected API key 'test-key', got '%s'", cfg.NewsAPIKey)
	}
	if cfg.NewsBaseURL != "https://newsdata.io" {
		t.Errorf("Expected base URL 'https://newsdata.io', got '%s'", cfg.NewsBaseURL)
	}
	if cfg.Port != "8080" {
		t.Errorf("Expected port '8080', got '%s'", cfg.Port)
	}
	if cfg.SnapshotTTL != 900 {
		t.Errorf("Expected snapshot TTL 900, got %d", cfg.SnapshotTTL)
	}
	if cfg.RefreshInterval != 600 {
		t.Errorf("Expected refresh interval 600, got %d", cfg.RefreshInterval)
	}
	if cfg.WorkerCount != 2 {
		t.Errorf("Expected worker count 2, got %d", cfg.WorkerCount)
	}
	if cfg.UserAgent != "Test Agent" {
		t.Errorf("Expected user agent 'Test Agent', got '%s'", cfg.UserAgent)
	}
	if !cfg.Debug {
		t.Error("Expected debug to be enabled")
	}
}
