package cfg

import (
	"cmp"
	"fmt"
	"strings"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// News provider configuration
	NewsAPIKey  string `long:"news-api-key" env:"NEWS_API_KEY" description:"API key for the news provider (RSS fallback is used when empty)"`
	NewsBaseURL string `long:"news-base-url" env:"NEWS_BASE_URL" default:"https://newsdata.io" description:"Base URL for the news provider API"`
	RSSFeeds    string `long:"rss-feeds" env:"RSS_FEEDS" description:"Comma-separated business news RSS feed URLs (alternate provider)"`

	// Application configuration
	Port            string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	DBPath          string `long:"db-path" env:"DB_PATH" default:"./market-brief.db" description:"Path to the SQLite snapshot database"`
	VocabularyFile  string `long:"vocabulary-file" env:"VOCABULARY_FILE" description:"Optional YAML file overriding the built-in keyword vocabularies"`
	SnapshotTTL     int    `long:"snapshot-ttl" env:"SNAPSHOT_TTL" default:"900" description:"Maximum snapshot age in seconds before a fresh fetch"`
	RefreshInterval int    `long:"refresh-interval" env:"REFRESH_INTERVAL" default:"600" description:"Background refresh interval in seconds"`
	WorkerCount     int    `long:"worker-count" env:"WORKER_COUNT" default:"2" description:"Number of background workers for refresh tasks"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Market Brief/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		NewsAPIKey:      raw.NewsAPIKey,
		NewsBaseURL:     raw.NewsBaseURL,
		RSSFeeds:        splitFeedList(raw.RSSFeeds),
		Port:            raw.Port,
		DBPath:          raw.DBPath,
		VocabularyFile:  raw.VocabularyFile,
		SnapshotTTL:     raw.SnapshotTTL,
		RefreshInterval: raw.RefreshInterval,
		WorkerCount:     raw.WorkerCount,
		UserAgent:       raw.UserAgent,
		Timezone:        raw.Timezone,
		Debug:           raw.Debug,
		Version:         GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func splitFeedList(raw string) []string {
	if raw == "" {
		return nil
	}

	var feeds []string
	for _, feed := range strings.Split(raw, ",") {
		feed = strings.TrimSpace(feed)
		if feed != "" {
			feeds = append(feeds, feed)
		}
	}
	return feeds
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
			fmt.Printf("Timezone configured: %s\n", timezone)
		}
	}
	return nil
}
