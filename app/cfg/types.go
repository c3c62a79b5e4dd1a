package cfg

type Cfg struct {
	// News provider configuration
	NewsAPIKey  string
	NewsBaseURL string
	RSSFeeds    []string

	// Application configuration
	Port            string
	DBPath          string
	VocabularyFile  string
	SnapshotTTL     int
	RefreshInterval int
	WorkerCount     int

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
