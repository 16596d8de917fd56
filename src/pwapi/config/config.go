package config

import (
	"log"
	"os"
	"time"
)

type Config struct {
	MySQLDSN     string
	RedisURL     string // empty means in-process response cache
	Port         string
	UpstreamURL  string
	ContactEmail string

	// DataSource selects the read surface backing: store, live or fixture.
	DataSource string
	FixtureDir string

	AllowOrigins []string

	VotesEvery    time.Duration
	BillsEvery    time.Duration
	MembersEvery  time.Duration
	WarmDelay     time.Duration
	ReapInterval  time.Duration
	SweepInterval time.Duration
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		if def == "" {
			log.Fatalf("missing env %s", key)
		}
		return def
	}
	return v
}

func getenvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("bad duration in %s: %v", key, err)
	}
	return d
}

func Load() Config {
	return Config{
		MySQLDSN:     getenv("MYSQL_DSN", "pw:pw@tcp(localhost:3306)/parliamentwatch?parseTime=true"),
		RedisURL:     os.Getenv("REDIS_URL"),
		Port:         getenv("PORT", "8080"),
		UpstreamURL:  getenv("UPSTREAM_URL", "https://api.openparliament.ca"),
		ContactEmail: getenv("CONTACT_EMAIL", "ops@parliamentwatch.example"),
		DataSource:   getenv("DATA_SOURCE", "store"),
		FixtureDir:   getenv("FIXTURE_DIR", "fixtures"),
		AllowOrigins: []string{getenv("DASHBOARD_ORIGIN", "http://localhost:3000")},

		VotesEvery:    getenvDuration("VOTES_REFRESH_EVERY", 24*time.Hour),
		BillsEvery:    getenvDuration("BILLS_REFRESH_EVERY", 24*time.Hour),
		MembersEvery:  getenvDuration("MEMBERS_REFRESH_EVERY", 7*24*time.Hour),
		WarmDelay:     getenvDuration("REFRESH_WARM_DELAY", 10*time.Second),
		ReapInterval:  getenvDuration("REAP_INTERVAL", time.Hour),
		SweepInterval: getenvDuration("CACHE_SWEEP_INTERVAL", time.Minute),
	}
}
