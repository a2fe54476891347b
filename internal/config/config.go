package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The gateway itself issues no credentials: it
// fronts the volunteer platform's REST API, so the only secrets here are
// connection parameters.
type Config struct {
	Env             string // application environment (e.g. "dev", "prod")
	Port            string // HTTP port to listen on
	UpstreamBaseURL string // origin of the volunteer platform REST API
	UpstreamTimeout int    // upstream request timeout in seconds
	SessionTTLMin   int    // gateway session lifetime in minutes
	DebounceMS      int    // trailing-edge debounce window for draft writes, in milliseconds
	DBUser          string // database username
	DBPass          string // database password (optional)
	DBHost          string // database host address
	DBPort          string // database port number
	DBName          string // database name
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.  The upstream base URL
// is the single externally documented configuration knob of the dashboard;
// everything else has a sensible default or is infrastructure.
func Load() Config {
	return Config{
		Env:             must("APP_ENV"),           // environment (dev/test/prod)
		Port:            must("APP_PORT"),          // port to bind the HTTP server
		UpstreamBaseURL: must("UPSTREAM_BASE_URL"), // e.g. https://api.volunteerin.id
		UpstreamTimeout: intOr("UPSTREAM_TIMEOUT_SEC", 30),
		SessionTTLMin:   intOr("SESSION_TTL_MIN", 12*60),
		DebounceMS:      intOr("DRAFT_DEBOUNCE_MS", 500),
		DBUser:          must("DB_USER"), // database user
		DBPass:          os.Getenv("DB_PASS"),
		DBHost:          must("DB_HOST"), // database host
		DBPort:          must("DB_PORT"), // database port
		DBName:          must("DB_NAME"), // database name
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// intOr reads an optional integer variable, falling back to def when the
// variable is unset or malformed in a recoverable way.  A non-numeric value
// is still treated as a configuration mistake and aborts startup.
func intOr(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
