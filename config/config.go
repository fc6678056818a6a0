package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// IST is the timezone all BookMyShow date codes are anchored to.
var IST = time.FixedZone("IST", 5*3600+1800)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	BaseURL       string
	DateCode      string
	HTTPTimeoutMs int

	MaxConcurrency int
	RateLimitMs    int
	MaxErrors      int
	MaxRestarts    int
	RestartDelayMs int
	FlushRetries   int

	VenuesPath    string
	ProgressDir   string
	CSVOutputPath string

	PostgresEnabled  bool
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		BaseURL:       getEnv("BMS_BASE_URL", "https://in.bookmyshow.com"),
		DateCode:      getEnv("BMS_DATE_CODE", time.Now().In(IST).Format("20060102")),
		HTTPTimeoutMs: getEnvInt("HTTP_TIMEOUT_MS", 30000),

		MaxConcurrency: getEnvInt("NUM_WORKERS", 5),
		RateLimitMs:    getEnvInt("RATE_LIMIT_MS", 200),
		MaxErrors:      getEnvInt("MAX_ERRORS", 10),
		MaxRestarts:    getEnvInt("MAX_RESTARTS", 5),
		RestartDelayMs: getEnvInt("RESTART_DELAY_MS", 500),
		FlushRetries:   getEnvInt("FLUSH_RETRIES", 3),

		VenuesPath:    getEnv("VENUES_PATH", "venues.json"),
		ProgressDir:   getEnv("PROGRESS_DIR", "./progress"),
		CSVOutputPath: getEnv("CSV_OUTPUT_PATH", "./output/movie_summary.csv"),

		PostgresEnabled:  getEnvBool("POSTGRES_ENABLED", false),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "tracker"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "tracker123"),
		PostgresDB:       getEnv("POSTGRES_DB", "boxoffice_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}
