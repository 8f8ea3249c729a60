package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables,
// plus the lookup tables driving the normalization pipeline. The tables are
// plain fields so tests and other locales can swap them out.
type Config struct {
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	MaxConcurrency int
	RateLimitMs    int
	MaxRetries     int

	DirectoryURL     string
	EntryHolderClass string
	CityClass        string
	ContactClass     string

	RawCSVPath   string
	CleanCSVPath string
	StatsCSVPath string
	ChromeBin    string

	// Normalization tables.
	NationalPhonePrefix string
	DefaultCurrency     string
	Multipliers         map[string]float64
	CurrencyAliases     map[string]string
	ExchangeRatesEUR    map[string]float64

	// Domains with more occurrences than this are charted.
	MinDomainCount int
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "scraper"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "scraper123"),
		PostgresDB:       getEnv("POSTGRES_DB", "companies_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		MaxConcurrency: getEnvInt("MAX_CONCURRENCY", 3),
		RateLimitMs:    getEnvInt("RATE_LIMIT_MS", 1000),
		MaxRetries:     getEnvInt("MAX_RETRIES", 3),

		DirectoryURL:     getEnv("DIRECTORY_URL", "https://industrie.de/firmenverzeichnis"),
		EntryHolderClass: getEnv("ENTRY_HOLDER_CLASS", "infoservice-entry-holder"),
		CityClass:        getEnv("CITY_CLASS", "meta-small"),
		ContactClass:     getEnv("CONTACT_CLASS", "textwidget"),

		RawCSVPath:   getEnv("RAW_CSV_PATH", "./data/raw/companies_data.csv"),
		CleanCSVPath: getEnv("CLEAN_CSV_PATH", "./data/clean/cleaned_companies_data.csv"),
		StatsCSVPath: getEnv("STATS_CSV_PATH", "./data/clean/summary_statistics.csv"),
		ChromeBin:    getEnv("CHROME_BIN", ""),

		NationalPhonePrefix: getEnv("NATIONAL_PHONE_PREFIX", "+49"),
		DefaultCurrency:     getEnv("DEFAULT_CURRENCY", "€"),
		Multipliers:         DefaultMultipliers(),
		CurrencyAliases:     DefaultCurrencyAliases(),
		ExchangeRatesEUR:    DefaultExchangeRatesEUR(),

		MinDomainCount: getEnvInt("MIN_DOMAIN_COUNT", 6),
	}
}

// DefaultMultipliers maps magnitude words found in net-assets statements to
// their numeric multipliers. Extend as new representations show up.
func DefaultMultipliers() map[string]float64 {
	return map[string]float64{
		"Mrd":       1e9,
		"Billion":   1e12,
		"Millionen": 1e6,
		"Million":   1e6,
		"Mill":      1e6,
		"Mio":       1e6,
		"M":         1e6,
		"million":   1e6,
	}
}

// DefaultCurrencyAliases maps free-text currency mentions to canonical codes.
func DefaultCurrencyAliases() map[string]string {
	return map[string]string{
		"Euro":         "€",
		"€":            "€",
		"Eur":          "€",
		"CHF":          "CHF",
		"U.S. Dollars": "$",
		"$":            "$",
		"Dollars":      "$",
		"dollars":      "$",
	}
}

// DefaultExchangeRatesEUR maps canonical currency codes to their EUR rate,
// as of 05.09.2023. Unknown codes convert 1:1.
func DefaultExchangeRatesEUR() map[string]float64 {
	return map[string]float64{
		"€":   1.0,
		"$":   0.93,
		"CHF": 1.05,
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
