package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort   string
	DatabaseType string
	DatabasePath string
	DatabaseURL  string
	Location     *time.Location

	// Parent area
	ParentPIN         string
	ParentTokenSecret string
	ParentTokenTTL    time.Duration

	CORSOrigins []string

	// Session report e-mail (disabled when SESFromEmail is empty)
	AWSRegion    string
	SESFromEmail string
	SESFromName  string
	ParentEmail  string

	Debug bool
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is loaded first when present.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed to load .env file: %v", err)
	}

	return &Config{
		ServerPort:        getEnv("PORT", "8080"),
		DatabaseType:      getEnv("DB_TYPE", "sqlite"),
		DatabasePath:      getEnv("DB_PATH", "./gugudan.db"),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		Location:          getLocation("TIMEZONE", "Asia/Seoul"),
		ParentPIN:         getEnv("PARENT_PIN", "0000"),
		ParentTokenSecret: getEnv("PARENT_TOKEN_SECRET", "change-me"),
		ParentTokenTTL:    15 * time.Minute,
		CORSOrigins:       splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		AWSRegion:         getEnv("AWS_REGION", "ap-northeast-2"),
		SESFromEmail:      getEnv("SES_FROM_EMAIL", ""),
		SESFromName:       getEnv("SES_FROM_NAME", "구구단 놀이터"),
		ParentEmail:       getEnv("PARENT_EMAIL", ""),
		Debug:             getEnv("DEBUG", "false") == "true",
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getLocation resolves an IANA zone name, falling back to the host's local zone
func getLocation(key, defaultValue string) *time.Location {
	name := getEnv(key, defaultValue)
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("Warning: unknown time zone %q, using local time: %v", name, err)
		return time.Local
	}
	return loc
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
