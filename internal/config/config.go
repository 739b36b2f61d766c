package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                 string
	JWTSecret            string
	MongoURI             string
	DBName               string
	SkipAuth             bool
	Environment          string
	AppId                string
	LogToDB              bool
	ExpiryReportSchedule string   // Cron expression; empty disables the reporter
	AdminRoles           []string // Roles allowed to call grant administration
	CORSOrigins          []string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file successfully")
	}

	return &Config{
		Port:                 getEnv("PORT", "8080"),
		JWTSecret:            getEnv("JWT_SECRET", "secret"),
		MongoURI:             getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:               getEnv("DB_NAME", "staff-acl"),
		SkipAuth:             getEnv("SKIP_AUTH", "false") == "true",
		Environment:          getEnv("ENVIRONMENT", "development"),
		AppId:                getEnv("APP_ID", "staff-acl"),
		LogToDB:              getEnv("LOG_TO_DB", "false") == "true",
		ExpiryReportSchedule: getEnv("EXPIRY_REPORT_SCHEDULE", "@hourly"),
		AdminRoles:           splitList(getEnv("ADMIN_ROLES", "admin,manager")),
		CORSOrigins:          splitList(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:3001")),
	}, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.ToLower(strings.TrimSpace(part)); p != "" {
			out = append(out, p)
		}
	}
	return out
}
