package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv   string
	LogLevel string

	HTTPPort int

	// CartBackend selects the remote store implementation: "postgres" or
	// "firestore".
	CartBackend string

	Postgres PostgresConfig

	FirestoreProjectID string
	// GoogleCredentials is a service-account key file path. Empty means
	// Application Default Credentials.
	GoogleCredentials string

	SendGridKey  string
	MailFrom     string
	StoreName    string

	RazorpayKeyID  string
	RazorpaySecret string
	// RazorpaySecretName, when set, names a Secret Manager secret that
	// overrides RazorpaySecret at startup.
	RazorpaySecretName string
}

type PostgresConfig struct {
	Host string
	Port int
	User string
	Pass string
	DB   string
}

func Load() Config {
	// Missing .env is fine; env vars win either way.
	_ = godotenv.Load()

	return Config{
		AppEnv:   getEnv("APP_ENV", "dev"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		HTTPPort: getEnvInt("HTTP_PORT", 8080),

		CartBackend: getEnv("CART_BACKEND", "postgres"),

		Postgres: PostgresConfig{
			Host: getEnv("POSTGRES_HOST", "localhost"),
			Port: getEnvInt("POSTGRES_PORT", 5432),
			User: getEnv("POSTGRES_USER", "apex"),
			Pass: getEnv("POSTGRES_PASSWORD", "apexpassword"),
			DB:   getEnv("POSTGRES_DB", "apex_db"),
		},

		FirestoreProjectID: getEnv("FIRESTORE_PROJECT_ID", ""),
		GoogleCredentials:  getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),

		SendGridKey: getEnv("SENDGRID_API_KEY", ""),
		MailFrom:    getEnv("MAIL_FROM", "orders@apexperfumes.com"),
		StoreName:   getEnv("STORE_NAME", "Apex Perfumes"),

		RazorpayKeyID:      getEnv("RAZORPAY_KEY_ID", ""),
		RazorpaySecret:     getEnv("RAZORPAY_KEY_SECRET", ""),
		RazorpaySecretName: getEnv("RAZORPAY_SECRET_NAME", ""),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}

	return n
}
