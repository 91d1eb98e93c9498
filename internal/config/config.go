package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all configuration for our application
type Config struct {
	Port                      string
	Origin                    string
	Environment               string
	JWTSecret                 string
	JWTRefreshSecret          string
	Database                  DatabaseConfig
	Midtrans                  MidtransConfig
	JWTExpirationMinutes      int
	JWTRefreshExpirationHours int
	PaymentWindowHours        int
	ExpirySweepMinutes        int
	FCMCredentialsFile        string
	AppURL                    string
}

// DatabaseConfig holds database connection details
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Name     string
	DSN      string
}

// MidtransConfig holds payment gateway credentials
type MidtransConfig struct {
	ServerKey  string
	Production bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load database configuration
	dbConfig := DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "3306"),
		Username: getEnv("DB_USERNAME", "root"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "sti_clinic"),
	}

	// Build DSN (Data Source Name) for MySQL connection
	dbConfig.DSN = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		dbConfig.Username, dbConfig.Password, dbConfig.Host, dbConfig.Port, dbConfig.Name)

	midtransConfig := MidtransConfig{
		ServerKey:  getEnv("MIDTRANS_SERVER_KEY", ""),
		Production: getEnv("MIDTRANS_ENV", "sandbox") == "production",
	}

	jwtExpMinutes, err := strconv.Atoi(getEnv("JWT_EXPIRATION_MINUTES", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRATION_MINUTES: %w", err)
	}

	jwtRefreshExpHours, err := strconv.Atoi(getEnv("JWT_REFRESH_EXPIRATION_HOURS", "168")) // 7 days
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_REFRESH_EXPIRATION_HOURS: %w", err)
	}

	paymentWindowHours, err := strconv.Atoi(getEnv("PAYMENT_WINDOW_HOURS", "24"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYMENT_WINDOW_HOURS: %w", err)
	}

	expirySweepMinutes, err := strconv.Atoi(getEnv("EXPIRY_SWEEP_MINUTES", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid EXPIRY_SWEEP_MINUTES: %w", err)
	}

	// Return complete configuration
	return &Config{
		Port:                      getEnv("PORT", "3001"),
		Origin:                    getEnv("ORIGIN", "http://localhost:5173"),
		Environment:               getEnv("APP_ENV", "development"),
		JWTSecret:                 getEnv("JWT_SECRET", "default_jwt_secret"),
		JWTRefreshSecret:          getEnv("JWT_REFRESH_SECRET", "default_refresh_secret"),
		Database:                  dbConfig,
		Midtrans:                  midtransConfig,
		JWTExpirationMinutes:      jwtExpMinutes,
		JWTRefreshExpirationHours: jwtRefreshExpHours,
		PaymentWindowHours:        paymentWindowHours,
		ExpirySweepMinutes:        expirySweepMinutes,
		FCMCredentialsFile:        getEnv("FCM_CREDENTIALS_FILE", ""),
		AppURL:                    getEnv("APP_URL", "http://localhost:3001"),
	}, nil
}

// Helper function to get environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
