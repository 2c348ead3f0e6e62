package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Manager  ManagerConfig
	CORS     CORSConfig
	Printer  PrinterConfig
	Catalog  CatalogConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

type DatabaseConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
	Debug    bool
}

// ManagerConfig holds the shared manager credential and its limits.
// PasscodeHash is a bcrypt hash; when empty, Passcode is hashed at
// startup so the plain secret never has to live in the process config
// of a production install.
type ManagerConfig struct {
	Passcode       string
	PasscodeHash   string
	JWTSecret      string
	TokenExpiry    time.Duration
	AttemptsPerMin float64
	AttemptsBurst  int
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type PrinterConfig struct {
	Type      string // "usb", "network", or "none"
	USBPath   string
	Address   string
	Width     int
	StoreName string
}

type CatalogConfig struct {
	Path string
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "till-api")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("DB_ENABLED", true)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "till")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "America/Sao_Paulo")
	viper.SetDefault("DB_DEBUG", false)
	viper.SetDefault("MANAGER_PASSCODE", "15704")
	viper.SetDefault("MANAGER_PASSCODE_HASH", "")
	viper.SetDefault("MANAGER_JWT_SECRET", "change-this-secret-in-production")
	viper.SetDefault("MANAGER_TOKEN_EXPIRY_HOURS", 12)
	viper.SetDefault("MANAGER_ATTEMPTS_PER_MIN", 10)
	viper.SetDefault("MANAGER_ATTEMPTS_BURST", 5)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("PRINTER_TYPE", "none")
	viper.SetDefault("PRINTER_USB_PATH", "")
	viper.SetDefault("PRINTER_ADDRESS", "")
	viper.SetDefault("PRINTER_WIDTH", 32)
	viper.SetDefault("PRINTER_STORE_NAME", "TO FRITO!")
	viper.SetDefault("CATALOG_PATH", "")

	return &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Port:  viper.GetString("APP_PORT"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		Database: DatabaseConfig{
			Enabled:  viper.GetBool("DB_ENABLED"),
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
			Timezone: viper.GetString("DB_TIMEZONE"),
			Debug:    viper.GetBool("DB_DEBUG"),
		},
		Manager: ManagerConfig{
			Passcode:       viper.GetString("MANAGER_PASSCODE"),
			PasscodeHash:   viper.GetString("MANAGER_PASSCODE_HASH"),
			JWTSecret:      viper.GetString("MANAGER_JWT_SECRET"),
			TokenExpiry:    time.Duration(viper.GetInt("MANAGER_TOKEN_EXPIRY_HOURS")) * time.Hour,
			AttemptsPerMin: viper.GetFloat64("MANAGER_ATTEMPTS_PER_MIN"),
			AttemptsBurst:  viper.GetInt("MANAGER_ATTEMPTS_BURST"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		Printer: PrinterConfig{
			Type:      viper.GetString("PRINTER_TYPE"),
			USBPath:   viper.GetString("PRINTER_USB_PATH"),
			Address:   viper.GetString("PRINTER_ADDRESS"),
			Width:     viper.GetInt("PRINTER_WIDTH"),
			StoreName: viper.GetString("PRINTER_STORE_NAME"),
		},
		Catalog: CatalogConfig{
			Path: viper.GetString("CATALOG_PATH"),
		},
	}
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}
