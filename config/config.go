package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/yeremiapane/intranet-portal/utils"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Portal systems unlocked by the shared-password login.
const (
	SystemCardapio   = "cardapio"
	SystemProtocolos = "protocolos"
	SystemBlog       = "dti_blog"
	SystemZeladoria  = "zeladoria"
)

type Config struct {
	Port     string
	GinMode  string
	LogLevel string

	DBPath    string
	UploadDir string

	JWTSecret    []byte
	SessionTTL   time.Duration
	SecureCookie bool

	CORSOrigin         string
	LoginRatePerMinute int

	// bcrypt hash per system, from CARDAPIO_CRYPT and friends
	PasswordHashes map[string]string

	MealSlots []string

	AccessPolicyFile string

	Roster RosterConfig
}

// RosterConfig points at the hospital MySQL database used by the
// zeladoria patient export.
type RosterConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

func (r RosterConfig) Enabled() bool {
	return r.Host != "" && r.Database != ""
}

func (r RosterConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		r.User, r.Password, r.Host, r.Port, r.Database)
}

// Load reads the environment (and .env when present). Callers that start
// the server must also call Validate.
func Load() (*Config, error) {
	_ = godotenv.Load()

	ttl, err := time.ParseDuration(getEnv("SESSION_TTL", "8h"))
	if err != nil {
		return nil, fmt.Errorf("SESSION_TTL: %w", err)
	}

	loginRate, err := strconv.Atoi(getEnv("LOGIN_RATE_PER_MINUTE", "10"))
	if err != nil {
		loginRate = 10
	}

	rosterPort, err := strconv.Atoi(getEnv("DB_PORT", "3306"))
	if err != nil {
		rosterPort = 3306
	}

	cfg := &Config{
		Port:               getEnv("PORT", "3000"),
		GinMode:            getEnv("GIN_MODE", "debug"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		DBPath:             getEnv("DB_PATH", "./database.db"),
		UploadDir:          getEnv("UPLOAD_DIR", "./uploads"),
		JWTSecret:          []byte(getEnv("JWT_SECRET", "")),
		SessionTTL:         ttl,
		SecureCookie:       getEnv("SECURE_COOKIE", "false") == "true",
		CORSOrigin:         getEnv("CORS_ORIGIN", "*"),
		LoginRatePerMinute: loginRate,
		PasswordHashes: map[string]string{
			SystemCardapio:   strings.TrimSpace(os.Getenv("CARDAPIO_CRYPT")),
			SystemProtocolos: strings.TrimSpace(os.Getenv("PROTOCOLOS_CRYPT")),
			SystemBlog:       strings.TrimSpace(os.Getenv("DTIBLOG_CRYPT")),
			SystemZeladoria:  strings.TrimSpace(os.Getenv("ZELADORIA_CRYPT")),
		},
		MealSlots:        splitList(getEnv("MEAL_SLOTS", "Almoço,Jantar")),
		AccessPolicyFile: getEnv("ACCESS_POLICY_FILE", ""),
		Roster: RosterConfig{
			Host:     getEnv("DB_HOST", ""),
			Port:     rosterPort,
			User:     getEnv("DB_USER", ""),
			Password: getEnv("DB_PASS", ""),
			Database: getEnv("DB_NAME", ""),
		},
	}

	return cfg, nil
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	if len(c.JWTSecret) == 0 {
		return fmt.Errorf("JWT_SECRET environment variable is required")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if len(c.MealSlots) == 0 {
		return fmt.Errorf("MEAL_SLOTS must name at least one meal")
	}
	for system, hash := range c.PasswordHashes {
		if hash == "" {
			utils.InfoLogger.Warnf("No password hash configured for %s, its login is disabled", system)
		}
	}
	return nil
}

// InitDB opens the portal's sqlite file. A single connection keeps writers
// serialized.
func InitDB(cfg *Config) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", cfg.DBPath, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

// InitRosterDB connects to the hospital database. It returns nil, nil when
// the roster is not configured.
func InitRosterDB(cfg *Config) (*gorm.DB, error) {
	if !cfg.Roster.Enabled() {
		return nil, nil
	}

	db, err := gorm.Open(mysql.Open(cfg.Roster.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open roster database %s: %w", cfg.Roster.Host, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
