package config

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

type Config struct {
	DB        *sql.DB
	Driver    string
	JWTSecret string
	Addr      string
}

var AppConfig *Config

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// InitDB loads configuration from the environment (and .env, if present)
// and opens the database. DB_DRIVER selects postgres or sqlite; sqlite is
// the default so the app runs against a local file with no setup.
func InitDB() {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	driver := getEnv("DB_DRIVER", "sqlite")

	var db *sql.DB
	var err error

	switch driver {
	case "postgres":
		psqlInfo := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			getEnv("DB_HOST", "localhost"),
			getEnv("DB_PORT", "5432"),
			getEnv("DB_USER", "postgres"),
			getEnv("DB_PASSWORD", ""),
			getEnv("DB_NAME", "schoolapp"),
			getEnv("DB_SSLMODE", "disable"),
		)
		db, err = sql.Open("postgres", psqlInfo)
	case "sqlite":
		db, err = sql.Open("sqlite", getEnv("DB_PATH", "app.db"))
	default:
		log.Fatalf("Unsupported DB_DRIVER %q (want postgres or sqlite)", driver)
	}
	if err != nil {
		log.Fatal("Failed to open database connection:", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	if err = db.Ping(); err != nil {
		log.Fatalf("Cannot establish database connection: %v", err)
	}

	AppConfig = &Config{
		DB:        db,
		Driver:    driver,
		JWTSecret: getEnv("JWT_SECRET", "dev-secret-key"),
		Addr:      ":" + getEnv("PORT", "5000"),
	}
	log.Printf("Database connected successfully (%s)", driver)
}

func GetDB() *sql.DB {
	return AppConfig.DB
}

func GetDriver() string {
	return AppConfig.Driver
}

func GetJWTSecret() []byte {
	if AppConfig == nil {
		return []byte("dev-secret-key")
	}
	return []byte(AppConfig.JWTSecret)
}
