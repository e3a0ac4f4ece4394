package database

import (
	"embed"
	"fmt"
	"log"
	"time"

	"forumCPT/internal/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed migrations/*.sql
var migrations embed.FS

type MethodsDB interface {
	CloseDB() error
	RunMigrations(driver string) error
	HealthCheck() error
}

type DB struct {
	*sqlx.DB
}

// DataSource returns the driver name and connection string for cfg.
func DataSource(cfg config.DB) (string, string, error) {
	switch cfg.DbDRIVER {
	case "postgres":
		return "postgres", fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			cfg.DbHOST,
			cfg.DbPORT,
			cfg.DbUSER,
			cfg.DbPASSWORD,
			cfg.DbNAME,
			cfg.DbSSLMODE,
		), nil
	case "sqlite3":
		return "sqlite3", fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", cfg.DbPATH), nil
	default:
		return "", "", fmt.Errorf("unsupported database driver %q", cfg.DbDRIVER)
	}
}

func ConnectDB(cfg *config.Config) (*DB, error) {
	driver, dsn, err := DataSource(cfg.DB)
	if err != nil {
		return nil, err
	}

	log.Printf("Connecting to database: driver=%s, host=%s, dbname=%s", driver, cfg.DB.DbHOST, cfg.DB.DbNAME)

	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	dbStruct := &DB{db}

	if err := dbStruct.RunMigrations(driver); err != nil {
		db.Close()
		return nil, err
	}

	if err := dbStruct.HealthCheck(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database health check failed: %w", err)
	}

	log.Printf("Connected to %s", driver)
	return dbStruct, nil
}

func (db *DB) CloseDB() error {
	return db.DB.Close()
}

// RunMigrations applies the embedded schema for driver. Statements are idempotent.
func (db *DB) RunMigrations(driver string) error {
	migrationSQL, err := migrations.ReadFile("migrations/" + driver + ".sql")
	if err != nil {
		return fmt.Errorf("migration file for driver %s not found: %w", driver, err)
	}

	log.Printf("Applying migrations for %s", driver)

	if _, err := db.Exec(string(migrationSQL)); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	log.Println("Migrations applied")
	return nil
}

func (db *DB) HealthCheck() error {
	if db == nil || db.DB == nil {
		return fmt.Errorf("database connection is not initialized")
	}

	return db.Ping()
}
