package config

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fluffyriot/shareline/internal/database"
	"github.com/fluffyriot/shareline/internal/share"
	"github.com/google/uuid"
	"github.com/pressly/goose/v3"

	_ "github.com/lib/pq"
)

type AppConfig struct {
	Port          string
	SessionSecret string
	Policy        share.PolicyConfig
	AdminActors   map[uuid.UUID]bool
	DevMode       bool
	DBInitErr     error
}

func LoadApp() *AppConfig {
	cfg := &AppConfig{
		Port:          os.Getenv("PORT"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = "shareline-dev-secret"
	}

	cfg.Policy = share.DefaultPolicyConfig()
	if path := os.Getenv("SHARELINE_POLICY_FILE"); path != "" {
		loaded, err := loadPolicyFile(path)
		if err != nil {
			fmt.Printf("Failed to load policy file %v, using defaults. Error: %v\n", path, err)
		} else {
			cfg.Policy = loaded
		}
	}
	if mode := os.Getenv("SHARELINE_CREDIT_MODE"); mode != "" {
		switch share.CreditMode(mode) {
		case share.CreditOrigin, share.CreditParent:
			cfg.Policy.CreditMode = share.CreditMode(mode)
		default:
			fmt.Printf("Unknown SHARELINE_CREDIT_MODE %q, falling back to %q\n", mode, share.CreditOrigin)
			cfg.Policy.CreditMode = share.CreditOrigin
		}
	}

	cfg.AdminActors = make(map[uuid.UUID]bool)
	if raw := os.Getenv("SHARELINE_ADMIN_ACTORS"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := uuid.Parse(strings.TrimSpace(part))
			if err != nil {
				fmt.Printf("Ignoring invalid admin actor id %q: %v\n", part, err)
				continue
			}
			cfg.AdminActors[id] = true
		}
	}

	return cfg
}

func loadPolicyFile(path string) (share.PolicyConfig, error) {
	var cfg share.PolicyConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("Failed to read policy file. Error: %v", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("Failed to parse policy file. Error: %v", err)
	}
	return cfg, nil
}

func LoadDatabase() (*database.Queries, *sql.DB, error) {

	dbName := os.Getenv("POSTGRES_DB")
	dbUserName := os.Getenv("POSTGRES_USER")
	dbPassword := os.Getenv("POSTGRES_PASSWORD")
	dbHost := os.Getenv("POSTGRES_HOST")
	if dbHost == "" {
		dbHost = "db"
	}

	if dbName == "" || dbUserName == "" || dbPassword == "" {
		return nil, nil, fmt.Errorf("Failed to load the environment configuration.")
	}

	connectDbUrl := fmt.Sprintf("postgres://%v:%v@%v:5432/%v?sslmode=disable", dbUserName, dbPassword, dbHost, dbName)

	db, err := sql.Open("postgres", connectDbUrl)
	if err != nil {
		return nil, nil, fmt.Errorf("Failed to connect to the DB. Error: %v", err)
	}

	migrationsDir := "./sql/schema"
	if err := goose.Up(db, migrationsDir); err != nil {
		return nil, nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	version, err := goose.EnsureDBVersion(db)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get DB version: %v", err)
	}
	fmt.Printf("Migrations applied successfully. Current DB version: %d\n", version)

	dbQueries := database.New(db)

	return dbQueries, db, nil
}
