package config

import (
	"os"
	"strconv"
)

type Config struct {
	Server    ServerConfig
	JWT       JWTConfig
	Snapshot  SnapshotConfig
	Seed      SeedConfig
	Interests InterestsConfig
}

type ServerConfig struct {
	Port string
}

type JWTConfig struct {
	Secret          string
	ExpirationHours int
}

// SnapshotConfig selects the persistence sink. Backend "file" writes one JSON
// document; "sqlite" keeps a rolling archive of the last ArchiveKeep
// snapshots.
type SnapshotConfig struct {
	Backend     string
	FilePath    string
	ArchivePath string
	ArchiveKeep int
}

// SeedConfig is the bootstrap super-admin account created when the store
// starts empty.
type SeedConfig struct {
	Username string
	Password string
	Email    string
}

type InterestsConfig struct {
	// OpenListing keeps the historical behavior of letting any authenticated
	// user list a group's pending join requests.
	OpenListing bool
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
		},
		JWT: JWTConfig{
			Secret:          getEnv("JWT_SECRET", "change-me-in-production"),
			ExpirationHours: getEnvAsInt("JWT_EXPIRATION_HOURS", 24),
		},
		Snapshot: SnapshotConfig{
			Backend:     getEnv("SNAPSHOT_BACKEND", "file"),
			FilePath:    getEnv("SNAPSHOT_FILE_PATH", "data/chathub.json"),
			ArchivePath: getEnv("SNAPSHOT_ARCHIVE_PATH", "data/chathub-snapshots.db"),
			ArchiveKeep: getEnvAsInt("SNAPSHOT_ARCHIVE_KEEP", 20),
		},
		Seed: SeedConfig{
			Username: getEnv("SEED_SUPER_USERNAME", "super"),
			Password: getEnv("SEED_SUPER_PASSWORD", "123"),
			Email:    getEnv("SEED_SUPER_EMAIL", "super@chathub.local"),
		},
		Interests: InterestsConfig{
			OpenListing: getEnvAsBool("INTEREST_OPEN_LISTING", true),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}
