package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const (
	DevEnv  = "development"
	ProdEnv = "production"
)

// InitEnvironmentVariables loads dir/.env.<goEnv>. Variables already set in the
// environment win. A missing file is only an error outside development.
func InitEnvironmentVariables(dir string, goEnv string) error {
	if goEnv == "" {
		goEnv = DevEnv
	}

	envFile := filepath.Join(dir, ".env."+goEnv)

	if err := godotenv.Load(envFile); err != nil {
		if errors.Is(err, fs.ErrNotExist) && goEnv == DevEnv {
			log.Debugf("no %s file, using the process environment", envFile)
			return nil
		}

		return fmt.Errorf("failed to load %s file: %w", envFile, err)
	}

	log.Infof("loaded %s", envFile)
	return nil
}

// GetEnvOrDefault returns the environment variable, or fallback when it is unset or empty.
func GetEnvOrDefault(key string, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}
