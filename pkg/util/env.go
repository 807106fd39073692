package util

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// LoadEnv ensures the specified environment variable is present.
// It first attempts to load a ".env" file from the working directory and then
// a fallback file at $HOME/.local/bin/.env, both with non-overwriting
// semantics (already-set variables win). Then it reads and returns the
// requested variable.
//
// Returns the value of the environment variable when found, or a non-nil
// error if the variable remains unset after both load attempts.
func LoadEnv(name string) (string, error) {
	// godotenv.Load will NOT override variables that are already set.
	if info, err := os.Stat(".env"); err == nil && !info.IsDir() {
		_ = godotenv.Load(".env")
	}

	home, err := os.UserHomeDir()
	if err == nil && home != "" {
		fallback := filepath.Join(home, ".local", "bin", ".env")
		if info, statErr := os.Stat(fallback); statErr == nil && !info.IsDir() {
			_ = godotenv.Load(fallback)
		}
	}

	if v := os.Getenv(name); v != "" {
		return v, nil
	}
	return "", fmt.Errorf("environment variable %q not set", name)
}

// EnvOr returns the value of the environment variable when set, otherwise def.
func EnvOr(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}
