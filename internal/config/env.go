package config

import (
	"errors"
	"io/fs"
	"log/slog"

	"github.com/joho/godotenv"

	ferrors "git.home.luguber.info/inful/mdsite/internal/foundation/errors"
	"git.home.luguber.info/inful/mdsite/internal/logfields"
)

var envFiles = []string{".env", ".env.local"}

// loadEnvFiles loads KEY=VALUE pairs from .env files in the working
// directory. Existing process variables are not overwritten; missing files
// are skipped.
func loadEnvFiles() error {
	for _, name := range envFiles {
		err := godotenv.Load(name)
		switch {
		case err == nil:
			slog.Debug("Loaded environment file", logfields.Path(name))
		case errors.Is(err, fs.ErrNotExist):
		default:
			return ferrors.ConfigError("cannot load environment file").
				WithCause(err).
				WithContext("path", name).
				Build()
		}
	}
	return nil
}
