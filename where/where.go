// Package where resolves the platform-specific directories reel reads and writes.
package where

import (
	"os"
	"path/filepath"

	"github.com/reel-cli/reel/constant"
	"github.com/reel-cli/reel/filesystem"
	"github.com/samber/lo"
)

// EnvConfigPath overrides the configuration directory.
const EnvConfigPath = "REEL_CONFIG_PATH"

func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config resolves the configuration directory. It follows XDG_CONFIG_HOME on Linux and the
// user profile equivalents on Darwin and Windows, unless REEL_CONFIG_PATH is set.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.Reel))
}

// Cache resolves the cache directory, falling back to ./cache when the system one is unavailable.
func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = filepath.Join(".", "cache")
	}
	return ensureDir(filepath.Join(base, constant.Reel))
}

// Logs resolves the directory for daily log files.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// Temp resolves the directory holding engine IPC sockets.
func Temp() string {
	return ensureDir(filepath.Join(os.TempDir(), constant.Reel))
}
