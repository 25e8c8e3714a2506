package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath expands a leading ~ and $VAR references in path.
func ExpandPath(path string) string {
	switch {
	case path == "":
		return path
	case path == "~" || strings.HasPrefix(path, "~/"):
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}
	return os.ExpandEnv(path)
}
