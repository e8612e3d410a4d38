package utils

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath replaces a leading "~" with the user's home directory.
// Connection strings and other non-path values are returned unchanged.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// IsPostgresConnString reports whether s looks like a PostgreSQL URL
func IsPostgresConnString(s string) bool {
	return strings.HasPrefix(s, "postgres://") || strings.HasPrefix(s, "postgresql://")
}
