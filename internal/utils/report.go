package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

// SaveReport writes the AI commentary markdown under dir and returns the
// full path. The date key is the 8-digit trading day (YYYYMMDD).
func SaveReport(dir, dateKey, content string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %v", dir, err)
	}
	path := filepath.Join(dir, fmt.Sprintf("lhb_%s_commentary.md", dateKey))
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write file %s: %v", path, err)
	}
	return path, nil
}
