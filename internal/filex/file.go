// Package filex contains small filesystem helpers.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// WriteTimestamped writes data to dir/<prefix>-<YYYY-MM-DD>.<ext> and returns
// the full path. Used by the CLI to save export documents.
func WriteTimestamped(dir, prefix, ext string, data []byte) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getwd: %w", err)
		}
		dir = cwd
	}

	name := fmt.Sprintf("%s-%s.%s", prefix, time.Now().Format("2006-01-02"), ext)
	path := filepath.Join(dir, name)

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
