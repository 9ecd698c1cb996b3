// Package storage provides disk usage helpers for the backend path.
package storage

import (
	"os"
	"path/filepath"
)

// DiskUsageBytes returns the size in bytes of the backend's storage path.
// The path may be a file or a directory (recursively summed). An empty or
// missing path contributes 0.
func DiskUsageBytes(path string) (int64, error) {
	if path == "" {
		return 0, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	if info.IsDir() {
		return dirSize(path)
	}
	return info.Size(), nil
}

func dirSize(dir string) (int64, error) {
	var total int64
	err := filepath.Walk(dir, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info != nil && !info.IsDir() {
			total += info.Size()
		}
		return nil
	})
	return total, err
}
