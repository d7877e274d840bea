//go:build darwin

package trash

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func trashPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".Trash")
}

func isAvailable() bool {
	root := trashPath()
	if root == "" {
		return false
	}
	info, err := os.Stat(root)
	return err == nil && info.IsDir()
}

func moveToTrash(path string) error {
	root := trashPath()
	if root == "" {
		return fmt.Errorf("trash directory unavailable")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	baseName := filepath.Base(absPath)
	destPath := filepath.Join(root, baseName)
	for counter := 1; ; counter++ {
		if _, err := os.Stat(destPath); os.IsNotExist(err) {
			break
		}
		ext := filepath.Ext(baseName)
		destPath = filepath.Join(root, fmt.Sprintf("%s.%d%s", strings.TrimSuffix(baseName, ext), counter, ext))
	}

	if err := os.Rename(absPath, destPath); err != nil {
		return fmt.Errorf("cannot move file to trash: %w", err)
	}
	return nil
}
