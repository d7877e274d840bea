//go:build linux

package trash

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Linux follows the freedesktop.org trash specification:
// ~/.local/share/Trash/files holds the trashed entries and
// ~/.local/share/Trash/info holds one .trashinfo metadata file each.

func trashPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "Trash")
}

func isAvailable() bool {
	root := trashPath()
	if root == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Join(root, "files"), 0700); err != nil {
		return false
	}
	return os.MkdirAll(filepath.Join(root, "info"), 0700) == nil
}

func moveToTrash(path string) error {
	root := trashPath()
	filesPath := filepath.Join(root, "files")
	infoPath := filepath.Join(root, "info")
	if err := os.MkdirAll(filesPath, 0700); err != nil {
		return fmt.Errorf("cannot create trash files directory: %w", err)
	}
	if err := os.MkdirAll(infoPath, 0700); err != nil {
		return fmt.Errorf("cannot create trash info directory: %w", err)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	// Resolve name collisions inside the trash by appending a counter
	baseName := filepath.Base(absPath)
	destName := baseName
	destPath := filepath.Join(filesPath, destName)
	for counter := 1; ; counter++ {
		if _, err := os.Stat(destPath); os.IsNotExist(err) {
			break
		}
		ext := filepath.Ext(baseName)
		destName = fmt.Sprintf("%s.%d%s", strings.TrimSuffix(baseName, ext), counter, ext)
		destPath = filepath.Join(filesPath, destName)
	}

	infoContent := fmt.Sprintf("[Trash Info]\nPath=%s\nDeletionDate=%s\n",
		url.PathEscape(absPath),
		time.Now().Format("2006-01-02T15:04:05"))
	infoFilePath := filepath.Join(infoPath, destName+".trashinfo")
	if err := os.WriteFile(infoFilePath, []byte(infoContent), 0600); err != nil {
		return fmt.Errorf("cannot create trashinfo file: %w", err)
	}

	if err := os.Rename(absPath, destPath); err != nil {
		os.Remove(infoFilePath)
		return fmt.Errorf("cannot move file to trash: %w", err)
	}
	return nil
}
