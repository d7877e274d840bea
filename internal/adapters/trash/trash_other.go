//go:build !linux && !darwin

package trash

import "fmt"

func isAvailable() bool { return false }

func moveToTrash(path string) error {
	return fmt.Errorf("trash is not supported on this platform")
}
