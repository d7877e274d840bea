// Package debug provides categorized debug logging, enabled at runtime via
// the DESKSWEEP_DEBUG environment variable (comma-separated categories,
// "all", or "none").
package debug

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
)

// Category tags a debug logging area
type Category string

const (
	SESSION Category = "SESSION" // session store, decisions, undo
	SUGGEST Category = "SUGGEST" // suggestion engine, debounce, cancellation
	SCAN    Category = "SCAN"    // enumeration, fingerprinting
	THUMB   Category = "THUMB"   // thumbnail generation
	TRASH   Category = "TRASH"   // file mover
	UI      Category = "UI"      // TUI events
)

var (
	mu      sync.RWMutex
	enabled = map[Category]bool{}

	logger = log.New(os.Stderr, "", log.Ltime|log.Lmicroseconds)
)

func init() {
	env := os.Getenv("DESKSWEEP_DEBUG")
	if env == "" || strings.EqualFold(env, "none") {
		return
	}
	all := []Category{SESSION, SUGGEST, SCAN, THUMB, TRASH, UI}
	if strings.EqualFold(env, "all") {
		for _, cat := range all {
			enabled[cat] = true
		}
		return
	}
	for _, cat := range strings.Split(strings.ToUpper(env), ",") {
		enabled[Category(strings.TrimSpace(cat))] = true
	}
}

// Log writes a debug message when the category is enabled
func Log(cat Category, format string, args ...any) {
	mu.RLock()
	on := enabled[cat]
	mu.RUnlock()
	if !on {
		return
	}
	logger.Printf("[%s] %s", cat, fmt.Sprintf(format, args...))
}

// Enable turns a category on (used by tests)
func Enable(cat Category) {
	mu.Lock()
	enabled[cat] = true
	mu.Unlock()
}

// IsEnabled reports whether a category is active
func IsEnabled(cat Category) bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled[cat]
}
