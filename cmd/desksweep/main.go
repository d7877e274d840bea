package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"desksweep/internal/adapters/cloud"
	"desksweep/internal/adapters/filesystem"
	"desksweep/internal/adapters/thumbnail"
	"desksweep/internal/adapters/trash"
	"desksweep/internal/adapters/tui"
	"desksweep/internal/application"
	"desksweep/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	location := cfg.Location
	if len(os.Args) > 1 {
		location = os.Args[1]
	}

	// Initialize adapters
	source := filesystem.NewSource()
	mover := trash.NewMover()
	thumbs, err := thumbnail.NewProvider(cfg.ThumbnailWorkers, cfg.ThumbnailCacheSize, cfg.ThumbnailMaxPixels)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	svc := application.NewService(cfg, source, mover, cloud.NewMover(), thumbs)
	defer svc.Close()

	if err := svc.Load(config.ExpandPath(location)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Create and run TUI app
	app := tui.NewApp(svc)

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
