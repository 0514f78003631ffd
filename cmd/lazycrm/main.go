package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kherve/lazycrm/internal/api"
	"github.com/kherve/lazycrm/internal/app"
	"github.com/kherve/lazycrm/internal/auth"
	"github.com/kherve/lazycrm/internal/config"
	"github.com/kherve/lazycrm/internal/history"
	"github.com/kherve/lazycrm/internal/presets"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("Warning: Could not load config: %v (using defaults)\n", err)
		cfg = config.GetDefaults()
	}

	configDir, err := config.GetConfigPath()
	if err != nil {
		log.Printf("Warning: Could not resolve config directory: %v\n", err)
		configDir = "."
	}
	if err := os.MkdirAll(configDir, 0755); err != nil {
		fmt.Printf("Error creating config directory: %v\n", err)
		os.Exit(1)
	}

	token, err := resolveToken(cfg.API.BaseURL, configDir)
	if err != nil {
		log.Printf("Warning: Could not resolve API token: %v (continuing unauthenticated)\n", err)
	}

	client := api.NewClient(cfg.API.BaseURL, token, time.Duration(cfg.API.TimeoutMs)*time.Millisecond)
	presetMgr := presets.NewManager(client, configDir)

	var hist *history.Store
	if cfg.History.Enabled {
		hist, err = history.NewStore(filepath.Join(configDir, "history.db"))
		if err != nil {
			log.Printf("Warning: Could not open filter history: %v (history disabled)\n", err)
			hist = nil
		} else {
			defer func() { _ = hist.Close() }()
		}
	}

	a := app.New(cfg, client, presetMgr, hist, configDir)

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.UI.MouseEnabled {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	p := tea.NewProgram(a, opts...)
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}

// resolveToken reads the API token from the keyring, falling back to
// the LAZYCRM_TOKEN environment variable (which is then stored for the
// next run)
func resolveToken(serverURL, configDir string) (string, error) {
	store, err := auth.NewTokenStore(configDir)
	if err != nil {
		return os.Getenv("LAZYCRM_TOKEN"), err
	}

	token, err := store.Get(serverURL)
	if err == nil {
		return token, nil
	}
	if !errors.Is(err, auth.ErrTokenNotFound) {
		return os.Getenv("LAZYCRM_TOKEN"), err
	}

	token = os.Getenv("LAZYCRM_TOKEN")
	if token != "" {
		if err := store.Save(serverURL, token); err != nil {
			log.Printf("Warning: Could not store API token: %v\n", err)
		}
	}
	return token, nil
}
