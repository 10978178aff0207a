package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sonic/sonic-task-hub/internal/api"
	"github.com/sonic/sonic-task-hub/internal/app"
	"github.com/sonic/sonic-task-hub/internal/model"
	"github.com/sonic/sonic-task-hub/internal/session"
	"github.com/sonic/sonic-task-hub/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "sonichub: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := model.DefaultConfigPath()
	if p := os.Getenv("SONICHUB_CONFIG"); p != "" {
		configPath = p
	}

	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		return err
	}

	// On first run, write the defaults out so the user has a file to edit.
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := model.SaveConfig(configPath, cfg); err != nil {
			return err
		}
	}

	client := api.NewClient(cfg.APIBaseURL)

	cache, err := store.NewSQLiteStore(cfg.CachePath)
	if err != nil {
		return fmt.Errorf("opening offline cache: %w", err)
	}
	defer cache.Close()

	// A missing session is not an error; the app opens the login screen.
	sess, err := session.Load()
	if err != nil && err != session.ErrNoSession {
		return err
	}

	p := tea.NewProgram(
		app.New(cfg, client, cache, sess),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running ui: %w", err)
	}
	return nil
}
