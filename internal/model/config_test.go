package model_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sonic/sonic-task-hub/internal/model"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := model.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.APIBaseURL != "http://localhost:8080/api" {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.Display.PageSize != 20 {
		t.Errorf("PageSize = %d", cfg.Display.PageSize)
	}
}

func TestSaveConfigRoundTrips(t *testing.T) {
	// The parent directory does not exist yet; SaveConfig must create it,
	// as happens when the defaults are written out on first run.
	path := filepath.Join(t.TempDir(), "sonichub", "config.yaml")

	want := &model.AppConfig{
		APIBaseURL:          "http://backend:9090/api",
		CachePath:           "/tmp/hub-cache.db",
		UnsnoozeIntervalSec: 45,
		Mailbox: model.MailboxConfig{
			Host:     "imap.example.com:993",
			Username: "pat",
			Folder:   "Archive",
		},
		Display: model.DisplayConfig{
			Theme:    "default",
			PageSize: 50,
		},
	}

	if err := model.SaveConfig(path, want); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	got, err := model.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got.APIBaseURL != want.APIBaseURL {
		t.Errorf("APIBaseURL = %q, want %q", got.APIBaseURL, want.APIBaseURL)
	}
	if got.UnsnoozeIntervalSec != want.UnsnoozeIntervalSec {
		t.Errorf("UnsnoozeIntervalSec = %d, want %d",
			got.UnsnoozeIntervalSec, want.UnsnoozeIntervalSec)
	}
	if got.Mailbox != want.Mailbox {
		t.Errorf("Mailbox = %+v, want %+v", got.Mailbox, want.Mailbox)
	}
	if got.Display != want.Display {
		t.Errorf("Display = %+v, want %+v", got.Display, want.Display)
	}
}
