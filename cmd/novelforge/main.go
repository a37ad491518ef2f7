// Command novelforge runs the terminal dashboard for tracking a novel
// manuscript: chapter word counts, editing passes, and to-dos, backed
// by a single JSON document with daily snapshots.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/nhle/novel-forge/internal/app"
	"github.com/nhle/novel-forge/internal/credential"
	"github.com/nhle/novel-forge/internal/model"
	"github.com/nhle/novel-forge/internal/notify"
	"github.com/nhle/novel-forge/internal/store"
)

func main() {
	cfgPath := flag.String("config", model.DefaultConfigPath(), "path to the YAML config file")
	flag.Parse()

	if err := run(*cfgPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfgPath string) error {
	cfg, err := model.LoadConfig(cfgPath)
	if err != nil {
		return err
	}

	closeLog, err := setupLogging(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	s, err := store.NewFileStore(cfg.Data)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}

	notifier := notify.New(webhookURL(cfg))

	program := tea.NewProgram(app.New(cfg, cfgPath, s, notifier), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// setupLogging sends the structured log to a file beside the data
// document. Stdout belongs to the TUI.
func setupLogging(cfg *model.AppConfig) (func(), error) {
	dir := filepath.Dir(cfg.Data.File)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	path := filepath.Join(dir, "novelforge.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}

	log.SetOutput(f)
	log.SetLevel(log.InfoLevel)
	return func() { f.Close() }, nil
}

// webhookURL reads the notification webhook URL from the keyring. A
// missing or unreadable entry disables delivery.
func webhookURL(cfg *model.AppConfig) string {
	if !cfg.Notify.Enabled {
		return ""
	}
	url, err := credential.Get(credential.KeyWebhookURL)
	if err != nil {
		log.Debug("no webhook URL in keyring", "err", err)
		return ""
	}
	return url
}
