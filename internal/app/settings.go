package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/nhle/novel-forge/internal/credential"
	"github.com/nhle/novel-forge/internal/model"
	"github.com/nhle/novel-forge/internal/notify"
	"github.com/nhle/novel-forge/internal/ui/settings"
)

// settingsReadyMsg delivers the keyring-backed webhook URL so the
// settings form can open pre-filled.
type settingsReadyMsg struct {
	webhookURL string
}

// openSettings reads the webhook URL from the keyring before opening
// the form. A missing entry just means no URL is configured yet.
func (m *Model) openSettings() tea.Cmd {
	return func() tea.Msg {
		url, err := credential.Get(credential.KeyWebhookURL)
		if err != nil {
			url = ""
		}
		return settingsReadyMsg{webhookURL: url}
	}
}

// applySettings commits the submitted settings: word-count goals and
// dark mode go into the metadata record, the notification toggle into
// the config file, and the webhook URL into the system keyring.
func (m *Model) applySettings(msg settings.SubmitMsg) tea.Cmd {
	m.state.Metadata.TargetWordCount = msg.TargetWordCount
	m.state.Metadata.ProjectStartWordCount = msg.ProjectStartWordCount
	m.state.Metadata.DarkMode = msg.DarkMode

	if m.cfg.Notify.Enabled != msg.NotifyEnabled {
		m.cfg.Notify.Enabled = msg.NotifyEnabled
		if err := model.SaveConfig(m.cfgPath, m.cfg); err != nil {
			log.Warn("persisting config failed", "err", err)
		}
	}

	if msg.WebhookURL != "" {
		if err := credential.Set(credential.KeyWebhookURL, msg.WebhookURL); err != nil {
			log.Warn("storing webhook URL failed", "err", err)
		}
	} else {
		if err := credential.Delete(credential.KeyWebhookURL); err != nil {
			log.Debug("clearing webhook URL", "err", err)
		}
	}
	m.notifier = notify.New(msg.WebhookURL)

	return m.saveAndReload(m.state, "Settings saved")
}
