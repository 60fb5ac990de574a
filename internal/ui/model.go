// Package ui renders transient notifications under the terminal interface.
package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/reel-cli/reel/style"
)

// NotificationLifetime is how long a notification stays on screen.
const NotificationLifetime = 3 * time.Second

// Model holds the current notification.
type Model struct {
	notification string
	notifiedAt   time.Time
}

// NotificationMsg replaces the current notification.
type NotificationMsg string

// ClearNotificationMsg clears a notification posted at or before At.
type ClearNotificationMsg struct {
	At time.Time
}

// Notify returns a tea.Cmd that posts text.
func Notify(text string) tea.Cmd {
	return func() tea.Msg {
		return NotificationMsg(text)
	}
}

func clearNotification(at time.Time) tea.Cmd {
	return tea.Tick(NotificationLifetime, func(time.Time) tea.Msg {
		return ClearNotificationMsg{At: at}
	})
}

// Update processes notification messages.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case NotificationMsg:
		m.notification = string(msg)
		m.notifiedAt = time.Now()
		return clearNotification(m.notifiedAt)
	case ClearNotificationMsg:
		// A newer notification keeps its own lifetime.
		if !m.notifiedAt.After(msg.At) {
			m.notification = ""
		}
	}
	return nil
}

// Notification returns the current text, empty when none is shown.
func (m *Model) Notification() string {
	return m.notification
}

// View appends the notification to the last line of mainContent.
func (m *Model) View(mainContent string) string {
	if m.notification == "" {
		return mainContent
	}

	lines := strings.Split(mainContent, "\n")
	lines[len(lines)-1] += "  " + style.Faint(m.notification)
	return strings.Join(lines, "\n")
}
