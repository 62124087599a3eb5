package update

import (
	"fmt"
	"os/exec"
	"runtime"
	"time"
)

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

type DesktopNotifier interface {
	Send(Notification) error
}

type NoopDesktopNotifier struct{}

func (NoopDesktopNotifier) Send(Notification) error { return nil }

type ExecDesktopNotifier struct{}

func (ExecDesktopNotifier) Send(n Notification) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", n.Title, n.Body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

func (m *Model) notify(title, body, level string) {
	if body == "" {
		return
	}
	if m.DesktopEnabled && m.notifier != nil {
		_ = m.notifier.Send(Notification{Title: title, Body: body, Level: level, At: time.Now()})
	}
}
