package scanner

import (
	"log"
	"os/exec"
	"strings"
)

// LogNotifier prints reminders to the server log. Default when no delivery
// command is configured.
type LogNotifier struct{}

func (LogNotifier) Notify(recipient, message string) {
	log.Printf("[Reminder] %s | %s", recipient, message)
}

// CommandNotifier runs a shell command template per reminder, e.g.
// "sendmail {{.Email}}" or "notify-send 'Decisions' '{{.Message}}'".
// Best-effort: errors are logged, not returned.
type CommandNotifier struct {
	Command string
}

func (n CommandNotifier) Notify(recipient, message string) {
	r := strings.NewReplacer(
		"{{.Email}}", recipient,
		"{{.Message}}", message,
	)
	cmdStr := r.Replace(n.Command)
	cmd := exec.Command("sh", "-c", cmdStr)
	if out, err := cmd.CombinedOutput(); err != nil {
		log.Printf("[Reminder] notify command failed: %v: %s", err, strings.TrimSpace(string(out)))
	}
}
