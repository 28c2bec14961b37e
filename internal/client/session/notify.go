package session

import (
	"fmt"
	"io"
)

// Notifier receives the transient success/error messages the user sees
// after create, update, delete, and identity-resolution outcomes. Nothing
// is persisted.
type Notifier interface {
	Success(title, detail string)
	Error(title, detail string)
}

// ConsoleNotifier prints notifications to a writer, one per line.
type ConsoleNotifier struct {
	W io.Writer
}

// Success prints a success notification.
func (n *ConsoleNotifier) Success(title, detail string) {
	fmt.Fprintf(n.W, "✔ %s: %s\n", title, detail)
}

// Error prints an error notification.
func (n *ConsoleNotifier) Error(title, detail string) {
	fmt.Fprintf(n.W, "✖ %s: %s\n", title, detail)
}
