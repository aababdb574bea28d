package ports

// Notifier receives short user-facing messages.
// This is a driven port (implemented by adapters).
type Notifier interface {
	// Show displays message, replacing any message still on screen.
	Show(message string)
}
