package ports

import "time"

// Subscription is a handle to a scheduled callback.
type Subscription interface {
	// Cancel stops future callbacks. It is safe to call more than once.
	Cancel()
}

// Clock schedules callbacks.
// This is a driven port (implemented by adapters).
type Clock interface {
	// Every calls fn once per interval until cancelled.
	// At most one call of fn is in flight at a time.
	Every(interval time.Duration, fn func()) Subscription

	// After calls fn once after delay unless cancelled first.
	After(delay time.Duration, fn func()) Subscription

	// Now returns the current time.
	Now() time.Time
}
