package service

// Notifier delivers fire-and-forget messages to users outside the webapp,
// keyed by Telegram ID. Failures are logged by the implementation, never
// surfaced to the caller.
type Notifier interface {
	Notify(telegramID, message string)
}

// NopNotifier is used when no bot is configured
type NopNotifier struct{}

func (NopNotifier) Notify(string, string) {}
