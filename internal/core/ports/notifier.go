package ports

// Notifier receives the transient, user-facing notifications the access layer
// emits alongside its return values (the toast stream in the original
// dashboard). Implementations must be safe for concurrent use.
type Notifier interface {
	Info(message string)
	Warning(message string)
	Error(message string)
}
