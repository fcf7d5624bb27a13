// Package notify carries the transient notification stream the original
// dashboard rendered as toasts. Server-side, each notification becomes a
// structured log line with a stable identifier.
package notify

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// LogNotifier writes notifications to the structured log. Severity maps to
// the log level; the toast duration semantics are advisory and not kept.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Info(message string) {
	n.log.Info().Str("notification_id", uuid.NewString()).Str("kind", "success").Msg(message)
}

func (n *LogNotifier) Warning(message string) {
	n.log.Warn().Str("notification_id", uuid.NewString()).Str("kind", "warning").Msg(message)
}

func (n *LogNotifier) Error(message string) {
	n.log.Error().Str("notification_id", uuid.NewString()).Str("kind", "error").Msg(message)
}
