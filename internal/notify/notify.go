// Package notify is the engine's outward notification surface. The platform
// UI registers an implementation to drive its foreground progress indicator
// and error alerts; the default implementation writes structured logs.
package notify

import (
	"github.com/husarprojects/healthsync/internal/logger"
	"github.com/husarprojects/healthsync/models"
)

// Notifier receives engine events. Implementations must tolerate concurrent
// calls: per-record uploads complete out of order, so Progress may be
// invoked from several goroutines. Progress values are monotonically
// increasing and idempotent to re-display.
type Notifier interface {
	// Progress reports that synced of total upload attempts have finished
	// (success or failure) in the current pass.
	Progress(synced, total int)

	// Idle switches the surface back to the "working in background"
	// message once a pass has drained.
	Idle()

	// Alert raises a user-visible alert for a push-insert failure. These
	// are never silently dropped: the server believes the push succeeded
	// and will not resend.
	Alert(recordType models.RecordType, err error)

	// Info surfaces a transient informational message.
	Info(msg string)
}

// LogNotifier is the default [Notifier]; it renders every event as a
// structured log line.
type LogNotifier struct {
	logger *logger.Logger
}

func NewLogNotifier(logger *logger.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Progress(synced, total int) {
	n.logger.Info().Int("synced", synced).Int("total", total).Msg("sync progress")
}

func (n *LogNotifier) Idle() {
	n.logger.Info().Msg("working in the background to sync your data")
}

func (n *LogNotifier) Alert(recordType models.RecordType, err error) {
	n.logger.Error().Err(err).Str("record_type", recordType.String()).Msg("push failed")
}

func (n *LogNotifier) Info(msg string) {
	n.logger.Info().Msg(msg)
}
