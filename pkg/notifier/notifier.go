// Package notifier provides desktop notifications for compilation results
package notifier

import (
	"fmt"
	"time"

	"github.com/gen2brain/beeep"

	"github.com/texforge/texforge/pkg/logger"
)

// CompileNotifier sends desktop notifications when a compilation
// settles. Used by watch mode so results are visible without a
// terminal in focus.
type CompileNotifier struct {
	enabled bool
	sound   bool
	logger  logger.Logger
}

// Config represents notification configuration
type Config struct {
	Enabled bool
	Sound   bool
}

// New creates a new compile notifier
func New(config Config, log logger.Logger) *CompileNotifier {
	return &CompileNotifier{
		enabled: config.Enabled,
		sound:   config.Sound,
		logger:  log,
	}
}

// NotifyCompileStart notifies that a compilation has started
func (n *CompileNotifier) NotifyCompileStart(job string) {
	if !n.enabled {
		return
	}

	n.send("📄 TeXForge", fmt.Sprintf("Compiling %s...", job), false)
}

// NotifyCompileSuccess notifies that a compilation succeeded
func (n *CompileNotifier) NotifyCompileSuccess(job string, duration time.Duration) {
	if !n.enabled {
		return
	}

	n.send("✅ Compilation Succeeded", fmt.Sprintf("%s compiled in %s", job, formatDuration(duration)), n.sound)
}

// NotifyCompileFailure notifies that a compilation failed. No detail
// is attached: the engine reports only a boolean outcome.
func (n *CompileNotifier) NotifyCompileFailure(job string) {
	if !n.enabled {
		return
	}

	n.send("❌ Compilation Failed", fmt.Sprintf("%s did not compile", job), n.sound)
}

func (n *CompileNotifier) send(title, message string, sound bool) {
	if err := beeep.Notify(title, message, ""); err != nil {
		if n.logger != nil {
			n.logger.Debug("Failed to send notification", logger.WithField("error", err))
		}
	}

	if sound {
		if err := beeep.Beep(beeep.DefaultFreq, beeep.DefaultDuration); err != nil {
			if n.logger != nil {
				n.logger.Debug("Failed to play sound", logger.WithField("error", err))
			}
		}
	}
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
}
