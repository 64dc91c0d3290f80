package notifier_test

import (
	"testing"
	"time"

	"github.com/texforge/texforge/pkg/logger"
	"github.com/texforge/texforge/pkg/notifier"
)

func TestNotifier_Disabled(t *testing.T) {
	n := notifier.New(notifier.Config{Enabled: false}, nil)

	// Disabled notifier must be a no-op regardless of platform
	n.NotifyCompileStart("report")
	n.NotifyCompileSuccess("report", 2*time.Second)
	n.NotifyCompileFailure("report")
}

func TestNotifier_CompileSuccess(t *testing.T) {
	log := logger.CreateLogger("", "info")
	n := notifier.New(notifier.Config{Enabled: true}, log)

	// This would normally show a system notification
	// In tests, we just verify it doesn't crash
	n.NotifyCompileSuccess("report", 5*time.Second)
}

func TestNotifier_CompileFailure(t *testing.T) {
	log := logger.CreateLogger("", "info")
	n := notifier.New(notifier.Config{Enabled: true, Sound: false}, log)

	n.NotifyCompileFailure("report")
}
