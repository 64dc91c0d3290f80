package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/texforge/texforge/pkg/compiler"
	"github.com/texforge/texforge/pkg/notifier"
	"github.com/texforge/texforge/pkg/process"
	"github.com/texforge/texforge/pkg/utils"
	"github.com/texforge/texforge/pkg/watcher"
)

var watchOutput string

// newWatchCmd creates the watch command
func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [file.tex]",
		Short: "Recompile automatically when source files change",
		Long: `Watch the source file's directory and recompile on every change,
with desktop notifications for results. Stops on Ctrl-C, cleaning up
the temporary compilation directory.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(args[0])
		},
	}

	cmd.Flags().StringVarP(&watchOutput, "output", "o", "", "output PDF path (default: <source>.pdf in the working directory)")

	return cmd
}

func runWatch(texFile string) error {
	if !utils.FileExists(texFile) {
		return fmt.Errorf("source file not found: %s", texFile)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	comp, err := compiler.NewFromFile(texFile, compiler.WithLogger(log))
	if err != nil {
		return fmt.Errorf("failed to set up compilation: %w", err)
	}
	defer comp.Close()

	applyArguments(comp, cfg.Arguments, nil)

	outPath := watchOutput
	if outPath == "" {
		outPath = strings.TrimSuffix(filepath.Base(texFile), filepath.Ext(texFile)) + ".pdf"
	}

	jobName := filepath.Base(texFile)
	notify := notifier.New(notifier.Config{
		Enabled: cfg.Notifications.Enabled,
		Sound:   cfg.Notifications.Sound,
	}, log)

	settling := time.Duration(cfg.Watch.SettlingDelayMs) * time.Millisecond
	w, err := watcher.New(log, []string{comp.SourceDir()}, settling)
	if err != nil {
		return err
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pm := process.NewManager(log)
	pm.RegisterShutdownHandler(cancel)
	pm.Start()
	defer pm.Stop()

	compileOnce := func() {
		notify.NotifyCompileStart(jobName)
		start := time.Now()
		path, ok := comp.GetPDF().Wait(ctx)
		if !ok {
			printError(fmt.Sprintf("Compilation of %s failed", texFile))
			notify.NotifyCompileFailure(jobName)
			return
		}
		if err := utils.CopyFile(path, outPath); err != nil {
			printError(fmt.Sprintf("Failed to export %s: %v", outPath, err))
			return
		}
		printSuccess(fmt.Sprintf("Wrote %s in %s", outPath, time.Since(start).Round(time.Millisecond)))
		notify.NotifyCompileSuccess(jobName, time.Since(start))
	}

	printInfo(fmt.Sprintf("Watching %s (Ctrl-C to stop)", comp.SourceDir()))
	compileOnce()

	go func() {
		w.Watch(ctx, func(changed []string) {
			printInfo(fmt.Sprintf("%d source file(s) changed, recompiling", len(changed)))
			comp.Invalidate()
			compileOnce()
		})
	}()

	<-pm.Shutdown()
	printInfo("Stopped watching")
	return nil
}
