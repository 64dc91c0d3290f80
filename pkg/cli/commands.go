package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove leftover compilation directories",
		Long: `Remove texforge temporary directories left behind by interrupted
runs. Normal runs clean up after themselves.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClean()
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("📄 TeXForge v%s\n", version)
		},
	}
}

func runClean() error {
	pattern := filepath.Join(os.TempDir(), "texforge-*")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return fmt.Errorf("failed to scan temp directory: %w", err)
	}

	removed := 0
	for _, dir := range matches {
		if err := os.RemoveAll(dir); err != nil {
			printWarning(fmt.Sprintf("Failed to remove %s: %v", dir, err))
			continue
		}
		removed++
	}

	if removed == 0 {
		printInfo("Nothing to clean")
	} else {
		printSuccess(fmt.Sprintf("Removed %d leftover director%s", removed, pluralY(removed)))
	}
	return nil
}

func pluralY(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
