package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/texforge/texforge/pkg/compiler"
	"github.com/texforge/texforge/pkg/types"
	"github.com/texforge/texforge/pkg/utils"
)

var (
	compileOutput string
	compileArgs   []string
	compileKeep   []string
)

// newCompileCmd creates the compile command
func newCompileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile [file.tex]",
		Short: "Compile a TeX source file to PDF",
		Long: `Compile a TeX source file with pdflatex in an isolated temporary
directory, rerunning automatically while cross-references are
unresolved, and copy the finished PDF next to your source.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(args[0])
		},
	}

	cmd.Flags().StringVarP(&compileOutput, "output", "o", "", "output PDF path (default: <source>.pdf in the working directory)")
	cmd.Flags().StringArrayVar(&compileArgs, "arg", nil, "extra engine argument, name or name=value (repeatable)")
	cmd.Flags().StringSliceVar(&compileKeep, "keep", nil, "additional artifacts to export (aux, log, toc)")

	return cmd
}

func runCompile(texFile string) error {
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

	applyArguments(comp, cfg.Arguments, compileArgs)

	outPath := compileOutput
	if outPath == "" {
		outPath = strings.TrimSuffix(filepath.Base(texFile), filepath.Ext(texFile)) + ".pdf"
	}

	extras, err := parseKeepList(compileKeep)
	if err != nil {
		return err
	}

	printInfo(fmt.Sprintf("Compiling %s", texFile))
	start := time.Now()

	g, ctx := errgroup.WithContext(context.Background())

	g.Go(func() error {
		path, ok := comp.GetPDF().Wait(ctx)
		if !ok {
			return fmt.Errorf("compilation failed")
		}
		return utils.CopyFile(path, outPath)
	})

	for _, ext := range extras {
		ext := ext
		g.Go(func() error {
			path, ok := comp.GetFile(ext).Wait(ctx)
			if !ok {
				return fmt.Errorf("compilation failed")
			}
			if !utils.FileExists(path) {
				// A missing secondary artifact is not an error; the
				// engine only writes what the document needs.
				printWarning(fmt.Sprintf("No %s artifact was generated", ext.Suffix()))
				return nil
			}
			return utils.CopyFile(path, strings.TrimSuffix(outPath, ".pdf")+"."+ext.Suffix())
		})
	}

	if err := g.Wait(); err != nil {
		printError(fmt.Sprintf("Compilation of %s failed", texFile))
		return err
	}

	duration := time.Since(start).Round(time.Millisecond)
	if size, err := utils.GetFileSize(outPath); err == nil {
		printSuccess(fmt.Sprintf("Wrote %s (%s) in %s", outPath, utils.FormatBytes(size), duration))
	} else {
		printSuccess(fmt.Sprintf("Wrote %s in %s", outPath, duration))
	}

	return nil
}

// applyArguments layers config-file defaults, then command-line
// arguments, onto a compiler. Later writes win.
func applyArguments(comp *compiler.Compiler, defaults map[string]string, extra []string) {
	for name, value := range defaults {
		comp.AddArgument(name, value)
	}
	for _, arg := range extra {
		name, value := splitArgument(arg)
		comp.AddArgument(name, value)
	}
}

// splitArgument parses "name=value" or a bare "name" token
func splitArgument(arg string) (string, string) {
	parts := strings.SplitN(arg, "=", 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return parts[0], ""
}

func parseKeepList(keep []string) ([]types.FileExtension, error) {
	extras := make([]types.FileExtension, 0, len(keep))
	for _, k := range keep {
		ext, ok := types.ParseExtension(k)
		if !ok {
			return nil, fmt.Errorf("unknown artifact extension: %s", k)
		}
		if ext == types.ExtensionPDF {
			continue // always exported
		}
		extras = append(extras, ext)
	}
	return extras, nil
}
