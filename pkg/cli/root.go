// Package cli provides the command-line interface for TeXForge
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/texforge/texforge/pkg/config"
	"github.com/texforge/texforge/pkg/logger"
	"github.com/texforge/texforge/pkg/utils"
)

var (
	cfgFile   string
	verbosity string
	version   string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "texforge",
	Short: "A pdflatex wrapper that manages reruns, temp files and artifacts",
	Long: `📄 TeXForge - pdflatex compilation without the ritual

TeXForge runs pdflatex for you in an isolated temporary directory,
repeats the pass while cross-references are unresolved, and hands you
the finished artifacts. No stray .aux files next to your sources.`,

	Run: func(cmd *cobra.Command, args []string) {
		// Check if version flag is set
		if v, _ := cmd.Flags().GetBool("version"); v {
			fmt.Printf("📄 TeXForge v%s\n", version)
			return
		}
		// If no subcommand, show help
		cmd.Help()
	},
}

// Execute runs the CLI
func Execute(v string) error {
	version = v

	// Initialize the root command explicitly (avoiding init())
	initializeRootCommand()

	return rootCmd.Execute()
}

// initializeRootCommand sets up the root command and its flags.
// This replaces the init() function to make initialization explicit and testable.
func initializeRootCommand() {
	// Set up config initialization
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: texforge.config.json)")
	rootCmd.PersistentFlags().StringVarP(&verbosity, "verbosity", "v", "", "log level (debug, info, warn, error)")

	// Add version flag
	rootCmd.Flags().Bool("version", false, "Print version information and quit")

	// Add subcommands
	rootCmd.AddCommand(newCompileCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newCleanCmd())
	rootCmd.AddCommand(newVersionCmd())
}

func initConfig() {
	if cfgFile != "" {
		// Use config file from flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Search for config in the working directory
		viper.AddConfigPath(".")
		viper.SetConfigName("texforge.config")
		viper.SetConfigType("json")
	}

	// Read in environment variables
	viper.SetEnvPrefix("TEXFORGE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		if verbosity == "debug" {
			fmt.Println("Using config file:", viper.ConfigFileUsed())
		}
	}
}

// loadConfig resolves the effective configuration: the config file
// when one exists, defaults otherwise, with environment overrides.
func loadConfig() (*config.Config, error) {
	path := getConfigPath()

	var cfg *config.Config
	if utils.FileExists(path) {
		loaded, err := config.NewManager().LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg = config.GetDefaultConfig()
	}

	if viper.IsSet("notifications.enabled") {
		cfg.Notifications.Enabled = viper.GetBool("notifications.enabled")
	}
	if viper.IsSet("logging.level") {
		cfg.Logging.Level = viper.GetString("logging.level")
	}

	return cfg, nil
}

// newLogger builds the logger from config and the verbosity flag,
// with the flag winning.
func newLogger(cfg *config.Config) logger.Logger {
	level := cfg.Logging.Level
	if verbosity != "" {
		level = verbosity
	}
	return logger.CreateLogger(cfg.Logging.File, level)
}

func getConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return "texforge.config.json"
}

// Helper functions

func printSuccess(message string) {
	fmt.Printf("📄 %s %s\n", color.GreenString("[TeXForge]"), message)
}

func printError(message string) {
	fmt.Fprintf(os.Stderr, "📄 %s %s\n", color.RedString("[TeXForge]"), message)
}

func printInfo(message string) {
	fmt.Printf("📄 %s %s\n", color.CyanString("[TeXForge]"), message)
}

func printWarning(message string) {
	fmt.Printf("📄 %s %s\n", color.YellowString("[TeXForge]"), message)
}
