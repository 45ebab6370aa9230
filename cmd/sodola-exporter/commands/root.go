package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"dev.hon.one/sodola/common"
	"dev.hon.one/sodola/util"
)

var (
	configPath string
	logLevel   string
	debug      bool
)

var rootCmd = &cobra.Command{
	Use:           "sodola-exporter",
	Short:         "Prometheus exporter for Sodola switches, scraping the web UI.",
	Version:       common.AppVersion,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setupLogging(); err != nil {
			return err
		}
		log.Infof("Starting %v version %v by %v", common.AppName, common.AppVersion, common.AppAuthor)

		// Secrets may come from a .env file, it is optional
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			log.WithError(err).Warn("Failed to load .env file")
		}
		return common.LoadConfig(configPath)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path.")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (trace, debug, info, warning, error).")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Show debug messages.")
}

// Execute - Run the CLI, exiting non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.WithError(err).Error("Command failed")
		os.Exit(1)
	}
}

func setupLogging() error {
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}
	if debug {
		level = log.TraceLevel
	}
	log.SetLevel(level)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	// Keep stdout clean for metrics output
	log.SetOutput(os.Stderr)
	if debug {
		log.Info("Debug mode enabled")
	}
	return nil
}

// newSignalShutdown - Shutdown distributor triggered by SIGINT or SIGTERM.
func newSignalShutdown() *util.ShutdownChannelDistributor {
	shutdownChannel := make(chan os.Signal, 1)
	signal.Notify(shutdownChannel, syscall.SIGINT, syscall.SIGTERM)
	return util.NewShutdownChannelDistributor(shutdownChannel)
}
