package commands

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"dev.hon.one/sodola/common"
	"dev.hon.one/sodola/exposition"
	"dev.hon.one/sodola/scraping"
)

// DefaultHost - Device scraped when --host is not given.
const DefaultHost = "http://192.168.40.6"

var scrapeFlags struct {
	host     string
	username string
	password string
	output   string
	interval int
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape [--host <url>] [--output <file>] [--interval <seconds>]",
	Short: "Scrape a device once, or continuously with an interval, and print the metrics.",
	RunE: func(cmd *cobra.Command, args []string) error {
		target := scrapeTarget(cmd)
		options := scraping.OptionsFromConfig(common.GlobalConfig.Scrape)
		if scrapeFlags.interval < 0 {
			return fmt.Errorf("interval must not be negative")
		}
		if scrapeFlags.interval == 0 {
			return scrapeOnce(cmd.Context(), target, options)
		}
		scrapeContinuously(target, options, time.Duration(scrapeFlags.interval)*time.Second)
		return nil
	},
}

func init() {
	flags := scrapeCmd.Flags()
	flags.StringVar(&scrapeFlags.host, "host", DefaultHost, "Device base URL or address.")
	flags.StringVar(&scrapeFlags.username, "username", common.DefaultUsername, "Web UI username.")
	flags.StringVar(&scrapeFlags.password, "password", common.DefaultPassword, "Web UI password.")
	flags.StringVarP(&scrapeFlags.output, "output", "o", "", "Write metrics to this file instead of stdout.")
	flags.IntVar(&scrapeFlags.interval, "interval", 0, "Scrape continuously with this interval in seconds.")
	rootCmd.AddCommand(scrapeCmd)
}

// scrapeTarget - Target from the flags. Unset credential flags fall back to the config.
func scrapeTarget(cmd *cobra.Command) common.Target {
	target, found := common.LookupTarget(scrapeFlags.host)
	if !found {
		target = common.Target{
			Name:       scrapeFlags.host,
			Address:    scrapeFlags.host,
			Credential: common.GlobalConfig.Defaults,
		}
	}
	if cmd.Flags().Changed("username") {
		target.Username = scrapeFlags.username
	}
	if cmd.Flags().Changed("password") {
		target.Password = scrapeFlags.password
	}
	return target
}

func scrapeOnce(ctx context.Context, target common.Target, options scraping.Options) error {
	result := scraping.ScrapeTarget(ctx, target, options)
	if result.Err != nil {
		return result.Err
	}
	return writeMetrics(result.Catalog)
}

func scrapeContinuously(target common.Target, options scraping.Options, interval time.Duration) {
	log.Infof("Starting continuous monitoring every %v", interval)
	shutdown := newSignalShutdown()

	var waitGroup sync.WaitGroup
	targets := func() []common.Target {
		return []common.Target{target}
	}
	scraping.StartPoller(&waitGroup, shutdown, targets, interval, options, func(target common.Target, result scraping.Result) {
		if result.Err != nil {
			return
		}
		if err := writeMetrics(result.Catalog); err != nil {
			log.WithError(err).Error("Failed to write metrics")
		}
	})
	waitGroup.Wait()
}

// writeMetrics - Write the catalog to the output file, replacing it, or to stdout.
func writeMetrics(catalog *common.Catalog) error {
	if scrapeFlags.output == "" {
		return exposition.WriteText(os.Stdout, catalog)
	}

	file, err := os.Create(scrapeFlags.output)
	if err != nil {
		return err
	}
	if err := exposition.WriteText(file, catalog); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"output": scrapeFlags.output,
	}).Info("Metrics written")
	return nil
}
