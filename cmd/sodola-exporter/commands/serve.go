package commands

import (
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"dev.hon.one/sodola/common"
	"dev.hon.one/sodola/db"
	"dev.hon.one/sodola/http"
	"dev.hon.one/sodola/scraping"
	"dev.hon.one/sodola/util"
)

var serveFlags struct {
	host string
	port int
}

var serveCmd = &cobra.Command{
	Use:   "serve [--host <address>] [--port <port>]",
	Short: "Run the HTTP exporter service.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("host") {
			common.GlobalConfig.HTTP.ListenHost = serveFlags.host
		}
		if cmd.Flags().Changed("port") {
			if serveFlags.port <= 0 || serveFlags.port > 65535 {
				return fmt.Errorf("port out of range: %v", serveFlags.port)
			}
			common.GlobalConfig.HTTP.ListenPort = serveFlags.port
		}

		// Setup internal shutdown mechanism
		shutdown := newSignalShutdown()

		// Run internal services in background and wait for all to finish
		var waitGroup sync.WaitGroup
		http.StartServer(&waitGroup, shutdown)
		if err := common.WatchConfig(&waitGroup, shutdown, configPath); err != nil {
			log.WithError(err).Warn("Failed to watch config, targets will not be reloaded")
		}
		startBackgroundPolling(&waitGroup, shutdown)

		waitGroup.Wait()
		return nil
	},
}

func init() {
	flags := serveCmd.Flags()
	flags.StringVar(&serveFlags.host, "host", common.DefaultListenHost, "Address to listen on.")
	flags.IntVar(&serveFlags.port, "port", common.DefaultListenPort, "Port to listen on.")
	rootCmd.AddCommand(serveCmd)
}

// startBackgroundPolling - Poll the configured targets into InfluxDB, if both are configured.
func startBackgroundPolling(waitGroup *sync.WaitGroup, shutdown *util.ShutdownChannelDistributor) {
	interval := common.GlobalConfig.Scrape.Interval
	if interval <= 0 || len(common.Targets()) == 0 {
		return
	}
	if !db.Enabled() {
		log.Warn("Scrape interval set without an InfluxDB URL, background polling disabled")
		return
	}

	db.StartClient(waitGroup, shutdown)
	options := scraping.OptionsFromConfig(common.GlobalConfig.Scrape)
	scraping.StartPoller(waitGroup, shutdown, common.Targets, interval, options, storeResult)
}

func storeResult(target common.Target, result scraping.Result) {
	http.RecordScrape(result.Entry)
	db.StoreScrapeEntry(result.Entry)
	db.StoreCatalog(target.Name, result.Entry.Time, result.Catalog)
}
