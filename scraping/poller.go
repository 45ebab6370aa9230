package scraping

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"dev.hon.one/sodola/common"
	"dev.hon.one/sodola/util"
)

// Sink - Receives the result of every scrape made by the poller.
type Sink func(target common.Target, result Result)

// StartPoller - Start polling the targets in the background.
// Targets are scraped one after another, then the poller sleeps for the interval.
func StartPoller(waitGroup *sync.WaitGroup, shutdown *util.ShutdownChannelDistributor, targets func() []common.Target,
	interval time.Duration, options Options, sink Sink) {
	// Setup shutdown signal and waitgroup
	shutdownChannel := make(chan bool, 1)
	if !shutdown.AddListener(shutdownChannel) {
		return
	}
	waitGroup.Add(1)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-shutdownChannel
		cancel()
	}()

	go func() {
		defer waitGroup.Done()
		defer log.Info("Poller stopped")
		defer cancel()

		for {
			pollAll(ctx, targets(), options, sink)
			select {
			case <-time.After(interval):
			case <-ctx.Done():
				return
			}
		}
	}()

	log.WithFields(log.Fields{
		"interval": interval,
	}).Info("Poller started")
}

func pollAll(ctx context.Context, targets []common.Target, options Options, sink Sink) {
	log.Trace("Scraping all targets")
	for _, target := range targets {
		if ctx.Err() != nil {
			return
		}
		result := ScrapeTarget(ctx, target, options)
		if result.Err != nil {
			log.WithError(result.Err).WithFields(log.Fields{
				"target": target.Name,
			}).Warn("Scrape failed")
		}
		sink(target, result)
	}
}
