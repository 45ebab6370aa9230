package common

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"

	"dev.hon.one/sodola/util"
)

// WatchConfig - Reload the target table in the background whenever the config file changes.
// Only targets are reloaded, other settings need a restart. Does nothing for an empty path.
func WatchConfig(waitGroup *sync.WaitGroup, shutdown *util.ShutdownChannelDistributor, path string) error {
	if path == "" {
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	// Watch the directory, editors often replace the file instead of writing it
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return err
	}

	shutdownChannel := make(chan bool, 1)
	if !shutdown.AddListener(shutdownChannel) {
		watcher.Close()
		return nil
	}
	waitGroup.Add(1)

	cleanPath := filepath.Clean(path)
	go func() {
		defer waitGroup.Done()
		defer log.Info("Config watcher stopped")
		defer watcher.Close()

		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != cleanPath || !event.Has(fsnotify.Write|fsnotify.Create) {
					continue
				}
				reloadTargets(path)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.WithError(err).Warn("Config watcher error")
			case <-shutdownChannel:
				return
			}
		}
	}()

	log.WithFields(log.Fields{
		"config_path": path,
	}).Info("Config watcher started")
	return nil
}

func reloadTargets(path string) {
	config, err := ReadConfig(path)
	if err != nil {
		log.WithError(err).Error("Failed to reload config, keeping current targets")
		return
	}
	SetTargets(config.Targets)
	log.WithFields(log.Fields{
		"target_count": len(config.Targets),
	}).Info("Reloaded targets")
}
