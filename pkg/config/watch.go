package config

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/stashfs/stashfs/internal/logger"
)

// WatchLogging watches the config file and applies logging level and format
// changes without a restart. Other settings require a reload by the host.
//
// Returns a stop function that shuts the watcher down.
func WatchLogging(configPath string) (func(), error) {
	if configPath == "" {
		configPath = GetDefaultConfigPath()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the directory, not the file: editors replace files on save and
	// a watch on the old inode would go stale.
	dir := filepath.Dir(configPath)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, err
	}

	target := filepath.Clean(configPath)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}

				cfg, err := Load(configPath)
				if err != nil {
					logger.Warn("config reload failed", logger.Err(err))
					continue
				}

				logger.SetLevel(cfg.Logging.Level)
				logger.SetFormat(cfg.Logging.Format)
				logger.Info("logging configuration reloaded",
					"level", cfg.Logging.Level,
					"format", cfg.Logging.Format)

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("config watcher error", logger.Err(err))

			case <-done:
				return
			}
		}
	}()

	return func() {
		close(done)
		watcher.Close()
	}, nil
}
