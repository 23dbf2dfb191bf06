package flurry

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultWatchDebounce = 200 * time.Millisecond

// ConfigWatcher watches a YAML config file and delivers every successfully
// parsed version on Configs. The directory is watched rather than the file
// so editors that replace files on save are handled.
type ConfigWatcher struct {
	// Debounce is how long the file must be quiet before it is reloaded.
	Debounce time.Duration

	logger  *zap.Logger
	watcher *fsnotify.Watcher
	path    string
	configs chan SimulationConfig
}

// NewConfigWatcher creates a watcher for path. Call Start to begin watching.
func NewConfigWatcher(path string, logger *zap.Logger) (*ConfigWatcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	return &ConfigWatcher{
		Debounce: defaultWatchDebounce,
		logger:   logger,
		watcher:  w,
		path:     abs,
		configs:  make(chan SimulationConfig, 1),
	}, nil
}

// Configs returns the channel reloaded configs are sent on. Only the newest
// unread config is kept.
func (cw *ConfigWatcher) Configs() <-chan SimulationConfig {
	return cw.configs
}

// Start begins watching in a background goroutine that exits when ctx is
// done or the watcher is stopped.
func (cw *ConfigWatcher) Start(ctx context.Context) error {
	dir := filepath.Dir(cw.path)
	if err := cw.watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	cw.logger.Info("watching config", zap.String("path", cw.path))

	debounce := time.NewTimer(cw.Debounce)
	if !debounce.Stop() {
		<-debounce.C
	}

	go func() {
		defer debounce.Stop()
		for {
			select {
			case event, ok := <-cw.watcher.Events:
				if !ok {
					return
				}
				if cw.shouldReload(event) {
					cw.logger.Debug("config changed",
						zap.String("file", event.Name),
						zap.String("op", event.Op.String()))
					debounce.Reset(cw.Debounce)
				}
			case err, ok := <-cw.watcher.Errors:
				if !ok {
					return
				}
				cw.logger.Warn("config watcher error", zap.Error(err))
			case <-debounce.C:
				cw.reload()
			case <-ctx.Done():
				cw.logger.Info("stopping config watcher")
				return
			}
		}
	}()
	return nil
}

// Stop closes the underlying watcher.
func (cw *ConfigWatcher) Stop() error {
	return cw.watcher.Close()
}

func (cw *ConfigWatcher) shouldReload(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != cw.path {
		return false
	}
	return event.Op&(fsnotify.Create|fsnotify.Write) != 0
}

// reload parses the file and publishes it, replacing any unread config.
func (cw *ConfigWatcher) reload() {
	cfg, err := LoadConfig(cw.path)
	if err != nil {
		cw.logger.Warn("config reload failed", zap.String("path", cw.path), zap.Error(err))
		return
	}
	select {
	case <-cw.configs:
	default:
	}
	cw.configs <- cfg
	cw.logger.Info("config reloaded", zap.String("path", cw.path), zap.Int("count", cfg.Count))
}
