package configwatcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"edu_analytics_backend/internal/config"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultDebounce = time.Second

type ConfigReloader func(cfg *config.Config)

// Watcher reloads the config file after writes settle.
type Watcher struct {
	Path     string
	Debounce time.Duration
	Load     func(dir string) (*config.Config, error)
	Log      *zap.Logger
}

func New(configPath string, log *zap.Logger) *Watcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Watcher{
		Path:     configPath,
		Debounce: defaultDebounce,
		Load:     config.LoadConfig,
		Log:      log,
	}
}

// Watch blocks until ctx is done. A config that fails to load is logged and
// the previous one stays in effect.
func (w *Watcher) Watch(ctx context.Context, reloader ConfigReloader) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create config watcher: %w", err)
	}
	defer watcher.Close()

	absPath, err := filepath.Abs(w.Path)
	if err != nil {
		return fmt.Errorf("resolve config path: %w", err)
	}

	// 监听目录，编辑器保存时常以 rename 替换文件
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		return fmt.Errorf("watch config dir: %w", err)
	}

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != absPath {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				// 防抖处理
				timer.Reset(debounce)
			}
		case <-timer.C:
			newCfg, err := w.Load(filepath.Dir(absPath))
			if err != nil {
				w.Log.Error("Failed to reload config", zap.Error(err))
				continue
			}
			reloader(newCfg)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.Log.Error("Config watcher error", zap.Error(err))
		}
	}
}
