package monitoring

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// ArtifactWatcher 监视模型目录。模型只在启动时加载一次，
// 这里只记录变更并提示需要重启。
type ArtifactWatcher struct {
	watcher   *fsnotify.Watcher
	artifacts map[string]bool
	logger    *zap.Logger
	events    chan string
	done      chan struct{}
	wg        sync.WaitGroup
}

// NewArtifactWatcher 创建模型目录监视器
func NewArtifactWatcher(dir string, artifacts []string, logger *zap.Logger) (*ArtifactWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, err
	}

	names := make(map[string]bool, len(artifacts))
	for _, name := range artifacts {
		names[name] = true
	}

	w := &ArtifactWatcher{
		watcher:   watcher,
		artifacts: names,
		logger:    logger,
		events:    make(chan string, 16),
		done:      make(chan struct{}),
	}
	w.wg.Add(1)
	go w.run()
	return w, nil
}

// Changes 返回发生变更的模型文件名
func (w *ArtifactWatcher) Changes() <-chan string {
	return w.events
}

func (w *ArtifactWatcher) run() {
	defer w.wg.Done()
	defer close(w.events)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			name := filepath.Base(event.Name)
			if !w.artifacts[name] {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.logger.Warn("model artifact changed on disk, restart to pick it up",
				zap.String("artifact", name),
				zap.String("op", event.Op.String()))
			select {
			case w.events <- name:
			default:
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("artifact watcher error", zap.Error(err))

		case <-w.done:
			return
		}
	}
}

// Close 停止监视
func (w *ArtifactWatcher) Close() error {
	close(w.done)
	err := w.watcher.Close()
	w.wg.Wait()
	return err
}
