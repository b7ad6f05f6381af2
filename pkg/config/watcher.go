package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/decker502/timeleap/pkg/logging"
	"github.com/fsnotify/fsnotify"
)

// DefaultReloadDelay 最后一次文件事件之后等待多久再重新加载
const DefaultReloadDelay = 100 * time.Millisecond

// Watcher 监听展示配置文件变化并重新加载
// 连续的写入事件会合并，安静 delay 之后才读取一次文件。
// 重新加载成功的配置通过 Updates() 通道交给游戏循环，在 Update 中消费；
// 未被消费的旧配置会被新配置替换。解析失败的修改只记录日志
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	updates chan *ShowcaseConfig
	delay   time.Duration

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewWatcher 创建配置监听器
func NewWatcher(path string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create config watcher: %w", err)
	}
	return &Watcher{
		path:    filepath.Clean(path),
		watcher: fw,
		updates: make(chan *ShowcaseConfig, 1),
		delay:   DefaultReloadDelay,
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}, nil
}

// Updates 重新加载后的配置
func (w *Watcher) Updates() <-chan *ShowcaseConfig {
	return w.updates
}

// Start 开始监听（非阻塞）
// 监听配置文件所在目录，编辑器以替换方式保存时也能收到事件
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.path, err)
	}
	w.running = true
	go w.run(ctx)
	logging.Named("ConfigWatcher").Infof("watching %s", w.path)
	return nil
}

// Stop 停止监听并等待后台 goroutine 退出
func (w *Watcher) Stop() error {
	w.mu.Lock()
	running := w.running
	w.running = false
	w.mu.Unlock()

	if running {
		close(w.stopCh)
		<-w.doneCh
	}
	return w.watcher.Close()
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)
	log := logging.Named("ConfigWatcher")

	timer := time.NewTimer(w.delay)
	timer.Stop()
	defer timer.Stop()
	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Warnf("watch error: %v", err)
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			timer.Reset(w.delay)
			pending = timer.C
		case <-pending:
			pending = nil
			// 截断后尚未写入内容的空文件，等待下一次写入事件
			if info, err := os.Stat(w.path); err != nil || info.Size() == 0 {
				continue
			}
			cfg, err := LoadShowcaseConfig(w.path)
			if err != nil {
				log.Warnf("ignoring invalid config change: %v", err)
				continue
			}
			log.Infof("config reloaded")
			w.publish(cfg)
		}
	}
}

// publish 发布新配置，替换尚未被消费的旧配置
func (w *Watcher) publish(cfg *ShowcaseConfig) {
	select {
	case <-w.updates:
	default:
	}
	w.updates <- cfg
}
