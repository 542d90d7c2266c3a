// Package exporter turns filesystem activity in the configured export
// destinations into export.FINISHED events.
//
// The design application writes exported assets directly to disk; it does
// not tell us when it is done. The Watcher approximates the application's
// own "export finished" notification by collecting file writes and closing
// a batch once the destinations have been quiet for a settle period.
package exporter // import "github.com/svgpress/svgpress/exporter"

import (
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/svgpress/svgpress/event"
)

// Finished is emitted on the dispatcher once per completed export batch.
// The event data carries the *Batch under the "batch" key.
const Finished = "export.FINISHED"

const defaultSettle = 500 * time.Millisecond

type Config struct {
	// Roots are the export destination directories to watch.
	Roots []string `toml:"roots"`
	// SettleMs is the quiet period that closes a batch, in milliseconds.
	SettleMs int `toml:"settle_ms"`
}

type Watcher struct {
	config *Config
	events *event.Dispatcher

	fsw      *fsnotify.Watcher
	incoming chan string
	quit     chan struct{}

	mu      sync.Mutex
	running bool
}

func NewWatcher(c *Config, ev *event.Dispatcher) *Watcher {
	return &Watcher{config: c, events: ev}
}

func (w *Watcher) settle() time.Duration {
	if w.config.SettleMs > 0 {
		return time.Duration(w.config.SettleMs) * time.Millisecond
	}
	return defaultSettle
}

func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return errors.New("already watching")
	}
	if len(w.config.Roots) == 0 {
		logrus.Warnln("exporter: no export roots configured, nothing to watch")
		return nil
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "unable to create filesystem watcher")
	}
	for _, root := range w.config.Roots {
		if err := fsw.Add(root); err != nil {
			fsw.Close()
			return errors.Wrapf(err, "unable to watch export root (%s)", root)
		}
		logrus.Infoln("exporter: watching", root)
	}
	w.fsw = fsw
	w.incoming = make(chan string)
	w.quit = make(chan struct{})
	w.running = true
	go w.watchLoop(fsw, w.incoming, w.quit)
	go w.batchLoop(w.incoming, w.quit)
	return nil
}

func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.running {
		return nil
	}
	w.running = false
	close(w.quit)
	return w.fsw.Close()
}

// Restart stops and starts the Watcher, picking up any config changes.
func (w *Watcher) Restart() error {
	if err := w.Stop(); err != nil {
		logrus.Warnln("exporter: error stopping watcher:", err)
	}
	return w.Start()
}

// watchLoop forwards finished file writes from fsnotify to the batcher.
func (w *Watcher) watchLoop(fsw *fsnotify.Watcher, incoming chan<- string, quit <-chan struct{}) {
	for {
		select {
		case evt, ok := <-fsw.Events:
			if !ok {
				return
			}
			if evt.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			fi, err := os.Stat(evt.Name)
			if err != nil {
				continue
			}
			if fi.IsDir() {
				// exports may create per-page subfolders
				if err := fsw.Add(evt.Name); err != nil {
					logrus.Warnln("exporter: unable to watch new folder:", err)
				}
				continue
			}
			select {
			case incoming <- evt.Name:
			case <-quit:
				return
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			logrus.Warnln("exporter: watch error:", err)
		case <-quit:
			return
		}
	}
}

// batchLoop groups written files into batches. A batch closes after the
// settle period elapses with no further writes.
func (w *Watcher) batchLoop(incoming <-chan string, quit <-chan struct{}) {
	var pending []string
	seen := make(map[string]bool)
	var timer *time.Timer
	var timeout <-chan time.Time
	for {
		select {
		case p := <-incoming:
			if !seen[p] {
				seen[p] = true
				pending = append(pending, p)
			}
			if timer == nil {
				timer = time.NewTimer(w.settle())
				timeout = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timeout:
					default:
					}
				}
				timer.Reset(w.settle())
			}
		case <-timeout:
			w.emit(pending)
			pending = nil
			seen = make(map[string]bool)
			timer = nil
			timeout = nil
		case <-quit:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

func (w *Watcher) emit(paths []string) {
	if len(paths) == 0 {
		return
	}
	b := &Batch{ID: uuid.NewString()}
	for _, p := range paths {
		b.Records = append(b.Records, Record{Path: p, Format: formatOf(p)})
	}
	logrus.Infof("exporter: export %s finished with %d file(s)", b.ID, len(b.Records))
	w.events.Emit(Finished, map[string]interface{}{"batch": b})
}
