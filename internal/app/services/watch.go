package services

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileWatchDebounce is the minimum delay between two signals for one file.
const FileWatchDebounce = 300 * time.Millisecond

// FileWatchService reports changes made to managed resource files by other
// programs. Directories are watched rather than files so editors that save
// by renaming a temporary file are still noticed.
type FileWatchService struct {
	Started bool
	Waiting bool
	Events  chan string
	Done    chan struct{}
	Watcher *fsnotify.Watcher

	mu          sync.Mutex
	files       map[string]struct{}
	lastSignal  map[string]time.Time
	ignoreUntil time.Time
	logf        func(string, ...any)
}

// NewFileWatchService creates a new FileWatchService.
func NewFileWatchService(logf func(string, ...any)) *FileWatchService {
	return &FileWatchService{logf: logf}
}

// Start watches the parent directories of paths and starts the background
// goroutine. It returns false when nothing could be watched.
func (w *FileWatchService) Start(paths []string) (bool, error) {
	if w.Started || len(paths) == 0 {
		return false, nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return false, err
	}

	w.Watcher = watcher
	w.files = make(map[string]struct{}, len(paths))
	w.lastSignal = make(map[string]time.Time, len(paths))
	dirs := make(map[string]struct{})
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			abs = filepath.Clean(p)
		}
		w.files[abs] = struct{}{}
		dir := filepath.Dir(abs)
		if _, ok := dirs[dir]; ok {
			continue
		}
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			w.debugf("file watcher: skipping missing directory %s", dir)
			continue
		}
		if err := watcher.Add(dir); err != nil {
			w.debugf("file watcher add failed for %s: %v", dir, err)
			continue
		}
		dirs[dir] = struct{}{}
	}
	if len(dirs) == 0 {
		_ = watcher.Close()
		w.Watcher = nil
		return false, nil
	}

	w.Started = true
	w.Events = make(chan string, 1)
	w.Done = make(chan struct{})
	go w.run()
	return true, nil
}

// Stop stops the watcher and closes channels.
func (w *FileWatchService) Stop() {
	if !w.Started {
		return
	}
	close(w.Done)
	w.Started = false
	if w.Watcher != nil {
		_ = w.Watcher.Close()
	}
}

// NextEvent returns the event channel if waiting is not already active.
func (w *FileWatchService) NextEvent() <-chan string {
	if w.Events == nil || w.Waiting {
		return nil
	}
	w.Waiting = true
	return w.Events
}

// ResetWaiting clears the waiting flag after an event is processed.
func (w *FileWatchService) ResetWaiting() {
	w.Waiting = false
}

// Suppress ignores changes for d, covering files this process is writing.
func (w *FileWatchService) Suppress(d time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.ignoreUntil = time.Now().Add(d)
}

// Watches reports whether path is one of the managed files.
func (w *FileWatchService) Watches(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.files[filepath.Clean(path)]
	return ok
}

func (w *FileWatchService) shouldSignal(path string, now time.Time) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.files[path]; !ok {
		return false
	}
	if now.Before(w.ignoreUntil) {
		return false
	}
	if last, ok := w.lastSignal[path]; ok && now.Sub(last) < FileWatchDebounce {
		return false
	}
	w.lastSignal[path] = now
	return true
}

func (w *FileWatchService) signal(path string) {
	select {
	case <-w.Done:
		return
	default:
	}
	select {
	case w.Events <- path:
	default:
	}
}

func (w *FileWatchService) run() {
	for {
		select {
		case <-w.Done:
			return
		case event, ok := <-w.Watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			path := filepath.Clean(event.Name)
			if !w.shouldSignal(path, time.Now()) {
				continue
			}
			w.debugf("file watcher: %s %s", event.Op, path)
			w.signal(path)
		case err, ok := <-w.Watcher.Errors:
			if !ok {
				return
			}
			w.debugf("file watcher error: %v", err)
		}
	}
}

func (w *FileWatchService) debugf(format string, args ...any) {
	if w.logf == nil {
		return
	}
	w.logf(format, args...)
}
