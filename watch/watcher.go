// Package watch reports debounced, content-checked changes to the module
// documents matched by a set of doublestar patterns.
package watch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

const (
	// batchChannelBuffer is the size of the batch channel.
	batchChannelBuffer = 16

	defaultDebounce = 500 * time.Millisecond
)

// Config configures module document watching.
type Config struct {
	// Patterns are the doublestar globs module documents are discovered by.
	Patterns []string

	// Debounce is how long changes accumulate before a batch is emitted.
	Debounce time.Duration

	// ExcludeDirs lists directory names to skip.
	ExcludeDirs []string
}

func (c Config) debounce() time.Duration {
	if c.Debounce <= 0 {
		return defaultDebounce
	}
	return c.Debounce
}

// Operation indicates the type of file change.
type Operation string

// OpCreate, OpModify and OpDelete enumerate the change kinds.
const (
	OpCreate Operation = "create"
	OpModify Operation = "modify"
	OpDelete Operation = "delete"
)

// Event is one changed module document.
type Event struct {
	// Path is the absolute file path.
	Path      string
	Operation Operation
}

// root is a directory to watch recursively and the pattern, relative to
// it, that documents must match.
type root struct {
	dir     string
	pattern string
}

// Watcher watches module documents and emits batches of changes.
type Watcher struct {
	config   Config
	roots    []root
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	excludes map[string]bool

	// Debouncing: collect changes before processing
	pendingMu sync.Mutex
	pending   map[string]fsnotify.Op

	// Hash-based change detection
	hashMu sync.RWMutex
	hashes map[string]string

	batches chan []Event

	droppedBatches atomic.Int64
}

// New creates a watcher for the documents matched by config.Patterns.
func New(config Config, logger *slog.Logger) (*Watcher, error) {
	if len(config.Patterns) == 0 {
		return nil, fmt.Errorf("no patterns to watch")
	}
	if logger == nil {
		logger = slog.Default()
	}

	roots := make([]root, 0, len(config.Patterns))
	for _, p := range config.Patterns {
		base, pattern := doublestar.SplitPattern(filepath.ToSlash(p))
		dir, err := filepath.Abs(filepath.FromSlash(base))
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", base, err)
		}
		roots = append(roots, root{dir: dir, pattern: pattern})
	}

	excludes := map[string]bool{".git": true, "node_modules": true, "vendor": true}
	if len(config.ExcludeDirs) > 0 {
		excludes = make(map[string]bool, len(config.ExcludeDirs))
		for _, dir := range config.ExcludeDirs {
			excludes[dir] = true
		}
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		config:   config,
		roots:    roots,
		watcher:  fsw,
		logger:   logger,
		excludes: excludes,
		pending:  make(map[string]fsnotify.Op),
		hashes:   make(map[string]string),
		batches:  make(chan []Event, batchChannelBuffer),
	}, nil
}

// Events returns the channel of change batches. It is closed when the
// watcher stops.
func (w *Watcher) Events() <-chan []Event {
	return w.batches
}

// Start adds watches below every pattern root and begins processing.
func (w *Watcher) Start(ctx context.Context) error {
	watched := 0
	for _, r := range w.roots {
		if _, err := os.Stat(r.dir); err != nil {
			w.logger.Warn("Skipping missing watch root", "dir", r.dir, "error", err)
			continue
		}
		if err := w.addWatchesRecursive(r.dir); err != nil {
			return err
		}
		watched++
	}
	if watched == 0 {
		return fmt.Errorf("none of the pattern roots exist")
	}

	go w.processEvents(ctx)

	w.logger.Info("Module watcher started",
		"patterns", w.config.Patterns,
		"debounce", w.config.debounce())

	return nil
}

// Stop stops the watcher.
// The batch channel is closed by processEvents when it exits.
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}

// Seed records the current content of paths so that rewriting them with
// identical bytes does not produce an event.
func (w *Watcher) Seed(paths []string) {
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		w.setHash(path, contentHash(content))
	}
}

// Matches reports whether path is a module document under some pattern.
func (w *Watcher) Matches(path string) bool {
	for _, r := range w.roots {
		rel, err := filepath.Rel(r.dir, path)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		if ok, _ := doublestar.Match(r.pattern, filepath.ToSlash(rel)); ok {
			return true
		}
	}
	return false
}

// DroppedBatches returns the number of batches dropped due to a full channel.
func (w *Watcher) DroppedBatches() int64 {
	return w.droppedBatches.Load()
}

func (w *Watcher) setHash(path, hash string) {
	w.hashMu.Lock()
	defer w.hashMu.Unlock()
	w.hashes[path] = hash
}

func (w *Watcher) hash(path string) (string, bool) {
	w.hashMu.RLock()
	defer w.hashMu.RUnlock()
	hash, ok := w.hashes[path]
	return hash, ok
}

// addWatchesRecursive adds watches to all directories below root.
func (w *Watcher) addWatchesRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && w.skipDir(filepath.Base(path)) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			w.logger.Warn("Failed to watch directory", "path", path, "error", err)
		} else {
			w.logger.Debug("Watching directory", "path", path)
		}
		return nil
	})
}

func (w *Watcher) skipDir(base string) bool {
	return w.excludes[base] || strings.HasPrefix(base, ".")
}

// processEvents handles fsnotify events with debouncing.
func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.batches)
	ticker := time.NewTicker(w.config.debounce())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFSEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Watcher error", "error", err)

		case <-ticker.C:
			w.flushPending()
		}
	}
}

func (w *Watcher) handleFSEvent(event fsnotify.Event) {
	path := event.Name

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if !w.skipDir(filepath.Base(path)) {
				if err := w.addWatchesRecursive(path); err != nil {
					w.logger.Warn("Failed to watch new directory", "path", path, "error", err)
				}
			}
			return
		}
	}

	if !w.Matches(path) {
		return
	}

	w.pendingMu.Lock()
	w.pending[path] |= event.Op
	w.pendingMu.Unlock()

	w.logger.Debug("Module document change detected", "path", path, "op", event.Op.String())
}

// flushPending turns accumulated changes into one batch.
func (w *Watcher) flushPending() {
	w.pendingMu.Lock()
	if len(w.pending) == 0 {
		w.pendingMu.Unlock()
		return
	}
	toProcess := w.pending
	w.pending = make(map[string]fsnotify.Op)
	w.pendingMu.Unlock()

	var batch []Event
	for path := range toProcess {
		content, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			if _, had := w.hash(path); had {
				w.hashMu.Lock()
				delete(w.hashes, path)
				w.hashMu.Unlock()
			}
			batch = append(batch, Event{Path: path, Operation: OpDelete})
			continue
		}
		if err != nil {
			w.logger.Warn("Failed to read file for hash check", "path", path, "error", err)
			continue
		}

		newHash := contentHash(content)
		oldHash, hadHash := w.hash(path)
		if hadHash && oldHash == newHash {
			continue
		}
		w.setHash(path, newHash)

		op := OpModify
		if !hadHash {
			op = OpCreate
		}
		batch = append(batch, Event{Path: path, Operation: op})
	}
	if len(batch) == 0 {
		return
	}
	sort.Slice(batch, func(i, j int) bool { return batch[i].Path < batch[j].Path })

	select {
	case w.batches <- batch:
		w.logger.Debug("Sent change batch", "changes", len(batch))
	default:
		dropped := w.droppedBatches.Add(1)
		w.logger.Warn("Batch channel full, dropping changes",
			"changes", len(batch),
			"total_dropped", dropped)
	}
}

func contentHash(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}
