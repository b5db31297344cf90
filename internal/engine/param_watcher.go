package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"Gopher3DSky/internal/logger"
	"Gopher3DSky/internal/params"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
)

// ReadParamFile parses a TOML file of `name = number` pairs.
func ReadParamFile(path string) (map[string]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read params: %w", err)
	}
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse params %s: %w", path, err)
	}
	values := make(map[string]float64, len(raw))
	for name, v := range raw {
		switch n := v.(type) {
		case int64:
			values[name] = float64(n)
		case float64:
			values[name] = n
		default:
			return nil, fmt.Errorf("parse params %s: %q is %T, want a number", path, name, v)
		}
	}
	return values, nil
}

// ParamWatcher re-reads a parameter file whenever it is written and sets each
// value on the store from the host thread.
type ParamWatcher struct {
	path     string
	store    *params.Store
	dispatch Dispatcher
	watcher  *fsnotify.Watcher
	done     chan struct{}
	started  bool
}

// NewParamWatcher watches the directory holding path, since editors often
// replace a file rather than write it in place.
func NewParamWatcher(path string, store *params.Store, dispatch Dispatcher) (*ParamWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	return &ParamWatcher{
		path:     abs,
		store:    store,
		dispatch: dispatch,
		watcher:  w,
		done:     make(chan struct{}),
	}, nil
}

// Start loads the file once and then follows changes until Close.
func (pw *ParamWatcher) Start() {
	if _, err := os.Stat(pw.path); err == nil {
		pw.reload()
	}
	pw.started = true
	go pw.run()
}

func (pw *ParamWatcher) run() {
	defer close(pw.done)
	for {
		select {
		case ev, ok := <-pw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != pw.path {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				pw.reload()
			}
		case err, ok := <-pw.watcher.Errors:
			if !ok {
				return
			}
			logger.Log.Warn("Parameter watcher error", zap.Error(err))
		}
	}
}

func (pw *ParamWatcher) reload() {
	values, err := ReadParamFile(pw.path)
	if err != nil {
		// Partial writes are common; the next event retries.
		logger.Log.Warn("Ignoring parameter file", zap.String("path", pw.path), zap.Error(err))
		return
	}
	pw.dispatch.Post(func() { pw.apply(values) })
}

func (pw *ParamWatcher) apply(values map[string]float64) {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if !pw.store.Has(name) {
			logger.Log.Warn("Unknown parameter in file", zap.String("name", name), zap.String("path", pw.path))
			continue
		}
		v := pw.store.Parameter(name).Clamp(values[name])
		if pw.store.Get(name) == v {
			continue
		}
		pw.store.Set(name, v)
		logger.Log.Info("Parameter updated from file", zap.String("name", name), zap.Float64("value", pw.store.Get(name)))
	}
}

func (pw *ParamWatcher) Close() error {
	err := pw.watcher.Close()
	if pw.started {
		<-pw.done
	}
	return err
}
