package config

import (
	"context"
	"log"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Store holds the live configuration snapshot and reloads it when the file
// on disk changes. Get returns a copy, so a reload mid-gesture never mutates
// a value a caller is already working with.
type Store struct {
	mu   sync.RWMutex
	cfg  Config
	path string

	onChange func(Config)
}

// NewStore loads the initial configuration from path.
func NewStore(path string) (*Store, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	return &Store{cfg: cfg, path: path}, nil
}

// Get returns the current configuration snapshot.
func (s *Store) Get() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Path returns the config file path backing this store.
func (s *Store) Path() string {
	return s.path
}

// OnChange registers a callback invoked after every successful reload. The
// callback runs on the watcher goroutine; it must hand off to the owning
// event loop itself.
func (s *Store) OnChange(fn func(Config)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// Reload re-reads the file, keeping the previous snapshot on error.
func (s *Store) Reload() error {
	cfg, err := Load(s.path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.cfg = cfg
	fn := s.onChange
	s.mu.Unlock()

	if fn != nil {
		fn(cfg)
	}
	return nil
}

// Watch reloads the configuration whenever the file changes, until ctx is
// cancelled. The parent directory is watched so editors that replace the
// file instead of rewriting it are still picked up.
func (s *Store) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		watcher.Close()
		return err
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Name != s.path {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				if err := s.Reload(); err != nil {
					log.Printf("Config reload failed: %v", err)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("Config watcher error: %v", err)
			}
		}
	}()

	return nil
}
