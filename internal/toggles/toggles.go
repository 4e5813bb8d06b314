// Package toggles loads per-domain feature switches from a YAML file and
// hot-reloads them when the file changes on disk.
//
// The only switch currently defined controls ownership-cleanliness
// tracking: a domain with tracking disabled treats every owner as dirty and
// always computes full footprints. This is the rollout/rollback lever for
// the cheap sync path.
package toggles

import (
	"fmt"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"github.com/tkarimov/casesync/internal/logger"
)

// file format:
//
//	cleanliness_tracking:
//	  default: true
//	  domains:
//	    some-domain: false
type togglesFile struct {
	CleanlinessTracking struct {
		Default *bool           `yaml:"default"`
		Domains map[string]bool `yaml:"domains"`
	} `yaml:"cleanliness_tracking"`
}

// Registry answers per-domain feature-switch queries. The zero value (and a
// Registry constructed without a file) enables cleanliness tracking for
// every domain.
type Registry struct {
	mu      sync.RWMutex
	current togglesFile

	watcher *fsnotify.Watcher
	logger  *logger.Logger
}

// NewRegistry loads the toggle file at path and begins watching it for
// changes. An empty path returns a registry with everything enabled and no
// watcher.
//
// A file that disappears or fails to parse mid-flight keeps the last good
// state; the reload error is logged, never propagated, because toggles must
// not take the sync path down.
func NewRegistry(path string, log *logger.Logger) (*Registry, error) {
	r := &Registry{logger: log}

	if path == "" {
		return r, nil
	}

	if err := r.load(path); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("error creating toggles watcher: %w", err)
	}
	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("error watching toggles file: %w", err)
	}
	r.watcher = watcher

	go r.watch(path)

	return r, nil
}

func (r *Registry) load(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading toggles file: %w", err)
	}

	var parsed togglesFile
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("error parsing toggles file: %w", err)
	}

	r.mu.Lock()
	r.current = parsed
	r.mu.Unlock()

	return nil
}

func (r *Registry) watch(path string) {
	for {
		select {
		case event, ok := <-r.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := r.load(path); err != nil {
				r.logger.Err(err).Str("path", path).Msg("toggles reload failed, keeping previous state")
				continue
			}
			r.logger.Info().Str("path", path).Msg("toggles reloaded")
		case err, ok := <-r.watcher.Errors:
			if !ok {
				return
			}
			r.logger.Err(err).Msg("toggles watcher error")
		}
	}
}

// Close stops the file watcher. Safe on a registry without one.
func (r *Registry) Close() error {
	if r.watcher == nil {
		return nil
	}
	return r.watcher.Close()
}

// CleanlinessTrackingEnabled reports whether ownership-cleanliness tracking
// is enabled for the given domain. Per-domain entries override the default;
// the default defaults to enabled.
func (r *Registry) CleanlinessTrackingEnabled(domain string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if enabled, ok := r.current.CleanlinessTracking.Domains[domain]; ok {
		return enabled
	}
	if r.current.CleanlinessTracking.Default != nil {
		return *r.current.CleanlinessTracking.Default
	}
	return true
}
