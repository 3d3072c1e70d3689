package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"freight-route-service/internal/domain"
	"log"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// ParseRules decodes YAML over DefaultRules. Scalars and lists present in the
// document replace the defaults; map entries are merged key by key.
func ParseRules(data []byte) (domain.Rules, error) {
	rules := domain.DefaultRules()
	if len(bytes.TrimSpace(data)) == 0 {
		return rules, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&rules); err != nil {
		return domain.Rules{}, fmt.Errorf("parse rules: %w", err)
	}
	if err := rules.Validate(); err != nil {
		return domain.Rules{}, fmt.Errorf("parse rules: %w", err)
	}
	return rules, nil
}

// LoadRules reads a rules file. An empty path yields DefaultRules.
func LoadRules(path string) (domain.Rules, error) {
	if path == "" {
		return domain.DefaultRules(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Rules{}, fmt.Errorf("load rules: read %q: %w", path, err)
	}
	return ParseRules(data)
}

// ReloadObserver is told about every reload attempt.
type ReloadObserver interface {
	ObserveRulesReload(ok bool)
}

// RulesStore holds the current rules and swaps them atomically on reload.
// Readers take a Snapshot per planning call.
type RulesStore struct {
	path     string
	current  atomic.Pointer[domain.Rules]
	observer ReloadObserver
}

func NewRulesStore(path string) (*RulesStore, error) {
	rules, err := LoadRules(path)
	if err != nil {
		return nil, err
	}

	s := &RulesStore{path: path}
	s.current.Store(&rules)
	return s, nil
}

func (s *RulesStore) SetObserver(o ReloadObserver) { s.observer = o }

// Snapshot returns a deep copy of the current rules.
func (s *RulesStore) Snapshot() domain.Rules {
	return s.current.Load().Clone()
}

// Reload re-reads the rules file. On failure the previous rules stay active.
func (s *RulesStore) Reload() error {
	rules, err := LoadRules(s.path)
	if s.observer != nil {
		s.observer.ObserveRulesReload(err == nil)
	}
	if err != nil {
		return err
	}

	s.current.Store(&rules)
	return nil
}

// Watch reloads the rules whenever the file changes until ctx is done.
// The parent directory is watched so editors that replace the file are seen.
func (s *RulesStore) Watch(ctx context.Context) error {
	if s.path == "" {
		return nil
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch rules: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(s.path)); err != nil {
		return fmt.Errorf("watch rules: add %q: %w", filepath.Dir(s.path), err)
	}
	target := filepath.Clean(s.path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return errors.New("watch rules: event channel closed")
			}
			if filepath.Clean(ev.Name) != target || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			if err := s.Reload(); err != nil {
				log.Printf("rules reload failed path=%s err=%v", s.path, err)
				continue
			}
			log.Printf("rules reloaded path=%s", s.path)
		case err, ok := <-w.Errors:
			if !ok {
				return errors.New("watch rules: error channel closed")
			}
			log.Printf("rules watcher error path=%s err=%v", s.path, err)
		}
	}
}
