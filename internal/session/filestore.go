package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// FileStore persists the session as a JSON file on disk, shared by every
// console process of the same user. Reads always go to the file so a login
// or logout in one process is visible to the others; an fsnotify watcher on
// the parent directory turns foreign writes into change notifications.
type FileStore struct {
	notifier
	path   string
	logger *zap.Logger

	mu        sync.Mutex
	watcher   *fsnotify.Watcher
	done      chan struct{}
	lastWrite atomic.Int64
}

type sessionFile struct {
	Token   string  `json:"token,omitempty"`
	Profile Profile `json:"profile,omitempty"`
}

// NewFileStore builds a store persisting to path. A failure to set up the
// change watcher degrades to a store without cross-process notifications.
func NewFileStore(path string, logger *zap.Logger) *FileStore {
	s := &FileStore{path: path, logger: logger, done: make(chan struct{})}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		logger.Warn("session dir unavailable", zap.String("dir", dir), zap.Error(err))
		return s
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Warn("session change watcher unavailable", zap.Error(err))
		return s
	}
	if err := watcher.Add(dir); err != nil {
		logger.Warn("session change watcher unavailable", zap.Error(err))
		_ = watcher.Close()
		return s
	}
	s.watcher = watcher
	go s.watch()
	return s
}

// Token returns the persisted token, if any.
func (s *FileStore) Token() (string, bool) {
	state := s.read()
	return state.Token, state.Token != ""
}

// SetToken persists the token, skipping empty values.
func (s *FileStore) SetToken(token string) {
	if token == "" {
		return
	}
	s.mu.Lock()
	state := s.read()
	state.Token = token
	s.write(state)
	s.mu.Unlock()
	s.broadcast()
}

// Profile returns the cached profile, if any.
func (s *FileStore) Profile() (Profile, bool) {
	state := s.read()
	return state.Profile, state.Profile != nil
}

// SetProfile caches the profile.
func (s *FileStore) SetProfile(profile Profile) {
	s.mu.Lock()
	state := s.read()
	state.Profile = profile
	s.write(state)
	s.mu.Unlock()
	s.broadcast()
}

// Clear removes the session file. Idempotent.
func (s *FileStore) Clear() {
	s.mu.Lock()
	s.lastWrite.Store(time.Now().UnixNano())
	err := os.Remove(s.path)
	s.mu.Unlock()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		s.logger.Warn("session clear failed", zap.Error(err))
		return
	}
	if err == nil {
		s.broadcast()
	}
}

// Close stops the change watcher.
func (s *FileStore) Close() error {
	select {
	case <-s.done:
	default:
		close(s.done)
	}
	if s.watcher != nil {
		return s.watcher.Close()
	}
	return nil
}

func (s *FileStore) read() sessionFile {
	var state sessionFile
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("session read failed", zap.Error(err))
		}
		return sessionFile{}
	}
	if err := json.Unmarshal(raw, &state); err != nil {
		s.logger.Warn("session file corrupt, ignoring", zap.Error(err))
		return sessionFile{}
	}
	return state
}

// write replaces the session file atomically via rename, so a concurrent
// reader never observes a partial write.
func (s *FileStore) write(state sessionFile) {
	raw, err := json.Marshal(state)
	if err != nil {
		s.logger.Warn("session encode failed", zap.Error(err))
		return
	}
	tmp := s.path + ".tmp"
	s.lastWrite.Store(time.Now().UnixNano())
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		s.logger.Warn("session write failed", zap.Error(err))
		return
	}
	if err := os.Rename(tmp, s.path); err != nil {
		s.logger.Warn("session write failed", zap.Error(err))
	}
}

// watch forwards foreign writes to the session file as change broadcasts.
// Events landing right after one of our own writes are the write echoing
// back through the watcher and are dropped; cross-process signals are
// best-effort, so the rare external write inside that window is an accepted
// miss.
func (s *FileStore) watch() {
	const selfEventWindow = 500 * time.Millisecond
	for {
		select {
		case <-s.done:
			return
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if event.Name != s.path {
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) &&
				!event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
				continue
			}
			last := time.Unix(0, s.lastWrite.Load())
			if time.Since(last) < selfEventWindow {
				continue
			}
			s.broadcast()
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.logger.Debug("session watcher error", zap.Error(err))
		}
	}
}
