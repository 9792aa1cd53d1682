// Package uistate keeps the small ui.json file shared by every shell window
// (currently just the theme) and reports edits made to it on disk.
package uistate

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/petervdpas/tabshell/internal/util"
)

const DefaultTheme = "dark"

type State struct {
	Theme string `json:"theme"`
}

// Normalize maps anything but "light" and "dark" to the default theme.
func Normalize(theme string) string {
	if theme == "light" || theme == "dark" {
		return theme
	}
	return DefaultTheme
}

type Store struct {
	path string

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	closed  chan struct{}
	last    string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string { return s.path }

// Theme reads the stored theme. A missing or corrupt file is rewritten with
// the default.
func (s *Store) Theme() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.readLocked()
	return st.Theme, err
}

func (s *Store) SetTheme(theme string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	theme = Normalize(theme)
	if err := util.WriteJSONFile(s.path, State{Theme: theme}); err != nil {
		return "", fmt.Errorf("write %s: %w", s.path, err)
	}
	return theme, nil
}

func (s *Store) readLocked() (State, error) {
	st, err := load(s.path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return State{Theme: DefaultTheme}, util.WriteJSONFile(s.path, State{Theme: DefaultTheme})
	case errors.Is(err, errCorrupt):
		log.Printf("UI: %v, resetting", err)
		return State{Theme: DefaultTheme}, util.WriteJSONFile(s.path, State{Theme: DefaultTheme})
	case err != nil:
		return State{Theme: DefaultTheme}, err
	}
	return st, nil
}

var errCorrupt = errors.New("corrupt ui state")

// load reads the file without repairing it.
func load(path string) (State, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return State{}, err
	}
	var st State
	if err := json.Unmarshal(b, &st); err != nil {
		return State{}, fmt.Errorf("%w: %s: %v", errCorrupt, path, err)
	}
	st.Theme = Normalize(st.Theme)
	return st, nil
}

// Watch calls onChange whenever the theme on disk differs from the last one
// seen. The parent directory is watched so editors that replace the file
// are picked up too.
func (s *Store) Watch(onChange func(theme string)) error {
	current, err := s.Theme()
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(s.path)); err != nil {
		w.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(s.path), err)
	}

	s.mu.Lock()
	s.watcher = w
	s.closed = make(chan struct{})
	s.last = current
	closed := s.closed
	s.mu.Unlock()

	go s.watchLoop(w, closed, onChange)
	return nil
}

func (s *Store) watchLoop(w *fsnotify.Watcher, closed chan struct{}, onChange func(string)) {
	name := filepath.Clean(s.path)
	for {
		select {
		case <-closed:
			return
		case event, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			// A write in progress can leave the file half-written; the
			// next Write event brings the complete content.
			st, err := load(s.path)
			if err != nil {
				continue
			}
			s.mu.Lock()
			changed := st.Theme != s.last
			if changed {
				s.last = st.Theme
			}
			s.mu.Unlock()
			if changed {
				log.Printf("UI: theme changed to %s", st.Theme)
				onChange(st.Theme)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			log.Printf("UI: watcher error: %v", err)
		}
	}
}

// Close stops the watcher, if any.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.watcher == nil {
		return nil
	}
	close(s.closed)
	err := s.watcher.Close()
	s.watcher = nil
	return err
}
