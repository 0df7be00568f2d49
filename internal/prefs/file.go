// Package prefs handles hnstories user preferences persistence.
// Preferences are stored as flat string keys in ~/.config/hnstories/prefs.toml.
package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
)

const defaultPrefsPath = "~/.config/hnstories/prefs.toml"

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// FileSlot stores preferences in a TOML file. Every Set rewrites the file.
type FileSlot struct {
	mu   sync.Mutex
	path string
}

var _ Slot = (*FileSlot)(nil)

// NewFileSlot resolves path (empty uses DefaultPath) and returns a slot for it.
// The file itself is not touched until the first Get or Set.
func NewFileSlot(path string) (*FileSlot, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return nil, fmt.Errorf("resolve prefs path: %w", err)
	}
	return &FileSlot{path: resolved}, nil
}

// Path returns the resolved file path.
func (f *FileSlot) Path() string {
	return f.path
}

// Get reads key from the file. A missing file or key reports absent.
func (f *FileSlot) Get(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.load()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

// Set stores value under key, creating directories as needed. Other keys
// in the file are preserved unless the file cannot be parsed, in which case
// it is replaced.
func (f *FileSlot) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.load()
	switch {
	case errors.Is(err, ErrCorrupt):
		values = make(map[string]string)
	case err != nil:
		return err
	}
	values[key] = value

	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}
	bytes, err := toml.Marshal(values)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, bytes, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace prefs: %w", err)
	}
	return nil
}

func (f *FileSlot) load() (map[string]string, error) {
	values := make(map[string]string)

	bytes, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return values, nil
		}
		return nil, fmt.Errorf("read prefs: %w", err)
	}

	var raw map[string]any
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return nil, fmt.Errorf("parse prefs: %w: %w", ErrCorrupt, err)
	}
	for k, v := range raw {
		if s, ok := v.(string); ok {
			values[k] = s
		}
	}
	return values, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultPrefsPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
