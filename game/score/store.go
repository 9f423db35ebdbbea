// Package score persists the best score as a single small text file.
package score

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/wricardo/snakeysnake/game/engine"
)

var _ engine.ScoreStore = (*FileStore)(nil)

// FileStore implements engine.ScoreStore with one file holding the decimal score
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a store writing to path. The parent directory is
// created if needed.
func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create score directory: %w", err)
	}
	return &FileStore{path: path}, nil
}

// Path returns the backing file path
func (s *FileStore) Path() string {
	return s.path
}

// ReadBestScore returns the stored score. A missing file is not an error and
// reads as 0.
func (s *FileStore) ReadBestScore() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

func (s *FileStore) read() (int, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read score file: %w", err)
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return 0, nil
	}
	best, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("failed to parse score file %s: %w", s.path, err)
	}
	if best < 0 {
		return 0, fmt.Errorf("negative score %d in %s", best, s.path)
	}
	return best, nil
}

// WriteBestScore records score unless the file already holds a higher one
func (s *FileStore) WriteBestScore(score int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if current, err := s.read(); err == nil && current >= score {
		return nil
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".score-*")
	if err != nil {
		return fmt.Errorf("failed to create temp score file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(strconv.Itoa(score) + "\n"); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write score: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp score file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace score file: %w", err)
	}
	return nil
}

// PathFor returns the score file used for a config inside dir
func PathFor(dir, configName string) string {
	name := strings.ToLower(strings.TrimSpace(configName))
	if name == "" {
		name = "default"
	}
	return filepath.Join(dir, name+".score")
}
