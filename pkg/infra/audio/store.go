package audio

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/NeuralTrust/SafePrompt/pkg/domain"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	Extension  = ".mp3"
	defaultDir = "safeprompt-audio"
)

// FileStore keeps synthesized audio as uuid named mp3 files in one directory.
type FileStore struct {
	dir       string
	retention time.Duration
	logger    *logrus.Logger

	stopOnce sync.Once
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

// NewFileStore creates dir if needed. An empty dir selects a folder under
// os.TempDir. A zero retention keeps files forever.
func NewFileStore(dir string, retention time.Duration, logger *logrus.Logger) (*FileStore, error) {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), defaultDir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create audio dir %s: %w", dir, err)
	}
	return &FileStore{
		dir:       dir,
		retention: retention,
		logger:    logger,
		stopCh:    make(chan struct{}),
	}, nil
}

func (s *FileStore) Dir() string {
	return s.dir
}

func (s *FileStore) Save(ctx context.Context, audio []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name := uuid.NewString() + Extension
	tmp := filepath.Join(s.dir, "."+name+".tmp")
	if err := os.WriteFile(tmp, audio, 0o644); err != nil {
		return "", fmt.Errorf("failed to write audio file: %w", err)
	}
	if err := os.Rename(tmp, filepath.Join(s.dir, name)); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("failed to store audio file: %w", err)
	}
	return name, nil
}

// Path resolves name inside the store. Names that could escape the
// directory are rejected before touching the filesystem.
func (s *FileStore) Path(name string) (string, error) {
	if !validName(name) {
		return "", domain.ErrInvalidAudioName
	}
	path := filepath.Join(s.dir, name)
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", domain.ErrAudioNotFound
		}
		return "", fmt.Errorf("failed to stat audio file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return "", domain.ErrAudioNotFound
	}
	return path, nil
}

func validName(name string) bool {
	if name == "" || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, Extension) {
		return false
	}
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return false
	}
	return filepath.Base(name) == name
}

// Start runs the retention sweep until ctx is done or Stop is called.
func (s *FileStore) Start(ctx context.Context) {
	if s.retention <= 0 {
		return
	}
	interval := s.retention / 2
	if interval < time.Minute {
		interval = time.Minute
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopCh:
				return
			case <-ticker.C:
				s.Sweep(time.Now())
			}
		}
	}()
}

func (s *FileStore) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
	s.wg.Wait()
}

// Sweep removes audio files older than the retention window and returns how
// many were deleted.
func (s *FileStore) Sweep(now time.Time) int {
	if s.retention <= 0 {
		return 0
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		s.logger.WithError(err).Warn("failed to list audio dir")
		return 0
	}
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), Extension) {
			continue
		}
		info, err := entry.Info()
		if err != nil || now.Sub(info.ModTime()) < s.retention {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, entry.Name())); err != nil {
			s.logger.WithError(err).WithField("file", entry.Name()).Warn("failed to remove expired audio")
			continue
		}
		removed++
	}
	if removed > 0 {
		s.logger.WithField("removed", removed).Debug("expired audio removed")
	}
	return removed
}
