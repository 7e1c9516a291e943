package assets

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Store removes externally stored files (vehicle images) on a
// best-effort basis. A failed removal leaves an orphaned file, which
// is accepted; it is logged and never surfaced to the caller.
type Store struct {
	baseDir string
	log     *zap.Logger
}

func NewStore(baseDir string, log *zap.Logger) *Store {
	return &Store{baseDir: baseDir, log: log}
}

// RemoveAsync deletes the stored file without blocking the caller.
func (s *Store) RemoveAsync(path string) {
	if path == "" {
		return
	}

	go func() {
		defer func() {
			if p := recover(); p != nil {
				s.log.Error("asset cleanup panicked", zap.Any("panic", p), zap.String("path", path))
			}
		}()

		full := filepath.Join(s.baseDir, filepath.Clean("/"+path))
		if !strings.HasPrefix(full, filepath.Clean(s.baseDir)+string(os.PathSeparator)) {
			s.log.Error("asset cleanup refused path outside upload dir", zap.String("path", path))
			return
		}

		if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
			s.log.Error("failed to remove asset", zap.Error(err), zap.String("path", path))
		}
	}()
}
