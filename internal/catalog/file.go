package catalog

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/vango-dev/quicktip/internal/errors"
)

// DefaultDebounce is how long a FileSource waits for a burst of file events
// to settle before reloading.
const DefaultDebounce = 100 * time.Millisecond

// FileSource loads a catalog from a YAML, JSON or TOML file.
type FileSource struct {
	Path     string
	Debounce time.Duration
	Logger   *slog.Logger
}

var _ Source = (*FileSource)(nil)

// NewFileSource creates a source for the file at path.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path, Debounce: DefaultDebounce, Logger: slog.Default()}
}

func (s *FileSource) String() string {
	return s.Path
}

// Load implements Source.
func (s *FileSource) Load(ctx context.Context) (*Catalog, error) {
	format, err := DetectFormat(s.Path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.CatalogNotFound).
				WithDetail("No catalog at " + s.Path).
				Wrap(err)
		}
		return nil, errors.New(errors.CatalogFetchFailed).Wrap(err)
	}
	defer f.Close()

	data, err := readAll(f)
	if err != nil {
		return nil, errors.New(errors.CatalogFetchFailed).Wrap(err)
	}
	return Parse(data, format, s.Path)
}

// Watch implements Source. It watches the file's directory so that editors
// which save by renaming a temporary file are still noticed.
func (s *FileSource) Watch(ctx context.Context, fn func(*Catalog, error)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.New(errors.CatalogWatchFailed).Wrap(err)
	}
	defer w.Close()

	target := filepath.Clean(s.Path)
	if err := w.Add(filepath.Dir(target)); err != nil {
		return errors.New(errors.CatalogWatchFailed).Wrap(err)
	}

	debounce := s.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var settle <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			settle = time.After(debounce)

		case <-settle:
			settle = nil
			c, err := s.Load(ctx)
			if err != nil {
				logger.Warn("catalog reload failed", "path", s.Path, "error", err)
			} else {
				logger.Info("catalog reloaded", "path", s.Path, "tips", len(c.Entries))
			}
			fn(c, err)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("catalog watcher error", "path", s.Path, "error", err)
		}
	}
}
