package media

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// Store places recording files on disk under a single directory. Files are
// write-once; concurrent readers open them independently.
type Store struct {
	dir string
}

// NewStore ensures the recordings directory exists.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create recordings dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the recordings directory.
func (s *Store) Dir() string {
	return s.dir
}

// FileName derives the stored name for a session recording.
func (s *Store) FileName(callID string) string {
	return fmt.Sprintf("%s-%d.webm", callID, time.Now().UnixMilli())
}

// Path resolves a stored file name to its full path.
func (s *Store) Path(fileName string) string {
	return filepath.Join(s.dir, fileName)
}

// Size stats the backing file, distinguishing a missing file from other
// failures via os.IsNotExist on the returned error.
func (s *Store) Size(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// Remove deletes a stored file, ignoring already-gone files.
func (s *Store) Remove(path string) {
	if path == "" {
		return
	}
	_ = os.Remove(path)
}

// OpenWindow opens the file positioned at the window start and returns a
// reader limited to the window length. The caller must close it.
func (s *Store) OpenWindow(path string, r ByteRange) (io.ReadCloser, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if _, err := file.Seek(r.Start, io.SeekStart); err != nil {
		file.Close()
		return nil, err
	}
	return &windowReader{Reader: io.LimitReader(file, r.Length()), file: file}, nil
}

// Open opens the full file for reading. The caller must close it.
func (s *Store) Open(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

type windowReader struct {
	io.Reader
	file *os.File
}

func (w *windowReader) Close() error {
	return w.file.Close()
}
