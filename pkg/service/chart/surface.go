package chart

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/headcount/pkg/domain/interfaces"
	"github.com/secmon-lab/headcount/pkg/domain/types"
)

// ErrSurfaceClosed is returned when drawing on a released surface
var ErrSurfaceClosed = goerr.New("surface is closed")

var (
	_ interfaces.Surface = (*MemorySurface)(nil)
	_ interfaces.Surface = (*FileSurface)(nil)
)

// MemorySurface keeps the current chart in memory. It is safe for concurrent use.
type MemorySurface struct {
	mu      sync.RWMutex
	format  types.SurfaceFormat
	buf     bytes.Buffer
	version uint64
	closed  bool
}

// NewMemorySurface creates a surface accepting the given format
func NewMemorySurface(format types.SurfaceFormat) *MemorySurface {
	return &MemorySurface{format: format}
}

// Format returns the encoding the surface accepts
func (s *MemorySurface) Format() types.SurfaceFormat {
	return s.format
}

func (s *MemorySurface) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, ErrSurfaceClosed
	}
	return s.buf.Write(p)
}

// Clear drops the current content and starts a new version
func (s *MemorySurface) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSurfaceClosed
	}
	s.buf.Reset()
	s.version++
	return nil
}

// Replace swaps the content for p as a new version under a single lock
func (s *MemorySurface) Replace(p []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSurfaceClosed
	}
	s.buf.Reset()
	s.buf.Write(p)
	s.version++
	return nil
}

// Close releases the content. Further drawing fails.
func (s *MemorySurface) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.buf.Reset()
	return nil
}

// Bytes returns a copy of the current content
func (s *MemorySurface) Bytes() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return bytes.Clone(s.buf.Bytes())
}

// Version returns the number of times the surface has been cleared for a new chart
func (s *MemorySurface) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// IsClosed reports whether Close has been called
func (s *MemorySurface) IsClosed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}

// FileSurface writes the current chart to a file, replacing its content on every draw
type FileSurface struct {
	mu     sync.Mutex
	path   string
	format types.SurfaceFormat
	file   *os.File
}

// FormatFromPath infers the surface format from a file extension
func FormatFromPath(path string) (types.SurfaceFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return types.SurfaceFormatHTML, nil
	case ".png":
		return types.SurfaceFormatPNG, nil
	case ".svg":
		return types.SurfaceFormatSVG, nil
	default:
		return "", goerr.New("cannot infer chart format from file extension", goerr.V("path", path))
	}
}

// NewFileSurface creates or truncates the file at path. An empty format is
// inferred from the extension.
func NewFileSurface(path string, format types.SurfaceFormat) (*FileSurface, error) {
	if format == "" {
		f, err := FormatFromPath(path)
		if err != nil {
			return nil, err
		}
		format = f
	}
	if !format.IsValid() {
		return nil, goerr.New("unsupported surface format", goerr.V("format", format))
	}

	file, err := os.Create(filepath.Clean(path))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create chart file", goerr.V("path", path))
	}

	return &FileSurface{path: path, format: format, file: file}, nil
}

// Path returns the file path
func (s *FileSurface) Path() string {
	return s.path
}

// Format returns the encoding the surface accepts
func (s *FileSurface) Format() types.SurfaceFormat {
	return s.format
}

func (s *FileSurface) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		return 0, ErrSurfaceClosed
	}
	return s.file.Write(p)
}

// Clear truncates the file
func (s *FileSurface) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.truncate()
}

// Replace truncates the file and writes p while holding the lock
func (s *FileSurface) Replace(p []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.truncate(); err != nil {
		return err
	}
	if _, err := s.file.Write(p); err != nil {
		return goerr.Wrap(err, "failed to write chart file", goerr.V("path", s.path))
	}
	return nil
}

func (s *FileSurface) truncate() error {
	if s.file == nil {
		return ErrSurfaceClosed
	}
	if err := s.file.Truncate(0); err != nil {
		return goerr.Wrap(err, "failed to truncate chart file", goerr.V("path", s.path))
	}
	if _, err := s.file.Seek(0, io.SeekStart); err != nil {
		return goerr.Wrap(err, "failed to rewind chart file", goerr.V("path", s.path))
	}
	return nil
}

// Close closes the file. The last drawn chart stays on disk.
func (s *FileSurface) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	if err != nil {
		return goerr.Wrap(err, "failed to close chart file", goerr.V("path", s.path))
	}
	return nil
}
