package index

import (
	"bytes"
	"fmt"
	"io"
	"sync"
)

// memFileSystem is an in-memory FileSystem used by tests so they don't
// touch the real filesystem. It is not safe to assume ordering beyond what
// each test explicitly sets up.
type memFileSystem struct {
	mu    sync.Mutex
	dirs  map[string]bool
	files map[string][]byte
}

func newMemFileSystem() *memFileSystem {
	return &memFileSystem{
		dirs:  make(map[string]bool),
		files: make(map[string][]byte),
	}
}

func (m *memFileSystem) CreateDirectory(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dirs[path] = true
	return nil
}

func (m *memFileSystem) DirectoryExists(path string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dirs[path], nil
}

func (m *memFileSystem) DeleteDirectory(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.dirs, path)
	return nil
}

func (m *memFileSystem) FileExists(path string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.files[path]
	return ok, nil
}

func (m *memFileSystem) DeleteFile(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.files[path]; !ok {
		return fmt.Errorf("memFileSystem: no such file %s", path)
	}
	delete(m.files, path)
	return nil
}

func (m *memFileSystem) OpenReader(path string) (io.ReadSeekCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[path]
	if !ok {
		return nil, fmt.Errorf("memFileSystem: no such file %s", path)
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return &memReadSeekCloser{r: bytes.NewReader(cp)}, nil
}

type memWriter struct {
	m    *memFileSystem
	path string
	buf  bytes.Buffer
}

func (w *memWriter) Write(p []byte) (int, error) {
	return w.buf.Write(p)
}

func (w *memWriter) Close() error {
	w.m.mu.Lock()
	defer w.m.mu.Unlock()
	w.m.files[w.path] = w.buf.Bytes()
	return nil
}

func (m *memFileSystem) OpenWriter(path string) (io.WriteCloser, error) {
	return &memWriter{m: m, path: path}, nil
}

type memReadSeekCloser struct {
	r *bytes.Reader
}

func (m *memReadSeekCloser) Read(p []byte) (int, error) {
	return m.r.Read(p)
}

func (m *memReadSeekCloser) Seek(offset int64, whence int) (int64, error) {
	return m.r.Seek(offset, whence)
}

func (m *memReadSeekCloser) Close() error {
	return nil
}
