package index

import "io"

// FileSystem abstracts the storage operations the builder, merger, and
// readers need. Unlike a whole-buffer ReadFile/WriteFile pair, OpenReader
// and OpenWriter hand back handles that can be read or written a record at
// a time and seeked to an arbitrary offset — the external merge sort's
// entire point is to never hold more than TmpLimit postings in memory, so
// the storage layer can't either.
type FileSystem interface {
	CreateDirectory(path string) error
	DirectoryExists(path string) (bool, error)
	DeleteDirectory(path string) error
	FileExists(path string) (bool, error)
	DeleteFile(path string) error

	// OpenReader opens path for sequential or seeked reads.
	OpenReader(path string) (io.ReadSeekCloser, error)
	// OpenWriter creates or truncates path for sequential writes.
	OpenWriter(path string) (io.WriteCloser, error)
}
