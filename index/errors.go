package index

import "errors"

// Sentinel errors for the failure kinds named in spec §7. UnknownTerm and
// EmptyResult are not errors at all — an unknown query term is silently
// excluded from scoring and an empty ranking is a valid answer — so they
// have no sentinel here.
var (
	// ErrDecodeError marks a malformed posting record: a short read or a
	// buffer that isn't exactly RecordSize bytes.
	ErrDecodeError = errors.New("index: malformed posting record")

	// ErrIO marks an underlying storage failure during a spill, merge, or
	// read. Wrapped with fmt.Errorf("%w: ...", ErrIO) for context.
	ErrIO = errors.New("index: io error")

	// ErrInvalidState marks an operation attempted in the wrong lifecycle
	// state: add after finalize, or a read before finalize.
	ErrInvalidState = errors.New("index: invalid state")
)
