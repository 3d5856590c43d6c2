package resource

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceConflict marks a path whose source identifier is shared with
	// another configured path, so its entries cannot be routed back to it.
	ErrSourceConflict = errors.New("source identifier shared with another configured file")

	// ErrNotLoaded marks a path that failed to parse on the last load. Saving
	// it would replace the file and its backup with an empty document.
	ErrNotLoaded = errors.New("not saved, the file failed to parse when loaded")

	// ErrEmptyName is returned when renaming an entry to an empty name.
	ErrEmptyName = errors.New("name cannot be empty")
)

// Kind classifies a per-file failure.
type Kind int

// Failure kinds reported by Load and Save.
const (
	ParseFailure Kind = iota + 1
	BackupFailure
	SerializationFailure
	WriteFailure
	ConflictFailure
)

func (k Kind) String() string {
	switch k {
	case ParseFailure:
		return "parse"
	case BackupFailure:
		return "backup"
	case SerializationFailure:
		return "serialize"
	case WriteFailure:
		return "write"
	case ConflictFailure:
		return "conflict"
	default:
		return "unknown"
	}
}

// FileError reports a failure for one resource file. Other files in the same
// batch are unaffected.
type FileError struct {
	Path string
	Kind Kind
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Kind, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}
