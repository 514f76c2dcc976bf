// Package stat implements the interchangeable metadata backends that the benchmark
// compares. Every backend answers the same two questions, what is at a path and what
// is below a directory, through a different OS-facing facility.
package stat

import (
	"io/fs"

	"github.com/ZanzyTHEbar/statbench/statbench/metadata"
)

// Provider queries filesystem metadata.
//
// Stat reports Missing, Directory or RegularFile for path. Any other entry type
// fails with an error matching common.ErrUnsupportedEntryKind.
//
// Walk appends one record per descendant of root to dst and returns the extended
// slice. The root itself is not included. A subdirectory's record is appended before
// its contents. Order between siblings is backend specific.
//
// Providers are not safe for concurrent use.
type Provider interface {
	Name() string
	Stat(path string) (metadata.Record, error)
	Walk(root string, dst []metadata.Record) ([]metadata.Record, error)
}

// describeMode names the type bits of a mode that is neither a directory nor a regular file
func describeMode(m fs.FileMode) string {
	switch {
	case m&fs.ModeSymlink != 0:
		return "symlink"
	case m&fs.ModeNamedPipe != 0:
		return "fifo"
	case m&fs.ModeSocket != 0:
		return "socket"
	case m&fs.ModeCharDevice != 0:
		return "char device"
	case m&fs.ModeDevice != 0:
		return "block device"
	case m&fs.ModeIrregular != 0:
		return "irregular"
	default:
		return "unknown"
	}
}
