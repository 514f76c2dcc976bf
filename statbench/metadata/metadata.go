package metadata

import (
	"fmt"
	"time"
)

// Kind classifies a filesystem entry
type Kind int

const (
	Missing Kind = iota
	Directory
	RegularFile
)

// Record describes one filesystem entry. It is a value type: every stat or walk
// produces its own copy and nothing mutates it afterwards.
//
// Size and ModifiedAt carry data only for RegularFile, they are zero otherwise.
// ModifiedAt is expressed in milliseconds since the Unix epoch; backends that report
// finer timestamps are truncated.
type Record struct {
	kind       Kind
	size       int64
	modifiedAt int64
}

// MissingRecord returns the record for an entry that does not exist.
func MissingRecord() Record {
	return Record{kind: Missing}
}

// DirectoryRecord returns the record for a directory.
func DirectoryRecord() Record {
	return Record{kind: Directory}
}

// FileRecord returns the record for a regular file.
func FileRecord(size int64, modTime time.Time) Record {
	return Record{
		kind:       RegularFile,
		size:       max(size, 0),
		modifiedAt: modTime.UnixMilli(),
	}
}

func (r Record) Kind() Kind { return r.kind }

func (r Record) Size() int64 { return r.size }

// ModifiedAt returns the modification time in milliseconds since the epoch.
func (r Record) ModifiedAt() int64 { return r.modifiedAt }

// ModTime returns ModifiedAt as a time.Time, or the zero time for non-files.
func (r Record) ModTime() time.Time {
	if r.kind != RegularFile {
		return time.Time{}
	}
	return time.UnixMilli(r.modifiedAt)
}

func (r Record) String() string {
	return fmt.Sprintf("type: %s, length: %d, modified: %d", r.kind, r.size, r.modifiedAt)
}

// Convert Kind to String
func (k Kind) String() string {
	switch k {
	case Missing:
		return "missing"
	case Directory:
		return "directory"
	case RegularFile:
		return "file"
	default:
		return "unknown"
	}
}

// ParseKind maps the String form back to a Kind
func ParseKind(s string) (Kind, error) {
	switch s {
	case "missing":
		return Missing, nil
	case "directory":
		return Directory, nil
	case "file":
		return RegularFile, nil
	default:
		return -1, fmt.Errorf("unknown entry kind %q", s)
	}
}

// Counts returns how many directory and regular file records are in records.
func Counts(records []Record) (dirs, files int) {
	for _, r := range records {
		switch r.kind {
		case Directory:
			dirs++
		case RegularFile:
			files++
		}
	}
	return dirs, files
}
