package stat

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/ZanzyTHEbar/statbench/statbench/filesystem/common"
	"github.com/ZanzyTHEbar/statbench/statbench/metadata"

	"github.com/spf13/afero"
)

// BasicStat answers every question with a separate coarse accessor call: exists,
// is-directory, length and last-modified each stat the path again. Directory walks
// list child names and classify every child with its own queries. Symbolic links
// are followed, as the accessors resolve them.
type BasicStat struct {
	fs afero.Fs
}

// NewBasic creates the accessor-backed provider over fsys, or the OS filesystem if nil.
func NewBasic(fsys afero.Fs) *BasicStat {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &BasicStat{fs: fsys}
}

func (b *BasicStat) Name() string { return "BasicStat" }

func (b *BasicStat) Stat(path string) (metadata.Record, error) {
	exists, err := afero.Exists(b.fs, path)
	if err != nil {
		return metadata.Record{}, fmt.Errorf("exists %s: %w", path, err)
	}
	if !exists {
		return metadata.MissingRecord(), nil
	}
	return b.classify(path)
}

func (b *BasicStat) Walk(root string, dst []metadata.Record) ([]metadata.Record, error) {
	names, err := b.list(root)
	if err != nil {
		return dst, err
	}

	for _, name := range names {
		child := filepath.Join(root, name)

		rec, err := b.classify(child)
		if err != nil {
			return dst, err
		}
		dst = append(dst, rec)

		if rec.Kind() == metadata.Directory {
			if dst, err = b.Walk(child, dst); err != nil {
				return dst, err
			}
		}
	}

	return dst, nil
}

// classify assumes path exists
func (b *BasicStat) classify(path string) (metadata.Record, error) {
	isDir, err := afero.IsDir(b.fs, path)
	if err != nil {
		return metadata.Record{}, fmt.Errorf("isdir %s: %w", path, err)
	}
	if isDir {
		return metadata.DirectoryRecord(), nil
	}

	size, err := b.length(path)
	if err != nil {
		return metadata.Record{}, err
	}
	modTime, err := b.lastModified(path)
	if err != nil {
		return metadata.Record{}, err
	}
	return metadata.FileRecord(size, modTime), nil
}

func (b *BasicStat) length(path string) (int64, error) {
	info, err := b.fs.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("length %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return 0, &common.EntryKindError{Path: path, Type: describeMode(info.Mode())}
	}
	return info.Size(), nil
}

func (b *BasicStat) lastModified(path string) (time.Time, error) {
	info, err := b.fs.Stat(path)
	if err != nil {
		return time.Time{}, fmt.Errorf("lastmodified %s: %w", path, err)
	}
	return info.ModTime(), nil
}

func (b *BasicStat) list(dir string) ([]string, error) {
	f, err := b.fs.Open(dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	defer f.Close()

	names, err := f.Readdirnames(-1)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	return names, nil
}
