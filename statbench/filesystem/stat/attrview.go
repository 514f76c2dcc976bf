package stat

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/statbench/statbench/filesystem/common"
	"github.com/ZanzyTHEbar/statbench/statbench/metadata"

	"github.com/charlievieth/fastwalk"
)

// AttrViewStat reads type, size and modification time in a single lstat and walks
// with a visitor that hands each entry's attributes to a callback. A missing
// entry surfaces as a read failure and is translated to a Missing record here.
type AttrViewStat struct {
	conf fastwalk.Config
}

// NewAttrView creates the attribute-view provider. The visitor runs on a single
// worker so walks stay sequential.
func NewAttrView() *AttrViewStat {
	return &AttrViewStat{
		conf: fastwalk.Config{
			Follow:     false,
			NumWorkers: 1,
		},
	}
}

func (a *AttrViewStat) Name() string { return "AttrViewStat" }

func (a *AttrViewStat) Stat(path string) (metadata.Record, error) {
	info, err := os.Lstat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return metadata.MissingRecord(), nil
		}
		return metadata.Record{}, err
	}
	return recordFromInfo(path, info)
}

func (a *AttrViewStat) Walk(root string, dst []metadata.Record) ([]metadata.Record, error) {
	root = filepath.Clean(root)

	err := fastwalk.Walk(&a.conf, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		if d.IsDir() {
			dst = append(dst, metadata.DirectoryRecord())
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		rec, err := recordFromInfo(path, info)
		if err != nil {
			return err
		}
		dst = append(dst, rec)
		return nil
	})

	return dst, err
}

func recordFromInfo(path string, info fs.FileInfo) (metadata.Record, error) {
	mode := info.Mode()
	switch {
	case mode.IsDir():
		return metadata.DirectoryRecord(), nil
	case mode.IsRegular():
		return metadata.FileRecord(info.Size(), info.ModTime()), nil
	default:
		return metadata.Record{}, &common.EntryKindError{Path: path, Type: describeMode(mode)}
	}
}
