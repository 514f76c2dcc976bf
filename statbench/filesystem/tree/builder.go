// Package tree builds the synthetic directory tree the benchmark runs against.
package tree

import (
	"fmt"
	"os"
	"path/filepath"

	internal "github.com/ZanzyTHEbar/statbench/statbench"
	"github.com/ZanzyTHEbar/statbench/statbench/filesystem/common"

	"github.com/spf13/afero"
)

// Builder creates fixed-fanout trees of directories and small files.
//
//	root/
//	├── dir-0/ ... dir-{n-1}/   (only while depth > 0, each a tree of depth-1)
//	└── file-0 ... file-{n-1}   (always, each holding the content)
type Builder struct {
	fs      afero.Fs
	fanout  int
	content []byte
	errs    *common.ErrorUtils
}

// Option configures a Builder
type Option func(*Builder)

// WithFanout sets how many subdirectories and files each directory gets.
func WithFanout(n int) Option {
	return func(b *Builder) {
		if n > 0 {
			b.fanout = n
		}
	}
}

// WithContent sets the bytes written into every file.
func WithContent(content string) Option {
	return func(b *Builder) {
		b.content = []byte(content)
	}
}

// NewBuilder creates a Builder over fsys, or the OS filesystem if nil.
func NewBuilder(fsys afero.Fs, opts ...Option) *Builder {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	b := &Builder{
		fs:      fsys,
		fanout:  internal.DefaultTreeFanout,
		content: []byte(internal.DefaultContent),
		errs:    common.NewErrorUtils(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// CreateTree makes sure root is a directory and fills it. An existing root, or an
// existing tree from an earlier run, is not an error: files are rewritten in place.
func (b *Builder) CreateTree(root string, depth int) error {
	if err := b.fs.MkdirAll(root, 0o755); err != nil {
		return b.errs.WrapError(err, "failed to create directory %s", root)
	}

	if depth > 0 {
		for i := range b.fanout {
			if err := b.CreateTree(filepath.Join(root, fmt.Sprintf("dir-%d", i)), depth-1); err != nil {
				return err
			}
		}
	}

	for i := range b.fanout {
		if err := b.CreateFile(filepath.Join(root, fmt.Sprintf("file-%d", i))); err != nil {
			return err
		}
	}

	return nil
}

// CreateFile creates or truncates path and writes the builder content. The parent
// directory must already exist.
func (b *Builder) CreateFile(path string) error {
	parent := filepath.Dir(path)
	info, err := b.fs.Stat(parent)
	if err != nil {
		return b.errs.WrapError(err, "failed to create file %s", path)
	}
	if !info.IsDir() {
		return b.errs.WrapError(&os.PathError{Op: "create", Path: path, Err: os.ErrInvalid}, "parent %s is not a directory", parent)
	}

	if err := afero.WriteFile(b.fs, path, b.content, 0o644); err != nil {
		return b.errs.WrapError(err, "failed to write file %s", path)
	}
	return nil
}

// Expected returns how many directories (root excluded) and files a tree of the
// given depth and fanout contains.
func Expected(depth, fanout int) (dirs, files int) {
	level := 1
	for d := 0; d <= depth; d++ {
		if d > 0 {
			dirs += level
		}
		level *= fanout
		files += level
	}
	return dirs, files
}
