//go:build linux || darwin

package stat

import (
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/ZanzyTHEbar/statbench/statbench/filesystem/common"
	"github.com/ZanzyTHEbar/statbench/statbench/metadata"

	"golang.org/x/sys/unix"
)

const (
	direntBufSize = 8192
	openDirFlags  = unix.O_RDONLY | unix.O_DIRECTORY | unix.O_CLOEXEC
)

// NativeStat talks to the kernel directly: lstat(2) for single entries, and
// getdents(2) plus fstatat(2) relative to the open directory for walks.
// Missing entries are recognised from ENOENT.
type NativeStat struct {
	buf []byte // dirent buffer, reused across directories
}

// NewNative creates the syscall-backed provider.
func NewNative() (*NativeStat, error) {
	return &NativeStat{buf: make([]byte, direntBufSize)}, nil
}

func (n *NativeStat) Name() string { return "NativeStat" }

func (n *NativeStat) Stat(path string) (metadata.Record, error) {
	var st unix.Stat_t
	if err := unix.Lstat(path, &st); err != nil {
		if errors.Is(err, unix.ENOENT) {
			return metadata.MissingRecord(), nil
		}
		return metadata.Record{}, &fs.PathError{Op: "lstat", Path: path, Err: err}
	}

	switch uint32(st.Mode) & unix.S_IFMT {
	case unix.S_IFDIR:
		return metadata.DirectoryRecord(), nil
	case unix.S_IFREG:
		return metadata.FileRecord(st.Size, modTime(&st)), nil
	default:
		return metadata.Record{}, &common.EntryKindError{Path: path, Type: describeUnixMode(uint32(st.Mode))}
	}
}

func (n *NativeStat) Walk(root string, dst []metadata.Record) ([]metadata.Record, error) {
	fd, err := unix.Open(root, openDirFlags, 0)
	if err != nil {
		return dst, &fs.PathError{Op: "open", Path: root, Err: err}
	}
	return n.walkDir(fd, root, dst)
}

// walkDir consumes dirfd and closes it before returning.
func (n *NativeStat) walkDir(dirfd int, dir string, dst []metadata.Record) ([]metadata.Record, error) {
	defer unix.Close(dirfd)

	names, err := n.readNames(dirfd)
	if err != nil {
		return dst, &fs.PathError{Op: "readdirent", Path: dir, Err: err}
	}

	for _, name := range names {
		var st unix.Stat_t
		if err := unix.Fstatat(dirfd, name, &st, unix.AT_SYMLINK_NOFOLLOW); err != nil {
			return dst, &fs.PathError{Op: "fstatat", Path: filepath.Join(dir, name), Err: err}
		}

		switch uint32(st.Mode) & unix.S_IFMT {
		case unix.S_IFDIR:
			dst = append(dst, metadata.DirectoryRecord())
			child := filepath.Join(dir, name)
			childfd, err := unix.Openat(dirfd, name, openDirFlags, 0)
			if err != nil {
				return dst, &fs.PathError{Op: "openat", Path: child, Err: err}
			}
			if dst, err = n.walkDir(childfd, child, dst); err != nil {
				return dst, err
			}
		case unix.S_IFREG:
			dst = append(dst, metadata.FileRecord(st.Size, modTime(&st)))
		default:
			return dst, &common.EntryKindError{
				Path: filepath.Join(dir, name),
				Type: describeUnixMode(uint32(st.Mode)),
			}
		}
	}

	return dst, nil
}

// readNames drains the directory stream. "." and ".." are skipped by ParseDirent.
func (n *NativeStat) readNames(fd int) ([]string, error) {
	var names []string
	for {
		nread, err := unix.ReadDirent(fd, n.buf)
		if err != nil {
			if errors.Is(err, unix.EINTR) {
				continue
			}
			return nil, err
		}
		if nread <= 0 {
			return names, nil
		}
		_, _, names = unix.ParseDirent(n.buf[:nread], -1, names)
	}
}

func describeUnixMode(mode uint32) string {
	switch mode & unix.S_IFMT {
	case unix.S_IFLNK:
		return "symlink"
	case unix.S_IFIFO:
		return "fifo"
	case unix.S_IFSOCK:
		return "socket"
	case unix.S_IFCHR:
		return "char device"
	case unix.S_IFBLK:
		return "block device"
	default:
		return "unknown"
	}
}
