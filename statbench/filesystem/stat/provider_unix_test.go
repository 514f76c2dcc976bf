//go:build linux || darwin

package stat

import (
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/statbench/statbench/filesystem/common"
	"github.com/ZanzyTHEbar/statbench/statbench/metadata"

	"golang.org/x/sys/unix"
)

func (s *ProviderTestSuite) mkfifo(dir string) string {
	path := filepath.Join(dir, "pipe")
	s.Require().NoError(unix.Mkfifo(path, 0o644))
	return path
}

func (s *ProviderTestSuite) TestStatFifoUnsupported() {
	path := s.mkfifo(s.root)

	_, err := s.provider.Stat(path)
	s.ErrorIs(err, common.ErrUnsupportedEntryKind)

	var kindErr *common.EntryKindError
	s.Require().ErrorAs(err, &kindErr)
	s.Equal("fifo", kindErr.Type)
}

func (s *ProviderTestSuite) TestWalkFifoUnsupported() {
	s.mkfifo(filepath.Join(s.root, "dir-2", "dir-2"))

	_, err := s.provider.Walk(s.root, nil)
	s.ErrorIs(err, common.ErrUnsupportedEntryKind)
}

func (s *ProviderTestSuite) TestStatSymlink() {
	link := filepath.Join(s.root, "link")
	s.Require().NoError(os.Symlink(filepath.Join(s.root, "file-1"), link))

	rec, err := s.provider.Stat(link)
	if s.name == NameBasic {
		// coarse accessors resolve the link
		s.Require().NoError(err)
		s.Equal(metadata.RegularFile, rec.Kind())
		return
	}
	s.ErrorIs(err, common.ErrUnsupportedEntryKind)
}

func (s *ProviderTestSuite) TestWalkSymlinkUnsupported() {
	if s.name == NameBasic {
		s.T().Skip("basic provider follows links")
	}
	s.Require().NoError(os.Symlink(filepath.Join(s.root, "dir-0"), filepath.Join(s.root, "dir-1", "loop")))

	_, err := s.provider.Walk(s.root, nil)
	s.ErrorIs(err, common.ErrUnsupportedEntryKind)
}
