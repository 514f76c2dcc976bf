package tree

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/statbench/statbench/config"
	"github.com/ZanzyTHEbar/statbench/statbench/filesystem/common"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countTree walks root with afero and counts directories (root excluded) and files
func countTree(t *testing.T, fsys afero.Fs, root string) (dirs, files int) {
	t.Helper()
	err := afero.Walk(fsys, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		if info.IsDir() {
			dirs++
		} else {
			files++
		}
		return nil
	})
	require.NoError(t, err)
	return dirs, files
}

func TestExpected(t *testing.T) {
	tests := []struct {
		depth, fanout int
		dirs, files   int
	}{
		{0, 5, 0, 5},
		{1, 5, 5, 30},
		{2, 5, 30, 155},
		{3, 2, 14, 30},
		{2, 1, 2, 3},
	}

	for _, tt := range tests {
		dirs, files := Expected(tt.depth, tt.fanout)
		assert.Equal(t, tt.dirs, dirs, "dirs for depth=%d fanout=%d", tt.depth, tt.fanout)
		assert.Equal(t, tt.files, files, "files for depth=%d fanout=%d", tt.depth, tt.fanout)
	}
}

func TestCreateTreeShape(t *testing.T) {
	fsys := afero.NewMemMapFs()
	b := NewBuilder(fsys)

	require.NoError(t, b.CreateTree("/bench/test-dir", 2))

	dirs, files := countTree(t, fsys, "/bench/test-dir")
	assert.Equal(t, 30, dirs)
	assert.Equal(t, 155, files)

	for _, name := range []string{"dir-0", "dir-4", "file-0", "file-4", "dir-2/dir-3/file-1"} {
		exists, err := afero.Exists(fsys, filepath.Join("/bench/test-dir", name))
		require.NoError(t, err)
		assert.True(t, exists, name)
	}

	exists, err := afero.Exists(fsys, "/bench/test-dir/dir-2/dir-3/dir-0")
	require.NoError(t, err)
	assert.False(t, exists, "depth limit must stop recursion")

	data, err := afero.ReadFile(fsys, "/bench/test-dir/dir-1/file-3")
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))
}

func TestCreateTreeIsIdempotent(t *testing.T) {
	root := filepath.Join(t.TempDir(), "test-dir")
	b := NewBuilder(nil)

	require.NoError(t, b.CreateTree(root, 1))
	require.NoError(t, b.CreateTree(root, 1))

	dirs, files := countTree(t, afero.NewOsFs(), root)
	assert.Equal(t, 5, dirs)
	assert.Equal(t, 30, files)
}

func TestCreateTreeOptions(t *testing.T) {
	fsys := afero.NewMemMapFs()
	b := NewBuilder(fsys, WithFanout(3), WithContent("xy"), WithFanout(0))

	require.NoError(t, b.CreateTree("/t", 1))

	dirs, files := countTree(t, fsys, "/t")
	assert.Equal(t, 3, dirs)
	assert.Equal(t, 12, files)

	data, err := afero.ReadFile(fsys, "/t/dir-2/file-2")
	require.NoError(t, err)
	assert.Equal(t, "xy", string(data))
}

func TestCreateTreeFailsWhenRootIsFile(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "occupied")
	require.NoError(t, os.WriteFile(root, []byte("x"), 0o644))

	err := NewBuilder(nil).CreateTree(root, 1)
	assert.Error(t, err)
}

func TestCreateFile(t *testing.T) {
	t.Run("truncates existing content", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "f")
		require.NoError(t, os.WriteFile(path, []byte("much longer content"), 0o644))

		require.NoError(t, NewBuilder(nil).CreateFile(path))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "content", string(data))
	})

	t.Run("fails without parent on disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "no-such-dir", "f")

		err := NewBuilder(nil).CreateFile(path)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("fails without parent in memory", func(t *testing.T) {
		err := NewBuilder(afero.NewMemMapFs()).CreateFile("/missing/f")
		assert.Error(t, err)
	})

	t.Run("fails when parent is a file", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fsys, "/plain", []byte("x"), 0o644))

		err := NewBuilder(fsys).CreateFile("/plain/f")
		assert.Error(t, err)
	})
}

func TestPrepare(t *testing.T) {
	cfg := config.Default().Tree
	cfg.WorkDir = filepath.Join(t.TempDir(), "build", "work")
	cfg.Depth = 1

	fx, err := Prepare(cfg, zerolog.Nop())
	require.NoError(t, err)

	assert.True(t, filepath.IsAbs(fx.Root))
	assert.Equal(t, "test-dir", filepath.Base(fx.Root))
	assert.Equal(t, []string{fx.Root, fx.File, fx.Missing}, fx.Targets())

	data, err := os.ReadFile(fx.File)
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))

	_, err = os.Lstat(fx.Missing)
	assert.ErrorIs(t, err, os.ErrNotExist)

	dirs, files := countTree(t, afero.NewOsFs(), fx.Root)
	assert.Equal(t, 5, dirs)
	assert.Equal(t, 31, files, "tree files plus the sentinel")

	require.NoError(t, fx.Cleanup())
	_, err = os.Stat(fx.Root)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestPrepareResolvesSymlinkedWorkDir(t *testing.T) {
	base := t.TempDir()
	realDir := filepath.Join(base, "real")
	require.NoError(t, os.Mkdir(realDir, 0o755))
	link := filepath.Join(base, "link")
	require.NoError(t, os.Symlink(realDir, link))

	cfg := config.Default().Tree
	cfg.WorkDir = link
	cfg.Depth = 0

	fx, err := Prepare(cfg, zerolog.Nop())
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(realDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(want, "test-dir"), fx.Root)
}

func TestPrepareRejectsOccupiedMissingPath(t *testing.T) {
	cfg := config.Default().Tree
	cfg.WorkDir = t.TempDir()
	cfg.Depth = 0

	fx, err := Prepare(cfg, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(fx.Missing, nil, 0o644))

	_, err = Prepare(cfg, zerolog.Nop())
	assert.ErrorIs(t, err, common.ErrFixtureOccupied)
}

func TestPrepareRejectsEmptyWorkDir(t *testing.T) {
	cfg := config.Default().Tree
	cfg.WorkDir = ""

	_, err := Prepare(cfg, zerolog.Nop())
	assert.ErrorIs(t, err, common.ErrPathEmpty)
}
