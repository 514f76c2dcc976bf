package tree

import (
	"fmt"
	"os"
	"path/filepath"

	internal "github.com/ZanzyTHEbar/statbench/statbench"
	"github.com/ZanzyTHEbar/statbench/statbench/config"
	"github.com/ZanzyTHEbar/statbench/statbench/filesystem/common"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Fixture holds the three stat targets and the walk root of a prepared tree.
type Fixture struct {
	Root    string // walk root, also the directory stat target
	File    string // sentinel regular file
	Missing string // path guaranteed not to exist
	Depth   int
	Fanout  int

	fs afero.Fs
}

// Targets returns the stat targets in measurement order.
func (f *Fixture) Targets() []string {
	return []string{f.Root, f.File, f.Missing}
}

// Cleanup removes the whole tree.
func (f *Fixture) Cleanup() error {
	if err := f.fs.RemoveAll(f.Root); err != nil {
		return fmt.Errorf("failed to remove %s: %w", f.Root, err)
	}
	return nil
}

// Prepare builds the tree described by cfg on the OS filesystem. The work directory
// is resolved to an absolute path with symlinks evaluated so every provider sees
// the same physical location.
func Prepare(cfg config.TreeConfig, logger zerolog.Logger) (*Fixture, error) {
	vu := common.NewValidationUtils()
	if err := vu.ValidatePath(cfg.WorkDir); err != nil {
		return nil, fmt.Errorf("invalid work dir: %w", err)
	}
	if err := vu.ValidatePath(cfg.DirName); err != nil {
		return nil, fmt.Errorf("invalid tree dir name: %w", err)
	}

	fsys := afero.NewOsFs()

	workDir, err := filepath.Abs(cfg.WorkDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve work dir %s: %w", cfg.WorkDir, err)
	}
	if err := fsys.MkdirAll(workDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create work dir %s: %w", workDir, err)
	}
	if workDir, err = filepath.EvalSymlinks(workDir); err != nil {
		return nil, fmt.Errorf("failed to resolve work dir %s: %w", cfg.WorkDir, err)
	}

	fx := &Fixture{
		Root:   filepath.Join(workDir, cfg.DirName),
		Depth:  cfg.Depth,
		Fanout: cfg.Fanout,
		fs:     fsys,
	}
	fx.File = filepath.Join(fx.Root, internal.DefaultSentinel)
	fx.Missing = filepath.Join(fx.Root, internal.DefaultMissing)

	builder := NewBuilder(fsys, WithFanout(cfg.Fanout), WithContent(cfg.Content))
	if err := builder.CreateTree(fx.Root, cfg.Depth); err != nil {
		return nil, err
	}
	if err := builder.CreateFile(fx.File); err != nil {
		return nil, err
	}

	if _, err := os.Lstat(fx.Missing); err == nil {
		return nil, fmt.Errorf("%w: %s", common.ErrFixtureOccupied, fx.Missing)
	}

	dirs, files := Expected(cfg.Depth, cfg.Fanout)
	logger.Debug().
		Str("root", fx.Root).
		Int("depth", cfg.Depth).
		Int("fanout", cfg.Fanout).
		Int("dirs", dirs).
		Int("files", files+1).
		Msg("Benchmark tree ready")

	return fx, nil
}
